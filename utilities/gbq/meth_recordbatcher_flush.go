// Copyright 2020 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the 'License');
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an 'AS IS' BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gbq

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/BrunoReboul/sam/utilities/erm"
)

// Flush writes the buffered records now, whatever the buffer size
// To be called once after the last worker is done so no record is silently dropped
func (recordBatcher *RecordBatcher) Flush(ctx context.Context) error {
	recordBatcher.mux.Lock()
	defer recordBatcher.mux.Unlock()
	return recordBatcher.flushLocked(ctx)
}

// flushLocked stamps the extraction date once for the whole batch then puts it with bounded retries
// The target table is append only so retrying an already committed batch is safe: the InsertID
// makes BigQuery drop most duplicates, a surviving duplicate row is tolerated
// On failure the buffer is kept so a later flush retries the same records with the same InsertIDs
func (recordBatcher *RecordBatcher) flushLocked(ctx context.Context) error {
	if len(recordBatcher.buffer) == 0 {
		return nil
	}
	extractionDate := time.Now().UTC()
	savers := make([]*bigquery.StructSaver, 0, len(recordBatcher.buffer))
	for i := range recordBatcher.buffer {
		recordBatcher.buffer[i].ExtractionDate = extractionDate
		savers = append(savers, &bigquery.StructSaver{
			Struct:   recordBatcher.buffer[i],
			Schema:   GetManifestRecordsSchema(),
			InsertID: fmt.Sprintf("%s/%s", recordBatcher.runID, recordBatcher.buffer[i].ScriptID),
		})
	}
	err := erm.RetryWithBackoff(ctx, recordBatcher.retryMaxAttempts, recordBatcher.retryBaseDelay, recordBatcher.retryMaxDelay, func() error {
		return recordBatcher.inserter.Put(ctx, savers)
	})
	if err != nil {
		return fmt.Errorf("inserter.Put %d records: %w", len(recordBatcher.buffer), err)
	}
	recordBatcher.flushedRecords = recordBatcher.flushedRecords + len(recordBatcher.buffer)
	log.Printf("run_id %s flushed %d records", recordBatcher.runID, len(recordBatcher.buffer))
	recordBatcher.buffer = nil
	return nil
}
