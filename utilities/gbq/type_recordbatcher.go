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
	"sync"
	"time"
)

// Inserter is the row insert surface of a bigquery table, narrowed for unit tests
type Inserter interface {
	Put(ctx context.Context, src interface{}) error
}

// RecordBatcher buffers manifest records and flushes them in bounded batches
// The only state shared between workers: Add and Flush are safe for concurrent use
// Per run deduplication on script id, InsertID runID/scriptID keeps retried flushes from garbling rows
type RecordBatcher struct {
	mux                 sync.Mutex
	inserter            Inserter
	runID               string
	batchSize           int
	retryMaxAttempts    int
	retryBaseDelay      time.Duration
	retryMaxDelay       time.Duration
	buffer              []ManifestRecord
	seenScriptIDs       map[string]bool
	flushedRecords      int
	deduplicatedRecords int
}

// NewRecordBatcher builds the batching buffer for one run
func NewRecordBatcher(inserter Inserter, runID string, batchSize int, retryMaxAttempts int, retryBaseDelay time.Duration, retryMaxDelay time.Duration) *RecordBatcher {
	return &RecordBatcher{
		inserter:         inserter,
		runID:            runID,
		batchSize:        batchSize,
		retryMaxAttempts: retryMaxAttempts,
		retryBaseDelay:   retryBaseDelay,
		retryMaxDelay:    retryMaxDelay,
		seenScriptIDs:    map[string]bool{},
	}
}

// FlushedRecords tells how many records reached the table over the run
func (recordBatcher *RecordBatcher) FlushedRecords() int {
	recordBatcher.mux.Lock()
	defer recordBatcher.mux.Unlock()
	return recordBatcher.flushedRecords
}

// DeduplicatedRecords tells how many records were dropped as duplicate script ids within the run
func (recordBatcher *RecordBatcher) DeduplicatedRecords() int {
	recordBatcher.mux.Lock()
	defer recordBatcher.mux.Unlock()
	return recordBatcher.deduplicatedRecords
}

// BufferedRecords tells how many records await the next flush
func (recordBatcher *RecordBatcher) BufferedRecords() int {
	recordBatcher.mux.Lock()
	defer recordBatcher.mux.Unlock()
	return len(recordBatcher.buffer)
}
