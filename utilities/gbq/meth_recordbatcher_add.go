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

import "context"

// Add buffers one manifest record and flushes when the batch size threshold is reached
// The script id must have been reserved first, Add itself does not deduplicate
func (recordBatcher *RecordBatcher) Add(ctx context.Context, manifestRecord ManifestRecord) error {
	recordBatcher.mux.Lock()
	defer recordBatcher.mux.Unlock()
	recordBatcher.buffer = append(recordBatcher.buffer, manifestRecord)
	if len(recordBatcher.buffer) >= recordBatcher.batchSize {
		return recordBatcher.flushLocked(ctx)
	}
	return nil
}
