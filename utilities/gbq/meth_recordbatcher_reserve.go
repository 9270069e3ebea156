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

// Reserve claims a script id for this run, false when the id was already claimed
// The caller skips extraction entirely on a duplicate: one row per script per run,
// whether the duplicate comes from a retried listing or from concurrent discovery
func (recordBatcher *RecordBatcher) Reserve(scriptID string) bool {
	recordBatcher.mux.Lock()
	defer recordBatcher.mux.Unlock()
	if recordBatcher.seenScriptIDs[scriptID] {
		recordBatcher.deduplicatedRecords++
		return false
	}
	recordBatcher.seenScriptIDs[scriptID] = true
	return true
}
