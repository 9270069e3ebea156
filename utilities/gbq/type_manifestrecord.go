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

import "time"

// ManifestRecord is one audit row: exactly one per discovered script project per run, success or tagged failure
type ManifestRecord struct {
	ScriptID         string    `bigquery:"script_id"`
	ScriptName       string    `bigquery:"script_name"`
	OwnerEmail       string    `bigquery:"owner_email"`
	ManifestContent  string    `bigquery:"manifest_content"`
	ExtractionDate   time.Time `bigquery:"extraction_date"`
	RunID            string    `bigquery:"run_id"`
	ExtractionStatus string    `bigquery:"extraction_status"`
}
