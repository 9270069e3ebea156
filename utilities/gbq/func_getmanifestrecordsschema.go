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

import "cloud.google.com/go/bigquery"

// GetManifestRecordsSchema defines the manifest audit log table schema
// Append only, no primary key: a script appears once per run and again in every later run
func GetManifestRecordsSchema() bigquery.Schema {
	return bigquery.Schema{
		{Name: "script_id", Required: true, Type: bigquery.StringFieldType},
		{Name: "script_name", Required: false, Type: bigquery.StringFieldType},
		{Name: "owner_email", Required: false, Type: bigquery.StringFieldType},
		{Name: "manifest_content", Required: false, Type: bigquery.StringFieldType, Description: "Raw appsscript manifest, opaque payload, empty when extraction failed"},
		{Name: "extraction_date", Required: false, Type: bigquery.TimestampFieldType, Description: "Stamped once per flushed batch so rows of one run compare at the same granularity"},
		{Name: "run_id", Required: false, Type: bigquery.StringFieldType},
		{Name: "extraction_status", Required: false, Type: bigquery.StringFieldType, Description: "Empty on success, else the error category"},
	}
}
