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

package solution

// SolutionName is used in logs and resource descriptions
const SolutionName = "sam"

// SettingsFileName optional YAML file tuning the service, sitting next to the binary
const SettingsFileName = "settings.yaml"

// Settings for one service instance
// Identities and targets come from the environment, tunables from SettingsFileName defaults
type Settings struct {
	Environment           string `yaml:"environment"`
	ProjectID             string `yaml:"-"`
	DatasetName           string `yaml:"-"`
	DatasetLocation       string `yaml:"datasetLocation"`
	TableName             string `yaml:"-"`
	DirectoryCustomerID   string `yaml:"directoryCustomerID"`
	SuperAdminEmail       string `yaml:"-"`
	ServiceAccountEmail   string `yaml:"-"`
	KeyJSONFilePath       string `yaml:"-"`
	IncludeSuspendedUsers bool   `yaml:"includeSuspendedUsers"`
	MaxWorkers            int    `yaml:"maxWorkers"`
	BatchSize             int    `yaml:"batchSize"`
	MaxResultsPerPage     int64  `yaml:"maxResultsPerPage"`
	ProjectsPageSize      int64  `yaml:"projectsPageSize"`
	RetryMaxAttempts      int    `yaml:"retryMaxAttempts"`
	RetryBaseDelaySeconds int64  `yaml:"retryBaseDelaySeconds"`
	RetryMaxDelaySeconds  int64  `yaml:"retryMaxDelaySeconds"`
	PerCallTimeoutSeconds int64  `yaml:"perCallTimeoutSeconds"`
}
