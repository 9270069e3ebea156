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

import (
	"fmt"
	"os"
	"strings"
)

// Situate applies defaults then reads identities and targets from the environment
// Missing required environment variables are a fatal configuration error, not a runtime retry case
func (settings *Settings) Situate() error {
	if settings.Environment == "" {
		settings.Environment = "prd"
	}
	if settings.DatasetLocation == "" {
		settings.DatasetLocation = "US"
	}
	if settings.DirectoryCustomerID == "" {
		// my_customer aliases the account own customer ID for an account administrator
		settings.DirectoryCustomerID = "my_customer"
	}
	if settings.MaxWorkers == 0 {
		settings.MaxWorkers = 8
	}
	if settings.BatchSize == 0 {
		settings.BatchSize = 500
	}
	if settings.MaxResultsPerPage == 0 {
		settings.MaxResultsPerPage = 500
	}
	if settings.ProjectsPageSize == 0 {
		settings.ProjectsPageSize = 100
	}
	if settings.RetryMaxAttempts == 0 {
		settings.RetryMaxAttempts = 3
	}
	if settings.RetryBaseDelaySeconds == 0 {
		settings.RetryBaseDelaySeconds = 2
	}
	if settings.RetryMaxDelaySeconds == 0 {
		settings.RetryMaxDelaySeconds = 10
	}
	if settings.PerCallTimeoutSeconds == 0 {
		settings.PerCallTimeoutSeconds = 120
	}

	settings.ProjectID = os.Getenv("PROJECT_ID")
	settings.DatasetName = lastDottedSegment(os.Getenv("DATASET_ID"))
	settings.TableName = lastDottedSegment(os.Getenv("MANIFEST_TABLE_ID"))
	if settings.TableName == "" {
		settings.TableName = "manifest_audit_log"
	}
	settings.SuperAdminEmail = os.Getenv("ADMIN_USER_EMAIL")
	settings.ServiceAccountEmail = os.Getenv("SERVICE_ACCOUNT_EMAIL")
	settings.KeyJSONFilePath = os.Getenv("KEY_JSON_FILE_PATH")

	var missing []string
	if settings.ProjectID == "" {
		missing = append(missing, "PROJECT_ID")
	}
	if settings.DatasetName == "" {
		missing = append(missing, "DATASET_ID")
	}
	if settings.SuperAdminEmail == "" {
		missing = append(missing, "ADMIN_USER_EMAIL")
	}
	if settings.ServiceAccountEmail == "" {
		missing = append(missing, "SERVICE_ACCOUNT_EMAIL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, " "))
	}
	return nil
}

// lastDottedSegment strips a project.dataset or project.dataset.table form down to its last segment
// so a fully qualified identifier in the environment does not duplicate the project ID
func lastDottedSegment(identifier string) string {
	if !strings.Contains(identifier, ".") {
		return identifier
	}
	segments := strings.Split(identifier, ".")
	return segments[len(segments)-1]
}
