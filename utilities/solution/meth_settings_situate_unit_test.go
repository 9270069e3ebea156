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
	"os"
	"strings"
	"testing"
)

func setEnv(t *testing.T, environment map[string]string) {
	for _, name := range []string{"PROJECT_ID", "DATASET_ID", "MANIFEST_TABLE_ID", "ADMIN_USER_EMAIL", "SERVICE_ACCOUNT_EMAIL", "KEY_JSON_FILE_PATH"} {
		os.Unsetenv(name)
	}
	for name, value := range environment {
		os.Setenv(name, value)
	}
}

func TestUnitSettingsSituate(t *testing.T) {
	var testCases = []struct {
		name            string
		environment     map[string]string
		wantErr         bool
		wantErrContains string
		wantDatasetName string
		wantTableName   string
	}{
		{
			name: "allRequiredPresent",
			environment: map[string]string{
				"PROJECT_ID":            "audit-prj",
				"DATASET_ID":            "workspace_audit",
				"ADMIN_USER_EMAIL":      "admin@x.com",
				"SERVICE_ACCOUNT_EMAIL": "sam@audit-prj.iam.gserviceaccount.com",
			},
			wantErr:         false,
			wantDatasetName: "workspace_audit",
			wantTableName:   "manifest_audit_log",
		},
		{
			name: "dottedIdentifiersAreSanitized",
			environment: map[string]string{
				"PROJECT_ID":            "audit-prj",
				"DATASET_ID":            "audit-prj.workspace_audit",
				"MANIFEST_TABLE_ID":     "audit-prj.workspace_audit.manifests",
				"ADMIN_USER_EMAIL":      "admin@x.com",
				"SERVICE_ACCOUNT_EMAIL": "sam@audit-prj.iam.gserviceaccount.com",
			},
			wantErr:         false,
			wantDatasetName: "workspace_audit",
			wantTableName:   "manifests",
		},
		{
			name: "missingRequiredIsFatal",
			environment: map[string]string{
				"PROJECT_ID": "audit-prj",
				"DATASET_ID": "workspace_audit",
			},
			wantErr:         true,
			wantErrContains: "ADMIN_USER_EMAIL",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			setEnv(t, testCase.environment)
			var settings Settings
			err := settings.Situate()
			if testCase.wantErr {
				if err == nil {
					t.Fatal("want an error, got none")
				}
				if !strings.Contains(err.Error(), testCase.wantErrContains) {
					t.Errorf("got error %v, want it to name %s", err, testCase.wantErrContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("Situate: %v", err)
			}
			if settings.DatasetName != testCase.wantDatasetName {
				t.Errorf("got dataset %s, want %s", settings.DatasetName, testCase.wantDatasetName)
			}
			if settings.TableName != testCase.wantTableName {
				t.Errorf("got table %s, want %s", settings.TableName, testCase.wantTableName)
			}
			if settings.MaxWorkers != 8 || settings.BatchSize != 500 {
				t.Errorf("got workers %d batch %d, want defaults 8 and 500", settings.MaxWorkers, settings.BatchSize)
			}
			if settings.DirectoryCustomerID != "my_customer" {
				t.Errorf("got customer %s, want my_customer", settings.DirectoryCustomerID)
			}
		})
	}
}
