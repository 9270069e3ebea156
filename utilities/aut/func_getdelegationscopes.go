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

package aut

import (
	admin "google.golang.org/api/admin/directory/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/script/v1"
)

// GetDelegationScopes returns the read only scope set the domain wide delegation grant must cover
// Registered out of band in the Workspace admin console, not runtime mutable
func GetDelegationScopes() []string {
	return []string{
		admin.AdminDirectoryUserReadonlyScope,
		drive.DriveReadonlyScope,
		script.ScriptProjectsReadonlyScope,
	}
}
