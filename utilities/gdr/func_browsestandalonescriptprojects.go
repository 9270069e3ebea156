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

package gdr

import (
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"
)

// standalone Apps Script projects are Drive files of this mimeType owned by the impersonated user
const standaloneScriptProjectsQuery = "mimeType='application/vnd.google-apps.script' and 'me' in owners and trashed=false"

// BrowseStandaloneScriptProjects walks the standalone Apps Script projects owned by the impersonated user
// The Drive service must carry a credential delegated to ownerEmail
// Scripts bound to a Shared Drive carry a driveId and are excluded structurally, not by naming convention
// No project at all is a success with zero results
func BrowseStandaloneScriptProjects(ctx context.Context, driveService *drive.Service, ownerEmail string, pageSize int64, browseProjectsPage func(projects []ScriptProject) error) (browsedProjects int, err error) {
	pageToken := ""
	for {
		filesListCall := driveService.Files.List().
			Q(standaloneScriptProjectsQuery).
			Spaces("drive").
			Fields("nextPageToken, files(id, name, driveId)").
			PageSize(pageSize).
			Context(ctx)
		if pageToken != "" {
			filesListCall = filesListCall.PageToken(pageToken)
		}
		fileList, err := filesListCall.Do()
		if err != nil {
			return browsedProjects, fmt.Errorf("driveService.Files.List %s: %w", ownerEmail, err)
		}
		projects := make([]ScriptProject, 0, len(fileList.Files))
		for _, file := range fileList.Files {
			if file.DriveId != "" {
				continue
			}
			projects = append(projects, ScriptProject{ScriptID: file.Id, Name: file.Name, OwnerEmail: ownerEmail})
		}
		browsedProjects = browsedProjects + len(projects)
		if len(projects) > 0 {
			if err := browseProjectsPage(projects); err != nil {
				return browsedProjects, err
			}
		}
		pageToken = fileList.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return browsedProjects, nil
}
