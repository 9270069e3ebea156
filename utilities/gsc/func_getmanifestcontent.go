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

package gsc

import (
	"context"
	"fmt"

	"google.golang.org/api/script/v1"
)

// the manifest is the project file named appsscript, of type JSON
const manifestFileName = "appsscript"
const manifestFileType = "JSON"

// GetManifestContent fetches the manifest of one script project as opaque text
// The content is the source system's own serialization, it is never parsed here
// A readable project without a manifest file yields empty content and no error
func GetManifestContent(ctx context.Context, scriptService *script.Service, scriptID string) (manifestContent string, err error) {
	content, err := scriptService.Projects.GetContent(scriptID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("scriptService.Projects.GetContent %s: %w", scriptID, err)
	}
	for _, file := range content.Files {
		if file.Name == manifestFileName && file.Type == manifestFileType {
			return file.Source, nil
		}
	}
	return "", nil
}
