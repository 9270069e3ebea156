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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/api/script/v1"

	"google.golang.org/api/option"
)

func newScriptService(t *testing.T, testServer *httptest.Server) *script.Service {
	scriptService, err := script.NewService(context.Background(),
		option.WithEndpoint(testServer.URL),
		option.WithoutAuthentication())
	if err != nil {
		t.Fatal(err)
	}
	return scriptService
}

func TestUnitGetManifestContent(t *testing.T) {
	var testCases = []struct {
		name                string
		files               []*script.File
		wantManifestContent string
	}{
		{
			name: "manifestFound",
			files: []*script.File{
				{Name: "Code", Type: "SERVER_JS", Source: "function main() {}"},
				{Name: "appsscript", Type: "JSON", Source: `{"timeZone":"Etc/UTC","oauthScopes":["https://www.googleapis.com/auth/gmail.send"]}`},
			},
			wantManifestContent: `{"timeZone":"Etc/UTC","oauthScopes":["https://www.googleapis.com/auth/gmail.send"]}`,
		},
		{
			name: "noManifestFileIsEmptyContent",
			files: []*script.File{
				{Name: "Code", Type: "SERVER_JS", Source: "function main() {}"},
			},
			wantManifestContent: "",
		},
		{
			name: "serverJSNamedAppsscriptIsNotTheManifest",
			files: []*script.File{
				{Name: "appsscript", Type: "SERVER_JS", Source: "function trap() {}"},
			},
			wantManifestContent: "",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			testServer := httptest.NewServer(http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
				responseWriter.Header().Set("Content-Type", "application/json")
				if err := json.NewEncoder(responseWriter).Encode(&script.Content{ScriptId: "script1", Files: testCase.files}); err != nil {
					t.Fatal(err)
				}
			}))
			defer testServer.Close()

			manifestContent, err := GetManifestContent(context.Background(), newScriptService(t, testServer), "script1")
			if err != nil {
				t.Fatalf("GetManifestContent: %v", err)
			}
			if manifestContent != testCase.wantManifestContent {
				t.Errorf("got %s, want %s", manifestContent, testCase.wantManifestContent)
			}
		})
	}
}

func TestUnitGetManifestContentNotFound(t *testing.T) {
	// a script deleted between enumeration and extraction surfaces as 404
	testServer := httptest.NewServer(http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		responseWriter.WriteHeader(http.StatusNotFound)
	}))
	defer testServer.Close()

	_, err := GetManifestContent(context.Background(), newScriptService(t, testServer), "gone")
	if err == nil {
		t.Fatal("want an error so the caller can emit a tagged failure record")
	}
}
