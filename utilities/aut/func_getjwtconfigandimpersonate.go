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
	"fmt"
	"io/ioutil"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
)

// getJWTConfigAndImpersonate builds a JWT config from a service account key file and sets the subject to impersonate
// The subject claim is what turns the service account token into a delegated token
func getJWTConfigAndImpersonate(keyJSONFilePath string, subjectEmail string, scopes []string) (jwtConfig *jwt.Config, err error) {
	keyJSONdata, err := ioutil.ReadFile(keyJSONFilePath)
	if err != nil {
		return nil, fmt.Errorf("ioutil.ReadFile: %w", err)
	}
	jwtConfig, err = google.JWTConfigFromJSON(keyJSONdata, scopes...)
	if err != nil {
		return nil, fmt.Errorf("google.JWTConfigFromJSON: %w", err)
	}
	jwtConfig.Subject = subjectEmail
	return jwtConfig, nil
}
