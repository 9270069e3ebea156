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
	"context"
	"fmt"

	"google.golang.org/api/impersonate"
	"google.golang.org/api/option"
)

// GetDelegatedClientOption exchanges the fixed service identity for a credential scoped to one subject
// The returned client option is owned by the worker processing that subject and must not be reused for another one
// With a key file it builds the JWT config the legacy way, without one it impersonates the service account through IAM using application default credentials
func GetDelegatedClientOption(ctx context.Context, serviceAccountEmail string, keyJSONFilePath string, subjectEmail string, scopes []string) (option.ClientOption, error) {
	if keyJSONFilePath != "" {
		jwtConfig, err := getJWTConfigAndImpersonate(keyJSONFilePath, subjectEmail, scopes)
		if err != nil {
			return nil, fmt.Errorf("getJWTConfigAndImpersonate %s: %w", subjectEmail, err)
		}
		return option.WithHTTPClient(jwtConfig.Client(ctx)), nil
	}
	tokenSource, err := impersonate.CredentialsTokenSource(ctx, impersonate.CredentialsConfig{
		TargetPrincipal: serviceAccountEmail,
		Scopes:          scopes,
		Subject:         subjectEmail,
	})
	if err != nil {
		return nil, fmt.Errorf("impersonate.CredentialsTokenSource %s: %w", subjectEmail, err)
	}
	return option.WithTokenSource(tokenSource), nil
}
