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

package erm

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/api/googleapi"
)

func TestUnitGetErrorCategory(t *testing.T) {
	var testCases = []struct {
		name         string
		err          error
		wantCategory string
	}{
		{
			name:         "nilError",
			err:          nil,
			wantCategory: "",
		},
		{
			name:         "quota429",
			err:          &googleapi.Error{Code: 429, Message: "Quota exceeded"},
			wantCategory: CategoryQuota,
		},
		{
			name: "quotaAs403RateReason",
			err: &googleapi.Error{Code: 403, Errors: []googleapi.ErrorItem{
				{Reason: "userRateLimitExceeded"},
			}},
			wantCategory: CategoryQuota,
		},
		{
			name:         "permissionDenied403",
			err:          &googleapi.Error{Code: 403, Message: "The caller does not have permission"},
			wantCategory: CategoryPermissionDenied,
		},
		{
			name:         "notFound404",
			err:          &googleapi.Error{Code: 404, Message: "Requested entity was not found"},
			wantCategory: CategoryNotFound,
		},
		{
			name:         "unauthorized401",
			err:          &googleapi.Error{Code: 401, Message: "Login required"},
			wantCategory: CategoryUnauthorized,
		},
		{
			name:         "transient503",
			err:          &googleapi.Error{Code: 503, Message: "Backend Error"},
			wantCategory: CategoryTransient,
		},
		{
			name:         "wrapped500KeepsCategory",
			err:          fmt.Errorf("scriptService.Projects.GetContent abc: %w", &googleapi.Error{Code: 500}),
			wantCategory: CategoryTransient,
		},
		{
			name:         "invalidGrantIsUnauthorized",
			err:          errors.New("oauth2: cannot fetch token: 400 Bad Request: invalid_grant"),
			wantCategory: CategoryUnauthorized,
		},
		{
			name:         "connectionResetIsTransient",
			err:          errors.New("Get https://www.googleapis.com: read: connection reset by peer"),
			wantCategory: CategoryTransient,
		},
		{
			name:         "unknown",
			err:          errors.New("json: cannot unmarshal"),
			wantCategory: CategoryUnknown,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			category := GetErrorCategory(testCase.err)
			if category != testCase.wantCategory {
				t.Errorf("got category %s, want %s", category, testCase.wantCategory)
			}
		})
	}
}

func TestUnitIsRetryable(t *testing.T) {
	var testCases = []struct {
		category      string
		shouldBeRetry bool
	}{
		{CategoryTransient, true},
		{CategoryQuota, true},
		{CategoryPermissionDenied, false},
		{CategoryNotFound, false},
		{CategoryUnauthorized, false},
		{CategoryUnknown, false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.category, func(t *testing.T) {
			if IsRetryable(testCase.category) != testCase.shouldBeRetry {
				t.Errorf("IsRetryable(%s) got %v, want %v", testCase.category, !testCase.shouldBeRetry, testCase.shouldBeRetry)
			}
		})
	}
}
