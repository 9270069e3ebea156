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
	"context"
	"errors"
	"strings"

	"google.golang.org/api/googleapi"
)

// Error categories, persisted as extraction status tags and aggregated in run summaries
const (
	CategoryTransient        = "transient"
	CategoryQuota            = "quota"
	CategoryPermissionDenied = "permission_denied"
	CategoryNotFound         = "not_found"
	CategoryUnauthorized     = "unauthorized"
	CategoryUnknown          = "unknown"
)

// GetErrorCategory classifies an error from a Google API call
// Prefers the structured googleapi.Error code, falls back on message sniffing for wrapped transport errors
func GetErrorCategory(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		// a per call timeout converts to a retryable error
		return CategoryTransient
	}
	var googleErr *googleapi.Error
	if errors.As(err, &googleErr) {
		switch {
		case googleErr.Code == 429:
			return CategoryQuota
		case googleErr.Code == 403:
			// Drive and Apps Script APIs surface rate limiting as 403 with a rate reason
			for _, errorItem := range googleErr.Errors {
				switch errorItem.Reason {
				case "rateLimitExceeded", "userRateLimitExceeded", "quotaExceeded", "dailyLimitExceeded":
					return CategoryQuota
				}
			}
			return CategoryPermissionDenied
		case googleErr.Code == 401:
			return CategoryUnauthorized
		case googleErr.Code == 404:
			return CategoryNotFound
		case googleErr.Code >= 500:
			return CategoryTransient
		}
		return CategoryUnknown
	}
	errorMessage := err.Error()
	switch {
	case strings.Contains(errorMessage, "invalid_grant"),
		strings.Contains(errorMessage, "unauthorized_client"),
		strings.Contains(errorMessage, "401"):
		// the delegation grant does not cover the subject or the scopes
		return CategoryUnauthorized
	case strings.Contains(errorMessage, "429"),
		strings.Contains(errorMessage, "rateLimitExceeded"):
		return CategoryQuota
	case strings.Contains(errorMessage, "403"):
		return CategoryPermissionDenied
	case strings.Contains(errorMessage, "404"):
		return CategoryNotFound
	}
	for _, transientCode := range []string{"500", "501", "502", "503", "504", "505", "506", "507", "508", "510", "511"} {
		if strings.Contains(errorMessage, transientCode) {
			return CategoryTransient
		}
	}
	if strings.Contains(errorMessage, "connection reset") ||
		strings.Contains(errorMessage, "connection refused") ||
		strings.Contains(errorMessage, "EOF") ||
		strings.Contains(errorMessage, "timeout") {
		return CategoryTransient
	}
	return CategoryUnknown
}

// IsRetryable tells whether a category is worth another attempt
func IsRetryable(category string) bool {
	return category == CategoryTransient || category == CategoryQuota
}
