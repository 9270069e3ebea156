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

package gad

import (
	"context"
	"fmt"

	admin "google.golang.org/api/admin/directory/v1"
)

// BrowseUsers walks every user of the directory customer page by page and hands each page to browseUsersPage
// Keeps requesting pages until the provider returns no continuation token
// Suspended and archived accounts are dropped unless includeSuspended is set: their scripts are out of audit scope
// An error on the first page is a total enumeration failure, later a PartialEnumerationError carrying what was yielded
// A non nil error from browseUsersPage halts the walk
func BrowseUsers(ctx context.Context, dirAdminService *admin.Service, directoryCustomerID string, maxResultsPerPage int64, includeSuspended bool, browseUsersPage func(users []DomainUser) error) (browsedUsers int, pages int, err error) {
	pageToken := ""
	for {
		usersListCall := dirAdminService.Users.List().Customer(directoryCustomerID).MaxResults(maxResultsPerPage).OrderBy("email").Context(ctx)
		if pageToken != "" {
			usersListCall = usersListCall.PageToken(pageToken)
		}
		users, err := usersListCall.Do()
		if err != nil {
			if pages == 0 {
				return 0, 0, fmt.Errorf("dirAdminService.Users.List: %w", err)
			}
			return browsedUsers, pages, &PartialEnumerationError{BrowsedUsers: browsedUsers, Pages: pages, Err: err}
		}
		pages++
		domainUsers := make([]DomainUser, 0, len(users.Users))
		for _, user := range users.Users {
			if !includeSuspended && (user.Suspended || user.Archived) {
				continue
			}
			domainUsers = append(domainUsers, DomainUser{PrimaryEmail: user.PrimaryEmail, Suspended: user.Suspended})
		}
		browsedUsers = browsedUsers + len(domainUsers)
		if len(domainUsers) > 0 {
			if err := browseUsersPage(domainUsers); err != nil {
				return browsedUsers, pages, err
			}
		}
		pageToken = users.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return browsedUsers, pages, nil
}
