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
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	admin "google.golang.org/api/admin/directory/v1"
	"google.golang.org/api/option"
)

type fakeUsersPage struct {
	users         []*admin.User
	nextPageToken string
	statusCode    int
}

func newFakeDirectoryServer(t *testing.T, pagesByToken map[string]fakeUsersPage, requests *int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		*requests = *requests + 1
		page, found := pagesByToken[request.URL.Query().Get("pageToken")]
		if !found {
			t.Errorf("unexpected pageToken %s", request.URL.Query().Get("pageToken"))
			responseWriter.WriteHeader(http.StatusBadRequest)
			return
		}
		if page.statusCode != 0 {
			responseWriter.WriteHeader(page.statusCode)
			return
		}
		responseWriter.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(responseWriter).Encode(&admin.Users{Users: page.users, NextPageToken: page.nextPageToken}); err != nil {
			t.Fatal(err)
		}
	}))
}

func newDirectoryService(t *testing.T, testServer *httptest.Server) *admin.Service {
	dirAdminService, err := admin.NewService(context.Background(),
		option.WithEndpoint(testServer.URL),
		option.WithoutAuthentication())
	if err != nil {
		t.Fatal(err)
	}
	return dirAdminService
}

func TestUnitBrowseUsersPagination(t *testing.T) {
	// two pages of users plus a final empty page without continuation token
	requests := 0
	testServer := newFakeDirectoryServer(t, map[string]fakeUsersPage{
		"":      {users: []*admin.User{{PrimaryEmail: "a@x.com"}, {PrimaryEmail: "b@x.com"}}, nextPageToken: "page2"},
		"page2": {users: []*admin.User{{PrimaryEmail: "d@x.com"}}, nextPageToken: "page3"},
		"page3": {},
	}, &requests)
	defer testServer.Close()

	var yieldedEmails []string
	browsedUsers, pages, err := BrowseUsers(context.Background(), newDirectoryService(t, testServer), "my_customer", 2, false, func(users []DomainUser) error {
		for _, user := range users {
			yieldedEmails = append(yieldedEmails, user.PrimaryEmail)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("BrowseUsers: %v", err)
	}
	if requests != 3 {
		t.Errorf("got %d requests, want 3: N pages of users must cost N+1 requests", requests)
	}
	if pages != 3 {
		t.Errorf("got %d pages, want 3", pages)
	}
	if browsedUsers != 3 {
		t.Errorf("got %d browsed users, want 3", browsedUsers)
	}
	wantEmails := []string{"a@x.com", "b@x.com", "d@x.com"}
	if len(yieldedEmails) != len(wantEmails) {
		t.Fatalf("got %v, want %v", yieldedEmails, wantEmails)
	}
	for i := range wantEmails {
		if yieldedEmails[i] != wantEmails[i] {
			t.Errorf("got %v, want %v: each user yielded exactly once, in page order", yieldedEmails, wantEmails)
		}
	}
}

func TestUnitBrowseUsersFiltersSuspended(t *testing.T) {
	requests := 0
	testServer := newFakeDirectoryServer(t, map[string]fakeUsersPage{
		"": {users: []*admin.User{
			{PrimaryEmail: "a@x.com"},
			{PrimaryEmail: "b@x.com"},
			{PrimaryEmail: "c@x.com", Suspended: true},
		}},
	}, &requests)
	defer testServer.Close()

	var testCases = []struct {
		name             string
		includeSuspended bool
		wantUsers        int
	}{
		{
			name:             "excludeSuspended",
			includeSuspended: false,
			wantUsers:        2,
		},
		{
			name:             "includeSuspended",
			includeSuspended: true,
			wantUsers:        3,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			yieldedEmails := make(map[string]bool)
			browsedUsers, _, err := BrowseUsers(context.Background(), newDirectoryService(t, testServer), "my_customer", 500, testCase.includeSuspended, func(users []DomainUser) error {
				for _, user := range users {
					yieldedEmails[user.PrimaryEmail] = true
				}
				return nil
			})
			if err != nil {
				t.Fatalf("BrowseUsers: %v", err)
			}
			if browsedUsers != testCase.wantUsers {
				t.Errorf("got %d users, want %d", browsedUsers, testCase.wantUsers)
			}
			if !testCase.includeSuspended {
				if yieldedEmails["c@x.com"] {
					t.Errorf("suspended user c@x.com must not be yielded")
				}
				if !yieldedEmails["a@x.com"] || !yieldedEmails["b@x.com"] {
					t.Errorf("active users must be yielded, got %v", yieldedEmails)
				}
			}
		})
	}
}

func TestUnitBrowseUsersPartialEnumeration(t *testing.T) {
	requests := 0
	testServer := newFakeDirectoryServer(t, map[string]fakeUsersPage{
		"":      {users: []*admin.User{{PrimaryEmail: "a@x.com"}}, nextPageToken: "page2"},
		"page2": {statusCode: http.StatusServiceUnavailable},
	}, &requests)
	defer testServer.Close()

	browsedUsers, pages, err := BrowseUsers(context.Background(), newDirectoryService(t, testServer), "my_customer", 1, false, func(users []DomainUser) error {
		return nil
	})
	var partialEnumerationError *PartialEnumerationError
	if !errors.As(err, &partialEnumerationError) {
		t.Fatalf("got err %v, want a PartialEnumerationError", err)
	}
	if browsedUsers != 1 || pages != 1 {
		t.Errorf("got %d users %d pages, want the first page yielded before the failure", browsedUsers, pages)
	}
}

func TestUnitBrowseUsersTotalFailure(t *testing.T) {
	requests := 0
	testServer := newFakeDirectoryServer(t, map[string]fakeUsersPage{
		"": {statusCode: http.StatusServiceUnavailable},
	}, &requests)
	defer testServer.Close()

	_, _, err := BrowseUsers(context.Background(), newDirectoryService(t, testServer), "my_customer", 1, false, func(users []DomainUser) error {
		return nil
	})
	if err == nil {
		t.Fatal("want an error on first page failure")
	}
	var partialEnumerationError *PartialEnumerationError
	if errors.As(err, &partialEnumerationError) {
		t.Errorf("a first page failure is total, not partial: %v", err)
	}
}
