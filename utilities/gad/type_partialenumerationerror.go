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

import "fmt"

// PartialEnumerationError flags a directory walk that failed mid pagination
// The users already yielded stand, a partial result is preferable to none
type PartialEnumerationError struct {
	BrowsedUsers int
	Pages        int
	Err          error
}

func (partialEnumerationError *PartialEnumerationError) Error() string {
	return fmt.Sprintf("partial enumeration, %d users yielded over %d pages then: %v",
		partialEnumerationError.BrowsedUsers, partialEnumerationError.Pages, partialEnumerationError.Err)
}

func (partialEnumerationError *PartialEnumerationError) Unwrap() error {
	return partialEnumerationError.Err
}
