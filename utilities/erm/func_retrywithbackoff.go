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
	"log"
	"time"
)

// RetryWithBackoff runs call up to maxAttempts times while the error stays retryable
// Waits baseDelay between the first two attempts then doubles up to maxDelay
// A cancelled context stops the loop, unauthorized / permission / not found errors return immediately
func RetryWithBackoff(ctx context.Context, maxAttempts int, baseDelay time.Duration, maxDelay time.Duration, call func() error) (err error) {
	delay := baseDelay
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = call()
		if err == nil {
			return nil
		}
		category := GetErrorCategory(err)
		if !IsRetryable(category) {
			return err
		}
		if attempt == maxAttempts {
			break
		}
		log.Printf("%s error, wait %v then retry, attempt %d of %d: %v", category, delay, attempt+1, maxAttempts, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay = delay * 2
		if delay > maxDelay {
			delay = maxDelay
		}
	}
	return err
}
