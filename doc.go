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

/*
Package scriptauditmonitor SAM Script Audit Monitor

## What

Inventory the Apps Script manifests of a Google Workspace domain: enumerate every active user, discover each user's standalone Apps Script projects, download each project's manifest, and append one audit row per project per run into a BigQuery table.

### Use cases

1. Security compliance: which scripts request which OAuth scopes, and who owns them
2. Operational compliance
   - E.g. detect scripts calling deprecated advanced services before Google turns them down
3. Rationalization
   - E.g. find the long tail of abandoned automation still holding delegated access

## Why

- Standalone Apps Script projects are user owned and invisible to project level asset inventories
- A manifest is the smallest artifact that states what a script is allowed to do
- One append-only row per scan keeps the full history: what changed, and when
*/
package scriptauditmonitor
