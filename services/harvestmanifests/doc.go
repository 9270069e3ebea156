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
Package harvestmanifests extracts the Apps Script manifest of every standalone script project in a Workspace domain

Triggered by

Cloud Scheduler Job, through an HTTP POST on the Cloud Run service hosting this package.

Instances

one per Workspace directory customer ID.

Output

One row per discovered script project per run, appended to the BigQuery manifest audit log table. Success or tagged failure: no silent drop.

Cardinality

- one-many: one run fans out to a bounded in process worker pool, one user at a time per worker.

- concurrent runs are prevented at the scheduling layer (Cloud Run max concurrency one), not here.

Automatic retrying

Yes, bounded exponential backoff on transient and quota errors. Permission denied and not found errors are folded into the record's extraction status instead.

Is recursive

No.

Domain Wide Delegation

Yes. The service account used to run this service must have domain wide delegation and the following Oauth scopes:

- https://www.googleapis.com/auth/admin.directory.user.readonly

- https://www.googleapis.com/auth/drive.readonly

- https://www.googleapis.com/auth/script.projects.readonly

Each worker acquires its own credential delegated to the user being scanned and discards it when that user completes: one failure domain per user, never a global authenticated client.

Implementation example

 package main

 import (
     "context"
     "log"
     "net/http"
     "os"

     "github.com/BrunoReboul/sam/services/harvestmanifests"
 )

 var global harvestmanifests.Global
 var ctx = context.Background()

 func main() {
     if err := harvestmanifests.Initialize(ctx, &global); err != nil {
         log.Fatalf("harvestmanifests.Initialize: %v", err)
     }
     http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
         runSummary, err := harvestmanifests.EntryPoint(r.Context(), &global)
         if err != nil {
             log.Printf("harvestmanifests.EntryPoint: %v", err)
             http.Error(w, "run failed", http.StatusInternalServerError)
             return
         }
         w.Write([]byte(runSummary.String()))
     })
     log.Fatal(http.ListenAndServe(":"+os.Getenv("PORT"), nil))
 }
*/
package harvestmanifests
