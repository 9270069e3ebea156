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

package harvestmanifests

import (
	"encoding/json"
	"log"
	"sync"
)

// RunSummary aggregates the counters of one run, the user visible output of the pipeline
// Per item failures are folded in as counts by error category, they never escape as exceptions
type RunSummary struct {
	mux                 sync.Mutex
	RunID               string         `json:"runID"`
	UsersEnumerated     int            `json:"usersEnumerated"`
	DirectoryPages      int            `json:"directoryPages"`
	PartialEnumeration  bool           `json:"partialEnumeration"`
	UsersFailed         int            `json:"usersFailed"`
	ProjectsDiscovered  int            `json:"projectsDiscovered"`
	ManifestsExtracted  int            `json:"manifestsExtracted"`
	RecordsFlushed      int            `json:"recordsFlushed"`
	RecordsDeduplicated int            `json:"recordsDeduplicated"`
	WriteFailures       int            `json:"writeFailures"`
	ErrorCounts         map[string]int `json:"errorCounts"`
	LatencySeconds      float64        `json:"latencySeconds"`
}

// NewRunSummary builds the summary for one run
func NewRunSummary(runID string) *RunSummary {
	return &RunSummary{RunID: runID, ErrorCounts: map[string]int{}}
}

// String renders the summary as JSON
func (runSummary *RunSummary) String() string {
	runSummary.mux.Lock()
	defer runSummary.mux.Unlock()
	out, err := json.Marshal(runSummary)
	if err != nil {
		log.Printf("json.Marshal: %v", err)
	}
	return string(out)
}

func (runSummary *RunSummary) setEnumeration(usersEnumerated int, directoryPages int) {
	runSummary.mux.Lock()
	defer runSummary.mux.Unlock()
	runSummary.UsersEnumerated = usersEnumerated
	runSummary.DirectoryPages = directoryPages
}

func (runSummary *RunSummary) flagPartialEnumeration() {
	runSummary.mux.Lock()
	defer runSummary.mux.Unlock()
	runSummary.PartialEnumeration = true
}

func (runSummary *RunSummary) recordUserFailure(category string) {
	runSummary.mux.Lock()
	defer runSummary.mux.Unlock()
	runSummary.UsersFailed++
	runSummary.ErrorCounts[category]++
}

func (runSummary *RunSummary) recordProjectDiscovered() {
	runSummary.mux.Lock()
	defer runSummary.mux.Unlock()
	runSummary.ProjectsDiscovered++
}

func (runSummary *RunSummary) recordManifestExtracted() {
	runSummary.mux.Lock()
	defer runSummary.mux.Unlock()
	runSummary.ManifestsExtracted++
}

func (runSummary *RunSummary) recordExtractionFailure(category string) {
	runSummary.mux.Lock()
	defer runSummary.mux.Unlock()
	runSummary.ErrorCounts[category]++
}

func (runSummary *RunSummary) recordWriteFailure(category string) {
	runSummary.mux.Lock()
	defer runSummary.mux.Unlock()
	runSummary.WriteFailures++
	runSummary.ErrorCounts[category]++
}
