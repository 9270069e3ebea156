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
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/BrunoReboul/sam/utilities/aut"
	"github.com/BrunoReboul/sam/utilities/erm"
	"github.com/BrunoReboul/sam/utilities/ffo"
	"github.com/BrunoReboul/sam/utilities/gad"
	"github.com/BrunoReboul/sam/utilities/gbq"
	"github.com/BrunoReboul/sam/utilities/gdr"
	"github.com/BrunoReboul/sam/utilities/gsc"
	"github.com/BrunoReboul/sam/utilities/logging"
	"github.com/BrunoReboul/sam/utilities/solution"
	"github.com/google/uuid"

	admin "google.golang.org/api/admin/directory/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/script/v1"
)

const microserviceName = "harvestmanifests"

// Global structure for global variables, initialized once per instance
type Global struct {
	ctx             context.Context
	settings        solution.Settings
	dirAdminService *admin.Service
	inserter        gbq.Inserter
	// userServices builds the drive and script services carrying a credential delegated to one user
	// one credential per user per run, owned by the worker, never reused across users
	userServices func(ctx context.Context, userEmail string) (*drive.Service, *script.Service, error)
}

// Initialize is to be executed once per instance to optimize the cold start
func Initialize(ctx context.Context, global *Global) (err error) {
	global.ctx = ctx
	log.Printf("%s COLD START", microserviceName)

	err = ffo.ReadUnmarshalYAML(solution.SettingsFileName, &global.settings)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("ffo.ReadUnmarshalYAML %s: %v", solution.SettingsFileName, err)
	}
	if err = global.settings.Situate(); err != nil {
		return fmt.Errorf("settings.Situate: %v", err)
	}

	clientOption, err := aut.GetDelegatedClientOption(ctx,
		global.settings.ServiceAccountEmail,
		global.settings.KeyJSONFilePath,
		global.settings.SuperAdminEmail,
		aut.GetDelegationScopes())
	if err != nil {
		return fmt.Errorf("aut.GetDelegatedClientOption superadmin: %v", err)
	}
	global.dirAdminService, err = admin.NewService(ctx, clientOption)
	if err != nil {
		return fmt.Errorf("admin.NewService: %v", err)
	}

	bigQueryClient, err := bigquery.NewClient(ctx, global.settings.ProjectID)
	if err != nil {
		return fmt.Errorf("bigquery.NewClient: %v", err)
	}
	dataset, err := gbq.GetDataset(ctx, global.settings.DatasetName, global.settings.DatasetLocation, bigQueryClient)
	if err != nil {
		return fmt.Errorf("gbq.GetDataset: %v", err)
	}
	table, err := gbq.GetTable(ctx, global.settings.TableName, dataset)
	if err != nil {
		return fmt.Errorf("gbq.GetTable: %v", err)
	}
	global.inserter = table.Inserter()

	settings := global.settings
	global.userServices = func(ctx context.Context, userEmail string) (*drive.Service, *script.Service, error) {
		userClientOption, err := aut.GetDelegatedClientOption(ctx,
			settings.ServiceAccountEmail,
			settings.KeyJSONFilePath,
			userEmail,
			aut.GetDelegationScopes())
		if err != nil {
			return nil, nil, fmt.Errorf("aut.GetDelegatedClientOption %s: %w", userEmail, err)
		}
		driveService, err := drive.NewService(ctx, userClientOption)
		if err != nil {
			return nil, nil, fmt.Errorf("drive.NewService %s: %w", userEmail, err)
		}
		scriptService, err := script.NewService(ctx, userClientOption)
		if err != nil {
			return nil, nil, fmt.Errorf("script.NewService %s: %w", userEmail, err)
		}
		return driveService, scriptService, nil
	}
	return nil
}

// EntryPoint runs one harvest: enumerate, locate, extract, persist, then report
// Returns the run summary, and an error only on configuration fatal, total enumeration or final flush failure
func EntryPoint(ctxEvent context.Context, global *Global) (runSummary *RunSummary, err error) {
	startTime := time.Now()
	runID := uuid.New().String()
	runSummary = NewRunSummary(runID)
	settings := global.settings
	log.Printf("run_id %s start harvest, %d workers, batch size %d", runID, settings.MaxWorkers, settings.BatchSize)

	recordBatcher := gbq.NewRecordBatcher(global.inserter, runID, settings.BatchSize,
		settings.RetryMaxAttempts, retryBaseDelay(settings), retryMaxDelay(settings))

	// enumeration is sequential and feeds the pool, decoupling page fetches from extraction concurrency
	userChan := make(chan gad.DomainUser)
	var waitgroup sync.WaitGroup
	for workerNumber := 0; workerNumber < settings.MaxWorkers; workerNumber++ {
		waitgroup.Add(1)
		go func() {
			defer waitgroup.Done()
			for domainUser := range userChan {
				scanUser(ctxEvent, global, recordBatcher, runSummary, domainUser)
			}
		}()
	}

	browsedUsers, directoryPages, enumErr := gad.BrowseUsers(ctxEvent, global.dirAdminService,
		settings.DirectoryCustomerID, settings.MaxResultsPerPage, settings.IncludeSuspendedUsers,
		func(users []gad.DomainUser) error {
			for _, domainUser := range users {
				select {
				case <-ctxEvent.Done():
					// cancellation stops issuing new work, in flight work drains below
					return ctxEvent.Err()
				case userChan <- domainUser:
				}
			}
			return nil
		})
	close(userChan)
	waitgroup.Wait()
	runSummary.setEnumeration(browsedUsers, directoryPages)

	if enumErr != nil {
		var partialEnumerationError *gad.PartialEnumerationError
		switch {
		case errors.As(enumErr, &partialEnumerationError):
			runSummary.flagPartialEnumeration()
			log.Printf("run_id %s WARNING %v", runID, enumErr)
		case errors.Is(enumErr, context.Canceled) || errors.Is(enumErr, context.DeadlineExceeded):
			runSummary.flagPartialEnumeration()
			log.Printf("run_id %s WARNING run cancelled after %d users, flushing what was accepted", runID, browsedUsers)
		default:
			return runSummary, fmt.Errorf("run_id %s total enumeration failure: %v", runID, enumErr)
		}
	}

	// the final flush is decoupled from the trigger context so a cancelled run
	// does not silently lose manifests already handed to the sink
	flushCtx, cancelFlush := context.WithTimeout(context.Background(), perCallTimeout(settings))
	defer cancelFlush()
	if err := recordBatcher.Flush(flushCtx); err != nil {
		return runSummary, fmt.Errorf("run_id %s final flush: %v", runID, err)
	}

	runSummary.mux.Lock()
	runSummary.RecordsFlushed = recordBatcher.FlushedRecords()
	runSummary.RecordsDeduplicated = recordBatcher.DeduplicatedRecords()
	runSummary.LatencySeconds = time.Since(startTime).Seconds()
	runSummary.mux.Unlock()

	log.Println(logging.Entry{
		MicroserviceName: microserviceName,
		Environment:      settings.Environment,
		Severity:         "NOTICE",
		Message:          fmt.Sprintf("finish %s", microserviceName),
		Description:      runSummary.String(),
		Now:              time.Now(),
		RunID:            runID,
		LatencySeconds:   time.Since(startTime).Seconds(),
	})
	return runSummary, nil
}

// scanUser processes one user end to end with a credential delegated to that user
// Any failure here is recorded in the summary and never aborts the run
func scanUser(ctx context.Context, global *Global, recordBatcher *gbq.RecordBatcher, runSummary *RunSummary, domainUser gad.DomainUser) {
	settings := global.settings
	driveService, scriptService, err := global.userServices(ctx, domainUser.PrimaryEmail)
	if err != nil {
		runSummary.recordUserFailure(erm.GetErrorCategory(err))
		log.Printf("run_id %s user %s credential acquisition failed: %v", runSummary.RunID, domainUser.PrimaryEmail, err)
		return
	}

	var scriptProjects []gdr.ScriptProject
	err = erm.RetryWithBackoff(ctx, settings.RetryMaxAttempts, retryBaseDelay(settings), retryMaxDelay(settings), func() error {
		scriptProjects = scriptProjects[:0]
		listCtx, cancelList := context.WithTimeout(ctx, perCallTimeout(settings))
		defer cancelList()
		_, err := gdr.BrowseStandaloneScriptProjects(listCtx, driveService, domainUser.PrimaryEmail, settings.ProjectsPageSize,
			func(projects []gdr.ScriptProject) error {
				scriptProjects = append(scriptProjects, projects...)
				return nil
			})
		return err
	})
	if err != nil {
		runSummary.recordUserFailure(erm.GetErrorCategory(err))
		log.Printf("run_id %s user %s project listing failed, run proceeds: %v", runSummary.RunID, domainUser.PrimaryEmail, err)
		return
	}

	for _, scriptProject := range scriptProjects {
		// Reserve keeps one record per script per run, whatever worker or retry rediscovers it
		if !recordBatcher.Reserve(scriptProject.ScriptID) {
			continue
		}
		runSummary.recordProjectDiscovered()
		manifestRecord := buildManifestRecord(ctx, global, scriptService, scriptProject, runSummary)
		if err := recordBatcher.Add(ctx, manifestRecord); err != nil {
			runSummary.recordWriteFailure(erm.GetErrorCategory(err))
			log.Printf("run_id %s user %s batch flush failed: %v", runSummary.RunID, domainUser.PrimaryEmail, err)
		}
	}
}

// buildManifestRecord fetches one manifest and folds any terminal failure into the record's own status tag
// Every discovered project yields exactly one record, successful or not
func buildManifestRecord(ctx context.Context, global *Global, scriptService *script.Service, scriptProject gdr.ScriptProject, runSummary *RunSummary) gbq.ManifestRecord {
	settings := global.settings
	var manifestContent string
	err := erm.RetryWithBackoff(ctx, settings.RetryMaxAttempts, retryBaseDelay(settings), retryMaxDelay(settings), func() error {
		callCtx, cancelCall := context.WithTimeout(ctx, perCallTimeout(settings))
		defer cancelCall()
		var callErr error
		manifestContent, callErr = gsc.GetManifestContent(callCtx, scriptService, scriptProject.ScriptID)
		return callErr
	})
	manifestRecord := gbq.ManifestRecord{
		ScriptID:        scriptProject.ScriptID,
		ScriptName:      scriptProject.Name,
		OwnerEmail:      scriptProject.OwnerEmail,
		ManifestContent: manifestContent,
		RunID:           runSummary.RunID,
	}
	if err != nil {
		manifestRecord.ManifestContent = ""
		manifestRecord.ExtractionStatus = erm.GetErrorCategory(err)
		runSummary.recordExtractionFailure(manifestRecord.ExtractionStatus)
		log.Printf("run_id %s script %s extraction failed %s: %v", runSummary.RunID, scriptProject.ScriptID, manifestRecord.ExtractionStatus, err)
	} else {
		runSummary.recordManifestExtracted()
	}
	return manifestRecord
}

func retryBaseDelay(settings solution.Settings) time.Duration {
	return time.Duration(settings.RetryBaseDelaySeconds) * time.Second
}

func retryMaxDelay(settings solution.Settings) time.Duration {
	return time.Duration(settings.RetryMaxDelaySeconds) * time.Second
}

func perCallTimeout(settings solution.Settings) time.Duration {
	return time.Duration(settings.PerCallTimeoutSeconds) * time.Second
}
