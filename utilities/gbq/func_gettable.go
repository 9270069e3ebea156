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

package gbq

import (
	"context"
	"fmt"
	"log"
	"reflect"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
)

// GetTable gets, creates if missing, the manifest audit log table, day partitioned, schema reconciled
func GetTable(ctx context.Context, tableName string, dataset *bigquery.Dataset) (table *bigquery.Table, err error) {
	schema := GetManifestRecordsSchema()
	table = dataset.Table(tableName)
	tableMetadata, err := table.Metadata(ctx)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "notfound") {
			var tableToCreateMetadata bigquery.TableMetadata
			tableToCreateMetadata.Name = tableName
			tableToCreateMetadata.Description = fmt.Sprintf("Script Audit Monitor - %s", tableName)
			tableToCreateMetadata.Labels = map[string]string{"name": strings.ToLower(tableName)}

			var timePartitioning bigquery.TimePartitioning
			timePartitioning.Type = "DAY"
			timePartitioning.Field = "extraction_date"
			timePartitioning.Expiration = time.Duration(0)
			tableToCreateMetadata.TimePartitioning = &timePartitioning
			tableToCreateMetadata.Schema = schema

			err = table.Create(ctx, &tableToCreateMetadata)
			if err != nil {
				// deal with concurrent executions
				if strings.Contains(strings.ToLower(err.Error()), "already exists") {
					return table, nil
				}
				return nil, fmt.Errorf("table.Create %v", err)
			}
			log.Printf("gbq created table %s", tableName)
			return table, nil
		}
		return nil, fmt.Errorf("table.Metadata %v", err)
	}
	needToUpdate := false
	var tableMetadataToUpdate bigquery.TableMetadataToUpdate
	if !reflect.DeepEqual(tableMetadata.Schema, schema) {
		tableMetadataToUpdate.Schema = schema
		log.Printf("gbq need to update schema on table %s", tableName)
		needToUpdate = true
	}
	if tableMetadata.Labels == nil || tableMetadata.Labels["name"] != strings.ToLower(tableName) {
		tableMetadataToUpdate.SetLabel("name", strings.ToLower(tableName))
		log.Printf("gbq need to update labels on table %s", tableName)
		needToUpdate = true
	}
	if needToUpdate {
		_, err = table.Update(ctx, tableMetadataToUpdate, "")
		if err != nil {
			return nil, fmt.Errorf("table.Update %v", err)
		}
		log.Printf("gbq table updated %s", tableName)
	}
	return table, nil
}
