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
	"strings"

	"cloud.google.com/go/bigquery"
)

// GetDataset gets, creates if missing, the dataset hosting the manifest audit log
func GetDataset(ctx context.Context, datasetName string, location string, bigQueryClient *bigquery.Client) (dataset *bigquery.Dataset, err error) {
	dataset = bigQueryClient.Dataset(datasetName)
	_, err = dataset.Metadata(ctx)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "notfound") {
			var datasetToCreateMetadata bigquery.DatasetMetadata
			datasetToCreateMetadata.Name = datasetName
			datasetToCreateMetadata.Location = location
			datasetToCreateMetadata.Description = "Script Audit Monitor"
			datasetToCreateMetadata.Labels = map[string]string{"name": strings.ToLower(datasetName)}

			err = dataset.Create(ctx, &datasetToCreateMetadata)
			if err != nil {
				// deal with concurrent executions
				if strings.Contains(strings.ToLower(err.Error()), "already exists") {
					return dataset, nil
				}
				return nil, fmt.Errorf("dataset.Create %v", err)
			}
			log.Printf("gbq created dataset %s", datasetName)
			return dataset, nil
		}
		return nil, fmt.Errorf("dataset.Metadata %v", err)
	}
	return dataset, nil
}
