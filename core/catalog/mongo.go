// Licensed to the U.S. Geological Survey (USGS) under one or more
// contributor license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. USGS licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package catalog

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/openet/ssebop-go/core/logger"
	"github.com/openet/ssebop-go/core/mongoDBConnection"
	"github.com/openet/ssebop-go/core/raster"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoFeatureStore - serves the Tcorr scene/monthly lookup tables from
// mongo. Each dataset id maps to one DB collection holding its rows. Grid
// datasets don't live in mongo, asking for one errors when forced.
type MongoFeatureStore struct {
	db  *mongo.Database
	log logger.ILogger
}

func MakeMongoFeatureStore(db *mongo.Database, log logger.ILogger) *MongoFeatureStore {
	if log == nil {
		log = &logger.NullLogger{}
	}
	return &MongoFeatureStore{db: db, log: log}
}

// ConnectMongoFeatureStore - connects to the feature table DB for the given
// environment and wraps it as a catalog. The session normally comes from
// awsutil.GetSession at startup. A blank secret name means a local
// unauthenticated DB; otherwise credentials come via the AWS secrets cache.
func ConnectMongoFeatureStore(sess *session.Session, mongoSecret string, envName string, log logger.ILogger) (*MongoFeatureStore, error) {
	client, err := mongoDBConnection.Connect(sess, mongoSecret, log)
	if err != nil {
		return nil, err
	}
	dbName := mongoDBConnection.GetDatabaseName("ssebop", envName)
	return MakeMongoFeatureStore(client.Database(dbName), log), nil
}

// MongoCollectionName - dataset ids contain slashes, DB collection names can't
func MongoCollectionName(id string) string {
	return strings.ReplaceAll(id, "/", "_")
}

// Has - only feature table ids are served here
func (m *MongoFeatureStore) Has(id string) bool {
	for _, tableID := range TcorrSceneTables {
		if id == tableID {
			return true
		}
	}
	for _, tableID := range TcorrMonthTables {
		if id == tableID {
			return true
		}
	}
	return false
}

func (m *MongoFeatureStore) Image(id string) *raster.Image {
	return errorImageCollection(errors.Errorf("mongo feature store cannot serve image: %v", id)).First()
}

func (m *MongoFeatureStore) ImageCollection(id string) *raster.ImageCollection {
	return errorImageCollection(errors.Errorf("mongo feature store cannot serve image collection: %v", id))
}

func (m *MongoFeatureStore) FeatureCollection(id string) *raster.FeatureCollection {
	return raster.NewLazyFeatureCollection(func() ([]raster.Feature, error) {
		ctx := context.TODO()
		name := MongoCollectionName(id)
		m.log.Debugf("mongo: reading feature table %v", name)

		cursor, err := m.db.Collection(name).Find(ctx, bson.M{})
		if err != nil {
			return nil, errors.Wrapf(err, "reading feature table %v", id)
		}

		rows := []bson.M{}
		if err := cursor.All(ctx, &rows); err != nil {
			return nil, errors.Wrapf(err, "decoding feature table %v", id)
		}

		result := make([]raster.Feature, 0, len(rows))
		for _, row := range rows {
			props := map[string]interface{}{}
			for key, value := range row {
				if key == "_id" {
					continue
				}
				props[key] = value
			}
			result = append(result, raster.Feature{Properties: props})
		}
		return result, nil
	})
}
