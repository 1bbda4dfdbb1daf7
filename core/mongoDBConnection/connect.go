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

// Lowest-level code to connect to the Mongo DB holding Tcorr parameter tables
// (locally in Docker and remotely) and get consistent database names.
package mongoDBConnection

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/openet/ssebop-go/core/logger"
	"go.mongodb.org/mongo-driver/mongo"
)

// Connect - if the secret name is blank we assume a local DB with no auth,
// otherwise credentials come from the AWS secrets cache.
func Connect(
	sess *session.Session, // Can be nil for local connection
	mongoSecret string, // empty for local connection
	iLog logger.ILogger,
) (*mongo.Client, error) {
	if len(mongoSecret) <= 0 {
		return connectToLocalMongoDB(iLog)
	}

	connectionInfo, err := getMongoConnectionInfoFromSecretCache(sess, mongoSecret)
	if err != nil {
		return nil, fmt.Errorf("Failed to read mongo secret \"%v\" info from secrets cache: %v", mongoSecret, err)
	}

	return connectToRemoteMongoDB(
		connectionInfo.Host,
		connectionInfo.Username,
		connectionInfo.Password,
		iLog,
	)
}

func GetDatabaseName(dbName string, envName string) string {
	return dbName + "-" + envName
}
