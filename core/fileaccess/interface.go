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

package fileaccess

// Generic interface for reading/writing serialized raster and feature table
// assets. Assets live in a bucket (or a local root directory) under keys that
// look like dataset ids, so the same code can run against S3 or a checkout
// of fixture files.

type FileAccess interface {
	ListObjects(bucket string, prefix string) ([]string, error)

	ObjectExists(bucket string, path string) (bool, error)

	ReadObject(bucket string, path string) ([]byte, error)
	WriteObject(bucket string, path string, data []byte) error

	ReadJSON(bucket string, path string, itemsPtr interface{}, emptyIfNotFound bool) error
	WriteJSON(bucket string, path string, itemsPtr interface{}) error

	IsNotFoundError(err error) bool
}
