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

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Mockup of file access implementation for unit tests. Objects live in a map
// keyed bucket/path so tests can preload assets without touching disk or S3.
type Mock struct {
	Objects map[string][]byte
}

func MakeMock() *Mock {
	return &Mock{Objects: map[string][]byte{}}
}

type mockNotFoundError struct {
	key string
}

func (e mockNotFoundError) Error() string {
	return "object not found: " + e.key
}

func mockKey(bucket string, path string) string {
	return bucket + "/" + path
}

func (m *Mock) ListObjects(bucket string, prefix string) ([]string, error) {
	result := []string{}
	searchPrefix := mockKey(bucket, prefix)
	for key := range m.Objects {
		if strings.HasPrefix(key, searchPrefix) {
			result = append(result, key[len(bucket)+1:])
		}
	}
	return result, nil
}

func (m *Mock) ObjectExists(bucket string, path string) (bool, error) {
	_, ok := m.Objects[mockKey(bucket, path)]
	return ok, nil
}

func (m *Mock) ReadObject(bucket string, path string) ([]byte, error) {
	data, ok := m.Objects[mockKey(bucket, path)]
	if !ok {
		return nil, mockNotFoundError{key: mockKey(bucket, path)}
	}
	return data, nil
}

func (m *Mock) WriteObject(bucket string, path string, data []byte) error {
	if m.Objects == nil {
		m.Objects = map[string][]byte{}
	}
	m.Objects[mockKey(bucket, path)] = data
	return nil
}

func (m *Mock) ReadJSON(bucket string, path string, itemsPtr interface{}, emptyIfNotFound bool) error {
	data, err := m.ReadObject(bucket, path)
	if err != nil {
		if emptyIfNotFound && m.IsNotFoundError(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, itemsPtr)
}

func (m *Mock) WriteJSON(bucket string, path string, itemsPtr interface{}) error {
	data, err := json.MarshalIndent(itemsPtr, "", "    ")
	if err != nil {
		return err
	}
	return m.WriteObject(bucket, path, data)
}

func (m *Mock) IsNotFoundError(err error) bool {
	_, ok := err.(mockNotFoundError)
	if !ok {
		// Errors can arrive wrapped in fmt contexts, check the text too
		return err != nil && strings.Contains(fmt.Sprintf("%v", err), "object not found")
	}
	return ok
}
