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
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Implementation of file access using local file system. The "bucket" is just
// a root directory, asset ids (which contain slashes) become subdirectories.
type FSAccess struct {
}

func (fs *FSAccess) filePath(rootPath string, objectPath string) string {
	return path.Join(rootPath, objectPath)
}

func (fs *FSAccess) ListObjects(rootPath string, prefix string) ([]string, error) {
	result := []string{}

	rootOnly := path.Join(rootPath)
	fullPath := fs.filePath(rootPath, prefix)

	err := filepath.Walk(fullPath, func(pathFound string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			// Paths come back containing the root directory, chop it off
			toSave := pathFound
			if strings.HasPrefix(toSave, rootOnly) {
				toSave = toSave[len(rootOnly)+1:]
			}
			result = append(result, toSave)
		}
		return nil
	})

	return result, err
}

func (fs *FSAccess) ObjectExists(rootPath string, objectPath string) (bool, error) {
	fullPath := fs.filePath(rootPath, objectPath)
	_, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (fs *FSAccess) ReadObject(rootPath string, objectPath string) ([]byte, error) {
	fullPath := fs.filePath(rootPath, objectPath)
	return os.ReadFile(fullPath)
}

func (fs *FSAccess) WriteObject(rootPath string, objectPath string, data []byte) error {
	fullPath := fs.filePath(rootPath, objectPath)

	// Ensure any subdirs in between are created
	createPath := filepath.Dir(fullPath)
	err := os.MkdirAll(createPath, 0777)
	if err != nil {
		return err
	}

	return os.WriteFile(fullPath, data, 0777)
}

func (fs *FSAccess) ReadJSON(rootPath string, objectPath string, itemsPtr interface{}, emptyIfNotFound bool) error {
	fileData, err := fs.ReadObject(rootPath, objectPath)

	// If we got an error, and it's a not-found, and we're told to ignore these and return empty data, then do so
	if err != nil {
		if emptyIfNotFound && fs.IsNotFoundError(err) {
			return nil
		}
		return err
	}

	return json.Unmarshal(fileData, itemsPtr)
}

func (fs *FSAccess) WriteJSON(rootPath string, objectPath string, itemsPtr interface{}) error {
	fileData, err := json.MarshalIndent(itemsPtr, "", "    ")
	if err != nil {
		return err
	}

	return fs.WriteObject(rootPath, objectPath, fileData)
}

func (fs *FSAccess) IsNotFoundError(err error) bool {
	return os.IsNotExist(err)
}
