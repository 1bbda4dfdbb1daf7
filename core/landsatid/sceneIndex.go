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

// Scene index parser, extracting scene identity from the strict Landsat-style
// index strings that catalog entries carry, eg LC08_043033_20150805. Merged
// collections prepend their own tokens, so only the trailing three count.
package landsatid

import (
	"strings"
	"time"
)

// SceneMeta - identity of one observation, derived once at construction
type SceneMeta struct {
	// SceneID - sensor_pathrow_date, the trailing three tokens of the index
	SceneID string
	// WRS2Tile - "p" + path + "r" + row, sliced from fixed SceneID offsets
	WRS2Tile string

	AcquiredAt time.Time
	Year       int
	Month      int
	DayOfYear  int

	// The UTC day bucket containing the acquisition instant, [DayStart, DayEnd)
	DayStart time.Time
	DayEnd   time.Time
}

// MalformedSceneIndexError - the index string didn't decompose as expected.
// Parsing still returns best-effort fields alongside this; historically
// malformed ids propagated silently and some callers depend on not failing.
type MalformedSceneIndexError struct {
	Index  string
	Reason string
}

func (e MalformedSceneIndexError) Error() string {
	return "malformed scene index \"" + e.Index + "\": " + e.Reason
}

// Fixed character offsets of path/row within a SCENE_ID
// LC08_043033_20150805
//      ^^^---------- path [5:8]
//         ^^^------- row  [8:11]
const (
	pathStartOffset = 5
	pathEndOffset   = 8
	rowEndOffset    = 11
)

// ParseSceneIndex - builds scene identity from a catalog index string and the
// observation time in epoch milliseconds
func ParseSceneIndex(index string, timeStartMs int64) (SceneMeta, error) {
	meta := SceneMeta{}

	acquired := time.UnixMilli(timeStartMs).UTC()
	meta.AcquiredAt = acquired
	meta.Year = acquired.Year()
	meta.Month = int(acquired.Month())
	meta.DayOfYear = acquired.YearDay()
	meta.DayStart = time.Date(acquired.Year(), acquired.Month(), acquired.Day(), 0, 0, 0, 0, time.UTC)
	meta.DayEnd = meta.DayStart.Add(24 * time.Hour)

	var parseErr error

	tokens := strings.Split(index, "_")
	if len(tokens) < 3 {
		parseErr = MalformedSceneIndexError{Index: index, Reason: "expected at least 3 _-separated tokens"}
		meta.SceneID = index
	} else {
		tokens = tokens[len(tokens)-3:]
		meta.SceneID = tokens[0] + "_" + tokens[1] + "_" + tokens[2]
	}

	if len(meta.SceneID) >= rowEndOffset {
		meta.WRS2Tile = "p" + meta.SceneID[pathStartOffset:pathEndOffset] + "r" + meta.SceneID[pathEndOffset:rowEndOffset]
	} else if parseErr == nil {
		parseErr = MalformedSceneIndexError{Index: index, Reason: "scene id too short for path/row offsets"}
	}

	return meta, parseErr
}
