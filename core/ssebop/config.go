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

package ssebop

import (
	"strconv"
	"strings"

	"github.com/openet/ssebop-go/core/fileaccess"
	"github.com/pkg/errors"
)

// Config - model parameter sources. Each source is either a dataset keyword or
// a numeric string; numeric strings short-circuit the dataset lookup entirely
// and resolve to a constant. Keywords are matched case-insensitively, numeric
// parsing is attempted first.
type Config struct {
	DtSource    string `json:"dtSource"`
	ElevSource  string `json:"elevSource"`
	TcorrSource string `json:"tcorrSource"`
	TmaxSource  string `json:"tmaxSource"`

	// ElrFlag - elevation lapse rate adjustment. Parsed and carried but the
	// adjustment itself is not applied by this version.
	ElrFlag bool `json:"elrFlag"`

	// TdiffThreshold - max allowed Tmax-LST difference in Kelvin before a
	// pixel is considered cloud/water contaminated and masked
	TdiffThreshold float64 `json:"tdiffThreshold"`
}

func DefaultConfig() Config {
	return Config{
		DtSource:       "DAYMET_MEDIAN_V1",
		ElevSource:     "ASSET",
		TcorrSource:    "SCENE",
		TmaxSource:     "TOPOWX_MEDIAN_V0",
		ElrFlag:        false,
		TdiffThreshold: 15,
	}
}

// LoadConfig - reads a JSON config object, fields not present keep their
// defaults
func LoadConfig(fs fileaccess.FileAccess, bucket string, configPath string) (Config, error) {
	cfg := DefaultConfig()
	err := fs.ReadJSON(bucket, configPath, &cfg, false)
	if err != nil {
		return cfg, errors.Wrapf(err, "loading model config s3://%v/%v", bucket, configPath)
	}
	return cfg, nil
}

// asNumber - source strings like "0.978" or "19.3" mean a constant parameter
func asNumber(source string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(source), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
