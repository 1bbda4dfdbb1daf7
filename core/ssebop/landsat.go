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
	"github.com/openet/ssebop-go/core/raster"
	"github.com/pkg/errors"
)

// Per-spacecraft band layouts for Collection 1 TOA scenes. Every sensor is
// remapped to the same canonical order so the radiometry below never needs to
// know which satellite it is looking at.
var landsatInputBands = map[string][]string{
	"LANDSAT_5": {"B1", "B2", "B3", "B4", "B5", "B7", "B6", "BQA"},
	"LANDSAT_7": {"B1", "B2", "B3", "B4", "B5", "B7", "B6_VCID_1", "BQA"},
	"LANDSAT_8": {"B2", "B3", "B4", "B5", "B6", "B7", "B10", "BQA"},
}

var landsatOutputBands = []string{"blue", "green", "red", "nir", "swir1", "swir2", "lst", "BQA"}

// Thermal calibration constants live in scene metadata under per-sensor
// property names
var landsatK1Property = map[string]string{
	"LANDSAT_5": "K1_CONSTANT_BAND_6",
	"LANDSAT_7": "K1_CONSTANT_BAND_6_VCID_1",
	"LANDSAT_8": "K1_CONSTANT_BAND_10",
}

var landsatK2Property = map[string]string{
	"LANDSAT_5": "K2_CONSTANT_BAND_6",
	"LANDSAT_7": "K2_CONSTANT_BAND_6_VCID_1",
	"LANDSAT_8": "K2_CONSTANT_BAND_10",
}

// FromLandsatC1TOA - builds a model Image from one raw Collection 1 TOA
// scene. The raw scene is remapped to canonical band names, then reduced to
// the two inputs the model actually runs on: emissivity-corrected LST and
// NDVI. Scene identity properties are carried over so downstream interpolation
// can still tell scenes apart.
func FromLandsatC1TOA(toa *raster.Image, cfg Config, deps Deps) (*Image, error) {
	spacecraft, ok := toa.GetString("SPACECRAFT_ID")
	if !ok {
		return nil, errors.New("scene is missing SPACECRAFT_ID")
	}

	inputBands, ok := landsatInputBands[spacecraft]
	if !ok {
		return nil, errors.Errorf("unsupported spacecraft: %v", spacecraft)
	}

	k1, ok := toa.GetFloat(landsatK1Property[spacecraft])
	if !ok {
		return nil, errors.Errorf("scene is missing %v", landsatK1Property[spacecraft])
	}
	k2, ok := toa.GetFloat(landsatK2Property[spacecraft])
	if !ok {
		return nil, errors.Errorf("scene is missing %v", landsatK2Property[spacecraft])
	}

	prepped := toa.SelectRename(inputBands, landsatOutputBands).
		Set("k1_constant", k1).
		Set("k2_constant", k2)

	input := lstImage(prepped).
		AddBands(ndviImage(prepped)).
		CopyProperties(toa, []string{raster.IndexProperty, raster.TimeStartProperty})
	if fp := toa.Footprint(); fp != nil {
		input = input.WithFootprint(*fp)
	}

	scenesPrepared.Inc()

	return NewImage(input, cfg, deps)
}
