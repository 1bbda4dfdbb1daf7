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
	"time"

	"github.com/openet/ssebop-go/core/catalog"
	"github.com/openet/ssebop-go/core/interp"
	"github.com/openet/ssebop-go/core/raster"
)

// Max gap in days the interpolation will bridge between scene observations
const interpWindowDays = 32

// BuildVariableCollection - runs the model over every matching scene in the
// requested sensor collections and interpolates the sparse per-scene results
// into a daily product over [startDate, endDate).
//
// The variable name and every collection id are validated up front; nothing
// is fetched or computed before validation passes. Scene processing itself is
// lazy, each scene's product is computed at most once per returned collection.
func BuildVariableCollection(variable string, collections []string, startDate time.Time, endDate time.Time, region raster.Region, cfg Config, deps Deps) (*raster.ImageCollection, error) {
	deps = deps.withDefaults()

	v, err := ParseVariable(variable)
	if err != nil {
		return nil, err
	}
	for _, id := range collections {
		if !catalog.IsLandsatC1TOACollection(id) {
			return nil, UnsupportedCollectionError{ID: id}
		}
	}

	sparse := raster.NewImageCollection(nil)
	for _, collID := range collections {
		sceneColl := deps.Catalog.ImageCollection(collID).
			FilterDate(startDate, endDate).
			FilterBounds(region).
			Map(func(toa *raster.Image) (*raster.Image, error) {
				model, err := FromLandsatC1TOA(toa, cfg, deps)
				if err != nil {
					return nil, err
				}
				return model.VariableImage(v)
			})
		sparse = sparse.Merge(sceneColl)
	}

	reference := deps.Catalog.ImageCollection(catalog.ReferenceETCollection).
		FilterDate(startDate, endDate).
		Select(catalog.ReferenceETBand)

	collectionsBuilt.Inc()

	return deps.Interp.DailyET(reference, sparse, interpWindowDays, interp.MethodLinear)
}
