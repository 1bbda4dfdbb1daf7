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
	"strings"

	"github.com/openet/ssebop-go/core/catalog"
	"github.com/openet/ssebop-go/core/raster"
)

// dt - temperature difference between the hot and cold reference conditions.
// Either a fixed number or a day-of-year indexed long-term median composite.
func (r *paramResolver) dt() (*raster.Image, error) {
	if v, ok := asNumber(r.cfg.DtSource); ok {
		return raster.Constant(v), nil
	}

	var collID string
	switch strings.ToUpper(r.cfg.DtSource) {
	case "DAYMET_MEDIAN_V0":
		collID = catalog.DtDaymetMedianV0
	case "DAYMET_MEDIAN_V1":
		collID = catalog.DtDaymetMedianV1
	default:
		return nil, InvalidParameterSourceError{Parameter: "dT", Source: r.cfg.DtSource}
	}

	dtImg := r.cat.ImageCollection(collID).
		FilterDayOfYear(r.scene.DayOfYear).
		First()

	// Clamp dT values to 6-25 K when using the daymet median assets
	return dtImg.Clamp(6, 25), nil
}
