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

// elev - elevation in meters. Accepts a constant, one of the published DEM
// keywords, or a direct asset id (anything under projects/ or users/). The
// result always carries a single band named "elev" regardless of source.
func (r *paramResolver) elev() (*raster.Image, error) {
	var elevImage *raster.Image

	if v, ok := asNumber(r.cfg.ElevSource); ok {
		elevImage = raster.Constant(v)
	} else {
		switch strings.ToUpper(r.cfg.ElevSource) {
		case "ASSET":
			elevImage = r.cat.Image(catalog.ElevAssetImage)
		case "GTOPO":
			elevImage = r.cat.Image(catalog.ElevGtopoImage)
		case "NED":
			elevImage = r.cat.Image(catalog.ElevNedImage)
		case "SRTM":
			elevImage = r.cat.Image(catalog.ElevSrtmImage)
		default:
			lower := strings.ToLower(r.cfg.ElevSource)
			if !strings.HasPrefix(lower, "projects/") && !strings.HasPrefix(lower, "users/") {
				return nil, InvalidParameterSourceError{Parameter: "elevation", Source: r.cfg.ElevSource}
			}
			elevImage = r.cat.Image(r.cfg.ElevSource)
		}
	}

	return elevImage.SelectAt(0).Rename("elev"), nil
}
