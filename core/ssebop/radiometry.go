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

// Radiometric preprocessing over a canonically-banded scene: NDVI,
// NDVI-driven emissivity, and emissivity-corrected LST recovered from
// brightness temperature. All of these build lazy band graphs, nothing is
// evaluated here.
package ssebop

import (
	"github.com/openet/ssebop-go/core/raster"
)

// Atmospheric correction coefficients, derived from a small set of southern
// Idaho scenes (Allen et al 2007, METRIC). May not be appropriate elsewhere.
const (
	narrowbandTransmissivity = 0.866
	pathRadiance             = 0.91
	skyRadiance              = 1.32
)

// ndviImage - normalized difference of nir and red, single band "ndvi"
func ndviImage(prepped *raster.Image) *raster.Image {
	return prepped.NormalizedDifference("nir", "red").Rename("ndvi")
}

// emissivityImage - surface emissivity as a piecewise function of NDVI.
// Negative NDVI is treated as water (0.985), low NDVI as bare soil (0.977),
// dense vegetation as 0.99, and the mixed range [0.2, 0.5] blends soil and
// vegetation emissivity by fractional cover.
func emissivityImage(prepped *raster.Image) *raster.Image {
	ndvi := ndviImage(prepped)

	// Fractional vegetation cover within the mixed range
	pv := ndvi.Subtract(raster.Constant(0.2)).Divide(raster.Constant(0.3)).Pow(2)

	// Soil emissivity 0.97, vegetation emissivity 0.99, shape factor 0.55
	one := raster.Constant(1)
	dE := one.Subtract(pv).Multiply(raster.Constant(1 - 0.97)).Multiply(raster.Constant(0.55 * 0.99))
	rangeEmiss := pv.Multiply(raster.Constant(0.99)).
		Add(one.Subtract(pv).Multiply(raster.Constant(0.97))).
		Add(dE)

	zero := raster.Constant(0)
	lowBound := raster.Constant(0.2)
	highBound := raster.Constant(0.5)

	emiss := ndvi.
		Where(ndvi.Lt(zero), raster.Constant(0.985)).
		Where(ndvi.Gte(zero).And(ndvi.Lt(lowBound)), raster.Constant(0.977)).
		Where(ndvi.Gt(highBound), raster.Constant(0.99)).
		Where(ndvi.Gte(lowBound).And(ndvi.Lte(highBound)), rangeEmiss)

	return emiss.Clamp(0.977, 0.99).SelectAt(0).Rename("emissivity")
}

// lstImage - emissivity corrected land surface temperature from the thermal
// brightness band. Radiance is backed out of brightness temperature with the
// scene's k1/k2 calibration constants, corrected for path radiance,
// transmissivity and sky radiation, then inverted back to temperature.
func lstImage(prepped *raster.Image) *raster.Image {
	k1, _ := prepped.GetFloat("k1_constant")
	k2, _ := prepped.GetFloat("k2_constant")
	k1Img := raster.Constant(k1)
	k2Img := raster.Constant(k2)

	tsBrightness := prepped.Select("lst")
	emissivity := emissivityImage(prepped)

	// k1 / (exp(k2 / ts) - 1)
	thermalRad := k1Img.Divide(k2Img.Divide(tsBrightness).Exp().Subtract(raster.Constant(1)))

	// ((rad - rp) / tnb) - ((1 - emiss) * rsky)
	rc := thermalRad.Subtract(raster.Constant(pathRadiance)).
		Divide(raster.Constant(narrowbandTransmissivity)).
		Subtract(raster.Constant(1).Subtract(emissivity).Multiply(raster.Constant(skyRadiance)))

	// k2 / log(emiss * k1 / rc + 1)
	lst := k2Img.Divide(emissivity.Multiply(k1Img).Divide(rc).Add(raster.Constant(1)).Log())

	return lst.Rename("lst")
}
