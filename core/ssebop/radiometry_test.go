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
	"math"
	"testing"

	"github.com/openet/ssebop-go/core/raster"
)

// A canonically-banded 4-pixel image whose NDVI hits each emissivity branch:
// water (-0.2), bare soil (0.1), mixed (0.35), dense vegetation (0.6)
func makePreppedImage(k1 float64, k2 float64, ts float64) *raster.Image {
	img := raster.NewSourceImage(&raster.Grid{
		Width:  4,
		Height: 1,
		Bands: []raster.GridBand{
			{Name: "nir", Values: []float64{4, 11, 27, 4}},
			{Name: "red", Values: []float64{6, 9, 13, 1}},
			{Name: "lst", Values: []float64{ts, ts, ts, ts}},
		},
	})
	return img.Set("k1_constant", k1).Set("k2_constant", k2)
}

func checkPixels(t *testing.T, img *raster.Image, band string, expected []float64, tol float64) {
	t.Helper()
	grid, err := img.Evaluate()
	if err != nil {
		t.Fatal(err)
	}
	b, ok := grid.Band(band)
	if !ok {
		t.Fatalf("no band %v, have %v", band, grid.BandNames())
	}
	for i, want := range expected {
		if b.Valid != nil && !b.Valid[i] {
			t.Errorf("pixel %v unexpectedly masked", i)
			continue
		}
		if math.Abs(b.Values[i]-want) > tol {
			t.Errorf("pixel %v: expected %v, got %v", i, want, b.Values[i])
		}
	}
}

func TestNdvi(t *testing.T) {
	prepped := makePreppedImage(774.8853, 1321.0789, 300)
	checkPixels(t, ndviImage(prepped), "ndvi", []float64{-0.2, 0.1, 0.35, 0.6}, 1e-12)
}

func TestEmissivityBranches(t *testing.T) {
	prepped := makePreppedImage(774.8853, 1321.0789, 300)

	// Mixed pixel: Pv = ((0.35-0.2)/0.3)^2 = 0.25
	// dE = (0.03 * 0.75) * (0.55 * 0.99)
	// emiss = 0.99*0.25 + 0.97*0.75 + dE
	mixed := 0.99*0.25 + 0.97*0.75 + (1-0.97)*(1-0.25)*(0.55*0.99)

	checkPixels(t, emissivityImage(prepped), "emissivity",
		[]float64{0.985, 0.977, mixed, 0.99}, 1e-12)
}

func TestEmissivityClamped(t *testing.T) {
	// Just inside the mixed range (ndvi = 0.205); whatever the blend produces
	// must land in the physical range
	img := raster.NewSourceImage(&raster.Grid{
		Width:  1,
		Height: 1,
		Bands: []raster.GridBand{
			{Name: "nir", Values: []float64{1.205}},
			{Name: "red", Values: []float64{0.795}},
			{Name: "lst", Values: []float64{300}},
		},
	})

	grid, err := emissivityImage(img).Evaluate()
	if err != nil {
		t.Fatal(err)
	}
	v := grid.Bands[0].Values[0]
	if v < 0.977 || v > 0.99 {
		t.Errorf("emissivity %v outside [0.977, 0.99]", v)
	}
}

func TestLst(t *testing.T) {
	// Landsat 8 thermal constants, dense vegetation pixel (emiss 0.99)
	k1, k2, ts := 774.8853, 1321.0789, 300.0
	prepped := makePreppedImage(k1, k2, ts)

	grid, err := lstImage(prepped).Evaluate()
	if err != nil {
		t.Fatal(err)
	}
	b, ok := grid.Band("lst")
	if !ok {
		t.Fatalf("no lst band, have %v", grid.BandNames())
	}

	// Recompute the dense vegetation pixel by hand
	emiss := 0.99
	rad := k1 / (math.Exp(k2/ts) - 1)
	rc := ((rad - 0.91) / 0.866) - (1-emiss)*1.32
	want := k2 / math.Log(emiss*k1/rc+1)

	got := b.Values[3]
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("lst: expected %v, got %v", want, got)
	}
	// Sanity: the correction should stay near the brightness temperature
	if got < ts-20 || got > ts+20 {
		t.Errorf("lst %v implausibly far from brightness temperature %v", got, ts)
	}
}
