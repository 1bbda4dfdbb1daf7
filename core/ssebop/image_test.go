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

// Model input with given per-pixel LST values, all-numeric parameter sources
func makeModelImage(t *testing.T, cfg Config, lst ...float64) *Image {
	t.Helper()
	ndvi := make([]float64, len(lst))
	for i := range ndvi {
		ndvi[i] = 0.6
	}
	input := raster.NewSourceImage(&raster.Grid{
		Width:  len(lst),
		Height: 1,
		Bands: []raster.GridBand{
			{Name: "lst", Values: lst},
			{Name: "ndvi", Values: ndvi},
		},
	}).
		Set(raster.TimeStartProperty, testTimeStart).
		Set(raster.IndexProperty, "LC08_043033_20150805")

	img, err := NewImage(input, cfg, Deps{})
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func numericConfig() Config {
	return Config{
		DtSource:       "10",
		ElevSource:     "2000",
		TcorrSource:    "1",
		TmaxSource:     "300",
		TdiffThreshold: 15,
	}
}

func TestEtf(t *testing.T) {
	// etf = (300*1 - lst + 10) / 10
	//   lst=305 -> 0.5
	//   lst=312 -> -0.2, clamps to 0
	//   lst=299 -> 1.1, clamps to 1.05
	img := makeModelImage(t, numericConfig(), 305, 312, 299)

	etf, err := img.Etf()
	if err != nil {
		t.Fatal(err)
	}
	grid, err := etf.Evaluate()
	if err != nil {
		t.Fatal(err)
	}

	b, ok := grid.Band("etf")
	if !ok {
		t.Fatalf("no etf band, have %v", grid.BandNames())
	}
	expected := []float64{0.5, 0, 1.05}
	for i, want := range expected {
		if !b.Valid[i] {
			t.Errorf("pixel %v unexpectedly masked", i)
			continue
		}
		if math.Abs(b.Values[i]-want) > 1e-9 {
			t.Errorf("pixel %v: expected %v, got %v", i, want, b.Values[i])
		}
	}
}

func TestEtfMasksBeforeClamp(t *testing.T) {
	// lst=297 -> raw etf 1.3, masked; the clamp must never turn it into 1.05
	img := makeModelImage(t, numericConfig(), 297, 280)

	etf, err := img.Etf()
	if err != nil {
		t.Fatal(err)
	}
	grid, err := etf.Evaluate()
	if err != nil {
		t.Fatal(err)
	}
	for i := range grid.Bands[0].Values {
		if grid.Bands[0].Valid[i] {
			t.Errorf("pixel %v: raw etf >= 1.3 must be masked, got %v", i, grid.Bands[0].Values[i])
		}
	}
}

func TestEtfTdiffScreen(t *testing.T) {
	// Tcorr 0.9 keeps etf in range while tmax - lst exceeds the threshold:
	// lst=278: etf = (270 - 278 + 10)/10 = 0.2 but tdiff = 22 > 15 -> masked
	// lst=292: etf = -1.2 -> 0, tdiff = 8 -> kept
	cfg := numericConfig()
	cfg.TcorrSource = "0.9"
	img := makeModelImage(t, cfg, 278, 292)

	etf, err := img.Etf()
	if err != nil {
		t.Fatal(err)
	}
	grid, err := etf.Evaluate()
	if err != nil {
		t.Fatal(err)
	}

	b := grid.Bands[0]
	if b.Valid[0] {
		t.Errorf("cold pixel should be masked by the tdiff screen, got %v", b.Values[0])
	}
	if !b.Valid[1] || b.Values[1] != 0 {
		t.Errorf("expected valid 0, got %v valid=%v", b.Values[1], b.Valid[1])
	}
}

func TestEtfMetadata(t *testing.T) {
	img := makeModelImage(t, numericConfig(), 305)

	etf, err := img.Etf()
	if err != nil {
		t.Fatal(err)
	}

	if index, _ := etf.GetString(raster.IndexProperty); index != "LC08_043033_20150805" {
		t.Errorf("unexpected index %v", index)
	}
	if ts, ok := etf.TimeStart(); !ok || ts != testTimeStart {
		t.Errorf("unexpected time start %v (ok=%v)", ts, ok)
	}
	if tcorr, _ := etf.GetFloat("TCORR"); tcorr != 1 {
		t.Errorf("unexpected TCORR %v", tcorr)
	}
	if idx, _ := etf.GetInt64("TCORR_INDEX"); idx != TcorrIndexUser {
		t.Errorf("unexpected TCORR_INDEX %v", idx)
	}
}

func TestEtfMemoized(t *testing.T) {
	img := makeModelImage(t, numericConfig(), 305)

	first, err := img.Etf()
	if err != nil {
		t.Fatal(err)
	}
	second, err := img.Etf()
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("Etf must return the same memoized image")
	}
}

func TestEtfMemoizedFailure(t *testing.T) {
	cfg := numericConfig()
	cfg.DtSource = "BOGUS"
	img := makeModelImage(t, cfg, 305)

	_, err1 := img.Etf()
	if err1 == nil {
		t.Fatal("expected an error for an invalid dT source")
	}
	_, err2 := img.Etf()
	if err1 != err2 {
		t.Errorf("failures must be memoized too")
	}
}

func TestNewImageRequiresTime(t *testing.T) {
	input := raster.NewSourceImage(&raster.Grid{
		Width:  1,
		Height: 1,
		Bands:  []raster.GridBand{{Name: "lst", Values: []float64{300}}},
	})
	if _, err := NewImage(input, numericConfig(), Deps{}); err == nil {
		t.Fatal("expected an error for a missing system:time_start")
	}
}

func TestVariableDispatch(t *testing.T) {
	img := makeModelImage(t, numericConfig(), 305)

	if _, err := img.VariableImage(VariableEtf); err != nil {
		t.Errorf("etf dispatch failed: %v", err)
	}
	if _, err := img.VariableImage(VariableUnknown); err == nil {
		t.Errorf("unknown variable must be rejected")
	}
}
