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
	"errors"
	"math"
	"testing"
	"time"

	"github.com/openet/ssebop-go/core/catalog"
	"github.com/openet/ssebop-go/core/raster"
)

func makeTmaxImage(day string, band string, value float64) *raster.Image {
	t, _ := time.Parse("2006-01-02", day)
	return raster.NewSourceImage(&raster.Grid{
		Width:  1,
		Height: 1,
		Bands:  []raster.GridBand{{Name: band, Values: []float64{value}}},
	}).Set(raster.TimeStartProperty, t.UnixMilli())
}

// Day-of-year tagged composite, the shape the median assets come in
func makeDoyComposite(doy int, band string, value float64) *raster.Image {
	return raster.NewSourceImage(&raster.Grid{
		Width:  1,
		Height: 1,
		Bands:  []raster.GridBand{{Name: band, Values: []float64{value}}},
	}).Set(raster.DayOfYearProperty, doy)
}

func evalSinglePixel(t *testing.T, img *raster.Image) float64 {
	t.Helper()
	grid, err := img.Evaluate()
	if err != nil {
		t.Fatal(err)
	}
	return grid.Bands[0].Values[0]
}

func TestTmaxNumeric(t *testing.T) {
	r := makeResolver(Config{TmaxSource: "305.5"}, catalog.MakeMemoryCatalog())
	img, err := r.tmax()
	if err != nil {
		t.Fatal(err)
	}
	if got := evalSinglePixel(t, img); got != 305.5 {
		t.Errorf("expected 305.5, got %v", got)
	}
	if v, _ := img.GetString("TMAX_VERSION"); v != "CUSTOM_305.5" {
		t.Errorf("expected TMAX_VERSION CUSTOM_305.5, got %v", v)
	}
	if v, _ := img.GetString("TMAX_SOURCE"); v != "305.5" {
		t.Errorf("expected TMAX_SOURCE 305.5, got %v", v)
	}
}

func TestTmaxDaymetDaily(t *testing.T) {
	cat := catalog.MakeMemoryCatalog()
	// DAYMET is in Celsius; the scene day (2015-08-05) is covered
	cat.AddImageCollection(catalog.TmaxDaymetDaily,
		makeTmaxImage("2015-08-04", "tmax", 29),
		makeTmaxImage("2015-08-05", "tmax", 30),
	)
	cat.AddImageCollection(catalog.TmaxMedianCollection("daymet", "median_v0"),
		makeDoyComposite(217, "tmax", 301),
	)

	r := makeResolver(Config{TmaxSource: "DAYMET"}, cat)
	img, err := r.tmax()
	if err != nil {
		t.Fatal(err)
	}

	if got := evalSinglePixel(t, img); math.Abs(got-303.15) > 1e-9 {
		t.Errorf("expected 303.15 K, got %v", got)
	}
	// Daily branch tags with the mock stamper's date (2015-08-08 UTC)
	if v, _ := img.GetString("TMAX_VERSION"); v != "2015-08-08" {
		t.Errorf("expected TMAX_VERSION 2015-08-08, got %v", v)
	}
	if v, _ := img.GetString("TMAX_SOURCE"); v != "DAYMET" {
		t.Errorf("expected TMAX_SOURCE DAYMET, got %v", v)
	}
}

func TestTmaxDaymetFallsBackToMedian(t *testing.T) {
	cat := catalog.MakeMemoryCatalog()
	// No daily coverage for the scene day
	cat.AddImageCollection(catalog.TmaxDaymetDaily,
		makeTmaxImage("2015-07-01", "tmax", 29),
	)
	cat.AddImageCollection(catalog.TmaxMedianCollection("daymet", "median_v0"),
		makeDoyComposite(216, "tmax", 300),
		makeDoyComposite(217, "tmax", 301),
	)

	r := makeResolver(Config{TmaxSource: "DAYMET"}, cat)
	img, err := r.tmax()
	if err != nil {
		t.Fatal(err)
	}

	// Median composites are already in Kelvin
	if got := evalSinglePixel(t, img); got != 301 {
		t.Errorf("expected 301, got %v", got)
	}
	if v, _ := img.GetString("TMAX_VERSION"); v != "median_v0" {
		t.Errorf("expected TMAX_VERSION median_v0, got %v", v)
	}
}

func TestTmaxGridmetKeepsKelvin(t *testing.T) {
	cat := catalog.MakeMemoryCatalog()
	cat.AddImageCollection(catalog.TmaxGridmetDaily,
		makeTmaxImage("2015-08-05", "tmmx", 308),
	)
	cat.AddImageCollection(catalog.TmaxMedianCollection("gridmet", "median_v1"),
		makeDoyComposite(217, "tmax", 299),
	)

	r := makeResolver(Config{TmaxSource: "GRIDMET"}, cat)
	img, err := r.tmax()
	if err != nil {
		t.Fatal(err)
	}

	if got := evalSinglePixel(t, img); got != 308 {
		t.Errorf("expected 308, got %v", got)
	}

	grid, err := img.Evaluate()
	if err != nil {
		t.Fatal(err)
	}
	if grid.Bands[0].Name != "tmax" {
		t.Errorf("expected band tmax, got %v", grid.Bands[0].Name)
	}
}

func TestTmaxMedianKeyword(t *testing.T) {
	cat := catalog.MakeMemoryCatalog()
	cat.AddImageCollection(catalog.TmaxMedianCollection("topowx", "median_v0"),
		makeDoyComposite(217, "tmax", 302),
	)

	r := makeResolver(Config{TmaxSource: "TOPOWX_MEDIAN_V0"}, cat)
	img, err := r.tmax()
	if err != nil {
		t.Fatal(err)
	}

	if got := evalSinglePixel(t, img); got != 302 {
		t.Errorf("expected 302, got %v", got)
	}
	if v, _ := img.GetString("TMAX_VERSION"); v != "median_v0" {
		t.Errorf("expected TMAX_VERSION median_v0, got %v", v)
	}
}

func TestTmaxInvalidSource(t *testing.T) {
	r := makeResolver(Config{TmaxSource: "BOGUS"}, catalog.MakeMemoryCatalog())
	_, err := r.tmax()
	var srcErr InvalidParameterSourceError
	if !errors.As(err, &srcErr) {
		t.Fatalf("expected InvalidParameterSourceError, got %v", err)
	}
}
