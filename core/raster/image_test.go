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

package raster

import (
	"fmt"
	"strings"
	"testing"
)

func makeTestImage(name string, vals ...float64) *Image {
	return NewSourceImage(&Grid{
		Width:  len(vals),
		Height: 1,
		Bands:  []GridBand{{Name: name, Values: vals}},
	})
}

func printBand(img *Image, band string) {
	grid, err := img.Evaluate()
	if err != nil {
		fmt.Printf("err=%v\n", err)
		return
	}
	b, ok := grid.Band(band)
	if !ok {
		fmt.Printf("no band %v, have %v\n", band, grid.BandNames())
		return
	}
	pixels := make([]string, len(b.Values))
	for i := range b.Values {
		if b.Valid != nil && !b.Valid[i] {
			pixels[i] = "masked"
		} else {
			pixels[i] = fmt.Sprintf("%v", b.Values[i])
		}
	}
	fmt.Println(strings.Join(pixels, " "))
}

func Example_imageArithmetic() {
	a := makeTestImage("v", 1, 2, 3)
	b := makeTestImage("v", 10, 20, 0)

	printBand(a.Add(b), "v")
	printBand(a.Subtract(b), "v")
	printBand(a.Multiply(Constant(2)), "v")

	// Division by zero masks, it never fails
	printBand(a.Divide(b), "v")

	// Output:
	// 11 22 3
	// -9 -18 3
	// 2 4 6
	// 0.1 0.1 masked
}

func Example_imageClamp() {
	img := makeTestImage("v", -0.5, 0.3, 1.2, 2)

	printBand(img.Clamp(0, 1.05), "v")

	// Clamp is idempotent
	printBand(img.Clamp(0, 1.05).Clamp(0, 1.05), "v")

	// Output:
	// 0 0.3 1.05 1.05
	// 0 0.3 1.05 1.05
}

func Example_imageMasking() {
	img := makeTestImage("v", 1, 2, 3, 4)
	limit := Constant(2.5)

	// Comparison results are 0/1 images
	printBand(img.Lt(limit), "v")

	// UpdateMask drops pixels where the mask is zero
	printBand(img.UpdateMask(img.Lt(limit)), "v")

	// Masked pixels stay masked through later ops
	printBand(img.UpdateMask(img.Lt(limit)).Add(Constant(10)), "v")

	// Output:
	// 1 1 0 0
	// 1 2 masked masked
	// 11 12 masked masked
}

func Example_imageWhere() {
	img := makeTestImage("v", -0.5, 0.1, 0.4, 0.7)

	// Replace negative pixels, leave the rest alone
	replaced := img.Where(img.Lt(Constant(0)), Constant(99))
	printBand(replaced, "v")

	// Output:
	// 99 0.1 0.4 0.7
}

func TestWhereValueDimensionMismatch(t *testing.T) {
	src := makeTestImage("v", 1, 2)
	cond := makeTestImage("v", 1, 0)

	// A gridded replacement value must match the source dimensions, just like
	// every other pixelwise op
	_, err := src.Where(cond, makeTestImage("v", 9)).Evaluate()
	if err == nil {
		t.Fatal("expected a dimension mismatch error")
	}

	// Constants still broadcast
	grid, err := src.Where(cond, Constant(9)).Evaluate()
	if err != nil {
		t.Fatal(err)
	}
	if grid.Bands[0].Values[0] != 9 || grid.Bands[0].Values[1] != 2 {
		t.Errorf("unexpected pixels %v", grid.Bands[0].Values)
	}
}

func Example_imageNormalizedDifference() {
	img := NewSourceImage(&Grid{
		Width:  3,
		Height: 1,
		Bands: []GridBand{
			{Name: "nir", Values: []float64{3, 1, 1}},
			{Name: "red", Values: []float64{1, 1, -1}},
		},
	})

	// (nir - red) / (nir + red); zero denominator masks
	printBand(img.NormalizedDifference("nir", "red"), "nd")

	// Output:
	// 0.5 0 masked
}

func Example_imageSelect() {
	img := NewSourceImage(&Grid{
		Width:  1,
		Height: 1,
		Bands: []GridBand{
			{Name: "B4", Values: []float64{1}},
			{Name: "B3", Values: []float64{2}},
		},
	})

	sel := img.SelectRename([]string{"B4", "B3"}, []string{"nir", "red"})
	grid, err := sel.Evaluate()
	fmt.Printf("%v|%v\n", grid.BandNames(), err)

	one := img.SelectAt(0).Rename("first")
	grid, err = one.Evaluate()
	fmt.Printf("%v|%v\n", grid.BandNames(), err)

	// Selecting a band that doesn't exist fails at evaluation
	_, err = img.Select("nope").Evaluate()
	fmt.Printf("%v\n", err)

	// Output:
	// [nir red]|<nil>
	// [first]|<nil>
	// image has no band: nope
}

func Example_imageMetadata() {
	img := makeTestImage("v", 1).
		Set(TimeStartProperty, int64(1438800000000)).
		Set(IndexProperty, "LC08_043033_20150805")

	t, ok := img.TimeStart()
	fmt.Printf("%v|%v\n", t, ok)

	s, ok := img.GetString(IndexProperty)
	fmt.Printf("%v|%v\n", s, ok)

	// Derived images keep metadata
	t, ok = img.Multiply(Constant(2)).TimeStart()
	fmt.Printf("%v|%v\n", t, ok)

	// Output:
	// 1438800000000|true
	// LC08_043033_20150805|true
	// 1438800000000|true
}

func TestImageMemoizedEvaluation(t *testing.T) {
	calls := 0
	img := NewLazyImageCollection(func() ([]*Image, error) {
		calls++
		return []*Image{makeTestImage("v", 1)}, nil
	}).First()

	for i := 0; i < 3; i++ {
		if _, err := img.Evaluate(); err != nil {
			t.Fatalf("evaluate %v: %v", i, err)
		}
	}
	if calls != 1 {
		t.Errorf("expected 1 fetch, got %v", calls)
	}
}

func TestLogAndExpMasking(t *testing.T) {
	img := makeTestImage("v", -1, 0, 1)
	grid, err := img.Log().Evaluate()
	if err != nil {
		t.Fatal(err)
	}
	b := grid.Bands[0]
	if b.Valid[0] || b.Valid[1] {
		t.Errorf("log of non-positive values should be masked")
	}
	if !b.Valid[2] || b.Values[2] != 0 {
		t.Errorf("log(1) should be valid 0, got %v valid=%v", b.Values[2], b.Valid[2])
	}
}
