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
	"testing"
	"time"
)

func timedImage(day string, vals ...float64) *Image {
	t, _ := time.Parse("2006-01-02", day)
	return makeTestImage("v", vals...).Set(TimeStartProperty, t.UnixMilli())
}

func Example_collectionFilterDate() {
	coll := NewImageCollection([]*Image{
		timedImage("2015-08-04", 1),
		timedImage("2015-08-05", 2),
		timedImage("2015-08-06", 3),
	})

	start, _ := time.Parse("2006-01-02", "2015-08-05")
	end, _ := time.Parse("2006-01-02", "2015-08-06")

	// [start, end): the 6th is excluded
	filtered, err := coll.FilterDate(start, end).Images()
	fmt.Printf("n=%v err=%v\n", len(filtered), err)
	printBand(filtered[0], "v")

	// Output:
	// n=1 err=<nil>
	// 2
}

func Example_collectionFirst() {
	coll := NewImageCollection([]*Image{
		timedImage("2015-08-05", 7),
	})
	printBand(coll.First(), "v")

	// First on an empty collection fails when forced, not when built
	empty := NewImageCollection(nil).First()
	_, err := empty.Evaluate()
	fmt.Printf("%v\n", err)

	// Output:
	// 7
	// collection is empty
}

func Example_ifCollectionNonEmpty() {
	daily := NewImageCollection([]*Image{
		timedImage("2015-08-05", 1).Set("TMAX_VERSION", "2015-08-06"),
	})
	fallback := makeTestImage("v", 99).Set("TMAX_VERSION", "median_v0")

	picked := IfCollectionNonEmpty(daily, daily.First(), fallback)
	printBand(picked, "v")
	version, _ := picked.GetString("TMAX_VERSION")
	fmt.Printf("%v\n", version)

	picked = IfCollectionNonEmpty(NewImageCollection(nil), daily.First(), fallback)
	printBand(picked, "v")
	version, _ = picked.GetString("TMAX_VERSION")
	fmt.Printf("%v\n", version)

	// Output:
	// 1
	// 2015-08-06
	// 99
	// median_v0
}

func Example_collectionSortByTime() {
	coll := NewImageCollection([]*Image{
		timedImage("2015-08-06", 3),
		timedImage("2015-08-04", 1),
		timedImage("2015-08-05", 2),
	})

	imgs, _ := coll.SortByTime().Images()
	for _, img := range imgs {
		printBand(img, "v")
	}

	// Output:
	// 1
	// 2
	// 3
}

func TestFilterDayOfYear(t *testing.T) {
	// 2015-08-05 is day 217
	coll := NewImageCollection([]*Image{
		timedImage("2015-08-04", 1),
		timedImage("2015-08-05", 2),
	})

	imgs, err := coll.FilterDayOfYear(217).Images()
	if err != nil {
		t.Fatal(err)
	}
	if len(imgs) != 1 {
		t.Fatalf("expected 1 image, got %v", len(imgs))
	}

	// A composite tagged with an explicit DOY matches on that, not its time
	composite := makeTestImage("v", 9).Set(DayOfYearProperty, 217)
	imgs, err = NewImageCollection([]*Image{composite}).FilterDayOfYear(217).Images()
	if err != nil {
		t.Fatal(err)
	}
	if len(imgs) != 1 {
		t.Fatalf("expected DOY-tagged composite to match, got %v images", len(imgs))
	}
}

func TestFilterBounds(t *testing.T) {
	region := Region{MinLon: -120, MinLat: 35, MaxLon: -119, MaxLat: 36}
	inside := timedImage("2015-08-05", 1).
		WithFootprint(Region{MinLon: -121, MinLat: 34, MaxLon: -118, MaxLat: 37})
	outside := timedImage("2015-08-05", 2).
		WithFootprint(Region{MinLon: -100, MinLat: 30, MaxLon: -99, MaxLat: 31})
	// No footprint means we can't rule the image out
	unknown := timedImage("2015-08-05", 3)

	imgs, err := NewImageCollection([]*Image{inside, outside, unknown}).
		FilterBounds(region).Images()
	if err != nil {
		t.Fatal(err)
	}
	if len(imgs) != 2 {
		t.Fatalf("expected 2 images, got %v", len(imgs))
	}
}

func TestMedianByDayOfYear(t *testing.T) {
	// Non-leap years only, Aug 5th is day 217 in all of them
	coll := NewImageCollection([]*Image{
		timedImage("2013-08-05", 1),
		timedImage("2015-08-05", 3),
		timedImage("2014-08-05", 2),
		timedImage("2015-08-06", 10),
	})

	composites, err := coll.MedianByDayOfYear().SortByTime().Images()
	if err != nil {
		// Composites carry DOY, not time; sort may be a no-op but must not fail
		t.Fatal(err)
	}
	if len(composites) != 2 {
		t.Fatalf("expected 2 composites, got %v", len(composites))
	}

	for _, img := range composites {
		doy, ok := img.GetInt64(DayOfYearProperty)
		if !ok {
			t.Fatalf("composite missing DOY")
		}
		grid, err := img.Evaluate()
		if err != nil {
			t.Fatal(err)
		}
		got := grid.Bands[0].Values[0]
		switch doy {
		case 217:
			if got != 2 {
				t.Errorf("doy 217 median: expected 2, got %v", got)
			}
		case 218:
			if got != 10 {
				t.Errorf("doy 218 median: expected 10, got %v", got)
			}
		default:
			t.Errorf("unexpected doy %v", doy)
		}
	}
}
