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
)

func tableFeature(index int, tcorr float64) Feature {
	return Feature{Properties: map[string]interface{}{
		"INDEX": index,
		"TCORR": tcorr,
	}}
}

func Example_featureCollectionSortFirst() {
	coll := NewFeatureCollection([]Feature{
		tableFeature(2, 0.978),
		tableFeature(0, 0.985),
		tableFeature(1, 0.981),
	})

	ftr, ok, err := coll.Sort("INDEX").First()
	tcorr, _ := ftr.GetNumber("TCORR")
	fmt.Printf("ok=%v err=%v tcorr=%v\n", ok, err, tcorr)

	// First on an empty collection reports absence, not an error
	_, ok, err = NewFeatureCollection(nil).First()
	fmt.Printf("ok=%v err=%v\n", ok, err)

	// Output:
	// ok=true err=<nil> tcorr=0.985
	// ok=false err=<nil>
}

func Example_featureCollectionFilterEquals() {
	coll := NewFeatureCollection([]Feature{
		{Properties: map[string]interface{}{"WRS2_TILE": "p043r033", "MONTH": 7, "TCORR": 0.98}},
		{Properties: map[string]interface{}{"WRS2_TILE": "p043r033", "MONTH": 8, "TCORR": 0.99}},
		{Properties: map[string]interface{}{"WRS2_TILE": "p044r033", "MONTH": 8, "TCORR": 0.97}},
	})

	// Numeric matches normalize, int 8 and float64 8 are the same month
	ftr, ok, _ := coll.
		FilterEquals("WRS2_TILE", "p043r033").
		FilterEquals("MONTH", 8.0).
		First()
	tcorr, _ := ftr.GetNumber("TCORR")
	fmt.Printf("ok=%v tcorr=%v\n", ok, tcorr)

	// Output:
	// ok=true tcorr=0.99
}

func Example_featureCollectionMerge() {
	defaults := NewFeatureCollection([]Feature{tableFeature(2, 0.978)})
	scene := NewFeatureCollection([]Feature{tableFeature(0, 0.99)})

	merged, err := defaults.Merge(scene).Sort("INDEX").Features()
	fmt.Printf("err=%v n=%v\n", err, len(merged))
	for _, f := range merged {
		idx, _ := f.GetNumber("INDEX")
		fmt.Printf("%v ", idx)
	}
	fmt.Printf("\n")

	// Output:
	// err=<nil> n=2
	// 0 2
}
