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
	"fmt"
	"testing"

	"github.com/openet/ssebop-go/core/fileaccess"
)

func Example_loadConfig() {
	fs := fileaccess.MakeMock()

	// Partial config: unset fields keep their defaults
	fs.WriteJSON("config-bucket", "ssebop/config.json", map[string]interface{}{
		"tmaxSource":     "DAYMET",
		"tdiffThreshold": 12.5,
	})

	cfg, err := LoadConfig(fs, "config-bucket", "ssebop/config.json")
	fmt.Printf("%v|%v %v %v %v %v\n", err,
		cfg.TmaxSource, cfg.TdiffThreshold, cfg.DtSource, cfg.ElevSource, cfg.TcorrSource)

	_, err = LoadConfig(fs, "config-bucket", "ssebop/missing.json")
	fmt.Printf("missing config errors: %v\n", err != nil)

	// Output:
	// <nil>|DAYMET 12.5 DAYMET_MEDIAN_V1 ASSET SCENE
	// missing config errors: true
}

func TestAsNumber(t *testing.T) {
	cases := []struct {
		source string
		value  float64
		ok     bool
	}{
		{"0.978", 0.978, true},
		{" 305.5 ", 305.5, true},
		{"-19", -19, true},
		{"DAYMET", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		value, ok := asNumber(c.source)
		if ok != c.ok || value != c.value {
			t.Errorf("asNumber(%q) = %v,%v, expected %v,%v", c.source, value, ok, c.value, c.ok)
		}
	}
}
