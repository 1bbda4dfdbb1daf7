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

// Temporal interpolation from sparse per-scene fractions to a daily product.
// The model produces one fraction image per satellite overpass; this package
// fills the days in between and scales by the daily reference signal.
package interp

import (
	"fmt"

	"github.com/openet/ssebop-go/core/raster"
)

type Method string

const (
	MethodLinear Method = "linear"
)

// Service - turns a sparse fraction collection into a daily ET collection.
// reference supplies both the output dates and the per-day reference ET the
// interpolated fraction is multiplied by. interpDays bounds how far in time a
// neighboring observation may be to contribute to a day.
type Service interface {
	DailyET(reference *raster.ImageCollection, sparse *raster.ImageCollection, interpDays int, method Method) (*raster.ImageCollection, error)
}

// UnsupportedMethodError - requested interpolation method is not implemented
type UnsupportedMethodError struct {
	Method Method
}

func (e UnsupportedMethodError) Error() string {
	return fmt.Sprintf("unsupported interpolation method: %v", e.Method)
}
