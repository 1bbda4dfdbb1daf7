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
	"time"

	"github.com/openet/ssebop-go/core/catalog"
	"github.com/openet/ssebop-go/core/raster"
	"github.com/openet/ssebop-go/core/timestamper"
)

func cToK(img *raster.Image) (*raster.Image, error) {
	return img.Add(raster.Constant(273.15)), nil
}

// tmax - daily maximum air temperature in Kelvin. Daily sources fall back to
// the long-term median composite when no daily image covers the acquisition
// day; which branch was taken shows in TMAX_VERSION (today's date for daily,
// the median version string for the fallback). The decision is part of the
// lazy graph, so it happens when pixels are pulled, not here.
func (r *paramResolver) tmax() (*raster.Image, error) {
	src := r.cfg.TmaxSource

	if v, ok := asNumber(src); ok {
		tmaxImage := raster.Constant(v).Rename("tmax").
			Set("TMAX_VERSION", "CUSTOM_"+src)
		return tmaxImage.Set("TMAX_SOURCE", src), nil
	}

	// Long-term median composite filtered to the acquisition day of year
	medianImage := func(source string, version string) *raster.Image {
		return r.cat.ImageCollection(catalog.TmaxMedianCollection(source, version)).
			FilterDayOfYear(r.scene.DayOfYear).
			First().
			Set("TMAX_VERSION", version)
	}

	dateToday := timestamper.DateStringUTC(r.ts)

	var tmaxImage *raster.Image

	switch strings.ToUpper(src) {
	case "CIMIS":
		dailyColl := r.cat.ImageCollection(catalog.TmaxCimisDaily).
			FilterDate(r.scene.DayStart, r.scene.DayEnd).
			SelectRename([]string{"Tx"}, []string{"tmax"}).
			Map(cToK)
		dailyImage := dailyColl.First().Set("TMAX_VERSION", dateToday)
		tmaxImage = raster.IfCollectionNonEmpty(dailyColl, dailyImage, medianImage("cimis", "median_v1"))

	case "DAYMET":
		// DAYMET does not include Dec 31st on leap years, filter one extra
		// day so the scene day is always covered
		dailyColl := r.cat.ImageCollection(catalog.TmaxDaymetDaily).
			FilterDate(r.scene.DayStart, r.scene.DayEnd.Add(24*time.Hour)).
			Select("tmax").
			Map(cToK)
		dailyImage := dailyColl.First().Set("TMAX_VERSION", dateToday)
		tmaxImage = raster.IfCollectionNonEmpty(dailyColl, dailyImage, medianImage("daymet", "median_v0"))

	case "GRIDMET":
		// GRIDMET temperatures are already in Kelvin
		dailyColl := r.cat.ImageCollection(catalog.TmaxGridmetDaily).
			FilterDate(r.scene.DayStart, r.scene.DayEnd).
			SelectRename([]string{"tmmx"}, []string{"tmax"})
		dailyImage := dailyColl.First().Set("TMAX_VERSION", dateToday)
		tmaxImage = raster.IfCollectionNonEmpty(dailyColl, dailyImage, medianImage("gridmet", "median_v1"))

	case "CIMIS_MEDIAN_V1":
		tmaxImage = medianImage("cimis", "median_v1")
	case "DAYMET_MEDIAN_V0":
		tmaxImage = medianImage("daymet", "median_v0")
	case "DAYMET_MEDIAN_V1":
		tmaxImage = medianImage("daymet", "median_v1")
	case "GRIDMET_MEDIAN_V1":
		tmaxImage = medianImage("gridmet", "median_v1")
	case "TOPOWX_MEDIAN_V0":
		tmaxImage = medianImage("topowx", "median_v0")

	default:
		return nil, InvalidParameterSourceError{Parameter: "Tmax", Source: src}
	}

	return tmaxImage.Set("TMAX_SOURCE", src), nil
}
