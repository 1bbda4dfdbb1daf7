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

package catalog

// The fixed table of external dataset ids the model resolves parameters from.
// These are stable published asset ids, not configuration.

// LandsatC1TOACollections - the raw scene collections the model accepts
var LandsatC1TOACollections = []string{
	"LANDSAT/LC08/C01/T1_RT_TOA",
	"LANDSAT/LE07/C01/T1_RT_TOA",
	"LANDSAT/LC08/C01/T1_TOA",
	"LANDSAT/LE07/C01/T1_TOA",
	"LANDSAT/LT05/C01/T1_TOA",
}

func IsLandsatC1TOACollection(id string) bool {
	for _, known := range LandsatC1TOACollections {
		if id == known {
			return true
		}
	}
	return false
}

// Day-of-year indexed dT composites
const (
	DtDaymetMedianV0 = "projects/usgs-ssebop/dt/daymet_median_v0"
	DtDaymetMedianV1 = "projects/usgs-ssebop/dt/daymet_median_v1"
)

// Elevation images per source keyword
const (
	ElevAssetImage = "projects/usgs-ssebop/srtm_1km"
	ElevGtopoImage = "USGS/GTOPO30"
	ElevNedImage   = "USGS/NED"
	ElevSrtmImage  = "CGIAR/SRTM90_V4"
)

// Daily Tmax collections per source keyword
const (
	TmaxCimisDaily   = "projects/climate-engine/cimis/daily"
	TmaxDaymetDaily  = "NASA/ORNL/DAYMET_V3"
	TmaxGridmetDaily = "IDAHO_EPSCOR/GRIDMET"
)

// TmaxMedianCollection - id of a long-term median Tmax composite, eg
// ("daymet", "median_v0") -> projects/usgs-ssebop/tmax/daymet_median_v0
func TmaxMedianCollection(source string, version string) string {
	return "projects/usgs-ssebop/tmax/" + source + "_" + version
}

// Tcorr lookup tables per Tmax source keyword. Scene tables are keyed by
// SCENE_ID, monthly tables by WRS2_TILE + MONTH; both carry TCORR and INDEX.
var TcorrSceneTables = map[string]string{
	"CIMIS":             "projects/usgs-ssebop/tcorr/cimis_scene",
	"DAYMET":            "projects/usgs-ssebop/tcorr/daymet_scene",
	"GRIDMET":           "projects/usgs-ssebop/tcorr/gridmet_scene",
	"CIMIS_MEDIAN_V1":   "projects/usgs-ssebop/tcorr/cimis_median_v1_scene",
	"DAYMET_MEDIAN_V0":  "projects/usgs-ssebop/tcorr/daymet_median_v0_scene",
	"DAYMET_MEDIAN_V1":  "projects/usgs-ssebop/tcorr/daymet_median_v1_scene",
	"GRIDMET_MEDIAN_V1": "projects/usgs-ssebop/tcorr/gridmet_median_v1_scene",
	"TOPOWX_MEDIAN_V0":  "projects/usgs-ssebop/tcorr/topowx_median_v0_scene",
}

var TcorrMonthTables = map[string]string{
	"CIMIS":             "projects/usgs-ssebop/tcorr/cimis_monthly",
	"DAYMET":            "projects/usgs-ssebop/tcorr/daymet_monthly",
	"GRIDMET":           "projects/usgs-ssebop/tcorr/gridmet_monthly",
	"CIMIS_MEDIAN_V1":   "projects/usgs-ssebop/tcorr/cimis_median_v1_monthly",
	"DAYMET_MEDIAN_V0":  "projects/usgs-ssebop/tcorr/daymet_median_v0_monthly",
	"DAYMET_MEDIAN_V1":  "projects/usgs-ssebop/tcorr/daymet_median_v1_monthly",
	"GRIDMET_MEDIAN_V1": "projects/usgs-ssebop/tcorr/gridmet_median_v1_monthly",
	"TOPOWX_MEDIAN_V0":  "projects/usgs-ssebop/tcorr/topowx_median_v0_monthly",
}

// TcorrDefaults - fallback Tcorr per Tmax source keyword. These are tabulated
// independently per source even though the published values currently all
// agree.
var TcorrDefaults = map[string]float64{
	"CIMIS":             0.978,
	"DAYMET":            0.978,
	"GRIDMET":           0.978,
	"TOPOWX":            0.978,
	"CIMIS_MEDIAN_V1":   0.978,
	"DAYMET_MEDIAN_V0":  0.978,
	"DAYMET_MEDIAN_V1":  0.978,
	"GRIDMET_MEDIAN_V1": 0.978,
	"TOPOWX_MEDIAN_V0":  0.978,
}

// Reference ET for interpolation
const (
	ReferenceETCollection = "IDAHO_EPSCOR/GRIDMET"
	ReferenceETBand       = "etr"
)
