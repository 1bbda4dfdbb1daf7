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
	"strings"

	"github.com/openet/ssebop-go/core/catalog"
	"github.com/openet/ssebop-go/core/raster"
	"github.com/pkg/errors"
)

// Tcorr priority tiers, recorded as INDEX on the chosen candidate so
// downstream products can tell how the scene was calibrated
const (
	TcorrIndexScene   = 0
	TcorrIndexMonth   = 1
	TcorrIndexDefault = 2
	TcorrIndexUser    = 3
)

// tcorr - temperature correction coefficient from the pre-computed calibration
// tables for the configured Tmax source. Candidates are gathered per tier
// (scene, monthly, default), merged and sorted by INDEX; the lowest index
// present wins. The default tier always matches, so resolution cannot come up
// empty.
func (r *paramResolver) tcorr() (float64, int, error) {
	if v, ok := asNumber(r.cfg.TcorrSource); ok {
		return v, TcorrIndexUser, nil
	}

	tmaxKey := strings.ToUpper(r.cfg.TmaxSource)
	defaultValue, ok := catalog.TcorrDefaults[tmaxKey]
	if !ok {
		return 0, 0, InvalidParameterSourceError{
			Parameter: "Tcorr",
			Source:    fmt.Sprintf("%v / %v", r.cfg.TcorrSource, r.cfg.TmaxSource),
			Detail:    "Tmax source has no Tcorr tables, expected one of: " + sortedKeys(catalog.TcorrDefaults),
		}
	}

	candidates := raster.NewFeatureCollection([]raster.Feature{
		tcorrCandidate(TcorrIndexDefault, defaultValue),
	})

	monthLookup := r.cat.FeatureCollection(catalog.TcorrMonthTables[tmaxKey]).
		FilterEquals("WRS2_TILE", r.scene.WRS2Tile).
		FilterEquals("MONTH", r.scene.Month)

	switch strings.ToUpper(r.cfg.TcorrSource) {
	case "SCENE":
		sceneLookup := r.cat.FeatureCollection(catalog.TcorrSceneTables[tmaxKey]).
			FilterEquals("SCENE_ID", r.scene.SceneID)
		sceneCandidates, err := tierCandidates(sceneLookup, TcorrIndexScene)
		if err != nil {
			return 0, 0, err
		}
		monthCandidates, err := tierCandidates(monthLookup, TcorrIndexMonth)
		if err != nil {
			return 0, 0, err
		}
		candidates = candidates.Merge(monthCandidates).Merge(sceneCandidates)

	case "MONTH":
		monthCandidates, err := tierCandidates(monthLookup, TcorrIndexMonth)
		if err != nil {
			return 0, 0, err
		}
		candidates = candidates.Merge(monthCandidates)

	default:
		return 0, 0, InvalidParameterSourceError{
			Parameter: "Tcorr",
			Source:    fmt.Sprintf("%v / %v", r.cfg.TcorrSource, r.cfg.TmaxSource),
		}
	}

	chosen, ok, err := candidates.Sort("INDEX").First()
	if err != nil {
		return 0, 0, errors.Wrap(err, "resolving Tcorr")
	}
	if !ok {
		// Unreachable, the default tier is always present
		return defaultValue, TcorrIndexDefault, nil
	}

	tcorr, ok := chosen.GetNumber("TCORR")
	if !ok {
		return 0, 0, errors.New("Tcorr table row is missing TCORR")
	}
	tcorrIndex, _ := chosen.GetNumber("INDEX")
	return tcorr, int(tcorrIndex), nil
}

func tcorrCandidate(index int, value float64) raster.Feature {
	return raster.Feature{Properties: map[string]interface{}{
		"INDEX": index,
		"TCORR": value,
	}}
}

// tierCandidates - reduces one table lookup to at most one candidate, tagged
// with its tier index. Table rows carry their own INDEX but the tier is
// authoritative here, so it is overwritten.
func tierCandidates(lookup *raster.FeatureCollection, index int) (*raster.FeatureCollection, error) {
	row, ok, err := lookup.First()
	if err != nil {
		if errors.As(err, &catalog.NotFoundError{}) {
			// Table missing entirely, same as no matching row
			return raster.NewFeatureCollection(nil), nil
		}
		return nil, errors.Wrap(err, "reading Tcorr table")
	}
	if !ok {
		return raster.NewFeatureCollection(nil), nil
	}

	value, ok := row.GetNumber("TCORR")
	if !ok {
		return nil, errors.New("Tcorr table row is missing TCORR")
	}
	return raster.NewFeatureCollection([]raster.Feature{tcorrCandidate(index, value)}), nil
}
