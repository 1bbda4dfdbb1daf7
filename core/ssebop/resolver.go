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
	"github.com/openet/ssebop-go/core/catalog"
	"github.com/openet/ssebop-go/core/landsatid"
	"github.com/openet/ssebop-go/core/logger"
	"github.com/openet/ssebop-go/core/timestamper"
)

// paramResolver - resolves the four model parameters (dT, elevation, Tmax,
// Tcorr) for one scene. Each resolution is independent: numeric sources become
// constants without touching the catalog, keyword sources build lazy dataset
// lookups keyed off the scene's acquisition date and tile.
type paramResolver struct {
	cfg   Config
	scene landsatid.SceneMeta
	cat   catalog.Catalog
	ts    timestamper.ITimeStamper
	log   logger.ILogger
}
