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
	"sync"

	"github.com/openet/ssebop-go/core/catalog"
	"github.com/openet/ssebop-go/core/interp"
	"github.com/openet/ssebop-go/core/landsatid"
	"github.com/openet/ssebop-go/core/logger"
	"github.com/openet/ssebop-go/core/raster"
	"github.com/openet/ssebop-go/core/timestamper"
	"github.com/pkg/errors"
)

// Deps - external services a model image resolves parameters through. Zero
// values get safe defaults, so tests only set what they exercise.
type Deps struct {
	Catalog     catalog.Catalog
	TimeStamper timestamper.ITimeStamper
	Interp      interp.Service
	Log         logger.ILogger
}

func (d Deps) withDefaults() Deps {
	if d.Catalog == nil {
		d.Catalog = catalog.MakeMemoryCatalog()
	}
	if d.TimeStamper == nil {
		d.TimeStamper = &timestamper.UnixTimeNowStamper{}
	}
	if d.Interp == nil {
		d.Interp = interp.MakeLinearService()
	}
	if d.Log == nil {
		d.Log = &logger.NullLogger{}
	}
	return d
}

// Image - one prepped scene (lst + ndvi bands) together with the parameter
// sources needed to turn it into products. Products are resolved once per
// Image and memoized, repeated calls share the result.
type Image struct {
	input *raster.Image
	cfg   Config
	deps  Deps

	index       string
	timeStartMs int64
	scene       landsatid.SceneMeta

	etfOnce sync.Once
	etf     *raster.Image
	etfErr  error
}

// NewImage - wraps an already-prepped input image. The input must carry a
// system:time_start; a missing or malformed system:index is tolerated and
// logged, matching how merged collections historically flowed through.
func NewImage(input *raster.Image, cfg Config, deps Deps) (*Image, error) {
	deps = deps.withDefaults()

	timeStartMs, ok := input.TimeStart()
	if !ok {
		return nil, errors.New("input image is missing system:time_start")
	}

	index, _ := input.GetString(raster.IndexProperty)
	scene, err := landsatid.ParseSceneIndex(index, timeStartMs)
	if err != nil {
		deps.Log.Debugf("scene index %v: %v", index, err)
	}

	return &Image{
		input:       input,
		cfg:         cfg,
		deps:        deps,
		index:       index,
		timeStartMs: timeStartMs,
		scene:       scene,
	}, nil
}

func (img *Image) Config() Config {
	return img.cfg
}

func (img *Image) Scene() landsatid.SceneMeta {
	return img.scene
}

// Lst - emissivity corrected land surface temperature band of the input
func (img *Image) Lst() *raster.Image {
	return img.input.Select("lst")
}

// Ndvi - vegetation index band of the input
func (img *Image) Ndvi() *raster.Image {
	return img.input.Select("ndvi")
}

// Elev - elevation for the configured source. Not an ETf input here, exposed
// for products that apply the lapse rate adjustment downstream.
func (img *Image) Elev() (*raster.Image, error) {
	return img.resolver().elev()
}

// Etf - the fraction of reference ET product. Resolved once, later calls
// return the memoized graph (or the memoized failure).
func (img *Image) Etf() (*raster.Image, error) {
	img.etfOnce.Do(func() {
		img.etf, img.etfErr = img.computeEtf()
	})
	return img.etf, img.etfErr
}

func (img *Image) computeEtf() (*raster.Image, error) {
	r := img.resolver()

	tcorr, tcorrIndex, err := r.tcorr()
	if err != nil {
		return nil, err
	}
	tmax, err := r.tmax()
	if err != nil {
		return nil, err
	}
	dt, err := r.dt()
	if err != nil {
		return nil, err
	}

	lst := img.Lst()

	// etf = (tmax * tcorr - lst + dt) / dt
	etf := tmax.Multiply(raster.Constant(tcorr)).
		Subtract(lst).
		Add(dt).
		Divide(dt)

	// Values >= 1.3 are considered contaminated, masked before the clamp so
	// they don't survive as 1.05
	etf = etf.UpdateMask(etf.Lt(raster.Constant(1.3)))
	etf = etf.Clamp(0, 1.05)

	// Cold pixels relative to Tmax indicate cloud or water
	etf = etf.UpdateMask(tmax.Subtract(lst).Lte(raster.Constant(img.cfg.TdiffThreshold)))

	etf = etf.Rename("etf").
		Set(raster.IndexProperty, img.index).
		Set(raster.TimeStartProperty, img.timeStartMs).
		Set("TCORR", tcorr).
		Set("TCORR_INDEX", int64(tcorrIndex))
	if fp := img.input.Footprint(); fp != nil {
		etf = etf.WithFootprint(*fp)
	}
	return etf, nil
}

// VariableImage - product dispatch by variable
func (img *Image) VariableImage(v Variable) (*raster.Image, error) {
	switch v {
	case VariableEtf:
		return img.Etf()
	}
	return nil, UnsupportedVariableError{Variable: v.String()}
}

func (img *Image) resolver() *paramResolver {
	return &paramResolver{
		cfg:   img.cfg,
		scene: img.scene,
		cat:   img.deps.Catalog,
		ts:    img.deps.TimeStamper,
		log:   img.deps.Log,
	}
}
