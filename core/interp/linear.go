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

package interp

import (
	"github.com/openet/ssebop-go/core/raster"
	"github.com/pkg/errors"
	gointerp "gonum.org/v1/gonum/interp"
)

const msPerDay = 24 * 60 * 60 * 1000

// LinearService - per-pixel piecewise-linear interpolation in time. For each
// reference day, a pixel's fraction is interpolated between the nearest valid
// observation before and after that day; if only one neighbor lies within the
// window the pixel takes its value, with neither it stays masked. The daily ET
// is the interpolated fraction times the reference pixel.
type LinearService struct {
}

func MakeLinearService() LinearService {
	return LinearService{}
}

// One evaluated observation of the sparse collection
type timeSample struct {
	timeMs int64
	band   *raster.GridBand
}

func (s LinearService) DailyET(reference *raster.ImageCollection, sparse *raster.ImageCollection, interpDays int, method Method) (*raster.ImageCollection, error) {
	if method != MethodLinear {
		return nil, UnsupportedMethodError{Method: method}
	}
	if interpDays <= 0 {
		return nil, errors.Errorf("interpDays must be positive, got %v", interpDays)
	}
	windowMs := float64(interpDays) * msPerDay

	return raster.NewLazyImageCollection(func() ([]*raster.Image, error) {
		samples, width, height, err := evaluateSamples(sparse)
		if err != nil {
			return nil, err
		}

		refImgs, err := reference.SortByTime().Images()
		if err != nil {
			return nil, errors.Wrap(err, "listing reference collection")
		}

		result := make([]*raster.Image, 0, len(refImgs))
		for _, refImg := range refImgs {
			refTime, ok := refImg.TimeStart()
			if !ok {
				return nil, errors.New("reference image is missing system:time_start")
			}
			refGrid, err := refImg.Evaluate()
			if err != nil {
				return nil, errors.Wrap(err, "evaluating reference image")
			}
			if len(refGrid.Bands) == 0 {
				return nil, errors.New("reference image has no bands")
			}
			refBand := &refGrid.Bands[0]

			w, h := refGrid.Width, refGrid.Height
			if len(samples) > 0 && width > 1 && w > 1 && (w != width || h != height) {
				return nil, errors.Errorf("reference grid %vx%v does not match scene grid %vx%v", w, h, width, height)
			}
			if w*h < width*height {
				w, h = width, height
			}

			day, err := interpolateDay(samples, refBand, w, h, float64(refTime), windowMs)
			if err != nil {
				return nil, err
			}

			img := raster.NewSourceImage(day).
				Set(raster.TimeStartProperty, refTime)
			if index, ok := refImg.GetString(raster.IndexProperty); ok {
				img = img.Set(raster.IndexProperty, index)
			}
			result = append(result, img)
		}
		return result, nil
	}), nil
}

// evaluateSamples - forces every sparse observation to pixels, sorted by time
// with duplicate timestamps collapsed to the first
func evaluateSamples(sparse *raster.ImageCollection) ([]timeSample, int, int, error) {
	imgs, err := sparse.SortByTime().Images()
	if err != nil {
		return nil, 0, 0, errors.Wrap(err, "listing scene collection")
	}

	samples := []timeSample{}
	width, height := 1, 1
	for _, img := range imgs {
		t, ok := img.TimeStart()
		if !ok {
			return nil, 0, 0, errors.New("scene image is missing system:time_start")
		}
		if len(samples) > 0 && samples[len(samples)-1].timeMs == t {
			continue
		}

		grid, err := img.Evaluate()
		if err != nil {
			return nil, 0, 0, errors.Wrap(err, "evaluating scene image")
		}
		if len(grid.Bands) == 0 {
			return nil, 0, 0, errors.New("scene image has no bands")
		}
		if grid.Width*grid.Height > width*height {
			if width > 1 && (grid.Width != width || grid.Height != height) {
				return nil, 0, 0, errors.Errorf("scene grids disagree: %vx%v vs %vx%v", grid.Width, grid.Height, width, height)
			}
			width, height = grid.Width, grid.Height
		}
		samples = append(samples, timeSample{timeMs: t, band: &grid.Bands[0]})
	}
	return samples, width, height, nil
}

// bandValue - reads a pixel, broadcasting single-value (constant) bands.
// A nil validity mask means every pixel is valid.
func bandValue(band *raster.GridBand, idx int) (float64, bool) {
	if len(band.Values) == 1 {
		idx = 0
	}
	if idx >= len(band.Values) {
		return 0, false
	}
	valid := band.Valid == nil || band.Valid[idx]
	return band.Values[idx], valid
}

func interpolateDay(samples []timeSample, refBand *raster.GridBand, w int, h int, t float64, windowMs float64) (*raster.Grid, error) {
	n := w * h
	vals := make([]float64, n)
	valid := make([]bool, n)

	for idx := 0; idx < n; idx++ {
		refVal, refOk := bandValue(refBand, idx)
		if !refOk {
			continue
		}
		frac, ok, err := interpolatePixel(samples, idx, t, windowMs)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		vals[idx] = frac * refVal
		valid[idx] = true
	}

	return &raster.Grid{
		Width:  w,
		Height: h,
		Bands:  []raster.GridBand{{Name: "et", Values: vals, Valid: valid}},
	}, nil
}

// interpolatePixel - fraction at time t from the valid observations of one
// pixel. Bracketing neighbors within the window interpolate linearly, a
// single neighbor extends flat, none leaves the pixel masked.
func interpolatePixel(samples []timeSample, idx int, t float64, windowMs float64) (float64, bool, error) {
	prevOk, nextOk := false, false
	var prevT, nextT, prevV, nextV float64

	for _, s := range samples {
		v, ok := bandValue(s.band, idx)
		if !ok {
			continue
		}
		st := float64(s.timeMs)
		if st <= t {
			if t-st <= windowMs {
				prevT, prevV, prevOk = st, v, true
			}
		} else {
			if st-t <= windowMs {
				nextT, nextV, nextOk = st, v, true
			}
			break
		}
	}

	switch {
	case prevOk && nextOk:
		if prevT == nextT {
			return prevV, true, nil
		}
		var pl gointerp.PiecewiseLinear
		if err := pl.Fit([]float64{prevT, nextT}, []float64{prevV, nextV}); err != nil {
			return 0, false, errors.Wrap(err, "fitting interpolant")
		}
		return pl.Predict(t), true, nil
	case prevOk:
		return prevV, true, nil
	case nextOk:
		return nextV, true, nil
	}
	return 0, false, nil
}
