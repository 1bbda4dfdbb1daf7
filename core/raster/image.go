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

// Lazy raster computation graph. Every Image op composes a deferred transform
// and returns a new Image; nothing touches pixel data (or fetches a dataset)
// until Evaluate is called. Each node evaluates at most once, concurrent
// evaluators share the single result.
package raster

import (
	"math"
	"sync"

	"github.com/pkg/errors"
)

// TimeStartProperty - epoch milliseconds of the observation an image belongs to
const TimeStartProperty = "system:time_start"

// IndexProperty - the catalog index string an image came from
const IndexProperty = "system:index"

// DayOfYearProperty - set on composite images that represent a day-of-year
// aggregate rather than a single observation
const DayOfYearProperty = "DOY"

type lazyBands struct {
	once    sync.Once
	compute func() (*bandSet, error)
	bands   *bandSet
	err     error
}

func (l *lazyBands) get() (*bandSet, error) {
	l.once.Do(func() {
		l.bands, l.err = l.compute()
		l.compute = nil
	})
	return l.bands, l.err
}

// Image - an unevaluated raster. Metadata is carried eagerly except for
// images whose identity is only known at evaluation time (collection First,
// non-empty conditionals), those resolve metadata through metaSource.
type Image struct {
	data       *lazyBands
	meta       map[string]interface{}
	footprint  *Region
	metaSource func() (*Image, error)
}

func newImage(compute func() (*bandSet, error)) *Image {
	return &Image{
		data: &lazyBands{compute: compute},
		meta: map[string]interface{}{},
	}
}

// NewSourceImage - wraps an evaluated grid as a graph leaf
func NewSourceImage(grid *Grid) *Image {
	img := newImage(func() (*bandSet, error) {
		bands := &bandSet{}
		for i := range grid.Bands {
			b := &grid.Bands[i]
			bands.names = append(bands.names, b.Name)
			bands.planes = append(bands.planes, gridPlane(grid.Width, grid.Height, b.Values, b.Valid))
		}
		return bands, nil
	})
	return img
}

// Constant - a single-band image of one value, broadcast when combined with
// gridded images
func Constant(value float64) *Image {
	img := newImage(func() (*bandSet, error) {
		return &bandSet{names: []string{"constant"}, planes: []*plane{constPlane(value)}}, nil
	})
	return img
}

func copyMeta(meta map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(meta))
	for k, v := range meta {
		out[k] = v
	}
	return out
}

// derive - new node downstream of img, keeping metadata and footprint
func (img *Image) derive(compute func() (*bandSet, error)) *Image {
	return &Image{
		data:       &lazyBands{compute: compute},
		meta:       copyMeta(img.meta),
		footprint:  img.footprint,
		metaSource: img.metaSource,
	}
}

// Evaluate - materializes the graph into a concrete grid
func (img *Image) Evaluate() (*Grid, error) {
	bands, err := img.data.get()
	if err != nil {
		return nil, err
	}
	return bands.toGrid(), nil
}

//
// Band selection
//

func (img *Image) Select(names ...string) *Image {
	return img.derive(func() (*bandSet, error) {
		src, err := img.data.get()
		if err != nil {
			return nil, err
		}
		out := &bandSet{}
		for _, name := range names {
			p, err := src.plane(name)
			if err != nil {
				return nil, err
			}
			out.names = append(out.names, name)
			out.planes = append(out.planes, p)
		}
		return out, nil
	})
}

// SelectRename - selects bands by their source names and renames them in one
// step, the way sensor-specific bands get normalized to the model's names
func (img *Image) SelectRename(from []string, to []string) *Image {
	return img.derive(func() (*bandSet, error) {
		if len(from) != len(to) {
			return nil, errors.Errorf("SelectRename band count mismatch: %v vs %v", len(from), len(to))
		}
		src, err := img.data.get()
		if err != nil {
			return nil, err
		}
		out := &bandSet{}
		for i, name := range from {
			p, err := src.plane(name)
			if err != nil {
				return nil, err
			}
			out.names = append(out.names, to[i])
			out.planes = append(out.planes, p)
		}
		return out, nil
	})
}

// SelectAt - selects a single band by position
func (img *Image) SelectAt(index int) *Image {
	return img.derive(func() (*bandSet, error) {
		src, err := img.data.get()
		if err != nil {
			return nil, err
		}
		if index < 0 || index >= len(src.names) {
			return nil, errors.Errorf("band index %v out of range (%v bands)", index, len(src.names))
		}
		return &bandSet{names: []string{src.names[index]}, planes: []*plane{src.planes[index]}}, nil
	})
}

// Rename - renames all bands in order
func (img *Image) Rename(names ...string) *Image {
	return img.derive(func() (*bandSet, error) {
		src, err := img.data.get()
		if err != nil {
			return nil, err
		}
		if len(names) != len(src.names) {
			return nil, errors.Errorf("Rename expects %v names, got %v", len(src.names), len(names))
		}
		return &bandSet{names: append([]string{}, names...), planes: src.planes}, nil
	})
}

// AddBands - concatenates the bands of another image
func (img *Image) AddBands(other *Image) *Image {
	return img.derive(func() (*bandSet, error) {
		a, err := img.data.get()
		if err != nil {
			return nil, err
		}
		b, err := other.data.get()
		if err != nil {
			return nil, err
		}
		return &bandSet{
			names:  append(append([]string{}, a.names...), b.names...),
			planes: append(append([]*plane{}, a.planes...), b.planes...),
		}, nil
	})
}

//
// Pixel math. Binary ops pair bands positionally; a single-band operand
// broadcasts across all bands of the other side. Result bands keep the left
// side's names. Pixels invalid on either side stay invalid.
//

func (img *Image) binary(other *Image, f func(a float64, b float64) (float64, bool)) *Image {
	out := img.derive(func() (*bandSet, error) {
		a, err := img.data.get()
		if err != nil {
			return nil, err
		}
		b, err := other.data.get()
		if err != nil {
			return nil, err
		}

		result := &bandSet{names: append([]string{}, a.names...)}
		for i := range a.planes {
			var bp *plane
			if len(b.planes) == 1 {
				bp = b.planes[0]
			} else if len(b.planes) == len(a.planes) {
				bp = b.planes[i]
			} else {
				return nil, errors.Errorf("band count mismatch: %v vs %v", len(a.planes), len(b.planes))
			}
			p, err := zipPlanes(a.planes[i], bp, f)
			if err != nil {
				return nil, err
			}
			result.planes = append(result.planes, p)
		}
		return result, nil
	})
	if out.footprint == nil {
		out.footprint = other.footprint
	}
	return out
}

func (img *Image) unary(f func(v float64) (float64, bool)) *Image {
	return img.derive(func() (*bandSet, error) {
		src, err := img.data.get()
		if err != nil {
			return nil, err
		}
		result := &bandSet{names: append([]string{}, src.names...)}
		for _, p := range src.planes {
			result.planes = append(result.planes, mapPlane(p, f))
		}
		return result, nil
	})
}

func (img *Image) Add(other *Image) *Image {
	return img.binary(other, func(a, b float64) (float64, bool) { return a + b, true })
}

func (img *Image) Subtract(other *Image) *Image {
	return img.binary(other, func(a, b float64) (float64, bool) { return a - b, true })
}

func (img *Image) Multiply(other *Image) *Image {
	return img.binary(other, func(a, b float64) (float64, bool) { return a * b, true })
}

// Divide - division by zero masks the pixel rather than failing the graph
func (img *Image) Divide(other *Image) *Image {
	return img.binary(other, func(a, b float64) (float64, bool) {
		if b == 0 {
			return 0, false
		}
		return a / b, true
	})
}

func (img *Image) Exp() *Image {
	return img.unary(func(v float64) (float64, bool) { return math.Exp(v), true })
}

func (img *Image) Log() *Image {
	return img.unary(func(v float64) (float64, bool) {
		if v <= 0 {
			return 0, false
		}
		return math.Log(v), true
	})
}

func (img *Image) Pow(exponent float64) *Image {
	return img.unary(func(v float64) (float64, bool) { return math.Pow(v, exponent), true })
}

func (img *Image) Clamp(lo float64, hi float64) *Image {
	return img.unary(func(v float64) (float64, bool) {
		if v < lo {
			return lo, true
		}
		if v > hi {
			return hi, true
		}
		return v, true
	})
}

//
// Comparisons - produce 1 where true, 0 where false
//

func boolVal(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func (img *Image) Lt(other *Image) *Image {
	return img.binary(other, func(a, b float64) (float64, bool) { return boolVal(a < b), true })
}

func (img *Image) Lte(other *Image) *Image {
	return img.binary(other, func(a, b float64) (float64, bool) { return boolVal(a <= b), true })
}

func (img *Image) Gt(other *Image) *Image {
	return img.binary(other, func(a, b float64) (float64, bool) { return boolVal(a > b), true })
}

func (img *Image) Gte(other *Image) *Image {
	return img.binary(other, func(a, b float64) (float64, bool) { return boolVal(a >= b), true })
}

func (img *Image) And(other *Image) *Image {
	return img.binary(other, func(a, b float64) (float64, bool) { return boolVal(a != 0 && b != 0), true })
}

// Where - replaces pixels where cond is valid and nonzero with value's pixel.
// cond and value broadcast if single-band.
func (img *Image) Where(cond *Image, value *Image) *Image {
	return img.derive(func() (*bandSet, error) {
		src, err := img.data.get()
		if err != nil {
			return nil, err
		}
		condBands, err := cond.data.get()
		if err != nil {
			return nil, err
		}
		valBands, err := value.data.get()
		if err != nil {
			return nil, err
		}

		result := &bandSet{names: append([]string{}, src.names...)}
		for i, p := range src.planes {
			cp, err := pickPlane(condBands, i, len(src.planes))
			if err != nil {
				return nil, err
			}
			vp, err := pickPlane(valBands, i, len(src.planes))
			if err != nil {
				return nil, err
			}
			merged, err := wherePlane(p, cp, vp)
			if err != nil {
				return nil, err
			}
			result.planes = append(result.planes, merged)
		}
		return result, nil
	})
}

func pickPlane(bands *bandSet, i int, total int) (*plane, error) {
	if len(bands.planes) == 1 {
		return bands.planes[0], nil
	}
	if len(bands.planes) == total {
		return bands.planes[i], nil
	}
	return nil, errors.Errorf("band count mismatch: %v vs %v", total, len(bands.planes))
}

func wherePlane(src *plane, cond *plane, value *plane) (*plane, error) {
	// First pass picks src vs value per pixel based on cond
	selected, err := zipPlanes(src, cond, func(s, c float64) (float64, bool) {
		return s, true
	})
	if err != nil {
		return nil, err
	}

	if !value.isConst && !selected.isConst && (value.w != selected.w || value.h != selected.h) {
		return nil, errors.Errorf("band dimensions differ: %vx%v vs %vx%v", selected.w, selected.h, value.w, value.h)
	}

	n := len(selected.vals)
	if selected.isConst {
		// All-constant inputs, resolve directly
		cv, cok := cond.at(0)
		if cok && cv != 0 {
			v, ok := value.at(0)
			out := constPlane(v)
			out.cvalid = ok
			return out, nil
		}
		v, ok := src.at(0)
		out := constPlane(v)
		out.cvalid = ok
		return out, nil
	}

	out := &plane{w: selected.w, h: selected.h, vals: make([]float64, n), valid: make([]bool, n)}
	for i := 0; i < n; i++ {
		sv, sok := src.at(pixelIndex(src, i))
		cv, cok := cond.at(pixelIndex(cond, i))
		if cok && cv != 0 {
			out.vals[i], out.valid[i] = value.at(pixelIndex(value, i))
		} else {
			out.vals[i], out.valid[i] = sv, sok
		}
	}
	return out, nil
}

func pixelIndex(p *plane, i int) int {
	if p.isConst {
		return 0
	}
	return i
}

// UpdateMask - marks pixels invalid where mask is zero or itself invalid
func (img *Image) UpdateMask(mask *Image) *Image {
	return img.binary(mask, func(v, m float64) (float64, bool) {
		if m == 0 {
			return 0, false
		}
		return v, true
	})
}

// NormalizedDifference - (b1 - b2) / (b1 + b2) as a single band named "nd".
// Pixels where the sum is zero come out masked, not failed.
func (img *Image) NormalizedDifference(band1 string, band2 string) *Image {
	return img.derive(func() (*bandSet, error) {
		src, err := img.data.get()
		if err != nil {
			return nil, err
		}
		p1, err := src.plane(band1)
		if err != nil {
			return nil, err
		}
		p2, err := src.plane(band2)
		if err != nil {
			return nil, err
		}
		nd, err := zipPlanes(p1, p2, func(a, b float64) (float64, bool) {
			if a+b == 0 {
				return 0, false
			}
			return (a - b) / (a + b), true
		})
		if err != nil {
			return nil, err
		}
		return &bandSet{names: []string{"nd"}, planes: []*plane{nd}}, nil
	})
}

//
// Metadata
//

// Set - returns a copy with the property set; the underlying pixel graph is
// shared, not re-evaluated
func (img *Image) Set(key string, value interface{}) *Image {
	out := &Image{
		data:       img.data,
		meta:       copyMeta(img.meta),
		footprint:  img.footprint,
		metaSource: img.metaSource,
	}
	out.meta[key] = value
	return out
}

// Get - reads a property. Images whose identity resolves at evaluation time
// (collection First, conditionals) pull the property through once resolved;
// resolution failures just report the property as absent, the error itself
// surfaces from Evaluate.
func (img *Image) Get(key string) (interface{}, bool) {
	if v, ok := img.meta[key]; ok {
		return v, true
	}
	if img.metaSource != nil {
		resolved, err := img.metaSource()
		if err == nil && resolved != nil {
			return resolved.Get(key)
		}
	}
	return nil, false
}

func (img *Image) GetString(key string) (string, bool) {
	v, ok := img.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (img *Image) GetFloat(key string) (float64, bool) {
	v, ok := img.Get(key)
	if !ok {
		return 0, false
	}
	return asFloat(v)
}

func (img *Image) GetInt64(key string) (int64, bool) {
	f, ok := img.GetFloat(key)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// TimeStart - observation time in epoch milliseconds
func (img *Image) TimeStart() (int64, bool) {
	return img.GetInt64(TimeStartProperty)
}

// CopyProperties - copies the named properties from another image
func (img *Image) CopyProperties(src *Image, keys []string) *Image {
	out := img
	for _, key := range keys {
		if v, ok := src.Get(key); ok {
			out = out.Set(key, v)
		}
	}
	return out
}

func (img *Image) Footprint() *Region {
	return img.footprint
}

func (img *Image) WithFootprint(region Region) *Image {
	out := &Image{
		data:       img.data,
		meta:       copyMeta(img.meta),
		metaSource: img.metaSource,
	}
	r := region
	out.footprint = &r
	return out
}
