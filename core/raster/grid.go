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

import "github.com/pkg/errors"

// Grid - a fully evaluated raster: named bands of per-pixel values plus a
// validity mask per band. This is what Image.Evaluate materializes and what
// source assets deserialize into. Pixels are stored row-major.
type Grid struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Bands  []GridBand `json:"bands"`
}

type GridBand struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
	// Valid can be nil, meaning every pixel is valid
	Valid []bool `json:"valid,omitempty"`
}

func (g *Grid) Band(name string) (*GridBand, bool) {
	for i := range g.Bands {
		if g.Bands[i].Name == name {
			return &g.Bands[i], true
		}
	}
	return nil, false
}

func (g *Grid) BandNames() []string {
	names := make([]string, 0, len(g.Bands))
	for _, b := range g.Bands {
		names = append(names, b.Name)
	}
	return names
}

// At - value and validity of band pixel (x, y)
func (g *Grid) At(band string, x int, y int) (float64, bool, error) {
	b, ok := g.Band(band)
	if !ok {
		return 0, false, errors.Errorf("grid has no band: %v", band)
	}
	idx := y*g.Width + x
	if idx < 0 || idx >= len(b.Values) {
		return 0, false, errors.Errorf("pixel (%v, %v) out of range for band: %v", x, y, band)
	}
	valid := b.Valid == nil || b.Valid[idx]
	return b.Values[idx], valid, nil
}

// plane - a single band mid-evaluation. Constants have no dimensions of their
// own and broadcast against whatever they are combined with.
type plane struct {
	w, h    int
	vals    []float64
	valid   []bool
	isConst bool
	cval    float64
	cvalid  bool
}

func constPlane(v float64) *plane {
	return &plane{isConst: true, cval: v, cvalid: true}
}

func gridPlane(w int, h int, vals []float64, valid []bool) *plane {
	return &plane{w: w, h: h, vals: vals, valid: valid}
}

func (p *plane) at(idx int) (float64, bool) {
	if p.isConst {
		return p.cval, p.cvalid
	}
	valid := p.valid == nil || p.valid[idx]
	return p.vals[idx], valid
}

// mapPlane - apply f to every pixel, f returns the new value and validity.
// Invalid pixels stay invalid.
func mapPlane(p *plane, f func(v float64) (float64, bool)) *plane {
	if p.isConst {
		out := constPlane(0)
		if !p.cvalid {
			out.cvalid = false
			return out
		}
		out.cval, out.cvalid = f(p.cval)
		return out
	}

	n := len(p.vals)
	out := &plane{w: p.w, h: p.h, vals: make([]float64, n), valid: make([]bool, n)}
	for i := 0; i < n; i++ {
		v, ok := p.at(i)
		if !ok {
			continue
		}
		out.vals[i], out.valid[i] = f(v)
	}
	return out
}

// zipPlanes - combine two planes pixelwise. Either side may be a broadcast
// constant; gridded sides must agree on dimensions.
func zipPlanes(a *plane, b *plane, f func(av float64, bv float64) (float64, bool)) (*plane, error) {
	if a.isConst && b.isConst {
		out := constPlane(0)
		if !a.cvalid || !b.cvalid {
			out.cvalid = false
			return out, nil
		}
		out.cval, out.cvalid = f(a.cval, b.cval)
		return out, nil
	}

	w, h := a.w, a.h
	if a.isConst {
		w, h = b.w, b.h
	} else if !b.isConst && (a.w != b.w || a.h != b.h) {
		return nil, errors.Errorf("band dimensions differ: %vx%v vs %vx%v", a.w, a.h, b.w, b.h)
	}

	n := w * h
	out := &plane{w: w, h: h, vals: make([]float64, n), valid: make([]bool, n)}
	for i := 0; i < n; i++ {
		av, aok := a.at(i)
		bv, bok := b.at(i)
		if !aok || !bok {
			continue
		}
		out.vals[i], out.valid[i] = f(av, bv)
	}
	return out, nil
}

// bandSet - the evaluated bands of one image, in order
type bandSet struct {
	names  []string
	planes []*plane
}

func (b *bandSet) plane(name string) (*plane, error) {
	for i, n := range b.names {
		if n == name {
			return b.planes[i], nil
		}
	}
	return nil, errors.Errorf("image has no band: %v", name)
}

func (b *bandSet) toGrid() *Grid {
	// Constants have no dimensions, take them from the first gridded band
	w, h := 1, 1
	for _, p := range b.planes {
		if !p.isConst {
			w, h = p.w, p.h
			break
		}
	}

	grid := &Grid{Width: w, Height: h}
	for i, name := range b.names {
		p := b.planes[i]
		n := w * h
		vals := make([]float64, n)
		valid := make([]bool, n)
		for j := 0; j < n; j++ {
			if p.isConst {
				vals[j], valid[j] = p.cval, p.cvalid
			} else {
				vals[j], valid[j] = p.at(j)
			}
		}
		grid.Bands = append(grid.Bands, GridBand{Name: name, Values: vals, Valid: valid})
	}
	return grid
}
