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

import (
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// ErrEmptyCollection - taking First of a collection with no items
var ErrEmptyCollection = errors.New("collection is empty")

type lazyImages struct {
	once    sync.Once
	compute func() ([]*Image, error)
	imgs    []*Image
	err     error
}

func (l *lazyImages) get() ([]*Image, error) {
	l.once.Do(func() {
		l.imgs, l.err = l.compute()
		l.compute = nil
	})
	return l.imgs, l.err
}

// ImageCollection - a lazily fetched, lazily filtered set of images. Filters
// and maps stack up as deferred transforms; the underlying dataset is only
// listed when something forces the item list (Size, First, Images).
type ImageCollection struct {
	fetch *lazyImages
}

func NewImageCollection(images []*Image) *ImageCollection {
	copied := append([]*Image{}, images...)
	return NewLazyImageCollection(func() ([]*Image, error) {
		return copied, nil
	})
}

func NewLazyImageCollection(fetch func() ([]*Image, error)) *ImageCollection {
	return &ImageCollection{fetch: &lazyImages{compute: fetch}}
}

func (c *ImageCollection) Images() ([]*Image, error) {
	return c.fetch.get()
}

func (c *ImageCollection) Size() (int, error) {
	imgs, err := c.fetch.get()
	if err != nil {
		return 0, err
	}
	return len(imgs), nil
}

func (c *ImageCollection) filter(keep func(img *Image) bool) *ImageCollection {
	return NewLazyImageCollection(func() ([]*Image, error) {
		imgs, err := c.fetch.get()
		if err != nil {
			return nil, err
		}
		result := []*Image{}
		for _, img := range imgs {
			if keep(img) {
				result = append(result, img)
			}
		}
		return result, nil
	})
}

// FilterDate - keeps images with an observation time in [start, end)
func (c *ImageCollection) FilterDate(start time.Time, end time.Time) *ImageCollection {
	startMs := start.UnixMilli()
	endMs := end.UnixMilli()
	return c.filter(func(img *Image) bool {
		t, ok := img.TimeStart()
		return ok && t >= startMs && t < endMs
	})
}

// FilterDayOfYear - keeps images matching the day of year, either by an
// explicit DOY property (composites) or derived from the observation time
func (c *ImageCollection) FilterDayOfYear(doy int) *ImageCollection {
	return c.filter(func(img *Image) bool {
		if d, ok := img.GetInt64(DayOfYearProperty); ok {
			return int(d) == doy
		}
		t, ok := img.TimeStart()
		if !ok {
			return false
		}
		return time.UnixMilli(t).UTC().YearDay() == doy
	})
}

// FilterBounds - keeps images whose footprint intersects the region. Images
// without a footprint (constants, global grids) always pass.
func (c *ImageCollection) FilterBounds(region Region) *ImageCollection {
	return c.filter(func(img *Image) bool {
		if img.footprint == nil {
			return true
		}
		return img.footprint.Intersects(region)
	})
}

func (c *ImageCollection) Select(bands ...string) *ImageCollection {
	return c.mapNoErr(func(img *Image) *Image {
		return img.Select(bands...)
	})
}

func (c *ImageCollection) SelectRename(from []string, to []string) *ImageCollection {
	return c.mapNoErr(func(img *Image) *Image {
		return img.SelectRename(from, to)
	})
}

func (c *ImageCollection) mapNoErr(fn func(img *Image) *Image) *ImageCollection {
	return c.Map(func(img *Image) (*Image, error) {
		return fn(img), nil
	})
}

// Map - applies a transform to every image; errors surface when the
// collection is forced
func (c *ImageCollection) Map(fn func(img *Image) (*Image, error)) *ImageCollection {
	return NewLazyImageCollection(func() ([]*Image, error) {
		imgs, err := c.fetch.get()
		if err != nil {
			return nil, err
		}
		result := make([]*Image, 0, len(imgs))
		for _, img := range imgs {
			mapped, err := fn(img)
			if err != nil {
				return nil, err
			}
			result = append(result, mapped)
		}
		return result, nil
	})
}

func (c *ImageCollection) Merge(other *ImageCollection) *ImageCollection {
	return NewLazyImageCollection(func() ([]*Image, error) {
		a, err := c.fetch.get()
		if err != nil {
			return nil, err
		}
		b, err := other.fetch.get()
		if err != nil {
			return nil, err
		}
		return append(append([]*Image{}, a...), b...), nil
	})
}

// SortByTime - ascending by observation time; images without one sort first
func (c *ImageCollection) SortByTime() *ImageCollection {
	return NewLazyImageCollection(func() ([]*Image, error) {
		imgs, err := c.fetch.get()
		if err != nil {
			return nil, err
		}
		sorted := append([]*Image{}, imgs...)
		sort.SliceStable(sorted, func(i, j int) bool {
			ti, _ := sorted[i].TimeStart()
			tj, _ := sorted[j].TimeStart()
			return ti < tj
		})
		return sorted, nil
	})
}

// First - a lazy handle on the first image. Forcing it on an empty collection
// yields ErrEmptyCollection; metadata reads resolve through the same handle.
func (c *ImageCollection) First() *Image {
	var once sync.Once
	var picked *Image
	var pickErr error
	pick := func() (*Image, error) {
		once.Do(func() {
			imgs, err := c.fetch.get()
			if err != nil {
				pickErr = err
				return
			}
			if len(imgs) == 0 {
				pickErr = ErrEmptyCollection
				return
			}
			picked = imgs[0]
		})
		return picked, pickErr
	}

	return &Image{
		data: &lazyBands{compute: func() (*bandSet, error) {
			img, err := pick()
			if err != nil {
				return nil, err
			}
			return img.data.get()
		}},
		meta:       map[string]interface{}{},
		metaSource: pick,
	}
}

// IfCollectionNonEmpty - lazy branch: the first image wins if the collection
// has any items, otherwise the fallback. The collection is only listed when
// pixels or metadata of the result are requested.
func IfCollectionNonEmpty(coll *ImageCollection, nonEmpty *Image, fallback *Image) *Image {
	var once sync.Once
	var picked *Image
	var pickErr error
	pick := func() (*Image, error) {
		once.Do(func() {
			n, err := coll.Size()
			if err != nil {
				pickErr = err
				return
			}
			if n > 0 {
				picked = nonEmpty
			} else {
				picked = fallback
			}
		})
		return picked, pickErr
	}

	return &Image{
		data: &lazyBands{compute: func() (*bandSet, error) {
			img, err := pick()
			if err != nil {
				return nil, err
			}
			return img.data.get()
		}},
		meta:       map[string]interface{}{},
		metaSource: pick,
	}
}

// MedianByDayOfYear - reduces the collection into one composite per day of
// year present, taking the per-pixel median of each band across that day's
// images. This is how the long-term median ancillary composites are built
// from daily archives.
func (c *ImageCollection) MedianByDayOfYear() *ImageCollection {
	return NewLazyImageCollection(func() ([]*Image, error) {
		imgs, err := c.fetch.get()
		if err != nil {
			return nil, err
		}

		byDoy := map[int][]*Grid{}
		for _, img := range imgs {
			t, ok := img.TimeStart()
			if !ok {
				continue
			}
			doy := time.UnixMilli(t).UTC().YearDay()
			grid, err := img.Evaluate()
			if err != nil {
				return nil, err
			}
			byDoy[doy] = append(byDoy[doy], grid)
		}

		doys := make([]int, 0, len(byDoy))
		for doy := range byDoy {
			doys = append(doys, doy)
		}
		sort.Ints(doys)

		result := make([]*Image, 0, len(doys))
		for _, doy := range doys {
			grid, err := medianGrid(byDoy[doy])
			if err != nil {
				return nil, errors.Wrapf(err, "median composite for day %v", doy)
			}
			result = append(result, NewSourceImage(grid).Set(DayOfYearProperty, int64(doy)))
		}
		return result, nil
	})
}

func medianGrid(grids []*Grid) (*Grid, error) {
	first := grids[0]
	out := &Grid{Width: first.Width, Height: first.Height}

	for _, band := range first.Bands {
		n := first.Width * first.Height
		vals := make([]float64, n)
		valid := make([]bool, n)

		samples := make([]float64, 0, len(grids))
		for i := 0; i < n; i++ {
			samples = samples[:0]
			for _, g := range grids {
				if g.Width != first.Width || g.Height != first.Height {
					return nil, errors.Errorf("grid dimensions differ: %vx%v vs %vx%v", g.Width, g.Height, first.Width, first.Height)
				}
				b, ok := g.Band(band.Name)
				if !ok {
					continue
				}
				if b.Valid == nil || b.Valid[i] {
					samples = append(samples, b.Values[i])
				}
			}
			if len(samples) == 0 {
				continue
			}
			sort.Float64s(samples)
			vals[i] = stat.Quantile(0.5, stat.Empirical, samples, nil)
			valid[i] = true
		}
		out.Bands = append(out.Bands, GridBand{Name: band.Name, Values: vals, Valid: valid})
	}
	return out, nil
}
