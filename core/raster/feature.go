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
)

// Feature - one row of a parameter lookup table
type Feature struct {
	Properties map[string]interface{}
}

func (f Feature) GetNumber(field string) (float64, bool) {
	v, ok := f.Properties[field]
	if !ok {
		return 0, false
	}
	return asFloat(v)
}

func (f Feature) GetString(field string) (string, bool) {
	v, ok := f.Properties[field]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

type lazyFeatures struct {
	once    sync.Once
	compute func() ([]Feature, error)
	ftrs    []Feature
	err     error
}

func (l *lazyFeatures) get() ([]Feature, error) {
	l.once.Do(func() {
		l.ftrs, l.err = l.compute()
		l.compute = nil
	})
	return l.ftrs, l.err
}

// FeatureCollection - lazily fetched lookup table rows. Same deferred model
// as ImageCollection: filters compose, the table is only read when rows are
// actually needed.
type FeatureCollection struct {
	fetch *lazyFeatures
}

func NewFeatureCollection(features []Feature) *FeatureCollection {
	copied := append([]Feature{}, features...)
	return NewLazyFeatureCollection(func() ([]Feature, error) {
		return copied, nil
	})
}

func NewLazyFeatureCollection(fetch func() ([]Feature, error)) *FeatureCollection {
	return &FeatureCollection{fetch: &lazyFeatures{compute: fetch}}
}

func (c *FeatureCollection) Features() ([]Feature, error) {
	return c.fetch.get()
}

// FilterEquals - keeps rows whose field equals value. Numbers compare as
// numbers regardless of stored width (tables round-trip through JSON/BSON),
// everything else compares as strings.
func (c *FeatureCollection) FilterEquals(field string, value interface{}) *FeatureCollection {
	return NewLazyFeatureCollection(func() ([]Feature, error) {
		ftrs, err := c.fetch.get()
		if err != nil {
			return nil, err
		}
		result := []Feature{}
		for _, f := range ftrs {
			if featureFieldEquals(f, field, value) {
				result = append(result, f)
			}
		}
		return result, nil
	})
}

func featureFieldEquals(f Feature, field string, value interface{}) bool {
	if want, ok := asFloat(value); ok {
		got, ok := f.GetNumber(field)
		return ok && got == want
	}
	if want, ok := value.(string); ok {
		got, ok := f.GetString(field)
		return ok && got == want
	}
	return false
}

// Sort - ascending by a numeric field, stable so merge order breaks ties
func (c *FeatureCollection) Sort(field string) *FeatureCollection {
	return NewLazyFeatureCollection(func() ([]Feature, error) {
		ftrs, err := c.fetch.get()
		if err != nil {
			return nil, err
		}
		sorted := append([]Feature{}, ftrs...)
		sort.SliceStable(sorted, func(i, j int) bool {
			a, _ := sorted[i].GetNumber(field)
			b, _ := sorted[j].GetNumber(field)
			return a < b
		})
		return sorted, nil
	})
}

// First - the first row if any; absence is not an error, callers fall back
func (c *FeatureCollection) First() (Feature, bool, error) {
	ftrs, err := c.fetch.get()
	if err != nil {
		return Feature{}, false, err
	}
	if len(ftrs) == 0 {
		return Feature{}, false, nil
	}
	return ftrs[0], true, nil
}

func (c *FeatureCollection) Merge(other *FeatureCollection) *FeatureCollection {
	return NewLazyFeatureCollection(func() ([]Feature, error) {
		a, err := c.fetch.get()
		if err != nil {
			return nil, err
		}
		b, err := other.fetch.get()
		if err != nil {
			return nil, err
		}
		return append(append([]Feature{}, a...), b...), nil
	})
}
