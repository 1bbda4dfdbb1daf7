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

import (
	"github.com/openet/ssebop-go/core/raster"
)

// MemoryCatalog - datasets registered up front, mainly for unit tests and
// small fixture runs. Lookups still resolve lazily so behavior matches the
// remote catalogs.
type MemoryCatalog struct {
	images      map[string]*raster.Image
	collections map[string][]*raster.Image
	features    map[string][]raster.Feature
}

func MakeMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		images:      map[string]*raster.Image{},
		collections: map[string][]*raster.Image{},
		features:    map[string][]raster.Feature{},
	}
}

func (m *MemoryCatalog) AddImage(id string, img *raster.Image) {
	m.images[id] = img
}

func (m *MemoryCatalog) AddImageCollection(id string, images ...*raster.Image) {
	m.collections[id] = append([]*raster.Image{}, images...)
}

func (m *MemoryCatalog) AddFeatureCollection(id string, features ...raster.Feature) {
	m.features[id] = append([]raster.Feature{}, features...)
}

func (m *MemoryCatalog) Has(id string) bool {
	if _, ok := m.images[id]; ok {
		return true
	}
	if _, ok := m.collections[id]; ok {
		return true
	}
	_, ok := m.features[id]
	return ok
}

func (m *MemoryCatalog) Image(id string) *raster.Image {
	return raster.NewLazyImageCollection(func() ([]*raster.Image, error) {
		img, ok := m.images[id]
		if !ok {
			return nil, NotFoundError{ID: id}
		}
		return []*raster.Image{img}, nil
	}).First()
}

func (m *MemoryCatalog) ImageCollection(id string) *raster.ImageCollection {
	return raster.NewLazyImageCollection(func() ([]*raster.Image, error) {
		imgs, ok := m.collections[id]
		if !ok {
			return nil, NotFoundError{ID: id}
		}
		return imgs, nil
	})
}

func (m *MemoryCatalog) FeatureCollection(id string) *raster.FeatureCollection {
	return raster.NewLazyFeatureCollection(func() ([]raster.Feature, error) {
		ftrs, ok := m.features[id]
		if !ok {
			return nil, NotFoundError{ID: id}
		}
		return ftrs, nil
	})
}
