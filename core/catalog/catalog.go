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

// Access to external datasets by id. Catalogs hand out lazy handles; nothing
// is fetched until the raster graph is forced, so building a model image stays
// free of I/O.
package catalog

import (
	"fmt"

	"github.com/openet/ssebop-go/core/raster"
)

type Catalog interface {
	// Has - whether this catalog can serve the id. Used for chaining, must
	// not perform I/O.
	Has(id string) bool

	Image(id string) *raster.Image
	ImageCollection(id string) *raster.ImageCollection
	FeatureCollection(id string) *raster.FeatureCollection
}

// NotFoundError - the catalog has no dataset under the requested id. Surfaces
// when a lazy handle is forced, not when it is created.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("dataset not found: %v", e.ID)
}

func errorImageCollection(err error) *raster.ImageCollection {
	return raster.NewLazyImageCollection(func() ([]*raster.Image, error) {
		return nil, err
	})
}

func errorFeatureCollection(err error) *raster.FeatureCollection {
	return raster.NewLazyFeatureCollection(func() ([]raster.Feature, error) {
		return nil, err
	})
}

// ChainCatalog - tries catalogs in order, first one that knows the id wins.
// Typical setup is features from mongo first, grids from an asset store after.
type ChainCatalog struct {
	catalogs []Catalog
}

func MakeChainCatalog(catalogs ...Catalog) *ChainCatalog {
	return &ChainCatalog{catalogs: catalogs}
}

func (c *ChainCatalog) pick(id string) (Catalog, bool) {
	for _, cat := range c.catalogs {
		if cat.Has(id) {
			return cat, true
		}
	}
	return nil, false
}

func (c *ChainCatalog) Has(id string) bool {
	_, ok := c.pick(id)
	return ok
}

func (c *ChainCatalog) Image(id string) *raster.Image {
	if cat, ok := c.pick(id); ok {
		return cat.Image(id)
	}
	return errorImageCollection(NotFoundError{ID: id}).First()
}

func (c *ChainCatalog) ImageCollection(id string) *raster.ImageCollection {
	if cat, ok := c.pick(id); ok {
		return cat.ImageCollection(id)
	}
	return errorImageCollection(NotFoundError{ID: id})
}

func (c *ChainCatalog) FeatureCollection(id string) *raster.FeatureCollection {
	if cat, ok := c.pick(id); ok {
		return cat.FeatureCollection(id)
	}
	return errorFeatureCollection(NotFoundError{ID: id})
}
