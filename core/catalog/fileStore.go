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
	"path"

	"github.com/openet/ssebop-go/core/fileaccess"
	"github.com/openet/ssebop-go/core/logger"
	"github.com/openet/ssebop-go/core/raster"
	"github.com/pkg/errors"
)

// Serialized asset formats. Dataset ids contain slashes so assets nest
// naturally as object keys under the configured root.

type ImageAsset struct {
	Grid       raster.Grid            `json:"grid"`
	Properties map[string]interface{} `json:"properties,omitempty"`
	Footprint  *raster.Region         `json:"footprint,omitempty"`
}

type ImageCollectionAsset struct {
	Images []ImageAsset `json:"images"`
}

type FeatureCollectionAsset struct {
	Features []map[string]interface{} `json:"features"`
}

// FileStoreCatalog - reads JSON-serialized grid and feature table assets
// through a FileAccess, so the same code serves S3 buckets and local fixture
// directories. Reads happen when a handle is forced, never at lookup time.
type FileStoreCatalog struct {
	fs     fileaccess.FileAccess
	bucket string
	root   string
	log    logger.ILogger
}

func MakeFileStoreCatalog(fs fileaccess.FileAccess, bucket string, root string, log logger.ILogger) *FileStoreCatalog {
	if log == nil {
		log = &logger.NullLogger{}
	}
	return &FileStoreCatalog{fs: fs, bucket: bucket, root: root, log: log}
}

func (c *FileStoreCatalog) assetPath(id string) string {
	return path.Join(c.root, id) + ".json"
}

// Has - a file store is a terminal catalog, it claims every id and reports
// missing assets when the handle is forced
func (c *FileStoreCatalog) Has(id string) bool {
	return true
}

func (c *FileStoreCatalog) buildImage(asset ImageAsset) *raster.Image {
	img := raster.NewSourceImage(&asset.Grid)
	for key, value := range asset.Properties {
		img = img.Set(key, value)
	}
	if asset.Footprint != nil {
		img = img.WithFootprint(*asset.Footprint)
	}
	return img
}

func (c *FileStoreCatalog) Image(id string) *raster.Image {
	return raster.NewLazyImageCollection(func() ([]*raster.Image, error) {
		c.log.Debugf("fileStore: reading image asset %v", id)

		asset := ImageAsset{}
		err := c.fs.ReadJSON(c.bucket, c.assetPath(id), &asset, false)
		if err != nil {
			if c.fs.IsNotFoundError(err) {
				return nil, NotFoundError{ID: id}
			}
			return nil, errors.Wrapf(err, "reading image asset %v", id)
		}
		return []*raster.Image{c.buildImage(asset)}, nil
	}).First()
}

func (c *FileStoreCatalog) ImageCollection(id string) *raster.ImageCollection {
	return raster.NewLazyImageCollection(func() ([]*raster.Image, error) {
		c.log.Debugf("fileStore: reading image collection asset %v", id)

		asset := ImageCollectionAsset{}
		err := c.fs.ReadJSON(c.bucket, c.assetPath(id), &asset, false)
		if err != nil {
			if c.fs.IsNotFoundError(err) {
				return nil, NotFoundError{ID: id}
			}
			return nil, errors.Wrapf(err, "reading image collection asset %v", id)
		}

		result := make([]*raster.Image, 0, len(asset.Images))
		for _, item := range asset.Images {
			result = append(result, c.buildImage(item))
		}
		return result, nil
	})
}

func (c *FileStoreCatalog) FeatureCollection(id string) *raster.FeatureCollection {
	return raster.NewLazyFeatureCollection(func() ([]raster.Feature, error) {
		c.log.Debugf("fileStore: reading feature table asset %v", id)

		asset := FeatureCollectionAsset{}
		err := c.fs.ReadJSON(c.bucket, c.assetPath(id), &asset, false)
		if err != nil {
			if c.fs.IsNotFoundError(err) {
				return nil, NotFoundError{ID: id}
			}
			return nil, errors.Wrapf(err, "reading feature table asset %v", id)
		}

		result := make([]raster.Feature, 0, len(asset.Features))
		for _, props := range asset.Features {
			result = append(result, raster.Feature{Properties: props})
		}
		return result, nil
	})
}
