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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var scenesPrepared = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ssebop",
	Name:      "scenes_prepared_total",
	Help:      "Raw sensor scenes prepared into model images",
})

var collectionsBuilt = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ssebop",
	Name:      "collections_built_total",
	Help:      "Variable collections assembled for interpolation",
})
