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
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Configuration problems are returned as typed errors so callers can decide
// whether to abort; this library never substitutes a guessed default and
// never exits the process.

// UnsupportedVariableError - requested output variable is not one this model
// can compute
type UnsupportedVariableError struct {
	Variable string
}

func (e UnsupportedVariableError) Error() string {
	return fmt.Sprintf("unsupported variable: %v", e.Variable)
}

// UnsupportedCollectionError - sensor collection id is not in the recognized set
type UnsupportedCollectionError struct {
	ID string
}

func (e UnsupportedCollectionError) Error() string {
	return fmt.Sprintf("unsupported collection: %v", e.ID)
}

// InvalidParameterSourceError - a dT/elevation/Tmax/Tcorr source keyword was
// not recognized
type InvalidParameterSourceError struct {
	Parameter string
	Source    string
	Detail    string
}

func (e InvalidParameterSourceError) Error() string {
	msg := fmt.Sprintf("invalid %v source: %v", e.Parameter, e.Source)
	if len(e.Detail) > 0 {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// sortedKeys - deterministic keyword listings for error messages
func sortedKeys[V any](m map[string]V) string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return strings.Join(keys, ", ")
}
