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
	"strings"
)

// Variable - output product the model computes. Closed set, unknown names are
// rejected before any scene processing starts.
type Variable int

const (
	VariableUnknown Variable = iota
	VariableEtf
)

func (v Variable) String() string {
	if v == VariableEtf {
		return "etf"
	}
	return "unknown"
}

// ParseVariable - case insensitive, "ETF" and "etf" are the same product
func ParseVariable(name string) (Variable, error) {
	switch strings.ToLower(name) {
	case "etf":
		return VariableEtf, nil
	}
	return VariableUnknown, UnsupportedVariableError{Variable: name}
}
