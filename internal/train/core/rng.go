// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import (
	"math"
	"math/rand"
)

// gaussSource is a seedable Box-Muller Gaussian generator, held as a
// struct field (never the package-global math/rand source) so a run's
// noise is fully determined by its own seed and independent of any
// other run executing concurrently.
type gaussSource struct {
	rnd     *rand.Rand
	hasSpare bool
	spare   float64
}

func newGaussSource(seed int64) *gaussSource {
	return &gaussSource{rnd: rand.New(rand.NewSource(seed))}
}

// next returns a standard-normal sample via the polar form of the
// Box-Muller transform (two uniforms, rejected until they fall inside the
// unit circle), caching the second generated sample for the following call.
func (g *gaussSource) next() float64 {
	if g.hasSpare {
		g.hasSpare = false
		return g.spare
	}
	var u, v, s float64
	for {
		u = g.rnd.Float64()*2 - 1
		v = g.rnd.Float64()*2 - 1
		s = u*u + v*v
		if s > 0 && s < 1 {
			break
		}
	}
	mul := math.Sqrt(-2 * math.Log(s) / s)
	g.spare = v * mul
	g.hasSpare = true
	return u * mul
}

// sigma scales a standard-normal sample by the given standard deviation.
func (g *gaussSource) sigma(sd float64) float64 {
	if sd <= 0 {
		return 0
	}
	return g.next() * sd
}
