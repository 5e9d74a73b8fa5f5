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

// FopdtBlock simulates a single deviation-form first-order-plus-dead-time
// process: y_ss(t) = y0 + K*(u(t-theta) - u0) + d(t), with first-order lag
// tau at fixed step dt. The transport delay is realized as a small ring
// buffer of past inputs, sized once at construction and never reallocated.
type FopdtBlock struct {
	K     float64
	Tau   float64
	Theta float64
	Dt    float64

	y0 float64
	u0 float64
	y  float64

	delay []float64
	head  int // next slot to overwrite (tail of the queue)
}

// NewFopdtBlock constructs a block anchored at (y0, u0) with the given
// constants. delay_steps = round(theta/dt) per the block's invariant.
func NewFopdtBlock(k, tau, theta, dt, y0, u0 float64) *FopdtBlock {
	b := &FopdtBlock{K: k, Tau: tau, Theta: theta, Dt: dt}
	b.Reset(y0, u0)
	return b
}

func delaySteps(theta, dt float64) int {
	if dt <= 0 {
		return 0
	}
	n := int(theta/dt + 0.5)
	if n < 0 {
		n = 0
	}
	return n
}

// Reset rebinds the anchor point and refills the delay buffer with u0,
// setting y back to y0. Called at construction and whenever a caller
// needs a fresh operating point (e.g. scenario setup).
func (b *FopdtBlock) Reset(y0, u0 float64) {
	b.y0 = y0
	b.u0 = u0
	b.y = y0
	n := delaySteps(b.Theta, b.Dt) + 1
	if cap(b.delay) < n {
		b.delay = make([]float64, n)
	} else {
		b.delay = b.delay[:n]
	}
	for i := range b.delay {
		b.delay[i] = u0
	}
	b.head = 0
}

// Update pushes u to the tail of the delay queue, pops the delayed input
// from the head, advances the first-order lag toward the resulting
// steady-state value, and returns the new output y.
func (b *FopdtBlock) Update(u, d float64) float64 {
	n := len(b.delay)
	uDel := b.delay[b.head]
	b.delay[b.head] = u
	b.head = (b.head + 1) % n

	ySS := b.y0 + b.K*(uDel-b.u0) + d
	if b.Tau > 0 {
		b.y += (ySS - b.y) * (b.Dt / b.Tau)
	} else {
		b.y = ySS
	}
	return b.y
}

// Y returns the current output without advancing state.
func (b *FopdtBlock) Y() float64 { return b.y }
