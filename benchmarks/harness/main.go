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

// harness compares three PI anti-windup strategies — bumpless
// back-calculation (production), naive integrator reset on
// saturation, and no anti-windup at all — over a shared step-plus-load
// scenario, reporting IAE/ITAE/overshoot/settling-time per variant
// instead of write amplification.
//
// Usage:
//
//	go run ./benchmarks/harness -kp=1.0 -ti=120 -out_min=0 -out_max=30
package main

import (
	"flag"
	"fmt"

	"simtrain/benchmarks"
)

func main() {
	kp := flag.Float64("kp", 1.0, "Controller proportional gain")
	ti := flag.Float64("ti", 120.0, "Controller integral time (s)")
	outMin := flag.Float64("out_min", 0.0, "Controller output lower bound")
	outMax := flag.Float64("out_max", 30.0, "Controller output upper bound")
	flag.Parse()

	results := benchmarks.RunAll(*kp, *ti, *outMin, *outMax)

	fmt.Printf("%-16s %12s %14s %12s %14s %10s\n", "variant", "IAE", "ITAE", "overshoot%", "settling(s)", "sat_steps")
	for _, r := range results {
		settling := "not settled"
		if r.Settled {
			settling = fmt.Sprintf("%.1f", r.SettlingS)
		}
		fmt.Printf("%-16s %12.2f %14.2f %12.2f %14s %10d\n", r.Name, r.IAE, r.ITAE, r.OvershootPct, settling, r.SatSteps)
	}
}
