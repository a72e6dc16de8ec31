//go:build linux
// +build linux

/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	perf "github.com/hodgesds/perf-utils"
	"github.com/spf13/cobra"

	"github.com/pj-ming/IBAMR/InputParameters"
	"github.com/pj-ming/IBAMR/hier"
	"github.com/pj-ming/IBAMR/linalg"
	"github.com/pj-ming/IBAMR/matops"
	"github.com/pj-ming/IBAMR/poisson"
)

// benchCmd represents the bench command
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure cell Laplacian assembly with hardware counters",
	Long: `
Assembles the cell-centered Laplacian repeatedly and reports the CPU
cycle and instruction counts of the assembly loop via the perf
subsystem. Requires perf_event_open access.`,
	Run: func(cmd *cobra.Command, args []string) {
		iter, _ := cmd.Flags().GetInt("iterations")
		n, _ := cmd.Flags().GetInt("cells")
		if err := runBench(n, iter); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().IntP("iterations", "n", 10, "number of assembly repetitions")
	benchCmd.Flags().Int("cells", 64, "cells per axis of the benchmark grid")
}

func runBench(n, iter int) (err error) {
	ap := InputParameters.DefaultAssemblyParameters()
	ap.CellsPerAxis = n
	if err = ap.Validate(); err != nil {
		return
	}
	var (
		comm  = linalg.SelfComm()
		spec  = poisson.PoissonSpec{CCoef: ap.ShiftCoef, DCoef: ap.DiffusionCoef}
		bcs   = []poisson.RobinBcCoef{poisson.DirichletBc{}}
		level = demoLevel(ap.Dim, ap.CellsPerAxis)
	)
	nDofs := hier.NumberCellDofs(level, 1, ap.GhostWidth)
	assemble := func() error {
		for i := 0; i < iter; i++ {
			if _, aErr := matops.CCLaplaceOp(comm, spec, bcs, []int{nDofs}, level); aErr != nil {
				return aErr
			}
		}
		return nil
	}
	cycles, err := perf.CPUCycles(assemble)
	if err != nil {
		return
	}
	instrs, err := perf.CPUInstructions(assemble)
	if err != nil {
		return
	}
	fmt.Printf("assembled %d x %d operator %d times (twice)\n", nDofs, nDofs, iter)
	fmt.Printf("%-16s %d\n", "cpu cycles", cycles.Value)
	fmt.Printf("%-16s %d\n", "instructions", instrs.Value)
	return
}
