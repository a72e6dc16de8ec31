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
	"io/ioutil"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/pj-ming/IBAMR/InputParameters"
	"github.com/pj-ming/IBAMR/geom"
	"github.com/pj-ming/IBAMR/hier"
	"github.com/pj-ming/IBAMR/linalg"
	"github.com/pj-ming/IBAMR/matops"
	"github.com/pj-ming/IBAMR/poisson"
)

// assembleCmd represents the assemble command
var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Build the full operator suite on a configured single-level grid",
	Long: `
Builds the cell- and face-centered Laplacian operators, the marker
interpolation operator, the multigrid transfer operators and the
Schwarz subdomain index sets on a demonstration grid, and reports the
dimensions and nonzero counts of everything produced.`,
	Run: func(cmd *cobra.Command, args []string) {
		inputFile, _ := cmd.Flags().GetString("inputFile")
		doProfile, _ := cmd.Flags().GetBool("profile")
		if doProfile {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		}
		ap := InputParameters.DefaultAssemblyParameters()
		if len(inputFile) != 0 {
			data, err := ioutil.ReadFile(inputFile)
			if err != nil {
				fmt.Printf("error reading input file: %s\n", err.Error())
				os.Exit(1)
			}
			if err = ap.Parse(data); err != nil {
				fmt.Printf("error parsing input file: %s\n", err.Error())
				os.Exit(1)
			}
		}
		if err := ap.Validate(); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		ap.Print()
		if err := RunAssembly(ap); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(assembleCmd)
	assembleCmd.Flags().StringP("inputFile", "I", "", "assembly parameters file in YAML format")
	assembleCmd.Flags().Bool("profile", false, "write a CPU profile of the assembly")
}

// RunAssembly builds every operator the library produces on a
// single-process demonstration grid derived from the parameters.
func RunAssembly(ap *InputParameters.AssemblyParameters) (err error) {
	comm := linalg.SelfComm()
	spec := poisson.PoissonSpec{CCoef: ap.ShiftCoef, DCoef: ap.DiffusionCoef}

	// Cell-centered Laplacian.
	cellLevel := demoLevel(ap.Dim, ap.CellsPerAxis)
	nCell := hier.NumberCellDofs(cellLevel, ap.Depth, ap.GhostWidth)
	ccBcs := make([]poisson.RobinBcCoef, ap.Depth)
	for d := range ccBcs {
		ccBcs[d] = poisson.DirichletBc{}
	}
	ccOp, err := matops.CCLaplaceOp(comm, spec, ccBcs, []int{nCell}, cellLevel)
	if err != nil {
		return
	}
	reportMat("cell Laplacian", ccOp)

	// Face-centered Laplacian.
	sideLevel := demoLevel(ap.Dim, ap.CellsPerAxis)
	nSide := hier.NumberSideDofs(sideLevel, ap.GhostWidth)
	scBcs := make([]poisson.RobinBcCoef, ap.Dim)
	for d := range scBcs {
		scBcs[d] = poisson.DirichletBc{}
	}
	scOp, err := matops.SCLaplaceOp(comm, spec, scBcs, []int{nSide}, sideLevel)
	if err != nil {
		return
	}
	reportMat("side Laplacian", scOp)

	// Marker interpolation: markers spread along the domain diagonal.
	markers := linalg.NewVec(comm, "markers", ap.Dim*ap.NumMarkers)
	x := markers.LocalData()
	for k := 0; k < ap.NumMarkers; k++ {
		for d := 0; d < ap.Dim; d++ {
			x[ap.Dim*k+d] = (float64(k) + 0.5) / float64(ap.NumMarkers)
		}
	}
	markers.Assemble()
	interpOp, err := matops.SCInterpOp(comm, matops.IB4Delta, ap.KernelWidth, markers, []int{nSide}, sideLevel)
	if err != nil {
		return
	}
	reportMat("marker interpolation", interpOp)

	// Grid transfer between a coarsened companion level and the cell level.
	coarseLevel := demoCoarseLevel(cellLevel)
	nCoarse := hier.NumberCellDofs(coarseLevel, ap.Depth, ap.GhostWidth)
	ao := matops.BuildCellAppOrdering(coarseLevel, 0)
	prolongOp, err := matops.ProlongationOp(comm, []int{nCell}, []int{nCoarse}, cellLevel, coarseLevel, ao, 0)
	if err != nil {
		return
	}
	reportMat("prolongation", prolongOp)
	scale, err := matops.RestrictionScalingOp(prolongOp)
	if err != nil {
		return
	}
	fmt.Printf("%-24s dim %d\n", "restriction scaling", scale.Len())

	// Schwarz subdomains on the staggered level.
	boxSize := geom.Uniform(ap.Dim, ap.BoxSize)
	overlap := geom.Uniform(ap.Dim, ap.OverlapSize)
	overlapSets, nonoverlapSets, err := matops.ASMSubdomains(boxSize, overlap, sideLevel)
	if err != nil {
		return
	}
	var nOverlapDofs, nLocalDofs int
	for k := range overlapSets {
		nOverlapDofs += overlapSets[k].Len()
		nLocalDofs += nonoverlapSets[k].Len()
	}
	fmt.Printf("%-24s %d subdomains, %d overlapping / %d non-overlapping DOFs\n",
		"Schwarz subdomains", len(overlapSets), nOverlapDofs, nLocalDofs)
	return
}

func reportMat(name string, m *linalg.Mat) {
	M, N := m.Dims()
	fmt.Printf("%-24s %d x %d, %d nonzeros\n", name, M, N, m.LocalNNZ())
}

// demoLevel builds a unit-domain level of n cells per axis split into
// two patches along the first axis. The level is the 2:1 refinement of
// an n/2 coarse index space so a coarsened companion level can share
// its geometry.
func demoLevel(dim, n int) (lv *hier.PatchLevel) {
	var (
		coarseDomain = geom.NewBox(geom.Uniform(dim, 0), geom.Uniform(dim, n/2-1))
		xLo          = make([]float64, dim)
		xUp          = make([]float64, dim)
	)
	for d := 0; d < dim; d++ {
		xUp[d] = 1
	}
	g := hier.NewGridGeometry(xLo, xUp, coarseDomain)
	lv = hier.NewPatchLevel(g, geom.Uniform(dim, 2), 0)
	domain := lv.DomainBox()
	left := domain.Copy()
	left.Hi[0] = domain.Lo[0] + n/2 - 1
	right := domain.Copy()
	right.Lo[0] = left.Hi[0] + 1
	lv.AddPatch(left)
	lv.AddPatch(right)
	return
}

// demoCoarseLevel builds the 2:1 coarsened companion of a demo level,
// one patch covering the coarse domain.
func demoCoarseLevel(fine *hier.PatchLevel) (lv *hier.PatchLevel) {
	lv = hier.NewPatchLevel(fine.Geom, geom.Uniform(fine.Dim(), 1), 0)
	lv.AddPatch(lv.DomainBox())
	return
}
