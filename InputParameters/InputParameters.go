package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type AssemblyParameters struct {
	Title         string  `yaml:"Title"`
	Dim           int     `yaml:"Dim"`
	CellsPerAxis  int     `yaml:"CellsPerAxis"`
	Depth         int     `yaml:"Depth"`
	GhostWidth    int     `yaml:"GhostWidth"`
	ShiftCoef     float64 `yaml:"ShiftCoef"`
	DiffusionCoef float64 `yaml:"DiffusionCoef"`
	BoxSize       int     `yaml:"BoxSize"`
	OverlapSize   int     `yaml:"OverlapSize"`
	KernelWidth   int     `yaml:"KernelWidth"`
	NumMarkers    int     `yaml:"NumMarkers"`
}

func DefaultAssemblyParameters() *AssemblyParameters {
	return &AssemblyParameters{
		Title:         "operator assembly",
		Dim:           2,
		CellsPerAxis:  16,
		Depth:         1,
		GhostWidth:    2,
		ShiftCoef:     0,
		DiffusionCoef: 1,
		BoxSize:       4,
		OverlapSize:   1,
		KernelWidth:   4,
		NumMarkers:    8,
	}
}

func (ap *AssemblyParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ap)
}

func (ap *AssemblyParameters) Validate() error {
	if ap.Dim < 1 || ap.Dim > 3 {
		return fmt.Errorf("Dim must be 1, 2 or 3, got %d", ap.Dim)
	}
	if ap.CellsPerAxis < 2 || ap.CellsPerAxis%2 != 0 {
		return fmt.Errorf("CellsPerAxis must be even and positive, got %d", ap.CellsPerAxis)
	}
	if ap.KernelWidth%2 != 0 {
		return fmt.Errorf("KernelWidth must be even, got %d", ap.KernelWidth)
	}
	if ap.OverlapSize > ap.GhostWidth {
		return fmt.Errorf("OverlapSize %d exceeds GhostWidth %d", ap.OverlapSize, ap.GhostWidth)
	}
	return nil
}

func (ap *AssemblyParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ap.Title)
	fmt.Printf("[%d]\t\t\t\t= Dim\n", ap.Dim)
	fmt.Printf("[%d]\t\t\t= Cells Per Axis\n", ap.CellsPerAxis)
	fmt.Printf("[%d]\t\t\t\t= Depth\n", ap.Depth)
	fmt.Printf("[%d]\t\t\t\t= Ghost Width\n", ap.GhostWidth)
	fmt.Printf("%8.5f\t\t= Shift Coef\n", ap.ShiftCoef)
	fmt.Printf("%8.5f\t\t= Diffusion Coef\n", ap.DiffusionCoef)
	fmt.Printf("[%d]\t\t\t\t= Subdomain Box Size\n", ap.BoxSize)
	fmt.Printf("[%d]\t\t\t\t= Subdomain Overlap\n", ap.OverlapSize)
	fmt.Printf("[%d]\t\t\t\t= Delta Kernel Width\n", ap.KernelWidth)
	fmt.Printf("[%d]\t\t\t\t= Markers\n", ap.NumMarkers)
}
