//go:build cgo_blas
// +build cgo_blas

package linalg

/*
#cgo LDFLAGS: -lopenblas -lpthread
*/
import "C"

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	netblas "gonum.org/v1/netlib/blas/netlib"
)

func init() {
	blas64.Use(netblas.Implementation{})
	fmt.Println("Using netlib to accelerate BLAS")
}
