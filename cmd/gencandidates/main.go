package main

import (
	"flag"
	"fmt"
	"os"

	"ps-normals/internal/mathutil"
	"ps-normals/internal/textio"
)

func main() {
	output := flag.String("output", "normals.txt", "Output candidate file")
	n := flag.Int("n", 10000, "Number of Fibonacci samples on the upper hemisphere")
	grid := flag.Int("grid", 0, "Use a res x res gradient-space grid instead of Fibonacci samples")
	minZ := flag.Float64("min-z", 0.05, "Drop grid normals with z below this value")

	flag.Parse()

	var normals []mathutil.Vec3
	if *grid > 0 {
		normals = mathutil.GridHemisphere(*grid, *minZ)
	} else {
		normals = mathutil.FibonacciHemisphere(*n)
	}
	if len(normals) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no candidate normals generated")
		os.Exit(1)
	}

	if err := textio.WriteVec3s(*output, normals); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%d candidate normals -> %s\n", len(normals), *output)
}
