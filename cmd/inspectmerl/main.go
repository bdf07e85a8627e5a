package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"ps-normals/internal/mathutil"
	"ps-normals/internal/merl"
)

func main() {
	thetaH := flag.Float64("theta-h", 0, "Half-vector elevation in degrees")
	thetaD := flag.Float64("theta-d", 0, "Difference elevation in degrees")
	phiD := flag.Float64("phi-d", 90, "Difference azimuth in degrees")

	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: inspectmerl [-theta-h deg -theta-d deg -phi-d deg] table.binary...")
		os.Exit(1)
	}

	th := mathutil.Deg2Rad(*thetaH)
	td := mathutil.Deg2Rad(*thetaD)
	pd := mathutil.Deg2Rad(*phiD)

	failed := 0
	for _, arg := range flag.Args() {
		t, err := merl.Load(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Load error %s: %v\n", arg, err)
			failed++
			continue
		}
		fmt.Printf("\n=== %s (%dx%dx%d) ===\n", filepath.Base(arg), merl.SamplingThetaH, merl.SamplingThetaD, merl.SamplingPhiD)

		for c, name := range []string{"R", "G", "B"} {
			lo, hi := t.ChannelRange(c)
			fmt.Printf("  %s raw=[%.6g..%.6g] scaled=[%.6g..%.6g]\n", name, lo, hi, lo*merl.Scale[c], hi*merl.Scale[c])
		}

		raw := t.EvalRaw(th, td, pd)
		interp := t.EvalInterp(th, td, pd)
		fmt.Printf("  at theta_h=%.2f theta_d=%.2f phi_d=%.2f\n", *thetaH, *thetaD, *phiD)
		fmt.Printf("    nearest: %.6g %.6g %.6g (gray %.6g)\n", raw[0], raw[1], raw[2], mathutil.Gray(raw))
		fmt.Printf("    interp:  %.6g %.6g %.6g (gray %.6g)\n", interp[0], interp[1], interp[2], mathutil.Gray(interp))
	}

	if failed > 0 {
		os.Exit(1)
	}
}
