// Package main provides the ufunc CLI.
package main

import (
	"fmt"
	"os"

	"github.com/born-ml/ufunc/backend/webgpu"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("ufunc %s\n", version)
		return
	}

	fmt.Println("ufunc - Broadcasting Elementwise Evaluator for Go")
	fmt.Printf("Version: %s\n\n", version)

	fmt.Println("Backends:")
	fmt.Println("  sequential-host  available")
	fmt.Println("  parallel-host    available")
	if webgpu.IsAvailable() {
		gpu, err := webgpu.New()
		if err != nil {
			fmt.Printf("  accelerator      unavailable (%v)\n", err)
		} else {
			fmt.Printf("  accelerator      %s\n", gpu.Name())
			gpu.Release()
		}
	} else {
		fmt.Println("  accelerator      unavailable (no WebGPU adapter)")
	}

	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
}
