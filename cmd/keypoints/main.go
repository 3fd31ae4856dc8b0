// ABOUTME: Main entry point for the keypoints workflow CLI and API server
// ABOUTME: Maps step failures to distinct exit codes for schedulers

package main

import (
	"errors"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		var step *stepError
		if errors.As(err, &step) {
			os.Exit(step.code)
		}
		os.Exit(1)
	}
}
