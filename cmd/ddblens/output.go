package main

import (
	"fmt"
	"os"
	"time"
)

// writeAnalysisFile writes the analysis into the current working directory
// with a timestamped name and returns the file name.
func writeAnalysisFile(data []byte, name string) (string, error) {
	outfile := fmt.Sprintf("%s_%s.json", name, time.Now().Format("20060102150405"))
	if err := os.WriteFile(outfile, data, 0o644); err != nil {
		return "", fmt.Errorf("write analysis file: %w", err)
	}
	return outfile, nil
}
