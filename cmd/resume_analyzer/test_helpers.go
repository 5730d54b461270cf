package main

import (
	"os"
	"path/filepath"
	"testing"
)

// getBinaryPath returns the path to the resume_analyzer binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "resume_analyzer"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/resume_analyzer ./cmd/resume_analyzer'", binaryPath)
	}

	return binaryPath
}

// writeTempFile writes content under a fresh temp dir and returns its path
func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

const sampleResume = `Dr. Jane Doe
jane.doe@example.edu | +1 (555) 123-4567 | Boston, MA

Education
PhD in Mechanical Engineering, Stanford University, 2015-2019
B.Tech in mechanical engineering, IIT Delhi, 2009-2013

Experience
Lecturer, XYZ University, 2018-2021

Publications
1. J. Doe, Heat flow, International Journal of Heat Transfer, vol. 3, 2019
`
