package main

import (
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/pipeline"
	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/types"
)

func writeProfile(t *testing.T) string {
	t.Helper()
	profile, err := pipeline.NewAnalyzer(pipeline.Options{}).Analyze(context.Background(), types.AnalyzeRequest{Text: sampleResume})
	require.NoError(t, err)
	data, err := json.Marshal(profile)
	require.NoError(t, err)
	return writeTempFile(t, "profile.json", string(data))
}

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name        string
		json        func(t *testing.T) string
		schema      string
		wantErr     bool
		wantInvalid bool
	}{
		{
			name: "analyzer output",
			json: writeProfile,
		},
		{
			name:   "analyzer output against schema file",
			json:   writeProfile,
			schema: "schemas/resume_profile.schema.json",
		},
		{
			name:        "missing fields",
			json:        func(t *testing.T) string { return writeTempFile(t, "profile.json", `{"name": "Jane"}`) },
			wantErr:     true,
			wantInvalid: true,
		},
		{
			name:    "missing file",
			json:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.json") },
			wantErr: true,
		},
		{
			name:    "missing schema",
			json:    writeProfile,
			schema:  "schemas/nope.schema.json",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFile(tt.json(t), tt.schema)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var validationErr *schemas.ValidationError
			assert.Equal(t, tt.wantInvalid, errors.As(err, &validationErr))
		})
	}
}

func TestValidateCommand_Success(t *testing.T) {
	binaryPath := getBinaryPath(t)
	jsonPath := writeProfile(t)

	cmd := exec.Command(binaryPath, "validate", "--in", jsonPath)
	output, err := cmd.CombinedOutput()

	assert.NoError(t, err, "command should succeed")
	assert.Contains(t, string(output), "Validation passed", "output should indicate success")
}

func TestValidateCommand_Failure(t *testing.T) {
	binaryPath := getBinaryPath(t)
	jsonPath := writeTempFile(t, "profile.json", `{"name": "Jane"}`)

	cmd := exec.Command(binaryPath, "validate", "--in", jsonPath)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err, "command should fail")
	assert.Contains(t, string(output), "Validation failed", "output should indicate failure")
	if exitError, ok := err.(*exec.ExitError); ok {
		assert.Equal(t, 1, exitError.ExitCode(), "should exit with code 1 on validation failure")
	}
}

func TestValidateCommand_MissingInFlag(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "validate")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err, "command should fail")
	assert.Contains(t, string(output), "required", "should indicate flag is required")
}
