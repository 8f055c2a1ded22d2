package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes a as indented JSON to path. The document is written to a
// temporary file in the same directory and renamed into place, so path holds
// either the previous artifact or the complete new one.
func WriteFile(path string, a *Artifact) (err error) {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrWriteArtifact, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteArtifact, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteArtifact, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteArtifact, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteArtifact, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteArtifact, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteArtifact, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteArtifact, err)
	}
	return nil
}

// ReadFile loads an artifact written by WriteFile.
func ReadFile(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadArtifact, err)
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrReadArtifact, path, err)
	}
	return &a, nil
}
