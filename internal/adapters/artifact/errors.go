package artifact

import "errors"

// Sentinel kinds for artifact errors.
var (
	ErrWriteArtifact = errors.New("write artifact")
	ErrReadArtifact  = errors.New("read artifact")
)
