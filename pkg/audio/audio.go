// Package audio derives playback duration from MP3 streams.
package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/qurancms/recitation-api/pkg/config"
)

// Common errors
var (
	ErrFFprobeNotFound = errors.New("ffprobe binary not found")
	ErrNoFrames        = errors.New("no mp3 frames found")
	ErrNoDuration      = errors.New("could not determine audio duration")
)

// DurationProber measures the duration of an MP3 stream
type DurationProber interface {
	Probe(ctx context.Context, r io.Reader) (time.Duration, error)
}

// ProbeError represents a failure while probing a stream
type ProbeError struct {
	Operation string // e.g. "frame_decode", "ffprobe_exec"
	Err       error
	Stderr    string
}

func (e *ProbeError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("audio %s failed: %v (stderr: %s)", e.Operation, e.Err, e.Stderr)
	}
	return fmt.Sprintf("audio %s failed: %v", e.Operation, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// NewProbeError creates a new ProbeError
func NewProbeError(operation string, err error, stderr string) *ProbeError {
	return &ProbeError{Operation: operation, Err: err, Stderr: stderr}
}

// NewProber returns the prober selected by duration.probe
func NewProber(cfg config.DurationConfig) (DurationProber, error) {
	switch cfg.Probe {
	case "", "frames":
		return NewFrameProber(), nil
	case "ffprobe":
		p := NewFFprobeProber(cfg.FFprobePath, cfg.Timeout)
		if err := p.ValidateBinary(); err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown duration probe %q", cfg.Probe)
	}
}
