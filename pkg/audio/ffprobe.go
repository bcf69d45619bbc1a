package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"time"
)

// ffprobeOutput represents the JSON structure returned by ffprobe
type ffprobeOutput struct {
	Format struct {
		Duration   string `json:"duration"`
		FormatName string `json:"format_name"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		Duration  string `json:"duration"`
	} `json:"streams"`
}

// FFprobeProber pipes the stream into an ffprobe process
type FFprobeProber struct {
	ffprobePath string
	timeout     time.Duration
}

// NewFFprobeProber creates a prober that shells out to ffprobe
func NewFFprobeProber(ffprobePath string, timeout time.Duration) *FFprobeProber {
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &FFprobeProber{ffprobePath: ffprobePath, timeout: timeout}
}

// ValidateBinary checks that ffprobe is on the PATH
func (p *FFprobeProber) ValidateBinary() error {
	if _, err := exec.LookPath(p.ffprobePath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFprobeNotFound, p.ffprobePath)
	}
	return nil
}

func (p *FFprobeProber) Probe(ctx context.Context, r io.Reader) (time.Duration, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	args := []string{
		"-v", "quiet",
		"-show_format",
		"-show_streams",
		"-select_streams", "a:0",
		"-of", "json",
		"-i", "pipe:0",
	}

	cmd := exec.CommandContext(ctx, p.ffprobePath, args...)
	cmd.Stdin = r
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0, NewProbeError("ffprobe_exec", err, stderr.String())
	}

	var output ffprobeOutput
	if err := json.Unmarshal(stdout.Bytes(), &output); err != nil {
		return 0, NewProbeError("ffprobe_parse", err, "")
	}
	return parseFFprobeDuration(&output)
}

// parseFFprobeDuration prefers the container duration and falls back to the audio stream
func parseFFprobeDuration(output *ffprobeOutput) (time.Duration, error) {
	candidates := []string{output.Format.Duration}
	for _, stream := range output.Streams {
		if stream.CodecType == "audio" {
			candidates = append(candidates, stream.Duration)
			break
		}
	}

	for _, raw := range candidates {
		if raw == "" {
			continue
		}
		seconds, err := strconv.ParseFloat(raw, 64)
		if err != nil || seconds <= 0 {
			continue
		}
		return time.Duration(seconds * float64(time.Second)), nil
	}
	return 0, ErrNoDuration
}
