package audio

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"

	"github.com/tcolgate/mp3"
)

// ctxCheckInterval is how many frames are decoded between context checks
const ctxCheckInterval = 512

// FrameProber sums MP3 frame durations while streaming the input once.
// It handles CBR and VBR files alike and never buffers the whole object.
type FrameProber struct{}

// NewFrameProber creates a FrameProber
func NewFrameProber() *FrameProber {
	return &FrameProber{}
}

func (p *FrameProber) Probe(ctx context.Context, r io.Reader) (time.Duration, error) {
	dec := mp3.NewDecoder(bufio.NewReaderSize(r, 64*1024))

	var (
		frame   mp3.Frame
		skipped int
		total   time.Duration
		frames  int
	)

	for {
		if frames%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}

		err := dec.Decode(&frame, &skipped)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			// A truncated final frame still leaves a usable total
			if errors.Is(err, io.ErrUnexpectedEOF) && frames > 0 {
				break
			}
			return 0, NewProbeError("frame_decode", err, "")
		}
		total += frame.Duration()
		frames++
	}

	if frames == 0 {
		return 0, ErrNoFrames
	}
	return total, nil
}
