package selfie

import (
	"context"
	"errors"
	"time"
)

// ErrCapabilityUnavailable is returned when the environment has no camera.
var ErrCapabilityUnavailable = errors.New("capability unavailable")

// Frame is a single captured image.
type Frame struct {
	Data       []byte
	MIMEType   string
	CapturedAt time.Time
}

// Analysis is the mood read from a selfie. Levels are in [1,5].
type Analysis struct {
	StressLevel  int      `json:"stressLevel"`
	FatigueLevel int      `json:"fatigueLevel"`
	Suggestions  []string `json:"suggestions"`
}

// Camera provides frames from whatever capture device the host exposes.
type Camera interface {
	Capture(ctx context.Context) (Frame, error)
}

// Analyzer reads stress and fatigue from a frame.
type Analyzer interface {
	Analyze(ctx context.Context, frame Frame) (Analysis, error)
}
