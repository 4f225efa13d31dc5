package capability

import (
	"context"
	"time"

	"github.com/yanqian/braindump/internal/domain/selfie"
	"github.com/yanqian/braindump/pkg/util"
)

// NoCamera is used on hosts without a capture device.
type NoCamera struct{}

// Capture always reports the capability as unavailable.
func (NoCamera) Capture(context.Context) (selfie.Frame, error) {
	return selfie.Frame{}, selfie.ErrCapabilityUnavailable
}

// StaticCamera returns the same frame on every capture.
type StaticCamera struct {
	Data     []byte
	MIMEType string
	now      func() time.Time
}

// NewStaticCamera builds a camera that replays data.
func NewStaticCamera(data []byte, mimeType string) *StaticCamera {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return &StaticCamera{Data: data, MIMEType: mimeType, now: util.NowUTC}
}

// Capture implements selfie.Camera.
func (c *StaticCamera) Capture(ctx context.Context) (selfie.Frame, error) {
	if err := ctx.Err(); err != nil {
		return selfie.Frame{}, err
	}
	data := make([]byte, len(c.Data))
	copy(data, c.Data)
	return selfie.Frame{Data: data, MIMEType: c.MIMEType, CapturedAt: c.now()}, nil
}

var (
	_ selfie.Camera = NoCamera{}
	_ selfie.Camera = (*StaticCamera)(nil)
)
