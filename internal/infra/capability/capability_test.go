package capability

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/braindump/internal/domain/selfie"
)

func TestNoCameraIsUnavailable(t *testing.T) {
	_, err := NoCamera{}.Capture(context.Background())
	require.ErrorIs(t, err, selfie.ErrCapabilityUnavailable)
}

func TestStaticCameraCopiesFrame(t *testing.T) {
	cam := NewStaticCamera([]byte{1, 2, 3}, "")
	frame, err := cam.Capture(context.Background())
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", frame.MIMEType)
	frame.Data[0] = 9
	require.Equal(t, byte(1), cam.Data[0])
}

func TestMockAnalyzerLevelsInRange(t *testing.T) {
	analyzer := NewMockAnalyzer(0, rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		got, err := analyzer.Analyze(context.Background(), selfie.Frame{})
		require.NoError(t, err)
		require.GreaterOrEqual(t, got.StressLevel, 1)
		require.LessOrEqual(t, got.StressLevel, 5)
		require.GreaterOrEqual(t, got.FatigueLevel, 1)
		require.LessOrEqual(t, got.FatigueLevel, 5)
		require.Len(t, got.Suggestions, len(reliefSuggestions))
	}
}

func TestMockAnalyzerDeterministicWithSeed(t *testing.T) {
	a := NewMockAnalyzer(0, rand.NewPCG(7, 7))
	b := NewMockAnalyzer(0, rand.NewPCG(7, 7))
	first, err := a.Analyze(context.Background(), selfie.Frame{})
	require.NoError(t, err)
	second, err := b.Analyze(context.Background(), selfie.Frame{})
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestMockAnalyzerHonorsCancellation(t *testing.T) {
	analyzer := NewMockAnalyzer(time.Minute, rand.NewPCG(1, 1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := analyzer.Analyze(ctx, selfie.Frame{})
	require.ErrorIs(t, err, context.Canceled)
}
