package capability

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/yanqian/braindump/internal/domain/selfie"
)

var reliefSuggestions = []string{
	"Try the 4-7-8 breathing technique",
	"Drink a glass of water - you look dehydrated",
	"Take a 5-minute walk outside",
	"Do some gentle neck stretches",
}

// MockAnalyzer simulates facial analysis with random levels.
type MockAnalyzer struct {
	delay time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockAnalyzer builds an analyzer that waits delay before answering.
// A nil src seeds from the runtime.
func NewMockAnalyzer(delay time.Duration, src rand.Source) *MockAnalyzer {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &MockAnalyzer{delay: delay, rng: rand.New(src)}
}

// Analyze implements selfie.Analyzer.
func (a *MockAnalyzer) Analyze(ctx context.Context, _ selfie.Frame) (selfie.Analysis, error) {
	if a.delay > 0 {
		timer := time.NewTimer(a.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return selfie.Analysis{}, ctx.Err()
		case <-timer.C:
		}
	}

	a.mu.Lock()
	stress := a.rng.IntN(5) + 1
	fatigue := a.rng.IntN(5) + 1
	a.mu.Unlock()

	suggestions := make([]string, len(reliefSuggestions))
	copy(suggestions, reliefSuggestions)
	return selfie.Analysis{
		StressLevel:  stress,
		FatigueLevel: fatigue,
		Suggestions:  suggestions,
	}, nil
}

var _ selfie.Analyzer = (*MockAnalyzer)(nil)
