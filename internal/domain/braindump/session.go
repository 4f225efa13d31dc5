package braindump

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	apperrors "github.com/yanqian/braindump/pkg/errors"
	"github.com/yanqian/braindump/pkg/util"
)

const recentMoodWindow = 7

// Session owns the mood history and the latest transformation for one page session.
type Session interface {
	Submit(ctx context.Context, text string) (Submission, error)
	SubmitDump(ctx context.Context, text string) (TransformationResult, error)
	MoodHistory() []MoodEntry
	LatestResult() (TransformationResult, bool)
	ClearResult()
	Dashboard() MoodSummary
}

type session struct {
	cfg    Config
	client Client
	logger *slog.Logger
	now    func() time.Time

	inFlight atomic.Bool

	mu      sync.RWMutex
	history []MoodEntry
	latest  *TransformationResult
}

// NewSession wires up the dump orchestration.
func NewSession(cfg Config, client Client, logger *slog.Logger) Session {
	if strings.TrimSpace(cfg.UserID) == "" {
		cfg.UserID = DefaultUserID
	}
	// seeds sit at the front; submissions only ever append after them
	return &session{
		cfg:     cfg,
		client:  client,
		logger:  logger.With("component", "braindump.session"),
		now:     util.NowUTC,
		history: append([]MoodEntry(nil), cfg.Seeds...),
	}
}

func (s *session) Submit(ctx context.Context, text string) (Submission, error) {
	input := strings.TrimSpace(text)
	if input == "" {
		return Submission{}, apperrors.Wrap("invalid_input", "dump text cannot be empty", ErrEmptyDump)
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		return Submission{}, apperrors.Wrap("submission_in_flight", "wait for the current dump to finish", ErrSubmissionInFlight)
	}
	defer s.inFlight.Store(false)

	req := DumpRequest{
		UserInput: input,
		UserID:    s.cfg.UserID,
		Tags:      ExtractTags(input),
	}
	resp, err := s.client.Submit(ctx, req)
	if err != nil {
		s.logger.Warn("dump submission failed", "tags", req.Tags, "error", err)
		return Submission{}, err
	}

	result := TransformationResult{
		ActionPlan:      append([]string(nil), resp.Plan...),
		WellnessReset:   resp.ResetTip,
		MotivationBoost: resp.Motivation,
	}
	mood := Classify(resp.StressScore)
	entry := MoodEntry{
		Date:      s.now().UTC().Format(time.RFC3339),
		Emotion:   mood.Emotion,
		Intensity: mood.Intensity,
	}

	s.mu.Lock()
	s.history = append(s.history, entry)
	s.latest = &result
	s.mu.Unlock()

	s.logger.Info("dump transformed", "tags", req.Tags, "stress_score", resp.StressScore, "emotion", entry.Emotion, "intensity", entry.Intensity)

	return Submission{
		Result:      result,
		Mood:        entry,
		Tags:        req.Tags,
		StressScore: resp.StressScore,
		Color:       ScoreColor(resp.StressScore),
	}, nil
}

func (s *session) SubmitDump(ctx context.Context, text string) (TransformationResult, error) {
	sub, err := s.Submit(ctx, text)
	if err != nil {
		return TransformationResult{}, err
	}
	return sub.Result, nil
}

func (s *session) MoodHistory() []MoodEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]MoodEntry, len(s.history))
	copy(out, s.history)
	return out
}

func (s *session) LatestResult() (TransformationResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return TransformationResult{}, false
	}
	res := *s.latest
	res.ActionPlan = append([]string(nil), res.ActionPlan...)
	return res, true
}

func (s *session) ClearResult() {
	s.mu.Lock()
	s.latest = nil
	s.mu.Unlock()
}

func (s *session) Dashboard() MoodSummary {
	return Summarize(s.MoodHistory())
}

// Summarize computes the dashboard view of a mood history.
func Summarize(entries []MoodEntry) MoodSummary {
	summary := MoodSummary{
		Total:           len(entries),
		TrendingEmotion: EmotionCalm,
		Emotions:        make(map[Emotion]int),
		Recent:          []MoodEntry{},
	}
	if len(entries) == 0 {
		return summary
	}

	total := 0
	for _, entry := range entries {
		total += entry.Intensity
		summary.Emotions[entry.Emotion]++
	}
	// ties resolve to the emotion of the earliest entry
	best := 0
	for _, entry := range entries {
		if count := summary.Emotions[entry.Emotion]; count > best {
			best = count
			summary.TrendingEmotion = entry.Emotion
		}
	}
	summary.AverageIntensity = float64(total) / float64(len(entries))

	start := len(entries) - recentMoodWindow
	if start < 0 {
		start = 0
	}
	summary.Recent = append(summary.Recent, entries[start:]...)
	return summary
}
