package braindump

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyDump is returned when a dump contains only whitespace.
	ErrEmptyDump = errors.New("dump text cannot be empty")
	// ErrRequestFailed normalizes every transport failure talking to the backend.
	ErrRequestFailed = errors.New("request failed")
	// ErrSubmissionInFlight rejects a submission while another one is pending.
	ErrSubmissionInFlight = errors.New("a dump submission is already in flight")
	// ErrInvalidMoodEntry rejects a seeded mood entry outside the vocabulary.
	ErrInvalidMoodEntry = errors.New("invalid mood entry")
)

// DumpRequest is the payload sent to the backend for a single dump.
type DumpRequest struct {
	UserInput string   `json:"user_input"`
	UserID    string   `json:"user_id"`
	Tags      []string `json:"tags"`
}

// DumpResponse is the structured answer produced by the backend.
type DumpResponse struct {
	Plan        []string `json:"plan"`
	ResetTip    string   `json:"reset_tip"`
	Motivation  string   `json:"motivation"`
	StressScore float64  `json:"stress_score"`
}

// Health mirrors the backend health payload.
type Health struct {
	OK bool `json:"ok"`
}

// TransformationResult is what the presentation layer renders after a dump.
type TransformationResult struct {
	ActionPlan      []string `json:"actionPlan"`
	WellnessReset   string   `json:"wellnessReset"`
	MotivationBoost string   `json:"motivationBoost"`
}

// MoodEntry is a timestamped emotion derived from a stress score.
type MoodEntry struct {
	Date      string  `json:"date"`
	Emotion   Emotion `json:"emotion"`
	Intensity int     `json:"intensity"`
}

// Validate checks a mood entry that did not come from Classify.
func (e MoodEntry) Validate() error {
	if strings.TrimSpace(e.Date) == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidMoodEntry)
	}
	if !e.Emotion.Valid() {
		return fmt.Errorf("%w: unknown emotion %q", ErrInvalidMoodEntry, e.Emotion)
	}
	if e.Intensity < minIntensity || e.Intensity > maxIntensity {
		return fmt.Errorf("%w: intensity %d outside [%d,%d]", ErrInvalidMoodEntry, e.Intensity, minIntensity, maxIntensity)
	}
	return nil
}

// Submission bundles everything produced by one successful dump.
type Submission struct {
	Result      TransformationResult `json:"result"`
	Mood        MoodEntry            `json:"mood"`
	Tags        []string             `json:"tags"`
	StressScore float64              `json:"stressScore"`
	Color       string               `json:"color"`
}

// MoodSummary aggregates the mood history for the dashboard.
type MoodSummary struct {
	Total            int             `json:"total"`
	AverageIntensity float64         `json:"averageIntensity"`
	TrendingEmotion  Emotion         `json:"trendingEmotion"`
	Emotions         map[Emotion]int `json:"emotions"`
	Recent           []MoodEntry     `json:"recent"`
}

// Client talks to the BrainDump backend.
type Client interface {
	Submit(ctx context.Context, req DumpRequest) (DumpResponse, error)
	HealthCheck(ctx context.Context) (Health, error)
	RecentEntries(ctx context.Context, userID string, limit int) ([]json.RawMessage, error)
}

// Config wires runtime settings for the session.
type Config struct {
	UserID string
	// Seeds start the history before the first dump.
	Seeds []MoodEntry
}

// DefaultUserID is the placeholder identity sent with every dump.
const DefaultUserID = "anonymous"
