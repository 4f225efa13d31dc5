package selfie

import (
	"context"
	"errors"
	"log/slog"

	apperrors "github.com/yanqian/braindump/pkg/errors"
)

// Service runs the selfie mood mirror.
type Service interface {
	Mirror(ctx context.Context) (Analysis, error)
}

type service struct {
	camera   Camera
	analyzer Analyzer
	logger   *slog.Logger
}

// NewService wires a camera and analyzer together.
func NewService(camera Camera, analyzer Analyzer, logger *slog.Logger) Service {
	return &service{
		camera:   camera,
		analyzer: analyzer,
		logger:   logger.With("component", "selfie.service"),
	}
}

func (s *service) Mirror(ctx context.Context) (Analysis, error) {
	frame, err := s.camera.Capture(ctx)
	if err != nil {
		if errors.Is(err, ErrCapabilityUnavailable) {
			return Analysis{}, apperrors.Wrap("capability_unavailable", "camera is not available", err)
		}
		return Analysis{}, apperrors.Wrap("capture_failed", "failed to capture frame", err)
	}

	analysis, err := s.analyzer.Analyze(ctx, frame)
	if err != nil {
		return Analysis{}, apperrors.Wrap("analysis_failed", "failed to analyze frame", err)
	}
	s.logger.Info("selfie analyzed", "stress", analysis.StressLevel, "fatigue", analysis.FatigueLevel, "bytes", len(frame.Data))
	return analysis, nil
}
