package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/braindump/internal/domain/board"
	"github.com/yanqian/braindump/internal/domain/braindump"
	"github.com/yanqian/braindump/internal/domain/feed"
	"github.com/yanqian/braindump/internal/domain/selfie"
	apperrors "github.com/yanqian/braindump/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	session braindump.Session
	feedSvc feed.Service
	board   board.Service
	selfie  selfie.Service
	logger  *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(session braindump.Session, feedSvc feed.Service, boardSvc board.Service, selfieSvc selfie.Service, logger *slog.Logger) *Handler {
	return &Handler{
		session: session,
		feedSvc: feedSvc,
		board:   boardSvc,
		selfie:  selfieSvc,
		logger:  logger.With("component", "http.handler"),
	}
}

type dumpRequest struct {
	Text string `json:"text"`
}

// SubmitDump transforms a stress dump into a plan, reset tip and motivation.
func (h *Handler) SubmitDump(c *gin.Context) {
	var req dumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	sub, err := h.session.Submit(c.Request.Context(), req.Text)
	if err != nil {
		abortWithDomainError(c, "dump_failed", err)
		return
	}
	h.feedSvc.Invalidate(c.Request.Context())

	c.JSON(http.StatusOK, sub)
}

// LatestResult returns the most recent transformation, if any.
func (h *Handler) LatestResult(c *gin.Context) {
	res, ok := h.session.LatestResult()
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusNotFound, "not_found", "no transformation yet", nil))
		return
	}
	c.JSON(http.StatusOK, res)
}

// ClearResult starts a fresh dump without touching the mood history.
func (h *Handler) ClearResult(c *gin.Context) {
	h.session.ClearResult()
	c.Status(http.StatusNoContent)
}

// MoodHistory lists every mood entry recorded in this session.
func (h *Handler) MoodHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entries": h.session.MoodHistory()})
}

// MoodSummary returns the dashboard aggregates.
func (h *Handler) MoodSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.Dashboard())
}

// ListBoard returns the anonymous posts, newest first.
func (h *Handler) ListBoard(c *gin.Context) {
	posts, err := h.board.List(c.Request.Context())
	if err != nil {
		abortWithDomainError(c, "board_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// SharePost adds a one-liner to the board.
func (h *Handler) SharePost(c *gin.Context) {
	var req board.ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	post, err := h.board.Share(c.Request.Context(), req)
	if err != nil {
		abortWithDomainError(c, "board_failed", err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// ReactToPost bumps a reaction counter.
func (h *Handler) ReactToPost(c *gin.Context) {
	var req board.ReactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	post, err := h.board.React(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		abortWithDomainError(c, "board_failed", err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// AnalyzeSelfie runs the selfie mood mirror.
func (h *Handler) AnalyzeSelfie(c *gin.Context) {
	analysis, err := h.selfie.Mirror(c.Request.Context())
	if err != nil {
		abortWithDomainError(c, "selfie_failed", err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// RecentEntries proxies the backend's recent entries through the cache.
func (h *Handler) RecentEntries(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "limit must be an integer", err))
			return
		}
		limit = parsed
	}
	resp, err := h.feedSvc.Recent(c.Request.Context(), c.Query("userId"), limit)
	if err != nil {
		abortWithDomainError(c, "recent_failed", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Health reports this service is up, plus the cached backend health.
func (h *Handler) Health(c *gin.Context) {
	backend := false
	if health, err := h.feedSvc.Health(c.Request.Context()); err != nil {
		h.logger.Warn("backend health check failed", "error", err)
	} else {
		backend = health.OK
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "backend": backend})
}

func abortWithDomainError(c *gin.Context, fallbackCode string, err error) {
	status := http.StatusInternalServerError
	code := fallbackCode
	switch apperrors.CodeOf(err) {
	case "invalid_input":
		status = http.StatusBadRequest
		code = "invalid_request"
	case "not_found":
		status = http.StatusNotFound
		code = "not_found"
	case "submission_in_flight":
		status = http.StatusConflict
		code = "submission_in_flight"
	case "request_failed":
		status = http.StatusBadGateway
		code = "request_failed"
	case "capability_unavailable":
		status = http.StatusNotImplemented
		code = "capability_unavailable"
	}
	abortWithError(c, NewHTTPError(status, code, apperrors.MessageOf(err), err))
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
