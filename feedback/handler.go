package feedback

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/voicefeedback/auth"
	"github.com/kbukum/voicefeedback/auth/authctx"
	apperrors "github.com/kbukum/voicefeedback/errors"
	"github.com/kbukum/voicefeedback/logger"
	"github.com/kbukum/voicefeedback/server"
	"github.com/kbukum/voicefeedback/validation"
)

// LoginFunc checks a username and password and issues a token.
type LoginFunc func(ctx context.Context, username, password string) (*auth.Token, error)

// Handler exposes Service over gin.
type Handler struct {
	svc   *Service
	login LoginFunc
	log   *logger.Logger
}

// NewHandler creates a Handler. A nil login disables POST /api/auth/login.
func NewHandler(svc *Service, login LoginFunc, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Handler{svc: svc, login: login, log: log.WithComponent("feedback-http")}
}

// Register mounts the routes on r. protect guards the feedback routes;
// pass nil to leave them open.
func (h *Handler) Register(r gin.IRouter, protect gin.HandlerFunc) {
	if h.login != nil {
		r.POST(PathLogin, h.handleLogin)
	}

	var mw []gin.HandlerFunc
	if protect != nil {
		mw = append(mw, protect)
	}
	g := r.Group(PathVoice, mw...)
	g.POST("", h.handleSubmit)
	g.GET("", h.handleList)
	g.GET("/:id", h.handleGet)
	g.GET("/:id/audio", h.handleAudio)
}

func (h *Handler) handleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("Request body must be JSON with username and password"))
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}
	tok, err := h.login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, LoginResponse{
		Token:     tok.AccessToken,
		TokenType: tok.TokenType,
		ExpiresAt: tok.ExpiresAt,
	})
}

func missingData() *apperrors.AppError {
	return apperrors.New(apperrors.ErrCodeMissingField, "Missing required data")
}

func (h *Handler) handleSubmit(c *gin.Context) {
	ctx := c.Request.Context()

	predictionID := c.PostForm(FieldPredictionID)
	fh, err := c.FormFile(FieldAudio)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		server.RespondWithError(c, apperrors.PayloadTooLarge(tooLarge.Limit))
		return
	}
	if err != nil || predictionID == "" {
		h.log.WithContext(ctx).Warn("Voice upload missing fields", logger.Fields(
			logger.FieldPredictionID, predictionID,
			"has_audio", err == nil,
		))
		server.RespondWithError(c, missingData())
		return
	}

	f, err := fh.Open()
	if err != nil {
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, h.svc.MaxAudioSize()+1))
	if err != nil {
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}
	if len(data) == 0 {
		server.RespondWithError(c, missingData())
		return
	}

	rec, err := h.svc.Submit(ctx, Upload{
		PredictionID: predictionID,
		UserID:       authctx.Subject(ctx),
		FileName:     fh.Filename,
		MediaType:    fh.Header.Get("Content-Type"),
		Audio:        data,
	})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, SubmitResponse{
		Status:        StatusReceived,
		ID:            rec.ID,
		Transcription: rec.Transcription,
	})
}

func (h *Handler) handleList(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context(), c.Query(FieldPredictionID))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondList(c, records)
}

func (h *Handler) handleGet(c *gin.Context) {
	rec, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, rec)
}

func (h *Handler) handleAudio(c *gin.Context) {
	rec, rc, err := h.svc.Audio(c.Request.Context(), c.Param("id"))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	defer func() { _ = rc.Close() }()

	ct := rec.MediaType
	if ct == "" {
		ct = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, rec.Size, ct, rc, map[string]string{
		"Content-Disposition": `attachment; filename="` + rec.ID + `.wav"`,
	})
}
