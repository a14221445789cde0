package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"openway/internal/httputil"
	"openway/internal/model"
	"openway/internal/service"
	"openway/internal/transport/http/middleware"
)

type SentimentHandler struct {
	sentiment *service.SentimentService
	log       *zap.Logger
}

func NewSentimentHandler(sentiment *service.SentimentService, log *zap.Logger) *SentimentHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &SentimentHandler{sentiment: sentiment, log: log}
}

func (h *SentimentHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetDeviceIDFromContext(r.Context())
	if !ok {
		httputil.WriteBadRequestWithCode(w, httputil.ErrCodeMissingDevice, "X-Device-ID header is required")
		return
	}

	var req model.SentimentRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	label, err := h.sentiment.Analyze(r.Context(), id, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrEmptyText):
			httputil.WriteBadRequestWithCode(w, httputil.ErrCodeValidation, "Please enter text before analyzing.")
		case errors.Is(err, model.ErrSentimentFailed):
			httputil.WriteBadGateway(w, "Failed to analyze sentiment.")
		default:
			h.log.Error("sentiment analysis failed", zap.String("device_id", id.String()), zap.Error(err))
			httputil.WriteInternalError(w, "Error analyzing sentiment.")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.SentimentResponse{Sentiment: label})
}
