/**
* Name: 			handler.go
* Description: 		Gin HTTP handlers of the orientation API
* Workflow: 		dependencies, shared JSON envelopes, orientation completion
 */
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"OrientadorFP_Backend/internal/auth"
	"OrientadorFP_Backend/internal/centros"
	"OrientadorFP_Backend/internal/config"
	"OrientadorFP_Backend/internal/fpindex"
	"OrientadorFP_Backend/internal/llm"
	"OrientadorFP_Backend/internal/middleware"
	"OrientadorFP_Backend/internal/models"
	"OrientadorFP_Backend/internal/storage"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	msgInvalidJSON   = "No llegó JSON válido. Envía Content-Type: application/json"
	msgUnparsable    = "Nova no devolvió JSON parseable."
	msgMissingCiclo  = "Falta parámetro 'ciclo'"
	msgMissingMunici = "Falta parámetro 'municipio'"
	msgNotFound      = "Orientación no encontrada"
	msgTooLarge      = "El cuestionario es demasiado grande."
)

// maxAnswersBytes caps a questionnaire, both as a POST body and as a websocket message.
const maxAnswersBytes = 64 << 10

// Model is the language model used for orientations.
type Model interface {
	Invoke(ctx context.Context, prompt string) (string, error)
	Stream(ctx context.Context, prompt string, onDelta func(string)) (string, error)
	ModelID() string
}

type Handler struct {
	model   Model
	bedrock config.BedrockConfig
	fp      *fpindex.Index
	centros *centros.Index
	store   *storage.Store
	issuer  *auth.Issuer
	logger  *zap.Logger

	// limiter meters model calls per client IP across HTTP and websocket.
	limiter  *middleware.ClientLimiter
	upgrader websocket.Upgrader
}

type Deps struct {
	Model   Model
	Bedrock config.BedrockConfig
	FP      *fpindex.Index
	Centros *centros.Index
	Store   *storage.Store
	Issuer    *auth.Issuer
	Logger    *zap.Logger
	RateLimit config.RateLimitConfig
}

func New(d Deps) *Handler {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		model:   d.Model,
		bedrock: d.Bedrock,
		fp:      d.FP,
		centros: d.Centros,
		store:   d.Store,
		issuer:  d.Issuer,
		logger:  logger,
		limiter: middleware.NewClientLimiter(d.RateLimit.OrientacionPerMinute, d.RateLimit.OrientacionBurst),
		upgrader: websocket.Upgrader{
			// the questionnaire UI is served from another origin (port 3000)
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

type ErrorResponse struct {
	OK    bool   `json:"ok" example:"false"`
	Error string `json:"error" example:"Falta parámetro 'ciclo'"`
}

type ParseErrorResponse struct {
	OK      bool   `json:"ok" example:"false"`
	Error   string `json:"error" example:"Nova no devolvió JSON parseable."`
	Detalle string `json:"detalle" example:"No se encontró un bloque JSON en la respuesta."`
	Raw     string `json:"raw"`
}

type OrientacionResponse struct {
	OK   bool               `json:"ok" example:"true"`
	Data models.Orientation `json:"data"`
	ID   string             `json:"id" example:"3f0c1e9a-6a4e-4d8b-9f59-2a1c7e0b5d11"`
}

// decodeAnswers accepts only a non-empty JSON object.
func decodeAnswers(raw []byte) (json.RawMessage, bool) {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil || len(obj) == 0 {
		return nil, false
	}
	return json.RawMessage(raw), true
}

// complete parses the model output and stores the submission either way.
// The returned error is the parse failure, if any.
func (h *Handler) complete(ctx context.Context, id string, answers json.RawMessage, text string) (*models.Orientation, error) {
	rec := models.OrientationRecord{
		ID:         id,
		Respuestas: answers,
		ModelID:    h.model.ModelID(),
	}

	obj, parseErr := llm.TryParseJSON(text)
	if parseErr == nil {
		o := llm.Normalize(obj)
		rec.Resultado = &o
		rec.OK = true
	}

	if err := h.store.SaveOrientation(context.WithoutCancel(ctx), rec); err != nil {
		h.logger.Error("failed to store orientation", zap.String("id", id), zap.Error(err))
	}
	return rec.Resultado, parseErr
}
