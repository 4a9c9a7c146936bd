package handler

import (
	"context"
	"errors"
	"net/http"

	"OrientadorFP_Backend/internal/config"
	"OrientadorFP_Backend/internal/llm"
	"OrientadorFP_Backend/internal/middleware"
	"OrientadorFP_Backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Server → client message types on /ws/orientacion.
const (
	wsStart  = "start"
	wsDelta  = "delta"
	wsResult = "result"
	wsError  = "error"
)

type wsMessage struct {
	Type    string              `json:"type"`
	ID      string              `json:"id,omitempty"`
	Text    string              `json:"text,omitempty"`
	OK      bool                `json:"ok"`
	Data    *models.Orientation `json:"data,omitempty"`
	Error   string              `json:"error,omitempty"`
	Detalle string              `json:"detalle,omitempty"`
	Raw     string              `json:"raw,omitempty"`
}

// OrientacionStream godoc
// @Summary      Orientación en streaming (WebSocket)
// @Description  **No es una API HTTP estándar**: conectar con ws:// o wss://.
// @Description  El cliente envía las respuestas del cuestionario como objeto JSON.
// @Description  El servidor responde start, varios delta con el texto parcial del modelo
// @Description  y finalmente result (con data e id) o error.
// @Description  La conexión admite varios cuestionarios seguidos, sujetos al mismo límite por IP
// @Description  que /api/orientacion. Un mensaje de más de 64 KiB cierra la conexión (1009).
// @Tags         Orientación
// @Success      101 {string} string "101 Switching Protocols"
// @Failure      503 {object} handler.ErrorResponse "Faltan variables de entorno de Bedrock"
// @Router       /ws/orientacion [get]
func (h *Handler) OrientacionStream(c *gin.Context) {
	if err := h.bedrock.Validate(); err != nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxAnswersBytes)

	h.manageSession(c.Request.Context(), conn, c.ClientIP())
}

func (h *Handler) manageSession(ctx context.Context, conn *websocket.Conn, client string) {
	h.logger.Info("orientation stream opened", zap.String("client_ip", client))

ReadLoop:
	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Info("orientation stream read ended", zap.String("client_ip", client), zap.Error(err))
			}
			break ReadLoop
		}
		if messageType != websocket.TextMessage {
			if conn.WriteJSON(wsMessage{Type: wsError, Error: msgInvalidJSON}) != nil {
				break ReadLoop
			}
			continue
		}

		answers, ok := decodeAnswers(message)
		if !ok {
			if conn.WriteJSON(wsMessage{Type: wsError, Error: msgInvalidJSON}) != nil {
				break ReadLoop
			}
			continue
		}

		if !h.limiter.Allow(client) {
			if conn.WriteJSON(wsMessage{Type: wsError, Error: middleware.MsgTooManyRequests}) != nil {
				break ReadLoop
			}
			continue
		}

		if err := h.streamOrientation(ctx, conn, answers); err != nil {
			h.logger.Info("orientation stream write failed", zap.String("client_ip", client), zap.Error(err))
			break ReadLoop
		}
	}
	h.logger.Info("orientation stream closed", zap.String("client_ip", client))
}

// streamOrientation runs one questionnaire. The returned error is a
// connection failure; model failures are reported to the client instead.
func (h *Handler) streamOrientation(ctx context.Context, conn *websocket.Conn, answers []byte) error {
	id := uuid.NewString()
	if err := conn.WriteJSON(wsMessage{Type: wsStart, ID: id, OK: true}); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var writeErr error
	text, err := h.model.Stream(ctx, llm.BuildPrompt(answers), func(delta string) {
		if writeErr != nil {
			return
		}
		if writeErr = conn.WriteJSON(wsMessage{Type: wsDelta, ID: id, OK: true, Text: delta}); writeErr != nil {
			cancel()
		}
	})
	if writeErr != nil {
		return writeErr
	}
	if err != nil {
		var envErr *config.MissingEnvError
		if !errors.As(err, &envErr) {
			h.logger.Error("orientation stream failed", zap.String("id", id), zap.Error(err))
		}
		return conn.WriteJSON(wsMessage{Type: wsError, ID: id, Error: err.Error()})
	}

	data, err := h.complete(ctx, id, answers, text)
	if err != nil {
		return conn.WriteJSON(wsMessage{
			Type:    wsError,
			ID:      id,
			Error:   msgUnparsable,
			Detalle: err.Error(),
			Raw:     text,
		})
	}
	return conn.WriteJSON(wsMessage{Type: wsResult, ID: id, OK: true, Data: data})
}
