package handler

import (
	"errors"
	"net/http"

	"OrientadorFP_Backend/internal/config"
	"OrientadorFP_Backend/internal/fpindex"
	"OrientadorFP_Backend/internal/llm"
	"OrientadorFP_Backend/internal/middleware"
	"OrientadorFP_Backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var publicEndpoints = []string{
	"/health",
	"/api/orientacion",
	"/api/orientaciones/{id}",
	"/api/ciudades",
	"/api/ciudades/debug",
	"/api/municipios",
	"/api/centros",
	"/ws/orientacion",
}

// Root godoc
// @Summary      Estado del backend
// @Tags         Sistema
// @Produce      json
// @Success      200 {object} object{mensaje=string,endpoints=[]string}
// @Router       / [get]
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"mensaje":   "Backend activo (Bedrock Nova).",
		"endpoints": publicEndpoints,
	})
}

// Health godoc
// @Summary      Health check
// @Description  bedrockReady indica si la configuración de Bedrock permite invocar el modelo.
// @Tags         Sistema
// @Produce      json
// @Success      200 {object} object{ok=bool,region=string,modelId=string,matcher=string,bedrockReady=bool}
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"region":       h.bedrock.Region,
		"modelId":      h.bedrock.ModelID,
		"matcher":      fpindex.Matcher,
		"bedrockReady": h.bedrock.Validate() == nil,
	})
}

// Orientacion godoc
// @Summary      Recomendar ciclos de FP
// @Description  Envía las respuestas del cuestionario a Amazon Nova y devuelve 3 ciclos formativos.
// @Description  Si el modelo no devuelve JSON parseable la respuesta es 200 con ok=false.
// @Tags         Orientación
// @Accept       json
// @Produce      json
// @Param        request body object true "Respuestas del alumno"
// @Success      200 {object} handler.OrientacionResponse
// @Failure      400 {object} handler.ErrorResponse "JSON inválido o vacío"
// @Failure      413 {object} handler.ErrorResponse "Cuestionario demasiado grande"
// @Failure      429 {object} handler.ErrorResponse "Demasiadas solicitudes"
// @Failure      500 {object} handler.ErrorResponse "Error del modelo"
// @Failure      503 {object} handler.ErrorResponse "Faltan variables de entorno de Bedrock"
// @Router       /api/orientacion [post]
func (h *Handler) Orientacion(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAnswersBytes)
	rawData, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: msgTooLarge})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidJSON})
		return
	}
	answers, ok := decodeAnswers(rawData)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidJSON})
		return
	}

	if err := h.bedrock.Validate(); err != nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
		return
	}

	text, err := h.model.Invoke(c.Request.Context(), llm.BuildPrompt(answers))
	if err != nil {
		var envErr *config.MissingEnvError
		if errors.As(err, &envErr) {
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
			return
		}
		h.logger.Error("orientation failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	id := uuid.NewString()
	data, err := h.complete(c.Request.Context(), id, answers, text)
	if err != nil {
		h.logger.Warn("model output is not JSON", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusOK, ParseErrorResponse{
			Error:   msgUnparsable,
			Detalle: err.Error(),
			Raw:     text,
		})
		return
	}
	c.JSON(http.StatusOK, OrientacionResponse{OK: true, Data: *data, ID: id})
}

// GetOrientacion godoc
// @Summary      Consultar una orientación guardada
// @Tags         Orientación
// @Produce      json
// @Param        id  path  string  true  "Id devuelto por /api/orientacion"
// @Success      200 {object} object{ok=bool,orientacion=models.OrientationRecord}
// @Failure      404 {object} handler.ErrorResponse
// @Failure      500 {object} handler.ErrorResponse
// @Router       /api/orientaciones/{id} [get]
func (h *Handler) GetOrientacion(c *gin.Context) {
	rec, err := h.store.GetOrientation(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: msgNotFound})
			return
		}
		h.logger.Error("GetOrientation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "orientacion": rec})
}
