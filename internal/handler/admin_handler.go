/**
* Name: 			admin_handler.go
* Description: 		Operator endpoints
* Workflow: 		login, dataset reload, orientation history
 */
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"OrientadorFP_Backend/internal/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

type LoginRequest struct {
	Password string `json:"password" example:"password123"`
}

type LoginSuccessResponse struct {
	OK    bool   `json:"ok" example:"true"`
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// AdminLogin godoc
// @Summary      Login de operador
// @Description  Compara la contraseña con ADMIN_PASSWORD_HASH (bcrypt) y emite un JWT.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body handler.LoginRequest true "Contraseña"
// @Success      200 {object} handler.LoginSuccessResponse
// @Failure      400 {object} handler.ErrorResponse
// @Failure      401 {object} handler.ErrorResponse
// @Failure      503 {object} handler.ErrorResponse "Administración no configurada"
// @Router       /api/admin/login [post]
func (h *Handler) AdminLogin(c *gin.Context) {
	var credentials LoginRequest

	rawData, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request"})
		return
	}
	if err := json.Unmarshal(rawData, &credentials); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request"})
		return
	}

	token, err := h.issuer.Login(credentials.Password)
	switch {
	case errors.Is(err, auth.ErrAdminDisabled):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Acceso de administración no configurado"})
	case errors.Is(err, auth.ErrInvalidPassword):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
	case err != nil:
		h.logger.Error("admin token generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
	default:
		c.JSON(http.StatusOK, LoginSuccessResponse{OK: true, Token: token})
	}
}

// AdminReload godoc
// @Summary      Recargar los datasets de la GVA
// @Description  Fuerza la descarga de los CSV de matrícula FP y de centros en paralelo.
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} object{ok=bool,fp=fpindex.Stats,centros=centros.Stats}
// @Failure      401 {object} handler.ErrorResponse
// @Router       /api/admin/reload [post]
func (h *Handler) AdminReload(c *gin.Context) {
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		h.fp.Ensure(ctx, true)
		return nil
	})
	g.Go(func() error {
		h.centros.Ensure(ctx, true)
		return nil
	})
	_ = g.Wait()

	fp, cs := h.fp.Stats(), h.centros.Stats()
	h.logger.Info("datasets reloaded by operator",
		zap.Int("fp_pairs", fp.Pairs),
		zap.String("fp_error", fp.Error),
		zap.Int("centros", cs.Centros),
		zap.String("centros_error", cs.Error),
	)
	c.JSON(http.StatusOK, gin.H{
		"ok":      fp.Error == "" && cs.Error == "",
		"fp":      fp,
		"centros": cs,
	})
}

// AdminOrientaciones godoc
// @Summary      Historial de orientaciones
// @Description  Devuelve las últimas orientaciones guardadas, más recientes primero.
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query  int  false  "1-200, por defecto 50"
// @Success      200 {object} object{ok=bool,count=int,orientaciones=[]models.OrientationRecord}
// @Failure      401 {object} handler.ErrorResponse
// @Failure      500 {object} handler.ErrorResponse
// @Router       /api/admin/orientaciones [get]
func (h *Handler) AdminOrientaciones(c *gin.Context) {
	limit := defaultHistoryLimit
	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n > 0 {
		limit = min(n, maxHistoryLimit)
	}

	records, err := h.store.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("ListRecent failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch records"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "count": len(records), "orientaciones": records})
}

// Warmup loads both datasets. Errors are already recorded in the index stats.
func (h *Handler) Warmup(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		h.fp.Ensure(ctx, false)
		if msg := h.fp.Stats().Error; msg != "" {
			return errors.New(msg)
		}
		return nil
	})
	g.Go(func() error {
		h.centros.Ensure(ctx, false)
		if msg := h.centros.Stats().Error; msg != "" {
			return errors.New(msg)
		}
		return nil
	})
	return g.Wait()
}
