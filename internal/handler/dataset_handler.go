package handler

import (
	"net/http"
	"strconv"
	"strings"

	"OrientadorFP_Backend/internal/centros"
	"OrientadorFP_Backend/internal/fpindex"

	"github.com/gin-gonic/gin"
)

// Ciudades godoc
// @Summary      Municipios donde se imparte un ciclo
// @Description  Búsqueda exacta y, si no hay coincidencia, aproximada (token_set_ratio >= 55).
// @Tags         Datos GVA
// @Produce      json
// @Param        ciclo  query  string  true   "Nombre del ciclo"
// @Param        grado  query  string  false  "Grado (Medio, Superior...)"
// @Success      200 {object} object{ok=bool,ciclo=string,grado=string,ciudades=[]string,count=int,match=fpindex.MatchInfo,source=string,warning=string}
// @Failure      400 {object} handler.ErrorResponse
// @Router       /api/ciudades [get]
func (h *Handler) Ciudades(c *gin.Context) {
	ciclo := strings.TrimSpace(c.Query("ciclo"))
	grado := strings.TrimSpace(c.Query("grado"))
	if ciclo == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgMissingCiclo})
		return
	}

	cities, match := h.fp.FindCities(c.Request.Context(), ciclo, grado)
	resp := gin.H{
		"ok":       true,
		"ciclo":    ciclo,
		"grado":    grado,
		"ciudades": cities,
		"count":    len(cities),
		"match":    match,
	}
	stats := h.fp.Stats()
	if stats.Source != "" {
		resp["source"] = stats.Source
	}
	if stats.Error != "" {
		resp["warning"] = stats.Error
	}
	c.JSON(http.StatusOK, resp)
}

// CiudadesDebug godoc
// @Summary      Recargar y describir el índice de ciclos
// @Tags         Datos GVA
// @Produce      json
// @Success      200 {object} object{ok=bool,index_pairs=int,index_cycles=int,municipios_count=int,source=string,error=string,matcher=string}
// @Router       /api/ciudades/debug [get]
func (h *Handler) CiudadesDebug(c *gin.Context) {
	h.fp.Ensure(c.Request.Context(), true)
	stats := h.fp.Stats()
	c.JSON(http.StatusOK, gin.H{
		"ok":               true,
		"index_pairs":      stats.Pairs,
		"index_cycles":     stats.Cycles,
		"municipios_count": stats.Municipios,
		"source":           stats.Source,
		"error":            stats.Error,
		"matcher":          fpindex.Matcher,
	})
}

// Municipios godoc
// @Summary      Municipios con oferta de FP
// @Description  Con q filtra de forma aproximada (mejores coincidencias primero).
// @Tags         Datos GVA
// @Produce      json
// @Param        q      query  string  false  "Texto a buscar"
// @Param        limit  query  int     false  "Máximo de resultados"
// @Success      200 {object} object{ok=bool,count=int,municipios=[]string,source=string}
// @Failure      500 {object} handler.ErrorResponse
// @Router       /api/municipios [get]
func (h *Handler) Municipios(c *gin.Context) {
	limit, _ := strconv.Atoi(strings.TrimSpace(c.Query("limit")))

	municipios, stats := h.fp.SearchMunicipios(c.Request.Context(), c.Query("q"), limit)
	if stats.Error != "" {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: stats.Error})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"count":      len(municipios),
		"municipios": municipios,
		"source":     stats.Source,
	})
}

// Centros godoc
// @Summary      Centros educativos de un municipio
// @Description  Ordenados por probabilidad de impartir FP. only_fp=1 descarta los improbables.
// @Tags         Datos GVA
// @Produce      json
// @Param        municipio  query  string  true   "Municipio"
// @Param        limit      query  int     false  "1-100, por defecto 25"
// @Param        only_fp    query  string  false  "1 para filtrar"
// @Success      200 {object} object{ok=bool,municipio=string,count=int,centros=[]models.Centro,source=string}
// @Failure      400 {object} handler.ErrorResponse
// @Failure      500 {object} handler.ErrorResponse
// @Router       /api/centros [get]
func (h *Handler) Centros(c *gin.Context) {
	municipio := strings.TrimSpace(c.Query("municipio"))
	if municipio == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgMissingMunici})
		return
	}
	limit := centros.ClampLimit(c.Query("limit"))
	onlyFP := strings.TrimSpace(c.Query("only_fp")) == "1"

	items, stats := h.centros.Search(c.Request.Context(), municipio, limit, onlyFP)
	if stats.Error != "" {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: stats.Error})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"municipio": municipio,
		"count":     len(items),
		"centros":   items,
		"source":    stats.Source,
	})
}
