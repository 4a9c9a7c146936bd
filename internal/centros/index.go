// Package centros indexes GVA schools by municipality.
package centros

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"OrientadorFP_Backend/internal/fuzzy"
	"OrientadorFP_Backend/internal/gva"
	"OrientadorFP_Backend/internal/metrics"
	"OrientadorFP_Backend/internal/models"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	dataset = "centros"

	DefaultLimit = 25
	MaxLimit     = 100

	// MinFPScore is the heuristic score from which a school is assumed to teach FP.
	MinFPScore = 10
)

var requiredColumns = []string{"denominacion", "direccion", "localidad"}

type Downloader interface {
	FirstAvailable(ctx context.Context, urls ...string) ([]byte, string, error)
}

type snapshot struct {
	byLocalidad map[string][]models.Centro
	total       int
	loadedAt    time.Time
	source      string
	err         string
}

type Stats struct {
	Localidades int       `json:"localidades"`
	Centros     int       `json:"centros"`
	Source      string    `json:"source"`
	Error       string    `json:"error"`
	LoadedAt    time.Time `json:"loaded_at"`
}

type Index struct {
	fetcher Downloader
	url     string
	ttl     time.Duration
	logger  *zap.Logger
	now     func() time.Time

	group singleflight.Group
	mu    sync.RWMutex
	snap  *snapshot
}

func New(fetcher Downloader, url string, ttl time.Duration, logger *zap.Logger) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Index{
		fetcher: fetcher,
		url:     url,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
		snap:    &snapshot{},
	}
}

func (idx *Index) current() *snapshot {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.snap
}

func (idx *Index) fresh(s *snapshot) bool {
	return len(s.byLocalidad) > 0 && idx.now().Sub(s.loadedAt) < idx.ttl
}

// Ensure loads the dataset when forced, empty or older than the TTL.
func (idx *Index) Ensure(ctx context.Context, force bool) {
	if !force && idx.fresh(idx.current()) {
		return
	}
	key := "load"
	if force {
		key = "force"
	}
	ctx = context.WithoutCancel(ctx)
	_, _, _ = idx.group.Do(key, func() (any, error) {
		if !force && idx.fresh(idx.current()) {
			return nil, nil
		}
		idx.reload(ctx)
		return nil, nil
	})
}

func (idx *Index) reload(ctx context.Context) {
	next := &snapshot{loadedAt: idx.now()}
	defer func() {
		idx.mu.Lock()
		idx.snap = next
		idx.mu.Unlock()
		metrics.IndexEntries.WithLabelValues(dataset).Set(float64(next.total))
	}()

	body, source, err := idx.fetcher.FirstAvailable(ctx, idx.url)
	if err != nil {
		next.err = fmt.Sprintf("No se pudo descargar CSV centros. Error: %v", err)
		idx.logger.Warn("centros index download failed", zap.Error(err))
		metrics.IndexLoads.WithLabelValues(dataset, "error").Inc()
		return
	}
	next.source = source

	table, err := gva.ReadTable(gva.Decode(body), requiredColumns...)
	if err != nil {
		var mc *gva.MissingColumnsError
		if errors.As(err, &mc) {
			detected := mc.Detected
			if len(detected) > 30 {
				detected = detected[:30]
			}
			next.err = fmt.Sprintf("CSV centros descargado pero faltan columnas: %v. Columnas detectadas: %v", mc.Missing, detected)
		} else {
			next.err = err.Error()
		}
		idx.logger.Warn("centros index parse failed", zap.Error(err))
		metrics.IndexLoads.WithLabelValues(dataset, "error").Inc()
		return
	}

	next.byLocalidad, next.total = build(table.Rows)
	idx.logger.Info("centros index loaded",
		zap.String("source", source),
		zap.Int("localidades", len(next.byLocalidad)),
		zap.Int("centros", next.total),
	)
	metrics.IndexLoads.WithLabelValues(dataset, "ok").Inc()
}

func build(rows []map[string]string) (map[string][]models.Centro, int) {
	idx := make(map[string][]models.Centro)
	total := 0
	for _, row := range rows {
		localidad := strings.TrimSpace(row["localidad"])
		if localidad == "" {
			continue
		}
		c := models.Centro{
			Codigo:     row["codigo"],
			Nombre:     strings.TrimSpace(row["denominacion"]),
			Tipo:       strings.TrimSpace(row["denominacion_generica_es"]),
			Regimen:    strings.TrimSpace(row["regimen"]),
			Direccion:  strings.TrimSpace(row["direccion"]),
			Numero:     strings.TrimSpace(row["numero"]),
			CP:         row["codigo_postal"],
			Localidad:  localidad,
			Provincia:  strings.TrimSpace(row["provincia"]),
			Telefono:   strings.TrimSpace(row["telefono"]),
			URL:        strings.TrimSpace(row["url_es"]),
			Lat:        parseCoord(row["latitud"]),
			Lon:        parseCoord(row["longitud"]),
			Especifica: strings.TrimSpace(row["denominacion_especifica"]),
		}
		switch c.Telefono {
		case "0", "0.0", "nan", "None":
			c.Telefono = ""
		}
		switch c.URL {
		case "nan", "None":
			c.URL = ""
		}

		key := fuzzy.Normalize(localidad)
		idx[key] = append(idx[key], c)
		total++
	}

	for _, list := range idx {
		sort.SliceStable(list, func(i, j int) bool {
			si, sj := FPScore(list[i]), FPScore(list[j])
			if si != sj {
				return si > sj
			}
			return strings.ToLower(list[i].Nombre) < strings.ToLower(list[j].Nombre)
		})
	}
	return idx, total
}

func parseCoord(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) {
		return nil
	}
	return &v
}

// FPScore ranks how likely a school is to teach FP. The dataset has no
// explicit flag, so it relies on the school's type and name.
func FPScore(c models.Centro) int {
	hay := strings.ToUpper(strings.Join([]string{c.Tipo, c.Especifica, c.Nombre}, " "))

	score := 0
	if strings.Contains(hay, "CIPFP") || strings.Contains(hay, "CENTRE INTEGRAT") || strings.Contains(hay, "CENTRO INTEGRADO") {
		score += 50
	}
	if strings.Contains(hay, "FORMACIÓN PROFESIONAL") || strings.Contains(hay, "FORMACION PROFESIONAL") {
		score += 35
	}
	if strings.Contains(hay, "FP") {
		score += 10
	}
	if strings.Contains(hay, "IES") || strings.Contains(hay, "INSTITUTO") {
		score += 6
	}
	return score
}

// ClampLimit parses a limit query value: default when empty or invalid,
// clamped to [1, MaxLimit].
func ClampLimit(raw string) int {
	lim := DefaultLimit
	if raw = strings.TrimSpace(raw); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			lim = n
		}
	}
	return max(1, min(lim, MaxLimit))
}

// Search returns up to limit schools of municipio, likely FP schools first.
// With onlyFP, schools scoring below MinFPScore are dropped.
func (idx *Index) Search(ctx context.Context, municipio string, limit int, onlyFP bool) ([]models.Centro, Stats) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	idx.Ensure(ctx, false)
	s := idx.current()

	items := s.byLocalidad[fuzzy.Normalize(municipio)]
	out := make([]models.Centro, 0, min(len(items), limit))
	for _, c := range items {
		if len(out) >= limit {
			break
		}
		if onlyFP && FPScore(c) < MinFPScore {
			continue
		}
		out = append(out, c)
	}
	return out, statsOf(s)
}

func (idx *Index) Stats() Stats {
	return statsOf(idx.current())
}

func statsOf(s *snapshot) Stats {
	return Stats{
		Localidades: len(s.byLocalidad),
		Centros:     s.total,
		Source:      s.source,
		Error:       s.err,
		LoadedAt:    s.loadedAt,
	}
}
