// Package fpindex answers "in which municipalities is this FP cycle taught?"
// from the GVA enrolment dataset.
package fpindex

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"OrientadorFP_Backend/internal/fuzzy"
	"OrientadorFP_Backend/internal/gva"
	"OrientadorFP_Backend/internal/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	dataset = "fp"

	// MinScore is the fuzzy score below which a cycle or grade is not accepted.
	MinScore = 55

	Matcher = "token_set_ratio"
)

var requiredColumns = []string{"NOM_CICLO", "NOM_MUN", "NOM_GRADO"}

// Downloader fetches the first reachable CSV among several mirrors.
type Downloader interface {
	FirstAvailable(ctx context.Context, urls ...string) ([]byte, string, error)
}

type pairKey struct {
	ciclo string
	grado string
}

type snapshot struct {
	byPair     map[pairKey]map[string]struct{}
	byCycle    map[string]map[string]struct{}
	cycles     []string
	municipios []string
	loadedAt   time.Time
	source     string
	err        string
}

func (s *snapshot) empty() bool {
	return len(s.byPair) == 0 && len(s.byCycle) == 0
}

// MatchInfo explains how a requested cycle/grade was resolved.
type MatchInfo struct {
	Matcher      string `json:"matcher"`
	MatchedCiclo string `json:"matched_ciclo"`
	MatchScore   int    `json:"match_score"`
	MatchedGrado string `json:"matched_grado"`
	GradoScore   int    `json:"grado_score"`
}

// Stats describes the currently loaded index.
type Stats struct {
	Pairs      int       `json:"index_pairs"`
	Cycles     int       `json:"index_cycles"`
	Municipios int       `json:"municipios_count"`
	Source     string    `json:"source"`
	Error      string    `json:"error"`
	LoadedAt   time.Time `json:"loaded_at"`
}

// Index is safe for concurrent use. Loads are lazy and shared between
// concurrent callers.
type Index struct {
	fetcher Downloader
	sources []string
	ttl     time.Duration
	logger  *zap.Logger
	now     func() time.Time

	group singleflight.Group
	mu    sync.RWMutex
	snap  *snapshot
}

func New(fetcher Downloader, sources []string, ttl time.Duration, logger *zap.Logger) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Index{
		fetcher: fetcher,
		sources: sources,
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
	return len(s.byPair) > 0 && idx.now().Sub(s.loadedAt) < idx.ttl
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
	now := idx.now()
	next := &snapshot{loadedAt: now}
	defer func() {
		idx.mu.Lock()
		idx.snap = next
		idx.mu.Unlock()
		metrics.IndexEntries.WithLabelValues(dataset).Set(float64(len(next.byPair)))
	}()

	body, source, err := idx.fetcher.FirstAvailable(ctx, idx.sources...)
	if err != nil {
		next.err = fmt.Sprintf("No se pudo descargar CSV GVA (2025/2024). Error: %v", err)
		idx.logger.Warn("fp index download failed", zap.Error(err))
		metrics.IndexLoads.WithLabelValues(dataset, "error").Inc()
		return
	}
	next.source = source

	table, err := gva.ReadTable(gva.Decode(body), requiredColumns...)
	if err != nil {
		var mc *gva.MissingColumnsError
		if errors.As(err, &mc) {
			next.err = mc.Error()
		} else {
			next.err = err.Error()
		}
		idx.logger.Warn("fp index parse failed", zap.String("source", source), zap.Error(err))
		metrics.IndexLoads.WithLabelValues(dataset, "error").Inc()
		return
	}

	build(next, table.Rows)
	idx.logger.Info("fp index loaded",
		zap.String("source", source),
		zap.Int("pairs", len(next.byPair)),
		zap.Int("cycles", len(next.byCycle)),
		zap.Int("municipios", len(next.municipios)),
	)
	metrics.IndexLoads.WithLabelValues(dataset, "ok").Inc()
}

func build(s *snapshot, rows []map[string]string) {
	s.byPair = make(map[pairKey]map[string]struct{})
	s.byCycle = make(map[string]map[string]struct{})
	municipios := make(map[string]struct{})

	for _, row := range rows {
		ciclo := fuzzy.Normalize(row["NOM_CICLO"])
		grado := fuzzy.Normalize(row["NOM_GRADO"])
		mun := strings.TrimSpace(row["NOM_MUN"])

		if mun != "" {
			municipios[mun] = struct{}{}
		}
		if ciclo == "" || mun == "" {
			continue
		}
		addTo(s.byPair, pairKey{ciclo, grado}, mun)
		addTo(s.byCycle, ciclo, mun)
	}

	s.cycles = sortedKeys(s.byCycle)
	s.municipios = sortedKeys(municipios)
}

// FindCities resolves ciclo/grado against the dataset, exactly first and
// fuzzily otherwise, and returns the sorted municipalities offering it.
func (idx *Index) FindCities(ctx context.Context, ciclo, grado string) ([]string, MatchInfo) {
	cicloN := fuzzy.Normalize(ciclo)
	gradoN := fuzzy.Normalize(grado)

	idx.Ensure(ctx, false)
	s := idx.current()

	info := MatchInfo{Matcher: Matcher}
	if s.empty() {
		return []string{}, info
	}

	if cicloN != "" && gradoN != "" {
		if exact := s.byPair[pairKey{cicloN, gradoN}]; len(exact) > 0 {
			info.MatchedCiclo, info.MatchScore = cicloN, 100
			info.MatchedGrado, info.GradoScore = gradoN, 100
			return sortedKeys(exact), info
		}
	}

	if cicloN != "" {
		if anyGrade := s.byCycle[cicloN]; len(anyGrade) > 0 {
			info.MatchedCiclo, info.MatchScore = cicloN, 100
			return sortedKeys(anyGrade), info
		}
	}

	if cicloN == "" {
		return []string{}, info
	}
	matched, score := fuzzy.ExtractOne(cicloN, s.cycles)
	info.MatchedCiclo, info.MatchScore = matched, score
	if matched == "" || score < MinScore {
		return []string{}, info
	}

	if gradoN != "" {
		var grados []string
		for k := range s.byPair {
			if k.ciclo == matched {
				grados = append(grados, k.grado)
			}
		}
		sort.Strings(grados)

		if len(grados) > 0 {
			g, gscore := fuzzy.ExtractOne(gradoN, grados)
			info.MatchedGrado, info.GradoScore = g, gscore
			if g != "" && gscore >= MinScore {
				if cities := s.byPair[pairKey{matched, g}]; len(cities) > 0 {
					return sortedKeys(cities), info
				}
			}
		}
	}

	return sortedKeys(s.byCycle[matched]), info
}

// Municipios returns every municipality in the dataset, sorted.
func (idx *Index) Municipios(ctx context.Context) ([]string, Stats) {
	idx.Ensure(ctx, false)
	s := idx.current()
	return append([]string{}, s.municipios...), statsOf(s)
}

// Stats reports the loaded index without triggering a load.
func (idx *Index) Stats() Stats {
	return statsOf(idx.current())
}

func statsOf(s *snapshot) Stats {
	return Stats{
		Pairs:      len(s.byPair),
		Cycles:     len(s.byCycle),
		Municipios: len(s.municipios),
		Source:     s.source,
		Error:      s.err,
		LoadedAt:   s.loadedAt,
	}
}

func addTo[K comparable](m map[K]map[string]struct{}, k K, v string) {
	set, ok := m[k]
	if !ok {
		set = make(map[string]struct{})
		m[k] = set
	}
	set[v] = struct{}{}
}

func sortedKeys[K any](m map[string]K) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
