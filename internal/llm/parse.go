package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"OrientadorFP_Backend/internal/models"
)

const (
	maxRecommendations = 3
	maxSalidas         = 6

	defaultNotaSalarios = "Rangos salariales orientativos (pueden variar por provincia, experiencia y empresa)."
)

// ErrNoJSON means the model text contained no {...} block at all.
var ErrNoJSON = errors.New("No se encontró un bloque JSON en la respuesta.")

// TryParseJSON decodes the model text as a JSON object. When the text has
// extra prose around it, the span from the first '{' to the last '}' is tried.
func TryParseJSON(text string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err == nil && obj != nil {
		return obj, nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, ErrNoJSON
	}
	obj = nil
	if err := json.Unmarshal([]byte(text[start:end+1]), &obj); err != nil {
		return nil, fmt.Errorf("No se pudo parsear JSON rescatado: %w", err)
	}
	return obj, nil
}

// Normalize coerces whatever the model produced into the response shape the
// UI expects, dropping malformed entries instead of failing.
func Normalize(obj map[string]any) models.Orientation {
	nota := stringify(obj["nota_salarios"])
	if nota == "" {
		nota = defaultNotaSalarios
	}

	recs, _ := obj["recomendaciones"].([]any)
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}

	cleaned := make([]models.Recommendation, 0, len(recs))
	for _, item := range recs {
		r, ok := item.(map[string]any)
		if !ok {
			continue
		}
		cleaned = append(cleaned, models.Recommendation{
			Ciclo:              stringify(r["ciclo"]),
			Grado:              stringify(r["grado"]),
			FamiliaProfesional: stringify(r["familia_profesional"]),
			Motivo:             stringify(r["motivo"]),
			SalidasLaborales:   salidas(r["salidas_laborales"]),
			RangoSalarial:      stringify(r["rango_salarial"]),
			Encaje:             safeInt(r["encaje"]),
		})
	}

	return models.Orientation{NotaSalarios: nota, Recomendaciones: cleaned}
}

func salidas(v any) []string {
	var raw []any
	switch t := v.(type) {
	case string:
		raw = []any{t}
	case []any:
		raw = t
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if str := stringify(s); str != "" {
			out = append(out, str)
		}
		if len(out) == maxSalidas {
			break
		}
	}
	return out
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(b))
	}
}

func safeInt(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0
		}
		return n
	case bool:
		if t {
			return 1
		}
		return 0
	default:
		return 0
	}
}
