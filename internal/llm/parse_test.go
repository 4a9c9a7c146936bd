package llm

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt(json.RawMessage(`{"nombre":"Lucía","intereses":["cocina","informática"],"edad":17}`))

	assert.Contains(t, p, "EXACTAMENTE 3 ciclos formativos de la COMUNIDAD VALENCIANA")
	assert.Contains(t, p, "RESPUESTAS DEL ALUMNO (JSON):\n{\n  \"nombre\": \"Lucía\",\n  \"intereses\": [")
	assert.Less(t, strings.Index(p, "\"nombre\""), strings.Index(p, "\"edad\""))
	assert.NotEqual(t, ' ', p[0])
}

func TestBuildPromptKeepsInvalidInput(t *testing.T) {
	p := BuildPrompt(json.RawMessage(`not-json`))
	assert.Contains(t, p, "RESPUESTAS DEL ALUMNO (JSON):\nnot-json")
}

func TestTryParseJSON(t *testing.T) {
	obj, err := TryParseJSON(`{"a":1}`)
	require.NoError(t, err)
	assert.Equal(t, 1.0, obj["a"])

	obj, err = TryParseJSON("Aquí tienes:\n```json\n{\"a\": {\"b\": 2}}\n```")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"b": 2.0}, obj["a"])

	_, err = TryParseJSON("sin json")
	assert.True(t, errors.Is(err, ErrNoJSON))
	assert.Equal(t, "No se encontró un bloque JSON en la respuesta.", err.Error())

	_, err = TryParseJSON("} al revés {")
	assert.True(t, errors.Is(err, ErrNoJSON))

	_, err = TryParseJSON(`texto {"a": } fin`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No se pudo parsear JSON rescatado")
}

func TestNormalize(t *testing.T) {
	obj, err := TryParseJSON(`{
		"nota_salarios": "  ",
		"recomendaciones": [
			{
				"ciclo": " Desarrollo de Aplicaciones Web ",
				"grado": "Superior",
				"familia_profesional": "Informática y Comunicaciones",
				"motivo": "Te gusta programar.",
				"salidas_laborales": ["Programador web", " ", "Desarrollador front-end", "a", "b", "c", "d", "e"],
				"rango_salarial": "20.000–28.000 €/año",
				"encaje": 92.7
			},
			"no es un objeto",
			{
				"ciclo": "Cocina y Gastronomía",
				"grado": null,
				"salidas_laborales": "Cocinero",
				"encaje": "80"
			},
			{"ciclo": "Cuarto", "encaje": "alto"}
		]
	}`)
	require.NoError(t, err)

	got := Normalize(obj)
	assert.Equal(t, defaultNotaSalarios, got.NotaSalarios)
	require.Len(t, got.Recomendaciones, 2)

	first := got.Recomendaciones[0]
	assert.Equal(t, "Desarrollo de Aplicaciones Web", first.Ciclo)
	assert.Equal(t, 92, first.Encaje)
	assert.Equal(t, []string{"Programador web", "Desarrollador front-end", "a", "b", "c", "d"}, first.SalidasLaborales)

	second := got.Recomendaciones[1]
	assert.Equal(t, "Cocina y Gastronomía", second.Ciclo)
	assert.Empty(t, second.Grado)
	assert.Equal(t, []string{"Cocinero"}, second.SalidasLaborales)
	assert.Equal(t, 80, second.Encaje)
	assert.Empty(t, second.FamiliaProfesional)
}

func TestNormalizeOddShapes(t *testing.T) {
	got := Normalize(map[string]any{
		"nota_salarios":   "Estimaciones.",
		"recomendaciones": "none",
	})
	assert.Equal(t, "Estimaciones.", got.NotaSalarios)
	assert.NotNil(t, got.Recomendaciones)
	assert.Empty(t, got.Recomendaciones)

	got = Normalize(map[string]any{
		"recomendaciones": []any{map[string]any{
			"ciclo":             42.0,
			"salidas_laborales": map[string]any{"x": 1},
			"encaje":            true,
		}},
	})
	require.Len(t, got.Recomendaciones, 1)
	assert.Equal(t, "42", got.Recomendaciones[0].Ciclo)
	assert.Empty(t, got.Recomendaciones[0].SalidasLaborales)
	assert.NotNil(t, got.Recomendaciones[0].SalidasLaborales)
	assert.Equal(t, 1, got.Recomendaciones[0].Encaje)
}
