package centros

import (
	"context"
	"errors"
	"testing"
	"time"

	"OrientadorFP_Backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const centrosCSV = `codigo;denominacion_generica_es;denominacion_especifica;denominacion;regimen;direccion;numero;codigo_postal;localidad;provincia;telefono;url_es;latitud;longitud
46001;COLEGIO DE EDUCACIÓN INFANTIL Y PRIMARIA;LES ARRELS;CEIP Les Arrels;Público;Calle A;1;46001;Valencia;Valencia;963000001;nan;39.47;-0.37
46002;INSTITUTO DE EDUCACIÓN SECUNDARIA;BENLLIURE;IES Benlliure;Público;Calle B;2;46002;VALENCIA;Valencia;0;https://ies.example;39.48;-0.38
46003;CENTRO INTEGRADO PÚBLICO DE FORMACIÓN PROFESIONAL;CIUTAT DE L'APRENENT;CIPFP Ciutat de l'Aprenent;Público;Calle C;3;46003;  Valencia ;Valencia;963000003;None;nan;abc
03001;CENTRO PRIVADO DE FORMACIÓN PROFESIONAL ESPECÍFICA;ALICANTE FP;Centro FP Alicante;Privado;Calle D;4;03001;Alicante;Alicante;965000004;;38.34;-0.48
;;;Sin Localidad;;Calle E;;;;;;;;
`

type fakeDownloader struct {
	body  string
	err   error
	calls int
}

func (f *fakeDownloader) FirstAvailable(ctx context.Context, urls ...string) ([]byte, string, error) {
	f.calls++
	if f.err != nil {
		return nil, "", f.err
	}
	return []byte(f.body), urls[0], nil
}

func TestSearchOrdersLikelyFPFirst(t *testing.T) {
	idx := New(&fakeDownloader{body: centrosCSV}, "https://example.test/centros.csv", time.Hour, nil)

	got, stats := idx.Search(context.Background(), "valencia", 25, false)
	require.Len(t, got, 3)
	assert.Equal(t, "CIPFP Ciutat de l'Aprenent", got[0].Nombre)
	assert.Equal(t, "IES Benlliure", got[1].Nombre)
	assert.Equal(t, "CEIP Les Arrels", got[2].Nombre)

	assert.Equal(t, 2, stats.Localidades)
	assert.Equal(t, 4, stats.Centros)
	assert.Equal(t, "https://example.test/centros.csv", stats.Source)
	assert.Empty(t, stats.Error)
}

func TestSearchCleansFields(t *testing.T) {
	idx := New(&fakeDownloader{body: centrosCSV}, "u", time.Hour, nil)

	got, _ := idx.Search(context.Background(), "Valencia", 25, false)
	require.Len(t, got, 3)

	cipfp, ies, ceip := got[0], got[1], got[2]
	assert.Equal(t, "Valencia", cipfp.Localidad)
	assert.Empty(t, cipfp.URL)
	assert.Nil(t, cipfp.Lat)
	assert.Nil(t, cipfp.Lon)

	assert.Empty(t, ies.Telefono)
	assert.Equal(t, "https://ies.example", ies.URL)
	require.NotNil(t, ies.Lat)
	assert.InDelta(t, 39.48, *ies.Lat, 1e-9)

	assert.Equal(t, "963000001", ceip.Telefono)
	assert.Empty(t, ceip.URL)
	assert.Equal(t, "46001", ceip.Codigo)
	assert.Equal(t, "46001", ceip.CP)
}

func TestSearchOnlyFPAndLimit(t *testing.T) {
	idx := New(&fakeDownloader{body: centrosCSV}, "u", time.Hour, nil)
	ctx := context.Background()

	got, _ := idx.Search(ctx, "valencia", 25, true)
	require.Len(t, got, 1)
	assert.Equal(t, "CIPFP Ciutat de l'Aprenent", got[0].Nombre)

	got, _ = idx.Search(ctx, "valencia", 1, false)
	assert.Len(t, got, 1)

	got, _ = idx.Search(ctx, "Xàtiva", 25, false)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestFPScore(t *testing.T) {
	assert.Equal(t, 0, FPScore(models.Centro{Nombre: "CEIP Les Arrels", Tipo: "COLEGIO"}))
	assert.Equal(t, 6, FPScore(models.Centro{Nombre: "IES Benlliure"}))
	assert.Equal(t, 95, FPScore(models.Centro{Nombre: "CIPFP Faitanar", Tipo: "Centro Integrado Público de Formación Profesional"}))
	assert.Equal(t, 45, FPScore(models.Centro{Nombre: "Centro FP", Tipo: "Centro privado de formacion profesional"}))
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 25, ClampLimit(""))
	assert.Equal(t, 25, ClampLimit("abc"))
	assert.Equal(t, 10, ClampLimit(" 10 "))
	assert.Equal(t, 1, ClampLimit("0"))
	assert.Equal(t, 1, ClampLimit("-4"))
	assert.Equal(t, 100, ClampLimit("1000"))
}

func TestDownloadFailure(t *testing.T) {
	d := &fakeDownloader{err: errors.New("timeout")}
	idx := New(d, "u", time.Hour, nil)

	got, stats := idx.Search(context.Background(), "valencia", 25, false)
	assert.Empty(t, got)
	assert.Contains(t, stats.Error, "No se pudo descargar CSV centros")

	d.err = nil
	d.body = centrosCSV
	_, stats = idx.Search(context.Background(), "valencia", 25, false)
	assert.Empty(t, stats.Error)
	assert.Equal(t, 2, d.calls)
}

func TestMissingColumns(t *testing.T) {
	idx := New(&fakeDownloader{body: "nombre;ciudad\nx;y\n"}, "u", time.Hour, nil)

	_, stats := idx.Search(context.Background(), "y", 25, false)
	assert.Contains(t, stats.Error, "CSV centros descargado pero faltan columnas")
	assert.Contains(t, stats.Error, "localidad")
}
