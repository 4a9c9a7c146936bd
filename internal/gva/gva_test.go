package gva

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	assert.Equal(t, "Alacant", Decode([]byte("\xEF\xBB\xBFAlacant")))
	assert.Equal(t, "València", Decode([]byte("València")))
	// Latin-1 "Castelló" (ó = 0xF3)
	assert.Equal(t, "Castelló", Decode([]byte{'C', 'a', 's', 't', 'e', 'l', 'l', 0xF3}))
}

func TestReadTableSemicolon(t *testing.T) {
	text := "NOM_CICLO;NOM_GRADO;NOM_MUN\nCocina;Medio;Valencia\nAdministración;Superior;Elche\n"
	tbl, err := ReadTable(text, "NOM_CICLO", "NOM_MUN", "NOM_GRADO")
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "Elche", tbl.Rows[1]["NOM_MUN"])
}

func TestReadTableComma(t *testing.T) {
	text := "denominacion,direccion,localidad\n\"IES Uno, Dos\",Calle Mayor,ALZIRA\n"
	tbl, err := ReadTable(text, "denominacion", "direccion", "localidad")
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "IES Uno, Dos", tbl.Rows[0]["denominacion"])
	assert.Equal(t, "ALZIRA", tbl.Rows[0]["localidad"])
}

func TestReadTableShortRows(t *testing.T) {
	text := "a;b;c\n1;2\n"
	tbl, err := ReadTable(text, "a")
	require.NoError(t, err)
	assert.Equal(t, "2", tbl.Rows[0]["b"])
	_, ok := tbl.Rows[0]["c"]
	assert.False(t, ok)
}

func TestReadTableMissingColumns(t *testing.T) {
	_, err := ReadTable("X;NOM_MUN\n1;2\n", "NOM_CICLO", "NOM_MUN", "NOM_GRADO")
	var mc *MissingColumnsError
	require.True(t, errors.As(err, &mc))
	assert.Equal(t, []string{"NOM_CICLO", "NOM_GRADO"}, mc.Missing)
	assert.Equal(t, []string{"NOM_MUN", "X"}, mc.Detected)
	assert.Contains(t, err.Error(), "faltan columnas")
}

func TestFetcherDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "text/csv,*/*", r.Header.Get("Accept"))
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("a;b\n1;2\n"))
	}))
	defer srv.Close()

	f := NewFetcher(5 * time.Second)
	ctx := context.Background()

	body, err := f.Download(ctx, srv.URL+"/ok.csv")
	require.NoError(t, err)
	assert.Equal(t, "a;b\n1;2\n", string(body))

	_, err = f.Download(ctx, srv.URL+"/missing")
	assert.Error(t, err)

	body, source, err := f.FirstAvailable(ctx, srv.URL+"/missing", srv.URL+"/ok.csv")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/ok.csv", source)
	assert.NotEmpty(t, body)

	_, _, err = f.FirstAvailable(ctx, srv.URL+"/missing")
	assert.Error(t, err)

	_, _, err = f.FirstAvailable(ctx)
	assert.Error(t, err)
}
