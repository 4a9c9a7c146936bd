package models

// Centro is a school from the GVA centres dataset.
type Centro struct {
	Codigo    string   `json:"codigo"`
	Nombre    string   `json:"nombre"`
	Tipo      string   `json:"tipo"`
	Regimen   string   `json:"regimen"`
	Direccion string   `json:"direccion"`
	Numero    string   `json:"numero"`
	CP        string   `json:"cp"`
	Localidad string   `json:"localidad"`
	Provincia string   `json:"provincia"`
	Telefono  string   `json:"telefono"`
	URL       string   `json:"url"`
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`

	// used for the FP heuristic only
	Especifica string `json:"-"`
}
