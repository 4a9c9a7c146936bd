package models

// Recommendation is one suggested FP cycle.
type Recommendation struct {
	Ciclo              string   `json:"ciclo"`
	Grado              string   `json:"grado"`
	FamiliaProfesional string   `json:"familia_profesional"`
	Motivo             string   `json:"motivo"`
	SalidasLaborales   []string `json:"salidas_laborales"`
	RangoSalarial      string   `json:"rango_salarial"`
	Encaje             int      `json:"encaje"`
}

// Orientation is the normalized model answer returned to the questionnaire UI.
type Orientation struct {
	NotaSalarios    string           `json:"nota_salarios"`
	Recomendaciones []Recommendation `json:"recomendaciones"`
}
