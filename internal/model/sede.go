package model

// Sede is one of the clinic's two physical locations.
type Sede string

const (
	SedeNorte Sede = "norte"
	SedeSur   Sede = "sur"
)

func (s Sede) Valid() bool {
	return s == SedeNorte || s == SedeSur
}

func Sedes() []Sede {
	return []Sede{SedeNorte, SedeSur}
}
