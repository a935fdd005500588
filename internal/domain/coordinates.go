package domain

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Location is an addressable point a vehicle can visit.
// Two locations are the same place iff their IDs match; coordinates are informative only.
type Location struct {
	ID     string
	Coords Coordinates
}

func NewLocation(id string) Location { return Location{ID: id} }

// Equal compares locations by identifier.
func (l Location) Equal(other Location) bool { return l.ID == other.ID }

func (l Location) IsZero() bool { return l.ID == "" }
