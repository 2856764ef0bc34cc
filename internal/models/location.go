package models

// Location is a GeoJSON point as stored in MongoDB: coordinates are
// [longitude, latitude].
type Location struct {
	Type        string    `json:"type" bson:"type" default:"Point"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates" validate:"required,len=2"`
	Address     string    `json:"address" bson:"address"`
}

func NewLocation(longitude, latitude float64, address string) Location {
	return Location{
		Type:        "Point",
		Coordinates: []float64{longitude, latitude},
		Address:     address,
	}
}

func (l Location) Latitude() float64 {
	if len(l.Coordinates) >= 2 {
		return l.Coordinates[1]
	}
	return 0
}

func (l Location) Longitude() float64 {
	if len(l.Coordinates) >= 1 {
		return l.Coordinates[0]
	}
	return 0
}
