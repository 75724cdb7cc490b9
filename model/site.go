package model

// SiteCoordinates is a launch site's position as kept in the coordinate
// table: geodetic latitude/longitude in degrees, altitude in kilometres.
type SiteCoordinates struct {
	LatitudeDeg  float64
	LongitudeDeg float64
	AltitudeKm   float64
}

// ECEF is an Earth-centred Earth-fixed position in kilometres, used by the
// globe map view.
type ECEF struct {
	X float64
	Y float64
	Z float64
}

// LaunchSite is one site from the coordinate table together with its
// continent grouping and derived ECEF position.
type LaunchSite struct {
	Name        string
	Continent   string
	Coordinates SiteCoordinates
	Position    ECEF
}
