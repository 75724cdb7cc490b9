package sites

import (
	"math"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/signalsfoundry/orbital-atlas/model"
)

// ecefPosition converts a site's geodetic coordinates to an ECEF vector in
// kilometres for the globe view. Sites are fixed to the Earth, so the
// LLA→ECI→ECEF round trip is evaluated at a single fixed epoch (J2000);
// the sidereal rotation cancels out of the result.
func ecefPosition(c model.SiteCoordinates) model.ECEF {
	const degToRad = math.Pi / 180.0

	jday := satellite.JDay(2000, 1, 1, 12, 0, 0)
	eci := satellite.LLAToECI(satellite.LatLong{
		Latitude:  c.LatitudeDeg * degToRad,
		Longitude: c.LongitudeDeg * degToRad,
	}, c.AltitudeKm, jday)

	gmst := satellite.ThetaG_JD(jday)
	ecef := satellite.ECIToECEF(eci, gmst)

	return model.ECEF{X: ecef.X, Y: ecef.Y, Z: ecef.Z}
}
