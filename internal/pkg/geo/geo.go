// Package geo decides whether a reported position is on office premises.
package geo

import "math"

const (
	// EarthRadiusMeters is the mean Earth radius used by the Haversine formula.
	EarthRadiusMeters = 6371000

	// DefaultRadiusMeters is the geofence threshold applied when none is configured.
	DefaultRadiusMeters = 50
)

// Point is a WGS84 coordinate pair.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Result is the outcome of a geofence check.
type Result struct {
	DistanceMeters int64
	WithinGeofence bool
}

// Distance returns the great-circle distance in meters between two coordinates.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	lat1Rad := toRadians(lat1)
	lat2Rad := toRadians(lat2)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	a := sinLat*sinLat + sinLon*sinLon*(math.Cos(lat1Rad)*math.Cos(lat2Rad))

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// Check reports the rounded distance between the user and the office and whether it is within
// thresholdMeters. Non-finite coordinates fail closed with a zero distance.
func Check(userLat, userLon, officeLat, officeLon, thresholdMeters float64) Result {
	if !finite(userLat) || !finite(userLon) || !finite(officeLat) || !finite(officeLon) {
		return Result{}
	}
	if !finite(thresholdMeters) || thresholdMeters <= 0 {
		thresholdMeters = DefaultRadiusMeters
	}

	d := math.Round(Distance(userLat, userLon, officeLat, officeLon))
	if !finite(d) {
		return Result{}
	}

	return Result{
		DistanceMeters: int64(d),
		WithinGeofence: d <= thresholdMeters,
	}
}

// Fence is a registered office location with its allowed radius.
type Fence struct {
	Center       Point
	RadiusMeters float64
}

// Check evaluates p against the fence.
func (f Fence) Check(p Point) Result {
	return Check(p.Latitude, p.Longitude, f.Center.Latitude, f.Center.Longitude, f.RadiusMeters)
}

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
