// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package signin

import "math"

// WGS-84 ellipsoid.
const (
	wgs84SemiMajor  = 6378137.0
	wgs84Flattening = 1 / 298.257223563
	wgs84SemiMinor  = wgs84SemiMajor * (1 - wgs84Flattening)

	// meanEarthRadiusKm is used by the spherical fallback.
	meanEarthRadiusKm = 6371.0088

	vincentyMaxIterations = 200
	vincentyTolerance     = 1e-12
)

// DistanceKm returns the geodesic distance in kilometers between two points
// on the WGS-84 ellipsoid, using Vincenty's inverse formula. For nearly
// antipodal points where the iteration does not converge, the great-circle
// distance on a sphere of mean Earth radius is returned instead.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}
	if m, ok := vincentyInverse(lat1, lon1, lat2, lon2); ok {
		return m / 1000
	}
	return haversineKm(lat1, lon1, lat2, lon2)
}

func vincentyInverse(lat1, lon1, lat2, lon2 float64) (float64, bool) {
	const (
		a = wgs84SemiMajor
		b = wgs84SemiMinor
		f = wgs84Flattening
	)

	L := toRadians(math.Remainder(lon2-lon1, 360))
	U1 := math.Atan((1 - f) * math.Tan(toRadians(lat1)))
	U2 := math.Atan((1 - f) * math.Tan(toRadians(lat2)))
	sinU1, cosU1 := math.Sincos(U1)
	sinU2, cosU2 := math.Sincos(U2)

	var (
		sinSigma, cosSigma, sigma float64
		cosSqAlpha, cos2SigmaM    float64
	)

	lambda := L
	converged := false
	for i := 0; i < vincentyMaxIterations; i++ {
		sinLambda, cosLambda := math.Sincos(lambda)
		t1 := cosU2 * sinLambda
		t2 := cosU1*sinU2 - sinU1*cosU2*cosLambda
		sinSigma = math.Sqrt(t1*t1 + t2*t2)
		if sinSigma == 0 {
			return 0, true
		}
		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)
		sinAlpha := cosU1 * cosU2 * sinLambda / sinSigma
		cosSqAlpha = 1 - sinAlpha*sinAlpha
		if cosSqAlpha != 0 {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cosSqAlpha
		} else {
			// equatorial line
			cos2SigmaM = 0
		}
		C := f / 16 * cosSqAlpha * (4 + f*(4-3*cosSqAlpha))
		prev := lambda
		lambda = L + (1-C)*f*sinAlpha*
			(sigma+C*sinSigma*(cos2SigmaM+C*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))
		if math.Abs(lambda) > math.Pi {
			return 0, false
		}
		if math.Abs(lambda-prev) < vincentyTolerance {
			converged = true
			break
		}
	}
	if !converged {
		return 0, false
	}

	uSq := cosSqAlpha * (a*a - b*b) / (b * b)
	A := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	B := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
	deltaSigma := B * sinSigma * (cos2SigmaM + B/4*(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
		B/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))

	s := b * A * (sigma - deltaSigma)
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 0, false
	}
	return s, true
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return meanEarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
