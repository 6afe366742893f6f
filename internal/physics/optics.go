package physics

import (
	"math"

	"github.com/optiray/optiray/internal/geometry"
)

// SpeedOfLight in vacuum, m/s.
const SpeedOfLight = 299792458.0

// glassR0 is the Fresnel reflectance of an air/glass interface (n=1.5) at
// normal incidence: ((1-1.5)/(1+1.5))^2.
const glassR0 = 0.04

// WavelengthToFrequencyTHz converts a wavelength in nanometers to a
// frequency in terahertz.
func WavelengthToFrequencyTHz(wavelengthNm float64) float64 {
	if wavelengthNm <= 0 {
		return 0
	}
	return SpeedOfLight / (wavelengthNm * 1e-9) / 1e12
}

// FresnelReflectance returns the unpolarized Fresnel power reflectance for a
// ray crossing from refractive index n1 into n2 at the given incidence angle
// (radians). Averages the s and p polarizations.
func FresnelReflectance(incidentRad, n1, n2 float64) float64 {
	cosI := math.Cos(incidentRad)
	sinT := n1 / n2 * math.Sin(incidentRad)
	if sinT >= 1 {
		return 1 // total internal reflection
	}
	cosT := math.Sqrt(1 - sinT*sinT)

	rs := (n1*cosI - n2*cosT) / (n1*cosI + n2*cosT)
	rp := (n1*cosT - n2*cosI) / (n1*cosT + n2*cosI)
	return (rs*rs + rp*rp) / 2
}

// Refract applies Snell's law to an incidence angle in radians. The second
// return value is false on total internal reflection.
func Refract(incidentRad, n1, n2 float64) (float64, bool) {
	sinT := n1 / n2 * math.Sin(incidentRad)
	if math.Abs(sinT) >= 1 {
		return 0, false
	}
	return math.Asin(sinT), true
}

// schlickWeight is the (1-cosθ)^5 grazing-angle weight from Schlick's
// approximation.
func schlickWeight(cosTheta float64) float64 {
	c := 1 - clamp01(cosTheta)
	return c * c * c * c * c
}

// angleLossFactor attenuates a mirror bounce as incidence moves away from
// normal. It is 1 at normal incidence and falls toward glassR0 at grazing.
func angleLossFactor(cosTheta float64) float64 {
	return 1 - schlickWeight(cosTheta)*(1-glassR0)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// intersectLine returns the parameters (t, s) such that
// p0 + t·d == c + s·q, or ok=false when d and q are parallel.
func intersectLine(p0, d, c, q geometry.Vec2) (t, s float64, ok bool) {
	denom := d.Cross(q)
	if math.Abs(denom) < 1e-12 {
		return 0, 0, false
	}
	w := c.Sub(p0)
	return w.Cross(q) / denom, w.Cross(d) / denom, true
}
