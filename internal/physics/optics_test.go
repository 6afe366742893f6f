package physics

import (
	"math"
	"testing"
)

func TestWavelengthToFrequency(t *testing.T) {
	freq := WavelengthToFrequencyTHz(550)
	expected := SpeedOfLight / 550e-9 / 1e12

	if math.Abs(freq-expected) > 0.01 {
		t.Errorf("expected %.3f THz, got %.3f", expected, freq)
	}

	red := WavelengthToFrequencyTHz(650)
	if red >= freq {
		t.Errorf("650nm should have lower frequency than 550nm: %.3f >= %.3f", red, freq)
	}
}

func TestWavelengthToFrequencyInvalid(t *testing.T) {
	if WavelengthToFrequencyTHz(0) != 0 {
		t.Error("zero wavelength should map to zero frequency")
	}
	if WavelengthToFrequencyTHz(-10) != 0 {
		t.Error("negative wavelength should map to zero frequency")
	}
}

func TestRefractSnell(t *testing.T) {
	// Air to glass bends toward the normal.
	refracted, ok := Refract(math.Pi/6, 1.0, 1.5)
	if !ok {
		t.Fatal("expected refraction, got total internal reflection")
	}
	if refracted >= math.Pi/6 {
		t.Errorf("refracted angle should be smaller than incident: %f", refracted)
	}
}

func TestRefractTotalInternalReflection(t *testing.T) {
	// Glass to air above the critical angle (~41.8 degrees).
	_, ok := Refract(50*math.Pi/180, 1.5, 1.0)
	if ok {
		t.Error("expected total internal reflection")
	}
}

func TestFresnelNormalIncidence(t *testing.T) {
	r := FresnelReflectance(0, 1.0, 1.5)
	expected := math.Pow((1.0-1.5)/(1.0+1.5), 2)

	if math.Abs(r-expected) > 1e-3 {
		t.Errorf("expected %.4f, got %.4f", expected, r)
	}
}

func TestFresnelGrazing(t *testing.T) {
	grazing := FresnelReflectance(89*math.Pi/180, 1.0, 1.5)
	normal := FresnelReflectance(0, 1.0, 1.5)

	if grazing <= normal {
		t.Errorf("reflectance should rise toward grazing incidence: %f <= %f", grazing, normal)
	}
	if grazing > 1 {
		t.Errorf("reflectance cannot exceed 1, got %f", grazing)
	}
}

func TestAngleLossFactorBounds(t *testing.T) {
	if f := angleLossFactor(1); math.Abs(f-1) > 1e-12 {
		t.Errorf("normal incidence should be lossless, got %f", f)
	}

	prev := 1.1
	for cos := 1.0; cos >= 0; cos -= 0.05 {
		f := angleLossFactor(cos)
		if f > prev+1e-12 {
			t.Fatalf("angle loss should be monotone in cosine, rose at cos=%.2f", cos)
		}
		if f <= 0 || f > 1 {
			t.Fatalf("angle loss out of (0,1] at cos=%.2f: %f", cos, f)
		}
		prev = f
	}
}
