// Package physics implements the per-kind optical interaction laws.
//
// The model is a 2-D, scalar-intensity, non-polarized approximation:
//
//   - mirror: specular reflection with a Fresnel-style angle loss and a
//     curvature perturbation derived from the radius of curvature
//   - beamsplitter: one reflected and one transmitted branch, renormalized
//     when the configured coefficients sum above one
//   - lens: thin-lens deflection, linear in the off-axis distance and
//     inversely proportional to the focal length
//   - detector: terminal absorption, reading = intensity × sensitivity
//
// Every interaction is closed-form and multiplicative in intensity; the sum
// of the output intensities never exceeds the input.
package physics
