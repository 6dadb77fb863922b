package models

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// NewSphere builds a UV sphere of radius 1 centered on the origin. The
// seam column is duplicated so U runs 0..1 without wrapping. Stacks is
// clamped to at least 2 and slices to at least 3.
func NewSphere(stacks, slices int) *Mesh {
	stacks = max(stacks, 2)
	slices = max(slices, 3)
	m := NewMesh("sphere")

	for i := 0; i <= stacks; i++ {
		theta := math.Pi * float64(i) / float64(stacks)
		for j := 0; j <= slices; j++ {
			phi := 2 * math.Pi * float64(j) / float64(slices)
			p := math3d.V3(math.Sin(theta)*math.Sin(phi), math.Cos(theta), math.Sin(theta)*math.Cos(phi))
			m.AddVertex(MeshVertex{
				Position: p,
				Normal:   p,
				UV:       math3d.V2(float64(j)/float64(slices), float64(i)/float64(stacks)),
			})
		}
	}

	row := slices + 1
	for i := range stacks {
		for j := range slices {
			a := i*row + j
			b := a + row
			// Pole rows collapse to one triangle per quad
			if i > 0 {
				m.AddFace(a, b, a+1)
			}
			if i < stacks-1 {
				m.AddFace(a+1, b, b+1)
			}
		}
	}

	m.CalculateBounds()
	return m
}

// NewRing builds a flat annulus in the XZ plane facing +Y. Texture
// coordinates map X and Z from [-1, 1] onto [0, 1], so a fragment's local
// coordinate is its object-space (x, z).
func NewRing(inner, outer float64, segments int) *Mesh {
	if inner > outer {
		inner, outer = outer, inner
	}
	inner = max(inner, 0)
	segments = max(segments, 3)
	m := NewMesh("ring")

	up := math3d.V3(0, 1, 0)
	for j := 0; j <= segments; j++ {
		phi := 2 * math.Pi * float64(j) / float64(segments)
		c, s := math.Cos(phi), math.Sin(phi)
		for _, r := range [2]float64{inner, outer} {
			x, z := r*c, r*s
			m.AddVertex(MeshVertex{
				Position: math3d.V3(x, 0, z),
				Normal:   up,
				UV:       math3d.V2(0.5+0.5*x, 0.5+0.5*z),
			})
		}
	}

	for j := range segments {
		in0, out0 := 2*j, 2*j+1
		in1, out1 := in0+2, out0+2
		m.AddFace(in0, in1, out0)
		m.AddFace(out0, in1, out1)
	}

	m.CalculateBounds()
	return m
}
