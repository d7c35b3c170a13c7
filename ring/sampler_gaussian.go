package ring

import (
	"encoding/binary"
	"math"

	"github.com/latticekit/ringlwe/utils/sampling"
)

// GaussianSampler keeps the state of a sampler of polynomials with
// coefficients following a rounded Gaussian of standard deviation Sigma,
// truncated to [-Bound, Bound] and folded into the canonical range [0, q).
type GaussianSampler struct {
	*baseSampler
	*randomBuffer
	xe DiscreteGaussian
}

// NewGaussianSampler creates a new instance of GaussianSampler from a PRNG,
// a ring definition and the distribution parameters.
func NewGaussianSampler(prng sampling.PRNG, baseRing *Ring, X DiscreteGaussian) (g *GaussianSampler) {
	g = new(GaussianSampler)
	g.baseSampler = &baseSampler{prng: prng, baseRing: baseRing}
	g.randomBuffer = newRandomBuffer()
	g.xe = X
	return
}

// Read samples a truncated Gaussian polynomial into pol.
func (g *GaussianSampler) Read(pol Poly) {
	g.read(pol, func(a, b, c uint64) uint64 {
		return b
	})
}

// ReadNew samples a new truncated Gaussian polynomial.
func (g *GaussianSampler) ReadNew() (pol Poly) {
	pol = g.baseRing.NewPoly()
	g.Read(pol)
	return
}

// ReadAndAdd samples a truncated Gaussian polynomial and adds it on pol,
// with reduction.
func (g *GaussianSampler) ReadAndAdd(pol Poly) {
	g.read(pol, func(a, b, c uint64) uint64 {
		return CRed(a+b, c)
	})
}

func (g *GaussianSampler) read(pol Poly, f func(a, b, c uint64) uint64) {

	g.baseRing.checkDegree(pol)

	var coeffFlo float64
	var coeffInt, sign uint64

	q := g.baseRing.Modulus
	sigma := g.xe.Sigma
	bound := g.xe.Bound

	for i := 0; i < g.baseRing.N; i++ {

		for {
			coeffFlo, sign = g.normFloat64()

			if coeffInt = uint64(math.Round(coeffFlo * sigma)); float64(coeffInt) <= bound {
				break
			}
		}

		// Folds the signed sample into [0, q): v for positive, q-v for negative.
		if coeffInt == 0 {
			sign = 1
		}

		pol.Coeffs[i] = f(pol.Coeffs[i], (coeffInt*sign)|(q-coeffInt)*(sign^1), q)
	}
}

// normFloat64 returns the absolute value of a standard normal variate and a
// uniformly random sign bit, both derived from the PRNG byte stream with the
// Box-Muller transform.
func (g *GaussianSampler) normFloat64() (float64, uint64) {

	for {
		u1 := g.randFloat64()
		u2 := g.randFloat64()

		if u1 == 0 {
			continue
		}

		norm := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		sign := uint64(1)
		if norm < 0 {
			sign = 0
			norm = -norm
		}

		return norm, sign
	}
}

// randFloat64 returns a uniform float64 in [0, 1) with 53 bits of precision.
func (g *GaussianSampler) randFloat64() float64 {

	if g.ptr == 0 || g.ptr+8 > len(g.randomBufferN) {
		g.refill(g.prng)
	}

	v := binary.BigEndian.Uint64(g.randomBufferN[g.ptr : g.ptr+8])
	g.ptr += 8

	return float64(v>>11) * (1.0 / (1 << 53))
}
