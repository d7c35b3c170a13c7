package ring

import (
	"fmt"

	"github.com/latticekit/ringlwe/utils/sampling"
)

const (
	discreteGaussianName = "DiscreteGaussian"
	ternaryDistName      = "Ternary"
	uniformDistName      = "Uniform"
)

// Sampler is an interface for random polynomial samplers.
// It has a single Read method which takes as argument the polynomial to be
// populated according to the Sampler's distribution.
type Sampler interface {
	Read(pol Poly)
	ReadNew() (pol Poly)
	ReadAndAdd(pol Poly)
}

// DistributionParameters is an interface for distribution parameters in the
// ring. There are three implementations of this interface:
//   - DiscreteGaussian for sampling polynomials with discretized Gaussian
//     coefficients of given standard deviation and bound.
//   - Ternary for sampling polynomials with coefficients in [-1, 1].
//   - Uniform for sampling polynomials with uniformly random coefficients
//     in the ring.
type DistributionParameters interface {
	// Type returns a string representation of the distribution name.
	Type() string
	mustBeDist()
}

// DiscreteGaussian represents the parameters of a discrete Gaussian
// distribution with standard deviation Sigma and bounds [-Bound, Bound].
type DiscreteGaussian struct {
	Sigma float64
	Bound float64
}

// Ternary represents the parameters of a distribution with coefficients in
// [-1, 0, 1], where each coefficient is non-zero with probability P (and
// then 1 or -1 with equal probability).
type Ternary struct {
	P float64
}

// Uniform represents the parameters of a uniform distribution, i.e., with
// coefficients uniformly distributed in [0, q).
type Uniform struct{}

func (d DiscreteGaussian) Type() string {
	return discreteGaussianName
}

func (d DiscreteGaussian) mustBeDist() {}

func (d Ternary) Type() string {
	return ternaryDistName
}

func (d Ternary) mustBeDist() {}

func (d Uniform) Type() string {
	return uniformDistName
}

func (d Uniform) mustBeDist() {}

// NewSampler instantiates the sampler matching the provided distribution
// parameters, drawing its randomness from prng.
func NewSampler(prng sampling.PRNG, baseRing *Ring, X DistributionParameters) (Sampler, error) {
	switch X := X.(type) {
	case DiscreteGaussian:
		return NewGaussianSampler(prng, baseRing, X), nil
	case Ternary:
		return NewTernarySampler(prng, baseRing, X)
	case Uniform:
		return NewUniformSampler(prng, baseRing), nil
	default:
		return nil, fmt.Errorf("invalid distribution: want ring.DiscreteGaussian, ring.Ternary or ring.Uniform but have %T", X)
	}
}

type baseSampler struct {
	prng     sampling.PRNG
	baseRing *Ring
}

type randomBuffer struct {
	randomBufferN []byte
	ptr           int
}

func newRandomBuffer() *randomBuffer {
	return &randomBuffer{
		randomBufferN: make([]byte, 1024),
	}
}

// refill reads a fresh buffer of random bytes from the PRNG.
func (b *randomBuffer) refill(prng sampling.PRNG) {
	if _, err := prng.Read(b.randomBufferN); err != nil {
		// Sanity check, this error should not happen.
		panic(err)
	}
	b.ptr = 0
}
