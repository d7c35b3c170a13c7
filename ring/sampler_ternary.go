package ring

import (
	"encoding/binary"
	"fmt"

	"github.com/latticekit/ringlwe/utils/sampling"
)

// TernarySampler keeps the state of a sampler of polynomials with
// coefficients in {-1, 0, 1}, where each coefficient is non-zero with
// probability P and its sign is uniform.
type TernarySampler struct {
	*baseSampler
	*randomBuffer
	p float64
}

// NewTernarySampler creates a new instance of TernarySampler from a PRNG, a
// ring definition and the distribution parameters (see type Ternary).
func NewTernarySampler(prng sampling.PRNG, baseRing *Ring, X Ternary) (ts *TernarySampler, err error) {
	if X.P <= 0 || X.P > 1 {
		return nil, fmt.Errorf("invalid Ternary distribution: P=%f must be in (0, 1]", X.P)
	}
	ts = new(TernarySampler)
	ts.baseSampler = &baseSampler{prng: prng, baseRing: baseRing}
	ts.randomBuffer = newRandomBuffer()
	ts.p = X.P
	return
}

// Read samples a ternary polynomial into pol.
func (ts *TernarySampler) Read(pol Poly) {
	ts.read(pol, func(a, b, c uint64) uint64 {
		return b
	})
}

// ReadNew samples a new ternary polynomial.
func (ts *TernarySampler) ReadNew() (pol Poly) {
	pol = ts.baseRing.NewPoly()
	ts.Read(pol)
	return
}

// ReadAndAdd samples a ternary polynomial and adds it on pol, with reduction.
func (ts *TernarySampler) ReadAndAdd(pol Poly) {
	ts.read(pol, func(a, b, c uint64) uint64 {
		return CRed(a+b, c)
	})
}

func (ts *TernarySampler) read(pol Poly, f func(a, b, c uint64) uint64) {

	ts.baseRing.checkDegree(pol)

	q := ts.baseRing.Modulus

	for i := 0; i < ts.baseRing.N; i++ {

		u := ts.randUint64()

		var coeff uint64
		if float64(u>>11)*(1.0/(1<<53)) < ts.p {
			// Non-zero coefficient, sign from a fresh bit.
			if ts.randUint64()&1 == 1 {
				coeff = 1
			} else {
				coeff = q - 1
			}
		}

		pol.Coeffs[i] = f(pol.Coeffs[i], coeff, q)
	}
}

func (ts *TernarySampler) randUint64() uint64 {

	if ts.ptr == 0 || ts.ptr+8 > len(ts.randomBufferN) {
		ts.refill(ts.prng)
	}

	v := binary.BigEndian.Uint64(ts.randomBufferN[ts.ptr : ts.ptr+8])
	ts.ptr += 8

	return v
}
