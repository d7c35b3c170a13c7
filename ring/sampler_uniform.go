package ring

import (
	"encoding/binary"

	"github.com/latticekit/ringlwe/utils/sampling"
)

// UniformSampler wraps a sampling.PRNG and represents the state of a sampler
// of polynomials with coefficients uniform over [0, q).
type UniformSampler struct {
	*baseSampler
	*randomBuffer
}

// NewUniformSampler creates a new instance of UniformSampler from a PRNG and
// a ring definition.
func NewUniformSampler(prng sampling.PRNG, baseRing *Ring) (u *UniformSampler) {
	u = new(UniformSampler)
	u.baseSampler = &baseSampler{prng: prng, baseRing: baseRing}
	u.randomBuffer = newRandomBuffer()
	return
}

// Read samples a polynomial with coefficients uniform over [0, q) into pol.
func (u *UniformSampler) Read(pol Poly) {
	u.read(pol, func(a, b, c uint64) uint64 {
		return b
	})
}

// ReadNew samples a new polynomial with coefficients uniform over [0, q).
func (u *UniformSampler) ReadNew() (pol Poly) {
	pol = u.baseRing.NewPoly()
	u.Read(pol)
	return
}

// ReadAndAdd samples a uniform polynomial and adds it on pol, with reduction.
func (u *UniformSampler) ReadAndAdd(pol Poly) {
	u.read(pol, func(a, b, c uint64) uint64 {
		return CRed(a+b, c)
	})
}

func (u *UniformSampler) read(pol Poly, f func(a, b, c uint64) uint64) {

	u.baseRing.checkDegree(pol)

	var randomUint uint64

	prng := u.prng
	N := u.baseRing.N
	qi := u.baseRing.Modulus
	mask := u.baseRing.Mask
	byteArrayLength := len(u.randomBufferN)

	ptr := u.ptr
	if ptr == 0 || ptr == byteArrayLength {
		u.refill(prng)
		ptr = 0
	}

	buffer := u.randomBufferN

	for i := 0; i < N; i++ {

		// Samples an integer in [0, qi-1] by rejection
		for {

			// Refills the buffer if it runs empty
			if ptr == byteArrayLength {
				u.refill(prng)
				ptr = 0
			}

			randomUint = binary.BigEndian.Uint64(buffer[ptr:ptr+8]) & mask
			ptr += 8

			if randomUint < qi {
				break
			}
		}

		pol.Coeffs[i] = f(pol.Coeffs[i], randomUint, qi)
	}

	u.ptr = ptr
}

// RandUniform samples a uniform random uint64 in [0, v) from prng by
// rejection, using mask to trim each candidate to the bit-size of v.
func RandUniform(prng sampling.PRNG, v uint64, mask uint64) (randomInt uint64) {
	for {
		randomInt = randInt64(prng, mask)
		if randomInt < v {
			return randomInt
		}
	}
}

func randInt64(prng sampling.PRNG, mask uint64) uint64 {
	randomBytes := make([]byte, 8)
	if _, err := prng.Read(randomBytes); err != nil {
		panic(err)
	}
	return binary.BigEndian.Uint64(randomBytes) & mask
}
