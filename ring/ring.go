// Package ring implements arithmetic in the polynomial quotient ring
// R_q = Z_q[x]/(x^N + 1) for N a power of two and q a prime modulus, along
// with the sampling of uniform, discrete-Gaussian and ternary polynomials.
//
// All operations store their results with coefficients reduced into the
// canonical representative range [0, q); this invariant holds for every
// polynomial produced by this package.
package ring

import (
	"fmt"
	"math/bits"

	"github.com/latticekit/ringlwe/utils"
)

// MaxModulusBitSize is the largest supported bit-length for the modulus.
const MaxModulusBitSize = 61

// MinRingDegree is the smallest supported ring degree.
const MinRingDegree = 2

// Ring is the structure that stores the parameters of the quotient ring
// Z_q[x]/(x^N + 1) along with the precomputed constants required for
// modular arithmetic and, when the modulus permits, the negacyclic NTT.
// A Ring is immutable once created and safe for concurrent use.
type Ring struct {

	// N is the ring degree (a power of two).
	N int

	// Modulus is the prime coefficient modulus q.
	Modulus uint64

	// Mask is 2^ceil(log2(q)) - 1, used for rejection sampling.
	Mask uint64

	// BRedConstant is the constant of the Barrett reduction by Modulus.
	BRedConstant []uint64

	// MRedConstant is the constant of the Montgomery reduction by Modulus.
	MRedConstant uint64

	// RootsForward contains psi^(bitreverse(i)) in Montgomery form,
	// where psi is a primitive 2N-th root of unity mod q. Nil if the
	// ring does not support the NTT.
	RootsForward []uint64

	// RootsBackward contains psi^(-bitreverse(i)) in Montgomery form.
	RootsBackward []uint64

	// NInv is N^-1 mod q in Montgomery form. Zero if the ring does not
	// support the NTT.
	NInv uint64
}

// NewRing creates a new Ring with degree N and prime modulus q. N must be a
// power of two of at least MinRingDegree and q an odd prime of at most
// MaxModulusBitSize bits. If q ≡ 1 mod 2N, the negacyclic NTT tables are
// precomputed and MulPoly dispatches to the O(N log N) transform; otherwise
// multiplication falls back to the schoolbook convolution.
func NewRing(N int, q uint64) (r *Ring, err error) {

	if N < MinRingDegree || !utils.IsPowerOfTwo(N) {
		return nil, fmt.Errorf("invalid ring degree: N=%d must be a power of two >= %d", N, MinRingDegree)
	}

	if bits.Len64(q) > MaxModulusBitSize {
		return nil, fmt.Errorf("invalid modulus: q=%d exceeds %d bits", q, MaxModulusBitSize)
	}

	if q < 3 || q&1 == 0 || !IsPrime(q) {
		return nil, fmt.Errorf("invalid modulus: q=%d is not an odd prime", q)
	}

	r = &Ring{
		N:            N,
		Modulus:      q,
		Mask:         (1 << uint64(bits.Len64(q))) - 1,
		BRedConstant: BRedParams(q),
		MRedConstant: MRedParams(q),
	}

	if (q-1)%uint64(2*N) == 0 {
		if err = r.generateNTTConstants(); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// NewPoly creates a new zero polynomial of the ring's degree.
func (r *Ring) NewPoly() Poly {
	return NewPoly(r.N)
}

// SupportsNTT returns true if the modulus satisfies q ≡ 1 mod 2N, in which
// case multiplication is carried out with the negacyclic NTT.
func (r *Ring) SupportsNTT() bool {
	return r.RootsForward != nil
}

// generateNTTConstants finds a primitive 2N-th root of unity psi mod q and
// fills the bit-reversed Montgomery-form root tables used by the NTT.
func (r *Ring) generateNTTConstants() error {

	q := r.Modulus
	logN := bits.Len64(uint64(r.N)) - 1

	g, err := primitiveRoot(q)
	if err != nil {
		return err
	}

	// psi = g^((q-1)/2N) is a primitive 2N-th root of unity.
	psi := ModExp(g, (q-1)/uint64(2*r.N), q)
	psiInv := ModExp(psi, q-2, q)

	r.RootsForward = make([]uint64, r.N)
	r.RootsBackward = make([]uint64, r.N)

	fwd := uint64(1)
	bwd := uint64(1)
	for i := 0; i < r.N; i++ {
		j := utils.BitReverse64(uint64(i), logN)
		r.RootsForward[j] = MForm(fwd, q, r.BRedConstant)
		r.RootsBackward[j] = MForm(bwd, q, r.BRedConstant)
		fwd = BRed(fwd, psi, q, r.BRedConstant)
		bwd = BRed(bwd, psiInv, q, r.BRedConstant)
	}

	r.NInv = MForm(ModExp(uint64(r.N), q-2, q), q, r.BRedConstant)

	return nil
}

// primitiveRoot returns a generator of the multiplicative group Z_q*.
func primitiveRoot(q uint64) (uint64, error) {

	factors := primeFactors(q - 1)

	for g := uint64(2); g < q; g++ {
		isGenerator := true
		for _, f := range factors {
			if ModExp(g, (q-1)/f, q) == 1 {
				isGenerator = false
				break
			}
		}
		if isGenerator {
			return g, nil
		}
	}

	return 0, fmt.Errorf("no primitive root found for modulus %d", q)
}

// ModExp performs the modular exponentiation x^e mod q.
func ModExp(x, e, q uint64) (result uint64) {
	params := BRedParams(q)
	result = 1
	x = BRedAdd(x, q, params)
	for i := e; i > 0; i >>= 1 {
		if i&1 == 1 {
			result = BRed(result, x, q, params)
		}
		x = BRed(x, x, q, params)
	}
	return result
}
