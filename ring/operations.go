package ring

import (
	"fmt"
)

// checkDegree panics if any of the operand polynomials does not have exactly
// N coefficients. Operand degrees are a precondition of every ring operation;
// violating it is a programmer error, not a runtime condition.
func (r *Ring) checkDegree(ops ...Poly) {
	for _, op := range ops {
		if len(op.Coeffs) != r.N {
			// Sanity check, callers must provide length-N polynomials.
			panic(fmt.Errorf("invalid polynomial degree: have %d coefficients, ring degree is %d", len(op.Coeffs), r.N))
		}
	}
}

// Add adds p1 to p2 coefficient-wise and applies a modular reduction,
// returning the result on p3.
func (r *Ring) Add(p1, p2, p3 Poly) {
	r.checkDegree(p1, p2, p3)
	q := r.Modulus
	for i := 0; i < r.N; i++ {
		p3.Coeffs[i] = CRed(p1.Coeffs[i]+p2.Coeffs[i], q)
	}
}

// Sub subtracts p2 from p1 coefficient-wise and applies a modular reduction,
// returning the result on p3.
func (r *Ring) Sub(p1, p2, p3 Poly) {
	r.checkDegree(p1, p2, p3)
	q := r.Modulus
	for i := 0; i < r.N; i++ {
		p3.Coeffs[i] = CRed((p1.Coeffs[i]+q)-p2.Coeffs[i], q)
	}
}

// Neg sets each coefficient of p1 to its additive inverse, returning the
// result on p2.
func (r *Ring) Neg(p1, p2 Poly) {
	r.checkDegree(p1, p2)
	q := r.Modulus
	for i := 0; i < r.N; i++ {
		if p1.Coeffs[i] == 0 {
			p2.Coeffs[i] = 0
		} else {
			p2.Coeffs[i] = q - p1.Coeffs[i]
		}
	}
}

// Reduce applies a modular reduction on the coefficients of p1, returning the
// result on p2. Accepts arbitrary uint64 coefficients on p1.
func (r *Ring) Reduce(p1, p2 Poly) {
	r.checkDegree(p1, p2)
	q := r.Modulus
	for i := 0; i < r.N; i++ {
		p2.Coeffs[i] = BRedAdd(p1.Coeffs[i], q, r.BRedConstant)
	}
}

// MulScalar multiplies each coefficient of p1 by scalar and applies a modular
// reduction, returning the result on p2.
func (r *Ring) MulScalar(p1 Poly, scalar uint64, p2 Poly) {
	r.checkDegree(p1, p2)
	q := r.Modulus
	scalarMont := MForm(BRedAdd(scalar, q, r.BRedConstant), q, r.BRedConstant)
	for i := 0; i < r.N; i++ {
		p2.Coeffs[i] = MRed(p1.Coeffs[i], scalarMont, q, r.MRedConstant)
	}
}

// MulCoeffs multiplies p1 by p2 coefficient-wise with a Barrett modular
// reduction, returning the result on p3.
func (r *Ring) MulCoeffs(p1, p2, p3 Poly) {
	r.checkDegree(p1, p2, p3)
	q := r.Modulus
	for i := 0; i < r.N; i++ {
		p3.Coeffs[i] = BRed(p1.Coeffs[i], p2.Coeffs[i], q, r.BRedConstant)
	}
}

// MulPoly multiplies p1 by p2 in the ring, reducing modulo x^N + 1 and q, and
// returns the result on p3. When the ring supports the NTT, the product is
// computed in O(N log N) via the negacyclic transform; the result is
// identical, coefficient for coefficient, to the schoolbook MulPolyNaive.
func (r *Ring) MulPoly(p1, p2, p3 Poly) {

	if !r.SupportsNTT() {
		r.MulPolyNaive(p1, p2, p3)
		return
	}

	r.checkDegree(p1, p2, p3)

	a := r.NewPoly()
	b := r.NewPoly()

	r.NTT(p1, a)
	r.NTT(p2, b)
	r.MulCoeffs(a, b, p3)
	r.INTT(p3, p3)
}

// MulPolyNaive multiplies p1 by p2 with a naive negacyclic convolution,
// returning the result on p3. Any term of degree N+k folds back onto index k
// with a sign flip, following the identity x^N = -1.
func (r *Ring) MulPolyNaive(p1, p2, p3 Poly) {

	r.checkDegree(p1, p2, p3)

	q := r.Modulus
	mredConstant := r.MRedConstant

	p1m := r.NewPoly()
	for i := 0; i < r.N; i++ {
		p1m.Coeffs[i] = MForm(p1.Coeffs[i], q, r.BRedConstant)
	}
	p2c := p2.CopyNew()

	for i := range p3.Coeffs {
		p3.Coeffs[i] = 0
	}

	for i := 0; i < r.N; i++ {

		for j := 0; j < i; j++ {
			p3.Coeffs[j] = CRed(p3.Coeffs[j]+(q-MRed(p1m.Coeffs[i], p2c.Coeffs[r.N-i+j], q, mredConstant)), q)
		}

		for j := i; j < r.N; j++ {
			p3.Coeffs[j] = CRed(p3.Coeffs[j]+MRed(p1m.Coeffs[i], p2c.Coeffs[j-i], q, mredConstant), q)
		}
	}
}

// MultByMonomial multiplies p1 by x^monomialDeg and returns the result on p2.
func (r *Ring) MultByMonomial(p1 Poly, monomialDeg int, p2 Poly) {

	r.checkDegree(p1, p2)

	q := r.Modulus
	shift := monomialDeg % (r.N << 1)

	if shift == 0 {
		p2.Copy(p1)
		return
	}

	tmp := r.NewPoly()

	if shift < r.N {
		tmp.Copy(p1)
	} else {
		r.Neg(p1, tmp)
	}

	shift %= r.N

	for j := 0; j < shift; j++ {
		if c := tmp.Coeffs[r.N-shift+j]; c == 0 {
			p2.Coeffs[j] = 0
		} else {
			p2.Coeffs[j] = q - c
		}
	}

	for j := shift; j < r.N; j++ {
		p2.Coeffs[j] = tmp.Coeffs[j-shift]
	}
}
