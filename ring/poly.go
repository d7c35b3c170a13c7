package ring

import (
	"github.com/latticekit/ringlwe/utils"
)

// Poly is the structure that contains the coefficients of a polynomial.
// Coefficients are stored in their canonical representative range [0, Modulus-1],
// with Coeffs[i] holding the coefficient of x^i.
type Poly struct {
	Coeffs []uint64
}

// NewPoly creates a new zero polynomial of degree N (the number of coefficients).
func NewPoly(N int) Poly {
	return Poly{Coeffs: make([]uint64, N)}
}

// N returns the number of coefficients of the polynomial.
func (pol Poly) N() int {
	return len(pol.Coeffs)
}

// Copy copies the coefficients of p1 on the target polynomial.
// Requires both polynomials to have the same degree.
func (pol Poly) Copy(p1 Poly) {
	copy(pol.Coeffs, p1.Coeffs)
}

// CopyNew creates an exact copy of the target polynomial.
func (pol Poly) CopyNew() Poly {
	p := Poly{Coeffs: make([]uint64, len(pol.Coeffs))}
	copy(p.Coeffs, pol.Coeffs)
	return p
}

// Equal returns true if the receiver Poly is equal to the provided other Poly.
func (pol Poly) Equal(other Poly) bool {
	return utils.EqualSlice(pol.Coeffs, other.Coeffs)
}

// IsBinary returns true if all coefficients of the polynomial are in {0, 1}.
func (pol Poly) IsBinary() bool {
	for _, c := range pol.Coeffs {
		if c > 1 {
			return false
		}
	}
	return true
}
