package rlwe

import (
	"github.com/latticekit/ringlwe/ring"
)

// Ciphertext is a structure that stores an RLWE ciphertext (c1, c2). It is
// produced once per encryption and consumed once by decryption; it carries
// no metadata and has no persistence requirement.
type Ciphertext struct {
	C1 ring.Poly
	C2 ring.Poly
}

// NewCiphertext allocates a zero ciphertext for the provided parameters.
func NewCiphertext(params Parameters) *Ciphertext {
	return &Ciphertext{
		C1: params.RingQ().NewPoly(),
		C2: params.RingQ().NewPoly(),
	}
}

// CopyNew creates a deep copy of the receiver ciphertext.
func (ct *Ciphertext) CopyNew() *Ciphertext {
	return &Ciphertext{C1: ct.C1.CopyNew(), C2: ct.C2.CopyNew()}
}

// Equal returns true if the receiver ciphertext equals the other ciphertext.
func (ct *Ciphertext) Equal(other *Ciphertext) bool {
	return ct.C1.Equal(other.C1) && ct.C2.Equal(other.C2)
}
