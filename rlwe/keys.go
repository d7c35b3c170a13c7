package rlwe

import (
	"github.com/latticekit/ringlwe/ring"
)

// SecretKey is a structure that stores the secret key s, a small polynomial
// sampled from the secret distribution. It is held exclusively by the
// decrypting party and never transmitted.
type SecretKey struct {
	Value ring.Poly
}

// NewSecretKey allocates a zero secret key for the provided parameters.
func NewSecretKey(params Parameters) *SecretKey {
	return &SecretKey{Value: params.RingQ().NewPoly()}
}

// CopyNew creates a deep copy of the receiver secret key.
func (sk *SecretKey) CopyNew() *SecretKey {
	return &SecretKey{Value: sk.Value.CopyNew()}
}

// PublicKey is a structure that stores the public key (a, b), where a is
// uniform over R_q and b = -(a*s + e). It is derived once from the secret
// key and fixed thereafter.
type PublicKey struct {
	A ring.Poly
	B ring.Poly
}

// NewPublicKey allocates a zero public key for the provided parameters.
func NewPublicKey(params Parameters) *PublicKey {
	return &PublicKey{
		A: params.RingQ().NewPoly(),
		B: params.RingQ().NewPoly(),
	}
}

// Equal returns true if the receiver public key equals the other public key.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	return pk.A.Equal(other.A) && pk.B.Equal(other.B)
}
