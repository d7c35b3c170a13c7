// Package rlwe implements the RLWE public-key encryption scheme over the
// quotient ring R_q = Z_q[x]/(x^N + 1): key generation, encryption and
// decryption of binary-polynomial messages, along with the message codec
// and noise analysis helpers.
package rlwe

import (
	"encoding/json"
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/latticekit/ringlwe/ring"
)

// MaxLogN is the log2 of the largest supported ring degree.
const MaxLogN = 17

// MinLogN is the log2 of the smallest supported ring degree.
const MinLogN = 1

// ParametersLiteral is a literal representation of RLWE parameters. It has
// public fields and is used to express unchecked user-defined parameters
// literally into Go programs. The NewParametersFromLiteral function is used
// to generate the actual checked parameters from the literal representation.
//
// Users must set the ring degree (LogN) and the prime coefficient modulus Q.
// Optionally, the error standard deviation (Sigma), its truncation bound
// (Bound, defaulting to 6*Sigma) and the secret distribution (Xs, defaulting
// to the error distribution) can be set.
type ParametersLiteral struct {
	LogN  int
	Q     uint64
	Sigma float64                     `json:",omitempty"`
	Bound float64                     `json:",omitempty"`
	Xs    ring.DistributionParameters `json:"-"`
}

// ExampleParameters128 is an example parameter set targeting 128-bit
// security, with a decryption failure probability negligible for binary
// message polynomials.
var ExampleParameters128 = ParametersLiteral{
	LogN:  10,
	Q:     40961, // 40961 = 40*1024 + 1 = 1 mod 2N, NTT-friendly
	Sigma: DefaultSigma,
}

// TestParametersToy is an insecure toy parameter set used for fixed-vector
// regression tests only.
var TestParametersToy = ParametersLiteral{
	LogN:  2,
	Q:     17,
	Sigma: 1.0,
}

// Parameters represents a checked and immutable set of RLWE parameters.
// See ParametersLiteral for user-specified parameters.
type Parameters struct {
	logN  int
	q     uint64
	xe    ring.DiscreteGaussian
	xs    ring.DistributionParameters
	ringQ *ring.Ring
}

// NewParametersFromLiteral instantiates a set of Parameters from a
// ParametersLiteral specification. It returns the empty parameters and a
// non-nil error if the specified parameters are invalid: LogN out of
// [MinLogN, MaxLogN], Q not an odd prime or too large, or Sigma negative.
func NewParametersFromLiteral(pl ParametersLiteral) (params Parameters, err error) {

	if pl.LogN < MinLogN || pl.LogN > MaxLogN {
		return Parameters{}, fmt.Errorf("invalid parameters: LogN=%d must be in [%d, %d]", pl.LogN, MinLogN, MaxLogN)
	}

	if pl.Sigma < 0 {
		return Parameters{}, fmt.Errorf("invalid parameters: Sigma=%f must be non-negative", pl.Sigma)
	}

	sigma := pl.Sigma
	if sigma == 0 {
		sigma = DefaultSigma
	}

	bound := pl.Bound
	if bound == 0 {
		bound = 6 * sigma
	}

	ringQ, err := ring.NewRing(1<<pl.LogN, pl.Q)
	if err != nil {
		return Parameters{}, fmt.Errorf("invalid parameters: %w", err)
	}

	xe := ring.DiscreteGaussian{Sigma: sigma, Bound: bound}

	var xs ring.DistributionParameters = xe
	if pl.Xs != nil {
		switch pl.Xs.(type) {
		case ring.DiscreteGaussian, ring.Ternary:
			xs = pl.Xs
		default:
			return Parameters{}, fmt.Errorf("invalid parameters: secret distribution must be DiscreteGaussian or Ternary but is %T", pl.Xs)
		}
	}

	return Parameters{
		logN:  pl.LogN,
		q:     pl.Q,
		xe:    xe,
		xs:    xs,
		ringQ: ringQ,
	}, nil
}

// N returns the ring degree.
func (p Parameters) N() int {
	return 1 << p.logN
}

// LogN returns the log2 of the ring degree.
func (p Parameters) LogN() int {
	return p.logN
}

// Q returns the coefficient modulus.
func (p Parameters) Q() uint64 {
	return p.q
}

// Delta returns the message scaling factor floor(Q/2), which places an
// encrypted 1-bit at the point of Z_q farthest from 0.
func (p Parameters) Delta() uint64 {
	return p.q >> 1
}

// Sigma returns the standard deviation of the error distribution.
func (p Parameters) Sigma() float64 {
	return p.xe.Sigma
}

// Xe returns the error distribution parameters.
func (p Parameters) Xe() ring.DiscreteGaussian {
	return p.xe
}

// Xs returns the secret distribution parameters.
func (p Parameters) Xs() ring.DistributionParameters {
	return p.xs
}

// RingQ returns the underlying arithmetic ring.
func (p Parameters) RingQ() *ring.Ring {
	return p.ringQ
}

// Equal returns true if the receiver Parameters are identical to the
// provided other Parameters.
func (p Parameters) Equal(other *Parameters) bool {
	return cmp.Equal(p.literal(), other.literal())
}

func (p Parameters) literal() ParametersLiteral {
	return ParametersLiteral{
		LogN:  p.logN,
		Q:     p.q,
		Sigma: p.xe.Sigma,
		Bound: p.xe.Bound,
		Xs:    p.xs,
	}
}

// MarshalJSON returns a JSON representation of the parameter set.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.literal())
}

// UnmarshalJSON reads a JSON representation of a parameter set into the
// receiver. The secret distribution defaults to the error distribution.
func (p *Parameters) UnmarshalJSON(data []byte) (err error) {
	var pl ParametersLiteral
	if err = json.Unmarshal(data, &pl); err != nil {
		return err
	}
	*p, err = NewParametersFromLiteral(pl)
	return err
}
