package rlwe

import (
	"fmt"

	"github.com/latticekit/ringlwe/ring"
	"github.com/latticekit/ringlwe/utils/sampling"
)

// Encryptor is a structure that encrypts binary-polynomial messages under a
// public key. Each call consumes fresh randomness (a blinding polynomial r
// and two errors e1, e2), so two encryptions of the same message differ with
// overwhelming probability. An Encryptor is not safe for concurrent use;
// independent encryptors are.
type Encryptor struct {
	params    Parameters
	pk        *PublicKey
	xeSampler ring.Sampler
	*encryptorBuffers
}

type encryptorBuffers struct {
	buffR ring.Poly
	buffE ring.Poly
	buffM ring.Poly
}

func newEncryptorBuffers(params Parameters) *encryptorBuffers {
	return &encryptorBuffers{
		buffR: params.RingQ().NewPoly(),
		buffE: params.RingQ().NewPoly(),
		buffM: params.RingQ().NewPoly(),
	}
}

// NewEncryptor creates a new Encryptor from the provided public key, seeded
// from the system entropy source.
func NewEncryptor(params Parameters, pk *PublicKey) (*Encryptor, error) {
	prng, err := sampling.NewPRNG()
	if err != nil {
		// Sanity check, this error should not happen.
		panic(err)
	}
	return NewEncryptorWithPRNG(params, pk, prng)
}

// NewEncryptorWithPRNG creates a new Encryptor drawing its randomness from
// the provided PRNG. Supplying a KeyedPRNG makes encryption deterministic,
// which is intended for tests.
func NewEncryptorWithPRNG(params Parameters, pk *PublicKey, prng sampling.PRNG) (*Encryptor, error) {

	if pk == nil {
		return nil, fmt.Errorf("cannot NewEncryptor: public key is nil")
	}

	if pk.A.N() != params.N() || pk.B.N() != params.N() {
		return nil, fmt.Errorf("cannot NewEncryptor: public key ring degree does not match parameters ring degree %d", params.N())
	}

	return &Encryptor{
		params:           params,
		pk:               pk,
		xeSampler:        ring.NewGaussianSampler(prng, params.RingQ(), params.Xe()),
		encryptorBuffers: newEncryptorBuffers(params),
	}, nil
}

// EncryptNew encrypts the binary message polynomial m and returns the
// resulting ciphertext (c1, c2), where
//
//	c1 = a*r + e1
//	c2 = b*r + e2 + Delta*m
//
// for a fresh blinding polynomial r and errors e1, e2, with
// Delta = floor(q/2). It returns an error if m does not have exactly N
// coefficients or has a coefficient outside {0, 1}.
func (enc *Encryptor) EncryptNew(m ring.Poly) (ct *Ciphertext, err error) {
	ct = NewCiphertext(enc.params)
	if err = enc.Encrypt(m, ct); err != nil {
		return nil, err
	}
	return
}

// Encrypt encrypts the binary message polynomial m and writes the result
// on ct. See EncryptNew.
func (enc *Encryptor) Encrypt(m ring.Poly, ct *Ciphertext) (err error) {

	if m.N() != enc.params.N() {
		return fmt.Errorf("cannot Encrypt: message has %d coefficients, want %d", m.N(), enc.params.N())
	}

	if !m.IsBinary() {
		return fmt.Errorf("cannot Encrypt: message coefficients must be in {0, 1}")
	}

	ringQ := enc.params.RingQ()

	enc.xeSampler.Read(enc.buffR)

	// c1 = a*r + e1
	ringQ.MulPoly(enc.pk.A, enc.buffR, ct.C1)
	enc.xeSampler.ReadAndAdd(ct.C1)

	// c2 = b*r + e2
	ringQ.MulPoly(enc.pk.B, enc.buffR, ct.C2)
	enc.xeSampler.Read(enc.buffE)
	ringQ.Add(ct.C2, enc.buffE, ct.C2)

	// c2 = b*r + e2 + Delta*m
	ringQ.MulScalar(m, enc.params.Delta(), enc.buffM)
	ringQ.Add(ct.C2, enc.buffM, ct.C2)

	return nil
}

// encrypt is the deterministic core of Encrypt, with the blinding polynomial
// r and the errors e1, e2 supplied by the caller. It is exercised directly
// by the fixed-vector regression tests.
func encrypt(params Parameters, pk *PublicKey, m, r, e1, e2 ring.Poly, ct *Ciphertext) {

	ringQ := params.RingQ()

	// c1 = a*r + e1
	ringQ.MulPoly(pk.A, r, ct.C1)
	ringQ.Add(ct.C1, e1, ct.C1)

	// c2 = b*r + e2 + Delta*m
	buff := ringQ.NewPoly()
	ringQ.MulPoly(pk.B, r, ct.C2)
	ringQ.Add(ct.C2, e2, ct.C2)
	ringQ.MulScalar(m, params.Delta(), buff)
	ringQ.Add(ct.C2, buff, ct.C2)
}
