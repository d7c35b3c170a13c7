package rlwe

import (
	"fmt"

	"github.com/latticekit/ringlwe/ring"
)

// Decryptor is a structure used to decrypt ciphertexts. It stores the
// secret key. A Decryptor is not safe for concurrent use; independent
// decryptors sharing the same secret key are.
type Decryptor struct {
	params Parameters
	sk     *SecretKey
	buffQ  ring.Poly
}

// NewDecryptor instantiates a new Decryptor from the provided secret key.
func NewDecryptor(params Parameters, sk *SecretKey) (*Decryptor, error) {

	if sk == nil {
		return nil, fmt.Errorf("cannot NewDecryptor: secret key is nil")
	}

	if sk.Value.N() != params.N() {
		return nil, fmt.Errorf("cannot NewDecryptor: secret key ring degree does not match parameters ring degree %d", params.N())
	}

	return &Decryptor{
		params: params,
		sk:     sk,
		buffQ:  params.RingQ().NewPoly(),
	}, nil
}

// DecryptNew decrypts ct and returns the recovered binary message
// polynomial. It computes t = c2 + c1*s and maps each coefficient of t to
// the nearest of {0, Delta}: coefficients strictly between q/4 and 3q/4
// decode to 1, all others to 0.
//
// Decryption is correct whenever every coefficient of the accumulated noise
// has magnitude below Delta/2; beyond that bound the result silently carries
// wrong bits (there is no integrity tag to detect it).
func (dec *Decryptor) DecryptNew(ct *Ciphertext) (m ring.Poly, err error) {
	m = dec.params.RingQ().NewPoly()
	if err = dec.Decrypt(ct, m); err != nil {
		return ring.Poly{}, err
	}
	return
}

// Decrypt decrypts ct and writes the recovered binary message polynomial on
// m. See DecryptNew.
func (dec *Decryptor) Decrypt(ct *Ciphertext, m ring.Poly) (err error) {

	if ct == nil {
		return fmt.Errorf("cannot Decrypt: ciphertext is nil")
	}

	N := dec.params.N()

	if ct.C1.N() != N || ct.C2.N() != N {
		return fmt.Errorf("cannot Decrypt: ciphertext ring degree does not match parameters ring degree %d", N)
	}

	if m.N() != N {
		return fmt.Errorf("cannot Decrypt: message receiver has %d coefficients, want %d", m.N(), N)
	}

	ringQ := dec.params.RingQ()
	q := dec.params.Q()

	// t = c2 + c1*s
	ringQ.MulPoly(ct.C1, dec.sk.Value, dec.buffQ)
	ringQ.Add(ct.C2, dec.buffQ, dec.buffQ)

	// Nearest of {0, Delta}: 1 iff q/4 < t[i] < 3q/4.
	for i, t := range dec.buffQ.Coeffs {
		if 4*t > q && 4*t < 3*q {
			m.Coeffs[i] = 1
		} else {
			m.Coeffs[i] = 0
		}
	}

	return nil
}
