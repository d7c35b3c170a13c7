package ring

import (
	"fmt"
	"math/big"
	"math/bits"
)

// IsPrime applies the Baillie-PSW test, which is 100% accurate for numbers below 2^64.
func IsPrime(x uint64) bool {
	return new(big.Int).SetUint64(x).ProbablyPrime(0)
}

// NextNTTPrime returns the next prime p > q such that p ≡ 1 mod NthRoot.
// The input q must itself satisfy q ≡ 1 mod NthRoot.
func NextNTTPrime(q uint64, NthRoot int) (qNext uint64, err error) {

	qNext = q + uint64(NthRoot)

	for !IsPrime(qNext) {

		qNext += uint64(NthRoot)

		if bits.Len64(qNext) > 61 {
			return 0, fmt.Errorf("next NTT prime exceeds the maximum bit-size of 61 bits")
		}
	}

	return qNext, nil
}

// PreviousNTTPrime returns the previous prime p < q such that p ≡ 1 mod NthRoot.
// The input q must itself satisfy q ≡ 1 mod NthRoot.
func PreviousNTTPrime(q uint64, NthRoot int) (qPrev uint64, err error) {

	if q < uint64(NthRoot) {
		return 0, fmt.Errorf("previous NTT prime is smaller than NthRoot")
	}

	qPrev = q - uint64(NthRoot)

	for !IsPrime(qPrev) {

		if qPrev < uint64(NthRoot) {
			return 0, fmt.Errorf("previous NTT prime is smaller than NthRoot")
		}

		qPrev -= uint64(NthRoot)
	}

	return qPrev, nil
}

// primeFactors returns the distinct prime factors of n by trial division.
// Ring moduli are at most 61 bits and factorization happens once at ring
// construction, so trial division is sufficient here.
func primeFactors(n uint64) (factors []uint64) {

	if n&1 == 0 {
		factors = append(factors, 2)
		for n&1 == 0 {
			n >>= 1
		}
	}

	for f := uint64(3); f*f <= n; f += 2 {
		if n%f == 0 {
			factors = append(factors, f)
			for n%f == 0 {
				n /= f
			}
		}
	}

	if n > 1 {
		factors = append(factors, n)
	}

	return
}
