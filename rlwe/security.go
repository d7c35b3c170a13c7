package rlwe

import (
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"
	"github.com/latticekit/ringlwe/ring"
)

const (
	// DefaultSigma is the default standard deviation of the error distribution.
	DefaultSigma = 3.2

	// DefaultBound is the default truncation bound of the error distribution,
	// in number of standard deviations.
	DefaultBound = 6.0
)

// failureProbPrecision is the big.Float mantissa precision used by
// FailureProbability.
const failureProbPrecision = 128

// xsStdDev returns the standard deviation of the secret distribution.
func xsStdDev(xs ring.DistributionParameters) float64 {
	switch xs := xs.(type) {
	case ring.DiscreteGaussian:
		return xs.Sigma
	case ring.Ternary:
		// Var[x] = P for x in {-1, 0, 1} with P(x != 0) = P.
		return math.Sqrt(xs.P)
	default:
		// Sanity check, parameters only accept the two types above.
		panic("invalid secret distribution")
	}
}

// NoiseStdDev returns the predicted standard deviation of each coefficient
// of the decryption noise e2 + e1*s - r*e, where r, e, e1, e2 follow the
// error distribution and s the secret distribution. Both ring products
// contribute N independent cross terms, so the variance is
// N*sigma_e^2*(sigma_e^2 + sigma_s^2) + sigma_e^2.
func NoiseStdDev(params Parameters) float64 {
	sigmaE := params.Sigma()
	sigmaS := xsStdDev(params.Xs())
	N := float64(params.N())
	return math.Sqrt(N*sigmaE*sigmaE*(sigmaE*sigmaE+sigmaS*sigmaS) + sigmaE*sigmaE)
}

// FailureProbability returns an upper bound on the probability that the
// decryption of a fresh encryption of an N-bit message carries at least one
// wrong bit. A coefficient decodes incorrectly when its noise reaches q/4,
// so the bound is the union bound over N coefficients of the two-sided
// Gaussian tail
//
//	N * 2 * exp(-(q/4)^2 / (2*sigma_noise^2)) / (x * sqrt(2*pi)), x = (q/4)/sigma_noise.
//
// The tail is evaluated in big.Float arithmetic since it underflows float64
// for realistic parameters.
func FailureProbability(params Parameters) *big.Float {

	x := float64(params.Q()) / 4 / NoiseStdDev(params)

	// exp(-x^2/2), evaluated with 128-bit mantissa.
	exponent := new(big.Float).SetPrec(failureProbPrecision).SetFloat64(-x * x / 2)
	tail := bigfloat.Exp(exponent)

	// Gaussian tail factor 1/(x*sqrt(2*pi)).
	factor := new(big.Float).SetPrec(failureProbPrecision).SetFloat64(x * math.Sqrt(2*math.Pi))
	tail.Quo(tail, factor)

	// Two tails, union bound over the N coefficients.
	count := new(big.Float).SetPrec(failureProbPrecision).SetFloat64(2 * float64(params.N()))
	tail.Mul(tail, count)

	return tail
}
