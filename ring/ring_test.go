package ring

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/latticekit/ringlwe/utils/sampling"
	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/require"
)

var DefaultSigma = 3.2
var DefaultBound = 6.0 * DefaultSigma

type testParams struct {
	ringQ          *Ring
	prng           sampling.PRNG
	uniformSampler *UniformSampler
}

var testParameters = []struct {
	N int
	Q uint64
}{
	{16, 97},      // 97 = 1 mod 32, NTT-friendly
	{64, 257},     // 257 = 1 mod 128, NTT-friendly
	{1024, 40961}, // 40961 = 1 mod 2048, NTT-friendly
	{16, 23},      // 23 != 1 mod 32, schoolbook fallback
}

func testString(opname string, ringQ *Ring) string {
	return fmt.Sprintf("%s/N=%d/Q=%d", opname, ringQ.N, ringQ.Modulus)
}

func genTestParams(N int, Q uint64) (tc *testParams, err error) {
	tc = new(testParams)
	if tc.ringQ, err = NewRing(N, Q); err != nil {
		return nil, err
	}
	if tc.prng, err = sampling.NewKeyedPRNG([]byte{'r', 'i', 'n', 'g'}); err != nil {
		return nil, err
	}
	tc.uniformSampler = NewUniformSampler(tc.prng, tc.ringQ)
	return
}

func TestRing(t *testing.T) {

	testNewRing(t)

	for _, defaultParam := range testParameters {

		tc, err := genTestParams(defaultParam.N, defaultParam.Q)
		if err != nil {
			t.Fatal(err)
		}

		testModularReduction(tc, t)
		testAddSubNeg(tc, t)
		testClosure(tc, t)
		testMultByMonomial(tc, t)
		testMulPoly(tc, t)
		testNTT(tc, t)
		testUniformSampler(tc, t)
		testGaussianSampler(tc, t)
		testTernarySampler(tc, t)
	}
}

func testNewRing(t *testing.T) {

	t.Run("NewRing", func(t *testing.T) {

		// N not a power of two
		_, err := NewRing(12, 97)
		require.Error(t, err)

		// N too small
		_, err = NewRing(1, 97)
		require.Error(t, err)

		// Q not prime
		_, err = NewRing(16, 91)
		require.Error(t, err)

		// Q even
		_, err = NewRing(16, 16)
		require.Error(t, err)

		// Q too large
		_, err = NewRing(16, 1<<62)
		require.Error(t, err)

		// NTT-friendly modulus
		r, err := NewRing(16, 97)
		require.NoError(t, err)
		require.True(t, r.SupportsNTT())

		// Valid but not NTT-friendly
		r, err = NewRing(16, 23)
		require.NoError(t, err)
		require.False(t, r.SupportsNTT())
	})

	t.Run("NTTPrimes", func(t *testing.T) {

		NthRoot := 2048

		qNext, err := NextNTTPrime(40961, NthRoot)
		require.NoError(t, err)
		require.Greater(t, qNext, uint64(40961))
		require.True(t, IsPrime(qNext))
		require.Equal(t, uint64(1), qNext%uint64(NthRoot))

		qPrev, err := PreviousNTTPrime(40961, NthRoot)
		require.NoError(t, err)
		require.Less(t, qPrev, uint64(40961))
		require.True(t, IsPrime(qPrev))
		require.Equal(t, uint64(1), qPrev%uint64(NthRoot))

		_, err = PreviousNTTPrime(uint64(NthRoot)+1, NthRoot)
		require.Error(t, err)
	})
}

func testModularReduction(tc *testParams, t *testing.T) {

	t.Run(testString("ModularReduction", tc.ringQ), func(t *testing.T) {

		q := tc.ringQ.Modulus
		bigQ := new(big.Int).SetUint64(q)

		for trial := 0; trial < 64; trial++ {

			x := RandUniform(tc.prng, q, tc.ringQ.Mask)
			y := RandUniform(tc.prng, q, tc.ringQ.Mask)

			want := new(big.Int).SetUint64(x)
			want.Mul(want, new(big.Int).SetUint64(y))
			want.Mod(want, bigQ)

			require.Equal(t, want.Uint64(), BRed(x, y, q, tc.ringQ.BRedConstant))

			xMont := MForm(x, q, tc.ringQ.BRedConstant)
			require.Equal(t, want.Uint64(), MRed(xMont, y, q, tc.ringQ.MRedConstant))
			require.Equal(t, x, InvMForm(xMont, q, tc.ringQ.MRedConstant))

			z := sampling.RandUint64() % (q << 1)
			require.Equal(t, z%q, CRed(z, q))
		}
	})
}

func testAddSubNeg(tc *testParams, t *testing.T) {

	t.Run(testString("AddSubNeg", tc.ringQ), func(t *testing.T) {

		ringQ := tc.ringQ
		p1 := tc.uniformSampler.ReadNew()
		p2 := tc.uniformSampler.ReadNew()

		sum := ringQ.NewPoly()
		diff := ringQ.NewPoly()
		neg := ringQ.NewPoly()

		ringQ.Add(p1, p2, sum)
		ringQ.Sub(sum, p2, diff)
		require.True(t, diff.Equal(p1))

		ringQ.Neg(p1, neg)
		ringQ.Add(p1, neg, sum)
		for _, c := range sum.Coeffs {
			require.Zero(t, c)
		}

		// Degree mismatch is a precondition violation.
		require.Panics(t, func() {
			ringQ.Add(p1, NewPoly(ringQ.N+1), sum)
		})
	})
}

func testClosure(tc *testParams, t *testing.T) {

	t.Run(testString("Closure", tc.ringQ), func(t *testing.T) {

		ringQ := tc.ringQ
		q := ringQ.Modulus

		p1 := tc.uniformSampler.ReadNew()
		p2 := tc.uniformSampler.ReadNew()
		p3 := ringQ.NewPoly()

		ringQ.Add(p1, p2, p3)
		require.Equal(t, ringQ.N, p3.N())
		for _, c := range p3.Coeffs {
			require.Less(t, c, q)
		}

		ringQ.MulPolyNaive(p1, p2, p3)
		require.Equal(t, ringQ.N, p3.N())
		for _, c := range p3.Coeffs {
			require.Less(t, c, q)
		}
	})
}

func testMultByMonomial(tc *testParams, t *testing.T) {

	t.Run(testString("MultByMonomial", tc.ringQ), func(t *testing.T) {

		ringQ := tc.ringQ
		N := ringQ.N

		p1 := tc.uniformSampler.ReadNew()
		p2 := ringQ.NewPoly()
		neg := ringQ.NewPoly()

		// x^N = -1: multiplying by the monomial x^N negates the polynomial.
		ringQ.MultByMonomial(p1, N, p2)
		ringQ.Neg(p1, neg)
		require.True(t, p2.Equal(neg))

		// x^2N = 1.
		ringQ.MultByMonomial(p1, 2*N, p2)
		require.True(t, p2.Equal(p1))

		// Multiplying by x^(N-1) agrees with the schoolbook product.
		monomial := ringQ.NewPoly()
		monomial.Coeffs[N-1] = 1
		want := ringQ.NewPoly()
		ringQ.MulPolyNaive(p1, monomial, want)
		ringQ.MultByMonomial(p1, N-1, p2)
		require.True(t, p2.Equal(want))
	})
}

func testMulPoly(tc *testParams, t *testing.T) {

	t.Run(testString("MulPoly", tc.ringQ), func(t *testing.T) {

		ringQ := tc.ringQ

		p1 := tc.uniformSampler.ReadNew()
		p2 := tc.uniformSampler.ReadNew()

		want := ringQ.NewPoly()
		have := ringQ.NewPoly()

		// The fast path must match the schoolbook convolution bit for bit.
		ringQ.MulPolyNaive(p1, p2, want)
		ringQ.MulPoly(p1, p2, have)
		require.Equal(t, want.Coeffs, have.Coeffs)
	})
}

func testNTT(tc *testParams, t *testing.T) {

	if !tc.ringQ.SupportsNTT() {
		return
	}

	t.Run(testString("NTT", tc.ringQ), func(t *testing.T) {

		ringQ := tc.ringQ

		p1 := tc.uniformSampler.ReadNew()
		p2 := ringQ.NewPoly()

		ringQ.NTT(p1, p2)
		ringQ.INTT(p2, p2)
		require.True(t, p2.Equal(p1))
	})
}

func testUniformSampler(tc *testParams, t *testing.T) {

	t.Run(testString("UniformSampler", tc.ringQ), func(t *testing.T) {

		q := tc.ringQ.Modulus

		samples := make([]float64, 0, 4096)
		for i := 0; i < 4096/tc.ringQ.N+1; i++ {
			pol := tc.uniformSampler.ReadNew()
			for _, c := range pol.Coeffs {
				require.Less(t, c, q)
				samples = append(samples, float64(c))
			}
		}

		mean, err := stats.Mean(samples)
		require.NoError(t, err)
		require.InDelta(t, float64(q)/2, mean, float64(q)/16)
	})
}

func testGaussianSampler(tc *testParams, t *testing.T) {

	// The standard-deviation estimate needs a modulus with room for
	// 6*sigma on both sides of zero.
	if tc.ringQ.Modulus < 1024 {
		return
	}

	t.Run(testString("GaussianSampler", tc.ringQ), func(t *testing.T) {

		q := tc.ringQ.Modulus
		sampler := NewGaussianSampler(tc.prng, tc.ringQ, DiscreteGaussian{Sigma: DefaultSigma, Bound: DefaultBound})

		samples := make([]float64, 0, 16384)
		for len(samples) < 16384 {
			pol := sampler.ReadNew()
			for _, c := range pol.Coeffs {
				require.Less(t, c, q)
				// Centered representative for the statistics.
				if c > q/2 {
					samples = append(samples, float64(c)-float64(q))
					require.LessOrEqual(t, float64(q-c), DefaultBound)
				} else {
					samples = append(samples, float64(c))
					require.LessOrEqual(t, float64(c), DefaultBound)
				}
			}
		}

		mean, err := stats.Mean(samples)
		require.NoError(t, err)
		require.InDelta(t, 0, mean, 0.2)

		sd, err := stats.StandardDeviation(samples)
		require.NoError(t, err)
		require.InDelta(t, DefaultSigma, sd, 0.15)
	})
}

func testTernarySampler(tc *testParams, t *testing.T) {

	t.Run(testString("TernarySampler", tc.ringQ), func(t *testing.T) {

		q := tc.ringQ.Modulus
		p := sampling.RandFloat64(0.3, 0.7)

		_, err := NewTernarySampler(tc.prng, tc.ringQ, Ternary{P: 0})
		require.Error(t, err)

		sampler, err := NewTernarySampler(tc.prng, tc.ringQ, Ternary{P: p})
		require.NoError(t, err)

		var nonZero, total int
		for total < 16384 {
			pol := sampler.ReadNew()
			for _, c := range pol.Coeffs {
				require.True(t, c == 0 || c == 1 || c == q-1)
				if c != 0 {
					nonZero++
				}
				total++
			}
		}

		require.InDelta(t, p, float64(nonZero)/float64(total), 0.05)
	})
}
