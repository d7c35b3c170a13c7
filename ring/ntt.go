package ring

// NTT computes the forward negacyclic number-theoretic transform of p1,
// returning the result on p2. The ring must support the NTT (q ≡ 1 mod 2N).
func (r *Ring) NTT(p1, p2 Poly) {
	r.checkDegree(p1, p2)
	if !r.SupportsNTT() {
		// Sanity check, callers must verify SupportsNTT.
		panic("cannot NTT: q != 1 mod 2N")
	}
	if &p1.Coeffs[0] != &p2.Coeffs[0] {
		p2.Copy(p1)
	}
	nttCore(p2.Coeffs, r.N, r.Modulus, r.MRedConstant, r.RootsForward)
}

// INTT computes the inverse negacyclic number-theoretic transform of p1,
// returning the result on p2. The ring must support the NTT (q ≡ 1 mod 2N).
func (r *Ring) INTT(p1, p2 Poly) {
	r.checkDegree(p1, p2)
	if !r.SupportsNTT() {
		// Sanity check, callers must verify SupportsNTT.
		panic("cannot INTT: q != 1 mod 2N")
	}
	if &p1.Coeffs[0] != &p2.Coeffs[0] {
		p2.Copy(p1)
	}
	inttCore(p2.Coeffs, r.N, r.Modulus, r.MRedConstant, r.NInv, r.RootsBackward)
}

// nttCore is the Cooley-Tukey butterfly network over the bit-reversed
// Montgomery-form table of powers of psi, a primitive 2N-th root of unity.
// Operates in place, with all values kept in [0, q).
func nttCore(p []uint64, N int, q, mredConstant uint64, rootsForward []uint64) {

	t := N

	for m := 1; m < N; m <<= 1 {

		t >>= 1

		for i := 0; i < m; i++ {

			j1 := 2 * i * t
			j2 := j1 + t
			F := rootsForward[m+i]

			for j := j1; j < j2; j++ {
				U := p[j]
				V := MRed(p[j+t], F, q, mredConstant)
				p[j] = CRed(U+V, q)
				p[j+t] = CRed(U+q-V, q)
			}
		}
	}
}

// inttCore is the Gentleman-Sande inverse butterfly network, followed by the
// multiplication by N^-1. Operates in place, with all values kept in [0, q).
func inttCore(p []uint64, N int, q, mredConstant, nInv uint64, rootsBackward []uint64) {

	t := 1

	for m := N; m > 1; m >>= 1 {

		j1 := 0
		h := m >> 1

		for i := 0; i < h; i++ {

			j2 := j1 + t
			F := rootsBackward[h+i]

			for j := j1; j < j2; j++ {
				U := p[j]
				V := p[j+t]
				p[j] = CRed(U+V, q)
				p[j+t] = MRed(U+q-V, F, q, mredConstant)
			}

			j1 += t << 1
		}

		t <<= 1
	}

	for j := 0; j < N; j++ {
		p[j] = MRed(p[j], nInv, q, mredConstant)
	}
}
