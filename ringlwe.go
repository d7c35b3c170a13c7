/*
Package ringlwe is a from-scratch Go implementation of the Ring Learning-With-Errors
(RLWE) public-key encryption scheme. It provides a polynomial arithmetic engine over
the quotient ring R_q = Z_q[x]/(x^N + 1) and, on top of it, key generation,
encryption and decryption of binary-polynomial messages.

The library is intended as a reference implementation for study and experimentation:
it favors explicit, auditable arithmetic over performance and makes no claims of
side-channel or constant-time resistance.
*/
package ringlwe
