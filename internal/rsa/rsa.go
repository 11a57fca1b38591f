// Package rsa implements textbook RSA key recovery on top of the modular
// kernel: given the two prime factors an attacker produced, it derives the
// private exponent, and offers a per-character encrypt/decrypt round trip to
// demonstrate that the recovered key actually works.
//
// This is deliberately the textbook construction with no padding, no blinding,
// one byte per ciphertext block. It exists to close the attack story, not to
// be used as a cipher.
package rsa

import (
	apperrors "github.com/agbru/snfscalc/internal/errors"
	"github.com/agbru/snfscalc/internal/u128"
)

// Key is a recovered RSA private key.
type Key struct {
	// N is the public modulus p * q.
	N u128.Uint128
	// E is the public exponent.
	E u128.Uint128
	// Phi is Euler's totient (p-1)(q-1).
	Phi u128.Uint128
	// D is the private exponent, the inverse of E modulo Phi.
	D u128.Uint128
}

// RecoverKey derives the private key from the factorization p * q of the
// modulus and the public exponent e.
//
// Parameters:
//   - p: One prime factor of the modulus.
//   - q: The other prime factor.
//   - e: The public exponent.
//
// Returns:
//   - Key: The recovered key material.
//   - error: A ValidationError if e is not coprime to phi(n), or a
//     ConfigError if p * q overflows 128 bits.
func RecoverKey(p, q, e u128.Uint128) (Key, error) {
	n, overflow := p.Mul(q)
	if overflow {
		return Key{}, apperrors.NewConfigError("modulus p*q overflows 128 bits")
	}
	// phi = (p-1)(q-1) = n - p - q + 1; the subtraction form never overflows.
	phi := n.Sub(p).Sub(q).Add(u128.One)

	if g := u128.Gcd(e, phi); g.Cmp(u128.One) != 0 {
		return Key{}, apperrors.NewValidationError("e", "not coprime to phi(n), no private exponent exists")
	}
	d, ok := u128.ModInverse(e, phi)
	if !ok {
		return Key{}, apperrors.NewValidationError("e", "not invertible modulo phi(n)")
	}
	return Key{N: n, E: e, Phi: phi, D: d}, nil
}

// Encrypt encrypts plaintext one byte at a time: c = b^e mod n.
// The modulus must exceed 255 so that byte values are distinct residues.
//
// Parameters:
//   - plaintext: The bytes to encrypt.
//   - n: The public modulus.
//   - e: The public exponent.
//
// Returns:
//   - []u128.Uint128: One ciphertext block per input byte.
//   - error: A ValidationError if the modulus is too small.
func Encrypt(plaintext []byte, n, e u128.Uint128) ([]u128.Uint128, error) {
	if n.Cmp(u128.From64(255)) <= 0 {
		return nil, apperrors.NewValidationError("n", "modulus must exceed 255 for per-byte encryption")
	}
	blocks := make([]u128.Uint128, len(plaintext))
	for i, b := range plaintext {
		blocks[i] = u128.PowMod(u128.From64(uint64(b)), e, n)
	}
	return blocks, nil
}

// Decrypt reverses Encrypt with the private exponent: b = c^d mod n.
//
// Parameters:
//   - ciphertext: The ciphertext blocks.
//   - n: The modulus.
//   - d: The private exponent.
//
// Returns:
//   - []byte: The decrypted bytes.
//   - error: A ValidationError if a decrypted block is not a byte value.
func Decrypt(ciphertext []u128.Uint128, n, d u128.Uint128) ([]byte, error) {
	plaintext := make([]byte, len(ciphertext))
	for i, c := range ciphertext {
		m := u128.PowMod(c, d, n)
		if !m.IsUint64() || m.Uint64() > 255 {
			return nil, apperrors.NewValidationError("ciphertext", "block decrypts outside byte range")
		}
		plaintext[i] = byte(m.Uint64())
	}
	return plaintext, nil
}
