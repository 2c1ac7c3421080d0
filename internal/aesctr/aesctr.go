// Package aesctr wraps AES-256-CTR, the wire's symmetric primitive.
// It is unauthenticated: the frame's CRC-32 trailer is the only
// integrity check, so the construction is aes.NewCipher followed by
// cipher.NewCTR rather than an AEAD mode.
package aesctr

import (
	"crypto/aes"
	"crypto/cipher"

	"aethersteg/internal/linkerr"
)

// KeySize is the required AES-256 key length in bytes.
const KeySize = 32

// IVSize is the required CTR nonce/IV length in bytes (one AES block).
const IVSize = aes.BlockSize

// Encrypt and Decrypt are the same operation: CTR mode is a stream
// cipher, so XORing the keystream a second time recovers the
// plaintext. They are kept as two named functions for call-site
// clarity, not because the logic differs.

// Encrypt returns plaintext XORed with the AES-256-CTR keystream
// derived from key and iv.
func Encrypt(key, iv, plaintext []byte) ([]byte, error) {
	return crypt(key, iv, plaintext)
}

// Decrypt returns ciphertext XORed with the AES-256-CTR keystream
// derived from key and iv.
func Decrypt(key, iv, ciphertext []byte) ([]byte, error) {
	out, err := crypt(key, iv, ciphertext)
	if err != nil {
		return nil, linkerr.Wrap(linkerr.DecryptFailed, err, "AES-256-CTR decrypt")
	}
	return out, nil
}

func crypt(key, iv, in []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, linkerr.New(linkerr.ConfigError, "AES-256 key must be %d bytes, got %d", KeySize, len(key))
	}
	if len(iv) != IVSize {
		return nil, linkerr.New(linkerr.ConfigError, "CTR IV must be %d bytes, got %d", IVSize, len(iv))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, linkerr.Wrap(linkerr.InternalInconsistency, err, "cipher construction")
	}

	out := make([]byte, len(in))
	stream := cipher.NewCTR(block, iv)
	stream.XORKeyStream(out, in)
	return out, nil
}
