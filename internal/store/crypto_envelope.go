package store

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"coopdesk/internal/util/memzero"
)

// sealedFormatVersion is the current version of the encrypted blob format.
const sealedFormatVersion = 1

// ErrWrongPassphrase is returned when the passphrase is incorrect or the
// ciphertext has been modified.
var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted session")

// sealed is the on-disk JSON structure holding the ciphertext and KDF
// parameters.
type sealed struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	Nonce  []byte `json:"nonce"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

type kdfParams struct{ N, r, p int }

// defaultKDF matches the interactive-login recommendation for scrypt.
var defaultKDF = kdfParams{N: 1 << 15, r: 8, p: 1}

// seal derives a key from passphrase and encrypts raw into a JSON blob.
// The salt doubles as associated data.
func seal(passphrase string, raw []byte, kp kdfParams) ([]byte, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	key, err := scrypt.Key([]byte(passphrase), salt, kp.N, kp.r, kp.p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return json.Marshal(sealed{
		V:      sealedFormatVersion,
		Salt:   salt,
		Nonce:  nonce,
		N:      kp.N,
		R:      kp.r,
		P:      kp.p,
		Cipher: aead.Seal(nil, nonce, raw, salt),
	})
}

// open reverses seal.
func open(passphrase string, b []byte) ([]byte, error) {
	var s sealed
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decode session blob: %w", err)
	}
	if s.V > sealedFormatVersion {
		return nil, fmt.Errorf("unsupported session format version %d", s.V)
	}
	key, err := scrypt.Key([]byte(passphrase), s.Salt, s.N, s.R, s.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	if len(s.Nonce) != aead.NonceSize() {
		return nil, ErrWrongPassphrase
	}
	pt, err := aead.Open(nil, s.Nonce, s.Cipher, s.Salt)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}
