// Package security hashes and verifies API keys with argon2id.
package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

var (
	ErrInvalidKeyHash         = errors.New("invalid API key hash format")
	ErrIncompatibleKeyVersion = errors.New("incompatible API key hash version")
	ErrKeyMismatch            = errors.New("API key does not match")
	ErrEmptyKey               = errors.New("API key is empty")
)

// Argon2idParams tunes the key derivation.
type Argon2idParams struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

var DefaultArgon2idParams = Argon2idParams{
	Memory:      64 * 1024,
	Iterations:  3,
	Parallelism: 2,
	SaltLength:  16,
	KeyLength:   32,
}

// HashKey returns the encoded argon2id hash of key in the
// $argon2id$v=19$m=...,t=...,p=...$salt$hash format.
func HashKey(key string, params Argon2idParams) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	salt := make([]byte, params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(key), salt, params.Iterations, params.Memory, params.Parallelism, params.KeyLength)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	format := "$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s"
	return fmt.Sprintf(format, argon2.Version, params.Memory, params.Iterations, params.Parallelism, b64Salt, b64Hash), nil
}

type encodedHash struct {
	params Argon2idParams
	salt   []byte
	hash   []byte
}

func decodeHash(encoded string) (encodedHash, error) {
	parts := strings.Split(strings.TrimSpace(encoded), "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return encodedHash{}, ErrInvalidKeyHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return encodedHash{}, fmt.Errorf("%w: %v", ErrInvalidKeyHash, err)
	}
	if version != argon2.Version {
		return encodedHash{}, ErrIncompatibleKeyVersion
	}

	var out encodedHash
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &out.params.Memory, &out.params.Iterations, &out.params.Parallelism); err != nil {
		return encodedHash{}, fmt.Errorf("%w: %v", ErrInvalidKeyHash, err)
	}

	var err error
	if out.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return encodedHash{}, fmt.Errorf("%w: %v", ErrInvalidKeyHash, err)
	}
	if out.hash, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return encodedHash{}, fmt.Errorf("%w: %v", ErrInvalidKeyHash, err)
	}
	if len(out.hash) == 0 {
		return encodedHash{}, ErrInvalidKeyHash
	}
	out.params.SaltLength = uint32(len(out.salt))
	out.params.KeyLength = uint32(len(out.hash))
	return out, nil
}

func (h encodedHash) matches(key string) bool {
	comparison := argon2.IDKey([]byte(key), h.salt, h.params.Iterations, h.params.Memory, h.params.Parallelism, h.params.KeyLength)
	return subtle.ConstantTimeCompare(h.hash, comparison) == 1
}

// VerifyKey checks key against an encoded hash.
func VerifyKey(encoded, key string) error {
	h, err := decodeHash(encoded)
	if err != nil {
		return err
	}
	if !h.matches(key) {
		return ErrKeyMismatch
	}
	return nil
}

// KeyVerifier checks request keys against one configured hash. Accepted keys
// are remembered by SHA-256 digest so argon2 runs once per distinct key.
type KeyVerifier struct {
	hash     encodedHash
	accepted sync.Map
}

// NewKeyVerifier parses the encoded hash up front.
func NewKeyVerifier(encoded string) (*KeyVerifier, error) {
	h, err := decodeHash(encoded)
	if err != nil {
		return nil, err
	}
	return &KeyVerifier{hash: h}, nil
}

// Verify reports whether key matches the configured hash.
func (v *KeyVerifier) Verify(key string) bool {
	if v == nil || key == "" {
		return false
	}
	digest := sha256.Sum256([]byte(key))
	if _, ok := v.accepted.Load(digest); ok {
		return true
	}
	if !v.hash.matches(key) {
		return false
	}
	v.accepted.Store(digest, struct{}{})
	return true
}
