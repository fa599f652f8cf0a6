package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Supported password hash schemes.
const (
	HashSchemeSHA256   = "sha256"
	HashSchemeArgon2ID = "argon2id"
)

const argon2idPrefix = "$argon2id$"

var (
	// ErrUnknownHashScheme is returned by NewPasswordHasher for an unsupported scheme name.
	ErrUnknownHashScheme = errors.New("unknown password hash scheme")

	errMalformedArgon2Hash = errors.New("malformed argon2id hash")
)

// PasswordHasher turns plaintext passwords into stored digests and checks
// candidates against them.
//
// Every implementation verifies digests of all supported schemes, so stored
// values keep working after the configured scheme changes. NeedsRehash reports
// whether a verified digest should be replaced with one of the configured scheme.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
	NeedsRehash(digest string) bool
}

// NewPasswordHasher returns the hasher for the given scheme. An empty scheme
// selects the legacy sha256 scheme.
func NewPasswordHasher(scheme string) (PasswordHasher, error) {
	switch scheme {
	case "", HashSchemeSHA256:
		return SHA256Hasher{}, nil
	case HashSchemeArgon2ID:
		return NewArgon2idHasher(DefaultArgon2Params), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHashScheme, scheme)
	}
}

// SHA256Hasher is the legacy scheme: lowercase hex SHA-256 of the UTF-8
// password, unsalted. Identical passwords produce identical digests.
type SHA256Hasher struct{}

// Hash implements [PasswordHasher]. It never fails.
func (SHA256Hasher) Hash(password string) (string, error) {
	return sha256Hex(password), nil
}

// Verify implements [PasswordHasher].
func (SHA256Hasher) Verify(password, digest string) bool {
	return verifyAny(password, digest)
}

// NeedsRehash implements [PasswordHasher]. Digests are never upgraded.
func (SHA256Hasher) NeedsRehash(string) bool {
	return false
}

// Argon2Params holds the argon2id cost parameters.
type Argon2Params struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	KeyLen  uint32
	SaltLen int
}

// DefaultArgon2Params follows the RFC 9106 second recommended option.
var DefaultArgon2Params = Argon2Params{
	Time:    3,
	Memory:  64 * 1024,
	Threads: 4,
	KeyLen:  32,
	SaltLen: 16,
}

// Argon2idHasher stores salted argon2id digests in the PHC string format
// $argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<key>.
type Argon2idHasher struct {
	params Argon2Params
}

// NewArgon2idHasher constructs an [Argon2idHasher] with the given parameters.
func NewArgon2idHasher(params Argon2Params) *Argon2idHasher {
	return &Argon2idHasher{params: params}
}

// Hash implements [PasswordHasher]. It fails only if the random source fails.
func (h *Argon2idHasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("error generating salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)

	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2idPrefix,
		argon2.Version,
		h.params.Memory, h.params.Time, h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify implements [PasswordHasher].
func (h *Argon2idHasher) Verify(password, digest string) bool {
	return verifyAny(password, digest)
}

// NeedsRehash implements [PasswordHasher]. Legacy digests and argon2id
// digests with different cost parameters are upgraded.
func (h *Argon2idHasher) NeedsRehash(digest string) bool {
	params, _, _, err := decodeArgon2id(digest)
	if err != nil {
		return true
	}
	return params.Time != h.params.Time || params.Memory != h.params.Memory || params.Threads != h.params.Threads
}

func verifyAny(password, digest string) bool {
	if strings.HasPrefix(digest, argon2idPrefix) {
		params, salt, key, err := decodeArgon2id(digest)
		if err != nil {
			return false
		}
		candidate := argon2.IDKey([]byte(password), salt, params.Time, params.Memory, params.Threads, uint32(len(key)))
		return subtle.ConstantTimeCompare(candidate, key) == 1
	}

	return subtle.ConstantTimeCompare([]byte(sha256Hex(password)), []byte(digest)) == 1
}

func decodeArgon2id(digest string) (Argon2Params, []byte, []byte, error) {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[1] != HashSchemeArgon2ID {
		return Argon2Params{}, nil, nil, errMalformedArgon2Hash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return Argon2Params{}, nil, nil, errMalformedArgon2Hash
	}

	var params Argon2Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Time, &params.Threads); err != nil {
		return Argon2Params{}, nil, nil, errMalformedArgon2Hash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return Argon2Params{}, nil, nil, errMalformedArgon2Hash
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return Argon2Params{}, nil, nil, errMalformedArgon2Hash
	}

	params.SaltLen = len(salt)
	params.KeyLen = uint32(len(key))
	return params, salt, key, nil
}

func sha256Hex(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
