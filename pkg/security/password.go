// Package security hashes and verifies user passwords with Argon2id. The
// parameters are embedded in the encoded hash so verification keeps working
// after the configured cost changes.
package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/rmartelo/freightops-backend/pkg/config"
)

// ErrInvalidHash signals an encoded hash that is not in the
// $argon2id$v=19$m=..,t=..,p=..$salt$hash format.
var ErrInvalidHash = fmt.Errorf("invalid argon2id hash")

type argonParams struct {
	memory      uint32
	time        uint32
	parallelism uint8
	saltLen     uint32
	keyLen      uint32
}

// HashPassword derives an Argon2id hash of password using the configured
// cost and returns it in the standard encoded form.
func HashPassword(password string, cfg config.PasswordConfig) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	p := costFromConfig(cfg)
	salt := make([]byte, p.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, p.time, p.memory, p.parallelism, p.keyLen)

	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		p.memory, p.time, p.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifyPassword reports whether password matches the encoded hash. The
// comparison is constant time.
func VerifyPassword(password, encoded string) (bool, error) {
	p, salt, want, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}

	got := argon2.IDKey([]byte(password), salt, p.time, p.memory, p.parallelism, p.keyLen)
	return subtle.ConstantTimeCompare(want, got) == 1, nil
}

func costFromConfig(cfg config.PasswordConfig) argonParams {
	return argonParams{
		memory:      clamp(cfg.ArgonMemoryKB, 8, 512*1024),
		time:        clamp(cfg.ArgonTime, 1, 10),
		parallelism: uint8(clamp(cfg.ArgonParallelism, 1, 255)),
		saltLen:     clamp(cfg.ArgonSaltLen, 8, 64),
		keyLen:      clamp(cfg.ArgonKeyLen, 16, 64),
	}
}

func decodeHash(encoded string) (argonParams, []byte, []byte, error) {
	var (
		version           int
		memory, time      uint32
		parallelism       uint8
		saltPart, keyPart string
	)
	n, err := fmt.Sscanf(encoded, "$argon2id$v=%d$m=%d,t=%d,p=%d$%s", &version, &memory, &time, &parallelism, &saltPart)
	if err != nil || n != 5 {
		return argonParams{}, nil, nil, ErrInvalidHash
	}
	// Sscanf's %s is greedy, so salt and key arrive as one $-joined token.
	sep := -1
	for i := range saltPart {
		if saltPart[i] == '$' {
			sep = i
			break
		}
	}
	if sep <= 0 || sep == len(saltPart)-1 {
		return argonParams{}, nil, nil, ErrInvalidHash
	}
	keyPart = saltPart[sep+1:]
	saltPart = saltPart[:sep]

	salt, err := base64.RawStdEncoding.DecodeString(saltPart)
	if err != nil {
		return argonParams{}, nil, nil, ErrInvalidHash
	}
	key, err := base64.RawStdEncoding.DecodeString(keyPart)
	if err != nil {
		return argonParams{}, nil, nil, ErrInvalidHash
	}

	p := argonParams{
		memory:      memory,
		time:        time,
		parallelism: parallelism,
		saltLen:     uint32(len(salt)),
		keyLen:      uint32(len(key)),
	}
	return p, salt, key, nil
}

func clamp(value, min, max int) uint32 {
	if value < min {
		value = min
	}
	if value > max {
		value = max
	}
	return uint32(value)
}
