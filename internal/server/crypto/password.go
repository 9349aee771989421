// Хэширование паролей
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes — bcrypt учитывает только первые 72 байта пароля.
const MaxPasswordBytes = 72

// maxArgon2MemoryKiB — верхняя граница m в сохранённом хэше (1 GiB).
const maxArgon2MemoryKiB = 1 << 20

var (
	errEmptyPassword   = errors.New("empty password")
	errPasswordTooLong = errors.New("password too long")
)

// PasswordHasher — одностороннее хэширование пароля с солью и проверка.
//
// Hash для одного и того же пароля каждый раз возвращает разный результат
// (соль случайная). Verify возвращает false без ошибки, если пароль не подходит,
// и ошибку, если сам хэш повреждён.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// NewPasswordHasher выбирает реализацию по имени из конфига: bcrypt|argon2id.
func NewPasswordHasher(kind string, bcryptCost int, argon Argon2Params) (PasswordHasher, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "bcrypt":
		if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
			return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", bcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
		}
		return BcryptHasher{Cost: bcryptCost}, nil
	case "argon2id":
		if argon.Time == 0 || argon.MemoryKiB == 0 || argon.Threads == 0 || argon.KeyLen == 0 || argon.SaltLen == 0 {
			return nil, errors.New("argon2id params must be set")
		}
		if argon.MemoryKiB > maxArgon2MemoryKiB {
			return nil, fmt.Errorf("argon2id memory %d KiB exceeds %d KiB", argon.MemoryKiB, maxArgon2MemoryKiB)
		}
		return Argon2Hasher{Params: argon}, nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", kind)
	}
}

func checkPassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return errEmptyPassword
	}
	if len(password) > MaxPasswordBytes {
		return errPasswordTooLong
	}
	return nil
}

// BcryptHasher хэширует пароли через bcrypt с заданной стоимостью.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	if err := checkPassword(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

func (h BcryptHasher) Verify(password, encoded string) (bool, error) {
	// хвост после 72 байт bcrypt отбросит, такой пароль не может совпасть
	if len(password) > MaxPasswordBytes {
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("invalid hash format: %w", err)
	}
}

type Argon2Params struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
	KeyLen    uint32
	SaltLen   uint32
}

// Argon2Hasher хэширует пароли через argon2id.
type Argon2Hasher struct {
	Params Argon2Params
}

func (h Argon2Hasher) Hash(password string) (string, error) {
	if err := checkPassword(password); err != nil {
		return "", err
	}
	return HashPassword(password, h.Params)
}

func (h Argon2Hasher) Verify(password, encoded string) (bool, error) {
	if len(password) > MaxPasswordBytes {
		return false, nil
	}
	return VerifyPassword(password, encoded)
}

// HashPassword возвращает строку формата:
// argon2id$v=19$m=65536,t=3,p=2$<salt_b64>$<hash_b64>
func HashPassword(password string, p Argon2Params) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errEmptyPassword
	}

	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("read salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, p.Time, p.MemoryKiB, p.Threads, p.KeyLen)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	encoded := fmt.Sprintf(
		"argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.MemoryKiB, p.Time, p.Threads,
		b64Salt, b64Hash,
	)
	return encoded, nil
}

func VerifyPassword(password, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 || parts[0] != "argon2id" {
		return false, errors.New("invalid hash format")
	}

	// parts[1] = v=19
	// parts[2] = m=...,t=...,p=...
	// parts[3] = salt
	// parts[4] = hash
	var version int
	if _, err := fmt.Sscanf(parts[1], "v=%d", &version); err != nil || version != argon2.Version {
		return false, errors.New("unsupported argon2 version")
	}

	var memory uint32
	var time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[2], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, errors.New("invalid params format")
	}
	if memory == 0 || memory > maxArgon2MemoryKiB || time == 0 || threads == 0 {
		return false, errors.New("invalid params")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return false, errors.New("invalid salt")
	}

	wantHash, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(wantHash) == 0 {
		return false, errors.New("invalid hash")
	}

	got := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(wantHash)))
	return subtle.ConstantTimeCompare(got, wantHash) == 1, nil
}
