// Package crypto содержит криптографические примитивы сервера iNotebook.
//
// В частности, пакет отвечает за:
//   - выпуск и проверку подписанных JWT токенов сессии (HS256);
//   - хэширование и проверку паролей (bcrypt, argon2id).
//
// Токены не хранятся на сервере: вся информация о сессии лежит в самом токене,
// а подлинность обеспечивается подписью секретным ключом процесса.
package crypto

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	serr "github.com/IvanChernomyrdin/go-inotebook/internal/shared/errors"
)

// JWTConfig описывает параметры выпуска токена.
type JWTConfig struct {
	// Issuer — значение поля iss (кто выдал токен).
	Issuer string
	// Audience — значение поля aud (для кого предназначен токен).
	Audience string
	// SigningKey — секретный ключ для подписи токена (HS256).
	// Передаётся из конфигурации, в коде не хранится.
	SigningKey string
	// TTL — срок жизни токена.
	TTL time.Duration
}

// Token — выпущенный токен и его временные границы.
type Token struct {
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenManager выпускает и проверяет токены сессии.
// После создания не изменяется и безопасен для конкурентного использования.
type TokenManager struct {
	cfg    JWTConfig
	key    []byte
	now    func() time.Time
	parser *jwt.Parser
}

// TokenOption настраивает TokenManager.
type TokenOption func(*TokenManager)

// WithClock подменяет источник времени (для тестов).
func WithClock(now func() time.Time) TokenOption {
	return func(m *TokenManager) {
		m.now = now
	}
}

// NewTokenManager создаёт TokenManager. Пустой ключ или неположительный TTL — ошибка.
func NewTokenManager(cfg JWTConfig, opts ...TokenOption) (*TokenManager, error) {
	if strings.TrimSpace(cfg.SigningKey) == "" {
		return nil, errors.New("jwt signing key is empty")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("jwt ttl must be positive")
	}

	m := &TokenManager{
		cfg: cfg,
		key: []byte(cfg.SigningKey),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	}
	if cfg.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(cfg.Audience))
	}
	m.parser = jwt.NewParser(parserOpts...)

	return m, nil
}

// Issue создаёт и подписывает токен для пользователя.
//
// Токен содержит стандартные RegisteredClaims:
//   - sub (subjectID)
//   - iat (IssuedAt)
//   - exp (IssuedAt + TTL)
//   - iss, aud (если заданы)
func (m *TokenManager) Issue(subjectID string) (Token, error) {
	if strings.TrimSpace(subjectID) == "" {
		return Token{}, errors.New("empty token subject")
	}

	// NumericDate хранит секунды, поэтому сразу отбрасываем дробную часть
	now := m.now().Truncate(time.Second)
	exp := now.Add(m.cfg.TTL)

	claims := jwt.RegisteredClaims{
		Issuer:    m.cfg.Issuer,
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	if m.cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{m.cfg.Audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}

	return Token{Value: signed, IssuedAt: now, ExpiresAt: exp}, nil
}

// Verify проверяет токен и возвращает subject.
//
// Ошибки (проверять через errors.Is):
//   - ErrTokenMalformed — не три сегмента, битый base64 или JSON;
//   - ErrTokenSignature — подпись не совпала или алгоритм не HS256;
//   - ErrTokenExpired — exp <= now;
//   - ErrTokenClaims — нет subject, чужой iss/aud, iat в будущем.
//
// Подпись сравнивается за константное время (hmac.Equal внутри jwt).
func (m *TokenManager) Verify(token string) (string, error) {
	if token == "" {
		return "", serr.ErrTokenMissing
	}

	claims := &jwt.RegisteredClaims{}
	_, err := m.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return m.key, nil
	})
	if err != nil {
		return "", classifyJWTError(err)
	}

	sub := strings.TrimSpace(claims.Subject)
	if sub == "" {
		return "", fmt.Errorf("%w: empty subject", serr.ErrTokenClaims)
	}
	return sub, nil
}

func classifyJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %w", serr.ErrTokenMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", serr.ErrTokenSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", serr.ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %w", serr.ErrTokenClaims, err)
	}
}
