package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/IvanChernomyrdin/go-inotebook/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-inotebook/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-inotebook/internal/shared/errors"
)

const (
	MaxNameLen     = 100
	MinPasswordLen = 8
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthService реализует регистрацию и вход.
//
// Сервер не хранит сессии: при успехе выдаётся подписанный токен,
// который клиент передаёт в заголовке при каждом запросе.
type AuthService struct {
	users  UsersRepo
	hasher crypto.PasswordHasher
	tokens TokenIssuer

	// хэш-заглушка для выравнивания времени ответа на неизвестный email
	dummyOnce sync.Once
	dummyHash string
}

// Session — результат успешной регистрации или входа.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      models.User
}

// NewAuthService создаёт AuthService с зависимостями.
func NewAuthService(users UsersRepo, hasher crypto.PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// NormalizeEmail обрезает пробелы и приводит email к нижнему регистру.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register регистрирует нового пользователя и сразу выдаёт токен.
//
// Валидация:
//   - name обязателен, не длиннее 100 символов
//   - email обязателен и должен быть валидным
//   - пароль от 8 до 72 байт
//
// Ошибки:
//   - ErrInvalidInput при некорректных данных
//   - ErrAlreadyExists если email уже зарегистрирован
func (s *AuthService) Register(ctx context.Context, name, email, password string) (Session, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	switch {
	case name == "":
		return Session{}, fmt.Errorf("%w: name is required", serr.ErrInvalidInput)
	case utf8.RuneCountInString(name) > MaxNameLen:
		return Session{}, fmt.Errorf("%w: name is too long", serr.ErrInvalidInput)
	case !emailRe.MatchString(email):
		return Session{}, fmt.Errorf("%w: invalid email", serr.ErrInvalidInput)
	case len(password) < MinPasswordLen:
		return Session{}, fmt.Errorf("%w: password must be at least %d characters", serr.ErrInvalidInput, MinPasswordLen)
	case len(password) > crypto.MaxPasswordBytes:
		return Session{}, fmt.Errorf("%w: password must be at most %d bytes", serr.ErrInvalidInput, crypto.MaxPasswordBytes)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return Session{}, fmt.Errorf("%w: hash password: %v", serr.ErrInternal, err)
	}

	u, err := s.users.Create(ctx, name, email, hash)
	if err != nil {
		return Session{}, err
	}

	return s.issue(u)
}

// Login аутентифицирует пользователя и выдаёт токен.
//
// Поведение:
//   - не раскрывает факт существования email
//
// Ошибки:
//   - ErrInvalidInput
//   - ErrInvalidCredentials
func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return Session{}, fmt.Errorf("%w: email and password are required", serr.ErrInvalidInput)
	}
	// такой пароль не мог быть зарегистрирован, в базу не ходим
	if len(password) > crypto.MaxPasswordBytes {
		return Session{}, serr.ErrInvalidCredentials
	}

	// получаем юзера по email
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// не палим существование email
		if errors.Is(err, serr.ErrNotFound) {
			s.burnVerify(password)
			return Session{}, serr.ErrInvalidCredentials
		}
		return Session{}, err
	}

	// проверяем пароль
	ok, err := s.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		return Session{}, fmt.Errorf("%w: verify password: %v", serr.ErrInternal, err)
	}
	if !ok {
		return Session{}, serr.ErrInvalidCredentials
	}

	return s.issue(u)
}

func (s *AuthService) issue(u models.User) (Session, error) {
	tok, err := s.tokens.Issue(u.ID.String())
	if err != nil {
		return Session{}, fmt.Errorf("%w: issue token: %v", serr.ErrInternal, err)
	}
	return Session{Token: tok.Value, ExpiresAt: tok.ExpiresAt, User: u}, nil
}

// burnVerify тратит столько же времени, сколько проверка настоящего пароля.
func (s *AuthService) burnVerify(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("inotebook-dummy-password")
	})
	if s.dummyHash == "" {
		return
	}
	_, _ = s.hasher.Verify(password, s.dummyHash)
}
