package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"taskflow/internal/domain"
	"taskflow/internal/email"
	"taskflow/internal/repository"
)

// UserService coordina registro y autenticación de usuarios.
type UserService struct {
	logger        *zap.Logger
	users         repository.UserRepository
	emailSender   email.Sender
	signinLimiter AttemptLimiter
	bcryptCost    int
}

func NewUserService(logger *zap.Logger, users repository.UserRepository, emailSender email.Sender, signinLimiter AttemptLimiter, bcryptCost int) *UserService {
	if signinLimiter == nil {
		signinLimiter = NewAttemptLimiter(15*time.Minute, 5)
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		logger:        logger,
		users:         users,
		emailSender:   emailSender,
		signinLimiter: signinLimiter,
		bcryptCost:    bcryptCost,
	}
}

type RegisterInput struct {
	Email       string
	DisplayName string
	Password    string
}

// Register valida la política de contraseñas, persiste el usuario y envía
// un correo de bienvenida de mejor esfuerzo.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}

	emailAddr := normalizeEmail(input.Email)
	displayName := strings.TrimSpace(input.DisplayName)

	v := domain.NewValidationError()
	if emailAddr == "" {
		v.Add("email", "must be provided")
	}
	if msg := CheckPasswordPolicy(input.Password); msg != "" {
		v.Add("password", msg)
	}
	if v.HasErrors() {
		return domain.User{}, v
	}

	passwordHash, err := HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Email:        emailAddr,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return domain.User{}, err
	}

	if s.emailSender != nil {
		if err := s.emailSender.SendWelcome(ctx, user.Email, user.DisplayName); err != nil {
			if s.logger != nil {
				s.logger.Warn("send welcome email failed", zap.Error(err), zap.String("email", user.Email))
			}
		}
	}

	return user, nil
}

// Authenticate verifica credenciales. El limitador de intentos se consulta
// antes de tocar la base; un email bloqueado falla con ErrRateLimited.
func (s *UserService) Authenticate(ctx context.Context, emailAddr, password string) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}

	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" || password == "" {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	if s.signinLimiter != nil && !s.signinLimiter.Allow(emailAddr) {
		return domain.User{}, domain.ErrRateLimited
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.User{}, domain.ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if user.PasswordHash == "" || !VerifyPassword(password, user.PasswordHash) {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return user, nil
}

// GetByID resuelve el perfil del usuario autenticado.
func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}
	return s.users.GetByID(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
