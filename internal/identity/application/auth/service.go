package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskflow/taskflow/internal/identity/domain"
	"github.com/taskflow/taskflow/internal/shared/infrastructure/eventbus"
)

// ErrInvalidCredentials is returned when login credentials do not
// match an account. It deliberately does not distinguish an unknown
// email from a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Result carries the outcome of a successful register or login.
type Result struct {
	User  *domain.User
	Token string
}

// Service handles account registration and authentication.
type Service struct {
	userRepo  domain.UserRepository
	hasher    *PasswordHasher
	jwt       *JWTManager
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewService creates a new auth Service.
func NewService(userRepo domain.UserRepository, hasher *PasswordHasher, jwt *JWTManager, publisher eventbus.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = eventbus.NoopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		userRepo:  userRepo,
		hasher:    hasher,
		jwt:       jwt,
		publisher: publisher,
		logger:    logger,
	}
}

// Register creates a new account and returns a signed token for it.
func (s *Service) Register(ctx context.Context, name, email, password string) (Result, error) {
	validName, err := domain.NewName(name)
	if err != nil {
		return Result{}, err
	}

	validEmail, err := domain.NewEmail(email)
	if err != nil {
		return Result{}, err
	}

	if err := domain.ValidatePassword(password); err != nil {
		return Result{}, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, validEmail)
	if err != nil {
		return Result{}, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return Result{}, domain.ErrEmailTaken
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return Result{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.NewUser(validEmail, validName, passwordHash)
	if err := s.userRepo.Insert(ctx, user); err != nil {
		return Result{}, err
	}

	eventbus.PublishDomainEvents(ctx, s.publisher, s.logger, user.DomainEvents())
	user.ClearDomainEvents()

	token, err := s.jwt.Generate(user.ID().String(), user.Email().String())
	if err != nil {
		return Result{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return Result{User: user, Token: token}, nil
}

// Login authenticates a user and returns a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (Result, error) {
	validEmail, err := domain.NewEmail(email)
	if err != nil {
		return Result{}, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, validEmail)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return Result{}, ErrInvalidCredentials
		}
		return Result{}, err
	}

	if !s.hasher.Verify(password, user.PasswordHash()) {
		return Result{}, ErrInvalidCredentials
	}

	token, err := s.jwt.Generate(user.ID().String(), user.Email().String())
	if err != nil {
		return Result{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return Result{User: user, Token: token}, nil
}

// VerifyToken validates an access token and returns the user id it was
// issued for.
func (s *Service) VerifyToken(_ context.Context, token string) (uuid.UUID, error) {
	claims, err := s.jwt.Validate(token)
	if err != nil {
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return userID, nil
}
