package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskpress/backend/domain"
	"github.com/taskpress/backend/pkg/httpcontext"
	"github.com/taskpress/backend/repository"
)

// UseCase manages credentials: registration, password login, and
// password rotation. Raw passwords exist only transiently here; the
// store only ever sees bcrypt hashes.
type UseCase struct {
	users  repository.UserRepository
	cost   int
	logger *zap.Logger
}

func New(users repository.UserRepository, bcryptCost int, logger *zap.Logger) *UseCase {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		cost:   bcryptCost,
		logger: logger,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func (in RegisterInput) validate() error {
	v := domain.NewValidation()
	if !domain.ValidUserName(in.Name) {
		v.Add("name", "must be between 2 and 50 characters")
	}
	if !domain.ValidEmail(domain.NormalizeEmail(in.Email)) {
		v.Add("email", "must be a valid email address")
	}
	if !domain.ValidPassword(in.Password) {
		v.Add("password", "must be between 6 and 72 characters")
	}
	return v.Err()
}

// Register creates an account with the default role. The email is
// folded to lower case before storage so lookups stay case-insensitive.
func (uc *UseCase) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "password hashing failed", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        domain.NormalizeEmail(in.Email),
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}

	created, err := uc.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("user registered", zap.String("user_id", created.ID))
	return created, nil
}

// Login verifies the password for the account behind email. Unknown
// email and wrong password produce the same error so callers cannot
// probe which accounts exist.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := uc.users.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			uc.logger.Debug("login for unknown email",
				zap.String("remote_addr", httpcontext.RemoteAddr(ctx)))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		uc.logger.Debug("login with wrong password",
			zap.String("user_id", user.ID),
			zap.String("remote_addr", httpcontext.RemoteAddr(ctx)))
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// ChangePassword rotates the hash after verifying the current password.
func (uc *UseCase) ChangePassword(ctx context.Context, userID, current, next string) error {
	v := domain.NewValidation()
	if !domain.ValidPassword(next) {
		v.Add("new_password", "must be between 6 and 72 characters")
	}
	if err := v.Err(); err != nil {
		return err
	}

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), uc.cost)
	if err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "password hashing failed", err)
	}

	return uc.users.UpdatePasswordHash(ctx, userID, string(hash))
}
