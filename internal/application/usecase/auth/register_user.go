// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/dompetku/backend/internal/application/adapter"
	"github.com/dompetku/backend/internal/domain/entity"
	domainerror "github.com/dompetku/backend/internal/domain/error"
)

const (
	// MaxUsernameLength is the maximum allowed length for usernames.
	MaxUsernameLength = 80
)

// RegisterUserInput represents the input for user registration.
type RegisterUserInput struct {
	Username string
	Password string
}

// RegisterUserOutput represents the output of user registration.
type RegisterUserOutput struct {
	UserID   uuid.UUID
	Username string
	Tokens   *adapter.TokenPair
}

// RegisterUserUseCase handles user registration logic.
type RegisterUserUseCase struct {
	userRepo        adapter.UserRepository
	categoryRepo    adapter.CategoryRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewRegisterUserUseCase creates a new RegisterUserUseCase instance.
func NewRegisterUserUseCase(
	userRepo adapter.UserRepository,
	categoryRepo adapter.CategoryRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:        userRepo,
		categoryRepo:    categoryRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute performs the user registration. A fixed starter set of categories
// is created alongside the account.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || len(username) > MaxUsernameLength {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingFields,
			fmt.Sprintf("username is required and must not exceed %d characters", MaxUsernameLength),
			nil,
		)
	}

	if err := uc.passwordService.ValidatePasswordStrength(input.Password); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeWeakPassword,
			"password does not meet minimum requirements",
			domainerror.ErrWeakPassword,
		)
	}

	exists, err := uc.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeUsernameExists,
			"username already exists",
			domainerror.ErrUsernameAlreadyExists,
		)
	}

	passwordHash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(username, passwordHash)
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Seed the starter category set. A failure here is logged but does not
	// fail the registration; missing categories can be created later by hand.
	starters := make([]*entity.Category, 0, len(entity.StarterCategories))
	for _, s := range entity.StarterCategories {
		starters = append(starters, entity.NewCategory(user.ID, s.Name, s.Type))
	}
	if err := uc.categoryRepo.CreateAll(ctx, starters); err != nil {
		slog.Warn("Failed to seed starter categories",
			"userID", user.ID,
			"error", err,
		)
	}

	tokens, err := uc.tokenService.GenerateTokenPair(ctx, user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &RegisterUserOutput{
		UserID:   user.ID,
		Username: user.Username,
		Tokens:   tokens,
	}, nil
}
