package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/JDR69/DeporteDubss/models"
	"github.com/JDR69/DeporteDubss/repositories"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

const (
	AuditActionLogin          = "auth.login"
	AuditActionRegister       = "auth.register"
	AuditActionPasswordChange = "auth.password_change"
)

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, input LoginInput) (*models.User, error)
	ChangePassword(ctx context.Context, userID int, current, next string) error
}

type RegisterInput struct {
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Email     string          `json:"email"`
	Password  string          `json:"password"`
	Role      models.UserRole `json:"role"`
}

type LoginInput struct {
	Email     string
	Password  string
	IPAddress string
}

type authService struct {
	userRepo  repositories.UserRepository
	auditRepo repositories.AuditRepository
}

func NewAuthService(userRepo repositories.UserRepository, auditRepo repositories.AuditRepository) AuthService {
	return &authService{
		userRepo:  userRepo,
		auditRepo: auditRepo,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	role := input.Role
	if role == "" {
		role = models.RoleDelegate
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Role:         role,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Active:       true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return nil, ErrUserEmailConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.recordAudit(ctx, user.ID, AuditActionRegister, nil, nil)
	sanitizeUser(user)
	return user, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	if !user.Active {
		return nil, ErrUserInactive
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	var ip *string
	if input.IPAddress != "" {
		ip = &input.IPAddress
	}
	s.recordAudit(ctx, user.ID, AuditActionLogin, nil, ip)

	sanitizeUser(user)
	return user, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID int, current, next string) error {
	if len(next) < minPasswordLength {
		return ErrPasswordTooShort
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hashedPassword)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update user %d: %w", userID, err)
	}

	s.recordAudit(ctx, userID, AuditActionPasswordChange, nil, nil)
	return nil
}

// recordAudit never fails the calling operation; a lost audit row is logged
// at the repository layer, not surfaced to the user.
func (s *authService) recordAudit(ctx context.Context, userID int, action string, detail, ip *string) {
	if s.auditRepo == nil {
		return
	}
	entry := &models.AuditEntry{
		UserID:    userID,
		Action:    action,
		Detail:    detail,
		IPAddress: ip,
	}
	_ = s.auditRepo.Create(ctx, entry)
}
