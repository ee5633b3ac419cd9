package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"user-manager/internal/authz"
	"user-manager/internal/domain"
	"user-manager/internal/repository"
	"user-manager/internal/token"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserAlreadyExists is returned when registering an existing username or email.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidOldPassword indicates the current password did not verify.
	ErrInvalidOldPassword = errors.New("invalid password")
	// ErrInvalidRole indicates a role value outside the enum.
	ErrInvalidRole = errors.New("invalid role")
	// ErrPasswordRequired indicates a missing password field at registration.
	ErrPasswordRequired = errors.New("password is required")
	// ErrNewPasswordRequired indicates a missing new_password field in a reset flow.
	ErrNewPasswordRequired = errors.New("new password is required")
	// ErrUsernameRequired indicates a missing username field.
	ErrUsernameRequired = errors.New("username is required")
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
}

// UserUpdate describes a partial update: nil fields keep their current value.
type UserUpdate struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Role      *string
	Active    *bool
}

// UserService describes user lifecycle and credential operations.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error
	ForgetPassword(ctx context.Context, email string) (string, error)
	ResetPasswordWithToken(ctx context.Context, resetToken, newPassword string) error
	UpdateUser(ctx context.Context, caller token.Identity, id int64, changes UserUpdate) (*domain.User, error)
	DeleteUser(ctx context.Context, caller token.Identity, id int64) error
}

type userService struct {
	users    repository.UserRepository
	sessions *token.SessionIssuer
	resets   *token.ResetIssuer
}

func NewUserService(users repository.UserRepository, sessions *token.SessionIssuer, resets *token.ResetIssuer) UserService {
	return &userService{
		users:    users,
		sessions: sessions,
		resets:   resets,
	}
}

func (s *userService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	password := strings.TrimSpace(input.Password)

	if username == "" {
		return nil, ErrUsernameRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        strings.TrimSpace(input.Email),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Active:       true,
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and issues a session token. Unknown username
// and wrong password are indistinguishable to the caller.
func (s *userService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	signed, err := s.sessions.Issue(token.Identity{
		Username: user.Username,
		Role:     string(user.Role),
	})
	if err != nil {
		return "", fmt.Errorf("issue session token: %w", err)
	}
	return signed, nil
}

func (s *userService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return ErrInvalidOldPassword
	}
	if strings.TrimSpace(newPassword) == "" {
		return ErrNewPasswordRequired
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	return s.users.Update(ctx, user)
}

// ForgetPassword issues a reset token for the account bound to the email.
// An unknown email surfaces repository.ErrNotFound to the caller.
func (s *userService) ForgetPassword(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return "", err
	}

	signed, err := s.resets.Issue(user.Email)
	if err != nil {
		return "", fmt.Errorf("issue reset token: %w", err)
	}
	return signed, nil
}

func (s *userService) ResetPasswordWithToken(ctx context.Context, resetToken, newPassword string) error {
	email, err := s.resets.Verify(resetToken)
	if err != nil {
		return err
	}
	if strings.TrimSpace(newPassword) == "" {
		return ErrNewPasswordRequired
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	return s.users.Update(ctx, user)
}

// UpdateUser applies a partial update to the target user after the
// authorization policy allows it. Absent fields keep their current value.
func (s *userService) UpdateUser(ctx context.Context, caller token.Identity, id int64, changes UserUpdate) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.CanModify(caller, user); err != nil {
		return nil, err
	}

	if changes.Role != nil {
		role, err := domain.ParseRole(*changes.Role)
		if err != nil {
			return nil, ErrInvalidRole
		}
		user.Role = role
	}
	if changes.Username != nil {
		user.Username = strings.TrimSpace(*changes.Username)
	}
	if changes.Email != nil {
		user.Email = strings.TrimSpace(*changes.Email)
	}
	if changes.FirstName != nil {
		user.FirstName = strings.TrimSpace(*changes.FirstName)
	}
	if changes.LastName != nil {
		user.LastName = strings.TrimSpace(*changes.LastName)
	}
	if changes.Active != nil {
		user.Active = *changes.Active
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, caller token.Identity, id int64) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := authz.CanModify(caller, user); err != nil {
		return err
	}

	return s.users.Delete(ctx, user.ID)
}

func hashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
