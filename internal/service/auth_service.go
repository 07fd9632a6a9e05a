package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"xelar/internal/domain"
	"xelar/internal/repository"
	"xelar/internal/storage"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountExists is returned when signing up with a taken email or handle.
	ErrAccountExists = errors.New("account already exists")
	// ErrUnderage is returned when the signup date of birth yields an age below the minimum.
	ErrUnderage = errors.New("account holder is under the minimum age")
	// ErrNotAuthenticated is returned when an operation requires a current session.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// MinSignupAge is the minimum age in full years required at signup.
const MinSignupAge = 16

// SignupInput carries the profile fields and secret for a new account.
type SignupInput struct {
	Name        string
	Handle      string
	Email       string
	Password    string
	DateOfBirth string // YYYY-MM-DD
	Role        domain.UserRole
	Bio         string
	BannerURL   string

	// Avatar is an optional image source. When present and storage is
	// configured it is uploaded; otherwise a deterministic default avatar
	// derived from the email is used.
	Avatar            io.Reader
	AvatarFileName    string
	AvatarContentType string
}

// ProfileUpdate mutates the current account's editable fields. Nil pointers
// leave a field unchanged.
type ProfileUpdate struct {
	Name      *string
	Bio       *string
	AvatarURL *string
	BannerURL *string
}

// AuthService orchestrates login, signup, logout, and the persisted current
// session.
type AuthService interface {
	Login(ctx context.Context, identifier, password string) (*domain.User, error)
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	Logout(ctx context.Context)
	CurrentUser(ctx context.Context) *domain.User
	UpdateProfile(ctx context.Context, update ProfileUpdate) (*domain.User, error)
}

type authService struct {
	accounts    repository.AccountRepository
	sessions    repository.SessionRepository
	storage     storage.Service
	storageOpts storage.UploadOptions
	logger      *logrus.Logger
}

func NewAuthService(
	accounts repository.AccountRepository,
	sessions repository.SessionRepository,
	store storage.Service,
	storageOpts storage.UploadOptions,
	logger *logrus.Logger,
) AuthService {
	if logger == nil {
		logger = logrus.New()
	}
	return &authService{
		accounts:    accounts,
		sessions:    sessions,
		storage:     store,
		storageOpts: storageOpts,
		logger:      logger,
	}
}

func (s *authService) Login(ctx context.Context, identifier, password string) (*domain.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	ok, err := s.accounts.VerifyPassword(ctx, identifier, password)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	user, err := s.accounts.GetByHandleOrEmail(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return user, nil
}

func (s *authService) Signup(ctx context.Context, input SignupInput) (*domain.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Handle = strings.TrimSpace(input.Handle)
	input.Email = strings.TrimSpace(input.Email)

	if input.Name == "" {
		return nil, errors.New("name is required")
	}
	if input.Handle == "" {
		return nil, errors.New("handle is required")
	}
	if input.Email == "" {
		return nil, errors.New("email is required")
	}
	if input.Password == "" {
		return nil, errors.New("password is required")
	}
	if !domain.ValidRole(input.Role) {
		return nil, fmt.Errorf("unknown role %q", input.Role)
	}
	if !strings.HasPrefix(input.Handle, "@") {
		input.Handle = "@" + input.Handle
	}

	taken, err := s.accounts.Exists(ctx, input.Email, input.Handle)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrAccountExists
	}

	birth, err := time.Parse(domain.DateOfBirthLayout, input.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("invalid date of birth: %w", err)
	}
	if domain.Age(birth, time.Now()) < MinSignupAge {
		return nil, ErrUnderage
	}

	avatarURL, err := s.resolveAvatar(ctx, input)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Handle:      input.Handle,
		Email:       input.Email,
		DateOfBirth: input.DateOfBirth,
		AvatarURL:   avatarURL,
		BannerURL:   input.BannerURL,
		Role:        input.Role,
		Bio:         input.Bio,
		Followers:   0,
		Following:   0,
	}

	if err := s.accounts.Insert(ctx, user, string(hash)); err != nil {
		if errors.Is(err, repository.ErrAccountExists) {
			return nil, ErrAccountExists
		}
		return nil, err
	}

	if err := s.sessions.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return user, nil
}

// Logout clears the persisted session. Persistence errors degrade to a
// warning; from the caller's point of view logout always succeeds.
func (s *authService) Logout(ctx context.Context) {
	if err := s.sessions.Clear(ctx); err != nil {
		s.logger.Warnf("clear session: %v", err)
	}
}

// CurrentUser returns the account persisted as the current session, or nil
// when there is none. A corrupt payload is treated as no session.
func (s *authService) CurrentUser(ctx context.Context) *domain.User {
	user, err := s.sessions.Load(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrSessionNotFound) {
			s.logger.Warnf("restore session: %v", err)
		}
		return nil
	}
	return user
}

func (s *authService) UpdateProfile(ctx context.Context, update ProfileUpdate) (*domain.User, error) {
	user := s.CurrentUser(ctx)
	if user == nil {
		return nil, ErrNotAuthenticated
	}

	if update.Name != nil {
		if strings.TrimSpace(*update.Name) == "" {
			return nil, errors.New("name is required")
		}
		user.Name = strings.TrimSpace(*update.Name)
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.AvatarURL != nil {
		user.AvatarURL = *update.AvatarURL
	}
	if update.BannerURL != nil {
		user.BannerURL = *update.BannerURL
	}

	if err := s.accounts.Update(ctx, user); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return user, nil
}

func (s *authService) resolveAvatar(ctx context.Context, input SignupInput) (string, error) {
	if input.Avatar != nil && s.storage != nil {
		opts := s.storageOpts
		opts.FileName = input.AvatarFileName
		opts.ContentType = input.AvatarContentType
		location, err := s.storage.UploadImage(ctx, input.Avatar, opts)
		if err != nil {
			return "", fmt.Errorf("upload avatar: %w", err)
		}
		return location, nil
	}
	return fmt.Sprintf("https://picsum.photos/seed/%s/200/200", url.PathEscape(input.Email)), nil
}
