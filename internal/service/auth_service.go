package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskmanager/internal/auth"
	apperrors "taskmanager/internal/errors"
	"taskmanager/internal/model"
	"taskmanager/internal/repository"
)

const bcryptCost = 10

const (
	msgEmailTaken = "user with this email already exists."
	msgPhoneTaken = "user with this phone already exists."
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Fullname        string
	Phone           string
	Email           string
	Password        string
	ConfirmPassword string
}

// TokenPair is the credential pair issued at login.
type TokenPair struct {
	Access  string
	Refresh string
}

// AuthService handles registration, login and token lifecycle.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*TokenPair, *model.User, error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, identity *auth.Identity, refreshToken string) error
	Authenticate(ctx context.Context, accessToken string) (*auth.Identity, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	now        func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
		now:        time.Now,
	}
}

// NormalizeEmail lower-cases the domain part of an address.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + strings.ToLower(email[at:])
}

// Register creates a new user with hashed password.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Email = NormalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)

	verr := apperrors.NewValidationError()
	if in.Password != in.ConfirmPassword {
		verr.Add("confirm_password", apperrors.MsgPasswordMatch)
	}
	if err := s.checkUnique(ctx, in.Email, in.Phone, verr); err != nil {
		return nil, err
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Fullname:     strings.TrimSpace(in.Fullname),
		Phone:        in.Phone,
		Email:        in.Email,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost a race with a concurrent registration
			verr := apperrors.NewValidationError()
			if err := s.checkUnique(ctx, in.Email, in.Phone, verr); err != nil {
				return nil, err
			}
			if verr.HasErrors() {
				return nil, verr
			}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (s *authService) checkUnique(ctx context.Context, email, phone string, verr *apperrors.ValidationError) error {
	emailTaken, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if emailTaken {
		verr.Add("email", msgEmailTaken)
	}

	phoneTaken, err := s.userRepo.ExistsByPhone(ctx, phone)
	if err != nil {
		return fmt.Errorf("check phone: %w", err)
	}
	if phoneTaken {
		verr.Add("phone", msgPhoneTaken)
	}
	return nil
}

// Login authenticates a user and returns access and refresh tokens.
func (s *authService) Login(ctx context.Context, email, password string) (*TokenPair, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, user.Email, s.jwtService.RefreshTTL()); err != nil {
		return nil, nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{Access: accessToken, Refresh: refreshToken}, user, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateTokenOfType(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}

	storedUserID, storedEmail, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}
	if storedUserID != claims.UserID || storedEmail != claims.Email {
		return "", apperrors.ErrInvalidRefreshToken
	}

	if _, err := s.activeUser(ctx, claims.UserID); err != nil {
		if errors.Is(err, apperrors.ErrTokenInvalid) {
			return "", apperrors.ErrInvalidRefreshToken
		}
		return "", err
	}

	accessToken, err := s.jwtService.GenerateAccessToken(claims.UserID, claims.Email)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout revokes the refresh token and blacklists the access token in use.
func (s *authService) Logout(ctx context.Context, identity *auth.Identity, refreshToken string) error {
	claims, err := s.jwtService.ValidateTokenOfType(refreshToken, auth.TokenTypeRefresh)
	if err != nil || claims.UserID != identity.UserID {
		return apperrors.ErrInvalidRefreshToken
	}

	if err := s.tokenStore.DeleteRefreshToken(ctx, claims.ID); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	if err := s.tokenStore.BlacklistAccessToken(ctx, identity.TokenID, identity.TokenLifetime(s.now())); err != nil {
		return fmt.Errorf("blacklist access token: %w", err)
	}
	return nil
}

// Authenticate verifies an access token and resolves the caller.
func (s *authService) Authenticate(ctx context.Context, accessToken string) (*auth.Identity, error) {
	claims, err := s.jwtService.ValidateTokenOfType(accessToken, auth.TokenTypeAccess)
	if err != nil {
		return nil, apperrors.ErrTokenInvalid
	}

	blacklisted, err := s.tokenStore.IsAccessTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check blacklist: %w", err)
	}
	if blacklisted {
		return nil, apperrors.ErrTokenInvalid
	}

	if _, err := s.activeUser(ctx, claims.UserID); err != nil {
		return nil, err
	}

	return auth.IdentityFromClaims(claims), nil
}

func (s *authService) activeUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrTokenInvalid
	}
	return user, nil
}
