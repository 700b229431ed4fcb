package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/loginflow/services/auth-service/internal/model"
	"github.com/vasapolrittideah/loginflow/services/auth-service/internal/repository"
	"github.com/vasapolrittideah/loginflow/shared/auth"
	"github.com/vasapolrittideah/loginflow/shared/security"
)

const MinPasswordLength = 6

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	SignUp(ctx context.Context, params SignUpParams) (*Account, error)
	SignIn(ctx context.Context, params SignInParams) (*Account, error)
	LookupToken(ctx context.Context, idToken string) (*Account, error)
}

// SignInParams defines the parameters for password sign-in.
type SignInParams struct {
	Email    string
	Password string
}

// SignUpParams defines the parameters for account registration.
type SignUpParams struct {
	Email       string
	Password    string
	DisplayName string
}

// Account is a signed-in account. IDToken and ExpiresIn are empty for lookups.
type Account struct {
	LocalID       string
	Email         string
	DisplayName   string
	EmailVerified bool
	IDToken       string
	ExpiresIn     time.Duration
}

var (
	ErrInvalidEmail       = errors.New("invalid email")
	ErrMissingPassword    = errors.New("missing password")
	ErrWeakPassword       = errors.New("password is too weak")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidIDToken     = errors.New("invalid id token")
)

type emailChecker interface {
	Var(value any, tag string) error
}

type authUsecase struct {
	logger   *zerolog.Logger
	userRepo repository.UserRepository
	jwtAuth  *auth.JWTAuthenticator
	emails   emailChecker
	tokenTTL time.Duration
}

func NewAuthUsecase(
	logger *zerolog.Logger,
	userRepo repository.UserRepository,
	jwtAuth *auth.JWTAuthenticator,
	emails emailChecker,
	tokenTTL time.Duration,
) AuthUsecase {
	return &authUsecase{
		logger:   logger,
		userRepo: userRepo,
		jwtAuth:  jwtAuth,
		emails:   emails,
		tokenTTL: tokenTTL,
	}
}

func (u *authUsecase) SignUp(ctx context.Context, params SignUpParams) (*Account, error) {
	email, err := u.normalizeEmail(params.Email)
	if err != nil {
		return nil, err
	}

	if params.Password == "" {
		return nil, ErrMissingPassword
	}
	if len([]rune(params.Password)) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Email:        email,
		PasswordHash: passwordHash,
		DisplayName:  strings.TrimSpace(params.DisplayName),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailExists
		}

		return nil, err
	}

	return u.issue(user)
}

func (u *authUsecase) SignIn(ctx context.Context, params SignInParams) (*Account, error) {
	email, err := u.normalizeEmail(params.Email)
	if err != nil {
		return nil, err
	}

	if params.Password == "" {
		return nil, ErrMissingPassword
	}

	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	if err := u.userRepo.UpdateLastLogin(ctx, user.ID.Hex()); err != nil {
		u.logger.Warn().Err(err).Str("user_id", user.ID.Hex()).Msg("failed to record last login")
	}

	return u.issue(user)
}

func (u *authUsecase) LookupToken(ctx context.Context, idToken string) (*Account, error) {
	claims, err := u.jwtAuth.VerifyIDToken(idToken)
	if err != nil {
		return nil, errors.Join(ErrInvalidIDToken, err)
	}

	user, err := u.userRepo.GetUser(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, bson.ErrInvalidHex) {
			return nil, ErrInvalidIDToken
		}

		return nil, err
	}

	return &Account{
		LocalID:       user.ID.Hex(),
		Email:         user.Email,
		DisplayName:   user.DisplayName,
		EmailVerified: user.EmailVerified,
	}, nil
}

func (u *authUsecase) normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := u.emails.Var(email, "required,email"); err != nil {
		return "", ErrInvalidEmail
	}

	return email, nil
}

func (u *authUsecase) issue(user *model.User) (*Account, error) {
	token, _, err := u.jwtAuth.IssueIDToken(user.ID.Hex(), user.Email, u.tokenTTL)
	if err != nil {
		return nil, err
	}

	return &Account{
		LocalID:       user.ID.Hex(),
		Email:         user.Email,
		DisplayName:   user.DisplayName,
		EmailVerified: user.EmailVerified,
		IDToken:       token,
		ExpiresIn:     u.tokenTTL,
	}, nil
}
