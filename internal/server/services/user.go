// Package services holds the server's business logic: UserService plays the
// identity provider and EntryService the document store.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/copyit/internal/common"
	"github.com/dmitrijs2005/copyit/internal/cryptox"
	"github.com/dmitrijs2005/copyit/internal/dbx"
	"github.com/dmitrijs2005/copyit/internal/server/auth"
	"github.com/dmitrijs2005/copyit/internal/server/config"
	"github.com/dmitrijs2005/copyit/internal/server/models"
	"github.com/dmitrijs2005/copyit/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	signUpDisabled               bool
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		signUpDisabled:               cfg.SignUpDisabled,
	}
}

// normalizeEmail returns the lower-cased bare address, or ok=false when s
// is not a plain email address.
func normalizeEmail(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return "", false
	}
	return strings.ToLower(addr.Address), true
}

// SignUp creates an account. It never signs the caller in.
func (s *UserService) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	if s.signUpDisabled {
		return nil, common.NewAuthError(common.AuthOperationNotAllowed)
	}

	email, ok := normalizeEmail(email)
	if !ok {
		return nil, common.NewAuthError(common.AuthInvalidEmail)
	}
	if len([]rune(password)) < common.MinPasswordLength {
		return nil, common.NewAuthError(common.AuthWeakPassword)
	}

	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, common.NewAuthError(common.AuthEmailAlreadyInUse)
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	salt := cryptox.NewSalt()
	user := &models.User{Email: email, Salt: salt, Verifier: cryptox.HashPassword(password, salt)}

	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.NewAuthError(common.AuthEmailAlreadyInUse)
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return u, nil
}

// SignIn verifies the credentials and issues a token pair.
func (s *UserService) SignIn(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	email, ok := normalizeEmail(email)
	if !ok {
		return nil, nil, common.NewAuthError(common.AuthInvalidEmail)
	}
	if password == "" {
		return nil, nil, common.NewAuthError(common.AuthInvalidCredential)
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.NewAuthError(common.AuthUserNotFound)
		}
		return nil, nil, fmt.Errorf("error looking up user: %w", err)
	}
	if user.Disabled {
		return nil, nil, common.NewAuthError(common.AuthUserDisabled)
	}
	if !cryptox.CheckPassword(password, user.Salt, user.Verifier) {
		return nil, nil, common.NewAuthError(common.AuthWrongPassword)
	}

	pair, err := s.generateTokenPair(ctx, user.ID, s.db)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// RefreshToken rotates refreshToken and issues a new pair. Unknown tokens
// yield common.ErrorUnauthorized, expired ones common.ErrRefreshTokenExpired.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*models.User, *TokenPair, error) {
	token, err := s.repomanager.RefreshTokens(s.db).Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expired(time.Now()) {
		return nil, nil, common.ErrRefreshTokenExpired
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, fmt.Errorf("error looking up user: %w", err)
	}
	if user.Disabled {
		return nil, nil, common.ErrorUnauthorized
	}

	pair, err := dbx.InTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*TokenPair, error) {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return nil, fmt.Errorf("error deleting refresh token: %w", err)
		}
		return s.generateTokenPair(ctx, token.UserID, tx)
	})
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// SignOut revokes refreshToken. Unknown tokens are ignored.
func (s *UserService) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.repomanager.RefreshTokens(s.db).Delete(ctx, refreshToken)
}

func (s *UserService) generateTokenPair(ctx context.Context, userID string, tx dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.repomanager.RefreshTokens(tx).Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
