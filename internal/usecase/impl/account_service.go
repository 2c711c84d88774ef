// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"inkwell/config"
	"inkwell/internal/domain/entity"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/repository"
	"inkwell/internal/domain/service"
	"inkwell/internal/usecase"
	"inkwell/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager         repository.TransactionManager
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	roleResolver      service.RoleResolver
	maxActiveSessions int
	logger            *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	tokenService service.TokenService,
	roleResolver service.RoleResolver,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.AccountUsecase {
	maxSessions := 0
	if cfg != nil && cfg.Auth != nil {
		maxSessions = cfg.Auth.MaxActiveSessions
	}

	return &accountService{
		txManager:         txManager,
		hasher:            hasher,
		tokenService:      tokenService,
		roleResolver:      roleResolver,
		maxActiveSessions: maxSessions,
		logger:            logger,
	}
}

// Register orchestrates the complete account registration process.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	srv.logger.Info("Starting registration", "username", util.MaskIdentifier(username))

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during registration", "error", err)

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	var registered *entity.Identity

	// The whole creation runs in one transaction so an identity never exists
	// without its credential.
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		identityRepo := repoFactory.IdentityRepo()
		credentialRepo := repoFactory.CredentialRepo()

		// 1. Reject taken usernames and emails up front. The unique
		// constraints remain the final arbiter under concurrency.
		if _, err := identityRepo.FindByUsername(ctx, username); err == nil {
			return domainerrors.ErrDuplicateIdentity
		} else if !errors.Is(err, repository.ErrIdentityNotFound) {
			return errors.Wrap(err, "failed to check username")
		}
		if _, err := identityRepo.FindByEmail(ctx, input.Email); err == nil {
			return domainerrors.ErrDuplicateIdentity
		} else if !errors.Is(err, repository.ErrIdentityNotFound) {
			return errors.Wrap(err, "failed to check email")
		}

		// 2. Create the identity with the default user role.
		newIdentity := &entity.Identity{
			Username:    username,
			Email:       input.Email,
			DisplayName: input.DisplayName,
			Roles:       entity.Roles{entity.RoleUser},
		}
		if err := identityRepo.Create(ctx, newIdentity); err != nil {
			return errors.WithStack(err)
		}

		// 3. Create the password credential.
		newCredential := &entity.Credential{
			IdentityID:   newIdentity.ID,
			PasswordHash: hashedPassword,
		}
		if err := credentialRepo.Create(ctx, newCredential); err != nil {
			return errors.WithStack(err)
		}
		registered = newIdentity

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to execute registration transaction", "error", err, "username", util.MaskIdentifier(username))

		return nil, err
	}
	srv.logger.Debug("Registered successfully", "identityID", registered.ID)

	return &usecase.RegisterOutput{Identity: registered}, nil
}

// Login orchestrates credential verification and session creation.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.TokenPairOutput, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	srv.logger.Debug("Starting login", "username", util.MaskIdentifier(username))

	var loggedIn *entity.Identity
	var accessToken, refreshTokenString string

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		identityRepo := repoFactory.IdentityRepo()
		credentialRepo := repoFactory.CredentialRepo()
		refreshRepo := repoFactory.RefreshTokenRepo()

		// 1. Find the identity. Unknown usernames and wrong passwords must be
		// indistinguishable to the caller.
		identity, err := identityRepo.FindByUsername(ctx, username)
		if err != nil {
			return domainerrors.ErrInvalidCredentials
		}

		// 2. Check the password.
		credential, err := credentialRepo.FindByIdentityID(ctx, identity.ID)
		if err != nil {
			return domainerrors.ErrInvalidCredentials
		}
		if !srv.hasher.Check(input.Password, credential.PasswordHash) {
			return domainerrors.ErrInvalidCredentials
		}

		// 3. Enforce the optional concurrent session cap.
		if srv.maxActiveSessions > 0 {
			count, err := refreshRepo.CountActiveByIdentityID(ctx, identity.ID)
			if err != nil {
				return errors.Wrap(err, "failed to count active sessions")
			}
			if count >= srv.maxActiveSessions {
				return domainerrors.ErrSessionLimitExceeded
			}
		}

		// 4. Mint the token pair with the most privileged role as the claim.
		accessToken, refreshTokenString, err = srv.tokenService.GenerateTokens(identity, identity.Roles.Primary())
		if err != nil {
			return errors.Wrap(err, "failed to generate tokens")
		}

		// 5. Store only the hash of the refresh token. Each login creates a
		// fresh session row; existing sessions are untouched.
		newSession := &entity.RefreshToken{
			IdentityID: identity.ID,
			TokenHash:  srv.tokenService.HashToken(refreshTokenString),
			ExpiresAt:  time.Now().Add(srv.tokenService.RefreshTokenTTL()),
		}
		if err := refreshRepo.CreateRefreshToken(ctx, newSession); err != nil {
			return errors.WithStack(err)
		}
		loggedIn = identity

		return nil
	})
	if err != nil {
		srv.logger.Warn("Login failed", "username", util.MaskIdentifier(username), "error", err.Error())

		return nil, err
	}
	srv.logger.Debug("Logged in successfully", "identityID", loggedIn.ID)

	return &usecase.TokenPairOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		Identity:     loggedIn,
	}, nil
}

// Refresh exchanges a live refresh token for a new access token. The refresh
// token is deliberately not rotated; it stays valid until expiry or revocation.
func (srv *accountService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.TokenPairOutput, error) {
	srv.logger.Debug("Attempting token refresh")

	tokenHash := srv.tokenService.HashToken(input.RefreshToken)

	var identity *entity.Identity
	var accessToken string

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		refreshRepo := repoFactory.RefreshTokenRepo()
		identityRepo := repoFactory.IdentityRepo()

		// 1. The stored session must be unrevoked and unexpired. Missing,
		// expired and revoked all surface as the same failure.
		session, err := refreshRepo.FindActiveByHash(ctx, tokenHash)
		if err != nil {
			if errors.Is(err, repository.ErrRefreshTokenNotFound) {
				return domainerrors.ErrRefreshTokenInvalid
			}

			return errors.Wrap(err, "failed to find refresh token")
		}

		// 2. The identity must still exist.
		identity, err = identityRepo.FindByID(ctx, session.IdentityID)
		if err != nil {
			if errors.Is(err, repository.ErrIdentityNotFound) {
				return domainerrors.ErrIdentityUnavailable
			}

			return errors.Wrap(err, "failed to find identity")
		}

		// 3. Re-resolve roles from storage so role changes reach the next
		// access token without a re-login.
		roles, err := srv.roleResolver.ResolveRoles(ctx, identity.ID)
		if err != nil {
			return errors.Wrap(err, "failed to resolve roles")
		}
		identity.Roles = roles

		accessToken, err = srv.tokenService.GenerateAccessToken(identity, roles.Primary(), tokenHash)
		if err != nil {
			return errors.Wrap(err, "failed to generate access token")
		}

		return nil
	})
	if err != nil {
		srv.logger.Warn("Token refresh failed", "error", err.Error())

		return nil, err
	}

	return &usecase.TokenPairOutput{
		AccessToken:  accessToken,
		RefreshToken: input.RefreshToken,
		Identity:     identity,
	}, nil
}

// Logout revokes the presented session. It succeeds even when the token is
// unknown or already revoked, which makes logout idempotent.
func (srv *accountService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	srv.logger.Debug("Attempting logout")

	tokenHash := srv.tokenService.HashToken(input.RefreshToken)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.RefreshTokenRepo().RevokeByHash(ctx, tokenHash)
	})
	if err != nil {
		srv.logger.Error("Failed to execute logout transaction", "error", err)

		return err
	}
	srv.logger.Debug("Logged out successfully")

	return nil
}

// GetProfile returns the identity behind an ID.
func (srv *accountService) GetProfile(ctx context.Context, identityID uuid.UUID) (*entity.Identity, error) {
	var identity *entity.Identity

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.IdentityRepo().FindByID(ctx, identityID)
		if err != nil {
			if errors.Is(err, repository.ErrIdentityNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("identity not found")
			}

			return errors.Wrap(err, "failed to find identity")
		}
		identity = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return identity, nil
}

// UpdateProfile modifies the mutable profile fields.
func (srv *accountService) UpdateProfile(ctx context.Context, identityID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.Identity, error) {
	var updated *entity.Identity

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		identityRepo := repoFactory.IdentityRepo()

		identity, err := identityRepo.FindByID(ctx, identityID)
		if err != nil {
			if errors.Is(err, repository.ErrIdentityNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("identity not found")
			}

			return errors.Wrap(err, "failed to find identity")
		}

		if input.Email != "" {
			identity.Email = input.Email
		}
		if input.DisplayName != "" {
			identity.DisplayName = input.DisplayName
		}
		if err := identityRepo.Update(ctx, identity); err != nil {
			return errors.WithStack(err)
		}
		updated = identity

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to update profile", "error", err, "identityID", identityID)

		return nil, err
	}

	return updated, nil
}

// ChangePassword verifies the current password, stores the new hash and
// revokes every live session, forcing re-login everywhere.
func (srv *accountService) ChangePassword(ctx context.Context, identityID uuid.UUID, input *usecase.ChangePasswordInput) error {
	srv.logger.Info("Starting password change", "identityID", identityID)

	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return err
	}

	newHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash new password")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		credentialRepo := repoFactory.CredentialRepo()
		refreshRepo := repoFactory.RefreshTokenRepo()

		credential, err := credentialRepo.FindByIdentityID(ctx, identityID)
		if err != nil {
			return domainerrors.ErrInvalidCredentials
		}
		if !srv.hasher.Check(input.CurrentPassword, credential.PasswordHash) {
			return domainerrors.ErrInvalidCredentials
		}

		credential.PasswordHash = newHash
		if err := credentialRepo.Update(ctx, credential); err != nil {
			return errors.WithStack(err)
		}

		return refreshRepo.RevokeByIdentityID(ctx, identityID)
	})
	if err != nil {
		srv.logger.Warn("Password change failed", "error", err.Error(), "identityID", identityID)

		return err
	}
	srv.logger.Info("Password changed", "identityID", identityID)

	return nil
}
