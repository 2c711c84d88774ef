package impl

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/domain/entity"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/repository"
	mockRepo "inkwell/internal/mocks/repository"
	mockSvc "inkwell/internal/mocks/service"
	"inkwell/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAccountService_Register_Success(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	identityRepo := mockRepo.NewMockIdentityRepository(t)
	credentialRepo := mockRepo.NewMockCredentialRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenSvc := mockSvc.NewMockTokenService(t)
	roleResolver := mockSvc.NewMockRoleResolver(t)

	factory.EXPECT().IdentityRepo().Return(identityRepo)
	factory.EXPECT().CredentialRepo().Return(credentialRepo)

	service := NewAccountService(newTxManager(t, factory), hasher, tokenSvc, roleResolver, newTestConfig(0), newDiscardLogger())

	ctx := context.Background()
	newID := uuid.New()

	hasher.EXPECT().ValidatePasswordStrength("Str0ng!Pass").Return(nil)
	hasher.EXPECT().Hash("Str0ng!Pass").Return("hashed-password", nil)

	identityRepo.EXPECT().
		FindByUsername(ctx, "alice").
		Return(nil, repository.ErrIdentityNotFound)
	identityRepo.EXPECT().
		FindByEmail(ctx, "alice@example.com").
		Return(nil, repository.ErrIdentityNotFound)
	identityRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Identity")).
		Run(func(_ context.Context, identity *entity.Identity) {
			identity.ID = newID
		}).
		Return(nil)
	credentialRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Credential")).
		Run(func(_ context.Context, credential *entity.Credential) {
			assert.Equal(t, newID, credential.IdentityID)
			assert.Equal(t, "hashed-password", credential.PasswordHash)
		}).
		Return(nil)

	out, err := service.Register(ctx, &usecase.RegisterInput{
		Username: "  Alice ",
		Email:    "alice@example.com",
		Password: "Str0ng!Pass",
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "alice", out.Identity.Username)
	assert.True(t, out.Identity.Roles.Contains(entity.RoleUser))
	assert.False(t, out.Identity.Roles.Contains(entity.RoleAdmin))
}

func TestAccountService_Register_DuplicateUsername(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	identityRepo := mockRepo.NewMockIdentityRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenSvc := mockSvc.NewMockTokenService(t)
	roleResolver := mockSvc.NewMockRoleResolver(t)

	factory.EXPECT().IdentityRepo().Return(identityRepo)
	factory.EXPECT().CredentialRepo().Return(mockRepo.NewMockCredentialRepository(t))

	service := NewAccountService(newTxManager(t, factory), hasher, tokenSvc, roleResolver, newTestConfig(0), newDiscardLogger())

	ctx := context.Background()

	hasher.EXPECT().ValidatePasswordStrength("Str0ng!Pass").Return(nil)
	hasher.EXPECT().Hash("Str0ng!Pass").Return("hashed-password", nil)
	identityRepo.EXPECT().
		FindByUsername(ctx, "alice").
		Return(&entity.Identity{ID: uuid.New(), Username: "alice"}, nil)

	out, err := service.Register(ctx, &usecase.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Str0ng!Pass",
	})
	require.Error(t, err)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateIdentity)
}

func TestAccountService_Register_WeakPassword(t *testing.T) {
	hasher := mockSvc.NewMockPasswordHasher(t)
	service := NewAccountService(
		mockRepo.NewMockTransactionManager(t),
		hasher,
		mockSvc.NewMockTokenService(t),
		mockSvc.NewMockRoleResolver(t),
		newTestConfig(0),
		newDiscardLogger(),
	)

	hasher.EXPECT().
		ValidatePasswordStrength("short").
		Return(domainerrors.ErrPasswordStrength.WrapMessage("password must be at least 8 characters"))

	out, err := service.Register(context.Background(), &usecase.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "short",
	})
	require.Error(t, err)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrPasswordStrength)
}

func TestAccountService_Login_Success(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	identityRepo := mockRepo.NewMockIdentityRepository(t)
	credentialRepo := mockRepo.NewMockCredentialRepository(t)
	refreshRepo := mockRepo.NewMockRefreshTokenRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenSvc := mockSvc.NewMockTokenService(t)

	factory.EXPECT().IdentityRepo().Return(identityRepo)
	factory.EXPECT().CredentialRepo().Return(credentialRepo)
	factory.EXPECT().RefreshTokenRepo().Return(refreshRepo)

	service := NewAccountService(newTxManager(t, factory), hasher, tokenSvc, mockSvc.NewMockRoleResolver(t), newTestConfig(0), newDiscardLogger())

	ctx := context.Background()
	identityID := uuid.New()
	identity := &entity.Identity{
		ID:       identityID,
		Username: "alice",
		Roles:    entity.Roles{entity.RoleUser},
	}

	identityRepo.EXPECT().FindByUsername(ctx, "alice").Return(identity, nil)
	credentialRepo.EXPECT().
		FindByIdentityID(ctx, identityID).
		Return(&entity.Credential{IdentityID: identityID, PasswordHash: "stored-hash"}, nil)
	hasher.EXPECT().Check("Str0ng!Pass", "stored-hash").Return(true)
	tokenSvc.EXPECT().GenerateTokens(identity, entity.RoleUser).Return("access-token", "refresh-token", nil)
	tokenSvc.EXPECT().HashToken("refresh-token").Return("refresh-hash")
	tokenSvc.EXPECT().RefreshTokenTTL().Return(30 * 24 * time.Hour)
	refreshRepo.EXPECT().
		CreateRefreshToken(ctx, mock.AnythingOfType("*entity.RefreshToken")).
		Run(func(_ context.Context, token *entity.RefreshToken) {
			assert.Equal(t, identityID, token.IdentityID)
			assert.Equal(t, "refresh-hash", token.TokenHash)
			assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), token.ExpiresAt, time.Minute)
		}).
		Return(nil)

	out, err := service.Login(ctx, &usecase.LoginInput{Username: "Alice", Password: "Str0ng!Pass"})
	require.NoError(t, err)
	assert.Equal(t, "access-token", out.AccessToken)
	assert.Equal(t, "refresh-token", out.RefreshToken)
	assert.Equal(t, identity, out.Identity)
}

func TestAccountService_Login_FailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown username", func(t *testing.T) {
		factory := mockRepo.NewMockRepositoryFactory(t)
		identityRepo := mockRepo.NewMockIdentityRepository(t)
		factory.EXPECT().IdentityRepo().Return(identityRepo)
		factory.EXPECT().CredentialRepo().Return(mockRepo.NewMockCredentialRepository(t))
		factory.EXPECT().RefreshTokenRepo().Return(mockRepo.NewMockRefreshTokenRepository(t))

		service := NewAccountService(newTxManager(t, factory), mockSvc.NewMockPasswordHasher(t), mockSvc.NewMockTokenService(t), mockSvc.NewMockRoleResolver(t), newTestConfig(0), newDiscardLogger())

		identityRepo.EXPECT().FindByUsername(ctx, "ghost").Return(nil, repository.ErrIdentityNotFound)

		_, err := service.Login(ctx, &usecase.LoginInput{Username: "ghost", Password: "whatever"})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		factory := mockRepo.NewMockRepositoryFactory(t)
		identityRepo := mockRepo.NewMockIdentityRepository(t)
		credentialRepo := mockRepo.NewMockCredentialRepository(t)
		hasher := mockSvc.NewMockPasswordHasher(t)
		factory.EXPECT().IdentityRepo().Return(identityRepo)
		factory.EXPECT().CredentialRepo().Return(credentialRepo)
		factory.EXPECT().RefreshTokenRepo().Return(mockRepo.NewMockRefreshTokenRepository(t))

		service := NewAccountService(newTxManager(t, factory), hasher, mockSvc.NewMockTokenService(t), mockSvc.NewMockRoleResolver(t), newTestConfig(0), newDiscardLogger())

		identityID := uuid.New()
		identityRepo.EXPECT().
			FindByUsername(ctx, "alice").
			Return(&entity.Identity{ID: identityID, Username: "alice"}, nil)
		credentialRepo.EXPECT().
			FindByIdentityID(ctx, identityID).
			Return(&entity.Credential{IdentityID: identityID, PasswordHash: "stored-hash"}, nil)
		hasher.EXPECT().Check("wrong", "stored-hash").Return(false)

		_, err := service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "wrong"})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})
}

func TestAccountService_Login_SessionLimitExceeded(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	identityRepo := mockRepo.NewMockIdentityRepository(t)
	credentialRepo := mockRepo.NewMockCredentialRepository(t)
	refreshRepo := mockRepo.NewMockRefreshTokenRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)

	factory.EXPECT().IdentityRepo().Return(identityRepo)
	factory.EXPECT().CredentialRepo().Return(credentialRepo)
	factory.EXPECT().RefreshTokenRepo().Return(refreshRepo)

	service := NewAccountService(newTxManager(t, factory), hasher, mockSvc.NewMockTokenService(t), mockSvc.NewMockRoleResolver(t), newTestConfig(2), newDiscardLogger())

	ctx := context.Background()
	identityID := uuid.New()

	identityRepo.EXPECT().
		FindByUsername(ctx, "alice").
		Return(&entity.Identity{ID: identityID, Username: "alice", Roles: entity.Roles{entity.RoleUser}}, nil)
	credentialRepo.EXPECT().
		FindByIdentityID(ctx, identityID).
		Return(&entity.Credential{IdentityID: identityID, PasswordHash: "stored-hash"}, nil)
	hasher.EXPECT().Check("Str0ng!Pass", "stored-hash").Return(true)
	refreshRepo.EXPECT().CountActiveByIdentityID(ctx, identityID).Return(2, nil)

	_, err := service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "Str0ng!Pass"})
	assert.ErrorIs(t, err, domainerrors.ErrSessionLimitExceeded)
}

func TestAccountService_Refresh_Success(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	identityRepo := mockRepo.NewMockIdentityRepository(t)
	refreshRepo := mockRepo.NewMockRefreshTokenRepository(t)
	tokenSvc := mockSvc.NewMockTokenService(t)
	roleResolver := mockSvc.NewMockRoleResolver(t)

	factory.EXPECT().IdentityRepo().Return(identityRepo)
	factory.EXPECT().RefreshTokenRepo().Return(refreshRepo)

	service := NewAccountService(newTxManager(t, factory), mockSvc.NewMockPasswordHasher(t), tokenSvc, roleResolver, newTestConfig(0), newDiscardLogger())

	ctx := context.Background()
	identityID := uuid.New()
	identity := &entity.Identity{ID: identityID, Username: "alice", Roles: entity.Roles{entity.RoleUser}}

	tokenSvc.EXPECT().HashToken("raw-refresh").Return("refresh-hash")
	refreshRepo.EXPECT().
		FindActiveByHash(ctx, "refresh-hash").
		Return(&entity.RefreshToken{ID: uuid.New(), IdentityID: identityID, TokenHash: "refresh-hash"}, nil)
	identityRepo.EXPECT().FindByID(ctx, identityID).Return(identity, nil)
	// The role set was widened since login; the new access token must carry it.
	roleResolver.EXPECT().
		ResolveRoles(ctx, identityID).
		Return(entity.Roles{entity.RoleUser, entity.RoleAdmin}, nil)
	// The new access token stays bound to the presented session.
	tokenSvc.EXPECT().
		GenerateAccessToken(identity, entity.RoleAdmin, "refresh-hash").
		Return("new-access-token", nil)

	out, err := service.Refresh(ctx, &usecase.RefreshInput{RefreshToken: "raw-refresh"})
	require.NoError(t, err)
	assert.Equal(t, "new-access-token", out.AccessToken)
	// No rotation: the presented refresh token is returned unchanged.
	assert.Equal(t, "raw-refresh", out.RefreshToken)
	assert.True(t, out.Identity.Roles.Contains(entity.RoleAdmin))
}

func TestAccountService_Refresh_DeadTokenRejected(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	refreshRepo := mockRepo.NewMockRefreshTokenRepository(t)
	tokenSvc := mockSvc.NewMockTokenService(t)

	factory.EXPECT().IdentityRepo().Return(mockRepo.NewMockIdentityRepository(t))
	factory.EXPECT().RefreshTokenRepo().Return(refreshRepo)

	service := NewAccountService(newTxManager(t, factory), mockSvc.NewMockPasswordHasher(t), tokenSvc, mockSvc.NewMockRoleResolver(t), newTestConfig(0), newDiscardLogger())

	ctx := context.Background()

	tokenSvc.EXPECT().HashToken("dead-refresh").Return("dead-hash")
	// Missing, expired and revoked all collapse into the same repository error.
	refreshRepo.EXPECT().
		FindActiveByHash(ctx, "dead-hash").
		Return(nil, repository.ErrRefreshTokenNotFound)

	_, err := service.Refresh(ctx, &usecase.RefreshInput{RefreshToken: "dead-refresh"})
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestAccountService_Refresh_IdentityGone(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	identityRepo := mockRepo.NewMockIdentityRepository(t)
	refreshRepo := mockRepo.NewMockRefreshTokenRepository(t)
	tokenSvc := mockSvc.NewMockTokenService(t)

	factory.EXPECT().IdentityRepo().Return(identityRepo)
	factory.EXPECT().RefreshTokenRepo().Return(refreshRepo)

	service := NewAccountService(newTxManager(t, factory), mockSvc.NewMockPasswordHasher(t), tokenSvc, mockSvc.NewMockRoleResolver(t), newTestConfig(0), newDiscardLogger())

	ctx := context.Background()
	identityID := uuid.New()

	tokenSvc.EXPECT().HashToken("raw-refresh").Return("refresh-hash")
	refreshRepo.EXPECT().
		FindActiveByHash(ctx, "refresh-hash").
		Return(&entity.RefreshToken{ID: uuid.New(), IdentityID: identityID}, nil)
	identityRepo.EXPECT().FindByID(ctx, identityID).Return(nil, repository.ErrIdentityNotFound)

	_, err := service.Refresh(ctx, &usecase.RefreshInput{RefreshToken: "raw-refresh"})
	assert.ErrorIs(t, err, domainerrors.ErrIdentityUnavailable)
}

func TestAccountService_Logout_Idempotent(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	refreshRepo := mockRepo.NewMockRefreshTokenRepository(t)
	tokenSvc := mockSvc.NewMockTokenService(t)

	factory.EXPECT().RefreshTokenRepo().Return(refreshRepo)

	service := NewAccountService(newTxManager(t, factory), mockSvc.NewMockPasswordHasher(t), tokenSvc, mockSvc.NewMockRoleResolver(t), newTestConfig(0), newDiscardLogger())

	ctx := context.Background()

	tokenSvc.EXPECT().HashToken("raw-refresh").Return("refresh-hash")
	// Revoking an unknown or already-revoked token is a silent no-op.
	refreshRepo.EXPECT().RevokeByHash(ctx, "refresh-hash").Return(nil)

	require.NoError(t, service.Logout(ctx, &usecase.LogoutInput{RefreshToken: "raw-refresh"}))
	require.NoError(t, service.Logout(ctx, &usecase.LogoutInput{RefreshToken: "raw-refresh"}))
}

func TestAccountService_ChangePassword_RevokesAllSessions(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	credentialRepo := mockRepo.NewMockCredentialRepository(t)
	refreshRepo := mockRepo.NewMockRefreshTokenRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)

	factory.EXPECT().CredentialRepo().Return(credentialRepo)
	factory.EXPECT().RefreshTokenRepo().Return(refreshRepo)

	service := NewAccountService(newTxManager(t, factory), hasher, mockSvc.NewMockTokenService(t), mockSvc.NewMockRoleResolver(t), newTestConfig(0), newDiscardLogger())

	ctx := context.Background()
	identityID := uuid.New()

	hasher.EXPECT().ValidatePasswordStrength("N3w!Password").Return(nil)
	hasher.EXPECT().Hash("N3w!Password").Return("new-hash", nil)
	credentialRepo.EXPECT().
		FindByIdentityID(ctx, identityID).
		Return(&entity.Credential{IdentityID: identityID, PasswordHash: "old-hash"}, nil)
	hasher.EXPECT().Check("Old!Password1", "old-hash").Return(true)
	credentialRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Credential")).
		Run(func(_ context.Context, credential *entity.Credential) {
			assert.Equal(t, "new-hash", credential.PasswordHash)
		}).
		Return(nil)
	refreshRepo.EXPECT().RevokeByIdentityID(ctx, identityID).Return(nil)

	err := service.ChangePassword(ctx, identityID, &usecase.ChangePasswordInput{
		CurrentPassword: "Old!Password1",
		NewPassword:     "N3w!Password",
	})
	require.NoError(t, err)
}

func TestAccountService_ChangePassword_WrongCurrentPassword(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	credentialRepo := mockRepo.NewMockCredentialRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)

	factory.EXPECT().CredentialRepo().Return(credentialRepo)
	factory.EXPECT().RefreshTokenRepo().Return(mockRepo.NewMockRefreshTokenRepository(t))

	service := NewAccountService(newTxManager(t, factory), hasher, mockSvc.NewMockTokenService(t), mockSvc.NewMockRoleResolver(t), newTestConfig(0), newDiscardLogger())

	ctx := context.Background()
	identityID := uuid.New()

	hasher.EXPECT().ValidatePasswordStrength("N3w!Password").Return(nil)
	hasher.EXPECT().Hash("N3w!Password").Return("new-hash", nil)
	credentialRepo.EXPECT().
		FindByIdentityID(ctx, identityID).
		Return(&entity.Credential{IdentityID: identityID, PasswordHash: "old-hash"}, nil)
	hasher.EXPECT().Check("nope", "old-hash").Return(false)

	err := service.ChangePassword(ctx, identityID, &usecase.ChangePasswordInput{
		CurrentPassword: "nope",
		NewPassword:     "N3w!Password",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}
