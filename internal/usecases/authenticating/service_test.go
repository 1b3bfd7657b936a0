package authenticating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	repomocks "github.com/vfg2006/ledger-pulse-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ledger-pulse-api/internal/config"
	"github.com/vfg2006/ledger-pulse-api/internal/domain"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.Auth{Secret: "test-secret"},
	}
}

func newTestService(ctrl *gomock.Controller) (Authenticator, *repomocks.MockUserRepository, *repomocks.MockTenantRepository, *repomocks.MockAuditRepository) {
	userRepo := repomocks.NewMockUserRepository(ctrl)
	tenantRepo := repomocks.NewMockTenantRepository(ctrl)
	auditRepo := repomocks.NewMockAuditRepository(ctrl)

	service := NewService(userRepo, tenantRepo, auditRepo, testConfig())

	return service, userRepo, tenantRepo, auditRepo
}

func TestSignup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, userRepo, tenantRepo, auditRepo := newTestService(ctrl)

	userRepo.EXPECT().GetUserByEmail("ana@escritorio.com").Return(nil, nil)
	tenantRepo.EXPECT().
		CreateTenant(gomock.Any()).
		DoAndReturn(func(tenant *domain.Tenant) (*domain.Tenant, error) {
			assert.NotEmpty(t, tenant.ID)
			assert.Equal(t, "Escritório Alfa", *tenant.DisplayName)
			assert.Equal(t, domain.ComposerModeMeaningful, tenant.ComposerMode)
			assert.Equal(t, 2, tenant.MinChangeCount)
			return tenant, nil
		})
	userRepo.EXPECT().
		CreateUser(gomock.Any()).
		DoAndReturn(func(user *domain.User) (*domain.User, error) {
			assert.NotEmpty(t, user.ID)
			assert.NotEmpty(t, user.TenantID)
			assert.Equal(t, "Ana", user.Name)
			assert.Equal(t, "ana@escritorio.com", user.Email)
			assert.Equal(t, domain.UserRoleAdmin, user.Role)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("senha-forte")))
			return user, nil
		})
	auditRepo.EXPECT().
		Append(gomock.Any()).
		DoAndReturn(func(entry *domain.AuditEntry) error {
			assert.Equal(t, domain.AuditActionSignup, entry.Action)
			assert.Equal(t, "tenant", entry.EntityType)
			return nil
		})

	user, err := service.Signup(&SignupRequest{
		TenantName: "Escritório Alfa",
		UserName:   "Ana",
		Email:      "  Ana@Escritorio.com ",
		Password:   "senha-forte",
	})

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, domain.UserRoleAdmin, user.Role)
}

func TestSignup_SenhaFraca(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, _, _ := newTestService(ctrl)

	user, err := service.Signup(&SignupRequest{
		TenantName: "Escritório Alfa",
		UserName:   "Ana",
		Email:      "ana@escritorio.com",
		Password:   "curta",
	})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestSignup_CamposObrigatorios(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, _, _ := newTestService(ctrl)

	user, err := service.Signup(&SignupRequest{
		UserName: "Ana",
		Email:    "ana@escritorio.com",
		Password: "senha-forte",
	})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrMissingRequiredData)
}

func TestSignup_EmailJaCadastrado(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, userRepo, _, _ := newTestService(ctrl)

	userRepo.EXPECT().GetUserByEmail("ana@escritorio.com").Return(&domain.User{ID: "user-01"}, nil)

	user, err := service.Signup(&SignupRequest{
		TenantName: "Escritório Alfa",
		UserName:   "Ana",
		Email:      "ana@escritorio.com",
		Password:   "senha-forte",
	})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, userRepo, _, auditRepo := newTestService(ctrl)

	hash, err := bcrypt.GenerateFromPassword([]byte("senha-forte"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	user := &domain.User{
		ID:           "user-01",
		TenantID:     "tenant-01",
		Name:         "Ana",
		Email:        "ana@escritorio.com",
		PasswordHash: string(hash),
		Role:         domain.UserRoleAdmin,
	}

	userRepo.EXPECT().GetUserByEmail("ana@escritorio.com").Return(user, nil)
	auditRepo.EXPECT().
		Append(gomock.Any()).
		DoAndReturn(func(entry *domain.AuditEntry) error {
			assert.Equal(t, domain.AuditActionLogin, entry.Action)
			assert.Equal(t, "user-01", entry.EntityID)
			return nil
		})

	token, err := service.LoginUser("Ana@Escritorio.com", "senha-forte")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// o token emitido carrega as claims do usuário e valida com o mesmo segredo
	claims, err := service.ValidateToken(token)

	assert.NoError(t, err)
	assert.Equal(t, "user-01", claims.UserID)
	assert.Equal(t, "tenant-01", claims.TenantID)
	assert.Equal(t, domain.UserRoleAdmin, claims.UserRole)
	assert.True(t, claims.IsAdmin())
}

func TestLoginUser_SenhaIncorreta(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, userRepo, _, _ := newTestService(ctrl)

	hash, err := bcrypt.GenerateFromPassword([]byte("senha-forte"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	userRepo.EXPECT().GetUserByEmail("ana@escritorio.com").Return(&domain.User{
		ID:           "user-01",
		PasswordHash: string(hash),
	}, nil)

	token, err := service.LoginUser("ana@escritorio.com", "senha-errada")

	assert.Empty(t, token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.True(t, IsCredentialsError(err))
}

func TestLoginUser_UsuarioInexistente(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, userRepo, _, _ := newTestService(ctrl)

	userRepo.EXPECT().GetUserByEmail("ninguem@escritorio.com").Return(nil, nil)

	token, err := service.LoginUser("ninguem@escritorio.com", "senha-forte")

	assert.Empty(t, token)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestValidateToken_TokenInvalido(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, _, _ := newTestService(ctrl)

	claims, err := service.ValidateToken("nem-um-jwt")

	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestGetUserProfile_NaoExpoeOHash(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, userRepo, _, _ := newTestService(ctrl)

	userRepo.EXPECT().GetUserByID("user-01").Return(&domain.User{
		ID:           "user-01",
		PasswordHash: "$2a$10$abcdef",
	}, nil)

	user, err := service.GetUserProfile("user-01")

	assert.NoError(t, err)
	assert.Empty(t, user.PasswordHash)
}
