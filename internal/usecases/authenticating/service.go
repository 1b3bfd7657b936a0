package authenticating

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ledger-pulse-api/infrastructure/repository"
	"github.com/vfg2006/ledger-pulse-api/internal/config"
	"github.com/vfg2006/ledger-pulse-api/internal/domain"
	"github.com/vfg2006/ledger-pulse-api/pkg/apiErrors"
	"github.com/vfg2006/ledger-pulse-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

// SignupRequest cria o tenant e seu primeiro usuário, sempre administrador
type SignupRequest struct {
	TenantName string `json:"tenant_name" validate:"required"`
	UserName   string `json:"user_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
}

type Authenticator interface {
	Signup(req *SignupRequest) (*domain.User, error)
	LoginUser(email, password string) (string, error)
	GetUserProfile(userID string) (*domain.User, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	userRepo   repository.UserRepository
	tenantRepo repository.TenantRepository
	auditRepo  repository.AuditRepository
	cfg        *config.Config
}

func NewService(
	userRepo repository.UserRepository,
	tenantRepo repository.TenantRepository,
	auditRepo repository.AuditRepository,
	cfg *config.Config,
) Authenticator {
	return &Service{
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		auditRepo:  auditRepo,
		cfg:        cfg,
	}
}

// Signup cria o tenant com a configuração default de composição e o usuário
// administrador inicial em sequência
func (s *Service) Signup(req *SignupRequest) (*domain.User, error) {
	if req.Email == "" || req.UserName == "" || req.TenantName == "" || req.Password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Nome do escritório, nome, email e senha são obrigatórios")
	}

	if len(req.Password) < 8 {
		return nil, NewAuthError(ErrWeakPassword, apiErrors.ErrInvalidFormat, "A senha deve conter pelo menos 8 caracteres")
	}

	email := handleEmail(req.Email)

	existing, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar usuário no banco de dados")
	}
	if existing != nil {
		return nil, NewAuthError(ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, "Email já cadastrado")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	tenantID, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	userID, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	tenant := &domain.Tenant{
		ID:             tenantID,
		DisplayName:    &req.TenantName,
		ComposerMode:   domain.ComposerModeMeaningful,
		MinChangeCount: 2,
	}

	if _, err := s.tenantRepo.CreateTenant(tenant); err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao criar tenant")
	}

	user := &domain.User{
		ID:           userID,
		TenantID:     tenantID,
		Name:         req.UserName,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         domain.UserRoleAdmin,
	}

	user, err = s.userRepo.CreateUser(user)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao criar usuário")
	}

	if err := s.auditRepo.Append(&domain.AuditEntry{
		TenantID:   tenantID,
		UserID:     &user.ID,
		Action:     domain.AuditActionSignup,
		EntityType: "tenant",
		EntityID:   tenantID,
	}); err != nil {
		logrus.WithField("tenant_id", tenantID).Warn("Erro ao gravar auditoria do signup: ", err)
	}

	return user, nil
}

func handleEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	return email
}

func (s *Service) LoginUser(email, password string) (string, error) {
	// Validação de entrada
	if email == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Email e senha são obrigatórios")
	}

	email = handleEmail(email)

	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar usuário no banco de dados")
	}

	// Verificar se o usuário existe
	if user == nil {
		return "", NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, "Usuário não encontrado")
	}

	// Verificar senha
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Senha incorreta")
	}

	// Gerar token JWT
	token, err := generateJWT(user, s.cfg.Auth.Secret)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	if err := s.auditRepo.Append(&domain.AuditEntry{
		TenantID:   user.TenantID,
		UserID:     &user.ID,
		Action:     domain.AuditActionLogin,
		EntityType: "user",
		EntityID:   user.ID,
	}); err != nil {
		logrus.WithField("user_id", user.ID).Warn("Erro ao gravar auditoria do login: ", err)
	}

	return token, nil
}

func (s *Service) GetUserProfile(userID string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		logrus.Error(err)
		return nil, err
	}

	if user == nil {
		return nil, NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, "Usuário não encontrado")
	}

	user.PasswordHash = ""
	return user, nil
}

func generateJWT(user *domain.User, secret string) (string, error) {
	claims := domain.Claims{
		UserID:    user.ID,
		TenantID:  user.TenantID,
		UserName:  user.Name,
		UserEmail: user.Email,
		UserRole:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*domain.Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
