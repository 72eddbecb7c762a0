package auth

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/access"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/jhoicas/stockflow-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro de organización y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	tx       SignUpTxRunner
	jwtCfg   JWTConfig
	log      zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tx SignUpTxRunner, jwtCfg JWTConfig, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, tx: tx, jwtCfg: jwtCfg, log: log}
}

// SignUp crea la organización con su primer usuario como admin y la bodega por defecto.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) SignUp(ctx context.Context, in dto.SignUpRequest) (*dto.SignUpResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || strings.TrimSpace(in.OrgName) == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	name := in.Name
	if name == "" {
		name = email
	}
	org := &entity.Organization{ID: uuid.New().String(), Name: strings.TrimSpace(in.OrgName), CreatedAt: now, UpdatedAt: now}
	user := &entity.User{
		ID:           uuid.New().String(),
		OrgID:        org.ID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         access.RoleAdmin,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	org.OwnerID = user.ID
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		OrgID:     org.ID,
		Name:      entity.DefaultWarehouseName,
		IsDefault: true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = uc.tx.RunSignUp(ctx, func(
		orgRepo repository.OrganizationRepository,
		userRepo repository.UserRepository,
		warehouseRepo repository.WarehouseRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		if err := orgRepo.Create(ctx, org); err != nil {
			return err
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		if err := warehouseRepo.Create(ctx, warehouse); err != nil {
			return err
		}
		meta, _ := json.Marshal(map[string]string{"name": org.Name, "default_warehouse_id": warehouse.ID})
		return auditRepo.Create(ctx, &entity.AuditLog{
			ID:         uuid.New().String(),
			OrgID:      org.ID,
			ActorID:    user.ID,
			Action:     entity.AuditOrgCreated,
			EntityType: "organization",
			EntityID:   org.ID,
			Meta:       meta,
			CreatedAt:  now,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("org_id", org.ID).Str("user_id", user.ID).Msg("organización creada")

	token, err := uc.issue(user)
	if err != nil {
		return nil, err
	}
	return &dto.SignUpResponse{
		Token:              token,
		User:               toUserResponse(user),
		OrgID:              org.ID,
		DefaultWarehouseID: warehouse.ID,
	}, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	token, err := uc.issue(user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: toUserResponse(user)}, nil
}

func (uc *AuthUseCase) issue(u *entity.User) (string, error) {
	return jwt.Generate(uc.jwtCfg.Secret, u.ID, u.OrgID, string(u.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		OrgID:     u.OrgID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
