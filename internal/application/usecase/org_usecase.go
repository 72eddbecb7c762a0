package usecase

import (
	"context"
	"encoding/json"
	"fmt"
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
)

// MemberTxRunner ejecuta un cambio de miembros junto con su entrada de auditoría en la misma transacción.
type MemberTxRunner interface {
	RunMembers(ctx context.Context, fn func(
		orgRepo repository.OrganizationRepository,
		userRepo repository.UserRepository,
		auditRepo repository.AuditLogRepository,
	) error) error
}

// OrgUseCase administración de la organización y sus miembros.
// Cada operación autoriza al actor con el control de acceso antes de tocar datos.
type OrgUseCase struct {
	orgRepo   repository.OrganizationRepository
	userRepo  repository.UserRepository
	auditRepo repository.AuditLogRepository
	tx        MemberTxRunner
	log       zerolog.Logger
}

// NewOrgUseCase construye el caso de uso.
func NewOrgUseCase(
	orgRepo repository.OrganizationRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditLogRepository,
	tx MemberTxRunner,
	log zerolog.Logger,
) *OrgUseCase {
	return &OrgUseCase{orgRepo: orgRepo, userRepo: userRepo, auditRepo: auditRepo, tx: tx, log: log}
}

// Get devuelve la organización.
func (uc *OrgUseCase) Get(ctx context.Context, actor access.User, orgID string) (*dto.OrganizationResponse, error) {
	if !access.CanRead(actor, orgID) {
		return nil, domain.ErrForbidden
	}
	org, err := uc.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.OrganizationResponse{ID: org.ID, Name: org.Name, OwnerID: org.OwnerID, CreatedAt: org.CreatedAt, UpdatedAt: org.UpdatedAt}, nil
}

// Rename cambia el nombre de la organización. Requiere manage.
func (uc *OrgUseCase) Rename(ctx context.Context, actor access.User, orgID string, in dto.UpdateOrganizationRequest) error {
	if !access.CanManage(actor, orgID) {
		return domain.ErrForbidden
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	return uc.tx.RunMembers(ctx, func(orgRepo repository.OrganizationRepository, _ repository.UserRepository, auditRepo repository.AuditLogRepository) error {
		if err := orgRepo.UpdateName(ctx, orgID, name); err != nil {
			return err
		}
		return auditRepo.Create(ctx, newAudit(orgID, actor.ID, entity.AuditOrgRenamed, "organization", orgID, map[string]string{"name": name}))
	})
}

// ListMembers lista los usuarios de la organización. Requiere read.
func (uc *OrgUseCase) ListMembers(ctx context.Context, actor access.User, orgID string) (*dto.MemberListResponse, error) {
	if !access.CanRead(actor, orgID) {
		return nil, domain.ErrForbidden
	}
	users, err := uc.userRepo.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, *entityToUserResponse(u))
	}
	return &dto.MemberListResponse{Items: items}, nil
}

// AddMember crea un usuario en la organización con el rol indicado.
// Requiere manage y que el actor pueda otorgar ese rol.
func (uc *OrgUseCase) AddMember(ctx context.Context, actor access.User, orgID string, in dto.AddMemberRequest) (*dto.UserResponse, error) {
	role, ok := access.ParseRole(in.Role)
	if !ok {
		return nil, fmt.Errorf("%w: rol %q no válido", domain.ErrInvalidInput, in.Role)
	}
	if !access.CanManage(actor, orgID) || !access.CanUpdateRole(actor, role) {
		return nil, domain.ErrForbidden
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 8 {
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
	user := &entity.User{
		ID:           uuid.New().String(),
		OrgID:        orgID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.tx.RunMembers(ctx, func(_ repository.OrganizationRepository, userRepo repository.UserRepository, auditRepo repository.AuditLogRepository) error {
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		return auditRepo.Create(ctx, newAudit(orgID, actor.ID, entity.AuditMemberAdded, "user", user.ID, map[string]string{"email": email, "role": string(role)}))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("org_id", orgID).Str("user_id", user.ID).Str("role", string(role)).Msg("miembro agregado")
	return entityToUserResponse(user), nil
}

// UpdateMemberRole cambia el rol de un miembro. Nadie puede cambiar su propio rol.
func (uc *OrgUseCase) UpdateMemberRole(ctx context.Context, actor access.User, orgID, userID string, in dto.UpdateMemberRoleRequest) error {
	role, ok := access.ParseRole(in.Role)
	if !ok {
		return fmt.Errorf("%w: rol %q no válido", domain.ErrInvalidInput, in.Role)
	}
	if !access.CanManage(actor, orgID) || !access.CanUpdateRole(actor, role) {
		return domain.ErrForbidden
	}
	if userID == actor.ID {
		return fmt.Errorf("%w: no puede cambiar su propio rol", domain.ErrConflict)
	}
	target, err := uc.member(ctx, orgID, userID)
	if err != nil {
		return err
	}
	if target.Role == role {
		return nil
	}
	err = uc.tx.RunMembers(ctx, func(_ repository.OrganizationRepository, userRepo repository.UserRepository, auditRepo repository.AuditLogRepository) error {
		if err := userRepo.UpdateRole(ctx, userID, role); err != nil {
			return err
		}
		return auditRepo.Create(ctx, newAudit(orgID, actor.ID, entity.AuditMemberRoleUpdated, "user", userID,
			map[string]string{"from": string(target.Role), "to": string(role)}))
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("org_id", orgID).Str("user_id", userID).Str("role", string(role)).Msg("rol actualizado")
	return nil
}

// RemoveMember elimina un miembro. Requiere delete; nadie puede eliminarse a sí mismo.
func (uc *OrgUseCase) RemoveMember(ctx context.Context, actor access.User, orgID, userID string) error {
	if !access.CanDelete(actor, orgID) {
		return domain.ErrForbidden
	}
	if userID == actor.ID {
		return fmt.Errorf("%w: no puede eliminarse de la organización", domain.ErrConflict)
	}
	target, err := uc.member(ctx, orgID, userID)
	if err != nil {
		return err
	}
	err = uc.tx.RunMembers(ctx, func(_ repository.OrganizationRepository, userRepo repository.UserRepository, auditRepo repository.AuditLogRepository) error {
		if err := userRepo.Delete(ctx, userID); err != nil {
			return err
		}
		return auditRepo.Create(ctx, newAudit(orgID, actor.ID, entity.AuditMemberRemoved, "user", userID, map[string]string{"email": target.Email}))
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("org_id", orgID).Str("user_id", userID).Msg("miembro eliminado")
	return nil
}

// AuditLog devuelve la bitácora de la organización. Requiere manage.
func (uc *OrgUseCase) AuditLog(ctx context.Context, actor access.User, orgID string, page dto.PageRequest) ([]dto.AuditLogResponse, error) {
	if !access.CanManage(actor, orgID) {
		return nil, domain.ErrForbidden
	}
	page.Normalize(50)
	logs, err := uc.auditRepo.ListByOrg(ctx, orgID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	out := make([]dto.AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		var meta any
		if len(l.Meta) > 0 {
			_ = json.Unmarshal(l.Meta, &meta)
		}
		out = append(out, dto.AuditLogResponse{
			ID: l.ID, ActorID: l.ActorID, Action: l.Action, EntityType: l.EntityType, EntityID: l.EntityID, Meta: meta, CreatedAt: l.CreatedAt,
		})
	}
	return out, nil
}

// member busca el usuario y verifica que pertenezca a la organización.
func (uc *OrgUseCase) member(ctx context.Context, orgID, userID string) (*entity.User, error) {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil || u.OrgID != orgID {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func newAudit(orgID, actorID, action, entityType, entityID string, meta map[string]string) *entity.AuditLog {
	raw, _ := json.Marshal(meta)
	return &entity.AuditLog{
		ID:         uuid.New().String(),
		OrgID:      orgID,
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Meta:       raw,
		CreatedAt:  time.Now(),
	}
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
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
