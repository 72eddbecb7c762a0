package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
)

// OrgHandler organización, miembros y bitácora.
type OrgHandler struct {
	uc *usecase.OrgUseCase
}

// NewOrgHandler construye el handler.
func NewOrgHandler(uc *usecase.OrgUseCase) *OrgHandler {
	return &OrgHandler{uc: uc}
}

// Get godoc
// @Summary      Obtener organización
// @Tags         orgs
// @Security     Bearer
// @Produce      json
// @Param        orgId  path  string  true  "ID de la organización"
// @Success      200  {object}  dto.OrganizationResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/orgs/{orgId} [get]
func (h *OrgHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), CurrentUser(c), c.Params("orgId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Rename godoc
// @Summary      Renombrar organización
// @Tags         orgs
// @Security     Bearer
// @Accept       json
// @Param        orgId  path  string                         true  "ID de la organización"
// @Param        body   body  dto.UpdateOrganizationRequest  true  "name"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/orgs/{orgId} [put]
func (h *OrgHandler) Rename(c *fiber.Ctx) error {
	var in dto.UpdateOrganizationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.Rename(c.Context(), CurrentUser(c), c.Params("orgId"), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListMembers godoc
// @Summary      Listar miembros
// @Tags         orgs
// @Security     Bearer
// @Produce      json
// @Param        orgId  path  string  true  "ID de la organización"
// @Success      200  {object}  dto.MemberListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/orgs/{orgId}/members [get]
func (h *OrgHandler) ListMembers(c *fiber.Ctx) error {
	out, err := h.uc.ListMembers(c.Context(), CurrentUser(c), c.Params("orgId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddMember godoc
// @Summary      Agregar miembro
// @Description  Solo un administrador; el rol asignado no puede superar el propio.
// @Tags         orgs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        orgId  path  string                true  "ID de la organización"
// @Param        body   body  dto.AddMemberRequest  true  "email, password, name, role"
// @Success      201  {object}  dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orgs/{orgId}/members [post]
func (h *OrgHandler) AddMember(c *fiber.Ctx) error {
	var in dto.AddMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddMember(c.Context(), CurrentUser(c), c.Params("orgId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateMemberRole godoc
// @Summary      Cambiar rol de un miembro
// @Tags         orgs
// @Security     Bearer
// @Accept       json
// @Param        orgId   path  string                       true  "ID de la organización"
// @Param        userId  path  string                       true  "ID del miembro"
// @Param        body    body  dto.UpdateMemberRoleRequest  true  "role"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orgs/{orgId}/members/{userId} [put]
func (h *OrgHandler) UpdateMemberRole(c *fiber.Ctx) error {
	var in dto.UpdateMemberRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	userID, err := idParam(c, "userId")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.UpdateMemberRole(c.Context(), CurrentUser(c), c.Params("orgId"), userID, in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveMember godoc
// @Summary      Eliminar miembro
// @Tags         orgs
// @Security     Bearer
// @Param        orgId   path  string  true  "ID de la organización"
// @Param        userId  path  string  true  "ID del miembro"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orgs/{orgId}/members/{userId} [delete]
func (h *OrgHandler) RemoveMember(c *fiber.Ctx) error {
	userID, err := idParam(c, "userId")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.RemoveMember(c.Context(), CurrentUser(c), c.Params("orgId"), userID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AuditLog godoc
// @Summary      Bitácora de auditoría
// @Tags         orgs
// @Security     Bearer
// @Produce      json
// @Param        orgId  path   string  true   "ID de la organización"
// @Param        page   query  int     false  "Página"
// @Param        limit  query  int     false  "Elementos por página (50 por defecto)"
// @Success      200  {array}  dto.AuditLogResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/orgs/{orgId}/audit-log [get]
func (h *OrgHandler) AuditLog(c *fiber.Ctx) error {
	out, err := h.uc.AuditLog(c.Context(), CurrentUser(c), c.Params("orgId"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
