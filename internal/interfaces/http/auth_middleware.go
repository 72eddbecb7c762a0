package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain/access"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/pkg/jwt"
)

// Locals keys para UserID, OrgID y Role en Fiber.
const (
	LocalUserID = "user_id"
	LocalOrgID  = "org_id"
	LocalRole   = "role"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID, OrgID y Role a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if claims.Role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalOrgID, claims.OrgID)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// UserLookup lee el usuario vigente; repository.UserRepository la satisface.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// ResolveActor recarga el usuario del token y reemplaza el rol de los locals por el guardado.
// Un usuario eliminado, inactivo o de otra organización queda fuera aunque su token no haya expirado.
// Debe usarse DESPUÉS de AuthMiddleware.
func ResolveActor(users UserLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if dto.ValidateID("user_id", userID) != nil {
			return revoked(c)
		}
		u, err := users.GetByID(c.Context(), userID)
		if err != nil {
			return respondError(c, err)
		}
		if u == nil || u.Status == entity.UserStatusInactive || u.OrgID != GetOrgID(c) {
			return revoked(c)
		}
		c.Locals(LocalRole, string(u.Role))
		return c.Next()
	}
}

func revoked(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "REVOKED", Message: "el usuario ya no tiene acceso a la organización"})
}

// RequirePermission autoriza la acción sobre la organización de la ruta (:orgId) o, si no hay,
// la del token. Debe usarse DESPUÉS de AuthMiddleware y a nivel de ruta para ver :orgId.
func RequirePermission(action access.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user.ID == "" || user.OrgID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
		}
		target := c.Params("orgId")
		if target == "" {
			target = user.OrgID
		}
		if !access.Can(user, action, target) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "el rol '" + string(user.Role) + "' no permite '" + string(action) + "'",
			})
		}
		return c.Next()
	}
}

// CurrentUser arma el usuario de control de acceso desde los locals del token.
func CurrentUser(c *fiber.Ctx) access.User {
	return access.User{ID: GetUserID(c), Role: access.Role(GetRole(c)), OrgID: GetOrgID(c)}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetOrgID devuelve el OrgID del contexto (después del middleware de auth).
func GetOrgID(c *fiber.Ctx) string { return localString(c, LocalOrgID) }

// GetRole devuelve el rol vigente (el guardado si ResolveActor corrió, si no el del token).
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
