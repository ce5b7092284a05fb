package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	RoleStudent      = "student"
	RoleOrganization = "organization"
	RoleAdmin        = "admin"
)

// Actor is the authenticated caller, resolved per request by the gateway
// and passed in headers. It replaces ambient session state: handlers only
// see this explicit value.
type Actor struct {
	ID   uuid.UUID
	Role string
}

const actorKey = "actor"

// ActorMiddleware parses X-Actor-Id / X-Actor-Role into request locals.
// Requests without an actor stay anonymous; role checks happen per route.
func ActorMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idHeader := c.Get("X-Actor-Id")
		roleHeader := c.Get("X-Actor-Role")

		if idHeader != "" && roleHeader != "" {
			if id, err := uuid.Parse(idHeader); err == nil {
				c.Locals(actorKey, &Actor{ID: id, Role: roleHeader})
			}
		}

		return c.Next()
	}
}

// ActorFrom returns the request actor, or nil for anonymous requests.
func ActorFrom(c *fiber.Ctx) *Actor {
	if actor, ok := c.Locals(actorKey).(*Actor); ok {
		return actor
	}
	return nil
}

// RequireRole writes a 401/403 response and returns nil unless the actor
// has one of the roles.
func RequireRole(c *fiber.Ctx, roles ...string) *Actor {
	actor := ActorFrom(c)
	if actor == nil {
		c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
		return nil
	}

	for _, role := range roles {
		if actor.Role == role {
			return actor
		}
	}

	c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"error": "insufficient permissions",
	})
	return nil
}

// canManageStudent reports whether the actor may mutate this student's data.
func canManageStudent(actor *Actor, studentID uuid.UUID) bool {
	if actor == nil {
		return false
	}
	return actor.Role == RoleAdmin || (actor.Role == RoleStudent && actor.ID == studentID)
}
