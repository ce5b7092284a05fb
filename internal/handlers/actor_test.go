package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actorApp() *fiber.App {
	app := fiber.New()
	app.Use(ActorMiddleware())

	app.Get("/whoami", func(c *fiber.Ctx) error {
		actor := ActorFrom(c)
		if actor == nil {
			return c.JSON(fiber.Map{"anonymous": true})
		}
		return c.JSON(fiber.Map{"id": actor.ID.String(), "role": actor.Role})
	})

	app.Get("/admin", func(c *fiber.Ctx) error {
		if actor := RequireRole(c, RoleAdmin); actor == nil {
			return nil
		}
		return c.JSON(fiber.Map{"ok": true})
	})

	return app
}

func TestActorMiddlewareParsesHeaders(t *testing.T) {
	app := actorApp()
	actorID := uuid.New()

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("X-Actor-Id", actorID.String())
	req.Header.Set("X-Actor-Role", RoleStudent)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestActorMiddlewareIgnoresMalformedID(t *testing.T) {
	app := actorApp()

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("X-Actor-Id", "not-a-uuid")
	req.Header.Set("X-Actor-Role", RoleAdmin)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		wantStatus int
	}{
		{name: "admin allowed", role: RoleAdmin, wantStatus: fiber.StatusOK},
		{name: "student forbidden", role: RoleStudent, wantStatus: fiber.StatusForbidden},
		{name: "organization forbidden", role: RoleOrganization, wantStatus: fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := actorApp()

			req := httptest.NewRequest("GET", "/admin", nil)
			req.Header.Set("X-Actor-Id", uuid.New().String())
			req.Header.Set("X-Actor-Role", tt.role)

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestRequireRoleAnonymous(t *testing.T) {
	app := actorApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCanManageStudent(t *testing.T) {
	studentID := uuid.New()

	assert.False(t, canManageStudent(nil, studentID))
	assert.True(t, canManageStudent(&Actor{ID: uuid.New(), Role: RoleAdmin}, studentID))
	assert.True(t, canManageStudent(&Actor{ID: studentID, Role: RoleStudent}, studentID))
	assert.False(t, canManageStudent(&Actor{ID: uuid.New(), Role: RoleStudent}, studentID))
	assert.False(t, canManageStudent(&Actor{ID: studentID, Role: RoleOrganization}, studentID))
}
