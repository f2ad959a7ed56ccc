package web

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/flowdeck/flowdeck/pkg/auth"
)

const sessionLocal = "session"

// ResolveSession populates the request's session local from the bearer token,
// when one is present and valid. Requests without a usable token continue
// anonymously; RequireSession decides which routes need one.
func (h *APIHandlers) ResolveSession(c fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)

	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return c.Next()
	}

	sess, err := h.auth.SessionFromToken(c.Context(), token)
	if err != nil {
		if auth.IsNotAuthenticated(err) {
			return c.Next()
		}

		return internalError(c, err)
	}

	c.Locals(sessionLocal, sess)

	return c.Next()
}

// RequireSession rejects requests that did not resolve to a session.
func (h *APIHandlers) RequireSession(c fiber.Ctx) error {
	if sessionFrom(c) == nil {
		return notAuthenticated(c)
	}

	return c.Next()
}

func sessionFrom(c fiber.Ctx) *auth.Session {
	sess, ok := c.Locals(sessionLocal).(*auth.Session)
	if !ok {
		return nil
	}

	return sess
}
