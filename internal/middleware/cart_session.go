package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	CartSessionCookie = "cart_session_id"
	CartSessionHeader = "X-Cart-Session-Id"
	cartSessionLocal  = "cart_session_id"
	cartSessionMaxAge = 30 * 24 * time.Hour
)

// CartSession resolves the anonymous cart identity: cookie first, then the
// header, otherwise a fresh server-generated UUID. The id is echoed back as
// both cookie and header so either transport keeps working.
func CartSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(CartSessionCookie)
		if sid == "" {
			sid = c.Get(CartSessionHeader)
		}
		if sid == "" {
			sid = uuid.New().String()
		}
		c.Locals(cartSessionLocal, sid)
		c.Cookie(&fiber.Cookie{
			Name:     CartSessionCookie,
			Value:    sid,
			Path:     "/",
			MaxAge:   int(cartSessionMaxAge.Seconds()),
			HTTPOnly: true,
			SameSite: "Lax",
		})
		c.Set(CartSessionHeader, sid)
		return c.Next()
	}
}

// GetCartSessionID returns the resolved cart session id for this request.
func GetCartSessionID(c *fiber.Ctx) string {
	sid, _ := c.Locals(cartSessionLocal).(string)
	return sid
}
