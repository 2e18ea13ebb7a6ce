package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimiter creates a rate limiting middleware keyed by identity when
// available, falling back to the client IP.
func RateLimiter(max int, expiration time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: expiration,
		KeyGenerator: func(c *fiber.Ctx) string {
			if id, ok := c.Locals("userID").(interface{ String() string }); ok {
				return id.String()
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "too many requests, please try again later",
			})
		},
	})
}

// StrictRateLimiter for sensitive endpoints (register, login).
func StrictRateLimiter() fiber.Handler {
	return RateLimiter(5, 15*time.Minute)
}
