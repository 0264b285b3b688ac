package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// WalletContextMiddleware extracts the wallet identity forwarded by the
// Gateway. X-Wallet-Address is the user key; X-Wallet-Connected reflects
// whether a live wallet session backs it (anonymous learners still get
// progress, they just don't get on-chain mints).
func WalletContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		wallet := c.Get("X-Wallet-Address")
		connectedStr := c.Get("X-Wallet-Connected")

		// Secured paths (/s/...) require a wallet identity.
		path := c.Path()
		isSecured := strings.HasPrefix(path, "/s/")
		if isSecured && wallet == "" {
			log.Printf("❌ [WALLET_CTX] X-Wallet-Address required but missing on secured route: %s", path)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-Wallet-Address — request must come through gateway with wallet context",
			})
		}

		connected := strings.ToLower(connectedStr) == "true"

		c.Locals("wallet_address", wallet)
		c.Locals("wallet_connected", connected)

		return c.Next()
	}
}
