package handlers

import (
	"errors"
	"strconv"

	"shadow-ranch-system/middleware"
	"shadow-ranch-system/services"

	"github.com/gofiber/fiber/v2"
)

// WalletSessions receives the wallet-connected state forwarded with each
// secured request, so the chain client knows whether a mint can be attempted.
type WalletSessions interface {
	SetConnected(wallet string, connected bool)
}

// SetupSubmissionRoutes wires the challenge/quiz submission endpoints. The UI
// disables the submit control while a submission is processing, so there is
// at most one in-flight submission per session.
func SetupSubmissionRoutes(app *fiber.App, rewardService *services.RewardService, sessions WalletSessions) {
	securedGroup := app.Group("/s", middleware.WalletContextMiddleware())

	securedGroup.Post("/challenges/:id/submit", func(c *fiber.Ctx) error {
		wallet := c.Locals("wallet_address").(string)
		connected := c.Locals("wallet_connected").(bool)
		sessions.SetConnected(wallet, connected)

		id, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid challenge id"})
		}

		var req struct {
			Code string `json:"code"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if req.Code == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "code is required"})
		}

		result, err := rewardService.SubmitCode(c.Context(), wallet, id, req.Code)
		if err != nil {
			if errors.Is(err, services.ErrChallengeNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "challenge not found"})
			}
			if errors.Is(err, services.ErrStorageUnavailable) {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"error": "could not save progress, try again",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "submission failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(result)
	})

	securedGroup.Post("/quizzes/:id/submit", func(c *fiber.Ctx) error {
		wallet := c.Locals("wallet_address").(string)
		connected := c.Locals("wallet_connected").(bool)
		sessions.SetConnected(wallet, connected)

		id, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid quiz id"})
		}

		var req struct {
			Answer string `json:"answer"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		result, err := rewardService.SubmitQuiz(c.Context(), wallet, id, req.Answer)
		if err != nil {
			if errors.Is(err, services.ErrQuizNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "quiz not found"})
			}
			if errors.Is(err, services.ErrStorageUnavailable) {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"error": "could not save progress, try again",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "submission failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(result)
	})
}
