package handlers

import (
	"strconv"

	"shadow-ranch-system/services"

	"github.com/gofiber/fiber/v2"
)

// SetupContentRoutes exposes the read-only lesson catalogue. Answer keys and
// validation rules never leave the server (stripped via json tags).
func SetupContentRoutes(app *fiber.App, content *services.ContentService) {
	app.Get("/challenges", func(c *fiber.Ctx) error {
		return c.JSON(content.ListChallenges())
	})

	app.Get("/challenges/:id", func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid challenge id"})
		}
		ch, err := content.GetChallenge(id)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "challenge not found"})
		}
		return c.JSON(ch)
	})

	app.Get("/modules/:id/challenges", func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid module id"})
		}
		return c.JSON(content.ChallengesForModule(id))
	})

	app.Get("/quizzes/:id", func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid quiz id"})
		}
		q, err := content.GetQuiz(id)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "quiz not found"})
		}
		return c.JSON(q)
	})
}
