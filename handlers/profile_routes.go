package handlers

import (
	"errors"

	"shadow-ranch-system/middleware"
	"shadow-ranch-system/services"

	"github.com/gofiber/fiber/v2"
)

// SetupProfileRoutes exposes the per-wallet profile document.
func SetupProfileRoutes(app *fiber.App, profileService *services.ProfileService) {
	securedGroup := app.Group("/s", middleware.WalletContextMiddleware())

	securedGroup.Get("/user/profile", func(c *fiber.Ctx) error {
		wallet := c.Locals("wallet_address").(string)

		profile, err := profileService.GetProfile(wallet)
		if err != nil {
			if errors.Is(err, services.ErrProfileNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "profile not found"})
			}
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "failed to load profile",
				"cause": err.Error(),
			})
		}
		return c.JSON(profile)
	})

	securedGroup.Post("/user/profile", func(c *fiber.Ctx) error {
		wallet := c.Locals("wallet_address").(string)

		if _, err := profileService.GetProfile(wallet); err == nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "profile already exists"})
		}
		profile, err := profileService.CreateProfile(wallet)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "failed to create profile",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(profile)
	})

	securedGroup.Patch("/user/profile", func(c *fiber.Ctx) error {
		wallet := c.Locals("wallet_address").(string)

		var update services.ProfileUpdate
		if err := c.BodyParser(&update); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		profile, err := profileService.UpdateProfile(wallet, update)
		if err != nil {
			if errors.Is(err, services.ErrProfileNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "profile not found"})
			}
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "failed to update profile",
				"cause": err.Error(),
			})
		}
		return c.JSON(profile)
	})
}
