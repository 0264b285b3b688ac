package handlers

import (
	"errors"

	"shadow-ranch-system/middleware"
	"shadow-ranch-system/models"
	"shadow-ranch-system/services"

	"github.com/gofiber/fiber/v2"
)

// SetupProgressRoutes exposes the per-wallet completion state: derived stats,
// the raw bitmasks, and the badge gallery.
func SetupProgressRoutes(app *fiber.App, progressService *services.ProgressService, profileService *services.ProfileService, rewardService *services.RewardService) {
	securedGroup := app.Group("/s", middleware.WalletContextMiddleware())

	securedGroup.Get("/user/progress", func(c *fiber.Ctx) error {
		wallet := c.Locals("wallet_address").(string)

		prog, err := progressService.EnsureProgressRecord(wallet)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "could not load progress",
				"cause": err.Error(),
			})
		}

		stats := services.ComputeCompletionStats(prog)
		return c.JSON(fiber.Map{
			"id":                      prog.ID,
			"wallet_address":          prog.WalletAddress,
			"challenges_completed":    prog.ChallengesCompleted,
			"modules_completed":       prog.ModulesCompleted,
			"completed_challenge_ids": stats.CompletedChallengeIDs,
			"completed_module_ids":    stats.CompletedModuleIDs,
			"percentage":              stats.Percentage,
			"created_at":              prog.CreatedAt,
			"updated_at":              prog.UpdatedAt,
		})
	})

	securedGroup.Post("/user/progress/init", func(c *fiber.Ctx) error {
		wallet := c.Locals("wallet_address").(string)

		if _, err := profileService.EnsureProfile(wallet); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "could not create profile",
				"cause": err.Error(),
			})
		}
		prog, err := progressService.EnsureProgressRecord(wallet)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "could not create progress record",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(prog)
	})

	securedGroup.Get("/user/progress/badges", func(c *fiber.Ctx) error {
		wallet := c.Locals("wallet_address").(string)

		badges, err := profileService.Badges(wallet)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "failed to get badges",
				"cause": err.Error(),
			})
		}
		return c.JSON(badges)
	})

	securedGroup.Get("/user/progress/mints", func(c *fiber.Ctx) error {
		wallet := c.Locals("wallet_address").(string)

		var receipts []models.MintReceipt
		if err := rewardService.DB.
			Where("wallet_address = ?", wallet).
			Order("created_at DESC").
			Find(&receipts).Error; err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "failed to get mint receipts",
				"cause": err.Error(),
			})
		}
		return c.JSON(receipts)
	})

	// Admin endpoints
	adminGroup := app.Group("/s/admin", middleware.WalletContextMiddleware())

	adminGroup.Post("/progress/reset", func(c *fiber.Ctx) error {
		var req struct {
			WalletAddress string `json:"wallet_address"`
		}
		if err := c.BodyParser(&req); err != nil || req.WalletAddress == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "wallet_address is required"})
		}
		if err := progressService.ResetProgress(req.WalletAddress); err != nil {
			if errors.Is(err, services.ErrStorageUnavailable) {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "could not reset progress"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"message": "progress reset", "wallet_address": req.WalletAddress})
	})

	adminGroup.Get("/mints", func(c *fiber.Ctx) error {
		var receipts []models.MintReceipt
		if err := rewardService.DB.Order("created_at DESC").Limit(200).Find(&receipts).Error; err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "failed to list mint receipts"})
		}
		return c.JSON(receipts)
	})
}
