package handlers

import (
	"github.com/gofiber/fiber/v2"

	"burgerpos/internal/services"
)

// BackupHandler triggers pushes and pulls against the remote mirror.
type BackupHandler struct {
	service *services.BackupService
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(service *services.BackupService) *BackupHandler {
	return &BackupHandler{service: service}
}

// RegisterRoutes registers push and pull on router, which is expected to be the /backup
// group behind middleware.AuthRequired.
func (h *BackupHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/push", h.HandlePush)
	router.Post("/pull", h.HandlePull)
}

// HandlePush uploads the local collections.
func (h *BackupHandler) HandlePush(c *fiber.Ctx) error {
	results, err := h.service.Push(c.UserContext())
	return backupResponse(c, "push", results, err)
}

// HandlePull replaces the local collections with the remote snapshots.
func (h *BackupHandler) HandlePull(c *fiber.Ctx) error {
	results, err := h.service.Pull(c.UserContext())
	return backupResponse(c, "pull", results, err)
}

func backupResponse(c *fiber.Ctx, op string, results []services.BackupResult, err error) error {
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Backup " + op + " failed",
			"error":   err.Error(),
			"results": results,
		})
	}
	return c.JSON(fiber.Map{
		"message": "Backup " + op + " completed",
		"results": results,
	})
}
