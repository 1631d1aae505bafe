package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/medirate/medirate/app/models"
	"github.com/medirate/medirate/app/repository"
)

type syncUserRequest struct {
	Email          string `json:"email" validate:"required,email"`
	AuthProviderID string `json:"authProviderId" validate:"required"`
	Name           string `json:"name" validate:"max=150"`
}

// HandleSyncUser creates the local identity row the first time a user
// authenticates with the external identity provider, and refreshes linkage on
// later logins.
func HandleSyncUser(c *fiber.Ctx) error {
	var req syncUserRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Request body could not be parsed")
	}
	if err := validate.Struct(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", "A valid email and authProviderId are required")
	}

	user := &models.User{
		Email:          req.Email,
		AuthProviderID: req.AuthProviderID,
		Name:           req.Name,
		Role:           models.ROLE_USER,
	}
	created, err := repository.GetGlobalFactory().GetUserRepository().UpsertByEmail(user)
	if err != nil {
		log.Printf("user sync failed: email=%s err=%v", req.Email, err)
		return internalError(c)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(user)
}
