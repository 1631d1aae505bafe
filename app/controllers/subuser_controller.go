package controllers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/medirate/medirate/internal/pkg/billing"
	"github.com/medirate/medirate/internal/pkg/database"
)

type addSubUserRequest struct {
	Email        string `json:"email" validate:"required,email"`
	SubUserEmail string `json:"subUserEmail" validate:"required,email"`
}

// HandleAddSubUser runs the synchronous seat purchase flow: prorate the
// primary's remaining term, charge the billing provider, insert the seat.
func HandleAddSubUser(c *fiber.Ctx) error {
	var req addSubUserRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Request body could not be parsed")
	}
	if err := validate.Struct(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", "Both email and subUserEmail must be valid email addresses")
	}

	svc := billing.NewServiceFromDB(database.GetDB())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	result, err := svc.AddSubUser(ctx, req.Email, req.SubUserEmail)
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrUserNotFound):
			return jsonError(c, fiber.StatusNotFound, "user_not_found", "No account exists for the primary email")
		case errors.Is(err, billing.ErrSubscriptionNotFound):
			return jsonError(c, fiber.StatusNotFound, "subscription_not_found", "The primary email has no active subscription")
		case errors.Is(err, billing.ErrSubscriptionExpired):
			return jsonError(c, fiber.StatusBadRequest, "subscription_expired", "The primary subscription has no remaining term")
		case errors.Is(err, billing.ErrSlotLimitReached):
			return jsonError(c, fiber.StatusBadRequest, "slot_limit_reached", "The maximum number of sub-users has been reached")
		default:
			log.Printf("add sub-user failed: primary=%s err=%v", req.Email, err)
			return internalError(c)
		}
	}

	return c.JSON(fiber.Map{
		"message":             "Sub-user added successfully",
		"chargeAmount":        result.ChargeAmount,
		"stripePaymentIntent": result.PaymentIntentID,
	})
}
