package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/medirate/medirate/app/controllers"
	"github.com/medirate/medirate/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	// The webhook sits outside the rate limiter: the billing provider's
	// delivery bursts must not be throttled into retries.
	app.Post("/api/stripe/webhook", controllers.HandleStripeWebhook)

	api := app.Group("/api", limiter.New())
	api.Get("/rates", controllers.HandleGetRates)
	api.Post("/subusers", controllers.HandleAddSubUser)
	api.Post("/users/sync", controllers.HandleSyncUser)

	admin := api.Group("/admin", middleware.AdminAPIKeyMiddleware())
	admin.Patch("/:table/:id", controllers.HandleAdminUpdate)
	admin.Delete("/:table/:id", controllers.HandleAdminDelete)
	admin.Delete("/:table", controllers.HandleAdminDeleteByKey)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
