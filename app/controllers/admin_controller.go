package controllers

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/medirate/medirate/app/repository"
	"gorm.io/gorm"
)

type adminUpdateRequest struct {
	Updates map[string]interface{} `json:"updates"`
}

type adminDeleteByKeyRequest struct {
	Key string `json:"key" validate:"required"`
}

// HandleAdminUpdate patches arbitrary allow-listed columns of one content row.
// Column names are validated against the per-table allow-list; unknown names
// are a validation error, never interpolated into SQL.
func HandleAdminUpdate(c *fiber.Ctx) error {
	table := c.Params("table")
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Row id must be numeric")
	}

	var req adminUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Request body could not be parsed")
	}
	if len(req.Updates) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", "updates must contain at least one column")
	}

	repo := repository.GetGlobalFactory().GetContentRepository()
	if err := repo.UpdateByID(table, uint(id), req.Updates); err != nil {
		switch {
		case errors.Is(err, repository.ErrUnknownTable):
			return jsonError(c, fiber.StatusBadRequest, "unknown_table", "No such content table: "+table)
		case errors.Is(err, repository.ErrUnknownColumn):
			columns, _ := repo.MutableColumns(table)
			return jsonError(c, fiber.StatusBadRequest, "unknown_column",
				"Only these columns are mutable: "+strings.Join(columns, ", "))
		case errors.Is(err, gorm.ErrRecordNotFound):
			return jsonError(c, fiber.StatusNotFound, "not_found", "No row with that id")
		default:
			log.Printf("admin update failed: table=%s id=%d err=%v", table, id, err)
			return internalError(c)
		}
	}

	return c.JSON(fiber.Map{"message": "Row updated"})
}

// HandleAdminDelete removes one content row by numeric id.
func HandleAdminDelete(c *fiber.Ctx) error {
	table := c.Params("table")
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Row id must be numeric")
	}

	repo := repository.GetGlobalFactory().GetContentRepository()
	if err := repo.DeleteByID(table, uint(id)); err != nil {
		return mapAdminDeleteError(c, table, id, err)
	}
	return c.JSON(fiber.Map{"message": "Row deleted"})
}

// HandleAdminDeleteByKey removes one content row by its natural key (the
// alert link or bill url), for tables that have one.
func HandleAdminDeleteByKey(c *fiber.Ctx) error {
	table := c.Params("table")

	var req adminDeleteByKeyRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Request body could not be parsed")
	}
	if err := validate.Struct(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", "key is required")
	}

	repo := repository.GetGlobalFactory().GetContentRepository()
	if err := repo.DeleteByNaturalKey(table, req.Key); err != nil {
		return mapAdminDeleteError(c, table, 0, err)
	}
	return c.JSON(fiber.Map{"message": "Row deleted"})
}

func mapAdminDeleteError(c *fiber.Ctx, table string, id uint64, err error) error {
	switch {
	case errors.Is(err, repository.ErrUnknownTable):
		return jsonError(c, fiber.StatusBadRequest, "unknown_table", "No such content table: "+table)
	case errors.Is(err, repository.ErrUnknownColumn):
		return jsonError(c, fiber.StatusBadRequest, "no_natural_key", "Table "+table+" can only be deleted by id")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return jsonError(c, fiber.StatusNotFound, "not_found", "No matching row")
	default:
		log.Printf("admin delete failed: table=%s id=%d err=%v", table, id, err)
		return internalError(c)
	}
}
