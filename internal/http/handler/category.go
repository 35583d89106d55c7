package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"gedapi/internal/model"
	"gedapi/internal/service"
)

type createCategoryRequest struct {
	Name string `json:"name"`
}

// categoryListResponse carries the category list plus an optional warning when
// the store could not be read. A list failure is non-fatal: the caller gets an
// empty list and the warning instead of an error page.
type categoryListResponse struct {
	Items   []model.Category `json:"data"`
	Warning string           `json:"warning,omitempty"`
}

// CreateCategory handles POST /categories.
func CreateCategory(catSvc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createCategoryRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		cat, err := catSvc.Create(c.UserContext(), req.Name)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNameRequired):
				return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "category name must not be empty")
			case errors.Is(err, service.ErrDuplicateName):
				return writeError(c, fiber.StatusConflict, "DUPLICATE_NAME", "a category with this name already exists")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(cat)
	}
}

// ListCategories handles GET /categories.
func ListCategories(catSvc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cats, err := catSvc.List(c.UserContext())
		if err != nil {
			return c.JSON(categoryListResponse{
				Items:   []model.Category{},
				Warning: "could not load categories",
			})
		}
		return c.JSON(categoryListResponse{Items: cats})
	}
}

// DeleteCategory handles DELETE /categories/:id.
func DeleteCategory(catSvc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := catSvc.Delete(c.UserContext(), id); err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrInvalidID):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "category not found")
			case errors.Is(err, service.ErrCategoryInUse):
				return writeError(c, fiber.StatusConflict, "CATEGORY_IN_USE",
					"category has associated documents; delete or reclassify them first")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
