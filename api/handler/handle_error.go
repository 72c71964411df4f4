package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/academic-cert-api/internal/apperror"
	"github.com/sunthewhat/academic-cert-api/type/response"
)

// StatusOf maps the domain error kinds onto HTTP status codes.
func StatusOf(err error) int {
	var fiberErr *fiber.Error
	var rowErr *apperror.RowError
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, apperror.ErrFormat), errors.As(err, &rowErr):
		return fiber.StatusBadRequest
	case errors.Is(err, apperror.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperror.ErrForbidden):
		return fiber.StatusForbidden
	}
	return fiber.StatusInternalServerError
}

func HandleError(c *fiber.Ctx, err error) error {
	status := StatusOf(err)
	if status >= fiber.StatusInternalServerError {
		slog.Error("Request failed", "error", err, "path", c.Path(), "method", c.Method())
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(status).JSON(response.Error(fiberErr.Message))
	}
	return c.Status(status).JSON(response.Error(err.Error()))
}
