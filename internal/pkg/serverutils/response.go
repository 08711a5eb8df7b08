package serverutils

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

type ErrResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func ErrorResponse(code int, message string) ErrResponse {
	_ = code // status code travels on the HTTP response itself
	return ErrResponse{
		Success: false,
		Error:   message,
	}
}

// ErrorHandlerMiddleware converts errors escaping the handlers into the
// {error} JSON shape. fiber.Error statuses pass through; anything else is a
// 500 with a fixed short message, the underlying detail stays in the logs.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		log.Printf("unhandled error on %s %s: %v", ctx.Method(), ctx.Path(), err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(
			ErrorResponse(fiber.StatusInternalServerError, "Internal Server Error"),
		)
	}
}
