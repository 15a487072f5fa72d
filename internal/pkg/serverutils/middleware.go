package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

// ErrorHandler renders every error returned by a handler in the BaseResponse envelope.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	return ctx.Status(code).JSON(ErrorResponse(code, message))
}

// RequestID tags each request with a uuid, reusing a valid inbound X-Request-ID.
func RequestID() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id := ctx.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		ctx.Locals(RequestIDKey, id)
		ctx.Set(RequestIDHeader, id)
		return ctx.Next()
	}
}

// GetRequestID returns the id set by RequestID, or "" outside that middleware.
func GetRequestID(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals(RequestIDKey).(string)
	return id
}
