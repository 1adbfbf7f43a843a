// Package apierror maps action failures onto HTTP responses. Every error body
// is {"error": text}.
package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/squeaknode/squeakweb/internal/rpc"
)

// validationError is bad input caught before anything reaches the gateway.
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

// Invalid returns an input error that From maps to 400.
func Invalid(msg string) error {
	return &validationError{msg: msg}
}

// Invalidf is Invalid with formatting.
func Invalidf(format string, args ...any) error {
	return &validationError{msg: fmt.Sprintf(format, args...)}
}

// IsInvalid reports whether err wraps an input error.
func IsInvalid(err error) bool {
	var ve *validationError
	return errors.As(err, &ve)
}

// From converts an action error into a *fiber.Error. Gateway failures become
// 502 carrying the gateway's text, input errors 400 and anything else 500.
func From(err error) error {
	if err == nil {
		return nil
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe
	}
	if rpc.IsGatewayError(err) {
		return fiber.NewError(http.StatusBadGateway, err.Error())
	}
	if IsInvalid(err) {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return fiber.NewError(http.StatusInternalServerError, err.Error())
}

// Handler is the app-wide fiber.ErrorHandler.
func Handler(c *fiber.Ctx, err error) error {
	code := http.StatusInternalServerError
	msg := err.Error()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	} else if rpc.IsGatewayError(err) {
		code = http.StatusBadGateway
	} else if IsInvalid(err) {
		code = http.StatusBadRequest
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}
