package handler

import (
	"github.com/labstack/echo/v4"
)

const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Envelope is the body of every API response.
type Envelope struct {
	Result  string `json:"result"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func respond(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, Envelope{Result: ResultSuccess, Message: message, Data: data})
}

// Fail renders an error envelope.
func Fail(c echo.Context, code int, message string) error {
	return c.JSON(code, Envelope{Result: ResultError, Message: message})
}
