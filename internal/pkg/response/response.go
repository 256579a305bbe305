package response

import (
	"github.com/gofiber/fiber/v2"
)

// SuccessBody is the JSON shape of a successful non-page response.
type SuccessBody struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// ErrorBody is the JSON shape of a failed non-page response.
type ErrorBody struct {
	Status string      `json:"status"`
	Error  ErrorDetail `json:"error"`
}

// ErrorDetail is the nested error object.
type ErrorDetail struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	TraceID    string `json:"traceId,omitempty"`
}

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Success sends 200 with the success envelope.
func Success(c *fiber.Ctx, message string, data interface{}) error {
	if data == nil {
		data = fiber.Map{}
	}
	return c.Status(fiber.StatusOK).JSON(SuccessBody{
		Status:  statusSuccess,
		Message: message,
		Data:    data,
	})
}

// Error sends statusCode with the error envelope. The request trace id is
// echoed when the tracing middleware ran.
func Error(c *fiber.Ctx, message string, statusCode int) error {
	traceID, _ := c.Locals("trace_id").(string)
	return c.Status(statusCode).JSON(ErrorBody{
		Status: statusError,
		Error: ErrorDetail{
			Message:    message,
			StatusCode: statusCode,
			TraceID:    traceID,
		},
	})
}

// WantsJSON reports whether the caller asked for JSON rather than a page.
func WantsJSON(c *fiber.Ctx) bool {
	return c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}
