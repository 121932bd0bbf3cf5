package webapi

import (
	"errors"
	"time"

	"github.com/finsighthq/finsight/pkg/domain"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

// ErrorResponseJSON returns a response following RFC 9457 Problem Details.
func ErrorResponseJSON(
	c *fiber.Ctx,
	status int,
	title string,
	detail any,
) error {
	pd := ProblemDetails{
		Type:   "about:blank",
		Title:  title,
		Status: status,
	}
	if detail != nil {
		if s, ok := detail.(string); ok {
			pd.Detail = s
		} else {
			pd.Errors = detail
		}
	}
	pd.Instance = c.OriginalURL()
	c.Set(fiber.HeaderContentType, "application/problem+json")

	return c.Status(status).JSON(pd)
}

// ErrorToStatusCode maps domain errors to appropriate HTTP status codes.
func ErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrTransactionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrProjectNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrCategoryNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrAllocationTarget):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrAllocationEmpty):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrAllocationInconsistent):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrAllocationPercentageSum):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrSystemCategory):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// ServiceErrorJSON writes a problem response with the status derived from
// the domain error.
func ServiceErrorJSON(c *fiber.Ctx, title string, err error) error {
	return ErrorResponseJSON(c, ErrorToStatusCode(err), title, err.Error())
}

// BindAndValidate parses the request body and validates it with
// go-playground/validator. On failure the error response is already
// written and the returned pointer is nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", err.Error())
	}
	return &input, nil
}

// parseID reads a UUID path parameter.
func parseID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid id", err.Error())
	}
	return id, nil
}

// parsePeriod reads the required start and end date query parameters
// (YYYY-MM-DD). The end date is inclusive: it is extended to the last
// instant of that day.
func parsePeriod(c *fiber.Ctx) (start, end time.Time, err error) {
	start, err = time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		return start, end, ErrorResponseJSON(c, fiber.StatusBadRequest,
			"Invalid period", "start must be a YYYY-MM-DD date")
	}
	end, err = time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		return start, end, ErrorResponseJSON(c, fiber.StatusBadRequest,
			"Invalid period", "end must be a YYYY-MM-DD date")
	}
	end = end.Add(24*time.Hour - time.Nanosecond)
	if end.Before(start) {
		return start, end, ErrorResponseJSON(c, fiber.StatusBadRequest,
			"Invalid period", "end must not precede start")
	}
	return start, end, nil
}
