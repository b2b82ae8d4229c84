package routes

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"catalog/repository"
	"catalog/validation"

	"github.com/gofiber/fiber/v2"
)

// bind decodes and validates the request body into req. When ok is false
// the error response has already been written.
func (h *Handler) bind(c *fiber.Ctx, req validation.Request) (ok bool, err error) {
	body, bodyErr := requestBody(c)
	if bodyErr != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body: " + bodyErr.Error(),
		})
	}

	err = h.validator.Bind(c.UserContext(), body, req)
	if err == nil {
		return true, nil
	}

	var verrs *validation.Errors
	switch {
	case errors.As(err, &verrs):
		return false, c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"message": verrs.Message(),
			"errors":  verrs,
		})
	case errors.Is(err, validation.ErrMalformedBody):
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body: " + strings.TrimPrefix(err.Error(), validation.ErrMalformedBody.Error()+": "),
		})
	default:
		return false, err
	}
}

// requestBody returns the JSON body, converting form submissions into an
// equivalent JSON object of strings.
func requestBody(c *fiber.Ctx) ([]byte, error) {
	if !isForm(c) {
		return c.Body(), nil
	}

	fields := map[string]string{}
	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, err
		}
		for key, values := range form.Value {
			if len(values) > 0 {
				fields[key] = values[0]
			}
		}
	} else {
		c.Request().PostArgs().VisitAll(func(key, value []byte) {
			fields[string(key)] = string(value)
		})
	}
	return json.Marshal(fields)
}

func idParam(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func wantsJSON(c *fiber.Ctx) bool {
	return c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}

func setPaginationHeaders(c *fiber.Ctx, p repository.Pagination) {
	c.Set("X-Page", strconv.Itoa(p.CurrentPage))
	c.Set("X-Total-Count", strconv.FormatInt(p.Total, 10))
	c.Set("X-Has-More", strconv.FormatBool(p.HasMore))
}

func renderHTML(c *fiber.Ctx, render func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}
