package users

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"

	"exercisetracker/internal/tracker/app/dto"
)

// requestBody - поля тела запроса; отсутствующее поле равно нулевому dto.Field.
type requestBody map[string]dto.Field

// parseBody читает тело в формате JSON, application/x-www-form-urlencoded или multipart/form-data.
// Тело другого типа считается пустым.
func parseBody(ctx fiber.Ctx) (requestBody, error) {
	fields := requestBody{}

	contentType := strings.ToLower(ctx.Get(fiber.HeaderContentType))
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}

	switch strings.TrimSpace(contentType) {
	case fiber.MIMEApplicationJSON:
		body := ctx.Body()
		if len(bytes.TrimSpace(body)) == 0 {
			return fields, nil
		}

		decoder := json.NewDecoder(bytes.NewReader(body))
		decoder.UseNumber()

		var payload any
		if err := decoder.Decode(&payload); err != nil {
			return nil, fmt.Errorf("decoding JSON body: %w", err)
		}
		if object, ok := payload.(map[string]any); ok {
			for key, value := range object {
				fields[key] = dto.FieldFromJSON(value)
			}
		}
	case fiber.MIMEApplicationForm:
		ctx.Request().PostArgs().VisitAll(func(key, value []byte) {
			if _, seen := fields[string(key)]; !seen {
				fields[string(key)] = dto.FieldFromString(string(value))
			}
		})
	case fiber.MIMEMultipartForm:
		form, err := ctx.MultipartForm()
		if err != nil {
			return nil, fmt.Errorf("reading multipart body: %w", err)
		}
		for key, values := range form.Value {
			if len(values) > 0 {
				fields[key] = dto.FieldFromString(values[0])
			}
		}
	}

	return fields, nil
}
