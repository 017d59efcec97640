package dto

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"exercisetracker/internal/tracker/domain/numeric"
)

// Field - значение входного поля вместе с признаком "заполнено".
// Пустая строка, null, false и 0 считаются незаполненными.
type Field struct {
	Text      string
	Present   bool
	number    float64
	hasNumber bool
}

// FieldFromString создает поле из строкового значения (форма, query).
func FieldFromString(value string) Field {
	return Field{Text: value, Present: value != ""}
}

// FieldFromJSON создает поле из значения, декодированного из JSON с UseNumber.
func FieldFromJSON(value any) Field {
	switch v := value.(type) {
	case nil:
		return Field{}
	case string:
		return FieldFromString(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			f = numeric.Parse(v.String())
		}
		return Field{Text: v.String(), Present: f != 0 && !math.IsNaN(f), number: f, hasNumber: true}
	case float64:
		return Field{Text: strconv.FormatFloat(v, 'f', -1, 64), Present: v != 0 && !math.IsNaN(v), number: v, hasNumber: true}
	case bool:
		n := 0.0
		if v {
			n = 1
		}
		return Field{Text: strconv.FormatBool(v), Present: v, number: n, hasNumber: true}
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			if item != nil {
				parts[i] = FieldFromJSON(item).Text
			}
		}
		return Field{Text: strings.Join(parts, ","), Present: true}
	default:
		return Field{Text: "[object Object]", Present: true}
	}
}

// IsNumber сообщает, что значение пришло числом или логическим значением JSON.
func (f Field) IsNumber() bool {
	return f.hasNumber
}

// Number приводит значение поля к числу.
func (f Field) Number() float64 {
	if f.hasNumber {
		return f.number
	}
	return numeric.Parse(f.Text)
}
