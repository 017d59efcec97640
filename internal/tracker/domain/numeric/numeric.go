// Package numeric приводит пользовательский ввод к числу по правилам JavaScript Number().
package numeric

import (
	"errors"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// Parse приводит строку к числу. Нечисловой ввод дает NaN, пустая строка - 0.
func Parse(value string) float64 {
	value = strings.TrimSpace(value)
	switch value {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if len(value) > 2 && value[0] == '0' {
		if base := prefixBase(value[1]); base != 0 {
			return parseInteger(value[2:], base)
		}
	}

	if !decimalLiteral.MatchString(value) {
		return math.NaN()
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return f
}

func prefixBase(c byte) int {
	switch c {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	default:
		return 0
	}
}

func parseInteger(digits string, base int) float64 {
	if strings.ContainsAny(digits, "+-_") {
		return math.NaN()
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return math.NaN()
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	return f
}

// SliceEnd возвращает конец среза [0:end) для длины n так же, как Array.prototype.slice(0, limit):
// NaN дает 0, дробная часть отбрасывается, отрицательное значение отсчитывается от конца.
func SliceEnd(limit float64, n int) int {
	if math.IsNaN(limit) {
		return 0
	}
	limit = math.Trunc(limit)
	if limit < 0 {
		end := float64(n) + limit
		if end < 0 {
			return 0
		}
		return int(end)
	}
	if limit > float64(n) {
		return n
	}
	return int(limit)
}
