// Package calendar разбирает и форматирует даты записей журнала.
//
// Даты отображаются в виде "Mon Jan 02 2006". Нераспознанный ввод не является ошибкой:
// он превращается в недействительную дату, которая отображается как "Invalid Date"
// и не проходит ни одно сравнение.
package calendar

import (
	"fmt"
	"math"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/araddon/dateparse"
)

// Layout - формат отображения даты записи.
const Layout = "Mon Jan 02 2006"

// InvalidText - отображение недействительной даты.
const InvalidText = "Invalid Date"

// Форматы, которые проверяются до универсального разборщика.
var layouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateTime,
	Layout,
	"Mon Jan 2 2006",
	time.RFC1123,
	time.RFC1123Z,
	time.UnixDate,
	time.ANSIC,
	"January 2, 2006",
	"Monday, January 2, 2006",
	"Mon, January 2, 2006",
	"Monday, Jan 2, 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2006/01/02",
}

// Наибольшее по модулю значение времени, допустимое для даты.
const maxEpochMilli = 8.64e15

// Date - момент времени либо недействительная дата.
type Date struct {
	t     time.Time
	valid bool
}

// Invalid возвращает недействительную дату.
func Invalid() Date {
	return Date{}
}

// IsValid сообщает, была ли дата распознана.
func (d Date) IsValid() bool {
	return d.valid
}

// String форматирует дату для ответа.
func (d Date) String() string {
	if !d.IsValid() {
		return InvalidText
	}
	return d.t.Format(Layout)
}

// NotBefore сообщает, что d не раньше bound. Ложно, если хотя бы одна дата недействительна.
func (d Date) NotBefore(bound Date) bool {
	return d.IsValid() && bound.IsValid() && !d.t.Before(bound.t)
}

// NotAfter сообщает, что d не позже bound. Ложно, если хотя бы одна дата недействительна.
func (d Date) NotAfter(bound Date) bool {
	return d.IsValid() && bound.IsValid() && !d.t.After(bound.t)
}

// Calendar разбирает даты в заданном часовом поясе.
type Calendar struct {
	loc *time.Location
}

// New создает календарь для часового пояса loc; nil означает UTC.
func New(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{loc: loc}
}

// Load создает календарь по имени часового пояса IANA.
func Load(name string) (*Calendar, error) {
	if name == "" {
		return New(time.UTC), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", name, err)
	}
	return New(loc), nil
}

// Parse разбирает строку в момент времени. Строки без смещения трактуются в часовом поясе календаря.
func (c *Calendar) Parse(value string) Date {
	value = strings.TrimSpace(value)
	if value == "" {
		return Invalid()
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, c.loc); err == nil {
			return Date{t: t.In(c.loc), valid: true}
		}
	}

	t, err := dateparse.ParseIn(value, c.loc)
	if err != nil {
		return Invalid()
	}
	return Date{t: t.In(c.loc), valid: true}
}

// Day отбрасывает время суток, оставляя полночь той же календарной даты.
func (c *Calendar) Day(d Date) Date {
	if !d.valid {
		return d
	}
	t := d.t.In(c.loc)
	return Date{t: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc), valid: true}
}

// Today возвращает календарную дату момента now.
func (c *Calendar) Today(now time.Time) Date {
	return c.Day(Date{t: now, valid: true})
}

// FromUnixMilli возвращает дату по числу миллисекунд от начала эпохи Unix.
func (c *Calendar) FromUnixMilli(ms float64) Date {
	if math.IsNaN(ms) || math.IsInf(ms, 0) || math.Abs(ms) > maxEpochMilli {
		return Invalid()
	}
	return Date{t: time.UnixMilli(int64(ms)).In(c.loc), valid: true}
}

// ParseDay разбирает строку и отбрасывает время суток.
func (c *Calendar) ParseDay(value string) Date {
	return c.Day(c.Parse(value))
}
