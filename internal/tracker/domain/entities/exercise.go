package entities

import "exercisetracker/internal/tracker/domain/calendar"

// Exercise представляет одну запись журнала.
// Duration может быть NaN, если длительность не удалось привести к числу.
type Exercise struct {
	Description string
	Duration    float64
	Date        calendar.Date
}
