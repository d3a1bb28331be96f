// Package progress считает, какая часть текущего календарного года уже
// прошла, и рисует её текстовой полосой вида "[▓▓▓▓▓▓▓░░░░░░░] 50%".
//
// Точность — целые часы: минуты и секунды текущего часа отбрасываются.
package progress

import (
	"fmt"
	"strings"
	"time"
)

const (
	BarWidth = 15

	FilledGlyph = "▓"
	EmptyGlyph  = "░"
)

// Bar — результат расчёта: процент (0..100) и число закрашенных ячеек.
type Bar struct {
	Percent int
	Filled  int
}

// YearProgress — чистая функция, зависит только от now (берётся в UTC).
func YearProgress(now time.Time) Bar {
	now = now.UTC()
	year := now.Year()

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	today := time.Date(year, now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	// часы до начала текущих суток + час текущих суток
	elapsed := wholeHours(today.Sub(yearStart)) + now.Hour()
	total := HoursInYear(year)

	percent := int(float64(elapsed) / float64(total) * 100)
	filled := int(float64(percent) / 100 * BarWidth)

	return Bar{Percent: percent, Filled: filled}
}

// HoursInYear — 8760 для обычного года и 8784 для високосного.
func HoursInYear(year int) int {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	next := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	return wholeHours(next.Sub(start))
}

// Glyphs возвращает только саму полосу, ровно BarWidth символов.
func (b Bar) Glyphs() string {
	filled := min(max(b.Filled, 0), BarWidth)
	return strings.Repeat(FilledGlyph, filled) + strings.Repeat(EmptyGlyph, BarWidth-filled)
}

func (b Bar) String() string {
	return fmt.Sprintf("[%s] %d%%", b.Glyphs(), b.Percent)
}

func wholeHours(d time.Duration) int {
	return int(d / time.Hour)
}
