// Package timeleft форматирует остаток времени действия подписки
// в человекочитаемый вид "часы и минуты" для сообщений клиенту.
package timeleft

import (
	"fmt"
	"time"
)

// Format возвращает остаток времени в виде строки вида
// "2 hours 15 minutes", "59 minutes" или "1 hour".
// Отрицательный остаток и остаток меньше минуты отображаются
// как "less than a minute".
func Format(d time.Duration) string {
	if d < time.Minute {
		return "less than a minute"
	}
	hours := int(d / time.Hour)
	minutes := int(d % time.Hour / time.Minute)

	switch {
	case hours == 0:
		return fmt.Sprintf("%d %s", minutes, plural("minute", minutes))
	case minutes == 0:
		return fmt.Sprintf("%d %s", hours, plural("hour", hours))
	default:
		return fmt.Sprintf("%d %s %d %s",
			hours, plural("hour", hours), minutes, plural("minute", minutes))
	}
}

func plural(unit string, n int) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
