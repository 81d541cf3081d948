package service

import (
	"strconv"
	"strings"
	"time"
)

// Window — запрещённое окно времени суток в минутах от полуночи (ET).
// StartMin > EndMin означает окно через полночь.
type Window struct {
	StartMin int
	EndMin   int
}

func (w Window) Contains(nowMin int) bool {
	if w.StartMin <= w.EndMin {
		return nowMin >= w.StartMin && nowMin <= w.EndMin
	}
	return nowMin >= w.StartMin || nowMin <= w.EndMin
}

// ParseWindows разбирает "HH:MM-HH:MM,HH:MM-HH:MM"; битые куски молча пропускаем.
func ParseWindows(input string) []Window {
	if input == "" {
		return nil
	}

	var out []Window
	for _, chunk := range strings.Split(input, ",") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		parts := strings.SplitN(chunk, "-", 2)
		if len(parts) != 2 {
			continue
		}
		start, okS := parseHHMM(strings.TrimSpace(parts[0]))
		end, okE := parseHHMM(strings.TrimSpace(parts[1]))
		if !okS || !okE {
			continue
		}
		out = append(out, Window{StartMin: start, EndMin: end})
	}
	return out
}

func parseHHMM(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	hhmm := strings.SplitN(s, ":", 2)
	hh, err := strconv.Atoi(hhmm[0])
	if err != nil {
		return 0, false
	}
	mm := 0
	if len(hhmm) == 2 && hhmm[1] != "" {
		mm, err = strconv.Atoi(hhmm[1])
		if err != nil {
			return 0, false
		}
	}
	return hh*60 + mm, true
}

// Окна заданы во времени Нью-Йорка вне зависимости от TZ хоста.
var etLocation = mustLoadET()

func mustLoadET() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		panic("failed to load America/New_York tz: " + err.Error())
	}
	return loc
}

func etMinutes(now time.Time) int {
	t := now.In(etLocation)
	return t.Hour()*60 + t.Minute()
}
