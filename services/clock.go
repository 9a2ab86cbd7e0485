package services

import "time"

// Clock подставляет текущее время во все мутации и отчёты, чтобы тесты
// могли зафиксировать его.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock отдаёт UTC с точностью до миллисекунд, как в сохранённых документах.
func SystemClock() Clock {
	return ClockFunc(func() time.Time {
		return time.Now().UTC().Truncate(time.Millisecond)
	})
}

// FixedClock всегда возвращает t.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}
