package converters

import (
	"time"

	"github.com/cubrid/go-cubrid/cci"
)

// DecodeDate keeps only the calendar fields of the packed struct.
func DecodeDate(dt cci.DateTime) time.Time {
	return time.Date(dt.Year, time.Month(dt.Month), dt.Day, 0, 0, 0, 0, time.UTC)
}

// DecodeTime keeps only the clock fields of the packed struct.
func DecodeTime(dt cci.DateTime) time.Time {
	return time.Date(0, time.January, 1, dt.Hour, dt.Minute, dt.Second, 0, time.UTC)
}

// DecodeDateTime uses the full struct at millisecond resolution.
func DecodeDateTime(dt cci.DateTime) time.Time {
	return time.Date(dt.Year, time.Month(dt.Month), dt.Day,
		dt.Hour, dt.Minute, dt.Second, dt.Millisecond*int(time.Millisecond), time.UTC)
}

// DecodeTimestamp uses the full struct with sub-second forced to zero.
func DecodeTimestamp(dt cci.DateTime) time.Time {
	return time.Date(dt.Year, time.Month(dt.Month), dt.Day,
		dt.Hour, dt.Minute, dt.Second, 0, time.UTC)
}

// EncodeDate fills only the calendar fields.
func EncodeDate(t time.Time) cci.DateTime {
	return cci.DateTime{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// EncodeTime fills only the clock fields, millisecond truncated.
func EncodeTime(t time.Time) cci.DateTime {
	return cci.DateTime{
		Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(),
		Millisecond: t.Nanosecond() / int(time.Millisecond),
	}
}

// EncodeDateTime fills the full struct at millisecond resolution.
func EncodeDateTime(t time.Time) cci.DateTime {
	dt := EncodeDate(t)
	dt.Hour = t.Hour()
	dt.Minute = t.Minute()
	dt.Second = t.Second()
	dt.Millisecond = t.Nanosecond() / int(time.Millisecond)
	return dt
}
