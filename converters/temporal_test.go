package converters

import (
	"testing"
	"time"

	"github.com/cubrid/go-cubrid/cci"
)

func TestDateTimeRoundTrip(t *testing.T) {
	in := time.Date(2024, time.February, 29, 23, 59, 58, 987*int(time.Millisecond), time.UTC)
	got := DecodeDateTime(EncodeDateTime(in))
	if !got.Equal(in) {
		t.Errorf("round trip = %v, want %v", got, in)
	}
}

func TestDecodeDateIgnoresClockFields(t *testing.T) {
	dt := cci.DateTime{Year: 2024, Month: 2, Day: 29, Hour: 13, Minute: 5, Second: 9}
	got := DecodeDate(dt)
	want := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DecodeDate = %v, want %v", got, want)
	}
}

func TestDecodeTimeIgnoresCalendarFields(t *testing.T) {
	dt := cci.DateTime{Year: 2024, Month: 2, Day: 29, Hour: 13, Minute: 5, Second: 9}
	got := DecodeTime(dt)
	if got.Hour() != 13 || got.Minute() != 5 || got.Second() != 9 {
		t.Errorf("DecodeTime = %v", got)
	}
	if got.Year() != 0 {
		t.Errorf("DecodeTime kept a year: %v", got)
	}
}

func TestDecodeTimestampDropsSubSecond(t *testing.T) {
	dt := cci.DateTime{Year: 2024, Month: 6, Day: 1, Hour: 1, Minute: 2, Second: 3, Millisecond: 999}
	got := DecodeTimestamp(dt)
	if got.Nanosecond() != 0 {
		t.Errorf("timestamp kept sub-second: %v", got)
	}
	if got.Second() != 3 {
		t.Errorf("DecodeTimestamp = %v", got)
	}
}

func TestEncodeTimeMillisecond(t *testing.T) {
	in := time.Date(2024, time.June, 1, 1, 2, 3, 250*int(time.Millisecond), time.UTC)
	dt := EncodeTime(in)
	if dt.Hour != 1 || dt.Minute != 2 || dt.Second != 3 || dt.Millisecond != 250 {
		t.Errorf("EncodeTime = %+v", dt)
	}
	if dt.Year != 0 || dt.Month != 0 || dt.Day != 0 {
		t.Errorf("EncodeTime kept calendar fields: %+v", dt)
	}
}

func TestNumericTextTransit(t *testing.T) {
	cases := []string{"0", "-1", "12345.6789", "-0.0001", "99999999999999999999.99"}
	for _, text := range cases {
		d, err := ParseNumeric(text)
		if err != nil {
			t.Errorf("ParseNumeric(%q): %v", text, err)
			continue
		}
		back, err := ParseNumeric(FormatNumeric(d))
		if err != nil {
			t.Errorf("re-parse of %q: %v", text, err)
			continue
		}
		if !back.Equal(d) {
			t.Errorf("%q did not survive the text transit", text)
		}
	}
	if _, err := ParseNumeric("1.2.3"); err == nil {
		t.Error("malformed numeric accepted")
	}
}
