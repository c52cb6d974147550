package go_cubrid

import (
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/cubrid/go-cubrid/cci"
	"github.com/cubrid/go-cubrid/converters"
)

// Date is a calendar date with no time of day, the host shape of a DATE
// column.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates a time.Time to its calendar date.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Time expands the date at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return d.Time().Format("2006-01-02")
}

// TimeOfDay is a wall-clock time with no date, the host shape of a TIME
// column. Second resolution; the engine's TIME type has no sub-second part.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// TimeOfDayOf truncates a time.Time to its clock fields.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

func (t TimeOfDay) String() string {
	return time.Date(0, time.January, 1, t.Hour, t.Minute, t.Second, 0, time.UTC).Format("15:04:05")
}

// decodeColumn reads one column of the fetched row into its host
// representation. The null indicator wins over everything: a null column is
// nil no matter what the declared type is.
func decodeColumn(cu *Cursor, st *cursorState, col int, info cci.ColumnInfo) (any, error) {
	if info.Type.IsCollection() {
		return readCollection(cu, st, col, info.Type)
	}
	switch info.Type {
	case cci.UTypeInt, cci.UTypeShort:
		v, null, err := cu.getInt(st, col)
		if err != nil || null {
			return nil, err
		}
		return int64(v), nil

	case cci.UTypeBigInt:
		v, null, err := cu.getBigInt(st, col)
		if err != nil || null {
			return nil, err
		}
		return v, nil

	case cci.UTypeFloat, cci.UTypeDouble, cci.UTypeMonetary:
		// Text transit keeps the transport's binary float path out of
		// the loop.
		text, null, err := cu.getText(st, col)
		if err != nil || null {
			return nil, err
		}
		f, perr := strconv.ParseFloat(text, 64)
		if perr != nil {
			return nil, dataError("malformed float %q", text)
		}
		return f, nil

	case cci.UTypeNumeric:
		text, null, err := cu.getText(st, col)
		if err != nil || null {
			return nil, err
		}
		d, perr := converters.ParseNumeric(text)
		if perr != nil {
			return nil, dataError("malformed numeric %q", text)
		}
		return d, nil

	case cci.UTypeBit, cci.UTypeVarBit:
		text, null, err := cu.getText(st, col)
		if err != nil || null {
			return nil, err
		}
		data, perr := converters.DecodeHexBytes(text)
		if perr != nil {
			return nil, dataError("malformed bit column: %v", perr)
		}
		return data, nil

	case cci.UTypeChar, cci.UTypeString, cci.UTypeNChar, cci.UTypeVarNChar, cci.UTypeJSON:
		text, null, err := cu.getText(st, col)
		if err != nil || null {
			return nil, err
		}
		if err := cu.checkCharset(text); err != nil {
			return nil, err
		}
		return text, nil

	case cci.UTypeDate:
		dt, null, err := cu.getDateTime(st, col)
		if err != nil || null {
			return nil, err
		}
		return Date{Year: dt.Year, Month: time.Month(dt.Month), Day: dt.Day}, nil

	case cci.UTypeTime:
		dt, null, err := cu.getDateTime(st, col)
		if err != nil || null {
			return nil, err
		}
		return TimeOfDay{Hour: dt.Hour, Minute: dt.Minute, Second: dt.Second}, nil

	case cci.UTypeDateTime:
		dt, null, err := cu.getDateTime(st, col)
		if err != nil || null {
			return nil, err
		}
		return converters.DecodeDateTime(dt), nil

	case cci.UTypeTimestamp:
		dt, null, err := cu.getDateTime(st, col)
		if err != nil || null {
			return nil, err
		}
		return converters.DecodeTimestamp(dt), nil

	case cci.UTypeBlob, cci.UTypeClob:
		lob, err := cu.FetchLob(col)
		if err != nil || lob == nil {
			// Typed nil must not leak into the row as a non-nil any.
			return nil, err
		}
		return lob, nil
	}

	return cu.decodeLegacy(st, col)
}

// decodeLegacy probes unrecognized column types with the historical fixed
// order: integer fetch, then the temporal struct with a sub-dispatch on
// which fields are populated, then text. Whichever succeeds first wins.
// Known approximation kept for compatibility; do not extend it.
func (cu *Cursor) decodeLegacy(st *cursorState, col int) (any, error) {
	if v, null, err := cu.getBigInt(st, col); err == nil {
		if null {
			return nil, nil
		}
		return v, nil
	}
	if dt, null, err := cu.getDateTime(st, col); err == nil {
		if null {
			return nil, nil
		}
		switch {
		case dt.Year == 0 && dt.Month == 0 && dt.Day == 0:
			return TimeOfDay{Hour: dt.Hour, Minute: dt.Minute, Second: dt.Second}, nil
		case dt.Hour == 0 && dt.Minute == 0 && dt.Second == 0 && dt.Millisecond == 0:
			return Date{Year: dt.Year, Month: time.Month(dt.Month), Day: dt.Day}, nil
		}
		return converters.DecodeDateTime(dt), nil
	}
	text, null, err := cu.getText(st, col)
	if err != nil || null {
		return nil, err
	}
	return text, nil
}

// checkCharset rejects text that is not valid in the cursor's configured
// character set instead of passing mojibake through. Only utf8 is verified;
// other charsets pass through as raw bytes in a string.
func (cu *Cursor) checkCharset(text string) error {
	if cu.charset == defaultCharset && !utf8.ValidString(text) {
		return dataError("column text is not valid utf8")
	}
	return nil
}

func (cu *Cursor) getText(st *cursorState, col int) (string, bool, error) {
	value, null, err := cu.conn.client.GetData(st.stmt, col, cci.AccessStr)
	if err != nil {
		return "", false, translate(cu.conn.client, err)
	}
	if null {
		return "", true, nil
	}
	s, ok := value.(string)
	if !ok {
		return "", false, clientError(cci.ErrUnknownType)
	}
	return s, false, nil
}

func (cu *Cursor) getInt(st *cursorState, col int) (int32, bool, error) {
	value, null, err := cu.conn.client.GetData(st.stmt, col, cci.AccessInt)
	if err != nil {
		return 0, false, translate(cu.conn.client, err)
	}
	if null {
		return 0, true, nil
	}
	v, ok := value.(int32)
	if !ok {
		return 0, false, clientError(cci.ErrUnknownType)
	}
	return v, false, nil
}

func (cu *Cursor) getBigInt(st *cursorState, col int) (int64, bool, error) {
	value, null, err := cu.conn.client.GetData(st.stmt, col, cci.AccessBigInt)
	if err != nil {
		return 0, false, translate(cu.conn.client, err)
	}
	if null {
		return 0, true, nil
	}
	v, ok := value.(int64)
	if !ok {
		return 0, false, clientError(cci.ErrUnknownType)
	}
	return v, false, nil
}

func (cu *Cursor) getDateTime(st *cursorState, col int) (cci.DateTime, bool, error) {
	value, null, err := cu.conn.client.GetData(st.stmt, col, cci.AccessDate)
	if err != nil {
		return cci.DateTime{}, false, translate(cu.conn.client, err)
	}
	if null {
		return cci.DateTime{}, true, nil
	}
	dt, ok := value.(cci.DateTime)
	if !ok {
		return cci.DateTime{}, false, clientError(cci.ErrUnknownType)
	}
	return dt, false, nil
}
