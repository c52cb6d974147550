package go_cubrid

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cubrid/go-cubrid/cci"
	"github.com/cubrid/go-cubrid/converters"
)

// encodeValue maps one host value to the wire type and client representation
// it binds as. An explicit hint overrides the chosen wire type only; the
// conversion strategy still follows the host value's own type, so an integer
// with a BIGINT hint must still be an integer.
func encodeValue(value any, hint cci.UType) (Parameter, error) {
	if value == nil {
		return Parameter{Type: cci.UTypeNull, Access: cci.AccessStr}, nil
	}
	switch v := value.(type) {
	case bool:
		n := int64(0)
		if v {
			n = 1
		}
		return encodeInt(n, hint), nil
	case int:
		return encodeInt(int64(v), hint), nil
	case int8:
		return encodeInt(int64(v), hint), nil
	case int16:
		return encodeInt(int64(v), hint), nil
	case int32:
		return encodeInt(int64(v), hint), nil
	case int64:
		return encodeInt(v, hint), nil
	case uint:
		return encodeUint(uint64(v), hint)
	case uint8:
		return encodeInt(int64(v), hint), nil
	case uint16:
		return encodeInt(int64(v), hint), nil
	case uint32:
		return encodeInt(int64(v), hint), nil
	case uint64:
		return encodeUint(v, hint)
	case float32:
		return encodeFloat(float64(v), hint), nil
	case float64:
		return encodeFloat(v, hint), nil
	case decimal.Decimal:
		return Parameter{
			Type:   override(cci.UTypeNumeric, hint),
			Access: cci.AccessStr,
			Value:  converters.FormatNumeric(v),
		}, nil
	case string:
		return Parameter{
			Type:   override(cci.UTypeString, hint),
			Access: cci.AccessStr,
			Value:  v,
		}, nil
	case []byte:
		return encodeBytes(v, hint), nil
	case time.Time:
		return encodeTime(v, hint), nil
	case Date:
		return Parameter{
			Type:   override(cci.UTypeDate, hint),
			Access: cci.AccessDate,
			Value:  cci.DateTime{Year: v.Year, Month: int(v.Month), Day: v.Day},
		}, nil
	case TimeOfDay:
		return Parameter{
			Type:   override(cci.UTypeTime, hint),
			Access: cci.AccessDate,
			Value:  cci.DateTime{Hour: v.Hour, Minute: v.Minute, Second: v.Second},
		}, nil
	}
	if s, ok := value.(fmt.Stringer); ok {
		return Parameter{
			Type:   override(cci.UTypeString, hint),
			Access: cci.AccessStr,
			Value:  s.String(),
		}, nil
	}
	return Parameter{}, clientError(cci.ErrNotSupportedType)
}

func override(def, hint cci.UType) cci.UType {
	if hint != cci.UTypeNull {
		return hint
	}
	return def
}

// encodeInt binds 32-bit INT unless the value does not fit or a BIGINT hint
// widens it.
func encodeInt(v int64, hint cci.UType) Parameter {
	if hint == cci.UTypeBigInt || v < math.MinInt32 || v > math.MaxInt32 {
		return Parameter{
			Type:   override(cci.UTypeBigInt, hint),
			Access: cci.AccessBigInt,
			Value:  v,
		}
	}
	return Parameter{
		Type:   override(cci.UTypeInt, hint),
		Access: cci.AccessInt,
		Value:  int32(v),
	}
}

func encodeUint(v uint64, hint cci.UType) (Parameter, error) {
	if v > math.MaxInt64 {
		return Parameter{}, dataError("integer %d overflows the 64-bit wire range", v)
	}
	return encodeInt(int64(v), hint), nil
}

func encodeFloat(v float64, hint cci.UType) Parameter {
	return Parameter{
		Type:   override(cci.UTypeDouble, hint),
		Access: cci.AccessDouble,
		Value:  v,
	}
}

// encodeBytes binds BIT/VARBIT by default; a text hint binds the raw bytes
// as a string instead.
func encodeBytes(v []byte, hint cci.UType) Parameter {
	switch hint {
	case cci.UTypeChar, cci.UTypeString, cci.UTypeNChar, cci.UTypeVarNChar:
		return Parameter{Type: hint, Access: cci.AccessStr, Value: string(v)}
	case cci.UTypeBit:
		return Parameter{Type: cci.UTypeBit, Access: cci.AccessBit, Value: v}
	}
	return Parameter{Type: cci.UTypeVarBit, Access: cci.AccessBit, Value: v}
}

// encodeTime binds DATETIME by default; DATE/TIME/TIMESTAMP hints narrow the
// fields the same way the corresponding column types do.
func encodeTime(v time.Time, hint cci.UType) Parameter {
	p := Parameter{Access: cci.AccessDate}
	switch hint {
	case cci.UTypeDate:
		p.Type = cci.UTypeDate
		p.Value = converters.EncodeDate(v)
	case cci.UTypeTime:
		p.Type = cci.UTypeTime
		dt := converters.EncodeTime(v)
		dt.Millisecond = 0
		p.Value = dt
	case cci.UTypeTimestamp:
		p.Type = cci.UTypeTimestamp
		dt := converters.EncodeDateTime(v)
		dt.Millisecond = 0
		p.Value = dt
	default:
		p.Type = override(cci.UTypeDateTime, hint)
		p.Value = converters.EncodeDateTime(v)
	}
	return p
}
