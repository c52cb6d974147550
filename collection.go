package go_cubrid

import (
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cubrid/go-cubrid/cci"
	"github.com/cubrid/go-cubrid/converters"
)

// collectionNull is the element-text sentinel that marks a null element
// instead of binding the four-character string.
const collectionNull = "NULL"

// Set is a materialized server-side collection value, built element by
// element before it is bound. Independent of any cursor; close it when done.
type Set struct {
	conn     *Connection
	handle   cci.SetHandle
	elemType cci.UType
	size     int
}

// buildSet materializes a collection from element texts. An element whose
// text is the literal "NULL" becomes a null element. For BIT/VARBIT element
// types each text must be a '0'/'1' string; one malformed element aborts the
// whole build.
func buildSet(conn *Connection, elements []string, elemType cci.UType) (*Set, error) {
	conn.mu.Lock()
	defer conn.mu.Unlock()
	if err := conn.checkOpen(); err != nil {
		return nil, err
	}
	values := make([]any, len(elements))
	nullMask := make([]bool, len(elements))
	for i, text := range elements {
		if text == collectionNull {
			nullMask[i] = true
			continue
		}
		switch elemType {
		case cci.UTypeBit, cci.UTypeVarBit:
			packed, err := converters.PackBitString(text)
			if err != nil {
				return nil, clientError(cci.ErrInvalidParam)
			}
			values[i] = packed
		default:
			values[i] = text
		}
	}
	handle, err := conn.client.SetMake(elemType, values, nullMask)
	if err != nil {
		return nil, translate(conn.client, err)
	}
	return &Set{conn: conn, handle: handle, elemType: elemType, size: len(elements)}, nil
}

// ElementType reports the declared element wire type.
func (s *Set) ElementType() cci.UType { return s.elemType }

// Len reports the element count.
func (s *Set) Len() int { return s.size }

// Elements reads every element back as text; null elements are nil.
func (s *Set) Elements() ([]any, error) {
	if s.handle == 0 {
		return nil, clientError(cci.ErrInvalidParam)
	}
	return readSetHandle(s.conn, s.handle, false)
}

// Close releases the server-side collection. Safe to call more than once.
func (s *Set) Close() error {
	if s.handle == 0 {
		return nil
	}
	handle := s.handle
	s.handle = 0
	return translate(s.conn.client, s.conn.client.SetFree(handle))
}

// readCollection reads a collection column of the fetched row. Every element
// is materialized as text; SET-typed columns deduplicate keeping the first
// occurrence, MULTISET and SEQUENCE keep order and duplicates.
func readCollection(cu *Cursor, st *cursorState, col int, colType cci.UType) (any, error) {
	value, null, err := cu.conn.client.GetData(st.stmt, col, cci.AccessSet)
	if err != nil {
		return nil, translate(cu.conn.client, err)
	}
	if null {
		return nil, nil
	}
	handle, ok := value.(cci.SetHandle)
	if !ok {
		return nil, clientError(cci.ErrUnknownType)
	}
	defer cu.conn.client.SetFree(handle)
	return readSetHandle(cu.conn, handle, colType.IsSet())
}

func readSetHandle(conn *Connection, handle cci.SetHandle, dedupe bool) ([]any, error) {
	n := conn.client.SetSize(handle)
	elements := make([]any, 0, n)
	var seen map[any]bool
	if dedupe {
		seen = make(map[any]bool, n)
	}
	for i := 0; i < n; i++ {
		value, null, err := conn.client.SetGet(handle, i, cci.AccessStr)
		if err != nil {
			return nil, translate(conn.client, err)
		}
		var elem any
		if !null {
			text, ok := value.(string)
			if !ok {
				return nil, clientError(cci.ErrUnknownType)
			}
			elem = text
		}
		if dedupe {
			if seen[elem] {
				continue
			}
			seen[elem] = true
		}
		elements = append(elements, elem)
	}
	return elements, nil
}

// collectionElements converts a Go slice into element texts plus the
// inferred element wire type. Elements must all share one Go type; nil
// elements become the null sentinel.
func collectionElements(value any) ([]string, cci.UType, error) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice {
		return nil, cci.UTypeNull, clientError(cci.ErrInvalidArrayType)
	}
	texts := make([]string, rv.Len())
	elemType := cci.UTypeNull
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		if elem == nil {
			texts[i] = collectionNull
			continue
		}
		text, t, err := elementText(elem)
		if err != nil {
			return nil, cci.UTypeNull, err
		}
		switch {
		case elemType == cci.UTypeNull:
			elemType = t
		case elemType == t:
		case elemType == cci.UTypeInt && t == cci.UTypeBigInt:
			elemType = cci.UTypeBigInt
		case elemType == cci.UTypeBigInt && t == cci.UTypeInt:
		default:
			return nil, cci.UTypeNull, clientError(cci.ErrInvalidArrayType)
		}
		texts[i] = text
	}
	if elemType == cci.UTypeNull {
		elemType = cci.UTypeString
	}
	return texts, elemType, nil
}

func elementText(elem any) (string, cci.UType, error) {
	switch v := elem.(type) {
	case bool:
		if v {
			return "1", cci.UTypeInt, nil
		}
		return "0", cci.UTypeInt, nil
	case int:
		return intElement(int64(v))
	case int16:
		return intElement(int64(v))
	case int32:
		return intElement(int64(v))
	case int64:
		return intElement(v)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), cci.UTypeDouble, nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), cci.UTypeDouble, nil
	case decimal.Decimal:
		return converters.FormatNumeric(v), cci.UTypeNumeric, nil
	case string:
		return v, cci.UTypeString, nil
	case []byte:
		return converters.BitsToBinaryString(v), cci.UTypeVarBit, nil
	case time.Time:
		return v.Format("2006-01-02 15:04:05.000"), cci.UTypeDateTime, nil
	case Date:
		return v.String(), cci.UTypeDate, nil
	case TimeOfDay:
		return v.String(), cci.UTypeTime, nil
	}
	return "", cci.UTypeNull, clientError(cci.ErrNotSupportedType)
}

func intElement(v int64) (string, cci.UType, error) {
	t := cci.UTypeInt
	if v < math.MinInt32 || v > math.MaxInt32 {
		t = cci.UTypeBigInt
	}
	return strconv.FormatInt(v, 10), t, nil
}
