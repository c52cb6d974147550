package go_cubrid

import (
	"reflect"

	"github.com/cubrid/go-cubrid/cci"
)

// Parameter is one resolved positional bind: the wire type chosen for the
// host value plus the client representation handed to the transport. A nil
// Value binds SQL NULL.
type Parameter struct {
	Type   cci.UType
	Access cci.AccessType
	Value  any
	Flags  int
}

// bindValue resolves a host value into a Parameter and performs the
// transport bind. Slices (other than []byte) marshal through a throwaway
// collection; the transport takes its own reference during the bind, so the
// collection is released immediately after.
func bindValue(conn *Connection, stmt cci.StmtHandle, index int, value any, hint cci.UType) error {
	if value != nil && !isByteSlice(value) && reflect.TypeOf(value).Kind() == reflect.Slice {
		return bindSlice(conn, stmt, index, value)
	}
	p, err := encodeValue(value, hint)
	if err != nil {
		return err
	}
	err = conn.client.BindParam(stmt, index, p.Access, p.Type, p.Value, p.Flags)
	return translate(conn.client, err)
}

func isByteSlice(value any) bool {
	_, ok := value.([]byte)
	return ok
}

func bindSlice(conn *Connection, stmt cci.StmtHandle, index int, value any) error {
	texts, elemType, err := collectionElements(value)
	if err != nil {
		return err
	}
	set, err := buildSet(conn, texts, elemType)
	if err != nil {
		return err
	}
	err = conn.client.BindParam(stmt, index, cci.AccessSet, cci.UTypeSet, set.handle, cci.BindPtr)
	if cerr := set.Close(); cerr != nil && err == nil {
		return cerr
	}
	return translate(conn.client, err)
}
