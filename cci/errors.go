package cci

import "fmt"

// Client-library error codes. Negative by contract; the ranges below are the
// fixed facility bands the message formatter relies on.
const (
	// CCI facility, (-20100, -20000].
	ErrDBMS       = -20001 // server-reported failure, diagnostic attached
	ErrConHandle  = -20002
	ErrReqHandle  = -20003
	ErrNoMoreData = -20004 // cursor advanced past the last row; not a failure
	ErrEndCCI     = -20100

	// CAS (broker) facility, (-1100, -1000].
	ErrCASDBMS         = -1000
	ErrNoMoreResultSet = -1018 // next-result past the last result set; not a failure
	ErrEndCAS          = -1100
)

// Codes raised by the binding itself, CLIENT facility, (-31000, -30000].
const (
	ErrNoMoreMemory        = -30001
	ErrInvalidSQLType      = -30002
	ErrCannotGetColumnInfo = -30003
	ErrInitArrayFail       = -30004
	ErrUnknownType         = -30005
	ErrInvalidParam        = -30006
	ErrInvalidArrayType    = -30007
	ErrNotSupportedType    = -30008
	ErrOpenFile            = -30009
	ErrCreateTempFile      = -30010
	ErrInvalidCursorPos    = -30011
	ErrSQLUnprepared       = -30012
	ErrParamUnbound        = -30013
	ErrSchemaType          = -30014
	ErrReadFile            = -30015
	ErrWriteFile           = -30016
	ErrLobNotExist         = -30017
	ErrInvalidCursor       = -30018
	ErrEndClient           = -31000
)

// Diagnostic is the server-supplied structured detail accompanying an
// ErrDBMS failure code.
type Diagnostic struct {
	Code    int
	Message string
}

// Error is the raw failure a transport primitive reports, before the binding
// translates it into its exception taxonomy.
type Error struct {
	Code int
	Diag *Diagnostic
}

func (e *Error) Error() string {
	if e.Diag != nil {
		return fmt.Sprintf("cci: %d (dbms %d: %s)", e.Code, e.Diag.Code, e.Diag.Message)
	}
	return fmt.Sprintf("cci: %d", e.Code)
}
