package go_cubrid

import (
	"errors"
	"fmt"

	"github.com/cubrid/go-cubrid/cci"
)

// ErrorKind is the exception taxonomy callers branch on.
type ErrorKind int

const (
	InterfaceError ErrorKind = iota + 1
	InvalidCursorError
	DatabaseError
	DataError
	OperationalError
	IntegrityError
	ProgrammingError
	NotSupportedError
)

func (k ErrorKind) String() string {
	switch k {
	case InterfaceError:
		return "InterfaceError"
	case InvalidCursorError:
		return "InvalidCursorError"
	case DatabaseError:
		return "DatabaseError"
	case DataError:
		return "DataError"
	case OperationalError:
		return "OperationalError"
	case IntegrityError:
		return "IntegrityError"
	case ProgrammingError:
		return "ProgrammingError"
	case NotSupportedError:
		return "NotSupportedError"
	}
	return "Error"
}

// Error is every failure this driver reports. Message always has the form
// "ERROR: {facility}, {code}, {message}".
type Error struct {
	Kind    ErrorKind
	Code    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches kind sentinels: errors.Is(err, ErrIntegrity) also satisfies
// errors.Is(err, ErrDatabase), and InvalidCursor satisfies ErrInterface.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Kind == 0 {
		return false
	}
	if t.Code != 0 {
		return e.Kind == t.Kind && e.Code == t.Code
	}
	if e.Kind == t.Kind {
		return true
	}
	switch t.Kind {
	case InterfaceError:
		return e.Kind == InvalidCursorError
	case DatabaseError:
		return e.Kind == DataError || e.Kind == OperationalError ||
			e.Kind == IntegrityError || e.Kind == ProgrammingError
	}
	return false
}

// Kind sentinels for errors.Is.
var (
	ErrInterface     = &Error{Kind: InterfaceError}
	ErrInvalidCursor = &Error{Kind: InvalidCursorError}
	ErrDatabase      = &Error{Kind: DatabaseError}
	ErrData          = &Error{Kind: DataError}
	ErrOperational   = &Error{Kind: OperationalError}
	ErrIntegrity     = &Error{Kind: IntegrityError}
	ErrProgramming   = &Error{Kind: ProgrammingError}
	ErrNotSupported  = &Error{Kind: NotSupportedError}
)

// Fixed message table for codes raised by the binding itself. Codes in the
// transport's own ranges resolve through Client.ErrMessage instead.
var clientMessages = map[int]string{
	cci.ErrNoMoreMemory:        "Memory allocation error",
	cci.ErrInvalidSQLType:      "Invalid API call",
	cci.ErrCannotGetColumnInfo: "Cannot get column info",
	cci.ErrInitArrayFail:       "Array initializing error",
	cci.ErrUnknownType:         "Unknown column type",
	cci.ErrInvalidParam:        "Invalid parameter",
	cci.ErrInvalidArrayType:    "Invalid array type",
	cci.ErrNotSupportedType:    "Invalid type",
	cci.ErrOpenFile:            "File open error",
	cci.ErrCreateTempFile:      "Temporary file open error",
	cci.ErrInvalidCursorPos:    "Invalid cursor position",
	cci.ErrSQLUnprepared:       "SQL statement not prepared",
	cci.ErrParamUnbound:        "Some parameter not binded",
	cci.ErrSchemaType:          "Invalid schema type",
	cci.ErrReadFile:            "Can not read file",
	cci.ErrWriteFile:           "Can not write file",
	cci.ErrLobNotExist:         "LOB not exist",
	cci.ErrInvalidCursor:       "The cursor has been closed. No operation is allowed any more.",
}

// Known negative diagnostic codes the server attaches to DBMS failures,
// documented in the CUBRID error reference. Everything else is a plain
// DatabaseError.
var (
	programmingCodes = map[int]bool{
		-493: true,
	}
	operationalCodes = map[int]bool{
		-669: true, -673: true, -677: true, -1069: true, -1071: true,
	}
	integrityCodes = map[int]bool{
		-205: true, -494: true, -631: true, -670: true, -886: true,
		-919: true, -920: true, -921: true, -922: true, -923: true,
		-924: true, -1063: true, -1067: true,
	}
)

func facility(code int) string {
	switch {
	case code > cci.ErrEndCAS:
		return "CAS"
	case code > cci.ErrEndCCI:
		return "CCI"
	case code > cci.ErrEndClient:
		return "CLIENT"
	}
	return "UNKNOWN"
}

// translateCode maps a transport failure code plus optional diagnostic into
// the taxonomy. It never returns nil.
func translateCode(client cci.Client, code int, diag *cci.Diagnostic) *Error {
	if code == cci.ErrDBMS {
		if diag == nil {
			return &Error{
				Kind:    NotSupportedError,
				Code:    0,
				Message: "ERROR: DBMS, 0, Unknown DBMS Error",
			}
		}
		kind := DatabaseError
		switch {
		case programmingCodes[diag.Code]:
			kind = ProgrammingError
		case operationalCodes[diag.Code]:
			kind = OperationalError
		case integrityCodes[diag.Code]:
			kind = IntegrityError
		}
		return &Error{
			Kind:    kind,
			Code:    diag.Code,
			Message: fmt.Sprintf("ERROR: DBMS, %d, %s", diag.Code, diag.Message),
		}
	}

	var msg string
	if code > cci.ErrEndCCI {
		if client != nil {
			if m, err := client.ErrMessage(code); err == nil {
				msg = m
			}
		}
	} else if m, ok := clientMessages[code]; ok {
		msg = m
	}
	if msg == "" {
		msg = "Unknown Error"
	}
	kind := InterfaceError
	if code == cci.ErrInvalidCursor {
		kind = InvalidCursorError
	}
	return &Error{
		Kind:    kind,
		Code:    code,
		Message: fmt.Sprintf("ERROR: %s, %d, %s", facility(code), code, msg),
	}
}

// translate turns any transport error into a taxonomy error; values that are
// already translated pass through unchanged.
func translate(client cci.Client, err error) error {
	if err == nil {
		return nil
	}
	var raw *cci.Error
	if errors.As(err, &raw) {
		return translateCode(client, raw.Code, raw.Diag)
	}
	return err
}

// clientError raises a binding-level code without a transport round trip.
func clientError(code int) *Error {
	return translateCode(nil, code, nil)
}

// dataError reports a value that could not be converted losslessly.
func dataError(format string, args ...any) *Error {
	return &Error{
		Kind:    DataError,
		Message: "ERROR: CLIENT, 0, " + fmt.Sprintf(format, args...),
	}
}
