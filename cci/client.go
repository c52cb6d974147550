// Package cci declares the contract this binding requires from the CUBRID
// CCI transport layer: session, statement, large-object and collection
// primitives plus the fixed error-code space. The wire protocol itself lives
// behind this interface and is not reimplemented here.
package cci

// Client is the transport collaborator. All calls are synchronous and block
// until the server responds; no two calls against the same connection handle
// may be in flight at once. Failures are reported as *Error values.
type Client interface {
	// Session.
	Connect(url, user, password string) (ConnHandle, error)
	Disconnect(conn ConnHandle) error
	EndTran(conn ConnHandle, commit bool) error
	SetAutocommit(conn ConnHandle, on bool) error
	SetIsolationLevel(conn ConnHandle, level int) error
	GetDBParameter(conn ConnHandle, param int) (int, error)
	ServerVersion(conn ConnHandle) (string, error)
	ClientVersion() string
	LastInsertID(conn ConnHandle) (string, error)
	SchemaInfo(conn ConnHandle, kind SchemaKind, className, attrName string, flag int) (StmtHandle, error)
	EscapeString(conn ConnHandle, s string) (string, error)

	// ExecuteBatch runs the statements in order, continuing past failures.
	// The returned slice has one outcome per attempted statement and may be
	// shorter than sqls if the transport stopped attempting.
	ExecuteBatch(conn ConnHandle, sqls []string) ([]BatchResult, error)

	// Statement.
	Prepare(conn ConnHandle, sql string) (StmtHandle, error)
	BindCount(stmt StmtHandle) int
	BindParam(stmt StmtHandle, index int, access AccessType, utype UType, value any, flags int) error
	Execute(stmt StmtHandle, option, maxColSize int) (int, error)
	GetResultInfo(stmt StmtHandle) ([]ColumnInfo, StmtKind, error)
	Cursor(stmt StmtHandle, offset int, origin CursorOrigin) error
	Fetch(stmt StmtHandle) error
	// GetData reads one column of the fetched row. The concrete type of
	// value follows access: AccessStr → string, AccessInt → int32,
	// AccessBigInt → int64, AccessDate → DateTime, AccessSet → SetHandle,
	// AccessBlob/AccessClob → LobHandle. null reports the column's null
	// indicator; value is meaningless when null is true.
	GetData(stmt StmtHandle, col int, access AccessType) (value any, null bool, err error)
	NextResult(stmt StmtHandle) (int, error)
	CloseStatement(stmt StmtHandle) error

	// Large objects.
	BlobNew(conn ConnHandle) (LobHandle, error)
	ClobNew(conn ConnHandle) (LobHandle, error)
	BlobRead(conn ConnHandle, lob LobHandle, pos int64, length int) ([]byte, error)
	ClobRead(conn ConnHandle, lob LobHandle, pos int64, length int) ([]byte, error)
	BlobWrite(conn ConnHandle, lob LobHandle, pos int64, data []byte) (int, error)
	ClobWrite(conn ConnHandle, lob LobHandle, pos int64, data []byte) (int, error)
	BlobSize(lob LobHandle) (int64, error)
	ClobSize(lob LobHandle) (int64, error)
	LobFree(lob LobHandle) error

	// Collections. values holds one client representation per element
	// (text, or packed bit buffers for BIT/VARBIT element types);
	// nullMask marks elements bound as null. A bind of a SetHandle copies
	// the collection, so the handle may be freed right after the bind
	// returns. SetGet indexes are zero-based.
	SetMake(utype UType, values []any, nullMask []bool) (SetHandle, error)
	SetSize(set SetHandle) int
	SetGet(set SetHandle, index int, access AccessType) (value any, null bool, err error)
	SetFree(set SetHandle) error

	// ErrMessage resolves the transport's own message for codes in the
	// CCI/CAS ranges; codes it does not know yield an error.
	ErrMessage(code int) (string, error)
}
