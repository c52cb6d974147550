package go_cubrid

import (
	"errors"

	"github.com/cubrid/go-cubrid/cci"
)

// cursorState is everything tied to one prepared statement. It is rebuilt,
// never mutated in place, on every prepare/execute/next-result transition so
// stale column metadata cannot leak across result sets.
type cursorState struct {
	stmt      cci.StmtHandle
	bindCount int

	executed bool
	kind     cci.StmtKind
	columns  []cci.ColumnInfo
	rowCount int
	pos      int
}

// Cursor runs SQL against its connection's session and walks result sets.
// Not safe for concurrent use; operations on one cursor must be issued in
// sequence by a single caller.
type Cursor struct {
	conn    *Connection
	charset string
	closed  bool
	state   *cursorState
}

func newCursor(conn *Connection) *Cursor {
	return &Cursor{conn: conn, charset: conn.charset}
}

// newExecutedCursor wraps a statement handle the transport has already
// executed (schema introspection). Row count is unknown up front, so it
// reports -1 and rows are walked until end of data.
func newExecutedCursor(conn *Connection, stmt cci.StmtHandle) (*Cursor, error) {
	cu := newCursor(conn)
	columns, kind, err := conn.client.GetResultInfo(stmt)
	if err != nil {
		_ = conn.client.CloseStatement(stmt)
		return nil, translate(conn.client, err)
	}
	cu.state = &cursorState{
		stmt:     stmt,
		executed: true,
		kind:     kind,
		columns:  columns,
		rowCount: -1,
	}
	if err := cu.fetchAhead(); err != nil {
		_ = conn.client.CloseStatement(stmt)
		return nil, err
	}
	return cu, nil
}

func (cu *Cursor) checkUsable() error {
	if cu.closed {
		return clientError(cci.ErrInvalidCursor)
	}
	if cu.conn.handle == 0 {
		return translateCode(cu.conn.client, cci.ErrConHandle, nil)
	}
	return nil
}

func (cu *Cursor) checkPrepared() (*cursorState, error) {
	if err := cu.checkUsable(); err != nil {
		return nil, err
	}
	if cu.state == nil {
		return nil, clientError(cci.ErrSQLUnprepared)
	}
	return cu.state, nil
}

func (cu *Cursor) checkExecuted() (*cursorState, error) {
	st, err := cu.checkPrepared()
	if err != nil {
		return nil, err
	}
	if !st.executed {
		return nil, clientError(cci.ErrSQLUnprepared)
	}
	return st, nil
}

// Prepare sends the statement to the server. Any prior statement handle is
// released first, dropping its column metadata, row count and position.
func (cu *Cursor) Prepare(sql string) error {
	if err := cu.checkUsable(); err != nil {
		return err
	}
	if cu.state != nil {
		_ = cu.conn.client.CloseStatement(cu.state.stmt)
		cu.state = nil
	}
	cu.conn.tracer.Print("prepare: ", sql)
	stmt, err := cu.conn.client.Prepare(cu.conn.handle, sql)
	if err != nil {
		return translate(cu.conn.client, err)
	}
	cu.state = &cursorState{
		stmt:      stmt,
		bindCount: cu.conn.client.BindCount(stmt),
	}
	return nil
}

// BindCount reports the number of ? placeholders in the prepared statement.
func (cu *Cursor) BindCount() (int, error) {
	st, err := cu.checkPrepared()
	if err != nil {
		return 0, err
	}
	return st.bindCount, nil
}

// BindParam binds one positional parameter (1-based). The wire type follows
// the Go type of value unless a hint overrides it; see the encode rules in
// parameter_encode.go.
func (cu *Cursor) BindParam(index int, value any, hint ...cci.UType) error {
	st, err := cu.checkPrepared()
	if err != nil {
		return err
	}
	var h cci.UType
	if len(hint) > 0 {
		h = hint[0]
	}
	return bindValue(cu.conn, st.stmt, index, value, h)
}

// BindLob binds a large object by its server-side handle.
func (cu *Cursor) BindLob(index int, lob *Lob) error {
	st, err := cu.checkPrepared()
	if err != nil {
		return err
	}
	if lob == nil || lob.handle == 0 {
		return clientError(cci.ErrLobNotExist)
	}
	err = cu.conn.client.BindParam(st.stmt, index, lob.kind.access(), lob.kind.utype(), lob.handle, cci.BindPtr)
	return translate(cu.conn.client, err)
}

// BindSet binds a materialized collection by its server-side handle.
func (cu *Cursor) BindSet(index int, set *Set) error {
	st, err := cu.checkPrepared()
	if err != nil {
		return err
	}
	if set == nil || set.handle == 0 {
		return clientError(cci.ErrInvalidParam)
	}
	err = cu.conn.client.BindParam(st.stmt, index, cci.AccessSet, cci.UTypeSet, set.handle, cci.BindPtr)
	return translate(cu.conn.client, err)
}

// Execute runs the prepared statement. option and maxColSize pass through to
// the transport; zero means default. After a SELECT the cursor is already
// positioned on the first row.
func (cu *Cursor) Execute(option, maxColSize int) error {
	st, err := cu.checkPrepared()
	if err != nil {
		return err
	}
	count, err := cu.conn.client.Execute(st.stmt, option, maxColSize)
	if err != nil {
		return translate(cu.conn.client, err)
	}
	return cu.loadResult(st, count)
}

// loadResult rebuilds the cursor state around a fresh result set or affected
// count.
func (cu *Cursor) loadResult(st *cursorState, count int) error {
	columns, kind, err := cu.conn.client.GetResultInfo(st.stmt)
	if err != nil {
		return translate(cu.conn.client, err)
	}
	rowCount := -1
	switch kind {
	case cci.StmtSelect, cci.StmtInsert, cci.StmtUpdate, cci.StmtDelete, cci.StmtCall:
		rowCount = count
	}
	cu.state = &cursorState{
		stmt:      st.stmt,
		bindCount: st.bindCount,
		executed:  true,
		kind:      kind,
		columns:   columns,
		rowCount:  rowCount,
	}
	cu.conn.tracer.Printf("executed kind=%d rows=%d cols=%d", kind, rowCount, len(columns))
	if kind == cci.StmtSelect {
		return cu.fetchAhead()
	}
	return nil
}

// fetchAhead positions the server cursor on the first row so that fetch can
// probe with a zero-length move. An empty result set is not an error.
func (cu *Cursor) fetchAhead() error {
	err := cu.conn.client.Cursor(cu.state.stmt, 1, cci.CursorCurrent)
	if isNoMoreData(err) {
		return nil
	}
	return translate(cu.conn.client, err)
}

func isNoMoreData(err error) bool {
	var raw *cci.Error
	return errors.As(err, &raw) && raw.Code == cci.ErrNoMoreData
}

// Query prepares, binds args in order by their Go types, and executes. It is
// the one-call path for the common case.
func (cu *Cursor) Query(sql string, args ...any) error {
	if err := cu.Prepare(sql); err != nil {
		return err
	}
	return cu.executeArgs(args)
}

func (cu *Cursor) executeArgs(args []any) error {
	for i, arg := range args {
		var err error
		switch v := arg.(type) {
		case *Lob:
			err = cu.BindLob(i+1, v)
		case *Set:
			err = cu.BindSet(i+1, v)
		default:
			err = cu.BindParam(i+1, arg)
		}
		if err != nil {
			return err
		}
	}
	return cu.Execute(0, 0)
}

// QueryMany prepares once and executes the statement for every argument row.
// It stops at the first failing execution.
func (cu *Cursor) QueryMany(sql string, argsList [][]any) error {
	if err := cu.Prepare(sql); err != nil {
		return err
	}
	for _, args := range argsList {
		if err := cu.executeArgs(args); err != nil {
			return err
		}
	}
	return nil
}

// FetchRow returns the current row and advances by one. At end of data it
// returns nil with no error, and keeps doing so on repeated calls.
func (cu *Cursor) FetchRow() (Row, error) {
	row, _, err := cu.fetchRow(false)
	return row, err
}

// fetchRow probes the server cursor with a zero-length move, reads the row
// in the requested shape, then advances.
func (cu *Cursor) fetchRow(asMap bool) (Row, NamedRow, error) {
	st, err := cu.checkExecuted()
	if err != nil {
		return nil, nil, err
	}
	err = cu.conn.client.Cursor(st.stmt, 0, cci.CursorCurrent)
	if isNoMoreData(err) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, translate(cu.conn.client, err)
	}
	if err = cu.conn.client.Fetch(st.stmt); err != nil {
		return nil, nil, translate(cu.conn.client, err)
	}
	var row Row
	var named NamedRow
	if asMap {
		named, err = readNamedRow(cu, st)
	} else {
		row, err = readRow(cu, st)
	}
	if err != nil {
		return nil, nil, err
	}
	err = cu.conn.client.Cursor(st.stmt, 1, cci.CursorCurrent)
	if err != nil && !isNoMoreData(err) {
		return nil, nil, translate(cu.conn.client, err)
	}
	st.pos++
	return row, named, nil
}

// FetchOne is FetchRow under its conventional API name.
func (cu *Cursor) FetchOne() (Row, error) {
	return cu.FetchRow()
}

// FetchOneMap returns the current row keyed by column name and advances by
// one. When two columns share a name the later column wins. Nil map means
// end of data.
func (cu *Cursor) FetchOneMap() (NamedRow, error) {
	_, named, err := cu.fetchRow(true)
	return named, err
}

// FetchMany returns up to n rows; fewer means the result set ran out.
func (cu *Cursor) FetchMany(n int) ([]Row, error) {
	if n <= 0 {
		return nil, clientError(cci.ErrInvalidParam)
	}
	rows := make([]Row, 0, n)
	for len(rows) < n {
		row, err := cu.FetchRow()
		if err != nil {
			return nil, err
		}
		if row == nil {
			break
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// FetchAll drains the remaining rows.
func (cu *Cursor) FetchAll() ([]Row, error) {
	var rows []Row
	for {
		row, err := cu.FetchRow()
		if err != nil {
			return nil, err
		}
		if row == nil {
			return rows, nil
		}
		rows = append(rows, row)
	}
}

// FetchLob reads the current row's col (1-based) as a large-object handle.
// The column must be a BLOB or CLOB column. The returned Lob is independent
// of this cursor and must be closed by the caller.
func (cu *Cursor) FetchLob(col int) (*Lob, error) {
	st, err := cu.checkExecuted()
	if err != nil {
		return nil, err
	}
	if col < 1 || col > len(st.columns) {
		return nil, clientError(cci.ErrInvalidParam)
	}
	var kind LobKind
	switch st.columns[col-1].Type {
	case cci.UTypeBlob:
		kind = BlobKind
	case cci.UTypeClob:
		kind = ClobKind
	default:
		return nil, clientError(cci.ErrNotSupportedType)
	}
	value, null, err := cu.conn.client.GetData(st.stmt, col, kind.access())
	if err != nil {
		return nil, translate(cu.conn.client, err)
	}
	if null {
		return nil, nil
	}
	handle, ok := value.(cci.LobHandle)
	if !ok {
		return nil, clientError(cci.ErrUnknownType)
	}
	return &Lob{conn: cu.conn, kind: kind, handle: handle}, nil
}

// NextResult discards the current result set and loads the next one's
// metadata. Running past the last result set is not an error; the cursor is
// simply left with no result set.
func (cu *Cursor) NextResult() error {
	st, err := cu.checkExecuted()
	if err != nil {
		return err
	}
	// Drop the old metadata before asking the transport, so a "no more
	// result sets" outcome cannot leave stale columns behind.
	cu.state = &cursorState{stmt: st.stmt, bindCount: st.bindCount}
	count, err := cu.conn.client.NextResult(st.stmt)
	if err != nil {
		var raw *cci.Error
		if errors.As(err, &raw) && raw.Code == cci.ErrNoMoreResultSet {
			return nil
		}
		return translate(cu.conn.client, err)
	}
	return cu.loadResult(cu.state, count)
}

// DataSeek repositions the cursor on the given row (1-based, absolute).
// Range-checked against the known row count.
func (cu *Cursor) DataSeek(row int) error {
	st, err := cu.checkExecuted()
	if err != nil {
		return err
	}
	if row < 1 || (st.rowCount >= 0 && row > st.rowCount) {
		return clientError(cci.ErrInvalidCursorPos)
	}
	if err := cu.conn.client.Cursor(st.stmt, row, cci.CursorFirst); err != nil {
		return translate(cu.conn.client, err)
	}
	st.pos = row - 1
	return nil
}

// RowSeek moves the cursor by offset rows relative to the current position.
// Only the transport's own bounds apply.
func (cu *Cursor) RowSeek(offset int) error {
	st, err := cu.checkExecuted()
	if err != nil {
		return err
	}
	if err := cu.conn.client.Cursor(st.stmt, offset, cci.CursorCurrent); err != nil {
		return translate(cu.conn.client, err)
	}
	st.pos += offset
	return nil
}

// RowTell reports how many rows have been consumed from the current result
// set.
func (cu *Cursor) RowTell() (int, error) {
	st, err := cu.checkExecuted()
	if err != nil {
		return 0, err
	}
	return st.pos, nil
}

// AffectedRows is the modified-row count of the last INSERT, UPDATE or
// DELETE; -1 for every other statement kind or before execution.
func (cu *Cursor) AffectedRows() int {
	if cu.state == nil || !cu.state.executed {
		return -1
	}
	switch cu.state.kind {
	case cci.StmtInsert, cci.StmtUpdate, cci.StmtDelete:
		return cu.state.rowCount
	}
	return -1
}

// NumFields is the column count of the last SELECT; -1 otherwise.
func (cu *Cursor) NumFields() int {
	if cu.state == nil || !cu.state.executed || cu.state.kind != cci.StmtSelect {
		return -1
	}
	return len(cu.state.columns)
}

// NumRows is the row count of the last SELECT; -1 otherwise.
func (cu *Cursor) NumRows() int {
	if cu.state == nil || !cu.state.executed || cu.state.kind != cci.StmtSelect {
		return -1
	}
	return cu.state.rowCount
}

// ColumnDesc is the per-column description exposed after a SELECT. The two
// size fields are always zero; they exist for cursor-description shape
// compatibility.
type ColumnDesc struct {
	Name         string
	Type         cci.UType
	DisplaySize  int
	InternalSize int
	Precision    int
	Scale        int
	Nullable     bool
}

// Description lists the result columns of the last SELECT, nil for any other
// state.
func (cu *Cursor) Description() []ColumnDesc {
	if cu.state == nil || !cu.state.executed || cu.state.kind != cci.StmtSelect {
		return nil
	}
	out := make([]ColumnDesc, len(cu.state.columns))
	for i, col := range cu.state.columns {
		out[i] = ColumnDesc{
			Name:      col.Name,
			Type:      col.Type,
			Precision: col.Precision,
			Scale:     col.Scale,
			Nullable:  !col.NonNull,
		}
	}
	return out
}

// ResultInfo returns the full transport metadata for all columns, or for one
// column (1-based) when col is given.
func (cu *Cursor) ResultInfo(col ...int) ([]cci.ColumnInfo, error) {
	st, err := cu.checkExecuted()
	if err != nil {
		return nil, err
	}
	if len(col) == 0 {
		out := make([]cci.ColumnInfo, len(st.columns))
		copy(out, st.columns)
		return out, nil
	}
	n := col[0]
	if n < 1 || n > len(st.columns) {
		return nil, clientError(cci.ErrInvalidParam)
	}
	return []cci.ColumnInfo{st.columns[n-1]}, nil
}

// SetCharset changes the character set used to interpret text columns
// fetched through this cursor.
func (cu *Cursor) SetCharset(charset string) {
	cu.charset = charset
}

// Close releases the statement handle. A second explicit Close is an invalid
// cursor error, like any other operation on a closed cursor.
func (cu *Cursor) Close() error {
	if cu.closed {
		return clientError(cci.ErrInvalidCursor)
	}
	cu.closed = true
	if cu.state == nil {
		return nil
	}
	stmt := cu.state.stmt
	cu.state = nil
	return translate(cu.conn.client, cu.conn.client.CloseStatement(stmt))
}
