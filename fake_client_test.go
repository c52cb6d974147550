package go_cubrid

import (
	"strings"

	"github.com/cubrid/go-cubrid/cci"
	"github.com/cubrid/go-cubrid/converters"
)

// fakeClient is a scriptable in-memory transport. Statements are scripted
// per SQL text; LOBs and collections live in small handle tables.
type fakeClient struct {
	scripts map[string]*fakeScript

	connected    bool
	lastURL      string
	lastUser     string
	lastPassword string
	params       map[int]int
	commits      int
	rollbacks    int
	autocommit   bool
	isolation    int

	lastInsert  string
	batchFail   map[string]cci.BatchResult
	batchLimit  int // stop attempting after this many statements, 0 = all
	schemaCalls []schemaCall
	schema      *fakeResult

	nextStmt cci.StmtHandle
	stmts    map[cci.StmtHandle]*fakeStmt

	nextLob     cci.LobHandle
	lobs        map[cci.LobHandle]*fakeLob
	lobReadFail int // fail reads at or past this offset, 0 = never

	nextSet cci.SetHandle
	sets    map[cci.SetHandle]*fakeSet
}

type fakeScript struct {
	bindCount  int
	prepareErr error
	execErr    error
	results    []*fakeResult
}

type fakeResult struct {
	kind    cci.StmtKind
	columns []cci.ColumnInfo
	rows    [][]fakeCell
	count   int
}

// fakeCell carries one representation per access kind the test cares about.
type fakeCell struct {
	null   bool
	values map[cci.AccessType]any
}

type fakeStmt struct {
	sql      string
	script   *fakeScript
	binds    map[int]boundParam
	executed bool
	resIdx   int
	pos      int // 1-based server cursor position, 0 = before first
	closed   bool
}

type boundParam struct {
	access cci.AccessType
	utype  cci.UType
	value  any
	flags  int
}

type fakeLob struct {
	clob bool
	data []byte
}

type fakeSet struct {
	utype  cci.UType
	values []any
	nulls  []bool
}

type schemaCall struct {
	kind      cci.SchemaKind
	className string
	attrName  string
	flag      int
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		scripts: map[string]*fakeScript{},
		params: map[int]int{
			cci.ParamIsolationLevel:  cci.TranRepClassCommitInstance,
			cci.ParamLockTimeout:     30,
			cci.ParamMaxStringLength: 1 << 20,
			cci.ParamAutoCommit:      1,
		},
		stmts: map[cci.StmtHandle]*fakeStmt{},
		lobs:  map[cci.LobHandle]*fakeLob{},
		sets:  map[cci.SetHandle]*fakeSet{},
	}
}

func (f *fakeClient) script(sql string) *fakeScript {
	s, ok := f.scripts[sql]
	if !ok {
		s = &fakeScript{}
		f.scripts[sql] = s
	}
	return s
}

// scriptSelect registers a one-result-set SELECT returning the given rows.
func (f *fakeClient) scriptSelect(sql string, columns []cci.ColumnInfo, rows [][]fakeCell) {
	f.script(sql).results = []*fakeResult{{
		kind:    cci.StmtSelect,
		columns: columns,
		rows:    rows,
		count:   len(rows),
	}}
}

func textCell(s string) fakeCell {
	return fakeCell{values: map[cci.AccessType]any{cci.AccessStr: s}}
}

func intCell(v int32) fakeCell {
	return fakeCell{values: map[cci.AccessType]any{
		cci.AccessInt:    v,
		cci.AccessBigInt: int64(v),
	}}
}

func bigIntCell(v int64) fakeCell {
	return fakeCell{values: map[cci.AccessType]any{cci.AccessBigInt: v}}
}

func dateCell(dt cci.DateTime) fakeCell {
	return fakeCell{values: map[cci.AccessType]any{cci.AccessDate: dt}}
}

func nullCell() fakeCell {
	return fakeCell{null: true}
}

func cciErr(code int) *cci.Error {
	return &cci.Error{Code: code}
}

// Session.

func (f *fakeClient) Connect(url, user, password string) (cci.ConnHandle, error) {
	f.connected = true
	f.lastURL, f.lastUser, f.lastPassword = url, user, password
	f.autocommit = f.params[cci.ParamAutoCommit] != 0
	f.isolation = f.params[cci.ParamIsolationLevel]
	return 1, nil
}

func (f *fakeClient) Disconnect(conn cci.ConnHandle) error {
	f.connected = false
	return nil
}

func (f *fakeClient) EndTran(conn cci.ConnHandle, commit bool) error {
	if commit {
		f.commits++
	} else {
		f.rollbacks++
	}
	return nil
}

func (f *fakeClient) SetAutocommit(conn cci.ConnHandle, on bool) error {
	f.autocommit = on
	return nil
}

func (f *fakeClient) SetIsolationLevel(conn cci.ConnHandle, level int) error {
	f.isolation = level
	return nil
}

func (f *fakeClient) GetDBParameter(conn cci.ConnHandle, param int) (int, error) {
	v, ok := f.params[param]
	if !ok {
		return 0, cciErr(cci.ErrInvalidParam)
	}
	return v, nil
}

func (f *fakeClient) ServerVersion(conn cci.ConnHandle) (string, error) {
	return "11.2.0.0001", nil
}

func (f *fakeClient) ClientVersion() string {
	return "11.2.0"
}

func (f *fakeClient) LastInsertID(conn cci.ConnHandle) (string, error) {
	return f.lastInsert, nil
}

func (f *fakeClient) SchemaInfo(conn cci.ConnHandle, kind cci.SchemaKind, className, attrName string, flag int) (cci.StmtHandle, error) {
	f.schemaCalls = append(f.schemaCalls, schemaCall{kind, className, attrName, flag})
	if f.schema == nil {
		return 0, cciErr(cci.ErrSchemaType)
	}
	f.nextStmt++
	st := &fakeStmt{
		script:   &fakeScript{results: []*fakeResult{f.schema}},
		binds:    map[int]boundParam{},
		executed: true,
	}
	f.stmts[f.nextStmt] = st
	return f.nextStmt, nil
}

func (f *fakeClient) EscapeString(conn cci.ConnHandle, s string) (string, error) {
	return strings.ReplaceAll(s, "'", "''"), nil
}

func (f *fakeClient) ExecuteBatch(conn cci.ConnHandle, sqls []string) ([]cci.BatchResult, error) {
	var out []cci.BatchResult
	for i, sql := range sqls {
		if f.batchLimit > 0 && i >= f.batchLimit {
			break
		}
		if r, ok := f.batchFail[sql]; ok {
			out = append(out, r)
			continue
		}
		out = append(out, cci.BatchResult{})
	}
	return out, nil
}

// Statement.

func (f *fakeClient) Prepare(conn cci.ConnHandle, sql string) (cci.StmtHandle, error) {
	s, ok := f.scripts[sql]
	if !ok {
		return 0, &cci.Error{Code: cci.ErrDBMS, Diag: &cci.Diagnostic{Code: -493, Message: "Syntax: syntax error"}}
	}
	if s.prepareErr != nil {
		return 0, s.prepareErr
	}
	f.nextStmt++
	f.stmts[f.nextStmt] = &fakeStmt{sql: sql, script: s, binds: map[int]boundParam{}}
	return f.nextStmt, nil
}

func (f *fakeClient) BindCount(stmt cci.StmtHandle) int {
	return f.stmts[stmt].script.bindCount
}

func (f *fakeClient) BindParam(stmt cci.StmtHandle, index int, access cci.AccessType, utype cci.UType, value any, flags int) error {
	st, ok := f.stmts[stmt]
	if !ok || st.closed {
		return cciErr(cci.ErrReqHandle)
	}
	st.binds[index] = boundParam{access, utype, value, flags}
	return nil
}

func (f *fakeClient) Execute(stmt cci.StmtHandle, option, maxColSize int) (int, error) {
	st, ok := f.stmts[stmt]
	if !ok || st.closed {
		return 0, cciErr(cci.ErrReqHandle)
	}
	if st.script.execErr != nil {
		return 0, st.script.execErr
	}
	st.executed = true
	st.resIdx = 0
	st.pos = 0
	return st.current().count, nil
}

func (st *fakeStmt) current() *fakeResult {
	return st.script.results[st.resIdx]
}

func (f *fakeClient) GetResultInfo(stmt cci.StmtHandle) ([]cci.ColumnInfo, cci.StmtKind, error) {
	st, ok := f.stmts[stmt]
	if !ok || st.closed || !st.executed {
		return nil, 0, cciErr(cci.ErrReqHandle)
	}
	r := st.current()
	return r.columns, r.kind, nil
}

func (f *fakeClient) Cursor(stmt cci.StmtHandle, offset int, origin cci.CursorOrigin) error {
	st, ok := f.stmts[stmt]
	if !ok || st.closed || !st.executed {
		return cciErr(cci.ErrReqHandle)
	}
	n := len(st.current().rows)
	var pos int
	switch origin {
	case cci.CursorFirst:
		pos = offset
	case cci.CursorCurrent:
		pos = st.pos + offset
	case cci.CursorLast:
		pos = n + 1 - offset
	}
	if pos < 1 || pos > n {
		if pos > n {
			st.pos = n + 1
		}
		return cciErr(cci.ErrNoMoreData)
	}
	st.pos = pos
	return nil
}

func (f *fakeClient) Fetch(stmt cci.StmtHandle) error {
	st, ok := f.stmts[stmt]
	if !ok || st.closed || !st.executed {
		return cciErr(cci.ErrReqHandle)
	}
	if st.pos < 1 || st.pos > len(st.current().rows) {
		return cciErr(cci.ErrNoMoreData)
	}
	return nil
}

func (f *fakeClient) GetData(stmt cci.StmtHandle, col int, access cci.AccessType) (any, bool, error) {
	st, ok := f.stmts[stmt]
	if !ok || st.closed {
		return nil, false, cciErr(cci.ErrReqHandle)
	}
	rows := st.current().rows
	if st.pos < 1 || st.pos > len(rows) {
		return nil, false, cciErr(cci.ErrInvalidCursorPos)
	}
	row := rows[st.pos-1]
	if col < 1 || col > len(row) {
		return nil, false, cciErr(cci.ErrInvalidParam)
	}
	cell := row[col-1]
	if cell.null {
		return nil, true, nil
	}
	v, ok := cell.values[access]
	if !ok {
		return nil, false, cciErr(cci.ErrNotSupportedType)
	}
	return v, false, nil
}

func (f *fakeClient) NextResult(stmt cci.StmtHandle) (int, error) {
	st, ok := f.stmts[stmt]
	if !ok || st.closed || !st.executed {
		return 0, cciErr(cci.ErrReqHandle)
	}
	if st.resIdx+1 >= len(st.script.results) {
		return 0, cciErr(cci.ErrNoMoreResultSet)
	}
	st.resIdx++
	st.pos = 0
	return st.current().count, nil
}

func (f *fakeClient) CloseStatement(stmt cci.StmtHandle) error {
	st, ok := f.stmts[stmt]
	if !ok || st.closed {
		return cciErr(cci.ErrReqHandle)
	}
	st.closed = true
	return nil
}

// Large objects.

func (f *fakeClient) BlobNew(conn cci.ConnHandle) (cci.LobHandle, error) {
	f.nextLob++
	f.lobs[f.nextLob] = &fakeLob{}
	return f.nextLob, nil
}

func (f *fakeClient) ClobNew(conn cci.ConnHandle) (cci.LobHandle, error) {
	f.nextLob++
	f.lobs[f.nextLob] = &fakeLob{clob: true}
	return f.nextLob, nil
}

func (f *fakeClient) lobRead(lob cci.LobHandle, pos int64, length int) ([]byte, error) {
	l, ok := f.lobs[lob]
	if !ok {
		return nil, cciErr(cci.ErrLobNotExist)
	}
	if f.lobReadFail > 0 && pos >= int64(f.lobReadFail) {
		return nil, cciErr(cci.ErrDBMS)
	}
	if pos < 0 || length < 0 {
		return nil, cciErr(cci.ErrInvalidParam)
	}
	if pos >= int64(len(l.data)) {
		return nil, nil
	}
	end := pos + int64(length)
	if end > int64(len(l.data)) {
		end = int64(len(l.data))
	}
	out := make([]byte, end-pos)
	copy(out, l.data[pos:end])
	return out, nil
}

func (f *fakeClient) lobWrite(lob cci.LobHandle, pos int64, data []byte) (int, error) {
	l, ok := f.lobs[lob]
	if !ok {
		return 0, cciErr(cci.ErrLobNotExist)
	}
	if pos < 0 {
		return 0, cciErr(cci.ErrInvalidParam)
	}
	need := pos + int64(len(data))
	for int64(len(l.data)) < need {
		l.data = append(l.data, 0)
	}
	copy(l.data[pos:], data)
	return len(data), nil
}

func (f *fakeClient) BlobRead(conn cci.ConnHandle, lob cci.LobHandle, pos int64, length int) ([]byte, error) {
	return f.lobRead(lob, pos, length)
}

func (f *fakeClient) ClobRead(conn cci.ConnHandle, lob cci.LobHandle, pos int64, length int) ([]byte, error) {
	return f.lobRead(lob, pos, length)
}

func (f *fakeClient) BlobWrite(conn cci.ConnHandle, lob cci.LobHandle, pos int64, data []byte) (int, error) {
	return f.lobWrite(lob, pos, data)
}

func (f *fakeClient) ClobWrite(conn cci.ConnHandle, lob cci.LobHandle, pos int64, data []byte) (int, error) {
	return f.lobWrite(lob, pos, data)
}

func (f *fakeClient) BlobSize(lob cci.LobHandle) (int64, error) {
	l, ok := f.lobs[lob]
	if !ok {
		return 0, cciErr(cci.ErrLobNotExist)
	}
	return int64(len(l.data)), nil
}

func (f *fakeClient) ClobSize(lob cci.LobHandle) (int64, error) {
	return f.BlobSize(lob)
}

func (f *fakeClient) LobFree(lob cci.LobHandle) error {
	if _, ok := f.lobs[lob]; !ok {
		return cciErr(cci.ErrLobNotExist)
	}
	delete(f.lobs, lob)
	return nil
}

// Collections.

func (f *fakeClient) SetMake(utype cci.UType, values []any, nullMask []bool) (cci.SetHandle, error) {
	f.nextSet++
	vs := make([]any, len(values))
	copy(vs, values)
	ns := make([]bool, len(nullMask))
	copy(ns, nullMask)
	f.sets[f.nextSet] = &fakeSet{utype: utype, values: vs, nulls: ns}
	return f.nextSet, nil
}

func (f *fakeClient) SetSize(set cci.SetHandle) int {
	s, ok := f.sets[set]
	if !ok {
		return 0
	}
	return len(s.values)
}

func (f *fakeClient) SetGet(set cci.SetHandle, index int, access cci.AccessType) (any, bool, error) {
	s, ok := f.sets[set]
	if !ok || index < 0 || index >= len(s.values) {
		return nil, false, cciErr(cci.ErrInvalidParam)
	}
	if s.nulls[index] {
		return nil, true, nil
	}
	switch v := s.values[index].(type) {
	case string:
		return v, false, nil
	case []byte:
		return converters.BitsToBinaryString(v), false, nil
	}
	return nil, false, cciErr(cci.ErrNotSupportedType)
}

func (f *fakeClient) SetFree(set cci.SetHandle) error {
	if _, ok := f.sets[set]; !ok {
		return cciErr(cci.ErrInvalidParam)
	}
	delete(f.sets, set)
	return nil
}

var fakeMessages = map[int]string{
	cci.ErrDBMS:            "CUBRID DBMS Error",
	cci.ErrConHandle:       "Invalid connection handle",
	cci.ErrReqHandle:       "Cannot allocate request handle",
	cci.ErrNoMoreData:      "Invalid cursor position",
	cci.ErrNoMoreResultSet: "No More Result",
}

func (f *fakeClient) ErrMessage(code int) (string, error) {
	m, ok := fakeMessages[code]
	if !ok {
		return "", cciErr(cci.ErrInvalidParam)
	}
	return m, nil
}
