// Package go_cubrid is a client binding for the CUBRID database over the CCI
// transport. A Connection owns one broker session; Cursors prepared from it
// run SQL and marshal values between Go types and the engine's wire types.
package go_cubrid

import (
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/cubrid/go-cubrid/cci"
	"github.com/cubrid/go-cubrid/trace"
)

// Connection is one broker session. All operations against the same session
// are serialized internally; the transport is not reentrant per connection.
type Connection struct {
	client cci.Client
	cs     *ConnectionString
	tracer trace.Tracer

	mu     sync.Mutex
	handle cci.ConnHandle

	// Session parameters snapshotted at connect time.
	autocommit      bool
	isolation       int
	lockTimeout     int
	maxStringLength int

	charset string
}

// NewConnection parses the connection URL but does not touch the network;
// call Open to establish the session.
func NewConnection(client cci.Client, dsn string) (*Connection, error) {
	cs, err := ParseConnectionString(dsn)
	if err != nil {
		return nil, err
	}
	return &Connection{
		client:  client,
		cs:      cs,
		tracer:  trace.NilTracer(),
		charset: cs.Charset,
	}, nil
}

// SetTracer replaces the connection's tracer. Pass trace.NilTracer() to turn
// tracing off. Must be called before Open to capture the connect exchange.
func (c *Connection) SetTracer(t trace.Tracer) {
	if t == nil {
		t = trace.NilTracer()
	}
	c.tracer = t
}

// NewTracedConnection is NewConnection with a timestamping tracer prefixed by
// a fresh connection id, so interleaved sessions stay distinguishable in one
// log.
func NewTracedConnection(client cci.Client, dsn string, w io.WriteCloser) (*Connection, error) {
	conn, err := NewConnection(client, dsn)
	if err != nil {
		return nil, err
	}
	conn.tracer = trace.NewTraceWriter(w, uuid.NewString())
	return conn, nil
}

// Open establishes the broker session and snapshots the server-side session
// parameters.
func (c *Connection) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle != 0 {
		return nil
	}
	c.tracer.Printf("connect: %s:%d/%s user=%s", c.cs.Host, c.cs.Port, c.cs.Database, c.cs.User)
	handle, err := c.client.Connect(c.cs.URL(), c.cs.User, c.cs.Password)
	if err != nil {
		c.tracer.Print("connect failed: ", err)
		return translate(c.client, err)
	}
	c.handle = handle
	if err := c.snapshotParameters(); err != nil {
		_ = c.client.Disconnect(c.handle)
		c.handle = 0
		return err
	}
	if c.autocommit != c.cs.Autocommit {
		if err := c.client.SetAutocommit(c.handle, c.cs.Autocommit); err != nil {
			_ = c.client.Disconnect(c.handle)
			c.handle = 0
			return translate(c.client, err)
		}
		c.autocommit = c.cs.Autocommit
	}
	c.tracer.Printf("connected, isolation=%d lockTimeout=%d autocommit=%v",
		c.isolation, c.lockTimeout, c.autocommit)
	return nil
}

func (c *Connection) snapshotParameters() error {
	var err error
	if c.isolation, err = c.client.GetDBParameter(c.handle, cci.ParamIsolationLevel); err != nil {
		return translate(c.client, err)
	}
	if c.lockTimeout, err = c.client.GetDBParameter(c.handle, cci.ParamLockTimeout); err != nil {
		return translate(c.client, err)
	}
	if c.maxStringLength, err = c.client.GetDBParameter(c.handle, cci.ParamMaxStringLength); err != nil {
		return translate(c.client, err)
	}
	ac, err := c.client.GetDBParameter(c.handle, cci.ParamAutoCommit)
	if err != nil {
		return translate(c.client, err)
	}
	c.autocommit = ac != 0
	return nil
}

// Close ends the session. Safe to call more than once and safe to call while
// child cursors or LOBs were never explicitly closed; their handles die with
// the session.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == 0 {
		return nil
	}
	c.tracer.Print("disconnect")
	err := c.client.Disconnect(c.handle)
	c.handle = 0
	if cerr := c.tracer.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return translate(c.client, err)
}

func (c *Connection) checkOpen() error {
	if c.handle == 0 {
		return translateCode(c.client, cci.ErrConHandle, nil)
	}
	return nil
}

// Commit makes the current transaction's changes permanent.
func (c *Connection) Commit() error {
	return c.endTran(true)
}

// Rollback discards the current transaction's changes.
func (c *Connection) Rollback() error {
	return c.endTran(false)
}

func (c *Connection) endTran(commit bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkOpen(); err != nil {
		return err
	}
	c.tracer.Printf("end tran commit=%v", commit)
	return translate(c.client, c.client.EndTran(c.handle, commit))
}

// Autocommit reports the session's autocommit mode.
func (c *Connection) Autocommit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.autocommit
}

// SetAutocommit switches the session's autocommit mode.
func (c *Connection) SetAutocommit(on bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkOpen(); err != nil {
		return err
	}
	if err := c.client.SetAutocommit(c.handle, on); err != nil {
		return translate(c.client, err)
	}
	c.autocommit = on
	return nil
}

// IsolationLevel reports the isolation level snapshotted at connect time or
// set through SetIsolationLevel since.
func (c *Connection) IsolationLevel() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isolation
}

// SetIsolationLevel changes the session's isolation level; see the
// cci.Tran* constants.
func (c *Connection) SetIsolationLevel(level int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkOpen(); err != nil {
		return err
	}
	if err := c.client.SetIsolationLevel(c.handle, level); err != nil {
		return translate(c.client, err)
	}
	c.isolation = level
	return nil
}

// LockTimeout reports the lock-wait timeout snapshotted at connect time.
func (c *Connection) LockTimeout() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lockTimeout
}

// MaxStringLength reports the broker's string-length cap snapshotted at
// connect time.
func (c *Connection) MaxStringLength() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxStringLength
}

// Ping verifies the session is alive by evaluating "select 1+1 from db_root"
// end to end.
func (c *Connection) Ping() error {
	cur := c.Cursor()
	defer cur.Close()
	if err := cur.Query("select 1+1 from db_root"); err != nil {
		return err
	}
	row, err := cur.FetchOne()
	if err != nil {
		return err
	}
	if len(row) != 1 {
		return &Error{
			Kind:    InterfaceError,
			Message: "ERROR: CLIENT, 0, unexpected ping result shape",
		}
	}
	if v, ok := row[0].(int64); !ok || v != 2 {
		return &Error{
			Kind:    InterfaceError,
			Message: fmt.Sprintf("ERROR: CLIENT, 0, unexpected ping result %v", row[0]),
		}
	}
	return nil
}

// ServerVersion reports the engine version string.
func (c *Connection) ServerVersion() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkOpen(); err != nil {
		return "", err
	}
	v, err := c.client.ServerVersion(c.handle)
	return v, translate(c.client, err)
}

// ClientVersion reports the transport library version string.
func (c *Connection) ClientVersion() string {
	return c.client.ClientVersion()
}

// LastInsertID returns the key generated by the session's most recent insert,
// or "" when that insert generated none.
func (c *Connection) LastInsertID() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkOpen(); err != nil {
		return "", err
	}
	id, err := c.client.LastInsertID(c.handle)
	return id, translate(c.client, err)
}

// BatchExecute runs the statements in order without preparing them,
// continuing past per-statement failures. The result holds one outcome per
// attempted statement; a non-zero Code marks that statement's failure. The
// returned error covers only transport-level breakdowns that stopped the
// batch machinery itself.
func (c *Connection) BatchExecute(sqls ...string) ([]cci.BatchResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	if len(sqls) == 0 {
		return nil, clientError(cci.ErrInvalidParam)
	}
	c.tracer.Printf("batch execute, %d statements", len(sqls))
	results, err := c.client.ExecuteBatch(c.handle, sqls)
	return results, translate(c.client, err)
}

// EscapeString quotes a literal according to the session's no-backslash
// setting. Delegated to the transport, which knows the server mode.
func (c *Connection) EscapeString(s string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkOpen(); err != nil {
		return "", err
	}
	out, err := c.client.EscapeString(c.handle, s)
	return out, translate(c.client, err)
}

// schemaPatternFlags picks the pattern-match behavior per request kind: only
// the class-level and attribute-level listings accept LIKE patterns.
func schemaPatternFlags(kind cci.SchemaKind, className, attrName string) int {
	flag := 0
	switch kind {
	case cci.SchemaTable, cci.SchemaView, cci.SchemaAttribute, cci.SchemaTableAttribute:
		if className != "" {
			flag |= cci.ClassNamePattern
		}
		if attrName != "" {
			flag |= cci.AttrNamePattern
		}
	}
	return flag
}

// SchemaInfo issues a schema-introspection request and returns a cursor
// already positioned on the result set; fetch rows from it as from any
// SELECT. className and attrName narrow the listing and may be empty.
func (c *Connection) SchemaInfo(kind cci.SchemaKind, className, attrName string) (*Cursor, error) {
	c.mu.Lock()
	if err := c.checkOpen(); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	flag := schemaPatternFlags(kind, className, attrName)
	c.tracer.Printf("schema info kind=%d class=%q attr=%q flag=%d", kind, className, attrName, flag)
	stmt, err := c.client.SchemaInfo(c.handle, kind, className, attrName, flag)
	c.mu.Unlock()
	if err != nil {
		return nil, translate(c.client, err)
	}
	return newExecutedCursor(c, stmt)
}

// Cursor returns a new cursor in the opened state.
func (c *Connection) Cursor() *Cursor {
	return newCursor(c)
}

// NewBlob allocates fresh server-side binary large-object storage.
func (c *Connection) NewBlob() (*Lob, error) {
	return newLob(c, BlobKind)
}

// NewClob allocates fresh server-side character large-object storage.
func (c *Connection) NewClob() (*Lob, error) {
	return newLob(c, ClobKind)
}

// NewSet materializes a server-side collection from element texts; see
// BuildSet for the element conventions.
func (c *Connection) NewSet(elements []string, elemType cci.UType) (*Set, error) {
	return buildSet(c, elements, elemType)
}
