package go_cubrid

import (
	"io"
	"os"

	"github.com/cubrid/go-cubrid/cci"
)

// LobKind tags a large object as binary or character. Fixed at creation; a
// different kind means a different server-side object.
type LobKind int

const (
	BlobKind LobKind = iota + 1
	ClobKind
)

func (k LobKind) access() cci.AccessType {
	if k == ClobKind {
		return cci.AccessClob
	}
	return cci.AccessBlob
}

func (k LobKind) utype() cci.UType {
	if k == ClobKind {
		return cci.UTypeClob
	}
	return cci.UTypeBlob
}

// lobChunkSize is the transfer unit for file import and export.
const lobChunkSize = 4096

// Lob streams large-object content to and from the server. It keeps its own
// byte position, independent of any cursor. Must be closed explicitly; the
// server-side storage outlives the statement that produced it.
type Lob struct {
	conn   *Connection
	kind   LobKind
	handle cci.LobHandle
	pos    int64
	size   int64
}

func newLob(conn *Connection, kind LobKind) (*Lob, error) {
	conn.mu.Lock()
	defer conn.mu.Unlock()
	if err := conn.checkOpen(); err != nil {
		return nil, err
	}
	var handle cci.LobHandle
	var err error
	if kind == ClobKind {
		handle, err = conn.client.ClobNew(conn.handle)
	} else {
		handle, err = conn.client.BlobNew(conn.handle)
	}
	if err != nil {
		return nil, translate(conn.client, err)
	}
	return &Lob{conn: conn, kind: kind, handle: handle}, nil
}

// Kind reports whether this is a BLOB or a CLOB.
func (l *Lob) Kind() LobKind { return l.kind }

func (l *Lob) checkOpen() error {
	if l.handle == 0 {
		return clientError(cci.ErrLobNotExist)
	}
	return l.conn.checkOpen()
}

func (l *Lob) readAt(pos int64, length int) ([]byte, error) {
	var data []byte
	var err error
	if l.kind == ClobKind {
		data, err = l.conn.client.ClobRead(l.conn.handle, l.handle, pos, length)
	} else {
		data, err = l.conn.client.BlobRead(l.conn.handle, l.handle, pos, length)
	}
	return data, translate(l.conn.client, err)
}

func (l *Lob) writeAt(pos int64, data []byte) (int, error) {
	var n int
	var err error
	if l.kind == ClobKind {
		n, err = l.conn.client.ClobWrite(l.conn.handle, l.handle, pos, data)
	} else {
		n, err = l.conn.client.BlobWrite(l.conn.handle, l.handle, pos, data)
	}
	return n, translate(l.conn.client, err)
}

// Read returns up to length bytes from the current position and advances by
// what was actually read. A short or empty result means the object ran out.
func (l *Lob) Read(length int) ([]byte, error) {
	if err := l.checkOpen(); err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, clientError(cci.ErrInvalidParam)
	}
	data, err := l.readAt(l.pos, length)
	if err != nil {
		return nil, err
	}
	l.pos += int64(len(data))
	return data, nil
}

// Write stores data at the current position and advances past it.
func (l *Lob) Write(data []byte) (int, error) {
	if err := l.checkOpen(); err != nil {
		return 0, err
	}
	n, err := l.writeAt(l.pos, data)
	if err != nil {
		return 0, err
	}
	l.pos += int64(n)
	if l.pos > l.size {
		l.size = l.pos
	}
	return n, nil
}

// Size asks the server for the object's current length.
func (l *Lob) Size() (int64, error) {
	if err := l.checkOpen(); err != nil {
		return 0, err
	}
	var size int64
	var err error
	if l.kind == ClobKind {
		size, err = l.conn.client.ClobSize(l.handle)
	} else {
		size, err = l.conn.client.BlobSize(l.handle)
	}
	if err != nil {
		return 0, translate(l.conn.client, err)
	}
	l.size = size
	return size, nil
}

// Seek recomputes the position from the given offset and whence
// (io.SeekStart, io.SeekCurrent, io.SeekEnd). No I/O happens here and the
// result is not validated; an out-of-range position surfaces on the next
// read or write. Seeking from the end uses the last length this Lob has
// observed.
func (l *Lob) Seek(offset int64, whence int) (int64, error) {
	if err := l.checkOpen(); err != nil {
		return 0, err
	}
	switch whence {
	case io.SeekStart:
		l.pos = offset
	case io.SeekCurrent:
		l.pos += offset
	case io.SeekEnd:
		l.pos = l.size + offset
	default:
		return 0, clientError(cci.ErrInvalidParam)
	}
	return l.pos, nil
}

// Import streams a local file into the object in fixed-size chunks, starting
// at offset zero. A failure mid-transfer aborts and releases the partially
// written object.
func (l *Lob) Import(path string) error {
	if err := l.checkOpen(); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return clientError(cci.ErrOpenFile)
	}
	defer f.Close()
	buf := make([]byte, lobChunkSize)
	var pos int64
	for {
		n, rerr := f.Read(buf)
		if n > 0 {
			if _, werr := l.writeAt(pos, buf[:n]); werr != nil {
				_ = l.Close()
				return werr
			}
			pos += int64(n)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			_ = l.Close()
			return clientError(cci.ErrReadFile)
		}
	}
	if pos > l.size {
		l.size = pos
	}
	return nil
}

// Export streams the whole object into a local file in fixed-size chunks. A
// failure mid-transfer aborts and removes the partially written file.
func (l *Lob) Export(path string) error {
	if err := l.checkOpen(); err != nil {
		return err
	}
	size, err := l.Size()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return clientError(cci.ErrCreateTempFile)
	}
	abort := func(cause error) error {
		f.Close()
		os.Remove(path)
		return cause
	}
	var pos int64
	for pos < size {
		want := lobChunkSize
		if remaining := size - pos; remaining < int64(want) {
			want = int(remaining)
		}
		data, rerr := l.readAt(pos, want)
		if rerr != nil {
			return abort(rerr)
		}
		if len(data) == 0 {
			break
		}
		if _, werr := f.Write(data); werr != nil {
			return abort(clientError(cci.ErrWriteFile))
		}
		pos += int64(len(data))
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return clientError(cci.ErrWriteFile)
	}
	return nil
}

// Close releases the server-side storage. Safe to call more than once.
func (l *Lob) Close() error {
	if l.handle == 0 {
		return nil
	}
	handle := l.handle
	l.handle = 0
	return translate(l.conn.client, l.conn.client.LobFree(handle))
}
