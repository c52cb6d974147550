package cci

// ConnHandle identifies a broker session. Zero is the closed sentinel.
type ConnHandle int

// StmtHandle identifies a server-side prepared statement. Zero is the
// closed sentinel.
type StmtHandle int

// LobHandle identifies server-side large-object storage.
type LobHandle int

// SetHandle identifies a materialized collection value.
type SetHandle int

// UType is the engine's own column/parameter type tag.
type UType int

const (
	UTypeNull     UType = 0
	UTypeChar     UType = 1
	UTypeString   UType = 2
	UTypeNChar    UType = 3
	UTypeVarNChar UType = 4
	UTypeBit      UType = 5
	UTypeVarBit   UType = 6
	UTypeNumeric  UType = 7
	UTypeInt      UType = 8
	UTypeShort    UType = 9
	UTypeMonetary UType = 10
	UTypeFloat    UType = 11
	UTypeDouble   UType = 12
	UTypeDate     UType = 13
	UTypeTime     UType = 14
	UTypeTimestamp UType = 15
	UTypeSet      UType = 16
	UTypeMultiset UType = 17
	UTypeSequence UType = 18
	UTypeObject   UType = 19
	UTypeBigInt   UType = 21
	UTypeDateTime UType = 22
	UTypeBlob     UType = 23
	UTypeClob     UType = 24
	UTypeJSON     UType = 130
)

// Column metadata encodes collection types with flag bits on top of the
// element type.
const (
	codeSet        = 0x20
	codeMultiset   = 0x40
	codeSequence   = 0x60
	collectionMask = 0x60
)

func (t UType) IsCollection() bool {
	return int(t)&collectionMask != 0
}

func (t UType) IsSet() bool {
	return int(t)&collectionMask == codeSet
}

// Base strips collection flag bits, leaving the element type.
func (t UType) Base() UType {
	return UType(int(t) &^ collectionMask)
}

// AccessType selects the client-side representation a value is transferred
// in, independent of the column's UType.
type AccessType int

const (
	AccessStr AccessType = iota + 1
	AccessInt
	AccessBigInt
	AccessDouble
	AccessDate
	AccessBit
	AccessSet
	AccessBlob
	AccessClob
)

// StmtKind is the statement classification reported with a result set.
type StmtKind int

const (
	StmtInsert StmtKind = 20
	StmtSelect StmtKind = 21
	StmtUpdate StmtKind = 22
	StmtDelete StmtKind = 23
	StmtCall   StmtKind = 24
)

// CursorOrigin is the reference point of a cursor move.
type CursorOrigin int

const (
	CursorFirst   CursorOrigin = 0
	CursorCurrent CursorOrigin = 1
	CursorLast    CursorOrigin = 2
)

// BindPtr marks a bind whose value is a server-side handle (LOB, collection)
// rather than client bytes.
const BindPtr = 1

// DateTime is the packed temporal struct the transport delivers for every
// DATE/TIME/TIMESTAMP/DATETIME column.
type DateTime struct {
	Year, Month, Day     int
	Hour, Minute, Second int
	Millisecond          int
}

// ColumnInfo describes one result-set column. Immutable for the lifetime of
// one result set.
type ColumnInfo struct {
	Name          string
	Type          UType
	Precision     int
	Scale         int
	NonNull       bool
	AttrName      string
	ClassName     string
	DefaultValue  string
	AutoIncrement bool
	UniqueKey     bool
	PrimaryKey    bool
	ForeignKey    bool
	ReverseIndex  bool
	ReverseUnique bool
	Shared        bool
}

// BatchResult is the per-statement outcome of a batch execution.
type BatchResult struct {
	Code    int
	Message string
}

// SchemaKind selects the schema-introspection request type.
type SchemaKind int

const (
	SchemaTable SchemaKind = iota + 1
	SchemaView
	SchemaQuerySpec
	SchemaAttribute
	SchemaTableAttribute
	SchemaMethod
	SchemaTableMethod
	SchemaMethodFile
	SchemaSuperTable
	SchemaSubTable
	SchemaConstraint
	SchemaTrigger
	SchemaTablePrivilege
	SchemaAttrPrivilege
	SchemaDirectSuperTable
	SchemaPrimaryKey
	SchemaImportedKeys
	SchemaExportedKeys
	SchemaCrossReference
)

// Pattern-match flags for SchemaInfo.
const (
	ClassNamePattern = 1 << 0
	AttrNamePattern  = 1 << 1
)

// Transaction isolation levels.
const (
	TranRepClassCommitInstance = 4
	TranRepClassRepInstance    = 5
	TranSerializable           = 6
)

// Session parameter selectors for GetDBParameter.
const (
	ParamIsolationLevel = iota + 1
	ParamLockTimeout
	ParamMaxStringLength
	ParamAutoCommit
)
