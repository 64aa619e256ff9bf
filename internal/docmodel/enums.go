package docmodel

import "fmt"

// Access is the C++ access level of an entity.
type Access int

// Access levels.
const (
	Public Access = iota
	Protected
	Private
)

var _accessNames = [...]string{
	Public:    "public",
	Protected: "protected",
	Private:   "private",
}

func (a Access) String() string { return enumName(_accessNames[:], int(a), "Access") }

// UnmarshalText decodes an access level from its name.
func (a *Access) UnmarshalText(b []byte) error {
	return parseEnum(_accessNames[:], "access", b, (*int)(a))
}

// Status is the documentation status of an entity.
type Status int

// Statuses.
const (
	Active Status = iota
	Preliminary
	Deprecated
	Obsolete
	Internal
)

var _statusNames = [...]string{
	Active:      "active",
	Preliminary: "preliminary",
	Deprecated:  "deprecated",
	Obsolete:    "obsolete",
	Internal:    "internal",
}

func (s Status) String() string { return enumName(_statusNames[:], int(s), "Status") }

// UnmarshalText decodes a status from its name.
func (s *Status) UnmarshalText(b []byte) error {
	return parseEnum(_statusNames[:], "status", b, (*int)(s))
}

// ThreadSafety describes the reentrancy guarantees of an entity.
type ThreadSafety int

// Thread-safety levels.
//
// UnspecifiedThreadSafety means that the entity inherits
// the level of its parent.
const (
	UnspecifiedThreadSafety ThreadSafety = iota
	NonReentrant
	Reentrant
	ThreadSafe
)

var _threadSafetyNames = [...]string{
	UnspecifiedThreadSafety: "unspecified",
	NonReentrant:            "non-reentrant",
	Reentrant:               "reentrant",
	ThreadSafe:              "thread-safe",
}

func (ts ThreadSafety) String() string {
	return enumName(_threadSafetyNames[:], int(ts), "ThreadSafety")
}

// UnmarshalText decodes a thread-safety level from its name.
func (ts *ThreadSafety) UnmarshalText(b []byte) error {
	return parseEnum(_threadSafetyNames[:], "thread safety", b, (*int)(ts))
}

// FunctionMeta distinguishes the different flavors of functions.
type FunctionMeta int

// Function flavors.
const (
	PlainFunction FunctionMeta = iota
	Signal
	Slot
	Constructor
	Destructor
	CopyConstructor
	MoveConstructor
	CopyAssignment
	MoveAssignment
	MacroWithParams
	MacroWithoutParams
	QmlSignal
	QmlSignalHandler
	QmlMethod
)

var _functionMetaNames = [...]string{
	PlainFunction:      "plain",
	Signal:             "signal",
	Slot:               "slot",
	Constructor:        "ctor",
	Destructor:         "dtor",
	CopyConstructor:    "copy-ctor",
	MoveConstructor:    "move-ctor",
	CopyAssignment:     "copy-assign",
	MoveAssignment:     "move-assign",
	MacroWithParams:    "macro-with-params",
	MacroWithoutParams: "macro-without-params",
	QmlSignal:          "qml-signal",
	QmlSignalHandler:   "qml-signal-handler",
	QmlMethod:          "qml-method",
}

func (m FunctionMeta) String() string {
	return enumName(_functionMetaNames[:], int(m), "FunctionMeta")
}

// UnmarshalText decodes a function flavor from its name.
func (m *FunctionMeta) UnmarshalText(b []byte) error {
	return parseEnum(_functionMetaNames[:], "function meta", b, (*int)(m))
}

// IsConstructor reports whether m is any kind of constructor.
func (m FunctionMeta) IsConstructor() bool {
	return m == Constructor || m == CopyConstructor || m == MoveConstructor
}

// IsMacro reports whether m is a preprocessor macro.
func (m FunctionMeta) IsMacro() bool {
	return m == MacroWithParams || m == MacroWithoutParams
}

// Virtualness is the virtual-dispatch flavor of a member function.
type Virtualness int

// Virtualness levels.
const (
	NonVirtual Virtualness = iota
	NormalVirtual
	PureVirtual
)

var _virtualnessNames = [...]string{
	NonVirtual:    "non",
	NormalVirtual: "virtual",
	PureVirtual:   "pure",
}

func (v Virtualness) String() string {
	return enumName(_virtualnessNames[:], int(v), "Virtualness")
}

// UnmarshalText decodes a virtualness from its name.
func (v *Virtualness) UnmarshalText(b []byte) error {
	return parseEnum(_virtualnessNames[:], "virtualness", b, (*int)(v))
}

// CollectionType distinguishes the different collections of entities.
type CollectionType int

// Collection types.
const (
	Group CollectionType = iota
	Module
	QmlModule
)

var _collectionTypeNames = [...]string{
	Group:     "group",
	Module:    "module",
	QmlModule: "qmlmodule",
}

func (c CollectionType) String() string {
	return enumName(_collectionTypeNames[:], int(c), "CollectionType")
}

// UnmarshalText decodes a collection type from its name.
func (c *CollectionType) UnmarshalText(b []byte) error {
	return parseEnum(_collectionTypeNames[:], "collection type", b, (*int)(c))
}

func enumName(names []string, v int, typ string) string {
	if v >= 0 && v < len(names) {
		return names[v]
	}
	return fmt.Sprintf("%v(%d)", typ, v)
}

func parseEnum(names []string, what string, b []byte, dst *int) error {
	s := string(b)
	for i, name := range names {
		if name == s {
			*dst = i
			return nil
		}
	}
	return fmt.Errorf("unknown %v %q: valid values are %q", what, s, names)
}
