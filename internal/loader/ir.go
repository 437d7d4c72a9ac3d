package loader

import "github.com/lazyjit/lazyjit/internal/classloader"

// Value is an opaque IR value, produced and consumed by the IRBuilder
// collaborator. This core never inspects a Value; it only threads it
// through calls.
type Value any

// Kind classifies a Signature slot, just enough for the IR builder to
// know how to marshal a call's arguments and result.
type Kind int

const (
	KindVoid Kind = iota
	KindInt
	KindPointer
	KindReference
)

// ValueType is one IR-level type: an integer of BitWidth bits, a bare
// pointer, a reference, or void.
type ValueType struct {
	Kind     Kind
	BitWidth int // meaningful only when Kind == KindInt
}

// Signature is a call's parameter and return types, used by the two
// field-access call shapes (instance offset, static address) to pick
// between "() -> int" and "() -> ptr" for the identical mangled symbol.
type Signature struct {
	Params []ValueType
	Return ValueType
}

// Definition is the answer the Helper computes during materialization:
// a direct forward to an existing symbol, a constant, a table-indexed
// dispatch, or a throwing trap. Applying a Definition to real native
// code is the IR builder/code layer's job, out of scope here — this
// core only ever produces Definitions.
type Definition interface {
	isDefinition()
}

// DirectForward defines a symbol as a direct call-through to Target —
// used once method resolution has picked a concrete, already-named
// direct-call symbol.
type DirectForward struct {
	Target string
}

func (DirectForward) isDefinition() {}

// ConstantInt defines a symbol as returning a fixed integer of the given
// bit width (used for instance field offsets).
type ConstantInt struct {
	BitWidth int
	Value    int64
}

func (ConstantInt) isDefinition() {}

// ConstantPointer defines a symbol as returning a fixed address (used
// for static field addresses; class objects use ClassObjectConstant).
type ConstantPointer struct {
	Address uintptr
}

func (ConstantPointer) isDefinition() {}

// VTableDispatch defines a symbol as a stub that loads the receiver's
// class-object pointer, indexes its v-table at Slot, and tail-calls
// through it.
type VTableDispatch struct {
	Slot int
}

func (VTableDispatch) isDefinition() {}

// ITableDispatch is VTableDispatch's interface-dispatch counterpart.
type ITableDispatch struct {
	InterfaceID int
	Slot        int
}

func (ITableDispatch) isDefinition() {}

// Trap defines a symbol as a stub that unconditionally raises Exception
// — the materialization outcome for a broken reference: the stub
// is replaced with a throwing definition rather than left unresolved.
type Trap struct {
	Exception classloader.TrapError
}

func (Trap) isDefinition() {}

// ClassObjectConstant defines a symbol as returning classObject's
// (now loaded, and initialized if required) class-object pointer.
type ClassObjectConstant struct {
	ClassObject *classloader.ClassObject
}

func (ClassObjectConstant) isDefinition() {}

// IRBuilder is the external IR builder and code layer collaborator
// consumed by the Helper. It is responsible for everything this
// core is not: instruction selection, allocation, and — via Call's
// materialize callback — reserving an indirect-stubs call site and
// registering it with the JIT compile-callback manager so materialize
// runs at most once, the first time native execution references symbol.
type IRBuilder interface {
	// Call emits a call to symbol with the given signature and args. If
	// symbol is not yet defined, the call binds to a stub whose
	// materialize callback is invoked (at most once, serialized across
	// concurrent first references) to obtain the real Definition.
	Call(symbol string, signature Signature, args []Value, materialize func() Definition) Value

	// CallDirect emits a call to symbol with no materialize callback —
	// used when the Helper has already determined, at IR-generation
	// time, that symbol is bound to an existing direct-call target.
	CallDirect(symbol string, signature Signature, args []Value) Value

	// CallTrap emits code that unconditionally raises exception. Used
	// when the Helper discovers a broken reference while the relevant
	// class is already loaded, so there is nothing left to defer to a
	// materialization callback.
	CallTrap(exception classloader.TrapError, signature Signature) Value

	ConstantInt(width int, value int64) Value
	ConstantPointer(address uintptr) Value

	// ClassObjectPointerOf returns a constant IR value for classObject's
	// (already-loaded) class-object pointer.
	ClassObjectPointerOf(classObject *classloader.ClassObject) Value

	// LoadClassObjectPointer loads the runtime class-object pointer of
	// receiver, an IR value representing an object reference.
	LoadClassObjectPointer(receiver Value) Value

	CallThroughVTable(classObjectPtr Value, slot int, signature Signature, args []Value) Value
	CallThroughITable(classObjectPtr Value, interfaceID, slot int, signature Signature, args []Value) Value

	// EmitInitializerGate emits the class-initializer gate: a
	// comparison of classObjectPtr's initialization sentinel against
	// "initialized", followed by a call to runInitializer on miss. The
	// gate is idempotent and is emitted at IR-generation time even for
	// already-loaded classes, since initialization can occur strictly
	// later than loading.
	EmitInitializerGate(classObjectPtr Value, runInitializer func())
}
