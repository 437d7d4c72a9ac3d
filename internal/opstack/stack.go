// Package opstack models the JVM operand stack as seen by the
// bytecode-to-IR translator: a fixed-depth sequence of translation-time
// value slots, each backed by a stable storage location, annotated with
// the type currently held because the JVM operand stack is polymorphic
// across control-flow paths.
package opstack

// Value is whatever the IR builder's value representation is; this
// package is agnostic to it and only ever stores and retrieves opaque
// values, never inspecting them.
type Value any

// ValueType is whatever the IR builder's type representation is (e.g.
// an LLVM type, or one of descriptor.FieldType's reference-into-IR
// translations).
type ValueType any

// Slot is a stable storage location for one operand-stack position —
// one alloca per maxStack position, in an LLVM-backed builder.
type Slot interface {
	Load(t ValueType) Value
	Store(v Value)
}

// State is an immutable snapshot of a stack's shape: its per-slot types
// up to the top-of-stack index. Obtained from SaveState and consumed by
// RestoreState.
type State struct {
	types []ValueType
	top   int
}

// InvariantError is panicked when a caller violates one of this
// package's invariants (push past maxStack, pop from empty). Verified
// bytecode guarantees these never happen in practice; a violation here
// is a programmer error in the caller, not a user-visible one.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string { return "opstack: " + e.Reason }

// OperandStack is the translation-time operand stack for one bytecode
// method body. Slots are allocated once, up front, for maxStack
// positions; push/pop only ever move the top-of-stack index and
// store/load through the slot at that index.
type OperandStack struct {
	slots    []Slot
	types    []ValueType
	maxStack int
	top      int
}

// New allocates an OperandStack with maxStack slots, obtained by calling
// newSlot once per position — the translator supplies newSlot so slot
// allocation (an alloca, a stack-resident cell, a register) stays a
// concern of the IR builder, not of this package.
func New(maxStack int, newSlot func(index int) Slot) *OperandStack {
	slots := make([]Slot, maxStack)
	for i := range slots {
		slots[i] = newSlot(i)
	}
	return &OperandStack{
		slots:    slots,
		types:    make([]ValueType, maxStack),
		maxStack: maxStack,
	}
}

// Push stores value into the slot at top, records its type, and
// increments top. Panics with *InvariantError if the stack is already at
// maxStack depth.
func (s *OperandStack) Push(value Value, valueType ValueType) {
	if s.top >= s.maxStack {
		panic(&InvariantError{Reason: "push past maxStack"})
	}
	s.slots[s.top].Store(value)
	s.types[s.top] = valueType
	s.top++
}

// Pop decrements top and loads the value at the new top using its
// recorded type. Undefined (panics with *InvariantError) if the stack is
// empty — verified bytecode guarantees callers never do this.
func (s *OperandStack) Pop() Value {
	v, _ := s.PopWithType()
	return v
}

// PopWithType is Pop, but also returns the type recorded at push time.
func (s *OperandStack) PopWithType() (Value, ValueType) {
	if s.top == 0 {
		panic(&InvariantError{Reason: "pop from empty stack"})
	}
	s.top--
	t := s.types[s.top]
	return s.slots[s.top].Load(t), t
}

// Top returns the current top-of-stack index (the number of live
// values).
func (s *OperandStack) Top() int { return s.top }

// SaveState snapshots the current (types, top) shape. Used when two
// bytecode predecessors must present the same stack shape at a merge
// point, or when a block is revisited from a new predecessor after
// initial translation.
func (s *OperandStack) SaveState() State {
	types := make([]ValueType, s.top)
	copy(types, s.types[:s.top])
	return State{types: types, top: s.top}
}

// RestoreState replaces the current (types, top) shape with state. The
// type array is snapshotted (not recomputed) because JVM verification
// allows different paths to the same merge point to have carried
// different underlying encodings of the same slot — e.g. integer
// widenings the lowering has already committed to — and those must be
// preserved exactly, not re-inferred.
func (s *OperandStack) RestoreState(state State) {
	copy(s.types, state.types)
	s.top = state.top
}

// HandlerState returns the canonical entry-state for an exception
// handler: a single reference-typed slot at depth 1, regardless of the
// stack shape at the instruction the handler covers.
func (s *OperandStack) HandlerState(referenceType ValueType) State {
	return State{types: []ValueType{referenceType}, top: 1}
}

// SetHandlerStack stores the caught reference into slot 0, overwriting
// whatever type previously lived there. Used together with
// RestoreState(HandlerState(...)) when entering a handler.
func (s *OperandStack) SetHandlerStack(value Value, referenceType ValueType) {
	s.slots[0].Store(value)
	s.types[0] = referenceType
}
