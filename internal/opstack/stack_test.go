package opstack

import "testing"

// memSlot is an in-memory Slot used only by tests; it ignores the type
// argument passed to Load and simply returns whatever was last stored,
// which is enough to exercise the stack's bookkeeping in isolation from
// any real IR builder.
type memSlot struct {
	value Value
}

func (m *memSlot) Load(ValueType) Value { return m.value }
func (m *memSlot) Store(v Value)        { m.value = v }

func newTestStack(maxStack int) *OperandStack {
	return New(maxStack, func(int) Slot { return &memSlot{} })
}

func TestPushPopOrder(t *testing.T) {
	s := newTestStack(3)
	s.Push(int32(7), "i32")
	s.Push("r", "ref")

	if v := s.Pop(); v != "r" {
		t.Fatalf("first pop = %v, want %q", v, "r")
	}
	if v := s.Pop(); v != int32(7) {
		t.Fatalf("second pop = %v, want 7", v)
	}
}

func TestSaveRestoreState(t *testing.T) {
	s := newTestStack(3)
	s.Push(int32(7), "i32")
	s.Push("r", "ref")

	saved := s.SaveState()
	s.Push("extra", "ref")
	s.RestoreState(saved)

	if s.Top() != 2 {
		t.Fatalf("Top() after restore = %d, want 2", s.Top())
	}
	if v := s.Pop(); v != "r" {
		t.Fatalf("pop after restore = %v, want %q", v, "r")
	}
	if v := s.Pop(); v != int32(7) {
		t.Fatalf("pop after restore = %v, want 7", v)
	}
}

func TestHandlerState(t *testing.T) {
	s := newTestStack(3)
	s.Push(int32(1), "i32")
	s.Push(int32(2), "i32")
	s.Push(int32(3), "i32")

	h := s.HandlerState("ref")
	if h.top != 1 || len(h.types) != 1 || h.types[0] != "ref" {
		t.Fatalf("HandlerState = %+v, want shape [ref], top=1", h)
	}

	s.RestoreState(h)
	s.SetHandlerStack("caught", "ref")
	if s.Top() != 1 {
		t.Fatalf("Top() after handler restore = %d, want 1", s.Top())
	}
	if v := s.Pop(); v != "caught" {
		t.Fatalf("pop = %v, want %q", v, "caught")
	}
}

func TestPopEmptyPanics(t *testing.T) {
	s := newTestStack(1)
	defer func() {
		if recover() == nil {
			t.Fatal("Pop on empty stack did not panic")
		}
	}()
	s.Pop()
}

func TestPushPastMaxStackPanics(t *testing.T) {
	s := newTestStack(1)
	s.Push(1, "i32")
	defer func() {
		if recover() == nil {
			t.Fatal("Push past maxStack did not panic")
		}
	}()
	s.Push(2, "i32")
}

func TestEndToEndThreeSlotExample(t *testing.T) {
	// maxStack=3, push(i32 7), push(ref r), save, pop two, restore, pop
	// once more -> r again.
	s := newTestStack(3)
	s.Push(int32(7), "i32")
	s.Push("r", "ref")
	saved := s.SaveState()

	first := s.Pop()
	second := s.Pop()
	if first != "r" || second != int32(7) {
		t.Fatalf("got (%v, %v), want (r, 7)", first, second)
	}

	s.RestoreState(saved)
	if v := s.Pop(); v != "r" {
		t.Fatalf("pop after restore = %v, want %q", v, "r")
	}
}
