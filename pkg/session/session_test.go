package session

import (
	"path/filepath"
	"testing"

	"github.com/lazyjit/lazyjit/internal/classloader"
	"github.com/lazyjit/lazyjit/internal/descriptor"
	"github.com/lazyjit/lazyjit/internal/loader"
	"github.com/lazyjit/lazyjit/internal/opstack"
	"github.com/lazyjit/lazyjit/internal/stubstore"
)

// recordingBuilder is a minimal loader.IRBuilder that only needs to
// support the materialize path this test exercises: a not-yet-loaded
// class whose static call gets materialized exactly once.
type recordingBuilder struct {
	calls int
}

func (b *recordingBuilder) Call(symbol string, signature loader.Signature, args []loader.Value, materialize func() loader.Definition) loader.Value {
	b.calls++
	return materialize()
}
func (b *recordingBuilder) CallDirect(symbol string, signature loader.Signature, args []loader.Value) loader.Value {
	return nil
}
func (b *recordingBuilder) CallTrap(exception classloader.TrapError, signature loader.Signature) loader.Value {
	return nil
}
func (b *recordingBuilder) ConstantInt(width int, value int64) loader.Value        { return value }
func (b *recordingBuilder) ConstantPointer(address uintptr) loader.Value           { return address }
func (b *recordingBuilder) ClassObjectPointerOf(c *classloader.ClassObject) loader.Value {
	return c
}
func (b *recordingBuilder) LoadClassObjectPointer(receiver loader.Value) loader.Value { return nil }
func (b *recordingBuilder) CallThroughVTable(classObjectPtr loader.Value, slot int, signature loader.Signature, args []loader.Value) loader.Value {
	return nil
}
func (b *recordingBuilder) CallThroughITable(classObjectPtr loader.Value, interfaceID, slot int, signature loader.Signature, args []loader.Value) loader.Value {
	return nil
}
func (b *recordingBuilder) EmitInitializerGate(classObjectPtr loader.Value, runInitializer func()) {
}

type neverLoadedLoader struct{}

func (neverLoadedLoader) ForName(fieldDescriptor string) (*classloader.ClassObject, error) {
	return nil, &classloader.NoClassDefFoundError{ClassName: fieldDescriptor}
}
func (neverLoadedLoader) ForNameLoaded(fieldDescriptor string) *classloader.ClassObject { return nil }
func (neverLoadedLoader) Initialize(classObject *classloader.ClassObject) error         { return nil }

func memSlots(n int) func(int) opstack.Slot {
	return func(int) opstack.Slot { return &memSlot{} }
}

type memSlot struct{ v opstack.Value }

func (s *memSlot) Load(opstack.ValueType) opstack.Value { return s.v }
func (s *memSlot) Store(v opstack.Value)                { s.v = v }

func TestNewAssignsDistinctSessionIDs(t *testing.T) {
	builder := &recordingBuilder{}
	s1 := New(neverLoadedLoader{}, builder, nil, nil, 4, memSlots(4))
	s2 := New(neverLoadedLoader{}, builder, nil, nil, 4, memSlots(4))

	if s1.ID == s2.ID {
		t.Fatal("two sessions got the same ID")
	}
	if s1.Stack == nil || s1.Helper == nil {
		t.Fatal("New left Stack or Helper nil")
	}
}

func TestMaterializationPersistsToStore(t *testing.T) {
	builder := &recordingBuilder{}
	store, err := stubstore.Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("stubstore.Open: %v", err)
	}
	defer store.Close()

	s := New(neverLoadedLoader{}, builder, store, nil, 4, memSlots(4))

	methodType := descriptor.MethodType{Parameters: nil, ReturnType: descriptor.Base{Type: descriptor.Void}}
	s.Helper.DoNonVirtualCall("a/B", "run", methodType, true, nil)

	if builder.calls != 1 {
		t.Fatalf("builder.calls = %d, want 1", builder.calls)
	}

	// The materialized Trap (class a/B never loads) must now be cached,
	// regardless of which session looks it up.
	symbol := "Static Call to a/B.run:()V"
	if _, ok, err := store.Get(t.Context(), symbol); err != nil || !ok {
		t.Fatalf("store.Get(%q) = ok=%v err=%v, want a cached entry", symbol, ok, err)
	}
}

func TestSecondSessionReusesCachedMaterialization(t *testing.T) {
	builder := &recordingBuilder{}
	store, err := stubstore.Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("stubstore.Open: %v", err)
	}
	defer store.Close()

	methodType := descriptor.MethodType{Parameters: nil, ReturnType: descriptor.Base{Type: descriptor.Void}}

	s1 := New(neverLoadedLoader{}, builder, store, nil, 4, memSlots(4))
	s1.Helper.DoNonVirtualCall("a/B", "run", methodType, true, nil)
	if builder.calls != 1 {
		t.Fatalf("builder.calls after first session = %d, want 1", builder.calls)
	}

	// A fresh Helper (simulating a new process) with its own
	// Materializer must not recompute: tracingBuilder.Call should find
	// the row store.Put already wrote and skip the fresh materialize
	// closure entirely, yet still route through builder.Call once.
	s2 := New(neverLoadedLoader{}, builder, store, nil, 4, memSlots(4))
	s2.Helper.DoNonVirtualCall("a/B", "run", methodType, true, nil)
	if builder.calls != 2 {
		t.Fatalf("builder.calls after second session = %d, want 2 (Call still reaches the builder, materialize short-circuits)", builder.calls)
	}
}
