package classloader

import (
	"sync"

	"github.com/lazyjit/lazyjit/internal/config"
)

// bootstrapPrimitives are the eagerly-constructed ClassObjects for the
// nine base types. The original jllvm ClassLoader keeps these as
// always-loaded member fields (m_byte, m_char, ...) rather than
// synthesizing them lazily; we get the same effect with a singleton
// initialized once, mirroring the symbol-table prelude singleton pattern
// this module's teacher uses for its own always-available bindings.
var (
	bootstrapPrimitives     map[string]*ClassObject
	bootstrapPrimitivesOnce sync.Once
)

// primitiveDescriptors enumerates the nine base-type descriptor letters,
// in the same order as descriptor.BaseType's iota sequence.
var primitiveDescriptors = []string{
	config.BooleanDescriptor,
	config.ByteDescriptor,
	config.CharDescriptor,
	config.ShortDescriptor,
	config.IntDescriptor,
	config.LongDescriptor,
	config.FloatDescriptor,
	config.DoubleDescriptor,
	config.VoidDescriptor,
}

func initBootstrapPrimitives() {
	bootstrapPrimitives = make(map[string]*ClassObject, len(primitiveDescriptors))
	for _, d := range primitiveDescriptors {
		bootstrapPrimitives[d] = &ClassObject{Name: d, InitState: Initialized}
	}
}

// BootstrapPrimitive returns the always-loaded ClassObject for one of the
// nine base-type descriptor letters ("Z", "B", "C", "S", "I", "J", "F",
// "D", "V"), or nil if descriptor_ is not one of them.
func BootstrapPrimitive(descriptor_ string) *ClassObject {
	bootstrapPrimitivesOnce.Do(initBootstrapPrimitives)
	return bootstrapPrimitives[descriptor_]
}
