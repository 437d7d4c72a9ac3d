// Package classloader defines the collaborator boundary between this
// core and the rest of the VM: the ClassObject/Method/Field metadata
// shapes the Lazy Class-Loader Helper (internal/loader) queries, the
// ClassLoader interface it consults, and the user-program error family
// that a broken reference traps into at materialization time.
//
// Class-file parsing, object layout, and garbage collection are
// deliberately out of scope here — ClassObject is the minimal shape
// the Helper needs, not a full runtime object model.
package classloader

import "github.com/lazyjit/lazyjit/internal/descriptor"

// Method is a resolvable member of a ClassObject.
type Method struct {
	Name           string
	Descriptor     descriptor.MethodType
	IsStatic       bool
	IsAbstract     bool
	DeclaringClass *ClassObject

	// VTableSlot is this method's index into its declaring class's
	// virtual table, valid only for non-static, non-private instance
	// methods.
	VTableSlot int
}

// Field is a resolvable data member of a ClassObject.
type Field struct {
	Name       string
	Descriptor descriptor.FieldType
	IsStatic   bool

	// InstanceOffset is the byte offset within an instance, valid when
	// !IsStatic.
	InstanceOffset int64
	// StaticAddress is the address of the field's storage, valid when
	// IsStatic.
	StaticAddress uintptr
}

// InitState is the class-initializer gate's sentinel.
type InitState int32

const (
	NotInitialized InitState = iota
	Initializing
	Initialized
)

// ClassObject is the loaded-class metadata the Helper consults. A
// ClassObject always exists in exactly one of two conditions relevant to
// this core: loaded (this type exists) or not-yet-loaded (ClassLoader
// returns a NoClassDefFoundError instead).
type ClassObject struct {
	Name        string
	IsInterface bool
	SuperClass  *ClassObject
	Interfaces  []*ClassObject

	Methods []*Method
	Fields  []*Field

	// VTable is this class's virtual dispatch table, indexed by
	// Method.VTableSlot.
	VTable []*Method

	// InterfaceID identifies this class object in interface dispatch
	// tables when IsInterface is true.
	InterfaceID int

	// InitState is read by the class-initializer gate. Real
	// implementations back this with an atomically-observed field in the
	// class object's runtime representation; here it is a plain field
	// because object layout is out of scope.
	InitState InitState
}

// FindDeclaredMethod searches only c's own Methods (no superclass or
// interface walk) for a method with the given name and descriptor.
func (c *ClassObject) FindDeclaredMethod(name string, descriptor_ descriptor.MethodType) *Method {
	for _, m := range c.Methods {
		if m.Name == name && m.Descriptor.Equal(descriptor_) {
			return m
		}
	}
	return nil
}

// FindDeclaredField searches only c's own Fields for a field with the
// given name.
func (c *ClassObject) FindDeclaredField(name string) *Field {
	for _, f := range c.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}
