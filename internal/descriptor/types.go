// Package descriptor implements the JVM field and method descriptor
// grammar: a value-type representation of Java
// type and method signatures, with parsing and structural equality.
package descriptor

import (
	"strings"

	"github.com/lazyjit/lazyjit/internal/config"
)

// BaseType is one of the eight primitive descriptor letters, plus Void
// which is only legal in return-type position.
type BaseType int

const (
	Boolean BaseType = iota
	Byte
	Char
	Short
	Int
	Long
	Float
	Double
	Void
)

func (b BaseType) String() string {
	switch b {
	case Boolean:
		return config.BooleanDescriptor
	case Byte:
		return config.ByteDescriptor
	case Char:
		return config.CharDescriptor
	case Short:
		return config.ShortDescriptor
	case Int:
		return config.IntDescriptor
	case Long:
		return config.LongDescriptor
	case Float:
		return config.FloatDescriptor
	case Double:
		return config.DoubleDescriptor
	case Void:
		return config.VoidDescriptor
	default:
		panic("descriptor: invalid BaseType")
	}
}

// IsInteger reports whether b is one of the integer base types:
// Boolean, Byte, Char, Short, Int, Long.
func (b BaseType) IsInteger() bool {
	switch b {
	case Boolean, Byte, Char, Short, Int, Long:
		return true
	default:
		return false
	}
}

// IsUnsigned reports whether b is unsigned: Char or Boolean.
func (b BaseType) IsUnsigned() bool {
	return b == Char || b == Boolean
}

// FieldType is the tagged union: a base type, an object type, or
// an array type. Callers type-switch on the concrete variant (Base,
// Object or Array) to tell which one a value holds.
type FieldType interface {
	// String returns the canonical descriptor encoding of the type.
	String() string
	// Equal reports structural equality with other.
	Equal(other FieldType) bool
	isFieldType()
}

// Base wraps a BaseType as a FieldType.
type Base struct {
	Type BaseType
}

func (Base) isFieldType() {}

func (b Base) String() string { return b.Type.String() }

func (b Base) Equal(other FieldType) bool {
	o, ok := other.(Base)
	return ok && o.Type == b.Type
}

// Object is a fully-qualified, '/'-separated class name.
type Object struct {
	ClassName string
}

func (Object) isFieldType() {}

func (o Object) String() string {
	var sb strings.Builder
	sb.WriteByte('L')
	sb.WriteString(o.ClassName)
	sb.WriteByte(';')
	return sb.String()
}

func (o Object) Equal(other FieldType) bool {
	p, ok := other.(Object)
	return ok && p.ClassName == o.ClassName
}

// Array is a component field type, recursively.
type Array struct {
	Component FieldType
}

func (Array) isFieldType() {}

func (a Array) String() string {
	return "[" + a.Component.String()
}

func (a Array) Equal(other FieldType) bool {
	o, ok := other.(Array)
	if !ok {
		return false
	}
	return a.Component.Equal(o.Component)
}

// IsReference reports whether fieldType denotes a reference-typed value
// (Object or Array), as opposed to a primitive Base type.
func IsReference(fieldType FieldType) bool {
	switch fieldType.(type) {
	case Object, Array:
		return true
	default:
		return false
	}
}

// MethodType is an ordered parameter list plus a return type, encoded
// as "(P1 P2 … Pn) R". Parameters never contain Void; the return may.
type MethodType struct {
	Parameters []FieldType
	ReturnType FieldType
}

func (m MethodType) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for _, p := range m.Parameters {
		sb.WriteString(p.String())
	}
	sb.WriteByte(')')
	sb.WriteString(m.ReturnType.String())
	return sb.String()
}

// Equal reports structural equality: same parameters in the same order
// and the same return type.
func (m MethodType) Equal(other MethodType) bool {
	if len(m.Parameters) != len(other.Parameters) {
		return false
	}
	for i, p := range m.Parameters {
		if !p.Equal(other.Parameters[i]) {
			return false
		}
	}
	return m.ReturnType.Equal(other.ReturnType)
}
