// Package mangle implements the textual encoding that lets compiled native code refer to a deferred VM
// operation — a method call, field access, or class-object load — by a
// single linker-visible symbol name. The native linker's symbol table is
// the registry: collisions with unrelated symbols are avoided by the
// unique textual prefixes each non-direct grammar carries.
package mangle

import (
	"strings"

	"github.com/lazyjit/lazyjit/internal/config"
	"github.com/lazyjit/lazyjit/internal/descriptor"
)

// Prefixes used by the non-direct mangling grammars, re-exported from
// internal/config so this package's callers (e.g. internal/loader's
// tests) can pattern-match without importing config themselves or re-deriving
// the strings.
const (
	VirtualCallPrefix   = config.VirtualCallPrefix
	InterfaceCallPrefix = config.InterfaceCallPrefix
	SpecialCallPrefix   = config.SpecialCallPrefix
	StaticCallPrefix    = config.StaticCallPrefix
	ClassLoadPrefix     = config.ClassLoadPrefix
)

// Resolution identifies which JVM method-resolution algorithm a
// MethodResolutionCall symbol requests.
type Resolution int

const (
	Virtual Resolution = iota
	Interface
	Special
)

func (r Resolution) prefix() string {
	switch r {
	case Virtual:
		return VirtualCallPrefix
	case Interface:
		return InterfaceCallPrefix
	case Special:
		return SpecialCallPrefix
	default:
		panic("mangle: invalid Resolution")
	}
}

// DirectMethodCall mangles a direct call to the named method: one that
// binds without dispatch because the target MUST exist in an already
// loaded class.
//
// Syntax: <class>.<method>:<methodDescriptor>
//
// Direct calls have no distinguishing prefix and are not demangled —
// they are terminal, with no stub to materialize.
func DirectMethodCall(className, methodName string, descriptor_ descriptor.MethodType) string {
	return directCallBody(className, methodName, descriptor_)
}

func directCallBody(className, methodName string, descriptor_ descriptor.MethodType) string {
	var sb strings.Builder
	sb.WriteString(className)
	sb.WriteByte('.')
	sb.WriteString(methodName)
	sb.WriteByte(':')
	sb.WriteString(descriptor_.String())
	return sb.String()
}

// MethodResolutionCall mangles a call that first resolves, then invokes,
// the named method according to resolution.
//
// Syntax: <method-resolution> <direct-call>
func MethodResolutionCall(resolution Resolution, className, methodName string, descriptor_ descriptor.MethodType) string {
	return resolution.prefix() + directCallBody(className, methodName, descriptor_)
}

// StaticCall mangles a call that resolves a static (or invokespecial
// fallback) target before invoking it.
//
// Syntax: "Static Call to " <direct-call>
func StaticCall(className, methodName string, descriptor_ descriptor.MethodType) string {
	return StaticCallPrefix + directCallBody(className, methodName, descriptor_)
}

// FieldAccess mangles a call to a function returning either the address
// of a static field or the byte offset of an instance field. The two
// cases share this same mangled name; the caller selects the
// interpretation via the function signature it uses.
//
// Syntax: <class>.<field>:<descriptor>
func FieldAccess(className, fieldName string, fieldType descriptor.FieldType) string {
	var sb strings.Builder
	sb.WriteString(className)
	sb.WriteByte('.')
	sb.WriteString(fieldName)
	sb.WriteByte(':')
	sb.WriteString(fieldType.String())
	return sb.String()
}

// ClassObjectAccess mangles a call to a function returning the loaded
// class object for fieldDescriptor.
//
// Syntax: "Load " <fieldDescriptor>
func ClassObjectAccess(fieldDescriptor descriptor.FieldType) string {
	return ClassLoadPrefix + fieldDescriptor.String()
}
