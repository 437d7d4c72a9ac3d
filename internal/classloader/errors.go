package classloader

import "fmt"

// TrapError is the family of user-program errors that surface
// through materialized code rather than through the Helper's IR-emission
// path: a JIT-compiled method that never reaches a broken reference
// never observes one of these, preserving lazy semantics.
type TrapError interface {
	error
	// JVMException is the exception class name a materialized trap
	// should construct and throw at runtime.
	JVMException() string
}

// NoClassDefFoundError is trapped when the ClassLoader cannot find or
// load a referenced class.
type NoClassDefFoundError struct {
	ClassName string
}

func (e *NoClassDefFoundError) Error() string {
	return fmt.Sprintf("NoClassDefFoundError: %s", e.ClassName)
}

func (e *NoClassDefFoundError) JVMException() string { return "java/lang/NoClassDefFoundError" }

// AbstractMethodError is trapped when virtual or interface method
// resolution lands on an abstract or otherwise uncallable method.
type AbstractMethodError struct {
	Message string
}

func (e *AbstractMethodError) Error() string {
	return fmt.Sprintf("AbstractMethodError: %s", e.Message)
}

func (e *AbstractMethodError) JVMException() string { return "java/lang/AbstractMethodError" }

// NoSuchFieldError is trapped when a named field does not exist on the
// resolved class.
type NoSuchFieldError struct {
	ClassName, FieldName string
}

func (e *NoSuchFieldError) Error() string {
	return fmt.Sprintf("NoSuchFieldError: %s.%s", e.ClassName, e.FieldName)
}

func (e *NoSuchFieldError) JVMException() string { return "java/lang/NoSuchFieldError" }

// NoSuchMethodError is trapped when a named method does not exist on the
// resolved class.
type NoSuchMethodError struct {
	ClassName, MethodName string
}

func (e *NoSuchMethodError) Error() string {
	return fmt.Sprintf("NoSuchMethodError: %s.%s", e.ClassName, e.MethodName)
}

func (e *NoSuchMethodError) JVMException() string { return "java/lang/NoSuchMethodError" }
