// Package loader implements the Lazy Class-Loader Helper: the
// decision engine a bytecode-to-IR translator calls at every call site,
// field access, and class-object load. Grounded on the lazy-codegen
// helpers of the original jllvm CodeGeneratorUtils.hpp/.cpp
// (doIndirectCall, doNonVirtualCall, getInstanceFieldOffset,
// getStaticFieldAddress, getClassObject), restated against the
// IRBuilder/ClassLoader collaborator boundary this core specifies.
package loader

import (
	"github.com/lazyjit/lazyjit/internal/classloader"
	"github.com/lazyjit/lazyjit/internal/descriptor"
	"github.com/lazyjit/lazyjit/internal/mangle"
	"github.com/lazyjit/lazyjit/internal/resolve"
)

// Helper is the Lazy Class-Loader Helper. One Helper serves a single
// compilation unit: its Materializer accumulates the in-flight stub
// computations of the methods and fields that unit's bytecode
// references.
type Helper struct {
	Loader  classloader.Loader
	Builder IRBuilder
	Flights *Materializer
}

// New builds a Helper over loader and builder, with a fresh
// Materializer.
func New(loader classloader.Loader, builder IRBuilder) *Helper {
	return &Helper{Loader: loader, Builder: builder, Flights: NewMaterializer()}
}

// resolveNonVirtual walks class and its superclasses for the first
// declared method matching name and methodType — the non-dispatching
// lookup invokestatic and invokespecial both reduce to.
func resolveNonVirtual(class *classloader.ClassObject, name string, methodType descriptor.MethodType) *classloader.Method {
	for c := class; c != nil; c = c.SuperClass {
		if m := c.FindDeclaredMethod(name, methodType); m != nil {
			return m
		}
	}
	return nil
}

// DoNonVirtualCall emits a call that does not dispatch through a
// v-table or i-table: invokestatic (isStatic == true) and invokespecial
// (isStatic == false). className is the symbolic reference's
// declaring class; args must already include the receiver for the
// invokespecial case.
func (h *Helper) DoNonVirtualCall(className, methodName string, methodType descriptor.MethodType, isStatic bool, args []Value) Value {
	sig := signatureOf(methodType)

	if class := h.Loader.ForNameLoaded(className); class != nil {
		target := resolveNonVirtual(class, methodName, methodType)
		if target == nil {
			return h.Builder.CallTrap(&classloader.NoSuchMethodError{ClassName: className, MethodName: methodName}, sig)
		}
		if isStatic {
			emitStaticGate(h.Builder, h.Loader, target.DeclaringClass)
		}
		symbol := mangle.DirectMethodCall(target.DeclaringClass.Name, methodName, methodType)
		return h.Builder.CallDirect(symbol, sig, args)
	}

	symbol := mangle.StaticCall(className, methodName, methodType)
	compute := h.Flights.Once(symbol, func() Definition {
		class, err := h.Loader.ForName(className)
		if err != nil {
			return Trap{Exception: &classloader.NoClassDefFoundError{ClassName: className}}
		}
		target := resolveNonVirtual(class, methodName, methodType)
		if target == nil {
			return Trap{Exception: &classloader.NoSuchMethodError{ClassName: className, MethodName: methodName}}
		}
		if isStatic {
			if err := h.Loader.Initialize(target.DeclaringClass); err != nil {
				return Trap{Exception: &classloader.NoClassDefFoundError{ClassName: className}}
			}
		}
		return DirectForward{Target: mangle.DirectMethodCall(target.DeclaringClass.Name, methodName, methodType)}
	})
	return h.Builder.Call(symbol, sig, args, compute)
}

// DoIndirectCall emits a call that dispatches through the receiver's
// v-table or i-table — invokevirtual and invokeinterface.
// args[0] must be the receiver. resolution selects which JVM resolution
// algorithm applies; it is never Special here
// (invokespecial is non-virtual — see DoNonVirtualCall).
func (h *Helper) DoIndirectCall(className, methodName string, methodType descriptor.MethodType, resolution mangle.Resolution, args []Value) Value {
	sig := signatureOf(methodType)
	receiver := args[0]

	if declaringClass := h.Loader.ForNameLoaded(className); declaringClass != nil {
		result := resolveStatically(declaringClass, methodName, methodType, resolution)
		switch r := result.(type) {
		case resolve.VTableOffset:
			classObjectPtr := h.Builder.LoadClassObjectPointer(receiver)
			return h.Builder.CallThroughVTable(classObjectPtr, r.Slot, sig, args)
		case resolve.ITableOffset:
			classObjectPtr := h.Builder.LoadClassObjectPointer(receiver)
			return h.Builder.CallThroughITable(classObjectPtr, r.InterfaceID, r.Slot, sig, args)
		case resolve.Abstract:
			return h.Builder.CallTrap(&classloader.AbstractMethodError{Message: r.Message}, sig)
		default:
			panic("loader: unreachable resolve.Result variant")
		}
	}

	symbol := mangle.MethodResolutionCall(resolution, className, methodName, methodType)
	compute := h.Flights.Once(symbol, func() Definition {
		declaringClass, err := h.Loader.ForName(className)
		if err != nil {
			return Trap{Exception: &classloader.NoClassDefFoundError{ClassName: className}}
		}
		switch r := resolveStatically(declaringClass, methodName, methodType, resolution).(type) {
		case resolve.VTableOffset:
			return VTableDispatch{Slot: r.Slot}
		case resolve.ITableOffset:
			return ITableDispatch{InterfaceID: r.InterfaceID, Slot: r.Slot}
		case resolve.Abstract:
			return Trap{Exception: &classloader.AbstractMethodError{Message: r.Message}}
		default:
			panic("loader: unreachable resolve.Result variant")
		}
	})
	return h.Builder.Call(symbol, sig, args, compute)
}

// resolveStatically dispatches to the virtual or interface resolution
// algorithm requested by resolution.
func resolveStatically(declaringClass *classloader.ClassObject, methodName string, methodType descriptor.MethodType, resolution mangle.Resolution) resolve.Result {
	if resolution == mangle.Interface {
		return resolve.Interface(declaringClass, methodName, methodType)
	}
	return resolve.Virtual(declaringClass, methodName, methodType)
}

// GetInstanceFieldOffset emits code producing the byte offset of
// className's fieldName instance field.
func (h *Helper) GetInstanceFieldOffset(className, fieldName string, fieldType descriptor.FieldType) Value {
	sig := Signature{Return: ValueType{Kind: KindInt, BitWidth: pointerWidth}}

	if class := h.Loader.ForNameLoaded(className); class != nil {
		field := findFieldInHierarchy(class, fieldName)
		if field == nil {
			return h.Builder.CallTrap(&classloader.NoSuchFieldError{ClassName: className, FieldName: fieldName}, sig)
		}
		return h.Builder.ConstantInt(pointerWidth, field.InstanceOffset)
	}

	symbol := mangle.FieldAccess(className, fieldName, fieldType)
	compute := h.Flights.Once(symbol, func() Definition {
		class, err := h.Loader.ForName(className)
		if err != nil {
			return Trap{Exception: &classloader.NoClassDefFoundError{ClassName: className}}
		}
		field := findFieldInHierarchy(class, fieldName)
		if field == nil {
			return Trap{Exception: &classloader.NoSuchFieldError{ClassName: className, FieldName: fieldName}}
		}
		return ConstantInt{BitWidth: pointerWidth, Value: field.InstanceOffset}
	})
	return h.Builder.Call(symbol, sig, nil, compute)
}

// GetStaticFieldAddress emits code producing the address of className's
// fieldName static field. The mangled symbol is identical to
// GetInstanceFieldOffset's for the same className/fieldName/fieldType —
// correctness depends on the caller knowing which kind of field it is
// naming, exactly as the bytecode's own getstatic/getfield distinction
// already requires.
func (h *Helper) GetStaticFieldAddress(className, fieldName string, fieldType descriptor.FieldType) Value {
	sig := Signature{Return: ValueType{Kind: KindPointer}}

	if class := h.Loader.ForNameLoaded(className); class != nil {
		field := findFieldInHierarchy(class, fieldName)
		if field == nil {
			return h.Builder.CallTrap(&classloader.NoSuchFieldError{ClassName: className, FieldName: fieldName}, sig)
		}
		emitStaticGate(h.Builder, h.Loader, class)
		return h.Builder.ConstantPointer(field.StaticAddress)
	}

	symbol := mangle.FieldAccess(className, fieldName, fieldType)
	compute := h.Flights.Once(symbol, func() Definition {
		class, err := h.Loader.ForName(className)
		if err != nil {
			return Trap{Exception: &classloader.NoClassDefFoundError{ClassName: className}}
		}
		field := findFieldInHierarchy(class, fieldName)
		if field == nil {
			return Trap{Exception: &classloader.NoSuchFieldError{ClassName: className, FieldName: fieldName}}
		}
		if err := h.Loader.Initialize(class); err != nil {
			return Trap{Exception: &classloader.NoClassDefFoundError{ClassName: className}}
		}
		return ConstantPointer{Address: field.StaticAddress}
	})
	return h.Builder.Call(symbol, sig, nil, compute)
}

func findFieldInHierarchy(class *classloader.ClassObject, name string) *classloader.Field {
	for c := class; c != nil; c = c.SuperClass {
		if f := c.FindDeclaredField(name); f != nil {
			return f
		}
	}
	return nil
}

// GetClassObject emits code producing the class-object pointer for
// fieldDescriptor, loading (and, if mustInitialize, initializing) it
// first if necessary. Base types are always already loaded, via
// classloader.BootstrapPrimitive.
func (h *Helper) GetClassObject(fieldDescriptor descriptor.FieldType, mustInitialize bool) Value {
	if base, ok := fieldDescriptor.(descriptor.Base); ok {
		return h.Builder.ClassObjectPointerOf(classloader.BootstrapPrimitive(base.Type.String()))
	}

	sig := Signature{Return: ValueType{Kind: KindPointer}}

	if class := h.Loader.ForNameLoaded(fieldDescriptor.String()); class != nil {
		ptr := h.Builder.ClassObjectPointerOf(class)
		if mustInitialize {
			emitStaticGate(h.Builder, h.Loader, class)
		}
		return ptr
	}

	symbol := mangle.ClassObjectAccess(fieldDescriptor)
	compute := h.Flights.Once(symbol, func() Definition {
		class, err := h.Loader.ForName(fieldDescriptor.String())
		if err != nil {
			return Trap{Exception: &classloader.NoClassDefFoundError{ClassName: fieldDescriptor.String()}}
		}
		if mustInitialize {
			if err := h.Loader.Initialize(class); err != nil {
				return Trap{Exception: &classloader.NoClassDefFoundError{ClassName: fieldDescriptor.String()}}
			}
		}
		return ClassObjectConstant{ClassObject: class}
	})
	return h.Builder.Call(symbol, sig, nil, compute)
}

func signatureOf(methodType descriptor.MethodType) Signature {
	params := make([]ValueType, len(methodType.Parameters))
	for i, p := range methodType.Parameters {
		params[i] = irValueType(p)
	}
	return Signature{Params: params, Return: irValueType(methodType.ReturnType)}
}

// irValueType maps a descriptor-level field type to the coarse IR
// value type the IRBuilder boundary deals in; exact native
// representation (register class, calling convention) is the IR
// builder's concern, out of scope here.
func irValueType(ft descriptor.FieldType) ValueType {
	if descriptor.IsReference(ft) {
		return ValueType{Kind: KindReference}
	}
	base := ft.(descriptor.Base).Type
	if base == descriptor.Void {
		return ValueType{Kind: KindVoid}
	}
	if base == descriptor.Long || base == descriptor.Double {
		return ValueType{Kind: KindInt, BitWidth: 64}
	}
	return ValueType{Kind: KindInt, BitWidth: 32}
}
