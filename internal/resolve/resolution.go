// Package resolve implements JVM virtual and interface method
// resolution, grounded on the static resolution helpers of the
// original jllvm CodeGeneratorUtils.hpp (virtualMethodResolution /
// interfaceMethodResolution).
package resolve

import (
	"fmt"

	"github.com/lazyjit/lazyjit/internal/classloader"
	"github.com/lazyjit/lazyjit/internal/descriptor"
)

// Result is the tagged union: resolution either lands on a
// v-table slot, an i-table slot keyed by interface, or discovers the
// call is uncallable (abstract or missing) and must trap.
type Result interface {
	isResult()
}

// VTableOffset means the target occupies a known slot in the receiver
// class's virtual table.
type VTableOffset struct {
	Slot int
}

func (VTableOffset) isResult() {}

// ITableOffset means the target is located through the receiver's
// interface dispatch table keyed by InterfaceID.
type ITableOffset struct {
	InterfaceID int
	Slot        int
}

func (ITableOffset) isResult() {}

// Abstract means resolution discovered an abstract or missing method;
// the call must trap at runtime with Message.
type Abstract struct {
	Message string
}

func (Abstract) isResult() {}

func vTableResult(method *classloader.Method) Result {
	if method.IsAbstract {
		return Abstract{Message: fmt.Sprintf("%s.%s%s", method.DeclaringClass.Name, method.Name, method.Descriptor.String())}
	}
	return VTableOffset{Slot: method.VTableSlot}
}

func iTableResult(iface *classloader.ClassObject, method *classloader.Method) Result {
	if method.IsAbstract {
		return Abstract{Message: fmt.Sprintf("%s.%s%s", method.DeclaringClass.Name, method.Name, method.Descriptor.String())}
	}
	return ITableOffset{InterfaceID: iface.InterfaceID, Slot: method.VTableSlot}
}

// Virtual implements 5.4.3.3 Method Resolution from the JVM
// Specification: search the receiver's class and its superclasses for a
// method with matching name and descriptor; if none is found, fall
// through to interface method resolution (5.4.3.4). An abstract result
// yields Abstract, which a materialized call raises as
// AbstractMethodError for.
func Virtual(receiverClass *classloader.ClassObject, methodName string, methodType descriptor.MethodType) Result {
	for c := receiverClass; c != nil; c = c.SuperClass {
		if m := c.FindDeclaredMethod(methodName, methodType); m != nil {
			return vTableResult(m)
		}
	}
	return Interface(receiverClass, methodName, methodType)
}

// Interface implements 5.4.3.4 Interface Method Resolution: the declared
// class must be an interface (or, as the virtual fallback above, the
// receiver's implemented interfaces are searched); ties among
// maximally-specific candidates follow JVM semantics — a non-abstract
// maximally-specific method wins over an abstract one.
func Interface(receiverClass *classloader.ClassObject, methodName string, methodType descriptor.MethodType) Result {
	candidates := maximallySpecific(receiverClass, methodName, methodType)
	switch len(candidates) {
	case 0:
		return Abstract{Message: fmt.Sprintf("%s.%s%s", receiverClass.Name, methodName, methodType.String())}
	case 1:
		return iTableResultFor(candidates[0])
	default:
		// Tie-break: a non-abstract maximally-specific method wins.
		for _, c := range candidates {
			if !c.method.IsAbstract {
				return iTableResultFor(c)
			}
		}
		return iTableResultFor(candidates[0])
	}
}

func iTableResultFor(c candidate) Result {
	return iTableResult(c.iface, c.method)
}

type candidate struct {
	iface  *classloader.ClassObject
	method *classloader.Method
}

// maximallySpecific walks receiverClass itself when it is an interface,
// then receiverClass's implemented interfaces (the Interfaces lists of
// the class and its superclasses plus each interface's super-interfaces),
// and collects every interface declaring a matching method signature. A
// super-interface's declaration is collected even when a sub-interface
// also declares the method; overridden declarations are not filtered out.
func maximallySpecific(receiverClass *classloader.ClassObject, methodName string, methodType descriptor.MethodType) []candidate {
	seen := map[*classloader.ClassObject]bool{}
	var out []candidate

	var walk func(iface *classloader.ClassObject)
	walk = func(iface *classloader.ClassObject) {
		if iface == nil || seen[iface] {
			return
		}
		seen[iface] = true
		if m := iface.FindDeclaredMethod(methodName, methodType); m != nil {
			out = append(out, candidate{iface: iface, method: m})
		}
		for _, super := range iface.Interfaces {
			walk(super)
		}
	}

	if receiverClass.IsInterface {
		walk(receiverClass)
	}
	for c := receiverClass; c != nil; c = c.SuperClass {
		for _, iface := range c.Interfaces {
			walk(iface)
		}
	}
	return out
}
