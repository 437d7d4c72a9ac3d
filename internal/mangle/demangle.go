package mangle

import (
	"strings"

	"github.com/lazyjit/lazyjit/internal/descriptor"
)

// Demangled is the sum type recovered by DemangleStubSymbolName: one of
// FieldAccessResult, MethodResolutionCallResult, StaticCallResult, or
// ClassObjectLoad. Callers type-switch on the concrete variant, matching
// the style used throughout this module for descriptor.FieldType.
type Demangled interface {
	isDemangled()
}

// FieldAccessResult is recovered from a symbol produced by mangle.FieldAccess.
type FieldAccessResult struct {
	ClassName  string
	FieldName  string
	Descriptor descriptor.FieldType
}

func (FieldAccessResult) isDemangled() {}

// MethodResolutionCallResult is recovered from a symbol produced by
// mangle.MethodResolutionCall.
type MethodResolutionCallResult struct {
	Resolution Resolution
	ClassName  string
	MethodName string
	Descriptor descriptor.MethodType
}

func (MethodResolutionCallResult) isDemangled() {}

// StaticCallResult is recovered from a symbol produced by mangle.StaticCall.
type StaticCallResult struct {
	ClassName  string
	MethodName string
	Descriptor descriptor.MethodType
}

func (StaticCallResult) isDemangled() {}

// ClassObjectLoad is recovered from a symbol produced by
// mangle.ClassObjectAccess. Carried as a bare FieldType.
type ClassObjectLoad struct {
	Descriptor descriptor.FieldType
}

func (ClassObjectLoad) isDemangled() {}

// DemangleStubSymbolName attempts to recover the structured request
// behind symbolName. ok is false if symbolName is not the output of any
// of this package's mangle functions — in particular, direct-call
// symbols (produced by DirectMethodCall) always demangle to ok == false,
// since they are terminal and carry no distinguishing prefix.
func DemangleStubSymbolName(symbolName string) (result Demangled, ok bool) {
	switch {
	case strings.HasPrefix(symbolName, VirtualCallPrefix):
		return demangleMethodResolutionCall(Virtual, symbolName[len(VirtualCallPrefix):])
	case strings.HasPrefix(symbolName, InterfaceCallPrefix):
		return demangleMethodResolutionCall(Interface, symbolName[len(InterfaceCallPrefix):])
	case strings.HasPrefix(symbolName, SpecialCallPrefix):
		return demangleMethodResolutionCall(Special, symbolName[len(SpecialCallPrefix):])
	case strings.HasPrefix(symbolName, StaticCallPrefix):
		return demangleStaticCall(symbolName[len(StaticCallPrefix):])
	case strings.HasPrefix(symbolName, ClassLoadPrefix):
		return demangleClassObjectLoad(symbolName[len(ClassLoadPrefix):])
	default:
		return demangleFieldAccess(symbolName)
	}
}

// splitClassMember splits a "<class>.<member>:<descriptor>" body into its
// three parts. ok is false if the body does not have this shape.
func splitClassMember(body string) (className, memberName, descStr string, ok bool) {
	colon := strings.LastIndexByte(body, ':')
	if colon < 0 {
		return "", "", "", false
	}
	head, descStr := body[:colon], body[colon+1:]
	dot := strings.LastIndexByte(head, '.')
	if dot < 0 {
		return "", "", "", false
	}
	return head[:dot], head[dot+1:], descStr, true
}

func demangleMethodResolutionCall(resolution Resolution, body string) (Demangled, bool) {
	className, methodName, descStr, ok := splitClassMember(body)
	if !ok || !strings.HasPrefix(descStr, "(") {
		return nil, false
	}
	mt, ok := tryParseMethodType(descStr)
	if !ok {
		return nil, false
	}
	return MethodResolutionCallResult{
		Resolution: resolution,
		ClassName:  className,
		MethodName: methodName,
		Descriptor: mt,
	}, true
}

func demangleStaticCall(body string) (Demangled, bool) {
	className, methodName, descStr, ok := splitClassMember(body)
	if !ok || !strings.HasPrefix(descStr, "(") {
		return nil, false
	}
	mt, ok := tryParseMethodType(descStr)
	if !ok {
		return nil, false
	}
	return StaticCallResult{ClassName: className, MethodName: methodName, Descriptor: mt}, true
}

func demangleClassObjectLoad(descStr string) (Demangled, bool) {
	ft, ok := tryParseFieldType(descStr)
	if !ok {
		return nil, false
	}
	return ClassObjectLoad{Descriptor: ft}, true
}

// demangleFieldAccess handles the unprefixed grammar, which is ambiguous
// with a direct method call. The disambiguator is descriptor shape: a
// method descriptor starts with '('. Since
// direct calls are never demangled, a ':' body whose descriptor starts
// with '(' is rejected here rather than misread as a field.
func demangleFieldAccess(symbolName string) (Demangled, bool) {
	className, fieldName, descStr, ok := splitClassMember(symbolName)
	if !ok {
		return nil, false
	}
	if strings.HasPrefix(descStr, "(") {
		// Shaped like a method descriptor: this is a direct call, not a
		// field access. Direct calls are terminal and not demangled.
		return nil, false
	}
	ft, ok := tryParseFieldType(descStr)
	if !ok {
		return nil, false
	}
	return FieldAccessResult{ClassName: className, FieldName: fieldName, Descriptor: ft}, true
}

// tryParseFieldType and tryParseMethodType adapt the panicking
// descriptor parsers to the comma-ok style demangling needs: an
// attacker- or bug-controlled symbol string is not a trusted descriptor
// input, so a parse failure here is a recognized "not a stub symbol"
// rather than a programmer error.
func tryParseFieldType(s string) (ft descriptor.FieldType, ok bool) {
	defer func() {
		if recover() != nil {
			ft, ok = nil, false
		}
	}()
	return descriptor.ParseFieldType(s), true
}

func tryParseMethodType(s string) (mt descriptor.MethodType, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return descriptor.ParseMethodType(s), true
}
