package classloader

import (
	"testing"

	"github.com/lazyjit/lazyjit/internal/descriptor"
)

func TestBootstrapPrimitiveAlwaysLoaded(t *testing.T) {
	for _, d := range []string{"Z", "B", "C", "S", "I", "J", "F", "D", "V"} {
		co := BootstrapPrimitive(d)
		if co == nil {
			t.Fatalf("BootstrapPrimitive(%q) = nil", d)
		}
		if co.InitState != Initialized {
			t.Errorf("BootstrapPrimitive(%q).InitState = %v, want Initialized", d, co.InitState)
		}
	}
	if BootstrapPrimitive("Ljava/lang/Object;") != nil {
		t.Errorf("BootstrapPrimitive of an object type should be nil")
	}
}

func TestFindDeclaredMethod(t *testing.T) {
	mt := descriptor.ParseMethodType("()V")
	target := &Method{Name: "run", Descriptor: mt}
	other := &Method{Name: "run", Descriptor: descriptor.ParseMethodType("(I)V")}
	co := &ClassObject{Methods: []*Method{other, target}}

	if got := co.FindDeclaredMethod("run", mt); got != target {
		t.Fatalf("FindDeclaredMethod returned %v, want the ()V overload", got)
	}
	if got := co.FindDeclaredMethod("missing", mt); got != nil {
		t.Fatalf("FindDeclaredMethod(missing) = %v, want nil", got)
	}
}

func TestTrapErrorsCarryJVMExceptionNames(t *testing.T) {
	cases := []struct {
		err  TrapError
		want string
	}{
		{&NoClassDefFoundError{ClassName: "a/B"}, "java/lang/NoClassDefFoundError"},
		{&AbstractMethodError{Message: "a/B.m()V"}, "java/lang/AbstractMethodError"},
		{&NoSuchFieldError{ClassName: "a/B", FieldName: "f"}, "java/lang/NoSuchFieldError"},
		{&NoSuchMethodError{ClassName: "a/B", MethodName: "m"}, "java/lang/NoSuchMethodError"},
	}
	for _, tt := range cases {
		if got := tt.err.JVMException(); got != tt.want {
			t.Errorf("%T.JVMException() = %q, want %q", tt.err, got, tt.want)
		}
		if tt.err.Error() == "" {
			t.Errorf("%T.Error() returned empty string", tt.err)
		}
	}
}
