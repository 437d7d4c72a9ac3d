package descriptor

import "testing"

func TestParseFieldType(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want FieldType
	}{
		{"boolean", "Z", Base{Boolean}},
		{"byte", "B", Base{Byte}},
		{"int", "I", Base{Int}},
		{"long", "J", Base{Long}},
		{"object", "Ljava/lang/String;", Object{ClassName: "java/lang/String"}},
		{"array of int", "[I", Array{Component: Base{Int}}},
		{"array of object", "[Ljava/lang/String;", Array{Component: Object{ClassName: "java/lang/String"}}},
		{"nested array", "[[I", Array{Component: Array{Component: Base{Int}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFieldType(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("ParseFieldType(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if got.String() != tt.in {
				t.Errorf("round-trip String() = %q, want %q", got.String(), tt.in)
			}
		})
	}
}

func TestParseFieldTypeRejectsVoid(t *testing.T) {
	for _, in := range []string{"V", "[V"} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("ParseFieldType(%q) did not panic", in)
				}
			}()
			ParseFieldType(in)
		}()
	}
}

func TestParseMethodType(t *testing.T) {
	mt := ParseMethodType("([ILjava/lang/String;)V")
	want := MethodType{
		Parameters: []FieldType{
			Array{Component: Base{Int}},
			Object{ClassName: "java/lang/String"},
		},
		ReturnType: Base{Void},
	}
	if !mt.Equal(want) {
		t.Errorf("ParseMethodType = %+v, want %+v", mt, want)
	}
	if mt.String() != "([ILjava/lang/String;)V" {
		t.Errorf("round-trip String() = %q", mt.String())
	}
}

func TestParseMethodTypeNoArgs(t *testing.T) {
	mt := ParseMethodType("()Ljava/lang/String;")
	if len(mt.Parameters) != 0 {
		t.Errorf("expected no parameters, got %v", mt.Parameters)
	}
	if !mt.ReturnType.Equal(Object{ClassName: "java/lang/String"}) {
		t.Errorf("unexpected return type %v", mt.ReturnType)
	}
}

func TestBaseTypeClassification(t *testing.T) {
	integer := map[BaseType]bool{
		Boolean: true, Byte: true, Char: true, Short: true, Int: true, Long: true,
		Float: false, Double: false, Void: false,
	}
	for bt, want := range integer {
		if got := bt.IsInteger(); got != want {
			t.Errorf("%v.IsInteger() = %v, want %v", bt, got, want)
		}
	}

	unsigned := map[BaseType]bool{
		Char: true, Boolean: true,
		Byte: false, Short: false, Int: false, Long: false, Float: false, Double: false, Void: false,
	}
	for bt, want := range unsigned {
		if got := bt.IsUnsigned(); got != want {
			t.Errorf("%v.IsUnsigned() = %v, want %v", bt, got, want)
		}
	}
}

func TestIsReferenceDescriptor(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Ljava/lang/String;", true},
		{"[I", true},
		{"[Ljava/lang/Object;", true},
		{"I", false},
		{"Z", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsReferenceDescriptor(tt.in); got != tt.want {
			t.Errorf("IsReferenceDescriptor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestArrayEqualityIsStructural(t *testing.T) {
	a := Array{Component: Array{Component: Base{Int}}}
	b := Array{Component: Array{Component: Base{Int}}}
	c := Array{Component: Array{Component: Base{Long}}}
	if !a.Equal(b) {
		t.Errorf("expected structurally equal array types to be equal")
	}
	if a.Equal(c) {
		t.Errorf("expected array types with different components to differ")
	}
}
