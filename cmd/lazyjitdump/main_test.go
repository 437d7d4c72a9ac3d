package main

import (
	"testing"

	"github.com/lazyjit/lazyjit/internal/descriptor"
	"github.com/lazyjit/lazyjit/internal/mangle"
)

func TestDescribeFieldTypeBase(t *testing.T) {
	got := describeFieldType(descriptor.Base{Type: descriptor.Int})
	want := "I (base I)"
	if got != want {
		t.Errorf("describeFieldType(Base{Int}) = %q, want %q", got, want)
	}
}

func TestDescribeFieldTypeArray(t *testing.T) {
	got := describeFieldType(descriptor.Array{Component: descriptor.Base{Type: descriptor.Int}})
	want := "[I (array, component I (base I))"
	if got != want {
		t.Errorf("describeFieldType(Array) = %q, want %q", got, want)
	}
}

func TestResolutionName(t *testing.T) {
	cases := []struct {
		resolution mangle.Resolution
		want       string
	}{
		{mangle.Virtual, "virtual-call"},
		{mangle.Interface, "interface-call"},
		{mangle.Special, "special-call"},
	}
	for _, c := range cases {
		if got := resolutionName(c.resolution); got != c.want {
			t.Errorf("resolutionName(%v) = %q, want %q", c.resolution, got, c.want)
		}
	}
}
