// Command lazyjitdump is a small diagnostic tool over the descriptor
// and stub-mangling grammars: parse a descriptor, mangle a
// call/field/class-object request, or demangle a stub symbol back into
// its structured request, and print the result.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/lazyjit/lazyjit/internal/descriptor"
	"github.com/lazyjit/lazyjit/internal/mangle"
)

var useColor = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

const (
	colorReset  = "\x1b[0m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorRed    = "\x1b[31m"
)

func colorize(code, s string) string {
	if !useColor {
		return s
	}
	return code + s + colorReset
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", colorize(colorRed, "internal error"), r)
			os.Exit(1)
		}
	}()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "parse":
		runParse(os.Args[2:])
	case "mangle":
		runMangle(os.Args[2:])
	case "demangle":
		runDemangle(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  lazyjitdump parse <descriptor>")
	fmt.Fprintln(os.Stderr, "  lazyjitdump mangle direct <class> <member> <methodDescriptor>")
	fmt.Fprintln(os.Stderr, "  lazyjitdump mangle virtual|interface|special <class> <member> <methodDescriptor>")
	fmt.Fprintln(os.Stderr, "  lazyjitdump mangle static <class> <member> <methodDescriptor>")
	fmt.Fprintln(os.Stderr, "  lazyjitdump mangle field <class> <member> <fieldDescriptor>")
	fmt.Fprintln(os.Stderr, "  lazyjitdump mangle classload <fieldDescriptor>")
	fmt.Fprintln(os.Stderr, "  lazyjitdump demangle <symbol>")
}

// runParse prints the structural shape descriptor.ParseFieldType or
// descriptor.ParseMethodType recovers from a field or method descriptor
// string, auto-detecting which grammar applies by whether the input
// starts with '('.
func runParse(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: lazyjitdump parse <descriptor>")
		os.Exit(1)
	}
	desc := args[0]

	if strings.HasPrefix(desc, "(") {
		mt := descriptor.ParseMethodType(desc)
		fmt.Printf("%s %s\n", colorize(colorGreen, "method"), mt.String())
		fmt.Printf("  parameters: %d\n", len(mt.Parameters))
		for i, p := range mt.Parameters {
			fmt.Printf("    %d: %s\n", i, describeFieldType(p))
		}
		fmt.Printf("  return: %s\n", describeFieldType(mt.ReturnType))
		return
	}

	ft := descriptor.ParseFieldType(desc)
	fmt.Printf("%s %s\n", colorize(colorGreen, "field"), describeFieldType(ft))
}

func describeFieldType(ft descriptor.FieldType) string {
	switch t := ft.(type) {
	case descriptor.Base:
		return fmt.Sprintf("%s (base %s)", t.String(), t.Type.String())
	case descriptor.Object:
		return fmt.Sprintf("%s (object)", t.String())
	case descriptor.Array:
		return fmt.Sprintf("%s (array, component %s)", t.String(), describeFieldType(t.Component))
	default:
		return ft.String()
	}
}

func runMangle(args []string) {
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}
	kind, rest := args[0], args[1:]

	switch kind {
	case "direct", "virtual", "interface", "special", "static":
		if len(rest) != 3 {
			fmt.Fprintf(os.Stderr, "Usage: lazyjitdump mangle %s <class> <member> <methodDescriptor>\n", kind)
			os.Exit(1)
		}
		className, memberName, descStr := rest[0], rest[1], rest[2]
		mt := descriptor.ParseMethodType(descStr)

		var symbol string
		switch kind {
		case "direct":
			symbol = mangle.DirectMethodCall(className, memberName, mt)
		case "virtual":
			symbol = mangle.MethodResolutionCall(mangle.Virtual, className, memberName, mt)
		case "interface":
			symbol = mangle.MethodResolutionCall(mangle.Interface, className, memberName, mt)
		case "special":
			symbol = mangle.MethodResolutionCall(mangle.Special, className, memberName, mt)
		case "static":
			symbol = mangle.StaticCall(className, memberName, mt)
		}
		fmt.Println(symbol)
	case "field":
		if len(rest) != 3 {
			fmt.Fprintln(os.Stderr, "Usage: lazyjitdump mangle field <class> <member> <fieldDescriptor>")
			os.Exit(1)
		}
		className, memberName, descStr := rest[0], rest[1], rest[2]
		ft := descriptor.ParseFieldType(descStr)
		fmt.Println(mangle.FieldAccess(className, memberName, ft))
	case "classload":
		if len(rest) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: lazyjitdump mangle classload <fieldDescriptor>")
			os.Exit(1)
		}
		ft := descriptor.ParseFieldType(rest[0])
		fmt.Println(mangle.ClassObjectAccess(ft))
	default:
		printUsage()
		os.Exit(1)
	}
}

func runDemangle(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: lazyjitdump demangle <symbol>")
		os.Exit(1)
	}
	symbol := args[0]

	result, ok := mangle.DemangleStubSymbolName(symbol)
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: %q is not a recognized stub symbol (direct calls have no prefix and never demangle)\n", colorize(colorYellow, "not a stub"), symbol)
		os.Exit(1)
	}

	switch r := result.(type) {
	case mangle.MethodResolutionCallResult:
		fmt.Printf("%s %s.%s:%s\n", colorize(colorGreen, resolutionName(r.Resolution)), r.ClassName, r.MethodName, r.Descriptor.String())
	case mangle.StaticCallResult:
		fmt.Printf("%s %s.%s:%s\n", colorize(colorGreen, "static-call"), r.ClassName, r.MethodName, r.Descriptor.String())
	case mangle.FieldAccessResult:
		fmt.Printf("%s %s.%s:%s\n", colorize(colorGreen, "field-access"), r.ClassName, r.FieldName, r.Descriptor.String())
	case mangle.ClassObjectLoad:
		fmt.Printf("%s %s\n", colorize(colorGreen, "class-object-load"), r.Descriptor.String())
	}
}

func resolutionName(r mangle.Resolution) string {
	switch r {
	case mangle.Virtual:
		return "virtual-call"
	case mangle.Interface:
		return "interface-call"
	case mangle.Special:
		return "special-call"
	default:
		return "unknown-resolution"
	}
}
