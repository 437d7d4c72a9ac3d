// Package codegenrpc implements the native code-generation backend
// collaborator as a gRPC service: this core's job ends at producing a
// loader.Definition, and everything past that — turning a Definition
// into real machine code and publishing it at a stub's address — is
// explicitly out of scope. codegenrpc.Client is one way to satisfy that
// boundary, over the wire, using dynamic protobuf messages built from
// an in-memory schema rather than generated .pb.go stubs.
package codegenrpc

import (
	"context"
	"fmt"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/lazyjit/lazyjit/internal/classloader"
	"github.com/lazyjit/lazyjit/internal/loader"
)

// Client publishes materialized Definitions to a codegen backend over
// gRPC, using dynamic protobuf messages built from the schema compiled
// in schema.go — no generated .pb.go stubs.
type Client struct {
	conn *grpc.ClientConn
}

// Dial connects to the codegen backend at target (see
// config.JITConfig.CodegenAddr).
func Dial(target string) (*Client, error) {
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("codegenrpc: dialing %s: %w", target, err)
	}
	return &Client{conn: conn}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error { return c.conn.Close() }

// PublishStub sends the materialized definition for symbol to the
// backend and returns the address the backend published it at.
// sessionID identifies the compilation unit (pkg/session) for
// traceability on the backend side.
func (c *Client) PublishStub(ctx context.Context, sessionID, symbol string, definition loader.Definition) (uint64, error) {
	fd, err := Schema()
	if err != nil {
		return 0, fmt.Errorf("codegenrpc: loading schema: %w", err)
	}

	defMsg, err := DefinitionToMessage(fd, definition)
	if err != nil {
		return 0, fmt.Errorf("codegenrpc: encoding definition for %s: %w", symbol, err)
	}

	reqMd := fd.FindMessage("lazyjit.codegenrpc.PublishStubRequest")
	req := dynamic.NewMessage(reqMd)
	req.SetFieldByName("session_id", sessionID)
	req.SetFieldByName("symbol", symbol)
	req.SetFieldByName("definition", defMsg)

	respMd := fd.FindMessage("lazyjit.codegenrpc.PublishStubResponse")
	resp := dynamic.NewMessage(respMd)

	if err := c.conn.Invoke(ctx, "/lazyjit.codegenrpc.CodegenBackend/PublishStub", req, resp); err != nil {
		return 0, fmt.Errorf("codegenrpc: PublishStub(%s): %w", symbol, err)
	}

	addr, err := resp.TryGetFieldByName("code_address")
	if err != nil {
		return 0, fmt.Errorf("codegenrpc: reading code_address: %w", err)
	}
	return addr.(uint64), nil
}

// DefinitionToMessage encodes definition as a DefinitionProto dynamic
// message, picking the oneof field that matches its concrete Go type.
func DefinitionToMessage(fd *desc.FileDescriptor, definition loader.Definition) (*dynamic.Message, error) {
	defMd := fd.FindMessage("lazyjit.codegenrpc.DefinitionProto")
	defMsg := dynamic.NewMessage(defMd)

	switch d := definition.(type) {
	case loader.DirectForward:
		m := dynamic.NewMessage(fd.FindMessage("lazyjit.codegenrpc.DirectForward"))
		m.SetFieldByName("target", d.Target)
		defMsg.SetFieldByName("direct_forward", m)
	case loader.ConstantInt:
		m := dynamic.NewMessage(fd.FindMessage("lazyjit.codegenrpc.ConstantInt"))
		m.SetFieldByName("bit_width", int32(d.BitWidth))
		m.SetFieldByName("value", d.Value)
		defMsg.SetFieldByName("constant_int", m)
	case loader.ConstantPointer:
		m := dynamic.NewMessage(fd.FindMessage("lazyjit.codegenrpc.ConstantPointer"))
		m.SetFieldByName("address", uint64(d.Address))
		defMsg.SetFieldByName("constant_pointer", m)
	case loader.VTableDispatch:
		m := dynamic.NewMessage(fd.FindMessage("lazyjit.codegenrpc.VTableDispatch"))
		m.SetFieldByName("slot", int32(d.Slot))
		defMsg.SetFieldByName("vtable_dispatch", m)
	case loader.ITableDispatch:
		m := dynamic.NewMessage(fd.FindMessage("lazyjit.codegenrpc.ITableDispatch"))
		m.SetFieldByName("interface_id", int32(d.InterfaceID))
		m.SetFieldByName("slot", int32(d.Slot))
		defMsg.SetFieldByName("itable_dispatch", m)
	case loader.Trap:
		m := dynamic.NewMessage(fd.FindMessage("lazyjit.codegenrpc.Trap"))
		m.SetFieldByName("jvm_exception", d.Exception.JVMException())
		m.SetFieldByName("message", d.Exception.Error())
		defMsg.SetFieldByName("trap", m)
	case loader.ClassObjectConstant:
		m := dynamic.NewMessage(fd.FindMessage("lazyjit.codegenrpc.ClassObjectConstant"))
		m.SetFieldByName("class_name", d.ClassObject.Name)
		defMsg.SetFieldByName("class_object_constant", m)
	default:
		return nil, fmt.Errorf("codegenrpc: unhandled Definition type %T", definition)
	}

	return defMsg, nil
}

// DefinitionFromMessage decodes a DefinitionProto dynamic message back
// into a loader.Definition, the inverse of DefinitionToMessage. Used by
// internal/stubstore to reload a persisted materialization answer
// without re-running class loading and method resolution.
func DefinitionFromMessage(fd *desc.FileDescriptor, defMsg *dynamic.Message) (loader.Definition, error) {
	if v, err := defMsg.TryGetFieldByName("direct_forward"); err == nil {
		if m, ok := v.(*dynamic.Message); ok && m != nil {
			target, _ := m.TryGetFieldByName("target")
			return loader.DirectForward{Target: target.(string)}, nil
		}
	}
	if v, err := defMsg.TryGetFieldByName("constant_int"); err == nil {
		if m, ok := v.(*dynamic.Message); ok && m != nil {
			width, _ := m.TryGetFieldByName("bit_width")
			value, _ := m.TryGetFieldByName("value")
			return loader.ConstantInt{BitWidth: int(width.(int32)), Value: value.(int64)}, nil
		}
	}
	if v, err := defMsg.TryGetFieldByName("constant_pointer"); err == nil {
		if m, ok := v.(*dynamic.Message); ok && m != nil {
			addr, _ := m.TryGetFieldByName("address")
			return loader.ConstantPointer{Address: uintptr(addr.(uint64))}, nil
		}
	}
	if v, err := defMsg.TryGetFieldByName("vtable_dispatch"); err == nil {
		if m, ok := v.(*dynamic.Message); ok && m != nil {
			slot, _ := m.TryGetFieldByName("slot")
			return loader.VTableDispatch{Slot: int(slot.(int32))}, nil
		}
	}
	if v, err := defMsg.TryGetFieldByName("itable_dispatch"); err == nil {
		if m, ok := v.(*dynamic.Message); ok && m != nil {
			ifaceID, _ := m.TryGetFieldByName("interface_id")
			slot, _ := m.TryGetFieldByName("slot")
			return loader.ITableDispatch{InterfaceID: int(ifaceID.(int32)), Slot: int(slot.(int32))}, nil
		}
	}
	if v, err := defMsg.TryGetFieldByName("trap"); err == nil {
		if m, ok := v.(*dynamic.Message); ok && m != nil {
			jvmException, _ := m.TryGetFieldByName("jvm_exception")
			message, _ := m.TryGetFieldByName("message")
			return loader.Trap{Exception: &wireTrapError{exception: jvmException.(string), message: message.(string)}}, nil
		}
	}
	if v, err := defMsg.TryGetFieldByName("class_object_constant"); err == nil {
		if m, ok := v.(*dynamic.Message); ok && m != nil {
			className, _ := m.TryGetFieldByName("class_name")
			return loader.ClassObjectConstant{ClassObject: &classloader.ClassObject{Name: className.(string)}}, nil
		}
	}

	return nil, fmt.Errorf("codegenrpc: DefinitionProto has no recognized oneof branch set")
}

// wireTrapError reconstitutes a classloader.TrapError from a persisted
// or wire-transmitted (exception name, message) pair, when the original
// concrete *NoClassDefFoundError/etc. Go type can no longer be
// recovered — only its JVM-visible shape can.
type wireTrapError struct {
	exception string
	message   string
}

func (e *wireTrapError) Error() string        { return e.message }
func (e *wireTrapError) JVMException() string { return e.exception }
