package codegenrpc

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
)

// stubPublishProto is the wire schema for publishing a materialized
// Definition to the native code-generation backend. It is compiled
// in-memory into a *desc.FileDescriptor from parsed .proto text rather
// than generated .pb.go stubs, and ships with the binary instead of
// being loaded from a user-supplied file — this core has exactly one
// RPC, so there is nothing for a caller to configure.
const stubPublishProto = `
syntax = "proto3";
package lazyjit.codegenrpc;

message DefinitionProto {
  oneof kind {
    DirectForward direct_forward = 1;
    ConstantInt constant_int = 2;
    ConstantPointer constant_pointer = 3;
    VTableDispatch vtable_dispatch = 4;
    ITableDispatch itable_dispatch = 5;
    Trap trap = 6;
    ClassObjectConstant class_object_constant = 7;
  }
}

message DirectForward { string target = 1; }
message ConstantInt { int32 bit_width = 1; int64 value = 2; }
message ConstantPointer { uint64 address = 1; }
message VTableDispatch { int32 slot = 1; }
message ITableDispatch { int32 interface_id = 1; int32 slot = 2; }
message Trap { string jvm_exception = 1; string message = 2; }
message ClassObjectConstant { string class_name = 1; }

message PublishStubRequest {
  string session_id = 1;
  string symbol = 2;
  DefinitionProto definition = 3;
}

message PublishStubResponse {
  uint64 code_address = 1;
}

service CodegenBackend {
  rpc PublishStub(PublishStubRequest) returns (PublishStubResponse);
}
`

const stubPublishProtoFile = "lazyjit_codegenrpc.proto"

var (
	fileDescriptor     *desc.FileDescriptor
	fileDescriptorOnce sync.Once
	fileDescriptorErr  error
)

// Schema parses stubPublishProto once per process and caches the
// result, the same sync.Once-guarded-singleton shape
// internal/classloader's bootstrap primitives use. Exported so
// internal/stubstore can reuse the same DefinitionProto wire shape for
// its persisted cache.
func Schema() (*desc.FileDescriptor, error) {
	fileDescriptorOnce.Do(func() {
		parser := protoparse.Parser{
			Accessor: func(filename string) (io.ReadCloser, error) {
				if filename != stubPublishProtoFile {
					return nil, fmt.Errorf("unknown file: %s", filename)
				}
				return io.NopCloser(strings.NewReader(stubPublishProto)), nil
			},
		}
		fds, err := parser.ParseFiles(stubPublishProtoFile)
		if err != nil {
			fileDescriptorErr = err
			return
		}
		fileDescriptor = fds[0]
	})
	return fileDescriptor, fileDescriptorErr
}
