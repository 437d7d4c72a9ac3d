package loader

import "github.com/lazyjit/lazyjit/internal/classloader"

// pointerWidth is the bit width of the pointer-sized integers this
// package hands to the IR builder: instance field offsets.
// Native code layout is out of scope; one architecture-independent
// width keeps the signatures this core emits uniform.
const pointerWidth = 64

// emitStaticGate emits the class-initializer gate ahead of a
// static operation on classObject: even when classObject is already
// loaded, initialization may not have run yet, so the gate — not a
// plain unconditional call — is what the Helper emits for every static
// call, static field read, and static field write.
func emitStaticGate(b IRBuilder, loader classloader.Loader, classObject *classloader.ClassObject) {
	ptr := b.ClassObjectPointerOf(classObject)
	b.EmitInitializerGate(ptr, func() {
		_ = loader.Initialize(classObject)
	})
}
