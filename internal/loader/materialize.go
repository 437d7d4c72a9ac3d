package loader

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Materializer guarantees the at-most-once property stub materialization
// requires: concurrent first-references to the same symbol must
// serialize so only one definition wins. A real JIT compile-callback
// manager would already serialize invocations of one symbol's callback;
// this type makes that guarantee explicit and testable in Go terms,
// generalizing sync.Once from one singleton to one flight per symbol.
type Materializer struct {
	flights singleflight.Group
	done    sync.Map // symbol -> Definition
}

// NewMaterializer returns a ready-to-use Materializer.
func NewMaterializer() *Materializer {
	return &Materializer{}
}

// Once returns a closure suitable for IRBuilder.Call's materialize
// parameter: calling it computes compute() at most once per symbol,
// even if multiple native threads first-reference symbol concurrently;
// late arrivals block until the first caller's compute() returns and
// then observe the same Definition.
func (m *Materializer) Once(symbol string, compute func() Definition) func() Definition {
	return func() Definition {
		if d, ok := m.done.Load(symbol); ok {
			return d.(Definition)
		}
		v, _, _ := m.flights.Do(symbol, func() (any, error) {
			if d, ok := m.done.Load(symbol); ok {
				return d, nil
			}
			d := compute()
			m.done.Store(symbol, d)
			return d, nil
		})
		return v.(Definition)
	}
}
