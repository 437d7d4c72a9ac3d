// Package config collects package-global vocabulary constants and the
// on-disk JIT configuration; the constants live in this file, separate
// from the YAML-backed settings loader in jitconfig.go.
package config

// Mangling prefixes, collected here as string-vocabulary constants
// rather than scattered literals.
const (
	VirtualCallPrefix   = "Virtual Call to "
	InterfaceCallPrefix = "Interface Call to "
	SpecialCallPrefix   = "Special Call to "
	StaticCallPrefix    = "Static Call to "
	ClassLoadPrefix     = "Load "
)

// Base-type descriptor letters, per the JVM Specification §4.3.2.
const (
	BooleanDescriptor = "Z"
	ByteDescriptor    = "B"
	CharDescriptor    = "C"
	ShortDescriptor   = "S"
	IntDescriptor     = "I"
	LongDescriptor    = "J"
	FloatDescriptor   = "F"
	DoubleDescriptor  = "D"
	VoidDescriptor    = "V"
)

// DefaultConfigFileName is the file LoadJITConfig looks for when no
// explicit path is given.
const DefaultConfigFileName = "lazyjit.yaml"

// DefaultStubCachePath is the sqlite file internal/stubstore opens when
// JITConfig.StubCachePath is empty.
const DefaultStubCachePath = ".lazyjit/stubcache.db"

// DefaultMaterializationWorkers is the value ParseJITConfig gives
// JITConfig.MaterializationWorkers when the file leaves it unset. It is
// advisory: loader.Materializer applies no concurrency cap, and no
// other package reads it.
const DefaultMaterializationWorkers = 8
