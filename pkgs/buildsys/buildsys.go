package buildsys

import "sort"

// Define is a preprocessor definition passed to the compiler.
// An empty Value defines the bare name.
type Define struct {
	Name  string
	Value string
}

// Request describes one static library to compile.
type Request struct {
	// Target and Host are the target triples of the produced code and of the
	// machine running the compiler.
	Target string
	Host   string

	Includes []string
	Defines  []Define

	// Flags are always passed. FlagsIfSupported are passed only when the
	// compiler accepts them.
	Flags            []string
	FlagsIfSupported []string

	// CPlusPlus compiles Files as C++.
	CPlusPlus bool
	// Warnings enables compiler warnings; false suppresses all of them.
	Warnings bool
	// OptLevel is "0".."3", "s" or "z".
	OptLevel string
	Debug    bool

	Files []string

	// OutDir receives objects and the library named LibName.
	OutDir  string
	LibName string
}

// SortedDefines returns the defines ordered by name.
func (r *Request) SortedDefines() []Define {
	defs := append([]Define(nil), r.Defines...)
	sort.SliceStable(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Toolchain compiles a Request into a static library and returns the path
// of the library file it wrote.
type Toolchain interface {
	Compile(req *Request) (string, error)
}

// Observer receives progress notifications from a Toolchain.
type Observer interface {
	Start(lib string, total int)
	Compiled(file string)
	Done(lib string)
}
