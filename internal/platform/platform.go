// Package platform maps a target triple and a Lua release to the
// preprocessor defines and compiler behavior needed to build it.
package platform

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/mod/semver"
)

// ErrUnsupportedTarget is returned when no platform rule matches a triple.
var ErrUnsupportedTarget = errors.New("unsupported target")

// Platform identifies the rule a triple matched.
type Platform int

const (
	Linux Platform = iota
	BSD
	Darwin
	IOS
	Windows
	Emscripten
)

var platformNames = [...]string{
	Linux:      "linux",
	BSD:        "bsd",
	Darwin:     "darwin",
	IOS:        "ios",
	Windows:    "windows",
	Emscripten: "emscripten",
}

func (p Platform) String() string {
	if p < 0 || int(p) >= len(platformNames) {
		return "unknown"
	}
	return platformNames[p]
}

// Define is a preprocessor definition. An empty Value defines the bare name.
type Define struct {
	Name  string
	Value string
}

func (d Define) String() string {
	if d.Value == "" {
		return d.Name
	}
	return d.Name + "=" + d.Value
}

// Profile is the compile configuration derived for a (triple, release) pair.
type Profile struct {
	Platform Platform
	Defines  []Define
	Flags    []string

	// CPlusPlus compiles the sources as C++ instead of C.
	CPlusPlus bool
	// Transform requests a staged copy of the sources with the public
	// headers wrapped in extern "C".
	Transform bool
	// Debug requests debug info from the compiler.
	Debug bool
}

// Has reports whether the profile defines name.
func (p *Profile) Has(name string) bool {
	for _, d := range p.Defines {
		if d.Name == name {
			return true
		}
	}
	return false
}

func (p *Profile) define(name string) {
	p.Defines = append(p.Defines, Define{Name: name})
}

// Options carries build switches that affect the profile.
type Options struct {
	Debug bool
	// UCID allows Unicode identifiers (Lua 5.4 only).
	UCID bool
}

type rule struct {
	platform Platform
	match    func(triple string) bool
}

// rules are tried in order; the first match wins.
var rules = []rule{
	{Linux, func(t string) bool { return strings.Contains(t, "linux") }},
	{BSD, func(t string) bool { return strings.HasSuffix(t, "bsd") }},
	{Darwin, func(t string) bool { return strings.Contains(t, "apple-darwin") }},
	{IOS, func(t string) bool { return strings.Contains(t, "apple-ios") }},
	{Windows, func(t string) bool { return strings.Contains(t, "windows") }},
	{Emscripten, func(t string) bool { return strings.HasSuffix(t, "emscripten") }},
}

// Match returns the platform of triple.
func Match(triple string) (Platform, bool) {
	for _, r := range rules {
		if r.match(triple) {
			return r.platform, true
		}
	}
	return 0, false
}

// Resolve computes the profile for building release (a semver string such
// as "v5.4.8") for triple.
func Resolve(triple, release string, opts Options) (*Profile, error) {
	if !semver.IsValid(release) {
		return nil, errors.Errorf("invalid Lua release %q", release)
	}
	pf, ok := Match(triple)
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedTarget, "don't know how to build Lua for %s", triple)
	}

	p := &Profile{Platform: pf}
	switch pf {
	case Linux, BSD:
		p.define("LUA_USE_LINUX")
	case Darwin:
		// 5.1 predates LUA_USE_MACOSX.
		if atLeast(release, "v5.2") {
			p.define("LUA_USE_MACOSX")
		} else {
			p.define("LUA_USE_LINUX")
		}
	case IOS:
		if atLeast(release, "v5.4") {
			p.define("LUA_USE_IOS")
		} else {
			p.define("LUA_USE_POSIX")
		}
	case Windows:
		// 5.1 predates LUA_USE_WINDOWS and detects _WIN32 itself.
		if atLeast(release, "v5.2") {
			p.define("LUA_USE_WINDOWS")
		}
	case Emscripten:
		p.define("LUA_USE_POSIX")
		// Lua errors are propagated with C++ exceptions on this backend.
		p.CPlusPlus = true
		p.Transform = true
		p.Flags = append(p.Flags, "-fexceptions")
	}

	if atLeast(release, "v5.4") {
		p.define("LUA_COMPAT_5_3")
		if opts.UCID {
			p.define("LUA_UCID")
		}
	}
	if opts.Debug {
		p.define("LUA_USE_APICHECK")
		p.Debug = true
	}
	return p, nil
}

func atLeast(release, min string) bool {
	return semver.Compare(release, min) >= 0
}
