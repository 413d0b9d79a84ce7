package platform

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func names(p *Profile) []string {
	var s []string
	for _, d := range p.Defines {
		s = append(s, d.String())
	}
	return s
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		triple    string
		release   string
		platform  Platform
		defines   []string
		transform bool
	}{
		{"linux", "x86_64-unknown-linux-gnu", "v5.3.6", Linux, []string{"LUA_USE_LINUX"}, false},
		{"linux musl", "aarch64-unknown-linux-musl", "v5.2.4", Linux, []string{"LUA_USE_LINUX"}, false},
		{"android counts as linux", "aarch64-linux-android", "v5.1.5", Linux, []string{"LUA_USE_LINUX"}, false},
		{"freebsd", "x86_64-unknown-freebsd", "v5.3.6", BSD, []string{"LUA_USE_LINUX"}, false},
		{"netbsd", "x86_64-unknown-netbsd", "v5.1.5", BSD, []string{"LUA_USE_LINUX"}, false},
		{"darwin 5.1", "x86_64-apple-darwin", "v5.1.5", Darwin, []string{"LUA_USE_LINUX"}, false},
		{"darwin coco", "aarch64-apple-darwin", "v5.1.5+coco", Darwin, []string{"LUA_USE_LINUX"}, false},
		{"darwin 5.2", "aarch64-apple-darwin", "v5.2.4", Darwin, []string{"LUA_USE_MACOSX"}, false},
		{"darwin 5.4", "aarch64-apple-darwin", "v5.4.8", Darwin, []string{"LUA_USE_MACOSX", "LUA_COMPAT_5_3"}, false},
		{"ios 5.4", "aarch64-apple-ios", "v5.4.8", IOS, []string{"LUA_USE_IOS", "LUA_COMPAT_5_3"}, false},
		{"ios 5.3", "aarch64-apple-ios", "v5.3.6", IOS, []string{"LUA_USE_POSIX"}, false},
		{"ios 5.1", "aarch64-apple-ios-sim", "v5.1.5", IOS, []string{"LUA_USE_POSIX"}, false},
		{"windows 5.4", "x86_64-pc-windows-msvc", "v5.4.8", Windows, []string{"LUA_USE_WINDOWS", "LUA_COMPAT_5_3"}, false},
		{"windows 5.3", "x86_64-pc-windows-gnu", "v5.3.6", Windows, []string{"LUA_USE_WINDOWS"}, false},
		{"windows 5.2", "i686-pc-windows-msvc", "v5.2.4", Windows, []string{"LUA_USE_WINDOWS"}, false},
		{"windows 5.1", "i686-pc-windows-msvc", "v5.1.5", Windows, nil, false},
		{"emscripten", "wasm32-unknown-emscripten", "v5.4.8", Emscripten, []string{"LUA_USE_POSIX", "LUA_COMPAT_5_3"}, true},
		{"emscripten 5.1", "wasm32-unknown-emscripten", "v5.1.5", Emscripten, []string{"LUA_USE_POSIX"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Resolve(tt.triple, tt.release, Options{})
			require.NoError(t, err)
			require.Equal(t, tt.platform, p.Platform)
			require.Equal(t, tt.defines, names(p))
			require.Equal(t, tt.transform, p.Transform)
			require.Equal(t, tt.transform, p.CPlusPlus)
			require.False(t, p.Debug)
		})
	}
}

func TestResolveFirstMatchWins(t *testing.T) {
	// "linux" is checked before the emscripten suffix.
	p, err := Resolve("wasm32-linux-emscripten", "v5.4.8", Options{})
	require.NoError(t, err)
	require.Equal(t, Linux, p.Platform)
	require.False(t, p.Transform)
}

func TestResolveEmscriptenFlags(t *testing.T) {
	p, err := Resolve("wasm32-unknown-emscripten", "v5.4.8", Options{})
	require.NoError(t, err)
	require.Equal(t, []string{"-fexceptions"}, p.Flags)
}

func TestResolveUnsupported(t *testing.T) {
	for _, triple := range []string{"", "riscv64gc-unknown-none-elf", "wasm32-unknown-unknown", "x86_64-unknown-redox"} {
		_, err := Resolve(triple, "v5.4.8", Options{})
		require.Error(t, err, triple)
		require.True(t, errors.Is(err, ErrUnsupportedTarget), triple)
		require.Contains(t, err.Error(), triple)
	}
}

func TestResolveEarliestNeverGetsLaterDefines(t *testing.T) {
	reserved := []string{"LUA_USE_MACOSX", "LUA_USE_IOS", "LUA_USE_WINDOWS", "LUA_COMPAT_5_3"}
	triples := []string{
		"x86_64-apple-darwin", "aarch64-apple-ios", "x86_64-pc-windows-msvc",
		"x86_64-pc-windows-gnu", "x86_64-unknown-linux-gnu",
	}
	for _, release := range []string{"v5.1.5", "v5.1.5+coco"} {
		for _, triple := range triples {
			p, err := Resolve(triple, release, Options{Debug: true, UCID: true})
			require.NoError(t, err)
			for _, name := range reserved {
				require.False(t, p.Has(name), "%s %s got %s", release, triple, name)
			}
		}
	}
}

func TestResolveDebug(t *testing.T) {
	p, err := Resolve("x86_64-unknown-linux-gnu", "v5.2.4", Options{Debug: true})
	require.NoError(t, err)
	require.True(t, p.Debug)
	require.Equal(t, []string{"LUA_USE_LINUX", "LUA_USE_APICHECK"}, names(p))
}

func TestResolveUCID(t *testing.T) {
	p, err := Resolve("x86_64-unknown-linux-gnu", "v5.4.8", Options{UCID: true})
	require.NoError(t, err)
	require.True(t, p.Has("LUA_UCID"))

	p, err = Resolve("x86_64-unknown-linux-gnu", "v5.3.6", Options{UCID: true})
	require.NoError(t, err)
	require.False(t, p.Has("LUA_UCID"))
}

func TestResolveInvalidRelease(t *testing.T) {
	_, err := Resolve("x86_64-unknown-linux-gnu", "5.4", Options{})
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrUnsupportedTarget))
}

func TestMatch(t *testing.T) {
	pf, ok := Match("x86_64-unknown-openbsd")
	require.True(t, ok)
	require.Equal(t, "bsd", pf.String())

	_, ok = Match("thumbv7em-none-eabihf")
	require.False(t, ok)
}
