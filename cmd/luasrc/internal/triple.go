package internal

import "runtime"

var tripleArch = map[string]string{
	"amd64":   "x86_64",
	"arm64":   "aarch64",
	"386":     "i686",
	"riscv64": "riscv64gc",
}

// hostTriple returns the target triple of goos/goarch, or "" if it has no
// well-known spelling.
func hostTriple(goos, goarch string) string {
	arch, ok := tripleArch[goarch]
	if !ok {
		return ""
	}
	switch goos {
	case "linux":
		return arch + "-unknown-linux-gnu"
	case "darwin":
		return arch + "-apple-darwin"
	case "windows":
		return arch + "-pc-windows-msvc"
	case "freebsd", "netbsd", "openbsd":
		return arch + "-unknown-" + goos
	}
	return ""
}

func defaultTriple() string {
	return hostTriple(runtime.GOOS, runtime.GOARCH)
}
