package cc

import (
	"strings"

	"github.com/goplus/luasrc/pkgs/buildsys"
)

// msvc drives cl.exe and lib.exe. The tools are expected on PATH, e.g. from
// a Visual Studio developer prompt.
type msvc struct {
	*tools
}

func (m *msvc) compileArgs(req *buildsys.Request) []string {
	args := []string{"/nologo", "/MD"}
	switch req.OptLevel {
	case "", "0":
		args = append(args, "/Od")
	case "1", "s", "z":
		args = append(args, "/O1")
	default:
		args = append(args, "/O2")
	}
	if req.Debug {
		args = append(args, "/Z7")
	}
	if !req.Warnings {
		args = append(args, "/W0")
	}
	for _, dir := range req.Includes {
		args = append(args, "/I"+dir)
	}
	for _, d := range req.SortedDefines() {
		if d.Value == "" {
			args = append(args, "/D"+d.Name)
		} else {
			args = append(args, "/D"+d.Name+"="+d.Value)
		}
	}
	for _, flag := range req.Flags {
		switch {
		case flag == "-fexceptions":
			args = append(args, "/EHsc")
		case strings.HasPrefix(flag, "-"):
			// GNU-only flag.
		default:
			args = append(args, flag)
		}
	}
	args = append(args, m.extraFlags...)
	if req.CPlusPlus {
		args = append(args, "/TP")
	}
	return args
}

func (m *msvc) objectArgs(src, obj string) []string {
	return []string{"/c", "/Fo" + obj, src}
}

func (m *msvc) archiveArgs(lib string, objs []string) []string {
	return append([]string{"/nologo", "/OUT:" + lib}, objs...)
}

func (m *msvc) probeArgs(flag, src, obj string) []string {
	return []string{"/nologo", "/WX", flag, "/c", "/Fo" + obj, src}
}

func (m *msvc) objExt() string { return ".obj" }

func (m *msvc) libFile(name string) string { return name + ".lib" }
