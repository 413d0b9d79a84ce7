package cc

import (
	"strings"

	"github.com/goplus/luasrc/pkgs/buildsys"
)

// gnu drives gcc-compatible compilers: gcc, clang and emscripten.
type gnu struct {
	*tools
}

func (g *gnu) compileArgs(req *buildsys.Request) []string {
	var args []string
	if g.isClang() && g.cross() {
		args = append(args, "--target="+g.target)
	}
	if req.OptLevel != "" {
		args = append(args, "-O"+req.OptLevel)
	}
	if req.Debug {
		args = append(args, "-g")
	}
	args = append(args, "-ffunction-sections", "-fdata-sections")
	if g.needsPIC() {
		args = append(args, "-fPIC")
	}
	if !req.Warnings {
		args = append(args, "-w")
	}
	for _, dir := range req.Includes {
		args = append(args, "-I"+dir)
	}
	for _, d := range req.SortedDefines() {
		if d.Value == "" {
			args = append(args, "-D"+d.Name)
		} else {
			args = append(args, "-D"+d.Name+"="+d.Value)
		}
	}
	args = append(args, req.Flags...)
	args = append(args, g.extraFlags...)
	if req.CPlusPlus {
		args = append(args, "-x", "c++")
	}
	return args
}

func (g *gnu) needsPIC() bool {
	return !strings.Contains(g.target, "windows") && !strings.HasSuffix(g.target, "emscripten")
}

func (g *gnu) objectArgs(src, obj string) []string {
	return []string{"-c", "-o", obj, src}
}

func (g *gnu) archiveArgs(lib string, objs []string) []string {
	return append([]string{"crs", lib}, objs...)
}

func (g *gnu) probeArgs(flag, src, obj string) []string {
	return []string{"-Werror", flag, "-c", "-o", obj, src}
}

func (g *gnu) objExt() string { return ".o" }

func (g *gnu) libFile(name string) string { return "lib" + name + ".a" }
