package internal

import (
	"io"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"github.com/goplus/luasrc/pkgs/buildsys"
)

// progress renders one bar per library being compiled.
type progress struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

var _ buildsys.Observer = (*progress)(nil)

func newProgress(w io.Writer) *progress {
	return &progress{w: w}
}

func (p *progress) Start(lib string, total int) {
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionSetDescription(lib),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (p *progress) Compiled(file string) {
	if p.bar == nil {
		return
	}
	p.bar.Describe(filepath.Base(file))
	_ = p.bar.Add(1)
}

func (p *progress) Done(lib string) {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
	p.bar = nil
}
