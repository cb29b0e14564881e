package pack

import (
	"io"

	"github.com/cheggaaa/pb/v3"

	"repo-flatten/model"
)

// Progress drives a pb bar from the flattener's Observer hooks.
type Progress struct {
	out io.Writer
	bar *pb.ProgressBar
}

func NewProgress(out io.Writer) *Progress {
	return &Progress{out: out}
}

// Observer returns hooks that start the bar once the file count is known and
// advance it per record.
func (p *Progress) Observer(next *Observer) *Observer {
	return &Observer{
		Include: next.include,
		Start: func(total int) {
			p.bar = pb.Simple.New(total)
			p.bar.SetWriter(p.out)
			p.bar.Start()
			next.start(total)
		},
		File: func(entry model.FileEntry) {
			p.bar.Increment()
			next.file(entry)
		},
	}
}

// Finish stops the bar if it was started.
func (p *Progress) Finish() {
	if p.bar != nil {
		p.bar.Finish()
		p.bar = nil
	}
}
