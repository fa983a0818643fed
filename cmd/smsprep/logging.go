package main

import (
	"io"
	"os"

	"github.com/baditaflorin/l"
	"github.com/mattn/go-isatty"
)

// newLogger writes human-readable logs to a terminal and JSON lines otherwise.
func newLogger(w io.Writer) (l.Logger, error) {
	return l.NewStandardFactory().CreateLogger(l.Config{
		Output:      w,
		JsonFormat:  !isTerminal(w),
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,      // 1MB buffer
		MaxFileSize: 10 * 1024 * 1024, // 10MB max file size
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
