package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// indenter prefixes every line written to it with the current
// indentation before copying it to w, or to stdout if w is nil.
type indenter struct {
	w       io.Writer
	prefix  string
	midLine bool
}

func (i *indenter) out() io.Writer {
	if i.w == nil {
		return os.Stdout
	}
	return i.w
}

func (i *indenter) f(msg string, args ...any) {
	fmt.Fprintf(i, msg+"\n", args...)
}

func (i *indenter) Write(bs []byte) (int, error) {
	ret := 0
	for len(bs) > 0 {
		if !i.midLine {
			i.midLine = true
			if _, err := io.WriteString(i.out(), i.prefix); err != nil {
				return ret, err
			}
		}

		var wr []byte
		idx := bytes.IndexByte(bs, '\n')
		if idx >= 0 {
			i.midLine = false
			wr, bs = bs[:idx+1], bs[idx+1:]
		} else {
			wr, bs = bs, nil
		}

		n, err := i.out().Write(wr)
		ret += n
		if err != nil {
			return ret, err
		}
	}
	return ret, nil
}

func (i *indenter) indent(n int) {
	i.prefix = strings.Repeat("  ", n)
}
