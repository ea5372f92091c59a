package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/zephyrtronium/spectre"
)

// report writes an error with the line of src it refers to and a caret line
// under the offending range.
func report(w io.Writer, name, src string, err error) {
	d, ok := spectre.Diagnose(err)
	if !ok {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "error: %s\n", d.Message)
	var e *spectre.EvalError
	if errors.As(err, &e) && e.Func != "" {
		// The span is in the definition of the function.
		fmt.Fprintf(w, "  in %s: %s\n", e.Func, d.Reason)
		return
	}
	if d.Span.Start > len(src) || d.Span.End > len(src) {
		fmt.Fprintf(w, "  %s\n", d.Reason)
		return
	}
	start := strings.LastIndexByte(src[:d.Span.Start], '\n') + 1
	end := strings.IndexByte(src[d.Span.Start:], '\n')
	if end < 0 {
		end = len(src)
	} else {
		end += d.Span.Start
	}
	line := strings.Count(src[:start], "\n") + 1
	col := utf8.RuneCountInString(src[start:d.Span.Start]) + 1
	stop := d.Span.End
	if stop > end {
		stop = end
	}
	width := 1
	if stop > d.Span.Start {
		width = utf8.RuneCountInString(src[d.Span.Start:stop])
	}
	num := fmt.Sprint(line)
	pad := strings.Repeat(" ", len(num))
	fmt.Fprintf(w, "%s--> %s:%d:%d\n", pad, name, line, col)
	fmt.Fprintf(w, "%s |\n", pad)
	fmt.Fprintf(w, "%s | %s\n", num, strings.TrimRight(src[start:end], "\r"))
	fmt.Fprintf(w, "%s | %s%s %s\n", pad, strings.Repeat(" ", col-1), strings.Repeat("^", width), d.Reason)
}
