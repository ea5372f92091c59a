package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/zephyrtronium/spectre"
)

const prompt = "> "

// repl reads and runs lines until end of input. Errors are reported per line,
// and bindings persist across lines.
func repl(ip *spectre.Interpreter, cfg config) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if cfg.History != "" {
		if f, err := os.Open(cfg.History); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(cfg.History); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for {
		line, err := ln.Prompt(prompt)
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case errors.Is(err, io.EOF):
			fmt.Println()
			return nil
		case err != nil:
			return err
		}
		src := strings.TrimSpace(line)
		if src == "" {
			continue
		}
		ln.AppendHistory(line)
		if strings.HasPrefix(src, ":") {
			if command(ip, os.Stdout, src) {
				return nil
			}
			continue
		}
		r, err := run(ip, os.Stdout, line, cfg.Echo)
		if err != nil {
			report(os.Stderr, "input", line, err)
			continue
		}
		fmt.Println(r)
	}
}

// command runs a REPL command. It returns true if the REPL should exit.
func command(ip *spectre.Interpreter, w io.Writer, cmd string) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q":
		return true
	case ":vars":
		for _, name := range ip.Scope().Names() {
			v, _ := ip.Lookup(name)
			fmt.Fprintf(w, "%s = %v\n", name, v)
		}
	default:
		fmt.Fprintln(w, "unknown command. Type :vars to list variables or :quit to exit.")
	}
	return false
}
