package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/zephyrtronium/spectre"
)

func main() {
	log.SetFlags(0)
	var (
		inname, cfgname string
		with            [][2]string
		echo            bool
		prec            int
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "program file to run, or - for stdin (default REPL if no args given)")
	flag.StringVar(&cfgname, "config", "", "YAML configuration file")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.IntVar(&prec, "p", 64, "precision of exp, ln, and log in bits")
	flag.BoolVar(&echo, "echo", false, "print tokens and parse trees")
	flag.Parse()

	cfg := defaultConfig()
	if cfgname != "" {
		c, err := loadConfig(cfgname)
		if err != nil {
			log.Fatal(err)
		}
		cfg = c
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "p":
			cfg.Prec = prec
		case "echo":
			cfg.Echo = echo
		}
	})
	cfg.Given = append(cfg.Given, with...)
	if cfg.Prec <= 0 {
		log.Fatalf("precision (%d) must be positive", cfg.Prec)
	}

	ip := spectre.NewInterpreter(spectre.Prec(uint(cfg.Prec)), spectre.Output(os.Stdout))
	for _, d := range cfg.Given {
		nm, vl := d[0], d[1]
		r, err := ip.RunString(vl)
		if err != nil {
			log.Fatalf("setting %s: %v", nm, err)
		}
		ip.Set(nm, r)
	}

	switch {
	case inname != "":
		src, err := readfile(inname)
		if err != nil {
			log.Fatal(err)
		}
		runOrDie(ip, inname, src, cfg.Echo)
	case flag.NArg() > 0:
		for i, arg := range flag.Args() {
			runOrDie(ip, fmt.Sprintf("arg %d", i+1), arg, cfg.Echo)
		}
	case interactive():
		if err := repl(ip, cfg); err != nil {
			log.Fatal(err)
		}
	default:
		src, err := readfile("-")
		if err != nil {
			log.Fatal(err)
		}
		runOrDie(ip, "stdin", src, cfg.Echo)
	}
}

// runOrDie runs a whole program and prints its value. Any error ends the
// process.
func runOrDie(ip *spectre.Interpreter, name, src string, echo bool) {
	r, err := run(ip, os.Stdout, src, echo)
	if err != nil {
		var b strings.Builder
		report(&b, name, src, err)
		log.Fatal(strings.TrimSuffix(b.String(), "\n"))
	}
	fmt.Println(r)
}

// run lexes, parses, and evaluates src. If echo is set, it writes the tokens
// and the parse tree to w first.
func run(ip *spectre.Interpreter, w io.Writer, src string, echo bool) (spectre.Value, error) {
	toks, err := spectre.Lex(src)
	if err != nil {
		return spectre.Value{}, err
	}
	if echo {
		s := make([]string, len(toks))
		for i, t := range toks {
			s[i] = t.String()
		}
		fmt.Fprintln(w, "tokens:", strings.Join(s, " "))
	}
	p, err := spectre.Parse(toks)
	if err != nil {
		return spectre.Value{}, err
	}
	if echo {
		fmt.Fprintln(w, "tree:", p)
	}
	return ip.Run(p)
}

func readfile(name string) (string, error) {
	f := os.Stdin
	if name != "-" {
		var err error
		f, err = os.Open(name)
		if err != nil {
			return "", err
		}
		defer f.Close()
	}
	b, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// interactive reports whether stdin is a terminal.
func interactive() bool {
	st, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return st.Mode()&os.ModeCharDevice != 0
}
