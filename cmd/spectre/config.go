package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// config is the contents of a configuration file. Command-line flags override
// it.
type config struct {
	// Prec is the precision of arbitrary-precision functions in bits.
	Prec int `yaml:"prec"`
	// History is the REPL history file. Empty disables history.
	History string `yaml:"history"`
	// Echo prints tokens and parse trees before evaluating.
	Echo bool `yaml:"echo"`
	// Given is variable definitions applied in order before running.
	Given givenList `yaml:"given"`
}

func defaultConfig() config {
	c := config{Prec: 64}
	if home, err := os.UserHomeDir(); err == nil {
		c.History = filepath.Join(home, ".spectre_history")
	}
	return c
}

func loadConfig(path string) (config, error) {
	c := defaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			// An empty file is the default configuration.
			return c, nil
		}
		return c, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if strings.HasPrefix(c.History, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			c.History = filepath.Join(home, c.History[2:])
		}
	}
	return c, nil
}

// givenList is an ordered mapping of names to the source of their values.
type givenList [][2]string

func (g *givenList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		*g = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("config: given must be a mapping")
	}
	items := make(givenList, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var name, src string
		if err := value.Content[i].Decode(&name); err != nil {
			return err
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("config: given must not use empty names")
		}
		if err := value.Content[i+1].Decode(&src); err != nil {
			return fmt.Errorf("config: given %q: %w", name, err)
		}
		items = append(items, [2]string{name, src})
	}
	*g = items
	return nil
}
