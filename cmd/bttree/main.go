// Command bttree loads a behavior tree DSL source file and ticks it
// against a blackboard seeded from repeated "key=value" arguments,
// printing the resulting status on each tick until the tree settles.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-bttree/bttree/internal/bttree/dsl"
	"github.com/go-bttree/bttree/internal/bttree/engine"
	"github.com/go-bttree/bttree/internal/bttree/load"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "bttree:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: bttree <source.bt> [key=value ...]")
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	source, err := dsl.Parse(string(src))
	if err != nil {
		return fmt.Errorf("parsing: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	tree, err := load.Load(source, engine.NewDefaultRegistry(), load.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("loading: %w", err)
	}
	if tree.Empty() {
		return fmt.Errorf("no tree named %q in %s", "main", args[0])
	}

	bb := engine.NewBlackboard()
	for _, kv := range args[1:] {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("invalid key=value argument: %q", kv)
		}
		bb.Set(k, v)
	}

	for {
		status, err := tree.Tick(bb)
		if err != nil {
			return fmt.Errorf("tick: %w", err)
		}
		fmt.Println(status)
		if status != engine.Running {
			return nil
		}
	}
}
