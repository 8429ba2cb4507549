// Package main provides the Lattice CLI.
package main

import (
	"fmt"
	"os"

	"github.com/lattice-ml/lattice/internal/config"
	"github.com/lattice-ml/lattice/internal/graph"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("Lattice %s\n", version)
			return
		case "check":
			if len(os.Args) < 3 {
				fmt.Fprintln(os.Stderr, "usage: lattice check <config.yaml>")
				os.Exit(2)
			}
			if err := check(os.Args[2]); err != nil {
				fmt.Fprintf(os.Stderr, "lattice: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	fmt.Println("Lattice - computation-graph tracing and external operators")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version           Show version")
	fmt.Println("  check <config>    Load a graph config and validate it")
}

// check builds the configured graph and runs validation.
func check(path string) error {
	f, err := config.Load(path)
	if err != nil {
		return err
	}
	g, _, err := config.Build(f, nil)
	if err != nil {
		return err
	}
	if err := g.Validate(); err != nil {
		return err
	}
	for _, n := range g.Nodes() {
		fmt.Println(graph.Prototype(n))
	}
	fmt.Printf("%d nodes OK\n", len(g.Nodes()))
	return nil
}
