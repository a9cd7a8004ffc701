// Command dobquery runs predicate queries against a DOB permit-filing CSV
// export, building (or reusing) its row-offset index on first use.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/nycopendata/dobpermits/internal/catalog"
	"github.com/nycopendata/dobpermits/internal/csvfile"
	"github.com/nycopendata/dobpermits/internal/predicate"
)

const Version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "query":
		runQuery(os.Args[2:])
	case "version":
		fmt.Printf("dobquery v%s\n", Version)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`dobquery - predicate query engine for DOB permit-filing exports

Usage:
    dobquery query --csv <path> --where <json> [--limit N]
    dobquery version
    dobquery help

--where takes a JSON condition tree, e.g.:
    {"operator":"AND","children":[
        {"operator":"=","column":"status","value":"ISSUED"},
        {"operator":"RANGE","column":"borough","value":[1,3]}
    ]}
Supported operators: =, RANGE, AND, OR, NOT.`)
}

func runQuery(args []string) {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	csvPath := fs.String("csv", "", "Path to CSV file")
	whereJSON := fs.String("where", "", "JSON condition tree")
	limit := fs.Int("limit", 0, "Maximum results (0 = no limit)")
	_ = fs.Parse(args)

	if *csvPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --csv is required")
		fs.PrintDefaults()
		os.Exit(1)
	}
	if *whereJSON == "" {
		fmt.Fprintln(os.Stderr, "Error: --where is required")
		fs.PrintDefaults()
		os.Exit(1)
	}

	var cond condition
	if err := json.Unmarshal([]byte(*whereJSON), &cond); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing --where JSON: %v\n", err)
		os.Exit(1)
	}

	cat := catalog.New()
	node, err := cond.build(cat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building query: %v\n", err)
		os.Exit(1)
	}

	f, err := csvfile.Open(*csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	records, err := f.RunQuery(node)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running query: %v\n", err)
		os.Exit(1)
	}

	if *limit > 0 && len(records) > *limit {
		records = records[:*limit]
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding results: %v\n", err)
		os.Exit(1)
	}
}

// condition is the JSON shape of one predicate tree node: a leaf names a
// column and a value (or, for RANGE, a two-element [lo, hi] array); AND,
// OR, and NOT name children instead.
type condition struct {
	Operator string          `json:"operator"`
	Column   string          `json:"column,omitempty"`
	Value    json.RawMessage `json:"value,omitempty"`
	Children []condition     `json:"children,omitempty"`
}

func (c condition) build(cat *catalog.Catalog) (predicate.Node, error) {
	switch c.Operator {
	case "AND":
		children, err := c.buildChildren(cat)
		if err != nil {
			return nil, err
		}
		return predicate.NewAnd(children...), nil
	case "OR":
		children, err := c.buildChildren(cat)
		if err != nil {
			return nil, err
		}
		return predicate.NewOr(children...), nil
	case "NOT":
		if len(c.Children) != 1 {
			return nil, fmt.Errorf("NOT requires exactly one child")
		}
		child, err := c.Children[0].build(cat)
		if err != nil {
			return nil, err
		}
		return predicate.NewNot(child), nil
	case "=":
		entry, ok := cat.Lookup(c.Column)
		if !ok {
			return nil, fmt.Errorf("unknown column %q", c.Column)
		}
		lit, err := literalFor(entry.Category, c.Value)
		if err != nil {
			return nil, err
		}
		return predicate.NewMatch(cat, c.Column, lit)
	case "RANGE":
		entry, ok := cat.Lookup(c.Column)
		if !ok {
			return nil, fmt.Errorf("unknown column %q", c.Column)
		}
		var bounds [2]json.RawMessage
		if err := json.Unmarshal(c.Value, &bounds); err != nil {
			return nil, fmt.Errorf("RANGE value must be a 2-element array: %w", err)
		}
		lo, err := literalFor(entry.Category, bounds[0])
		if err != nil {
			return nil, err
		}
		hi, err := literalFor(entry.Category, bounds[1])
		if err != nil {
			return nil, err
		}
		return predicate.NewRange(cat, c.Column, lo, hi)
	default:
		return nil, fmt.Errorf("unknown operator %q", c.Operator)
	}
}

func (c condition) buildChildren(cat *catalog.Catalog) ([]predicate.Node, error) {
	nodes := make([]predicate.Node, 0, len(c.Children))
	for _, child := range c.Children {
		n, err := child.build(cat)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func literalFor(cat catalog.Category, raw json.RawMessage) (predicate.Literal, error) {
	switch cat {
	case catalog.Numeric:
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return predicate.Literal{}, fmt.Errorf("expected numeric literal: %w", err)
		}
		return predicate.Float(f), nil
	case catalog.String:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return predicate.Literal{}, fmt.Errorf("expected string literal: %w", err)
		}
		return predicate.String(s), nil
	case catalog.Boolean:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return predicate.Literal{}, fmt.Errorf("expected boolean literal: %w", err)
		}
		return predicate.Bool(b), nil
	default:
		return predicate.Literal{}, fmt.Errorf("unsupported column category")
	}
}
