// Package predicate implements the compositional boolean predicate tree
// evaluated against one CSV row at a time: Match, Range, And, Or, and Not
// nodes sharing a single Evaluate(row []byte) bool operation. Leaves cache
// their resolved column index and category at construction, so Evaluate
// never touches the column catalog.
package predicate

import (
	"errors"
	"fmt"

	"github.com/nycopendata/dobpermits/internal/catalog"
	"github.com/nycopendata/dobpermits/internal/tokenize"
)

// Construction-time errors. These are the only errors the predicate layer
// produces; evaluation itself never fails and degrades gracefully instead:
// an out-of-range column reads as false, a bad numeric field as zero, a
// malformed boolean as false.
var (
	ErrUnknownColumn            = errors.New("predicate: unknown column")
	ErrLiteralTypeMismatch      = errors.New("predicate: literal type does not match column category")
	ErrUnsupportedRangeCategory = errors.New("predicate: range is not supported on boolean columns")
)

// Node is any predicate tree node. Each call to Evaluate re-tokenizes the
// row for the leaves it touches — a leaf's result does not depend on
// evaluation order, only on the row bytes and the leaf's own fields.
type Node interface {
	Evaluate(row []byte) bool
}

type matchNode struct {
	columnIndex int
	category    catalog.Category
	literal     Literal
}

type rangeNode struct {
	columnIndex int
	category    catalog.Category
	lo, hi      Literal
}

type andNode struct{ children []Node }
type orNode struct{ children []Node }
type notNode struct{ child Node }

// NewMatch builds an equality leaf: column == lit. The column must be
// known to cat and lit must be compatible with the column's category, or
// construction fails fast.
func NewMatch(cat *catalog.Catalog, column string, lit Literal) (Node, error) {
	entry, ok := cat.Lookup(column)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	if !literalMatchesCategory(lit, entry.Category) {
		return nil, fmt.Errorf("%w: column %q is %v, literal is not", ErrLiteralTypeMismatch, column, entry.Category)
	}
	return &matchNode{columnIndex: entry.Index, category: entry.Category, literal: lit}, nil
}

// NewRange builds a bounds leaf: lo <= column <= hi. Range is not defined
// over Boolean columns.
func NewRange(cat *catalog.Catalog, column string, lo, hi Literal) (Node, error) {
	entry, ok := cat.Lookup(column)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	if entry.Category == catalog.Boolean {
		return nil, fmt.Errorf("%w: column %q", ErrUnsupportedRangeCategory, column)
	}
	if !literalMatchesCategory(lo, entry.Category) || !literalMatchesCategory(hi, entry.Category) {
		return nil, fmt.Errorf("%w: column %q is %v, bound literal is not", ErrLiteralTypeMismatch, column, entry.Category)
	}
	return &rangeNode{columnIndex: entry.Index, category: entry.Category, lo: lo, hi: hi}, nil
}

// NewAnd builds a conjunction. An empty And evaluates to false — by
// design, an empty conjunction selects nothing rather than accidentally
// returning the full table.
func NewAnd(children ...Node) Node { return &andNode{children: children} }

// NewOr builds a disjunction. An empty Or also evaluates to false.
func NewOr(children ...Node) Node { return &orNode{children: children} }

// NewNot negates child.
func NewNot(child Node) Node { return &notNode{child: child} }

func (n *matchNode) Evaluate(row []byte) bool {
	fields := tokenize.Fields(row, nil)
	if n.columnIndex >= len(fields) {
		return false
	}
	field := fields[n.columnIndex]

	switch n.category {
	case catalog.Numeric:
		return equalNumeric(field, n.literal)
	case catalog.String:
		return equalString(field, n.literal)
	case catalog.Boolean:
		return equalBoolean(field, n.literal)
	default:
		return false
	}
}

func (n *rangeNode) Evaluate(row []byte) bool {
	fields := tokenize.Fields(row, nil)
	if n.columnIndex >= len(fields) {
		return false
	}
	field := fields[n.columnIndex]

	switch n.category {
	case catalog.Numeric:
		return inRangeNumeric(field, n.lo, n.hi)
	case catalog.String:
		return inRangeString(field, n.lo, n.hi)
	default:
		return false
	}
}

func (n *andNode) Evaluate(row []byte) bool {
	if len(n.children) == 0 {
		return false
	}
	for _, child := range n.children {
		if !child.Evaluate(row) {
			return false
		}
	}
	return true
}

func (n *orNode) Evaluate(row []byte) bool {
	if len(n.children) == 0 {
		return false
	}
	for _, child := range n.children {
		if child.Evaluate(row) {
			return true
		}
	}
	return false
}

func (n *notNode) Evaluate(row []byte) bool {
	return !n.child.Evaluate(row)
}
