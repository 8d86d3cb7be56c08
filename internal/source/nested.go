package source

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/canonpl-dev/canonpl/internal/model"
)

// MonthCell is a leaf value object in the nested document:
// {"current": ..., "percent": ...}, either of which may be null.
type MonthCell struct {
	Current decimal.NullDecimal
	Percent decimal.NullDecimal
}

// MonthlyValue converts a cell to the canonical MonthlyValue, treating
// null figures as zero.
func (c MonthCell) MonthlyValue() model.MonthlyValue {
	var v model.MonthlyValue
	if c.Current.Valid {
		v.Value = c.Current.Decimal
	}
	if c.Percent.Valid {
		v.PercentOfRevenue = c.Percent.Decimal
	}
	return v
}

// Value is the classified payload under one key of a Node: exactly one
// of Cell or Child is set. Classification happens once at parse time
// so the walk heuristic stays auditable.
type Value struct {
	Cell  *MonthCell
	Child *Node
}

// Node is one object in the nested document with key insertion order
// preserved. Keys holds the cell and child keys in document order;
// Current/Percent carry direct scalar figures when the object mixes
// its own value with children.
type Node struct {
	Keys    []string
	Fields  map[string]Value
	Current decimal.NullDecimal
	Percent decimal.NullDecimal
}

// Cell returns the month cell under key, if present.
func (n *Node) Cell(key string) (*MonthCell, bool) {
	if n == nil {
		return nil, false
	}
	v, ok := n.Fields[key]
	if !ok || v.Cell == nil {
		return nil, false
	}
	return v.Cell, true
}

// Child returns the child node under key, if present.
func (n *Node) Child(key string) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	v, ok := n.Fields[key]
	if !ok || v.Child == nil {
		return nil, false
	}
	return v.Child, true
}

// IsTotalKey reports whether a nested-document key names a synthetic
// total/subtotal row.
func IsTotalKey(key string) bool {
	return key == "Total" || strings.HasPrefix(key, "Total for")
}

// NestedDocument is the nested (October) source document.
type NestedDocument struct {
	Sections *Node
}

// Section returns a top-level section node by name.
func (d *NestedDocument) Section(name string) (*Node, bool) {
	return d.Sections.Child(name)
}

// rawObj is the intermediate parse of one JSON object, before cells
// and children are classified.
type rawObj struct {
	order   []string
	scalars map[string]decimal.NullDecimal
	objects map[string]*rawObj
}

// DecodeNested reads a nested source document, preserving key order.
// Fails with ErrMalformedDocument when the top-level "sections" key is
// absent.
func DecodeNested(r io.Reader) (*NestedDocument, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("parsing nested document: %w", err)
	}
	root, err := parseBody(dec)
	if err != nil {
		return nil, fmt.Errorf("parsing nested document: %w", err)
	}

	sections, ok := root.objects["sections"]
	if !ok {
		return nil, fmt.Errorf("nested document has no sections key: %w", ErrMalformedDocument)
	}
	return &NestedDocument{Sections: classify(sections)}, nil
}

// LoadNested reads a nested source document from disk.
func LoadNested(path string) (*NestedDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening nested document: %w", err)
	}
	defer f.Close()

	doc, err := DecodeNested(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// parseBody consumes the members and closing brace of an object whose
// opening brace has already been read.
func parseBody(dec *json.Decoder) (*rawObj, error) {
	obj := &rawObj{
		scalars: make(map[string]decimal.NullDecimal),
		objects: make(map[string]*rawObj),
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}

		tok, err = dec.Token()
		if err != nil {
			return nil, err
		}
		switch v := tok.(type) {
		case json.Delim:
			if v != '{' {
				return nil, fmt.Errorf("key %q: unexpected %v", key, v)
			}
			child, err := parseBody(dec)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			obj.order = append(obj.order, key)
			obj.objects[key] = child
		case json.Number:
			d, err := decimal.NewFromString(v.String())
			if err != nil {
				return nil, fmt.Errorf("key %q: parsing number %q: %w", key, v, err)
			}
			obj.order = append(obj.order, key)
			obj.scalars[key] = decimal.NewNullDecimal(d)
		case nil:
			obj.order = append(obj.order, key)
			obj.scalars[key] = decimal.NullDecimal{}
		default:
			return nil, fmt.Errorf("key %q: unexpected value %v", key, tok)
		}
	}
	// Closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

// isCell reports whether a parsed object is a month cell: scalar-only
// with every key one of current/percent.
func isCell(obj *rawObj) bool {
	if len(obj.order) == 0 || len(obj.objects) > 0 {
		return false
	}
	for _, k := range obj.order {
		if k != "current" && k != "percent" {
			return false
		}
	}
	return true
}

// classify converts a parsed object into a Node, tagging each value as
// a month cell or a child node exactly once.
func classify(obj *rawObj) *Node {
	n := &Node{Fields: make(map[string]Value)}
	n.Current = obj.scalars["current"]
	n.Percent = obj.scalars["percent"]

	for _, key := range obj.order {
		sub, ok := obj.objects[key]
		if !ok {
			continue // direct scalar, already captured above
		}
		if isCell(sub) {
			n.Keys = append(n.Keys, key)
			n.Fields[key] = Value{Cell: &MonthCell{
				Current: sub.scalars["current"],
				Percent: sub.scalars["percent"],
			}}
			continue
		}
		n.Keys = append(n.Keys, key)
		n.Fields[key] = Value{Child: classify(sub)}
	}
	return n
}
