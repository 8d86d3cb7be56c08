// Package canonical assembles the two source documents into a single
// hierarchical chart of accounts and provides the lookup and
// flattening accessors the report generators consume.
package canonical

import (
	"strings"

	"github.com/canonpl-dev/canonpl/internal/model"
	"github.com/canonpl-dev/canonpl/internal/months"
	"github.com/canonpl-dev/canonpl/internal/normalize"
	"github.com/canonpl-dev/canonpl/internal/source"
)

// builder constructs canonical account trees from the flat and nested
// source documents.
type builder struct {
	flat *source.FlatIndex
}

// monthValue applies the month-source routing policy for one account
// node: September always comes from the flat document, October always
// from the node's own cell in the nested document, and every other
// month prefers the nested cell with a flat-document fallback. The
// two documents disagree on overlapping months; a fixed
// source-of-record per month keeps the precedence auditable.
func (b *builder) monthValue(name, code, label string, own *source.Node) model.MonthlyValue {
	switch label {
	case months.Sep:
		return b.flat.MonthValue(name, code, months.FullName(label))
	case months.Oct:
		if cell, ok := own.Cell(months.Oct); ok {
			return cell.MonthlyValue()
		}
		return model.MonthlyValue{}
	default:
		if cell, ok := own.Cell(label); ok {
			return cell.MonthlyValue()
		}
		return b.flat.MonthValue(name, code, months.FullName(label))
	}
}

// buildSection converts one level of a nested-document object into
// canonical account nodes, recursing into children. Input key order is
// preserved.
func (b *builder) buildSection(node *source.Node, depth int) []*model.Account {
	if node == nil {
		return nil
	}

	var out []*model.Account
	for _, key := range node.Keys {
		if key == "current" || key == "percent" || months.IsShortLabel(key) {
			continue
		}
		sub, _ := node.Child(key)

		isTotal := source.IsTotalKey(key)
		name := normalize.AccountName(key)
		if isTotal {
			name = "Total"
		}
		code := normalize.AccountCode(key)

		acct := &model.Account{
			ID:               normalize.ID(name),
			Name:             name,
			Code:             code,
			IndentationLevel: depth,
			IsTotal:          isTotal,
			Months:           make(map[string]model.MonthlyValue, len(months.ShortLabels)),
		}
		for _, label := range months.ShortLabels {
			acct.Months[label] = b.monthValue(name, code, label, sub)
		}

		if sub != nil {
			var childKeys []string
			for _, k := range sub.Keys {
				if k == "current" || k == "percent" || k == "Total" || months.IsShortLabel(k) {
					continue
				}
				childKeys = append(childKeys, k)
			}
			if len(childKeys) > 0 {
				acct.Children = b.buildSection(&source.Node{Keys: childKeys, Fields: sub.Fields}, depth+1)
			}
		}

		out = append(out, acct)
	}
	return out
}

// buildNestedRoot builds a section root whose children come from the
// nested document. The root's own months mix the flat document's
// September figures with the section's "Total" cells.
func (b *builder) buildNestedRoot(sectionNode *source.Node, id, name string) *model.Account {
	totalNode, _ := sectionNode.Child("Total")

	rec, ok := b.flat.Find("Total "+name, "")
	if !ok {
		rec, _ = b.flat.Find(name, "")
	}

	root := &model.Account{
		ID:               id,
		Name:             name,
		IndentationLevel: 0,
		Months:           make(map[string]model.MonthlyValue, len(months.ShortLabels)),
	}
	for _, label := range months.ShortLabels {
		root.Months[label] = rootMonthValue(rec, totalNode, label)
	}
	root.Children = b.buildSection(sectionNode, 1)
	return root
}

func rootMonthValue(rec *source.FlatAccount, totalNode *source.Node, label string) model.MonthlyValue {
	switch label {
	case months.Oct:
		if cell, ok := totalNode.Cell(months.Oct); ok {
			return cell.MonthlyValue()
		}
		return model.MonthlyValue{}
	case months.Sep:
		return flatCellValue(rec, label)
	default:
		if cell, ok := totalNode.Cell(label); ok {
			return cell.MonthlyValue()
		}
		return flatCellValue(rec, label)
	}
}

func flatCellValue(rec *source.FlatAccount, label string) model.MonthlyValue {
	if rec == nil {
		return model.MonthlyValue{}
	}
	cell, ok := rec.MonthlyData[months.FullName(label)]
	if !ok {
		return model.MonthlyValue{}
	}
	return cell.MonthlyValue()
}

// buildFromFlat reconstructs a section tree entirely from the flat
// document, for sections the nested document does not carry. Matching
// records become level-1 leaves; October is genuinely unavailable on
// this path and stays zeroed.
func (b *builder) buildFromFlat(prefix, rootID, rootName string) *model.Account {
	rec, ok := b.flat.Find("Total for "+prefix+" "+rootName, "")
	if !ok {
		rec, _ = b.flat.Find(rootName, "")
	}

	root := &model.Account{
		ID:               rootID,
		Name:             rootName,
		IndentationLevel: 0,
		Months:           make(map[string]model.MonthlyValue, len(months.ShortLabels)),
	}
	for _, label := range months.ShortLabels {
		if label == months.Oct {
			root.Months[label] = model.MonthlyValue{}
			continue
		}
		root.Months[label] = flatCellValue(rec, label)
	}

	for i := range b.flat.Accounts() {
		flatAcct := &b.flat.Accounts()[i]
		if !strings.HasPrefix(flatAcct.Account, prefix) {
			continue
		}
		name := normalize.AccountName(flatAcct.Account)
		child := &model.Account{
			ID:               normalize.ID(name),
			Name:             name,
			Code:             normalize.AccountCode(flatAcct.Account),
			IndentationLevel: 1,
			IsTotal:          strings.Contains(strings.ToLower(name), "total"),
			Months:           make(map[string]model.MonthlyValue, len(months.ShortLabels)),
		}
		for _, label := range months.ShortLabels {
			if label == months.Oct {
				child.Months[label] = model.MonthlyValue{}
				continue
			}
			child.Months[label] = flatCellValue(flatAcct, label)
		}
		root.Children = append(root.Children, child)
	}
	return root
}

// zeroSection returns a zero-valued placeholder tree. The general and
// labor sections are not modeled in either source document; the
// placeholder behavior is preserved pending a product decision.
func zeroSection(id, name string) *model.Account {
	root := &model.Account{
		ID:               id,
		Name:             name,
		IndentationLevel: 0,
		Months:           make(map[string]model.MonthlyValue, len(months.ShortLabels)),
	}
	for _, label := range months.ShortLabels {
		root.Months[label] = model.MonthlyValue{}
	}
	return root
}
