package source

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/canonpl-dev/canonpl/internal/model"
	"github.com/canonpl-dev/canonpl/internal/normalize"
)

// FlatCell is one month's figure for one flat-source account. Both
// fields may be null in the document.
type FlatCell struct {
	Current         decimal.NullDecimal `json:"current"`
	PercentOfIncome decimal.NullDecimal `json:"percent_of_income"`
}

// FlatAccount is one record in the flat source's account list.
type FlatAccount struct {
	Account     string              `json:"account"`
	MonthlyData map[string]FlatCell `json:"monthly_data"`
}

// FlatDocument is the flat (September) source document.
type FlatDocument struct {
	Metadata json.RawMessage `json:"metadata"`
	Accounts []FlatAccount   `json:"accounts"`
}

// DecodeFlat reads a flat source document, failing with
// ErrMalformedDocument when the top-level "accounts" key is absent.
func DecodeFlat(r io.Reader) (*FlatDocument, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading flat document: %w", err)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parsing flat document: %w", err)
	}
	if _, ok := probe["accounts"]; !ok {
		return nil, fmt.Errorf("flat document has no accounts key: %w", ErrMalformedDocument)
	}

	var doc FlatDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing flat document: %w", err)
	}
	return &doc, nil
}

// LoadFlat reads a flat source document from disk.
func LoadFlat(path string) (*FlatDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening flat document: %w", err)
	}
	defer f.Close()

	doc, err := DecodeFlat(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// matcher is one strategy for locating a flat record by account name
// and optional code. Strategies are tried in registration order; the
// order is the tolerance policy — the two source documents do not
// always spell account names identically, so lookups degrade from
// exact to fuzzy rather than losing data.
type matcher struct {
	name string
	find func(idx *FlatIndex, name, code string) (*FlatAccount, bool)
}

// FlatIndex provides in-memory lookup over the flat account list.
type FlatIndex struct {
	accounts []FlatAccount
	byRaw    map[string]int
	bySlug   map[string]int
	matchers []matcher
}

// NewFlatIndex builds an index over a flat document's accounts.
func NewFlatIndex(doc *FlatDocument) *FlatIndex {
	idx := &FlatIndex{
		accounts: doc.Accounts,
		byRaw:    make(map[string]int, len(doc.Accounts)),
		bySlug:   make(map[string]int, len(doc.Accounts)),
	}
	for i, a := range doc.Accounts {
		if _, seen := idx.byRaw[a.Account]; !seen {
			idx.byRaw[a.Account] = i
		}
		slug := normalize.ID(normalize.AccountName(a.Account))
		if _, seen := idx.bySlug[slug]; !seen {
			idx.bySlug[slug] = i
		}
	}
	idx.matchers = []matcher{
		{name: "exact", find: matchExact},
		{name: "code-prefix", find: matchCodePrefix},
		{name: "normalized-name", find: matchNormalized},
	}
	return idx
}

func matchExact(idx *FlatIndex, name, _ string) (*FlatAccount, bool) {
	if i, ok := idx.byRaw[name]; ok {
		return &idx.accounts[i], true
	}
	return nil, false
}

func matchCodePrefix(idx *FlatIndex, _, code string) (*FlatAccount, bool) {
	if code == "" {
		return nil, false
	}
	for i := range idx.accounts {
		if strings.HasPrefix(idx.accounts[i].Account, code) {
			return &idx.accounts[i], true
		}
	}
	return nil, false
}

func matchNormalized(idx *FlatIndex, name, _ string) (*FlatAccount, bool) {
	slug := normalize.ID(normalize.AccountName(name))
	if i, ok := idx.bySlug[slug]; ok {
		return &idx.accounts[i], true
	}
	return nil, false
}

// Find locates a flat record for an account name and optional code,
// trying each matcher strategy in order.
func (idx *FlatIndex) Find(name, code string) (*FlatAccount, bool) {
	for _, m := range idx.matchers {
		if rec, ok := m.find(idx, name, code); ok {
			return rec, true
		}
	}
	return nil, false
}

// Accounts returns the underlying flat account list in document order.
func (idx *FlatIndex) Accounts() []FlatAccount {
	return idx.accounts
}

// MonthValue returns the MonthlyValue for an account and full month
// name ("September 2025"), or the zero value when no record matches or
// the record has no data for that month.
func (idx *FlatIndex) MonthValue(name, code, fullMonth string) model.MonthlyValue {
	rec, ok := idx.Find(name, code)
	if !ok {
		return model.MonthlyValue{}
	}
	cell, ok := rec.MonthlyData[fullMonth]
	if !ok {
		return model.MonthlyValue{}
	}
	return cell.MonthlyValue()
}

// MonthlyValue converts a flat cell to the canonical MonthlyValue,
// treating null figures as zero.
func (c FlatCell) MonthlyValue() model.MonthlyValue {
	var v model.MonthlyValue
	if c.Current.Valid {
		v.Value = c.Current.Decimal
	}
	if c.PercentOfIncome.Valid {
		v.PercentOfRevenue = c.PercentOfIncome.Decimal
	}
	return v
}
