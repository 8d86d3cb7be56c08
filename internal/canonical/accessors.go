package canonical

import (
	"strings"

	"github.com/canonpl-dev/canonpl/internal/model"
	"github.com/canonpl-dev/canonpl/internal/normalize"
)

// FindAccount searches a forest of account trees depth-first,
// children before siblings, and returns the first node whose id equals
// the normalized search term or whose name matches it
// case-insensitively. Returns nil when nothing matches.
func FindAccount(nodes []*model.Account, search string) *model.Account {
	slug := normalize.ID(search)
	target := normalize.AccountName(search)

	for _, n := range nodes {
		if n == nil {
			continue
		}
		if n.ID == slug || strings.EqualFold(n.Name, target) {
			return n
		}
		if found := FindAccount(n.Children, search); found != nil {
			return found
		}
	}
	return nil
}

// Flatten returns a pre-order flattening of a tree: every node exactly
// once, each parent immediately preceding its subtree.
func Flatten(root *model.Account) []*model.Account {
	if root == nil {
		return nil
	}
	out := []*model.Account{root}
	for _, child := range root.Children {
		out = append(out, Flatten(child)...)
	}
	return out
}
