package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"400-000 Food Sales", "Food Sales"},
		{"510-200 Meat & Seafood", "Meat & Seafood"},
		{"Food Sales", "Food Sales"},
		{"  Food Sales  ", "Food Sales"},
		{"400-000   Food Sales", "Food Sales"},
		{"Total for 500-000 Payroll", "Total for 500-000 Payroll"},
		{"4000-000 Not A Code", "4000-000 Not A Code"},
		{"400-00 Short Code", "400-00 Short Code"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AccountName(tt.raw), "raw: %q", tt.raw)
	}
}

func TestAccountName_Idempotent(t *testing.T) {
	inputs := []string{
		"400-000 Food Sales",
		"Food Sales",
		"  510-200  Meat & Seafood ",
		"",
		"Total",
	}
	for _, s := range inputs {
		once := AccountName(s)
		assert.Equal(t, once, AccountName(once), "input: %q", s)
	}
}

func TestAccountCode(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"400-000 Food Sales", "400-000"},
		{"599-350 Direct Operating", "599-350"},
		{"Food Sales", ""},
		{"400-000Food Sales", ""}, // no trailing whitespace after the code
		{"40-000 Too Short", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AccountCode(tt.raw), "raw: %q", tt.raw)
	}
}

func TestAccountCode_StrippingRoundTrip(t *testing.T) {
	raws := []string{"400-000 Food Sales", "510-200 Meat & Seafood", "599-350 Linen"}
	for _, raw := range raws {
		code := AccountCode(raw)
		assert.True(t, strings.HasPrefix(strings.TrimSpace(raw), code), "raw: %q", raw)
		assert.False(t, strings.HasPrefix(AccountName(raw), code), "raw: %q", raw)
	}
}

func TestID(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Food Sales", "food-sales"},
		{"FOOD   SALES!!", "food-sales"},
		{"Meat & Seafood", "meat-seafood"},
		{"Paper Goods (To-Go)", "paper-goods-to-go"},
		{"Total", "total"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ID(tt.name), "name: %q", tt.name)
	}
}

func TestID_OnlyAllowedCharacters(t *testing.T) {
	inputs := []string{"Food Sales", "50% Off Comps", "Crème Brûlée", "  spaced  out  "}
	for _, s := range inputs {
		id := ID(s)
		for _, r := range id {
			ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
			assert.True(t, ok, "id %q contains %q", id, r)
		}
	}
}
