package rules

import "testing"

func TestIsMixedCase(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"transferFrom", true},
		{"balance", true},
		{"_internalHelper", true},
		{"__gap__", true},
		{"TransferFrom", false},
		{"transfer_from", false},
		{"MAX_SUPPLY", false},
		{"x", true},
	}
	for _, tc := range cases {
		if got := isMixedCase(tc.name); got != tc.want {
			t.Errorf("isMixedCase(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIsPascalCase(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"TokenInfo", true},
		{"Position", true},
		{"tokenInfo", false},
		{"Token_Info", false},
		{"_Reserved", true},
	}
	for _, tc := range cases {
		if got := isPascalCase(tc.name); got != tc.want {
			t.Errorf("isPascalCase(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIsScreamingSnake(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"MAX_SUPPLY", true},
		{"FEE", true},
		{"MAX_SUPPLY_2", true},
		{"maxSupply", false},
		{"Max_Supply", false},
	}
	for _, tc := range cases {
		if got := isScreamingSnake(tc.name); got != tc.want {
			t.Errorf("isScreamingSnake(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCaseConversions(t *testing.T) {
	cases := []struct {
		fn   func(string) string
		in   string
		want string
	}{
		{toMixedCase, "transfer_from", "transferFrom"},
		{toMixedCase, "TransferFrom", "transferFrom"},
		{toMixedCase, "MAX_SUPPLY", "maxSupply"},
		{toMixedCase, "_internal_helper", "_internalHelper"},
		{toPascalCase, "token_info", "TokenInfo"},
		{toPascalCase, "tokenInfo", "TokenInfo"},
		{toScreamingSnake, "maxSupply", "MAX_SUPPLY"},
		{toScreamingSnake, "max_supply", "MAX_SUPPLY"},
		{toScreamingSnake, "Fee", "FEE"},
	}
	for _, tc := range cases {
		if got := tc.fn(tc.in); got != tc.want {
			t.Errorf("conversion(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
