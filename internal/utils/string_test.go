package utils

import "testing"

func TestIsValidInput(t *testing.T) {
	testCases := []struct {
		input    string
		expected bool
	}{
		{"cat", true},
		{"Éclair", true},
		{"", false},
		{"c4t", false},
		{"two words", false},
		{"it's", false},
		{"123", false},
	}
	for _, tc := range testCases {
		if got := IsValidInput(tc.input); got != tc.expected {
			t.Errorf("Input '%s': expected %v, got %v", tc.input, tc.expected, got)
		}
	}
}

func TestFormatWithCommas(t *testing.T) {
	testCases := map[int]string{
		0:       "0",
		999:     "999",
		1000:    "1,000",
		123456:  "123,456",
		1234567: "1,234,567",
		-4500:   "-4,500",
	}
	for n, expected := range testCases {
		if got := FormatWithCommas(n); got != expected {
			t.Errorf("Input %d: expected %q, got %q", n, expected, got)
		}
	}
}

func TestSortRunes(t *testing.T) {
	testCases := map[string]string{
		"tac":    "act",
		"":       "",
		"banana": "aaabnn",
		"zéa":    "azé",
	}
	for in, expected := range testCases {
		if got := SortRunes(in); got != expected {
			t.Errorf("Input '%s': expected %q, got %q", in, expected, got)
		}
	}
}

func TestRemoveRuneAt(t *testing.T) {
	runes := []rune("acst")
	expected := []string{"cst", "ast", "act", "acs"}
	for i, want := range expected {
		if got := RemoveRuneAt(runes, i); got != want {
			t.Errorf("index %d: expected %q, got %q", i, want, got)
		}
	}
	if string(runes) != "acst" {
		t.Errorf("input slice was modified: %q", string(runes))
	}
}
