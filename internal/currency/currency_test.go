package currency

import (
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		numeric int
		code    string
		number  string
		flag    string
	}{
		{980, "UAH", "980", "🇺🇦"},
		{840, "USD", "840", "🇺🇸"},
		{978, "EUR", "978", "🇪🇺"},
		{36, "AUD", "036", "🇦🇺"},
		{959, "XAU", "959", ""},
	}

	for _, tt := range tests {
		c, err := Resolve(tt.numeric)
		if err != nil {
			t.Fatalf("Resolve(%d) failed: %v", tt.numeric, err)
		}
		if c.Code != tt.code {
			t.Errorf("Resolve(%d).Code = %q, want %q", tt.numeric, c.Code, tt.code)
		}
		if c.Number != tt.number {
			t.Errorf("Resolve(%d).Number = %q, want %q", tt.numeric, c.Number, tt.number)
		}
		if c.Flag != tt.flag {
			t.Errorf("Resolve(%d).Flag = %q, want %q", tt.numeric, c.Flag, tt.flag)
		}
	}
}

func TestResolve_Unknown(t *testing.T) {
	_, err := Resolve(1)
	if !errors.Is(err, ErrUnknownCurrency) {
		t.Fatalf("Expected ErrUnknownCurrency, got %v", err)
	}

	c := Lookup(1)
	if c.Code != "001" || c.Flag != "" {
		t.Errorf("Unexpected placeholder currency: %+v", c)
	}
}

func TestByCode(t *testing.T) {
	c, err := ByCode("uah")
	if err != nil {
		t.Fatalf("ByCode failed: %v", err)
	}
	if c.Number != "980" {
		t.Errorf("Expected 980, got %s", c.Number)
	}

	c, err = ByCode("840")
	if err != nil {
		t.Fatalf("ByCode failed: %v", err)
	}
	if c.Code != "USD" {
		t.Errorf("Expected USD, got %s", c.Code)
	}

	if _, err := ByCode("ZZZ"); !errors.Is(err, ErrUnknownCurrency) {
		t.Errorf("Expected ErrUnknownCurrency, got %v", err)
	}
}

func TestFlag(t *testing.T) {
	if got := Flag("gbp"); got != "🇬🇧" {
		t.Errorf("Flag(gbp) = %q", got)
	}
	if got := Flag("XDR"); got != "" {
		t.Errorf("Flag(XDR) = %q, want empty", got)
	}
	if got := Flag("??"); got != "" {
		t.Errorf("Flag(??) = %q, want empty", got)
	}
}
