package keymap

import (
	"errors"
	"testing"
)

func TestNewDefaultsDescription(t *testing.T) {
	k := New('t', "echo 'test'")
	if k.Description != "echo 'test'" || k.HasPrompt() {
		t.Fatalf("got %+v", k)
	}
	k = k.WithDescription("Test keymap").WithPrompt("Test prompt")
	if k.Description != "Test keymap" || k.Prompt != "Test prompt" || !k.HasPrompt() {
		t.Fatalf("got %+v", k)
	}
	if k.MenuLine() != "t  Test keymap" {
		t.Fatalf("menu line %q", k.MenuLine())
	}
}

func TestLookupReturnsFirst(t *testing.T) {
	tbl := Table{New('a', "first"), New('b', "other"), New('a', "second")}
	k, ok := tbl.Lookup('a')
	if !ok || k.Command != "first" {
		t.Fatalf("got %+v %v", k, ok)
	}
	if _, ok := tbl.Lookup('z'); ok {
		t.Fatal("found unmapped key")
	}
}

func TestValidate(t *testing.T) {
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	cases := []struct {
		name string
		tbl  Table
		want error
	}{
		{"duplicate", Table{New('a', "x"), New('a', "y")}, ErrDuplicateKey},
		{"quit key", Table{New('q', "x")}, ErrReservedKey},
		{"empty command", Table{New('a', "  ")}, ErrEmptyCommand},
	}
	for _, tc := range cases {
		if err := tc.tbl.Validate(); !errors.Is(err, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
	if err := (Table{New(' ', "x")}).Validate(); err == nil {
		t.Error("space accepted as a key")
	}
}

func TestWithAndWithout(t *testing.T) {
	tbl := Table{New('a', "one"), New('b', "two")}
	tbl = tbl.With(New('a', "uno"))
	if len(tbl) != 2 || tbl[0].Command != "uno" {
		t.Fatalf("replace: %+v", tbl)
	}
	tbl = tbl.With(New('c', "three"))
	if len(tbl) != 3 || tbl[2].Key != 'c' {
		t.Fatalf("append: %+v", tbl)
	}
	tbl, err := tbl.Without('b')
	if err != nil || len(tbl) != 2 {
		t.Fatalf("remove: %+v %v", tbl, err)
	}
	if _, err := tbl.Without('b'); !errors.Is(err, ErrNotFound) {
		t.Fatalf("remove missing: %v", err)
	}
}

func TestFind(t *testing.T) {
	tbl := Defaults()
	got := tbl.Find("refac")
	if len(got) == 0 || got[0].Key != 'r' {
		t.Fatalf("find refac: %+v", got)
	}
	if got := tbl.Find("zzzzqqq"); len(got) != 0 {
		t.Fatalf("unexpected matches: %+v", got)
	}
	if got := tbl.Find(""); len(got) != len(tbl) {
		t.Fatalf("empty query returned %d", len(got))
	}
}
