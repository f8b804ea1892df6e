package vectors

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"speck-go/pkg/speck"
)

func TestDefaultVectors(t *testing.T) {
	vs := Default()
	seen := make(map[string]bool)
	for _, v := range vs {
		if err := v.Check(); err != nil {
			t.Errorf("%s: %v", v.Name, err)
		}
		seen[v.Name] = true
	}
	for _, variant := range speck.Variants() {
		if !seen[variant.Name] {
			t.Errorf("no vector for %s", variant.Name)
		}
	}
}

func TestCheckMismatch(t *testing.T) {
	v := Default()[2]
	v.Ciphertext = "00000000000000000000000000000000"
	err := v.Check()
	var me *MismatchError
	if !errors.As(err, &me) {
		t.Fatalf("expected MismatchError, got %v", err)
	}
	if me.Op != "seal" || me.Name != "SPECK-128/128" {
		t.Fatalf("unexpected mismatch %+v", me)
	}
}

func TestCheckBadInput(t *testing.T) {
	tests := []struct {
		name string
		v    Vector
		is   error
	}{
		{"short key", Vector{Name: "SPECK-64/96", Key: "0001", Plaintext: "0000000000000000", Ciphertext: "0000000000000000"}, speck.ErrInvalidLength},
		{"long block", Vector{Name: "SPECK-64/96", Key: "0001020308090a0b10111213", Plaintext: "000000000000000000", Ciphertext: "0000000000000000"}, speck.ErrInvalidLength},
		{"unknown variant", Vector{Name: "SPECK-48/72", Key: "00", Plaintext: "00", Ciphertext: "00"}, speck.ErrUnknownVariant},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.v.Check(); !errors.Is(err, tc.is) {
				t.Fatalf("got %v, want %v", err, tc.is)
			}
		})
	}

	if err := (Vector{Name: "SPECK-64/96", Key: "zz"}).Check(); err == nil {
		t.Fatal("expected a hex error")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vectors.toml")
	if err := os.WriteFile(path, defaultVectors, 0o644); err != nil {
		t.Fatal(err)
	}
	vs, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(vs) != 5 {
		t.Fatalf("got %d vectors, want 5", len(vs))
	}
	for _, r := range CheckAll(vs) {
		if r.Err != nil {
			t.Errorf("%s: %v", r.Vector.Name, r.Err)
		}
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse([]byte("title = \"nothing\"\n")); !errors.Is(err, ErrNoVectors) {
		t.Fatalf("got %v, want ErrNoVectors", err)
	}
	if _, err := Parse([]byte("[[vectors]\n")); err == nil {
		t.Fatal("expected a toml syntax error")
	}
}
