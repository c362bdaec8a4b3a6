package gazetteer

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestNewNormalizes(t *testing.T) {
	g := New(
		[]string{"Schwabing", " schwabing ", "", "Pasing"},
		map[string][]string{"Raub": {"RAUB", " Überfall ", ""}},
	)

	if !reflect.DeepEqual(g.Places(), []string{"Schwabing", "Pasing"}) {
		t.Errorf("Places should be trimmed and deduplicated, got %v", g.Places())
	}
	if !reflect.DeepEqual(g.CrimeKeys(), []string{"raub"}) {
		t.Errorf("Crime keys should be lower-cased, got %v", g.CrimeKeys())
	}
	if !reflect.DeepEqual(g.Synonyms("RAUB"), []string{"raub", "überfall"}) {
		t.Errorf("Synonyms should be lower-cased, got %v", g.Synonyms("raub"))
	}
}

func TestDefaultTables(t *testing.T) {
	g := Default()
	found := false
	for _, p := range g.Places() {
		if p == "Au" {
			t.Error("Default places must not contain \"Au\"")
		}
		if p == "Schwabing" {
			found = true
		}
	}
	if !found {
		t.Error("Default places should contain Schwabing")
	}
	if len(g.Synonyms("einbruch")) == 0 {
		t.Error("Default crime types should contain einbruch")
	}

	keys := g.CrimeKeys()
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Fatalf("Crime keys not sorted: %v", keys)
		}
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	g := Default()
	places := g.Places()
	places[0] = "changed"
	if g.Places()[0] == "changed" {
		t.Error("Places must return a copy")
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gazetteer.yaml")
	content := `places:
  - Schwabing
  - Giesing
crime_types:
  raub:
    - raub
    - überfall
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	g, err := LoadFromYAML(path)
	if err != nil {
		t.Fatalf("LoadFromYAML: %v", err)
	}
	if len(g.Places()) != 2 {
		t.Errorf("Expected 2 places, got %v", g.Places())
	}
	if !reflect.DeepEqual(g.CrimeKeys(), []string{"raub"}) {
		t.Errorf("Expected only raub, got %v", g.CrimeKeys())
	}
}

func TestParseFallsBackPerSection(t *testing.T) {
	g, err := Parse([]byte("places: [Nirgendwo]\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(g.Places(), []string{"Nirgendwo"}) {
		t.Errorf("Places should come from file, got %v", g.Places())
	}
	if len(g.CrimeKeys()) != len(Default().CrimeKeys()) {
		t.Error("Missing crime_types should fall back to built-in table")
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse([]byte("places: [unterminated")); err == nil {
		t.Error("Expected error on malformed YAML")
	}
	if _, err := LoadFromYAML("/nonexistent/gazetteer.yaml"); err == nil {
		t.Error("Expected error on missing file")
	}
}
