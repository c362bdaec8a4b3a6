package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/cognicore/reconcile/pkg/reconcile"
	"github.com/cognicore/reconcile/pkg/reconcile/store/sqlite"
)

func TestImportRunIntegration(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "reconcile.db")

	root := repoRoot(t)
	docs := filepath.Join(root, "testdata", "digests", "documents.jsonl")
	records := filepath.Join(root, "testdata", "digests", "records.jsonl")

	execute(t, "import", "--db", dbPath, "--documents", docs, "--records", records)
	execute(t, "run", "--db", dbPath, "--dry-run")

	st, err := sqlite.OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	rec, _, err := st.GetRecord(ctx, "2024-0605-1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(rec.Body, "Sendling") {
		t.Errorf("Dry run must not change bodies, got %q", rec.Body)
	}
	st.Close()

	execute(t, "run", "--db", dbPath)

	st, err = sqlite.OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer st.Close()

	want := map[string]string{
		"2024-0605-1": "in Pasing Opfer eines Trickbetrugs",
		"2024-0605-2": "in Schwabing ein",
		"2024-0605-3": "in Sendling in einen Unfall",
		"2024-0606-1": "Fall 1: In Moosach",
		"2024-0606-2": "Fall 2: In Giesing",
		"2024-0607-1": "unverändert",
	}
	for id, fragment := range want {
		rec, found, err := st.GetRecord(ctx, id)
		if err != nil || !found {
			t.Fatalf("GetRecord(%s): found=%v err=%v", id, found, err)
		}
		if !strings.Contains(rec.Body, fragment) {
			t.Errorf("%s: body %q should contain %q", id, rec.Body, fragment)
		}
	}
}

func TestRunRequiresDatabase(t *testing.T) {
	cmd := rootCmd()
	cmd.SetArgs([]string{"audit", "some-run", "--config", writeConfig(t, "database: \"\"\n")})
	if err := cmd.Execute(); err == nil {
		t.Error("Expected error without a database")
	}
}

func TestPrintReport(t *testing.T) {
	rep := reconcile.Report{RunID: "01J0000000000000000000000", DryRun: true}

	var buf bytes.Buffer
	printReport(&buf, rep)
	out := buf.String()
	if !strings.Contains(out, "01J0000000000000000000000") || !strings.Contains(out, "dry-run") {
		t.Errorf("Unexpected output:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("kurz", 10); got != "kurz" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("Körperverletzung", 5); got != "Körp…" {
		t.Errorf("truncate long = %q", got)
	}
}

func execute(t *testing.T, args ...string) {
	t.Helper()
	cmd := rootCmd()
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("reconcile %s: %v", strings.Join(args, " "), err)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reconcile.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func repoRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
