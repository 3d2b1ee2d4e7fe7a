package migration

import (
	"testing"
	"testing/fstest"
)

func TestLoad_SortsByVersionAndSkipsForeignFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"V2__add_applications.sql":     {Data: []byte("CREATE TABLE applications ();")},
		"V1__create_opportunities.sql": {Data: []byte("CREATE TABLE opportunities ();")},
		"V10__add_indexes.sql":         {Data: []byte("CREATE INDEX idx ON opportunities (score);")},
		"README.md":                    {Data: []byte("notes")},
		"snapshot.sql":                 {Data: []byte("SELECT 1;")},
	}

	migs, err := load(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(migs) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migs))
	}

	// Numeric order, not lexical: 1, 2, 10.
	wantVersions := []int64{1, 2, 10}
	wantNames := []string{"create_opportunities", "add_applications", "add_indexes"}
	for i, m := range migs {
		if m.version != wantVersions[i] {
			t.Errorf("migs[%d].version = %d, want %d", i, m.version, wantVersions[i])
		}
		if m.name != wantNames[i] {
			t.Errorf("migs[%d].name = %q, want %q", i, m.name, wantNames[i])
		}
		if m.checksum == "" {
			t.Errorf("migs[%d] has empty checksum", i)
		}
	}
}

func TestLoad_ChecksumIgnoresSurroundingWhitespace(t *testing.T) {
	a, err := load(fstest.MapFS{
		"V1__init.sql": {Data: []byte("CREATE TABLE t ();")},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	b, err := load(fstest.MapFS{
		"V1__init.sql": {Data: []byte("\nCREATE TABLE t ();\n\n")},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if a[0].checksum != b[0].checksum {
		t.Error("checksum should be stable under leading/trailing whitespace")
	}
}

func TestLoad_RejectsDuplicateVersions(t *testing.T) {
	_, err := load(fstest.MapFS{
		"V1__one.sql": {Data: []byte("SELECT 1;")},
		"V1__two.sql": {Data: []byte("SELECT 2;")},
	})
	if err == nil {
		t.Fatal("expected error for duplicate version")
	}
}

func TestLoad_RejectsEmptyMigration(t *testing.T) {
	_, err := load(fstest.MapFS{
		"V1__empty.sql": {Data: []byte("   \n")},
	})
	if err == nil {
		t.Fatal("expected error for empty migration file")
	}
}

func TestLoad_EmptyDirIsNoOp(t *testing.T) {
	migs, err := load(fstest.MapFS{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(migs) != 0 {
		t.Fatalf("expected no migrations, got %d", len(migs))
	}
}
