package storage

import (
	"path/filepath"
	"testing"
)

func TestDBReadWriteRemove(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, found, err := db.Read("missing"); err != nil || found {
		t.Fatalf("found=%v err=%v", found, err)
	}

	if err := db.Write("k", []byte(`{"a":1}`)); err != nil {
		t.Fatal(err)
	}
	value, found, err := db.Read("k")
	if err != nil || !found {
		t.Fatalf("found=%v err=%v", found, err)
	}
	if string(value) != `{"a":1}` {
		t.Fatalf("value=%s", value)
	}

	// overwrite wins
	if err := db.Write("k", []byte(`{"a":2}`)); err != nil {
		t.Fatal(err)
	}
	value, _, _ = db.Read("k")
	if string(value) != `{"a":2}` {
		t.Fatalf("value=%s", value)
	}

	if err := db.Remove("k"); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := db.Read("k"); found {
		t.Fatal("key still present after remove")
	}
}

func TestProblemSetOnSQLite(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	set := NewProblemSet(db, nil)
	added, err := set.AddProblem(record("Two Sum"))
	if err != nil {
		t.Fatal(err)
	}

	problems, err := set.ListProblems()
	if err != nil {
		t.Fatal(err)
	}
	if len(problems) != 1 || problems[0].ID != added.ID {
		t.Fatalf("problems=%+v", problems)
	}
}
