package storage

import (
	"testing"
)

func newTestKnowledgeStore(t *testing.T) *KnowledgeStore {
	t.Helper()
	ks, err := NewKnowledgeStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create knowledge store: %v", err)
	}
	t.Cleanup(func() { ks.Close() })
	return ks
}

func TestKnowledgeStoreSeedsOnFirstRun(t *testing.T) {
	ks := newTestKnowledgeStore(t)

	entries, err := ks.LoadAll()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(entries) != len(seedEntries) {
		t.Fatalf("expected %d seeded entries, got %d", len(seedEntries), len(entries))
	}

	// Rows come back ordered by position: aadhaar first, default last.
	if entries[0].Category != "aadhaar" || entries[0].Position != 1 {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	last := entries[len(entries)-1]
	if last.Category != "default" || last.Keywords != "" {
		t.Errorf("unexpected last entry: %+v", last)
	}
}

func TestKnowledgeStoreCoversBothLanguages(t *testing.T) {
	ks := newTestKnowledgeStore(t)

	entries, err := ks.LoadAll()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	perLanguage := map[string]map[string]bool{}
	for _, e := range entries {
		if perLanguage[e.Category] == nil {
			perLanguage[e.Category] = map[string]bool{}
		}
		perLanguage[e.Category][e.Language] = true
	}

	for category, langs := range perLanguage {
		if !langs["en"] || !langs["hi"] {
			t.Errorf("category %s missing a language row: %v", category, langs)
		}
	}
}

func TestKnowledgeStoreDoesNotReseed(t *testing.T) {
	dir := t.TempDir()

	ks, err := NewKnowledgeStore(dir)
	if err != nil {
		t.Fatalf("failed to create knowledge store: %v", err)
	}

	// Deployments may edit answers; a reopen must not overwrite them.
	if _, err := ks.db.Exec(`UPDATE answers SET answer = 'edited' WHERE category = 'pension' AND language = 'en'`); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	ks.Close()

	reopened, err := NewKnowledgeStore(dir)
	if err != nil {
		t.Fatalf("failed to reopen knowledge store: %v", err)
	}
	defer reopened.Close()

	entries, err := reopened.LoadAll()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	found := false
	for _, e := range entries {
		if e.Category == "pension" && e.Language == "en" {
			found = true
			if e.Answer != "edited" {
				t.Errorf("reopen overwrote the edited answer: %q", e.Answer)
			}
		}
	}
	if !found {
		t.Error("pension/en entry missing")
	}
}
