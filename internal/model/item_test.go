package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestItemDecodesBothIDVariants(t *testing.T) {
	data := `[{"id":"3f2a","text":"Buy milk","completed":false},{"id":1712345678901,"text":"Walk dog","completed":true}]`

	var items []Item
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if items[0].ID != "3f2a" {
		t.Errorf("expected string id 3f2a, got %q", items[0].ID)
	}
	if items[1].ID != "1712345678901" {
		t.Errorf("expected numeric id as decimal string, got %q", items[1].ID)
	}
	if !items[1].Completed {
		t.Error("expected second item completed")
	}
}

func TestItemEncodesIDAsString(t *testing.T) {
	b, err := json.Marshal(Item{ID: "42", Text: "x"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"id":"42"`) {
		t.Errorf("expected string id in %s", b)
	}
	if strings.Contains(string(b), "createdAt") {
		t.Errorf("expected zero createdAt to be omitted: %s", b)
	}
}

func TestIDRejectsObjects(t *testing.T) {
	var id ID
	if err := json.Unmarshal([]byte(`{"a":1}`), &id); err == nil {
		t.Fatal("expected error for object id")
	}
}

func TestFilterMatch(t *testing.T) {
	open := Item{Text: "open"}
	done := Item{Text: "done", Completed: true}

	tests := []struct {
		filter Filter
		open   bool
		done   bool
	}{
		{FilterAll, true, true},
		{FilterActive, true, false},
		{FilterCompleted, false, true},
		{Filter("bogus"), true, true},
	}
	for _, tt := range tests {
		if got := tt.filter.Match(open); got != tt.open {
			t.Errorf("%s.Match(open) = %v, want %v", tt.filter, got, tt.open)
		}
		if got := tt.filter.Match(done); got != tt.done {
			t.Errorf("%s.Match(done) = %v, want %v", tt.filter, got, tt.done)
		}
	}
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter(" Active ")
	if err != nil || f != FilterActive {
		t.Fatalf("ParseFilter: got %q, %v", f, err)
	}
	if _, err := ParseFilter("done"); err == nil {
		t.Error("expected error for unknown filter")
	}
}

func TestFilterNext(t *testing.T) {
	if FilterAll.Next() != FilterActive || FilterActive.Next() != FilterCompleted || FilterCompleted.Next() != FilterAll {
		t.Error("unexpected filter cycle")
	}
}

func TestThemeToggle(t *testing.T) {
	if ThemeLight.Toggle() != ThemeDark || ThemeDark.Toggle() != ThemeLight {
		t.Error("toggle should flip light and dark")
	}
	if _, err := ParseTheme("neon"); err == nil {
		t.Error("expected error for unknown theme")
	}
}
