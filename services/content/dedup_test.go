package content

import (
	"reflect"
	"testing"

	"github.com/reelgrid-io/web-api/models"
)

func TestDedupe_NoDuplicates(t *testing.T) {
	items := []models.Content{
		{ID: "1", Type: models.ContentTypeMovie, Title: "A"},
		{ID: "2", Type: models.ContentTypeMovie, Title: "B"},
		{ID: "3", Type: models.ContentTypeShow, Title: "C"},
	}

	got := Dedupe(items)

	if !reflect.DeepEqual(got, items) {
		t.Errorf("Dedupe changed a duplicate-free list: %v", got)
	}
}

func TestDedupe_KeepsFirstOccurrence(t *testing.T) {
	items := []models.Content{
		{ID: "1", Type: models.ContentTypeMovie, Title: "first"},
		{ID: "2", Type: models.ContentTypeMovie, Title: "B"},
		{ID: "1", Type: models.ContentTypeMovie, Title: "second"},
		{ID: "3", Type: models.ContentTypeMovie, Title: "C"},
		{ID: "2", Type: models.ContentTypeMovie, Title: "again"},
	}

	got := Dedupe(items)

	if len(got) != 3 {
		t.Fatalf("len = %v, want 3", len(got))
	}
	expected := []string{"first", "B", "C"}
	for i, title := range expected {
		if got[i].Title != title {
			t.Errorf("item %d title = %v, want %v", i, got[i].Title, title)
		}
	}
}

func TestDedupe_TypeDistinguishesKeys(t *testing.T) {
	items := []models.Content{
		{ID: "42", Type: models.ContentTypeMovie, Title: "movie"},
		{ID: "42", Type: models.ContentTypeShow, Title: "show"},
	}

	got := Dedupe(items)

	if len(got) != 2 {
		t.Errorf("len = %v, want 2: same id with different types is not a duplicate", len(got))
	}
}

func TestDedupe_Idempotent(t *testing.T) {
	items := []models.Content{
		{ID: "1", Type: models.ContentTypeMovie},
		{ID: "1", Type: models.ContentTypeMovie},
		{ID: "2", Type: models.ContentTypeShow},
	}

	once := Dedupe(items)
	twice := Dedupe(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Dedupe is not idempotent: %v vs %v", once, twice)
	}
}

func TestDedupe_Empty(t *testing.T) {
	got := Dedupe([]models.Content{})
	if len(got) != 0 {
		t.Errorf("len = %v, want 0", len(got))
	}
}
