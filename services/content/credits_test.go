package content

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/reelgrid-io/web-api/models"
	"github.com/reelgrid-io/web-api/services/tmdb"
)

func TestApplyCredits_MovieDirector(t *testing.T) {
	c := models.Content{ID: "550", Type: models.ContentTypeMovie, Cast: []string{}}
	credits := &tmdb.Credits{
		Cast: []tmdb.CastEntry{
			{ID: 1, Name: "Brad Pitt", Order: 0},
			{ID: 2, Name: "Edward Norton", Order: 1},
		},
		Crew: []tmdb.CrewEntry{
			{ID: 3, Name: "Jim Uhls", Job: "Screenplay"},
			{ID: 4, Name: "David Fincher", Job: "Director"},
			{ID: 5, Name: "Someone Else", Job: "Director"},
		},
	}

	ApplyCredits(&c, credits)

	if !reflect.DeepEqual(c.Cast, []string{"Brad Pitt", "Edward Norton"}) {
		t.Errorf("Cast = %v", c.Cast)
	}
	if c.Director != "David Fincher" {
		t.Errorf("Director = %v, want first crew member with the director job", c.Director)
	}
}

func TestApplyCredits_ShowHasNoDirector(t *testing.T) {
	c := models.Content{ID: "1396", Type: models.ContentTypeShow, Cast: []string{}}
	credits := &tmdb.Credits{
		Cast: []tmdb.CastEntry{{ID: 1, Name: "Bryan Cranston"}},
		Crew: []tmdb.CrewEntry{{ID: 2, Name: "Michelle MacLaren", Job: "Director"}},
	}

	ApplyCredits(&c, credits)

	if c.Director != "" {
		t.Errorf("Director = %v, want empty for a show", c.Director)
	}
	if !reflect.DeepEqual(c.Cast, []string{"Bryan Cranston"}) {
		t.Errorf("Cast = %v", c.Cast)
	}
}

func TestApplyCredits_CapsCast(t *testing.T) {
	credits := &tmdb.Credits{}
	for i := 0; i < 25; i++ {
		credits.Cast = append(credits.Cast, tmdb.CastEntry{ID: int64(i), Name: fmt.Sprintf("Actor %d", i), Order: i})
	}
	c := models.Content{ID: "1", Type: models.ContentTypeMovie, Cast: []string{}}

	ApplyCredits(&c, credits)

	if len(c.Cast) != maxCastEntries {
		t.Fatalf("len(Cast) = %v, want %v", len(c.Cast), maxCastEntries)
	}
	if c.Cast[0] != "Actor 0" || c.Cast[maxCastEntries-1] != fmt.Sprintf("Actor %d", maxCastEntries-1) {
		t.Errorf("Cast order not preserved: %v", c.Cast)
	}
}
