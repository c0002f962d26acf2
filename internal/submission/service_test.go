// AngelaMos | 2026
// service_test.go

package submission

import (
	"context"
	"testing"
)

// noteRepo panics on any method except AppendNote, so the test fails
// loudly if the service issues a second read after the append.
type noteRepo struct {
	Repository
	got *Note
}

func (f *noteRepo) AppendNote(
	_ context.Context,
	note *Note,
) (*Submission, error) {
	f.got = note
	return &Submission{ID: note.SubmissionID, Notes: []Note{*note}}, nil
}

func TestAddNoteReturnsRecordFromSingleAppend(t *testing.T) {
	repo := &noteRepo{}
	svc := NewService(repo)

	sub, err := svc.AddNote(context.Background(), "s-1", "called back", "u-9")
	if err != nil {
		t.Fatalf("add note: %v", err)
	}

	if sub.ID != "s-1" {
		t.Errorf("submission id = %q, want s-1", sub.ID)
	}
	if len(sub.Notes) != 1 || sub.Notes[0].Content != "called back" {
		t.Errorf("notes = %+v, want the appended note", sub.Notes)
	}
	if repo.got == nil || repo.got.ID == "" || repo.got.CreatedAt.IsZero() {
		t.Errorf("note = %+v, want generated id and timestamp", repo.got)
	}
	if repo.got.AuthorID != "u-9" {
		t.Errorf("author = %q, want u-9", repo.got.AuthorID)
	}
}
