package tests

import (
	"context"
	"net/http"
	"testing"

	"github.com/trezcool/darasa/core/note"
	"github.com/trezcool/darasa/tests"
)

func Test_noteApi_noteCRUD(t *testing.T) {
	app := setup(t)

	body := marchallObj(t, note.NewNote{
		Title:   "Physics revision",
		Content: "<p>velocity equals distance over time</p>",
		Tags:    []string{"physics"},
	})
	req, rec := newRequest(http.MethodPost, "/v1/notes", body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}

	created, err := note.NewService(noteRepo).QueryAll(context.Background())
	if err != nil {
		t.Fatalf("QueryAll() failed: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("QueryAll() len = %d, want 1", len(created))
	}
	n := created[0]
	if n.Metadata.WordCount != 5 || n.Metadata.Version != 1 {
		t.Errorf("metadata = %+v, want word_count 5 version 1", n.Metadata)
	}

	tests := []httpTest{
		{name: "Get all", method: http.MethodGet, path: "/v1/notes", wantCode: http.StatusOK, wantData: marchallList(t, n)},
		{name: "Retrieve", method: http.MethodGet, path: "/v1/notes/" + n.ID, wantCode: http.StatusOK, wantData: marchallObj(t, n)},
		{
			name: "Retrieve unknown", method: http.MethodGet, path: "/v1/notes/nope",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "note not found"}),
		},
		{
			name: "Create requires title", method: http.MethodPost, path: "/v1/notes", body: marchallObj(t, note.NewNote{Content: "x"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"title": "this field is required"}),
		},
		{
			name: "Restore requires trashed", method: http.MethodPost, path: "/v1/notes/" + n.ID + "/restore",
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "note is not in the trash"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_noteApi_noteUpdate(t *testing.T) {
	app := setup(t)

	n := testutil.CreateNote(t, noteRepo, "Draft", "one two", nil, nil)

	body := marchallObj(t, note.UpdateNote{Content: "one two three four"})
	req, rec := newRequest(http.MethodPut, "/v1/notes/"+n.ID, body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}

	updated, err := noteRepo.GetNoteByID(context.Background(), n.ID)
	if err != nil {
		t.Fatalf("GetNoteByID() failed: %v", err)
	}
	if updated.Title != "Draft" {
		t.Errorf("Title = %q, want original kept", updated.Title)
	}
	if updated.Metadata.Version != 2 || updated.Metadata.WordCount != 4 {
		t.Errorf("metadata = %+v, want version 2 word_count 4", updated.Metadata)
	}
}

func Test_noteApi_noteTrashFlow(t *testing.T) {
	app := setup(t)

	n := testutil.CreateNote(t, noteRepo, "Doomed", "", nil, nil)

	steps := []httpTest{
		{name: "Trash", method: http.MethodPost, path: "/v1/notes/" + n.ID + "/trash", wantCode: http.StatusOK},
		{name: "Gone from live list", method: http.MethodGet, path: "/v1/notes", wantCode: http.StatusOK, wantData: marchallList(t)},
		{name: "Restore", method: http.MethodPost, path: "/v1/notes/" + n.ID + "/restore", wantCode: http.StatusOK},
		{name: "Destroy", method: http.MethodDelete, path: "/v1/notes/" + n.ID, wantCode: http.StatusNoContent},
		{
			name: "Gone for good", method: http.MethodGet, path: "/v1/notes/" + n.ID,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "note not found"}),
		},
	}
	for _, tt := range steps {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v; body = %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
			}
		})
	}
}

func Test_noteApi_noteSearch(t *testing.T) {
	app := setup(t)

	phys := testutil.CreateNote(t, noteRepo, "Physics revision", "forces and motion", nil, []string{"physics"})
	testutil.CreateNote(t, noteRepo, "Chemistry", "mole ratios", nil, []string{"chemistry"})

	req, rec := newRequest(http.MethodGet, "/v1/notes/search?query=physics")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("search failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}

	want := note.Search([]note.Note{phys}, "physics", note.SearchFilters{})
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallList(t, want[0])}, rec)

	// tag filter narrows the candidate set
	req, rec = newRequest(http.MethodGet, "/v1/notes/search?tag=nosuch")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallList(t)}, rec)
}
