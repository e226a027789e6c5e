// ABOUTME: Tests for the record screen
// ABOUTME: Verifies setup transitions, ticking, and submission payloads

package record

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/parlor-golf/parlor-cli/internal/client"
	"github.com/parlor-golf/parlor-cli/internal/round"
	"github.com/parlor-golf/parlor-cli/internal/storage"
)

func newTestRecord() *Record {
	c := client.New("http://localhost:5000", nil)
	return New(c, nil, "me")
}

func TestStartRoundEighteen(t *testing.T) {
	r := newTestRecord()
	r.courseName = "Pebble Creek"
	r.holeChoice = "18"

	model, cmd := r.startRound()
	r = model.(*Record)

	if r.recorder.Phase() != round.PhaseActive {
		t.Fatalf("expected active phase, got %s", r.recorder.Phase())
	}
	if cmd == nil {
		t.Error("expected tick command to be scheduled")
	}
	holes := r.recorder.Holes()
	if len(holes) != 18 || holes[0] != 1 || holes[17] != 18 {
		t.Errorf("expected holes 1..18, got %v", holes)
	}
}

func TestStartRoundBackNine(t *testing.T) {
	r := newTestRecord()
	r.courseName = "Old Mill"
	r.holeChoice = "back9"

	model, _ := r.startRound()
	r = model.(*Record)

	holes := r.recorder.Holes()
	if len(holes) != 9 || holes[0] != 10 || holes[8] != 18 {
		t.Errorf("expected holes 10..18, got %v", holes)
	}
}

func TestTickOnlyWhileActive(t *testing.T) {
	r := newTestRecord()
	r.courseName = "Pebble Creek"
	model, _ := r.startRound()
	r = model.(*Record)

	model, cmd := r.Update(tickMsg(time.Now()))
	r = model.(*Record)
	if r.recorder.Elapsed() != 1 {
		t.Errorf("expected elapsed 1 after tick, got %d", r.recorder.Elapsed())
	}
	if cmd == nil {
		t.Error("expected tick to re-arm while active")
	}

	// Entering submit stops the clock
	for h := 1; h <= 18; h++ {
		r.recorder.SetEntry(h, "4")
	}
	if _, err := r.recorder.BeginSubmit(time.Now()); err != nil {
		t.Fatalf("begin submit: %v", err)
	}
	model, cmd = r.Update(tickMsg(time.Now()))
	r = model.(*Record)
	if cmd != nil {
		t.Error("expected tick not to re-arm while submitting")
	}
	if r.recorder.Elapsed() != 1 {
		t.Errorf("expected elapsed unchanged while submitting, got %d", r.recorder.Elapsed())
	}
}

func TestSubmitBuildsSessionFromSummary(t *testing.T) {
	r := newTestRecord()
	r.courseName = "Pebble Creek"
	r.holeChoice = "front9"
	r.privacy = client.PrivacyPublic
	model, _ := r.startRound()
	r = model.(*Record)

	for h := 1; h <= 9; h++ {
		r.recorder.SetEntry(h, "4")
	}

	model, cmd := r.submit()
	r = model.(*Record)
	if r.recorder.Phase() != round.PhaseSubmitting {
		t.Fatalf("expected submitting phase, got %s", r.recorder.Phase())
	}
	if cmd == nil {
		t.Fatal("expected submit command")
	}
	if !r.busy {
		t.Error("expected busy flag while submit is in flight")
	}
}

func TestSubmitFailureResetsToSetup(t *testing.T) {
	r := newTestRecord()
	r.courseName = "Pebble Creek"
	r.holeChoice = "front9"
	model, _ := r.startRound()
	r = model.(*Record)
	r.recorder.SetEntry(1, "4")
	r.submit()

	model, _ = r.Update(submitResultMsg{err: errTest})
	r = model.(*Record)

	if r.err == nil {
		t.Error("expected error to surface")
	}
	if r.busy {
		t.Error("expected busy cleared after failure")
	}
	// A failed save lands back on setup; the scorecard is gone
	if r.recorder.Phase() != round.PhaseSetup {
		t.Errorf("expected reset to setup after failure, got %s", r.recorder.Phase())
	}
}

func TestSubmitSuccessResetsToSetup(t *testing.T) {
	r := newTestRecord()
	r.courseName = "Pebble Creek"
	r.holeChoice = "front9"
	model, _ := r.startRound()
	r = model.(*Record)
	r.recorder.SetEntry(1, "4")
	r.submit()

	model, cmd := r.Update(submitResultMsg{sessionID: "s-9"})
	r = model.(*Record)

	if r.recorder.Phase() != round.PhaseSetup {
		t.Errorf("expected reset to setup after success, got %s", r.recorder.Phase())
	}
	if cmd == nil {
		t.Error("expected SubmittedMsg command")
	}
}

func TestSendUploadsPhotosBeforeCreate(t *testing.T) {
	var order []string
	var created client.Session

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/sessions" {
			t.Errorf("unexpected API path %s", req.URL.Path)
		}
		order = append(order, "create")
		json.NewDecoder(req.Body).Decode(&created)
		json.NewEncoder(w).Encode(map[string]string{"sessionId": "s-1"})
	}))
	defer api.Close()

	var storeURL string
	store := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		order = append(order, "upload")
		json.NewEncoder(w).Encode(map[string]string{"url": storeURL + "/o/p0.jpg"})
	}))
	defer store.Close()
	storeURL = store.URL

	r := New(client.New(api.URL, nil), storage.New(store.URL, nil), "me")
	r.courseName = "Pebble Creek"
	r.holeChoice = "front9"
	model, _ := r.startRound()
	r = model.(*Record)
	r.recorder.SetEntry(1, "4")
	r.AttachPhoto([]byte("jpeg-bytes"))

	model, cmd := r.submit()
	r = model.(*Record)
	if cmd == nil {
		t.Fatal("expected submit command")
	}

	msg, ok := cmd().(submitResultMsg)
	if !ok {
		t.Fatal("expected submitResultMsg")
	}
	if msg.err != nil {
		t.Fatalf("submit: %v", msg.err)
	}

	if len(order) != 2 || order[0] != "upload" || order[1] != "create" {
		t.Errorf("expected upload before create, got %v", order)
	}
	if len(created.Images) != 1 || created.Images[0] != store.URL+"/o/p0.jpg" {
		t.Errorf("expected session payload to carry the photo URL, got %v", created.Images)
	}

	model, _ = r.Update(msg)
	r = model.(*Record)
	if r.recorder.Phase() != round.PhaseSetup {
		t.Errorf("expected reset to setup after success, got %s", r.recorder.Phase())
	}
}

func TestFailedUploadSkippedNotFatal(t *testing.T) {
	var created client.Session
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		json.NewDecoder(req.Body).Decode(&created)
		json.NewEncoder(w).Encode(map[string]string{"sessionId": "s-2"})
	}))
	defer api.Close()

	store := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "disk full", http.StatusInternalServerError)
	}))
	defer store.Close()

	r := New(client.New(api.URL, nil), storage.New(store.URL, nil), "me")
	r.courseName = "Old Mill"
	r.holeChoice = "front9"
	model, _ := r.startRound()
	r = model.(*Record)
	r.recorder.SetEntry(1, "5")
	r.AttachPhoto([]byte("jpeg-bytes"))

	_, cmd := r.submit()
	msg := cmd().(submitResultMsg)

	if msg.err != nil {
		t.Fatalf("expected session saved despite failed upload, got %v", msg.err)
	}
	if len(created.Images) != 0 {
		t.Errorf("expected no image URLs after failed upload, got %v", created.Images)
	}
}

func TestAttachPhotoFromPath(t *testing.T) {
	r := newTestRecord()
	r.storage = storage.New("http://localhost:9199", nil)
	r.courseName = "Pebble Creek"
	model, _ := r.startRound()
	r = model.(*Record)

	path := filepath.Join(t.TempDir(), "shot.jpg")
	if err := os.WriteFile(path, []byte("jpeg-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	model, _ = r.updateActive(tea.KeyMsg(tea.Key{Type: tea.KeyCtrlP}))
	r = model.(*Record)
	if !r.photoMode {
		t.Fatal("expected photo entry mode after ctrl+p")
	}

	r.photoEntry.SetValue(path)
	model, _ = r.updateActive(tea.KeyMsg(tea.Key{Type: tea.KeyEnter}))
	r = model.(*Record)

	if r.photoMode {
		t.Error("expected photo entry mode closed after attach")
	}
	if len(r.photos) != 1 || string(r.photos[0]) != "jpeg-bytes" {
		t.Errorf("expected one staged photo, got %d", len(r.photos))
	}
}

var errTest = errTestType{}

type errTestType struct{}

func (errTestType) Error() string { return "backend unavailable" }
