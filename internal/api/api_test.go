package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/talentflow/internal/db"
	"github.com/zulandar/talentflow/internal/notify"
	"github.com/zulandar/talentflow/internal/simnet"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (n *recordingNotifier) StageChanged(_ context.Context, event notify.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

func (n *recordingNotifier) all() []notify.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Event(nil), n.events...)
}

func newTestRouter(t *testing.T, net *simnet.Injector, notifier notify.Notifier) *gin.Engine {
	t.Helper()
	gdb, err := db.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	router, err := NewRouter(Opts{DB: gdb, Net: net, Notifier: notifier})
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, simnet.Disabled(), nil)
	rec := doJSON(t, router, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestJobLifecycle(t *testing.T) {
	router := newTestRouter(t, simnet.Disabled(), nil)

	rec := doJSON(t, router, http.MethodPost, "/api/jobs", map[string]any{
		"title": "Platform Engineer",
		"tags":  []string{"go", "infra"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	created := decode(t, rec)
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatal("created job has no id")
	}
	if created["slug"] != "platform-engineer" {
		t.Errorf("slug = %v, want platform-engineer", created["slug"])
	}

	rec = doJSON(t, router, http.MethodGet, "/api/jobs/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPatch, "/api/jobs/"+id, map[string]any{
		"title": "Staff Platform Engineer",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch status = %d, body %s", rec.Code, rec.Body.String())
	}
	updated := decode(t, rec)
	if updated["title"] != "Staff Platform Engineer" {
		t.Errorf("title = %v after patch", updated["title"])
	}
	if updated["status"] != "active" {
		t.Errorf("status = %v, patch must not touch unnamed fields", updated["status"])
	}

	rec = doJSON(t, router, http.MethodGet, "/api/jobs?search=platform&page=1&pageSize=10", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	page := decode(t, rec)
	if total, _ := page["total"].(float64); total != 1 {
		t.Errorf("total = %v, want 1", page["total"])
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/jobs/"+id, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodGet, "/api/jobs/"+id, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestCreateJobValidation(t *testing.T) {
	router := newTestRouter(t, simnet.Disabled(), nil)
	rec := doJSON(t, router, http.MethodPost, "/api/jobs", map[string]any{"title": ""})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUnknownJobIs404(t *testing.T) {
	router := newTestRouter(t, simnet.Disabled(), nil)
	rec := doJSON(t, router, http.MethodGet, "/api/jobs/job_0_missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestInjectedFailureIs503(t *testing.T) {
	alwaysFail, err := simnet.New(simnet.Options{
		MinFailureRate: 1,
		MaxFailureRate: 1,
		Sleep:          func(context.Context, time.Duration) error { return nil },
	})
	if err != nil {
		t.Fatalf("new injector: %v", err)
	}
	router := newTestRouter(t, alwaysFail, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/jobs", map[string]any{"title": "Doomed"})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503, body %s", rec.Code, rec.Body.String())
	}
	body := decode(t, rec)
	if body["retryable"] != true {
		t.Errorf("retryable = %v, want true", body["retryable"])
	}
}

func TestCandidateStagePatchAppendsTimelineAndNotifies(t *testing.T) {
	notifier := &recordingNotifier{}
	router := newTestRouter(t, simnet.Disabled(), notifier)

	rec := doJSON(t, router, http.MethodPost, "/api/jobs", map[string]any{"title": "Backend Engineer"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create job status = %d", rec.Code)
	}
	jobID := decode(t, rec)["id"].(string)

	rec = doJSON(t, router, http.MethodPost, "/api/candidates", map[string]any{
		"name":  "Ananya Iyer",
		"email": "ananya.iyer@example.com",
		"jobId": jobID,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create candidate status = %d, body %s", rec.Code, rec.Body.String())
	}
	candID := decode(t, rec)["id"].(string)

	rec = doJSON(t, router, http.MethodPatch, "/api/candidates/"+candID, map[string]any{
		"stage": "screen",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/candidates/"+candID+"/timeline", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("timeline status = %d", rec.Code)
	}
	timeline := decode(t, rec)
	events, _ := timeline["data"].([]any)
	if len(events) != 1 {
		t.Fatalf("timeline has %d events, want 1", len(events))
	}

	got := notifier.all()
	if len(got) != 1 {
		t.Fatalf("notifier received %d events, want 1", len(got))
	}
	if got[0].FromStage != "applied" || got[0].ToStage != "screen" {
		t.Errorf("notified %s -> %s, want applied -> screen", got[0].FromStage, got[0].ToStage)
	}
	if got[0].Job == nil || got[0].Job.ID != jobID {
		t.Errorf("notified job = %+v, want id %s", got[0].Job, jobID)
	}
}

func TestPatchWithoutStageChangeStaysQuiet(t *testing.T) {
	notifier := &recordingNotifier{}
	router := newTestRouter(t, simnet.Disabled(), notifier)

	rec := doJSON(t, router, http.MethodPost, "/api/candidates", map[string]any{
		"name":  "Rohan Mehta",
		"email": "rohan.mehta@example.com",
	})
	candID := decode(t, rec)["id"].(string)

	rec = doJSON(t, router, http.MethodPatch, "/api/candidates/"+candID, map[string]any{
		"phone": "+91 98765 43210",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch status = %d", rec.Code)
	}
	if n := len(notifier.all()); n != 0 {
		t.Fatalf("notifier received %d events, want 0", n)
	}
}

func TestAssessmentRoundTrip(t *testing.T) {
	router := newTestRouter(t, simnet.Disabled(), nil)

	rec := doJSON(t, router, http.MethodPost, "/api/jobs", map[string]any{"title": "Data Engineer"})
	jobID := decode(t, rec)["id"].(string)

	rec = doJSON(t, router, http.MethodGet, "/api/jobs/"+jobID+"/assessment", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get before save status = %d, want 404", rec.Code)
	}

	draft := map[string]any{
		"title": "Data Engineer Screen",
		"sections": []map[string]any{{
			"id":    "sec-1",
			"title": "Basics",
			"questions": []map[string]any{{
				"id":       "q1",
				"type":     "short-text",
				"title":    "Favourite query engine?",
				"required": true,
			}},
		}},
	}
	rec = doJSON(t, router, http.MethodPut, "/api/jobs/"+jobID+"/assessment", draft)
	if rec.Code != http.StatusOK {
		t.Fatalf("save status = %d, body %s", rec.Code, rec.Body.String())
	}
	firstID := decode(t, rec)["id"].(string)

	draft["title"] = "Data Engineer Screen v2"
	rec = doJSON(t, router, http.MethodPut, "/api/jobs/"+jobID+"/assessment", draft)
	if rec.Code != http.StatusOK {
		t.Fatalf("resave status = %d", rec.Code)
	}
	if got := decode(t, rec)["id"].(string); got != firstID {
		t.Errorf("resave id = %s, want %s (upsert keeps id)", got, firstID)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/candidates", map[string]any{
		"name":  "Sneha Kulkarni",
		"email": "sneha.kulkarni@example.com",
		"jobId": jobID,
	})
	candID := decode(t, rec)["id"].(string)

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/jobs/%s/assessment/submit", jobID), map[string]any{
		"candidateId": candID,
		"responses": []map[string]any{
			{"questionId": "q1", "value": "duckdb"},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/candidates/"+candID+"/responses", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("responses status = %d", rec.Code)
	}
	responses, _ := decode(t, rec)["data"].([]any)
	if len(responses) != 1 {
		t.Fatalf("responses = %d, want 1", len(responses))
	}
}

func TestSubmitWithoutAssessmentIs404(t *testing.T) {
	router := newTestRouter(t, simnet.Disabled(), nil)

	rec := doJSON(t, router, http.MethodPost, "/api/jobs", map[string]any{"title": "QA Engineer"})
	jobID := decode(t, rec)["id"].(string)

	rec = doJSON(t, router, http.MethodPost, "/api/jobs/"+jobID+"/assessment/submit", map[string]any{
		"candidateId": "candidate-x",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestAddNoteExtractsMentions(t *testing.T) {
	router := newTestRouter(t, simnet.Disabled(), nil)

	rec := doJSON(t, router, http.MethodPost, "/api/candidates", map[string]any{
		"name":  "Vikram Nair",
		"email": "vikram.nair@example.com",
	})
	candID := decode(t, rec)["id"].(string)

	rec = doJSON(t, router, http.MethodPost, "/api/candidates/"+candID+"/notes", map[string]any{
		"content": "Strong systems round, @priya please schedule the next one",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add note status = %d, body %s", rec.Code, rec.Body.String())
	}
	note := decode(t, rec)
	mentions, _ := note["mentions"].([]any)
	if len(mentions) != 1 || mentions[0] != "priya" {
		t.Errorf("mentions = %v, want [priya]", mentions)
	}
}
