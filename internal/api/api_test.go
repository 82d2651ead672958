// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

package api

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/learnpath/internal/config"
	"github.com/tomtom215/learnpath/internal/learn"
	"github.com/tomtom215/learnpath/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := store.Open(store.Config{InMemory: true})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if cerr := st.Close(); cerr != nil {
			t.Errorf("close store: %v", cerr)
		}
	})

	engine, err := learn.NewEngine(learn.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            8080,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
		},
		Engine: *learn.DefaultConfig(),
	}

	srv := httptest.NewServer(NewHandler(st, engine, cfg).Router())
	t.Cleanup(srv.Close)
	return srv
}

type envelope struct {
	Status   string          `json:"status"`
	Data     json.RawMessage `json:"data"`
	Metadata Metadata        `json:"metadata"`
	Error    *APIError       `json:"error"`
}

func doJSON(t *testing.T, method, url string, body interface{}) (int, *envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return resp.StatusCode, &env
}

func decodeData(t *testing.T, env *envelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func seedCatalog(t *testing.T, base string) {
	t.Helper()

	status, env := doJSON(t, http.MethodPost, base+"/api/v1/topics", map[string]interface{}{
		"id":   "algebra",
		"name": "Algebra Basics",
	})
	if status != http.StatusCreated {
		t.Fatalf("create topic: status %d, error %+v", status, env.Error)
	}

	for i := 1; i <= 3; i++ {
		status, env := doJSON(t, http.MethodPost, base+"/api/v1/content", map[string]interface{}{
			"id":               fmt.Sprintf("alg-%d", i),
			"topic_id":         "algebra",
			"content_type":     "video",
			"difficulty":       0.1 * float64(i),
			"title":            fmt.Sprintf("Algebra Lesson %d", i),
			"duration_minutes": 10,
		})
		if status != http.StatusCreated {
			t.Fatalf("create content %d: status %d, error %+v", i, status, env.Error)
		}
	}
}

func createStudent(t *testing.T, base, id string) {
	t.Helper()
	status, env := doJSON(t, http.MethodPost, base+"/api/v1/students", map[string]string{"student_id": id})
	if status != http.StatusCreated {
		t.Fatalf("create student: status %d, error %+v", status, env.Error)
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/health/live", "/health/ready", "/health"} {
		status, env := doJSON(t, http.MethodGet, srv.URL+path, nil)
		if status != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", path, status)
		}
		if env.Status != "success" {
			t.Errorf("%s: envelope status = %q", path, env.Status)
		}
	}

	status, env := doJSON(t, http.MethodGet, srv.URL+"/health", nil)
	if status != http.StatusOK {
		t.Fatalf("health: status %d", status)
	}
	var hs HealthStatus
	decodeData(t, env, &hs)
	if hs.Status != "healthy" {
		t.Errorf("health status = %q, want healthy", hs.Status)
	}
	if !hs.StoreConnected {
		t.Error("store_connected = false")
	}
}

func TestStudentLifecycle(t *testing.T) {
	srv := newTestServer(t)

	createStudent(t, srv.URL, "alice")

	// Duplicate registration conflicts.
	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/students", map[string]string{"student_id": "alice"})
	if status != http.StatusConflict {
		t.Errorf("duplicate create: status = %d, want 409", status)
	}
	if env.Error == nil || env.Error.Code != CodeConflict {
		t.Errorf("duplicate create: error = %+v, want code %s", env.Error, CodeConflict)
	}

	status, env = doJSON(t, http.MethodGet, srv.URL+"/api/v1/students/alice", nil)
	if status != http.StatusOK {
		t.Fatalf("get student: status %d", status)
	}
	var student learn.StudentState
	decodeData(t, env, &student)
	if student.StudentID != "alice" {
		t.Errorf("student_id = %q", student.StudentID)
	}
	if len(student.StylePreferences) != 4 {
		t.Errorf("style preferences = %d entries, want 4", len(student.StylePreferences))
	}

	status, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/students/alice", nil)
	if status != http.StatusOK {
		t.Errorf("delete student: status %d", status)
	}
	status, env = doJSON(t, http.MethodGet, srv.URL+"/api/v1/students/alice", nil)
	if status != http.StatusNotFound {
		t.Errorf("get after delete: status = %d, want 404", status)
	}
	if env.Error == nil || env.Error.Code != CodeNotFound {
		t.Errorf("get after delete: error = %+v", env.Error)
	}
}

func TestCreateStudentValidation(t *testing.T) {
	srv := newTestServer(t)

	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/students", map[string]string{})
	if status != http.StatusBadRequest {
		t.Errorf("missing student_id: status = %d, want 400", status)
	}
	if env.Error == nil || env.Error.Code != CodeValidation {
		t.Errorf("missing student_id: error = %+v", env.Error)
	}
}

func TestUpdatePreferences(t *testing.T) {
	srv := newTestServer(t)
	createStudent(t, srv.URL, "bob")

	status, env := doJSON(t, http.MethodPut, srv.URL+"/api/v1/students/bob/preferences", map[string]interface{}{
		"preferences": map[string]float64{
			"visual":          0.7,
			"auditory":        0.1,
			"kinesthetic":     0.1,
			"reading_writing": 0.1,
		},
	})
	if status != http.StatusOK {
		t.Fatalf("update preferences: status %d, error %+v", status, env.Error)
	}
	var student learn.StudentState
	decodeData(t, env, &student)
	if got := student.StylePreferences[learn.StyleVisual]; got != 0.7 {
		t.Errorf("visual preference = %v, want 0.7", got)
	}

	// Unknown style name is rejected.
	status, env = doJSON(t, http.MethodPut, srv.URL+"/api/v1/students/bob/preferences", map[string]interface{}{
		"preferences": map[string]float64{"telepathic": 1.0},
	})
	if status != http.StatusBadRequest {
		t.Errorf("unknown style: status = %d, want 400", status)
	}

	// Distribution must sum to 1.
	status, _ = doJSON(t, http.MethodPut, srv.URL+"/api/v1/students/bob/preferences", map[string]interface{}{
		"preferences": map[string]float64{"visual": 0.5},
	})
	if status != http.StatusBadRequest {
		t.Errorf("bad distribution: status = %d, want 400", status)
	}
}

func TestCatalogAuthoring(t *testing.T) {
	srv := newTestServer(t)
	seedCatalog(t, srv.URL)

	status, env := doJSON(t, http.MethodGet, srv.URL+"/api/v1/topics", nil)
	if status != http.StatusOK {
		t.Fatalf("list topics: status %d", status)
	}
	var topics map[string]*learn.Topic
	decodeData(t, env, &topics)
	if len(topics) != 1 || topics["algebra"] == nil {
		t.Fatalf("topics = %v, want one algebra entry", topics)
	}

	status, env = doJSON(t, http.MethodGet, srv.URL+"/api/v1/content", nil)
	if status != http.StatusOK {
		t.Fatalf("list content: status %d", status)
	}
	var items []*learn.Content
	decodeData(t, env, &items)
	if len(items) != 3 {
		t.Errorf("content items = %d, want 3", len(items))
	}

	status, env = doJSON(t, http.MethodGet, srv.URL+"/api/v1/content?topic_id=geometry", nil)
	if status != http.StatusOK {
		t.Fatalf("filtered list: status %d", status)
	}
	decodeData(t, env, &items)
	if len(items) != 0 {
		t.Errorf("filtered content items = %d, want 0", len(items))
	}

	// Content referencing a missing topic is rejected.
	status, env = doJSON(t, http.MethodPost, srv.URL+"/api/v1/content", map[string]interface{}{
		"id":               "orphan",
		"topic_id":         "missing",
		"content_type":     "video",
		"difficulty":       0.5,
		"title":            "Orphan",
		"duration_minutes": 5,
	})
	if status != http.StatusBadRequest {
		t.Errorf("orphan content: status = %d, want 400", status)
	}
	if env.Error == nil || env.Error.Code != CodeValidation {
		t.Errorf("orphan content: error = %+v", env.Error)
	}

	// Bad content type fails struct validation.
	status, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/content", map[string]interface{}{
		"id":               "bad-type",
		"topic_id":         "algebra",
		"content_type":     "hologram",
		"difficulty":       0.5,
		"title":            "Bad",
		"duration_minutes": 5,
	})
	if status != http.StatusBadRequest {
		t.Errorf("bad content type: status = %d, want 400", status)
	}
}

func TestRecommendObserveCycle(t *testing.T) {
	srv := newTestServer(t)
	seedCatalog(t, srv.URL)
	createStudent(t, srv.URL, "carol")

	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/students/carol/recommendation", nil)
	if status != http.StatusOK {
		t.Fatalf("recommend: status %d, error %+v", status, env.Error)
	}
	var recResp struct {
		Recommendation learn.Recommendation `json:"recommendation"`
		Content        learn.Content        `json:"content"`
	}
	decodeData(t, env, &recResp)
	if recResp.Recommendation.StudentID != "carol" {
		t.Errorf("recommendation student = %q", recResp.Recommendation.StudentID)
	}
	if recResp.Content.ID == "" {
		t.Fatal("recommendation returned no content")
	}

	status, env = doJSON(t, http.MethodPost, srv.URL+"/api/v1/students/carol/observations", map[string]interface{}{
		"content_id":       recResp.Content.ID,
		"correct":          true,
		"time_spent":       300,
		"engagement_score": 0.9,
	})
	if status != http.StatusOK {
		t.Fatalf("observe: status %d, error %+v", status, env.Error)
	}
	var obsResp struct {
		Student       learn.StudentState `json:"student"`
		TopicID       string             `json:"topic_id"`
		MasteryBefore float64            `json:"mastery_before"`
		MasteryAfter  float64            `json:"mastery_after"`
	}
	decodeData(t, env, &obsResp)
	if obsResp.TopicID != "algebra" {
		t.Errorf("topic_id = %q, want algebra", obsResp.TopicID)
	}
	if obsResp.MasteryAfter <= obsResp.MasteryBefore {
		t.Errorf("mastery did not increase after correct answer: before=%v after=%v",
			obsResp.MasteryBefore, obsResp.MasteryAfter)
	}

	status, env = doJSON(t, http.MethodGet, srv.URL+"/api/v1/students/carol/recommendations", nil)
	if status != http.StatusOK {
		t.Fatalf("history: status %d", status)
	}
	var history []*learn.Recommendation
	decodeData(t, env, &history)
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	if history[0].ContentID != recResp.Content.ID {
		t.Errorf("history content = %q, want %q", history[0].ContentID, recResp.Content.ID)
	}
}

func TestRecommendNoCandidates(t *testing.T) {
	srv := newTestServer(t)
	createStudent(t, srv.URL, "dave")

	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/students/dave/recommendation", nil)
	if status != http.StatusUnprocessableEntity {
		t.Errorf("empty catalog: status = %d, want 422", status)
	}
	if env.Error == nil || env.Error.Code != CodeNoCandidates {
		t.Errorf("empty catalog: error = %+v, want code %s", env.Error, CodeNoCandidates)
	}
}

func TestObservationValidation(t *testing.T) {
	srv := newTestServer(t)
	seedCatalog(t, srv.URL)
	createStudent(t, srv.URL, "erin")

	// Engagement above 1 fails validation before any store access.
	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/students/erin/observations", map[string]interface{}{
		"content_id":       "alg-1",
		"correct":          true,
		"time_spent":       60,
		"engagement_score": 1.5,
	})
	if status != http.StatusBadRequest {
		t.Errorf("bad engagement: status = %d, want 400", status)
	}
	if env.Error == nil || env.Error.Code != CodeValidation {
		t.Errorf("bad engagement: error = %+v", env.Error)
	}

	// Unknown content is a 404.
	status, env = doJSON(t, http.MethodPost, srv.URL+"/api/v1/students/erin/observations", map[string]interface{}{
		"content_id":       "nope",
		"correct":          true,
		"time_spent":       60,
		"engagement_score": 0.5,
	})
	if status != http.StatusNotFound {
		t.Errorf("unknown content: status = %d, want 404", status)
	}
	if env.Error == nil || env.Error.Code != CodeNotFound {
		t.Errorf("unknown content: error = %+v", env.Error)
	}
}

func TestEngineConfigEndpoints(t *testing.T) {
	srv := newTestServer(t)

	status, env := doJSON(t, http.MethodGet, srv.URL+"/api/v1/engine/config", nil)
	if status != http.StatusOK {
		t.Fatalf("get config: status %d", status)
	}
	var ec EngineConfig
	decodeData(t, env, &ec)
	if ec.Weights != learn.DefaultWeights() {
		t.Errorf("weights = %+v, want defaults", ec.Weights)
	}
	if ec.MasteryThreshold != 0.7 {
		t.Errorf("mastery_threshold = %v, want 0.7", ec.MasteryThreshold)
	}

	status, env = doJSON(t, http.MethodPut, srv.URL+"/api/v1/engine/weights", map[string]float64{
		"learning_style": 0.2,
		"difficulty":     0.2,
		"cognitive_load": 0.2,
		"knowledge_gap":  0.2,
		"engagement":     0.2,
	})
	if status != http.StatusOK {
		t.Fatalf("update weights: status %d, error %+v", status, env.Error)
	}

	status, env = doJSON(t, http.MethodGet, srv.URL+"/api/v1/engine/config", nil)
	if status != http.StatusOK {
		t.Fatalf("get config after update: status %d", status)
	}
	decodeData(t, env, &ec)
	if ec.Weights.LearningStyle != 0.2 {
		t.Errorf("learning_style weight = %v, want 0.2", ec.Weights.LearningStyle)
	}

	// Weights that do not sum to 1 are rejected.
	status, env = doJSON(t, http.MethodPut, srv.URL+"/api/v1/engine/weights", map[string]float64{
		"learning_style": 0.5,
		"difficulty":     0.5,
		"cognitive_load": 0.5,
		"knowledge_gap":  0.5,
		"engagement":     0.5,
	})
	if status != http.StatusBadRequest {
		t.Errorf("bad weight sum: status = %d, want 400", status)
	}
	if env.Error == nil || env.Error.Code != CodeValidation {
		t.Errorf("bad weight sum: error = %+v", env.Error)
	}
}

func TestUnknownJSONFieldRejected(t *testing.T) {
	srv := newTestServer(t)

	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/students", map[string]interface{}{
		"student_id": "frank",
		"surprise":   true,
	})
	if status != http.StatusBadRequest {
		t.Errorf("unknown field: status = %d, want 400", status)
	}
	if env.Error == nil || env.Error.Code != CodeBadJSON {
		t.Errorf("unknown field: error = %+v", env.Error)
	}
}
