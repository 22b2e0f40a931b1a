package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/nikogura/career-roadmap/pkg/layout"
	"github.com/nikogura/career-roadmap/pkg/profile"
	"github.com/nikogura/career-roadmap/pkg/recommend"
	"github.com/nikogura/career-roadmap/pkg/renderer"
	"github.com/nikogura/career-roadmap/pkg/store"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recorderServer(t *testing.T, opts ...Option) (s *Server) {
	t.Helper()
	rec := renderer.NewRecorder()
	engine := layout.NewEngine(renderer.NewLoader(func() (renderer.Factory, error) {
		return rec, nil
	}))
	s = New(engine, opts...)
	return s
}

func postProfile(t *testing.T, s *Server, body string) (resp *http.Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/roadmap", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) (body map[string]interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealth(t *testing.T) {
	s := recorderServer(t)

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(HeaderRequestID))
	assert.Equal(t, "ok", decodeBody(t, resp)["status"])
}

func TestRequestIDPassthrough(t *testing.T) {
	s := recorderServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(HeaderRequestID))
}

func TestGenerateRoadmap(t *testing.T) {
	s := recorderServer(t)

	resp := postProfile(t, s, `{"fullName":"Asha Rao","preferredField":"Marketing","skills":["SEO"]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Asha_Rao_career_roadmap.pdf"`, resp.Header.Get("Content-Disposition"))
	assert.Empty(t, resp.Header.Get(HeaderRoadmapID))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Name: Asha Rao")
	assert.Contains(t, string(data), "Skills: SEO")
}

func TestGenerateRoadmap_EmptyProfile(t *testing.T) {
	s := recorderServer(t)

	resp := postProfile(t, s, `{}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="Not_provided_career_roadmap.pdf"`, resp.Header.Get("Content-Disposition"))
}

func TestGenerateRoadmap_BadProfile(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "skills not a list", body: `{"skills":"Go"}`},
		{name: "numeric name", body: `{"fullName":42}`},
		{name: "not json", body: `{"fullName":`},
		{name: "empty body", body: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := recorderServer(t)
			resp := postProfile(t, s, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			body := decodeBody(t, resp)
			assert.Contains(t, body["error"], "invalid profile")
		})
	}
}

func TestGenerateRoadmap_ShapeFields(t *testing.T) {
	s := recorderServer(t)

	resp := postProfile(t, s, `{"skills":[1,2]}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	fields, ok := body["fields"].([]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, fields)
}

type failingGenerator struct{}

func (failingGenerator) Generate(_ context.Context, _ profile.Profile) (out layout.Output, err error) {
	err = &layout.GenerationError{Stage: layout.StageEmbedFont, Err: errors.New("no fonts today")}
	return out, err
}

func TestGenerateRoadmap_GenerationFailure(t *testing.T) {
	s := New(failingGenerator{})

	resp := postProfile(t, s, `{}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotEqual(t, "application/pdf", resp.Header.Get("Content-Type"))

	body := decodeBody(t, resp)
	assert.Equal(t, "embed_font", body["stage"])
	assert.Contains(t, body["error"], "no fonts today")
}

type blockingGenerator struct {
	started chan struct{}
	release chan struct{}
}

func (g *blockingGenerator) Generate(_ context.Context, _ profile.Profile) (out layout.Output, err error) {
	close(g.started)
	<-g.release
	out = layout.Output{Bytes: []byte("%PDF-"), FileName: "x_career_roadmap.pdf"}
	return out, err
}

func TestGenerateRoadmap_InProgress(t *testing.T) {
	gen := &blockingGenerator{started: make(chan struct{}), release: make(chan struct{})}
	s := New(gen)

	var wg sync.WaitGroup
	var firstStatus int
	wg.Add(1)
	go func() {
		defer wg.Done()
		req := httptest.NewRequest(http.MethodPost, "/api/roadmap", bytes.NewBufferString(`{}`))
		resp, err := s.App().Test(req, -1)
		if err == nil {
			firstStatus = resp.StatusCode
		}
	}()

	select {
	case <-gen.started:
	case <-time.After(5 * time.Second):
		t.Fatal("first generation never started")
	}

	resp := postProfile(t, s, `{}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, ErrBusy.Error(), decodeBody(t, resp)["error"])

	close(gen.release)
	wg.Wait()
	assert.Equal(t, http.StatusOK, firstStatus)
}

func TestGenerateRoadmap_GuardReleased(t *testing.T) {
	s := New(failingGenerator{})

	for range 3 {
		resp := postProfile(t, s, `{}`)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	}
}

func TestFields(t *testing.T) {
	s := recorderServer(t)

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/api/fields", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Fields []string `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, recommend.KnownFields(), body.Fields)
}

func TestRecommendations(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		field   string
		curated bool
		first   string
	}{
		{name: "curated", query: "?field=Data+Science", field: recommend.FieldDataScience, curated: true, first: recommend.ResolveSkills(recommend.FieldDataScience)[0]},
		{name: "missing field", query: "", field: profile.DefaultField, curated: false, first: recommend.ResolveSkills("")[0]},
		{name: "empty field", query: "?field=", field: profile.DefaultField, curated: false, first: recommend.ResolveSkills("")[0]},
		{name: "unknown field", query: "?field=Astronomy", field: "Astronomy", curated: false, first: recommend.ResolveSkills("Astronomy")[0]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := recorderServer(t)
			resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/api/recommendations"+tt.query, nil))
			require.NoError(t, err)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var set recommend.Set
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&set))
			assert.Equal(t, tt.field, set.Field)
			assert.Equal(t, tt.curated, set.Curated)
			require.NotEmpty(t, set.Skills)
			assert.Equal(t, tt.first, set.Skills[0])
		})
	}
}

type memoryArchive struct {
	mu      sync.Mutex
	records map[uuid.UUID]store.Record
	saveErr error
}

func newMemoryArchive() (a *memoryArchive) {
	a = &memoryArchive{records: map[uuid.UUID]store.Record{}}
	return a
}

func (a *memoryArchive) Save(_ context.Context, rec store.Record) (saved store.Record, err error) {
	if a.saveErr != nil {
		err = a.saveErr
		return saved, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	saved = rec
	saved.ID = uuid.New()
	saved.Size = len(rec.Content)
	a.records[saved.ID] = saved
	return saved, err
}

func (a *memoryArchive) Get(_ context.Context, id uuid.UUID) (rec store.Record, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	rec, ok := a.records[id]
	if !ok {
		err = store.ErrNotFound
	}
	return rec, err
}

func TestArchiveRoundTrip(t *testing.T) {
	archive := newMemoryArchive()
	s := recorderServer(t, WithArchive(archive))

	resp := postProfile(t, s, `{"fullName":"Asha Rao","preferredField":"Marketing"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	generated, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	id := resp.Header.Get(HeaderRoadmapID)
	require.NotEmpty(t, id)

	stored := archive.records[uuid.MustParse(id)]
	assert.Equal(t, recommend.FieldMarketing, stored.Field)
	assert.True(t, stored.Curated)
	assert.Equal(t, "Asha Rao", stored.FullName)

	resp, err = s.App().Test(httptest.NewRequest(http.MethodGet, "/api/roadmaps/"+id, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="Asha_Rao_career_roadmap.pdf"`, resp.Header.Get("Content-Disposition"))

	fetched, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, generated, fetched)
}

func TestArchiveSaveFailureStillServesPDF(t *testing.T) {
	archive := newMemoryArchive()
	archive.saveErr = errors.New("database is down")
	s := recorderServer(t, WithArchive(archive))

	resp := postProfile(t, s, `{}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get(HeaderRoadmapID))
}

func TestGetRoadmap_Errors(t *testing.T) {
	tests := []struct {
		name    string
		archive Archive
		id      string
		status  int
	}{
		{name: "no archive", archive: nil, id: uuid.NewString(), status: fiber.StatusNotFound},
		{name: "bad id", archive: newMemoryArchive(), id: "not-a-uuid", status: fiber.StatusBadRequest},
		{name: "missing", archive: newMemoryArchive(), id: uuid.NewString(), status: fiber.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []Option
			if tt.archive != nil {
				opts = append(opts, WithArchive(tt.archive))
			}
			s := recorderServer(t, opts...)

			resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/api/roadmaps/"+tt.id, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.NotEmpty(t, decodeBody(t, resp)["error"])
		})
	}
}
