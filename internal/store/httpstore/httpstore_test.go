package httpstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/haierkeys/note-board-sync-service/internal/board"
	"github.com/haierkeys/note-board-sync-service/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"code":   0,
		"status": true,
		"data":   data,
	})
}

func TestFetchAllEmptyCredential(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	s := NewClient(Config{BaseURL: srv.URL})
	notes, err := s.FetchAll(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, notes)
	assert.False(t, called, "no request should be sent without a credential")
}

func TestFetchAllTranslatesRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/notes", r.URL.Path)
		assert.Equal(t, "token-abc", r.Header.Get("Authorization"))

		writeEnvelope(w, map[string]any{
			"list": []map[string]any{
				{"noteId": "n1", "title": "first", "color": "blue", "x": 10.5, "y": -3, "width": 240, "height": 180, "ctime": 100, "mtime": 200},
				{"noteId": "n2", "content": "body", "color": "pink", "ctime": 300, "mtime": 300},
			},
			"total": 2,
		})
	}))
	defer srv.Close()

	s := NewClient(Config{BaseURL: srv.URL})
	notes, err := s.FetchAll(context.Background(), "token-abc")
	require.NoError(t, err)
	require.Len(t, notes, 2)

	assert.Equal(t, "n1", notes[0].ID)
	assert.Equal(t, "first", notes[0].Title)
	assert.Equal(t, "blue", notes[0].Color)
	assert.Equal(t, 10.5, notes[0].X)
	assert.Equal(t, int64(200), notes[0].Mtime)
	assert.Equal(t, "n2", notes[1].ID)
	assert.Equal(t, "body", notes[1].Content)
}

func TestCreateRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/note", r.URL.Path)

		var rec noteRecord
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rec))
		assert.Equal(t, "n1", rec.NoteID)
		assert.Equal(t, "hello", rec.Title)

		writeEnvelope(w, rec)
	}))
	defer srv.Close()

	s := NewClient(Config{BaseURL: srv.URL})
	note := &board.Note{ID: "n1", Title: "hello", Color: "yellow", Width: 240, Height: 180, Ctime: 1, Mtime: 1}

	stored, err := s.Create(context.Background(), "token", note)
	require.NoError(t, err)
	assert.Equal(t, note.ID, stored.ID)
	assert.Equal(t, note.Title, stored.Title)
	assert.Equal(t, note.Width, stored.Width)
}

func TestUpdateSendsOnlySetFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/note/n1", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "x")
		assert.Contains(t, body, "y")
		assert.NotContains(t, body, "title")
		assert.NotContains(t, body, "content")

		writeEnvelope(w, nil)
	}))
	defer srv.Close()

	s := NewClient(Config{BaseURL: srv.URL})
	x, y := 12.0, 34.0
	err := s.Update(context.Background(), "token", "n1", board.NoteFields{X: &x, Y: &y})
	require.NoError(t, err)
}

func TestDeletePropagatesRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code":    10020001,
			"status":  false,
			"message": "note not found",
		})
	}))
	defer srv.Close()

	s := NewClient(Config{BaseURL: srv.URL})
	err := s.Delete(context.Background(), "token", "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "10020001")
	assert.Contains(t, err.Error(), "note not found")
}

func TestNullDataTreatedAsAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":0,"status":true,"data":null}`))
	}))
	defer srv.Close()

	s := NewClient(Config{BaseURL: srv.URL})

	// 未保存过视口时返回 nil 而不是零值
	vp, err := s.FetchViewport(context.Background(), "token")
	require.NoError(t, err)
	assert.Nil(t, vp)

	// 服务端无返回数据时回退为本地副本
	note := &board.Note{ID: "n1", Color: "yellow", Width: 240, Height: 180, Ctime: 1, Mtime: 1}
	stored, err := s.Create(context.Background(), "token", note)
	require.NoError(t, err)
	assert.Equal(t, note.ID, stored.ID)
	assert.Equal(t, note.Width, stored.Width)
}

func TestViewportStoreRoundTrip(t *testing.T) {
	var saved *viewportPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var payload viewportPayload
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			saved = &payload
			writeEnvelope(w, nil)
		case http.MethodGet:
			if saved == nil {
				writeEnvelope(w, nil)
				return
			}
			writeEnvelope(w, saved)
		}
	}))
	defer srv.Close()

	vs := NewViewportStore(NewClient(Config{BaseURL: srv.URL}), "token")

	// 未保存过时回退到默认视口
	vp, err := vs.LoadViewport()
	require.NoError(t, err)
	assert.Equal(t, geometry.DefaultViewport(), vp)

	want := geometry.Viewport{OffsetX: 120, OffsetY: -48, Scale: 1.21}
	require.NoError(t, vs.SaveViewport(want))

	got, err := vs.LoadViewport()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
