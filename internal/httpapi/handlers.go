package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/DeafMist/disaster-radar/internal/elasticsearch"
	"github.com/DeafMist/disaster-radar/internal/extract"
	"github.com/DeafMist/disaster-radar/internal/models"
	"github.com/DeafMist/disaster-radar/internal/search"
)

const (
	msgAddFailed    = "something went wrong"
	msgRemoveFailed = "Something went wrong"
	msgCountFailed  = "Couldn't get count"
	msgNoObjID      = "No objId in form"
)

const maxBodyBytes = 1 << 20

func (s *server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Elastic search pipeline"))
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.posts == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "store": "disabled"})
		return
	}

	ctx, cancel := s.storeContext(r)
	defer cancel()

	if err := s.posts.Health(ctx); err != nil {
		s.log.Warn("health check failed", slog.Any("err", err))
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "store unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "store": "ok"})
}

func (s *server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid form"})
		return
	}

	req := search.Request{
		NLP:   r.PostForm.Get("nlp") != "false",
		Query: r.PostForm.Get("query"),
	}
	if !req.NLP {
		req.Manual = extract.ManualFields{
			Query:        r.PostForm.Get("query"),
			DisasterType: r.PostForm.Get("disaster_type"),
			Location:     r.PostForm.Get("location"),
			Date:         r.PostForm.Get("date"),
			Source:       r.PostForm.Get("source"),
			Priority:     r.PostForm.Get("priority"),
		}
	}

	resp := s.searcher.Search(r.Context(), req)
	s.log.Info("search served",
		slog.Bool("nlp", req.NLP),
		slog.Int("results", len(resp.Results)),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	writeJSON(w, http.StatusOK, resp)
}

type autocompleteResponse struct {
	Suggestions []elasticsearch.Suggestion `json:"suggestions"`
}

func (s *server) handleAutocomplete(w http.ResponseWriter, r *http.Request) {
	if s.posts == nil {
		writeJSON(w, http.StatusOK, errorResponse{Error: search.MsgUnconfigured})
		return
	}

	prefix := strings.TrimSpace(r.URL.Query().Get("query"))
	if prefix == "" {
		writeJSON(w, http.StatusOK, autocompleteResponse{Suggestions: []elasticsearch.Suggestion{}})
		return
	}

	ctx, cancel := s.storeContext(r)
	defer cancel()

	suggestions, err := s.posts.Autocomplete(ctx, prefix, s.autocompleteSize)
	if err != nil {
		s.log.Warn("autocomplete failed", slog.Any("err", err))
		writeJSON(w, http.StatusOK, autocompleteResponse{Suggestions: []elasticsearch.Suggestion{}})
		return
	}
	if suggestions == nil {
		suggestions = []elasticsearch.Suggestion{}
	}

	writeJSON(w, http.StatusOK, autocompleteResponse{Suggestions: suggestions})
}

func (s *server) handleAddPost(w http.ResponseWriter, r *http.Request) {
	if s.posts == nil {
		writeJSON(w, http.StatusOK, errorResponse{Error: search.MsgUnconfigured})
		return
	}

	var post models.Post
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&post); err != nil {
		s.log.Warn("decode post", slog.Any("err", err))
		writeJSON(w, http.StatusOK, errorResponse{Error: msgAddFailed})
		return
	}
	if post.PostID == "" {
		post.PostID = uuid.NewString()
	}
	if post.CreatedAt == "" {
		post.CreatedAt = s.clock.Now().UTC().Format(time.RFC3339)
	}

	ctx, cancel := s.storeContext(r)
	defer cancel()

	if err := s.posts.ArchivePost(ctx, post); err != nil {
		s.log.Error("archive post", slog.Any("err", err), slog.String("post_id", post.PostID))
		writeJSON(w, http.StatusOK, errorResponse{Error: msgAddFailed})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"onload": "Successful"})
}

func (s *server) handleRemovePost(w http.ResponseWriter, r *http.Request) {
	if s.posts == nil {
		writeJSON(w, http.StatusOK, errorResponse{Error: search.MsgUnconfigured})
		return
	}
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusOK, errorResponse{Error: msgRemoveFailed})
		return
	}

	objID := strings.TrimSpace(r.PostForm.Get(models.ObjIDField))
	if objID == "" {
		writeJSON(w, http.StatusOK, map[string]string{"success": encode(errorResponse{Error: msgNoObjID})})
		return
	}

	ctx, cancel := s.storeContext(r)
	defer cancel()

	result, err := s.posts.DeletePost(ctx, objID)
	if err != nil {
		if errors.Is(err, elasticsearch.ErrNotFound) {
			s.log.Info("remove unknown post", slog.String("id", objID))
		} else {
			s.log.Error("remove post", slog.Any("err", err), slog.String("id", objID))
		}
		writeJSON(w, http.StatusOK, errorResponse{Error: msgRemoveFailed})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"success": encode(map[string]string{"_id": objID, "result": result}),
	})
}

type countResponse struct {
	Count int64 `json:"count"`
}

func (s *server) handleUnverifiedCount(w http.ResponseWriter, r *http.Request) {
	if s.posts == nil {
		writeJSON(w, http.StatusOK, errorResponse{Error: msgCountFailed})
		return
	}

	ctx, cancel := s.storeContext(r)
	defer cancel()

	n, err := s.posts.Count(ctx)
	if err != nil {
		s.log.Warn("count posts", slog.Any("err", err))
		writeJSON(w, http.StatusOK, errorResponse{Error: msgCountFailed})
		return
	}

	writeJSON(w, http.StatusOK, countResponse{Count: n})
}

func (s *server) handleFindByID(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID *string `json:"id"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil || req.ID == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing id"})
		return
	}
	if s.posts == nil {
		writeJSON(w, http.StatusOK, errorResponse{Error: msgCountFailed})
		return
	}

	ctx, cancel := s.storeContext(r)
	defer cancel()

	n, err := s.posts.CountByPostID(ctx, *req.ID)
	if err != nil {
		s.log.Warn("count by post id", slog.Any("err", err))
		writeJSON(w, http.StatusOK, errorResponse{Error: msgCountFailed})
		return
	}

	writeJSON(w, http.StatusOK, countResponse{Count: n})
}

func encode(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
