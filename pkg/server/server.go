/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package server

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	contentTypeJSON = "application/json; charset=utf-8"
	cacheControl    = "max-age=43200"
)

// Server is an in-process stand in for the placeholder service.  Writes are
// acknowledged but never persisted, exactly like the real service.
type Server struct {
	data       *Dataset
	latency    time.Duration
	corsOrigin string
}

// Option customizes the fake.
type Option func(*Server)

// WithLatency delays every response.
func WithLatency(latency time.Duration) Option {
	return func(s *Server) {
		s.latency = latency
	}
}

// WithCORS makes the fake emit Access-Control-Allow-Origin.
func WithCORS(origin string) Option {
	return func(s *Server) {
		s.corsOrigin = origin
	}
}

// New creates a fake provider.
func New(opts ...Option) *Server {
	s := &Server{
		data: NewDataset(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(s.headers)

	router.Route("/{resource}", func(r chi.Router) {
		r.Get("/", s.list)
		r.Post("/", s.create)
		r.Get("/{id}", s.get)
		r.Put("/{id}", s.update)
		r.Delete("/{id}", s.delete)
		r.Get("/{id}/comments", s.listPostComments)
	})

	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, Record{})
	})

	return router
}

func (s *Server) headers(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.latency > 0 {
			time.Sleep(s.latency)
		}

		w.Header().Set("Cache-Control", cacheControl)
		w.Header().Set("X-Content-Type-Options", "nosniff")

		if s.corsOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}

// lookup resolves the {resource} and {id} parameters.
func (s *Server) lookup(r *http.Request) (string, int, bool) {
	resource := chi.URLParam(r, "resource")
	if _, ok := s.data.List(resource); !ok {
		return "", 0, false
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return resource, 0, false
	}

	return resource, id, true
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	records, ok := s.data.List(chi.URLParam(r, "resource"))
	if !ok {
		writeJSON(w, http.StatusNotFound, Record{})
		return
	}

	result, err := query(records, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Record{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	resource, id, ok := s.lookup(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, Record{})
		return
	}

	record, ok := s.data.Get(resource, id)
	if !ok {
		writeJSON(w, http.StatusNotFound, Record{})
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (s *Server) listPostComments(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "resource") != "posts" {
		writeJSON(w, http.StatusNotFound, Record{})
		return
	}

	comments, _ := s.data.List("comments")

	id := chi.URLParam(r, "id")

	result := []Record{}

	for _, comment := range comments {
		if fmt.Sprint(comment["postId"]) == id {
			result = append(result, comment)
		}
	}

	writeJSON(w, http.StatusOK, result)
}

func decodeObject(r *http.Request) (Record, error) {
	body := Record{}

	if r.ContentLength == 0 {
		return body, nil
	}

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding request body: %w", err)
	}

	return body, nil
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")
	if _, ok := s.data.List(resource); !ok {
		writeJSON(w, http.StatusNotFound, Record{})
		return
	}

	body, err := decodeObject(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Record{"error": err.Error()})
		return
	}

	body["id"] = s.data.Count(resource) + 1

	writeJSON(w, http.StatusCreated, body)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	resource, id, ok := s.lookup(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, Record{})
		return
	}

	// The real service fails internally when replacing a record it does not have.
	if _, ok := s.data.Get(resource, id); !ok {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = fmt.Fprintf(w, "TypeError: Cannot read properties of undefined (reading 'id')\n")

		return
	}

	body, err := decodeObject(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Record{"error": err.Error()})
		return
	}

	body["id"] = id

	writeJSON(w, http.StatusOK, body)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := s.lookup(r); !ok {
		writeJSON(w, http.StatusNotFound, Record{})
		return
	}

	writeJSON(w, http.StatusOK, Record{})
}

// query applies key=value filters, then _sort/_order, then _limit.
func query(records []Record, r *http.Request) ([]Record, error) {
	values := r.URL.Query()

	result := make([]Record, 0, len(records))

	for _, record := range records {
		if matches(record, values) {
			result = append(result, record)
		}
	}

	if key := values.Get("_sort"); key != "" {
		order := strings.ToLower(values.Get("_order"))

		slices.SortStableFunc(result, func(a, b Record) int {
			c := compare(a[key], b[key])
			if order == "desc" {
				return -c
			}

			return c
		})
	}

	if limit := values.Get("_limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid _limit %q", limit)
		}

		if n < len(result) {
			result = result[:n]
		}
	}

	return result, nil
}

func matches(record Record, values map[string][]string) bool {
	for key, wanted := range values {
		if strings.HasPrefix(key, "_") {
			continue
		}

		if !slices.Contains(wanted, fmt.Sprint(record[key])) {
			return false
		}
	}

	return true
}

func compare(a, b any) int {
	ai, aok := a.(int)
	bi, bok := b.(int)

	if aok && bok {
		return cmp.Compare(ai, bi)
	}

	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
