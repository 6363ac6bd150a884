// Package apitest runs an in-memory stand-in for the upstream collection API.
// Collections hold raw JSON objects so records round-trip exactly as the
// client sends them.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
)

var collections = []string{"users", "films", "showtimes", "bookings"}

type Server struct {
	URL string

	mu       sync.Mutex
	data     map[string][]map[string]any
	failures map[string]int // "METHOD /path" -> status
	calls    []string
}

// NewServer starts a server closed by t.Cleanup.  POST /login is not routed,
// so clients fall back to scanning /users.
func NewServer(t *testing.T) *Server {
	t.Helper()
	s := &Server{data: map[string][]map[string]any{}, failures: map[string]int{}}
	for _, c := range collections {
		s.data[c] = []map[string]any{}
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(s.record)
	for _, c := range collections {
		c := c
		e.GET("/"+c, func(ec echo.Context) error { return s.list(ec, c) })
		e.POST("/"+c, func(ec echo.Context) error { return s.create(ec, c) })
		e.GET("/"+c+"/:id", func(ec echo.Context) error { return s.get(ec, c) })
		e.PUT("/"+c+"/:id", func(ec echo.Context) error { return s.write(ec, c, false) })
		e.PATCH("/"+c+"/:id", func(ec echo.Context) error { return s.write(ec, c, true) })
		e.DELETE("/"+c+"/:id", func(ec echo.Context) error { return s.remove(ec, c) })
	}

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	s.URL = srv.URL
	return s
}

// Seed appends records to a collection.  Each record is marshalled to JSON
// and back so typed values can be passed in.
func (s *Server) Seed(t *testing.T, collection string, records ...any) {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		b, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("seed %s: %v", collection, err)
		}
		var m map[string]any
		if err := json.Unmarshal(b, &m); err != nil {
			t.Fatalf("seed %s: %v", collection, err)
		}
		s.data[collection] = append(s.data[collection], m)
	}
}

// Fail makes every request matching "METHOD /path" answer status.
func (s *Server) Fail(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = status
}

// Record returns the stored record with id, decoded into out.
func (s *Server) Record(t *testing.T, collection, id string, out any) bool {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(collection, id)
	if i < 0 {
		return false
	}
	b, _ := json.Marshal(s.data[collection][i])
	if err := json.Unmarshal(b, out); err != nil {
		t.Fatalf("decode %s/%s: %v", collection, id, err)
	}
	return true
}

func (s *Server) Len(collection string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data[collection])
}

// Calls returns the "METHOD /path" of every request received so far.
func (s *Server) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *Server) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		route := c.Request().Method + " " + c.Request().URL.Path
		s.mu.Lock()
		s.calls = append(s.calls, route)
		status, fail := s.failures[route]
		s.mu.Unlock()
		if fail {
			return c.JSON(status, echo.Map{"error": "injected failure"})
		}
		return next(c)
	}
}

func (s *Server) index(collection, id string) int {
	for i, r := range s.data[collection] {
		if r["id"] == id {
			return i
		}
	}
	return -1
}

func (s *Server) list(c echo.Context, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, s.data[collection])
}

func (s *Server) get(c echo.Context, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(collection, c.Param("id"))
	if i < 0 {
		return c.JSON(http.StatusNotFound, echo.Map{})
	}
	return c.JSON(http.StatusOK, s.data[collection][i])
}

func (s *Server) create(c echo.Context, collection string) error {
	var m map[string]any
	if err := json.NewDecoder(c.Request().Body).Decode(&m); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[collection] = append(s.data[collection], m)
	return c.JSON(http.StatusCreated, m)
}

func (s *Server) write(c echo.Context, collection string, merge bool) error {
	var m map[string]any
	if err := json.NewDecoder(c.Request().Body).Decode(&m); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Param("id")
	i := s.index(collection, id)
	if i < 0 {
		return c.JSON(http.StatusNotFound, echo.Map{})
	}
	if merge {
		for k, v := range m {
			s.data[collection][i][k] = v
		}
	} else {
		m["id"] = id
		s.data[collection][i] = m
	}
	return c.JSON(http.StatusOK, s.data[collection][i])
}

func (s *Server) remove(c echo.Context, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(collection, c.Param("id"))
	if i < 0 {
		return c.JSON(http.StatusNotFound, echo.Map{})
	}
	s.data[collection] = append(s.data[collection][:i], s.data[collection][i+1:]...)
	return c.JSON(http.StatusOK, echo.Map{})
}
