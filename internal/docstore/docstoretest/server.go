// Package docstoretest provides an in-memory document API for tests.
package docstoretest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

// Server is an httptest server speaking the subset of the document API the
// client uses. Documents are kept per "db/collection/id".
type Server struct {
	*httptest.Server

	ProjectID string

	mu    sync.Mutex
	docs  map[string]map[string]any
	calls []Call

	// FailNext, when set, makes the next request with this method answer
	// with the given status.
	failMethod string
	failStatus int
}

// Call records one request received by the server.
type Call struct {
	Method     string
	Collection string
	DocumentID string
}

// NewServer starts a server and registers cleanup with t.
func NewServer(t *testing.T, projectID string) *Server {
	t.Helper()

	s := &Server{
		ProjectID: projectID,
		docs:      make(map[string]map[string]any),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Put seeds a document directly.
func (s *Server) Put(db, collection, id string, data map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := clone(data)
	if d == nil {
		d = make(map[string]any)
	}
	s.docs[key(db, collection, id)] = d
}

// Get returns a copy of a stored document.
func (s *Server) Get(db, collection, id string) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[key(db, collection, id)]
	return clone(d), ok
}

// Count returns how many documents a collection holds.
func (s *Server) Count(db, collection string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := db + "/" + collection + "/"
	n := 0
	for k := range s.docs {
		if strings.HasPrefix(k, prefix) {
			n++
		}
	}
	return n
}

// Calls returns the requests received so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// FailNext makes the next request using method fail with status.
func (s *Server) FailNext(method string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failMethod = method
	s.failStatus = status
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("X-Appwrite-Project") != s.ProjectID {
		writeError(w, http.StatusUnauthorized, "general_unauthorized_scope", "missing project")
		return
	}

	// /databases/{db}/collections/{col}/documents[/{id}]
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 5 || parts[0] != "databases" || parts[2] != "collections" || parts[4] != "documents" {
		writeError(w, http.StatusNotFound, "general_route_not_found", "route not found")
		return
	}
	db, col := parts[1], parts[3]
	var id string
	if len(parts) == 6 {
		id = parts[5]
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failMethod == r.Method {
		status := s.failStatus
		s.failMethod = ""
		s.calls = append(s.calls, Call{Method: r.Method, Collection: col, DocumentID: id})
		writeError(w, status, "general_server_error", http.StatusText(status))
		return
	}

	switch {
	case r.Method == http.MethodGet && id != "":
		s.calls = append(s.calls, Call{Method: r.Method, Collection: col, DocumentID: id})
		d, ok := s.docs[key(db, col, id)]
		if !ok {
			writeError(w, http.StatusNotFound, "document_not_found", "Document with the requested ID could not be found.")
			return
		}
		writeDoc(w, http.StatusOK, db, col, id, d)

	case r.Method == http.MethodPost && id == "":
		var body struct {
			DocumentID string         `json:"documentId"`
			Data       map[string]any `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "general_argument_invalid", err.Error())
			return
		}
		s.calls = append(s.calls, Call{Method: r.Method, Collection: col, DocumentID: body.DocumentID})
		k := key(db, col, body.DocumentID)
		if _, exists := s.docs[k]; exists {
			writeError(w, http.StatusConflict, "document_already_exists", "Document with the requested ID already exists.")
			return
		}
		if body.Data == nil {
			body.Data = make(map[string]any)
		}
		s.docs[k] = body.Data
		writeDoc(w, http.StatusCreated, db, col, body.DocumentID, body.Data)

	case r.Method == http.MethodPatch && id != "":
		var body struct {
			Data map[string]any `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "general_argument_invalid", err.Error())
			return
		}
		s.calls = append(s.calls, Call{Method: r.Method, Collection: col, DocumentID: id})
		d, ok := s.docs[key(db, col, id)]
		if !ok {
			writeError(w, http.StatusNotFound, "document_not_found", "Document with the requested ID could not be found.")
			return
		}
		for k, v := range body.Data {
			d[k] = v
		}
		writeDoc(w, http.StatusOK, db, col, id, d)

	default:
		writeError(w, http.StatusMethodNotAllowed, "general_not_implemented", "method not allowed")
	}
}

func key(db, col, id string) string {
	return db + "/" + col + "/" + id
}

func clone(d map[string]any) map[string]any {
	if d == nil {
		return nil
	}
	out := make(map[string]any, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

func writeDoc(w http.ResponseWriter, status int, db, col, id string, data map[string]any) {
	out := clone(data)
	if out == nil {
		out = make(map[string]any)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	out["$id"] = id
	out["$databaseId"] = db
	out["$collectionId"] = col
	out["$createdAt"] = now
	out["$updatedAt"] = now

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(out)
}

func writeError(w http.ResponseWriter, status int, typ, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"message": msg,
		"code":    status,
		"type":    typ,
		"version": "1.6.0",
	})
}
