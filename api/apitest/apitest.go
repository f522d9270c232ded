// Package apitest provides an in-process fake of the extraction service.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/downify/downify/api"
	"github.com/downify/downify/constant"
)

// Reply is a status code and a JSON body.
type Reply struct {
	Code int
	Body any
}

// OK wraps body in a 200 reply.
func OK(body any) Reply {
	return Reply{Code: http.StatusOK, Body: body}
}

// Fail is an error reply carrying a FastAPI-style detail.
func Fail(code int, detail string) Reply {
	return Reply{Code: code, Body: map[string]string{"detail": detail}}
}

// Server records every call it receives. Handlers may be swapped at any time.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	extract     func(api.ExtractRequest) Reply
	queue       func(api.QueueRequest) Reply
	status      func(taskID string, call int) Reply
	files       map[string][]byte
	extracts    []api.ExtractRequest
	queues      []api.QueueRequest
	statusCalls int
	headers     []http.Header
}

// New starts a fake that describes every URL as a single video, accepts every
// job as "task-1" and reports it completed with one file.
func New() *Server {
	s := &Server{
		extract: func(r api.ExtractRequest) Reply {
			return OK(map[string]any{
				"id":          "vid",
				"title":       "Video for " + r.URL,
				"platform":    "Youtube",
				"is_playlist": false,
				"duration":    63,
				"sizes":       map[string]int64{"1080": 1 << 20},
			})
		},
		queue: func(api.QueueRequest) Reply {
			return OK(api.QueueResponse{TaskID: "task-1", Status: api.StatusQueued})
		},
		status: Sequence(api.StatusResponse{Status: api.StatusCompleted, FileID: "file.mp4"}),
		files:  map[string][]byte{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+constant.EndpointExtract, s.handleExtract)
	mux.HandleFunc("POST "+constant.EndpointQueue, s.handleQueue)
	mux.HandleFunc("GET "+constant.EndpointStatus+"{id}", s.handleStatus)
	mux.HandleFunc("GET "+constant.EndpointFile+"{id}", s.handleFile)
	mux.HandleFunc("GET "+constant.EndpointHealth, func(w http.ResponseWriter, _ *http.Request) {
		write(w, OK(map[string]string{"status": "ok"}))
	})

	s.Server = httptest.NewServer(s.record(mux))
	return s
}

// Sequence answers the n-th status call with responses[n], repeating the last one.
func Sequence(responses ...api.StatusResponse) func(string, int) Reply {
	return func(_ string, call int) Reply {
		return OK(responses[min(call, len(responses)-1)])
	}
}

func (s *Server) OnExtract(f func(api.ExtractRequest) Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.extract = f
}

func (s *Server) OnQueue(f func(api.QueueRequest) Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = f
}

func (s *Server) OnStatus(f func(taskID string, call int) Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = f
}

// AddFile serves content under the file id.
func (s *Server) AddFile(id string, content []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[id] = content
}

// Extracts returns the extract requests received so far.
func (s *Server) Extracts() []api.ExtractRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.ExtractRequest(nil), s.extracts...)
}

// Queues returns the queue requests received so far.
func (s *Server) Queues() []api.QueueRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.QueueRequest(nil), s.queues...)
}

// StatusCalls counts status requests.
func (s *Server) StatusCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusCalls
}

// Requests counts every request, including unknown routes.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.headers)
}

// LastHeader returns the headers of the most recent request.
func (s *Server) LastHeader() http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.headers) == 0 {
		return nil
	}
	return s.headers[len(s.headers)-1]
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.headers = append(s.headers, r.Header.Clone())
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var request api.ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		write(w, Fail(http.StatusUnprocessableEntity, err.Error()))
		return
	}

	s.mu.Lock()
	s.extracts = append(s.extracts, request)
	handler := s.extract
	s.mu.Unlock()

	write(w, handler(request))
}

func (s *Server) handleQueue(w http.ResponseWriter, r *http.Request) {
	var request api.QueueRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		write(w, Fail(http.StatusUnprocessableEntity, err.Error()))
		return
	}

	s.mu.Lock()
	s.queues = append(s.queues, request)
	handler := s.queue
	s.mu.Unlock()

	write(w, handler(request))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	call := s.statusCalls
	s.statusCalls++
	handler := s.status
	s.mu.Unlock()

	write(w, handler(r.PathValue("id"), call))
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	content, ok := s.files[id]
	s.mu.Unlock()

	if !ok {
		write(w, Fail(http.StatusNotFound, "File not found"))
		return
	}

	name := id
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(content)
}

func write(w http.ResponseWriter, reply Reply) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(reply.Code)
	_ = json.NewEncoder(w).Encode(reply.Body)
}
