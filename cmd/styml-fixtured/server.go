package main

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/dfeneyrou/styml-go"
	"github.com/dfeneyrou/styml-go/stymlfs"
)

func parseBody(body []byte) (*styml.Document, error) {
	return styml.ParseBytes(body)
}

// server holds the dependencies shared by the fixture server's routes.
type server struct {
	loader stymlfs.Loader
	logger *zap.Logger
}

// newRouter registers the fixture server's three routes: POST /parse,
// which parses the request body and echoes back its debug and YAML
// forms, GET /documents/{name}, which does the same for a named file
// from the loader's directory, and GET /healthz, a trivial liveness
// probe.
func newRouter(s *server) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	r.HandleFunc("/parse", s.handleParse).Methods(http.MethodPost)
	r.HandleFunc("/documents/{name}", s.handleDocument).Methods(http.MethodGet)
	return r
}

func (s *server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type parseResponse struct {
	RequestID string `json:"request_id"`
	Debug     string `json:"debug"`
	YAML      string `json:"yaml"`
}

type parseErrorResponse struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
}

func (s *server) handleParse(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	log := s.logger.With(zap.String("request_id", requestID))

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Warn("failed to read request body", zap.Error(err))
		writeParseError(w, requestID, http.StatusBadRequest, err)
		return
	}

	doc, err := parseBody(body)
	if err != nil {
		log.Info("rejected malformed document", zap.Error(err))
		writeParseError(w, requestID, http.StatusUnprocessableEntity, err)
		return
	}

	log.Info("parsed document", zap.Int("bytes", len(body)))
	writeJSON(w, http.StatusOK, parseResponse{
		RequestID: requestID,
		Debug:     doc.Debug(true),
		YAML:      doc.YAML(),
	})
}

// handleDocument serves a named ".styml" file from the loader's
// document directory, rendered as its debug tree.
func (s *server) handleDocument(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	name := mux.Vars(r)["name"]

	doc, err := s.loader.Load(name + ".styml")
	if err != nil {
		s.logger.Info("document not found", zap.String("request_id", requestID), zap.String("name", name), zap.Error(err))
		writeParseError(w, requestID, http.StatusNotFound, err)
		return
	}

	writeJSON(w, http.StatusOK, parseResponse{
		RequestID: requestID,
		Debug:     doc.Debug(true),
		YAML:      doc.YAML(),
	})
}

func writeParseError(w http.ResponseWriter, requestID string, status int, err error) {
	writeJSON(w, status, parseErrorResponse{RequestID: requestID, Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
