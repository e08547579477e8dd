package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/ayusman/hastarekha/internal/app"
	"github.com/ayusman/hastarekha/internal/capture"
	"github.com/ayusman/hastarekha/internal/reading"
	"github.com/ayusman/hastarekha/internal/store"
)

// SessionHeader names the client session a request belongs to.
const SessionHeader = "X-Session-Id"

// DefaultMaxUploadBytes bounds request bodies when no limit is configured.
const DefaultMaxUploadBytes = 10 << 20

var errBadRequest = errors.New("bad request")

// AnalyzeRequest is the JSON form of an analysis request. Image is a
// base64 data URL.
type AnalyzeRequest struct {
	Image     string `json:"image"`
	Age       string `json:"age"`
	Gender    string `json:"gender"`
	Focus     string `json:"focus"`
	SessionID string `json:"sessionId,omitempty"`
}

// Input validates the request and converts it for app.Session.Analyze.
func (req AnalyzeRequest) Input() (app.Input, error) {
	uc, err := reading.ParseUserContext(req.Age, req.Gender, req.Focus)
	if err != nil {
		return app.Input{}, err
	}
	if req.Image == "" {
		return app.Input{}, fmt.Errorf("%w: image is required", errBadRequest)
	}
	contentType, data, err := capture.DecodeDataURL(req.Image)
	if err != nil {
		return app.Input{}, err
	}
	return app.Input{Image: data, ContentType: contentType, Context: uc}, nil
}

// ReadingHandler handles HTTP requests for reading resources.
type ReadingHandler struct {
	sessions  *app.Sessions
	store     *store.Store
	maxUpload int64
}

// NewReadingHandler creates a ReadingHandler. st may be nil, in which case
// only POST is served.
func NewReadingHandler(sessions *app.Sessions, st *store.Store, maxUpload int64) *ReadingHandler {
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUploadBytes
	}
	return &ReadingHandler{sessions: sessions, store: st, maxUpload: maxUpload}
}

// ServeHTTP routes requests to appropriate methods.
// Expected paths: /api/readings, /api/readings/{id}, /api/readings/{id}/thumbnail
func (h *ReadingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/readings")
	path = strings.Trim(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id, sub, _ := strings.Cut(path, "/")
	switch {
	case sub == "" && r.Method == http.MethodGet:
		h.get(w, r, id)
	case sub == "" && r.Method == http.MethodDelete:
		h.delete(w, r, id)
	case sub == "thumbnail" && r.Method == http.MethodGet:
		h.thumbnail(w, r, id)
	case sub == "" || sub == "thumbnail":
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	default:
		http.NotFound(w, r)
	}
}

// create handles POST /api/readings: multipart upload or JSON data URL.
func (h *ReadingHandler) create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	in, err := h.parse(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	res, err := h.sessions.Get(ClientID(r)).Analyze(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, res)
}

func (h *ReadingHandler) parse(r *http.Request) (app.Input, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return app.Input{}, fmt.Errorf("%w: missing or invalid Content-Type", errBadRequest)
	}

	switch mediaType {
	case "application/json":
		var req AnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var maxBytes *http.MaxBytesError
			if errors.As(err, &maxBytes) {
				return app.Input{}, err
			}
			return app.Input{}, fmt.Errorf("%w: invalid JSON", errBadRequest)
		}
		return req.Input()

	case "multipart/form-data":
		return h.parseMultipart(r)

	default:
		return app.Input{}, fmt.Errorf("%w: unsupported Content-Type %q", errBadRequest, mediaType)
	}
}

func (h *ReadingHandler) parseMultipart(r *http.Request) (app.Input, error) {
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return app.Input{}, err
		}
		return app.Input{}, fmt.Errorf("%w: %v", errBadRequest, err)
	}

	uc, err := reading.ParseUserContext(r.FormValue("age"), r.FormValue("gender"), r.FormValue("focus"))
	if err != nil {
		return app.Input{}, err
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return app.Input{}, fmt.Errorf("%w: image file is required", errBadRequest)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return app.Input{}, err
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	return app.Input{Image: data, ContentType: contentType, Context: uc}, nil
}

// list handles GET /api/readings?limit=N and returns recent readings.
func (h *ReadingHandler) list(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusNotFound, "Reading history is disabled")
		return
	}

	limit := store.DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	readings, err := h.store.Readings().List(r.Context(), limit)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"readings": readings})
}

// get handles GET /api/readings/{id} and returns the stored result.
func (h *ReadingHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	if h.store == nil {
		writeError(w, http.StatusNotFound, "Reading history is disabled")
		return
	}

	rd, err := h.store.Readings().GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(rd.Payload)
}

// delete handles DELETE /api/readings/{id}.
func (h *ReadingHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if h.store == nil {
		writeError(w, http.StatusNotFound, "Reading history is disabled")
		return
	}

	if err := h.store.Readings().Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// thumbnail handles GET /api/readings/{id}/thumbnail and returns a PNG.
func (h *ReadingHandler) thumbnail(w http.ResponseWriter, r *http.Request, id string) {
	if h.store == nil {
		writeError(w, http.StatusNotFound, "Reading history is disabled")
		return
	}

	data, err := h.store.Readings().Thumbnail(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// ClientID identifies the caller for the per-client analysis guard: the
// session header when present, otherwise the remote host.
func ClientID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(SessionHeader)); id != "" {
		return id
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
