package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ayusman/hastarekha/internal/app"
	"github.com/ayusman/hastarekha/internal/detector"
	"github.com/ayusman/hastarekha/internal/logger"
	"github.com/ayusman/hastarekha/internal/palm"
	"github.com/ayusman/hastarekha/internal/store"
)

// newTestStore creates a new Store with a temporary database for testing.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func newTestHandler(t *testing.T, mock *detector.MockDetector, st *store.Store, maxUpload int64) *ReadingHandler {
	t.Helper()
	a := app.New(app.Config{
		Detector:      mock,
		Estimator:     palm.NewSeededEstimator(7),
		Store:         st,
		Timeout:       5 * time.Second,
		ThumbnailSize: 16,
		Logger:        logger.New(io.Discard, "error"),
	})
	return NewReadingHandler(app.NewSessions(a), st, maxUpload)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for i := range img.Pix {
		img.Pix[i] = uint8(i)
	}
	img.Set(0, 0, color.NRGBA{A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func jsonRequest(t *testing.T, req AnalyzeRequest) *http.Request {
	t.Helper()
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	r := httptest.NewRequest(http.MethodPost, "/api/readings", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func validRequest(t *testing.T) AnalyzeRequest {
	return AnalyzeRequest{
		Image:  "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t)),
		Age:    "36-45",
		Gender: "male",
		Focus:  "wealth",
	}
}

func squareMock() *detector.MockDetector {
	m := detector.NewMockDetector()
	m.SetHands([]detector.HandLandmarks{detector.SquarePalmLandmarks()})
	return m
}

func TestReadingHandler_CreateJSON(t *testing.T) {
	handler := newTestHandler(t, squareMock(), nil, 0)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, jsonRequest(t, validRequest(t)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	var res app.Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if res.Source != app.SourceDetected {
		t.Errorf("source = %s, want detected", res.Source)
	}
	if res.Features.Shape != palm.ShapeSquare {
		t.Errorf("shape = %s, want Square", res.Features.Shape)
	}
	if res.Context.Focus != "wealth" {
		t.Errorf("focus = %s, want wealth", res.Context.Focus)
	}
	if len(res.Reading.KeyFindings) < 5 {
		t.Errorf("key findings = %d, want at least 5", len(res.Reading.KeyFindings))
	}
}

func TestReadingHandler_CreateMultipart(t *testing.T) {
	handler := newTestHandler(t, squareMock(), nil, 0)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("age", "under18")
	mw.WriteField("gender", "female")
	mw.WriteField("focus", "love")

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="palm.png"`)
	h.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatalf("CreatePart() error = %v", err)
	}
	part.Write(pngBytes(t))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/readings", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var res app.Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if res.Context.Age != "under18" || res.Context.Gender != "female" {
		t.Errorf("context = %+v", res.Context)
	}
}

func TestReadingHandler_CreateRejections(t *testing.T) {
	tests := []struct {
		name       string
		request    func(t *testing.T) *http.Request
		wantStatus int
	}{
		{
			name: "invalid focus",
			request: func(t *testing.T) *http.Request {
				req := validRequest(t)
				req.Focus = "fame"
				return jsonRequest(t, req)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing age",
			request: func(t *testing.T) *http.Request {
				req := validRequest(t)
				req.Age = ""
				return jsonRequest(t, req)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "not an image",
			request: func(t *testing.T) *http.Request {
				req := validRequest(t)
				req.Image = "data:text/plain;base64,aGVsbG8="
				return jsonRequest(t, req)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing image",
			request: func(t *testing.T) *http.Request {
				req := validRequest(t)
				req.Image = ""
				return jsonRequest(t, req)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "invalid JSON",
			request: func(t *testing.T) *http.Request {
				r := httptest.NewRequest(http.MethodPost, "/api/readings", strings.NewReader("{not json"))
				r.Header.Set("Content-Type", "application/json")
				return r
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing content type",
			request: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/readings", strings.NewReader("{}"))
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := squareMock()
			handler := newTestHandler(t, mock, nil, 0)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, tt.request(t))

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}

			var response errorResponse
			if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if response.Message == "" {
				t.Error("expected an error message")
			}
			if mock.Calls() != 0 {
				t.Errorf("detector should not run for rejected requests, calls = %d", mock.Calls())
			}
		})
	}
}

func TestReadingHandler_CreateTooLarge(t *testing.T) {
	handler := newTestHandler(t, squareMock(), nil, 128)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, jsonRequest(t, validRequest(t)))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected status %d, got %d", http.StatusRequestEntityTooLarge, rec.Code)
	}
}

func TestReadingHandler_CreateConcurrent(t *testing.T) {
	mock := squareMock()
	release := make(chan struct{})
	mock.Block(release)
	handler := newTestHandler(t, mock, nil, 0)

	first := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		defer close(done)
		req := jsonRequest(t, validRequest(t))
		req.Header.Set(SessionHeader, "client-1")
		handler.ServeHTTP(first, req)
	}()

	select {
	case <-mock.Started():
	case <-time.After(5 * time.Second):
		t.Fatal("first request never reached the detector")
	}

	second := httptest.NewRecorder()
	req := jsonRequest(t, validRequest(t))
	req.Header.Set(SessionHeader, "client-1")
	handler.ServeHTTP(second, req)

	if second.Code != http.StatusConflict {
		t.Errorf("second request: expected status %d, got %d", http.StatusConflict, second.Code)
	}

	close(release)
	<-done

	if first.Code != http.StatusCreated {
		t.Errorf("first request: expected status %d, got %d", http.StatusCreated, first.Code)
	}
}

func TestReadingHandler_History(t *testing.T) {
	st := newTestStore(t)
	handler := newTestHandler(t, squareMock(), st, 0)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, jsonRequest(t, validRequest(t)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected status %d, got %d", http.StatusCreated, rec.Code)
	}
	var created app.Result
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	t.Run("list", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/readings?limit=5", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
		var response struct {
			Readings []store.Reading `json:"readings"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(response.Readings) != 1 || response.Readings[0].ID != created.ID {
			t.Errorf("readings = %+v", response.Readings)
		}
	})

	t.Run("invalid limit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/readings?limit=-1", nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})

	t.Run("get", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/readings/"+created.ID, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
		var got app.Result
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if got.ID != created.ID || got.Reading.Readings["wealth"] != created.Reading.Readings["wealth"] {
			t.Error("stored reading differs from the created one")
		}
	})

	t.Run("thumbnail", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/readings/"+created.ID+"/thumbnail", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
			t.Errorf("Content-Type = %s, want image/png", ct)
		}
		if _, err := png.Decode(rec.Body); err != nil {
			t.Errorf("thumbnail is not a PNG: %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/readings/"+created.ID, nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
		}

		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/readings/"+created.ID, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("get after delete: expected status %d, got %d", http.StatusNotFound, rec.Code)
		}
	})

	t.Run("delete missing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/readings/nope", nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
		}
	})
}

func TestReadingHandler_HistoryDisabled(t *testing.T) {
	handler := newTestHandler(t, squareMock(), nil, 0)

	for _, path := range []string{"/api/readings", "/api/readings/abc", "/api/readings/abc/thumbnail"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s: expected status %d, got %d", path, http.StatusNotFound, rec.Code)
		}
	}
}

func TestReadingHandler_MethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t, squareMock(), newTestStore(t), 0)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPut, "/api/readings"},
		{http.MethodDelete, "/api/readings"},
		{http.MethodPost, "/api/readings/abc"},
		{http.MethodDelete, "/api/readings/abc/thumbnail"},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s: expected status %d, got %d", tt.method, tt.path, http.StatusMethodNotAllowed, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/readings/abc/other", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown sub-resource: expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestClientID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	if got := ClientID(req); got != "10.1.2.3" {
		t.Errorf("ClientID() = %q, want remote host", got)
	}

	req.Header.Set(SessionHeader, " tab-7 ")
	if got := ClientID(req); got != "tab-7" {
		t.Errorf("ClientID() = %q, want header value", got)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{app.ErrConcurrentRequest, http.StatusConflict},
		{store.ErrNotFound, http.StatusNotFound},
		{errBadRequest, http.StatusBadRequest},
		{&http.MaxBytesError{Limit: 1}, http.StatusRequestEntityTooLarge},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
