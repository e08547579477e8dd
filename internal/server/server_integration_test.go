package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/hastarekha/internal/app"
	"github.com/ayusman/hastarekha/internal/detector"
	"github.com/ayusman/hastarekha/internal/logger"
	"github.com/ayusman/hastarekha/internal/palm"
	"github.com/ayusman/hastarekha/internal/server/api"
	"github.com/ayusman/hastarekha/internal/store"
)

func newTestAnalyzer(t *testing.T, mock *detector.MockDetector, st *store.Store) *app.Analyzer {
	t.Helper()
	return app.New(app.Config{
		Detector:      mock,
		Estimator:     palm.NewSeededEstimator(42),
		Store:         st,
		Timeout:       5 * time.Second,
		ThumbnailSize: 16,
		Logger:        logger.New(io.Discard, "error"),
	})
}

func palmDataURL(t *testing.T) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 24, 24))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 7)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestAPI_ReadingWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer st.Close()

	mock := detector.NewMockDetector()
	mock.SetHands([]detector.HandLandmarks{detector.OpenPalmLandmarks()})

	srv := New(Config{Analyzer: newTestAnalyzer(t, mock, st), Store: st})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	// 1. Create a reading
	body, _ := json.Marshal(api.AnalyzeRequest{
		Image:  palmDataURL(t),
		Age:    "above60",
		Gender: "unspecified",
		Focus:  "wisdom",
	})
	resp, err := client.Post(ts.URL+"/api/readings", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/readings error = %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var created app.Result
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	if created.Features.Shape != palm.ShapeRectangular {
		t.Errorf("shape = %s, want Rectangular", created.Features.Shape)
	}

	// 2. List readings
	resp, _ = client.Get(ts.URL + "/api/readings")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/readings status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var listed struct {
		Readings []struct {
			ID    string `json:"id"`
			Focus string `json:"focusArea"`
		} `json:"readings"`
	}
	json.NewDecoder(resp.Body).Decode(&listed)
	resp.Body.Close()

	if len(listed.Readings) != 1 || listed.Readings[0].Focus != "wisdom" {
		t.Fatalf("readings = %+v", listed.Readings)
	}

	// 3. Get single reading
	resp, _ = client.Get(ts.URL + "/api/readings/" + created.ID)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/readings/%s status = %d, want %d", created.ID, resp.StatusCode, http.StatusOK)
	}
	resp.Body.Close()

	// 4. Delete reading
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/readings/"+created.ID, nil)
	resp, _ = client.Do(req)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
	resp.Body.Close()

	// 5. Verify deleted
	resp, _ = client.Get(ts.URL + "/api/readings/" + created.ID)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("GET after delete status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
	resp.Body.Close()
}

func TestAPI_HealthCheck(t *testing.T) {
	srv := New(Config{Analyzer: newTestAnalyzer(t, detector.NewMockDetector(), nil)})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var health struct {
		Status   string `json:"status"`
		Uptime   string `json:"uptime"`
		Sessions int    `json:"sessions"`
	}
	json.NewDecoder(resp.Body).Decode(&health)

	if health.Status != "ok" {
		t.Errorf("status = %s, want ok", health.Status)
	}
}

func dialAnalyze(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/analyze"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	return conn
}

func TestAnalyzeHandler_StreamsSteps(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	mock := detector.NewMockDetector()
	mock.SetHands([]detector.HandLandmarks{detector.SquarePalmLandmarks()})
	ts := httptest.NewServer(New(Config{Analyzer: newTestAnalyzer(t, mock, nil)}))
	defer ts.Close()

	conn := dialAnalyze(t, ts)
	err := conn.WriteJSON(api.AnalyzeRequest{
		Image:  palmDataURL(t),
		Age:    "18-25",
		Gender: "female",
		Focus:  "social",
	})
	if err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var steps []string
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("ReadJSON() error = %v", err)
		}
		if msg.Type == MessageStep {
			steps = append(steps, msg.Step.Description)
			continue
		}
		if msg.Type != MessageResult {
			t.Fatalf("unexpected message %+v", msg)
		}

		if msg.Result.Source != app.SourceDetected {
			t.Errorf("source = %s, want detected", msg.Result.Source)
		}
		if len(msg.Result.Steps) != len(steps) {
			t.Errorf("result has %d steps, stream sent %d", len(msg.Result.Steps), len(steps))
		}
		break
	}

	if len(steps) == 0 || steps[0] != "Starting palm detection" {
		t.Errorf("steps = %v", steps)
	}
}

func TestAnalyzeHandler_Errors(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ts := httptest.NewServer(New(Config{Analyzer: newTestAnalyzer(t, detector.NewMockDetector(), nil)}))
	defer ts.Close()

	t.Run("invalid context", func(t *testing.T) {
		conn := dialAnalyze(t, ts)
		conn.WriteJSON(api.AnalyzeRequest{Image: palmDataURL(t), Age: "ancient", Gender: "male", Focus: "career"})

		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("ReadJSON() error = %v", err)
		}
		if msg.Type != MessageError || msg.Status != http.StatusBadRequest {
			t.Errorf("message = %+v, want 400 error", msg)
		}
	})

	t.Run("malformed request", func(t *testing.T) {
		conn := dialAnalyze(t, ts)
		conn.WriteMessage(websocket.TextMessage, []byte("{oops"))

		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("ReadJSON() error = %v", err)
		}
		if msg.Type != MessageError || msg.Status != http.StatusBadRequest {
			t.Errorf("message = %+v, want 400 error", msg)
		}
	})
}
