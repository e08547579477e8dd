package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/hastarekha/internal/app"
	"github.com/ayusman/hastarekha/internal/logger"
	"github.com/ayusman/hastarekha/internal/server/api"
)

// Websocket timing constants.
const (
	// requestWait is how long a client has to send its analysis request.
	requestWait = 30 * time.Second
	// writeWait bounds a single message write.
	writeWait = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// Message types sent on /api/analyze.
const (
	MessageStep   = "step"
	MessageResult = "result"
	MessageError  = "error"
)

// Message is one server-to-client frame of an analysis stream.
type Message struct {
	Type   string      `json:"type"`
	Step   *app.Step   `json:"step,omitempty"`
	Result *app.Result `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
	Status int         `json:"status,omitempty"`
}

// AnalyzeHandler runs one analysis per websocket connection, streaming
// detection steps as they happen and then the result.
type AnalyzeHandler struct {
	sessions   *app.Sessions
	maxMessage int64
}

// NewAnalyzeHandler creates a new AnalyzeHandler. maxMessage bounds the
// request frame, which carries the image as a data URL.
func NewAnalyzeHandler(sessions *app.Sessions, maxMessage int64) *AnalyzeHandler {
	if maxMessage <= 0 {
		maxMessage = api.DefaultMaxUploadBytes
	}
	// base64 inflates the image by a third
	return &AnalyzeHandler{sessions: sessions, maxMessage: maxMessage*4/3 + 1024}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *AnalyzeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	conn.SetReadLimit(h.maxMessage)
	conn.SetReadDeadline(time.Now().Add(requestWait))

	var req api.AnalyzeRequest
	if err := conn.ReadJSON(&req); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, websocket.ErrReadLimit) {
			status = http.StatusRequestEntityTooLarge
		}
		send(conn, Message{Type: MessageError, Error: err.Error(), Status: status})
		return
	}
	conn.SetReadDeadline(time.Time{})

	in, err := req.Input()
	if err != nil {
		send(conn, Message{Type: MessageError, Error: err.Error(), Status: api.StatusFor(err)})
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// A closed connection cancels the analysis.
	go func() {
		for {
			if _, _, err := conn.NextReader(); err != nil {
				cancel()
				return
			}
		}
	}()

	clientID := req.SessionID
	if clientID == "" {
		clientID = api.ClientID(r)
	}

	in.OnStep = func(step app.Step) {
		send(conn, Message{Type: MessageStep, Step: &step})
	}

	res, err := h.sessions.Get(clientID).Analyze(ctx, in)
	if err != nil {
		send(conn, Message{Type: MessageError, Error: err.Error(), Status: api.StatusFor(err)})
		return
	}

	send(conn, Message{Type: MessageResult, Result: res})
	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}

func send(conn *websocket.Conn, msg Message) {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(msg); err != nil {
		logger.WithError(err).WithField("type", msg.Type).Debug("websocket write failed")
	}
}
