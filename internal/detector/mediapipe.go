package detector

import (
	"bufio"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

const scriptName = "mediapipe_service.py"

// MediaPipeDetector implements Detector using a Python MediaPipe subprocess.
//
// Images are written to the subprocess stdin as a 4-byte big-endian length
// followed by JPEG bytes. The subprocess answers with one JSON line per image.
// One image is in flight at a time; a caller whose context ends while waiting
// for a reply gets ctx.Err() and the reply is drained in the background.
type MediaPipeDetector struct {
	config     Config
	scriptPath string

	// busy holds one token while the pipe has an unanswered request.
	busy chan struct{}

	mu        sync.Mutex
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stdout    *bufio.Reader
	started   bool
	idleTimer *time.Timer
}

// NewMediaPipeDetector creates a new MediaPipe detector and starts the Python
// process so the model loads before the first request.
func NewMediaPipeDetector(config Config) (*MediaPipeDetector, error) {
	scriptPath := config.ScriptPath
	if scriptPath == "" {
		scriptPath = findMediaPipeScript()
	}
	if scriptPath == "" {
		return nil, fmt.Errorf("%s not found", scriptName)
	}
	if _, err := os.Stat(scriptPath); err != nil {
		return nil, fmt.Errorf("mediapipe script: %w", err)
	}
	if config.IdleTimeout <= 0 {
		config.IdleTimeout = DefaultConfig().IdleTimeout
	}

	d := &MediaPipeDetector{
		config:     config,
		scriptPath: scriptPath,
		busy:       make(chan struct{}, 1),
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.ensureStarted(); err != nil {
		return nil, err
	}
	d.resetIdleTimer()
	return d, nil
}

type detectReply struct {
	hands []HandLandmarks
	err   error
}

// Detect sends one image to the subprocess and waits for its landmarks.
// It returns ctx.Err() as soon as ctx ends, whether it was still waiting for
// an earlier request to finish or for its own reply.
func (d *MediaPipeDetector) Detect(ctx context.Context, frame *gocv.Mat) ([]HandLandmarks, error) {
	if frame == nil || frame.Empty() {
		return nil, fmt.Errorf("empty frame")
	}

	select {
	case d.busy <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if err := ctx.Err(); err != nil {
		<-d.busy
		return nil, err
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, *frame)
	if err != nil {
		<-d.busy
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	data := append([]byte(nil), buf.GetBytes()...)
	buf.Close()

	d.mu.Lock()
	if err := d.ensureStarted(); err != nil {
		d.mu.Unlock()
		<-d.busy
		return nil, err
	}
	if d.idleTimer != nil {
		d.idleTimer.Stop()
	}
	w, r := d.stdin, d.stdout
	d.mu.Unlock()

	done := make(chan detectReply, 1)
	go func() {
		hands, err := roundTrip(w, r, data)
		done <- detectReply{hands: hands, err: err}
	}()

	select {
	case reply := <-done:
		d.finish(reply.err)
		if reply.err != nil {
			return nil, reply.err
		}
		return d.filter(reply.hands), nil
	case <-ctx.Done():
		// The subprocess keeps its loaded model; the late reply is discarded.
		go func() {
			reply := <-done
			d.finish(reply.err)
		}()
		return nil, ctx.Err()
	}
}

// finish releases the pipe after a reply. A failed round trip leaves the
// protocol in an unknown state, so the process is killed and restarted lazily.
func (d *MediaPipeDetector) finish(err error) {
	d.mu.Lock()
	if err != nil {
		d.kill()
	} else {
		d.resetIdleTimer()
	}
	d.mu.Unlock()
	<-d.busy
}

// Close shuts down the Python process. A request still in flight is cut off.
func (d *MediaPipeDetector) Close() error {
	select {
	case d.busy <- struct{}{}:
		defer func() { <-d.busy }()
		d.mu.Lock()
		defer d.mu.Unlock()
		return d.shutdown()
	default:
		d.mu.Lock()
		defer d.mu.Unlock()
		d.kill()
		return nil
	}
}

// running reports whether the subprocess is up.
func (d *MediaPipeDetector) running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.started
}

func roundTrip(w io.Writer, r *bufio.Reader, data []byte) ([]HandLandmarks, error) {
	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(len(data)))

	if _, err := w.Write(length); err != nil {
		return nil, fmt.Errorf("write length: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("write data: %w", err)
	}

	line, err := r.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return parseResponse([]byte(line))
}

func (d *MediaPipeDetector) filter(hands []HandLandmarks) []HandLandmarks {
	kept := hands[:0]
	for _, h := range hands {
		if h.Score < d.config.MinConfidence {
			continue
		}
		kept = append(kept, h)
		if d.config.MaxHands > 0 && len(kept) == d.config.MaxHands {
			break
		}
	}
	return kept
}

func (d *MediaPipeDetector) ensureStarted() error {
	if d.started {
		return nil
	}

	// Use virtual environment Python if available
	pythonPath := findVenvPython()
	if pythonPath == "" {
		pythonPath = "python3"
	}

	d.cmd = exec.Command(pythonPath, d.scriptPath,
		"--max-hands", strconv.Itoa(d.config.MaxHands),
		"--min-confidence", strconv.FormatFloat(d.config.MinConfidence, 'f', -1, 64),
	)

	stdin, err := d.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}

	stdout, err := d.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}

	d.cmd.Stderr = os.Stderr

	if err := d.cmd.Start(); err != nil {
		return fmt.Errorf("start mediapipe service: %w", err)
	}

	d.stdin = stdin
	d.stdout = bufio.NewReader(stdout)
	d.started = true

	return nil
}

// kill terminates the subprocess without waiting for it to drain stdin.
func (d *MediaPipeDetector) kill() {
	if d.started && d.cmd != nil && d.cmd.Process != nil {
		d.cmd.Process.Kill()
	}
	d.shutdown()
}

func (d *MediaPipeDetector) shutdown() error {
	if !d.started {
		return nil
	}

	if d.idleTimer != nil {
		d.idleTimer.Stop()
		d.idleTimer = nil
	}

	if d.stdin != nil {
		d.stdin.Close()
	}

	err := d.cmd.Wait()
	d.started = false
	d.cmd = nil
	d.stdin = nil
	d.stdout = nil

	return err
}

func (d *MediaPipeDetector) resetIdleTimer() {
	if d.idleTimer != nil {
		d.idleTimer.Stop()
	}
	d.idleTimer = time.AfterFunc(d.config.IdleTimeout, func() {
		select {
		case d.busy <- struct{}{}:
		default:
			return // a request is in flight and will re-arm the timer
		}
		defer func() { <-d.busy }()
		d.mu.Lock()
		defer d.mu.Unlock()
		d.shutdown()
	})
}

func findMediaPipeScript() string {
	execPath, err := os.Executable()
	var execDir string
	if err == nil {
		execDir = filepath.Dir(execPath)
	}

	candidates := []string{
		filepath.Join("scripts", scriptName),
		filepath.Join("..", "scripts", scriptName),
		filepath.Join(execDir, "scripts", scriptName),
		filepath.Join(os.Getenv("HOME"), ".hastarekha", "scripts", scriptName),
	}
	return firstExisting(candidates)
}

// findVenvPython looks for a Python interpreter in a virtual environment.
func findVenvPython() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	execDir := filepath.Dir(execPath)

	candidates := []string{
		"venv/bin/python",
		"../venv/bin/python",
		filepath.Join(execDir, "venv/bin/python"),
		filepath.Join(os.Getenv("HOME"), ".hastarekha/venv/bin/python"),
	}
	return firstExisting(candidates)
}

func firstExisting(paths []string) string {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				return absPath
			}
			return path
		}
	}
	return ""
}

// jsonHand represents the JSON structure from the Python service.
type jsonHand struct {
	Points     []Point3D `json:"points"`
	Handedness string    `json:"handedness"`
	Score      float64   `json:"score"`
}

// parseResponse decodes one reply line. Hands without a full landmark set are dropped.
func parseResponse(line []byte) ([]HandLandmarks, error) {
	var response struct {
		Hands []jsonHand `json:"hands"`
		Error string     `json:"error"`
	}
	if err := json.Unmarshal(line, &response); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if response.Error != "" {
		return nil, fmt.Errorf("mediapipe service: %s", response.Error)
	}

	result := make([]HandLandmarks, 0, len(response.Hands))
	for _, h := range response.Hands {
		if len(h.Points) != NumLandmarks {
			continue
		}
		lm := HandLandmarks{Handedness: h.Handedness, Score: h.Score}
		copy(lm.Points[:], h.Points)
		result = append(result, lm)
	}
	return result, nil
}
