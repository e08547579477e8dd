package cli

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/ayusman/hastarekha/internal/app"
	"github.com/ayusman/hastarekha/internal/detector"
	"github.com/ayusman/hastarekha/internal/palm"
)

func writePalm(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, color.RGBA{R: uint8(180 + x), G: uint8(120 + y), B: 100, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "palm.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("os.Create() error = %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return path
}

// run executes the command tree with a mock detector that finds a square palm.
func run(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HASTAREKHA_LOG_LEVEL", "error")

	o := &rootOptions{
		newDetector: func(detector.Config, *logrus.Logger) detector.Detector {
			m := detector.NewMockDetector()
			m.SetHands([]detector.HandLandmarks{detector.SquarePalmLandmarks()})
			return m
		},
	}
	cmd := newRootCmd(o)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--db", db}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRead(t *testing.T) {
	if testing.Short() {
		t.Skip("requires OpenCV")
	}
	db := filepath.Join(t.TempDir(), "readings.db")
	img := writePalm(t)

	t.Run("json with seed is reproducible", func(t *testing.T) {
		args := []string{"read", "--image", img, "--age", "26-35", "--gender", "female", "--focus", "career", "--seed", "7"}
		first, err := run(t, db, args...)
		if err != nil {
			t.Fatalf("read error = %v", err)
		}
		second, err := run(t, db, args...)
		if err != nil {
			t.Fatalf("read error = %v", err)
		}

		var a, b app.Result
		if err := json.Unmarshal([]byte(first), &a); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, first)
		}
		json.Unmarshal([]byte(second), &b)

		if a.Source != app.SourceDetected {
			t.Errorf("source = %s, want detected", a.Source)
		}
		if a.Features.Shape != palm.ShapeSquare {
			t.Errorf("shape = %s, want Square", a.Features.Shape)
		}
		if a.Features.Lines != b.Features.Lines {
			t.Errorf("same seed gave different lines: %+v vs %+v", a.Features.Lines, b.Features.Lines)
		}
		if a.Reading.Readings["career"] != b.Reading.Readings["career"] {
			t.Error("same seed gave different career readings")
		}
	})

	t.Run("text", func(t *testing.T) {
		out, err := run(t, db, "read", "-i", img, "--age", "above60", "--focus", "wisdom", "-f", "text")
		if err != nil {
			t.Fatalf("read error = %v", err)
		}
		for _, want := range []string{"Key findings", "CAREER", "WISDOM", "POTENTIAL", "Palm: Square"} {
			if !strings.Contains(out, want) {
				t.Errorf("text output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("invalid focus", func(t *testing.T) {
		_, err := run(t, db, "read", "-i", img, "--age", "18-25", "--focus", "fame")
		if err == nil || !strings.Contains(err.Error(), "focus") {
			t.Errorf("error = %v, want focus validation error", err)
		}
	})

	t.Run("missing image", func(t *testing.T) {
		_, err := run(t, db, "read", "-i", filepath.Join(t.TempDir(), "nope.png"), "--age", "18-25", "--focus", "love")
		if err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestHistoryWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("requires OpenCV")
	}
	db := filepath.Join(t.TempDir(), "readings.db")
	img := writePalm(t)

	out, err := run(t, db, "read", "-i", img, "--age", "36-45", "--gender", "male", "--focus", "wealth", "--save")
	if err != nil {
		t.Fatalf("read --save error = %v", err)
	}
	var res app.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}

	out, err = run(t, db, "history")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	var listed []struct {
		ID    string `json:"id"`
		Focus string `json:"focusArea"`
	}
	if err := json.Unmarshal([]byte(out), &listed); err != nil {
		t.Fatalf("history is not JSON: %v\n%s", err, out)
	}
	if len(listed) != 1 || listed[0].ID != res.ID || listed[0].Focus != "wealth" {
		t.Fatalf("history = %+v", listed)
	}

	out, err = run(t, db, "history", "-f", "text")
	if err != nil {
		t.Fatalf("history -f text error = %v", err)
	}
	if !strings.Contains(out, res.ID) || !strings.HasPrefix(out, "ID") {
		t.Errorf("history table = %q", out)
	}

	out, err = run(t, db, "show", res.ID)
	if err != nil {
		t.Fatalf("show error = %v", err)
	}
	var shown app.Result
	if err := json.Unmarshal([]byte(out), &shown); err != nil {
		t.Fatalf("show is not JSON: %v", err)
	}
	if shown.Reading.Readings["wealth"] != res.Reading.Readings["wealth"] {
		t.Error("stored reading differs from the printed one")
	}

	out, err = run(t, db, "show", res.ID, "-f", "text")
	if err != nil {
		t.Fatalf("show -f text error = %v", err)
	}
	if !strings.Contains(out, "WEALTH") {
		t.Errorf("show text = %q", out)
	}

	if _, err := run(t, db, "rm", res.ID); err != nil {
		t.Fatalf("rm error = %v", err)
	}
	if _, err := run(t, db, "show", res.ID); err == nil {
		t.Error("show after rm should fail")
	}
	if _, err := run(t, db, "rm", res.ID); err == nil {
		t.Error("second rm should fail")
	}
}

func TestShow_RequiresID(t *testing.T) {
	db := filepath.Join(t.TempDir(), "readings.db")
	if _, err := run(t, db, "show"); err == nil {
		t.Error("show without id should fail")
	}
}

func TestUnknownFormat(t *testing.T) {
	db := filepath.Join(t.TempDir(), "readings.db")
	_, err := run(t, db, "history", "-f", "xml")
	if err == nil || !strings.Contains(err.Error(), "xml") {
		t.Errorf("error = %v, want unknown format error", err)
	}
	if _, statErr := os.Stat(db); statErr == nil {
		t.Error("database should not be opened for a rejected command")
	}
}
