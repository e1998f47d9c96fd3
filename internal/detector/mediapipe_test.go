package detector

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"gocv.io/x/gocv"
)

// writeService writes a stand-in service script that records each start in
// dir/starts and then runs body.
func writeService(t *testing.T, dir, body string) string {
	t.Helper()

	script := "echo start >> \"$(dirname \"$0\")/starts\"\n" + body + "\n"
	path := filepath.Join(dir, scriptName)
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func countStarts(t *testing.T, dir string) int {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, "starts"))
	if os.IsNotExist(err) {
		return 0
	}
	if err != nil {
		t.Fatalf("read starts: %v", err)
	}
	return strings.Count(string(data), "start")
}

func newShellDetector(t *testing.T, body string) (*MediaPipeDetector, string) {
	t.Helper()

	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.ScriptPath = writeService(t, dir, body)
	cfg.Python = sh

	d, err := NewMediaPipeDetector(cfg)
	if err != nil {
		t.Fatalf("NewMediaPipeDetector() error = %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d, dir
}

func TestMediaPipeDetector_RestartsAfterServiceExit(t *testing.T) {
	d, dir := newShellDetector(t, "exit 1")

	frame := gocv.NewMatWithSize(16, 16, gocv.MatTypeCV8UC3)
	defer frame.Close()

	for i := 1; i <= 2; i++ {
		if _, err := d.Detect(&frame); err == nil {
			t.Fatalf("Detect() %d: expected error from exited service", i)
		}
		if d.started {
			t.Fatalf("Detect() %d: service still marked started after failure", i)
		}
		if got := countStarts(t, dir); got != i {
			t.Fatalf("after Detect() %d: service started %d times, want %d", i, got, i)
		}
	}

	if err := d.Close(); err != nil {
		t.Errorf("Close() after failure = %v, want nil", err)
	}
}

func TestMediaPipeDetector_ServiceError(t *testing.T) {
	d, dir := newShellDetector(t, `echo '{"hands":[],"error":"model not loaded"}'
cat > /dev/null`)

	frame := gocv.NewMatWithSize(16, 16, gocv.MatTypeCV8UC3)
	defer frame.Close()

	_, err := d.Detect(&frame)
	if err == nil || !strings.Contains(err.Error(), "model not loaded") {
		t.Fatalf("Detect() error = %v, want service error", err)
	}
	if !d.started {
		t.Error("a reported error must not restart a healthy service")
	}
	if got := countStarts(t, dir); got != 1 {
		t.Errorf("service started %d times, want 1", got)
	}
}

func TestMediaPipeDetector_EmptyFrame(t *testing.T) {
	d, dir := newShellDetector(t, "exit 1")

	hands, err := d.Detect(nil)
	if err != nil || hands != nil {
		t.Errorf("Detect(nil) = %v, %v; want nil, nil", hands, err)
	}
	if got := countStarts(t, dir); got != 0 {
		t.Errorf("service started %d times for an empty frame, want 0", got)
	}
}
