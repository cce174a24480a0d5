package regionocr

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"
)

// Runner executes external commands. The seam exists so tests can stub
// pdftoppm without a poppler install.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct {
	logger *slog.Logger
}

func (r execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()

	log := r.logger
	if log == nil {
		log = slog.Default()
	}
	if err != nil {
		log.Error("exec failed",
			"cmd", name,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
			"stderr", truncate(errb.String(), 4<<10))
	} else {
		log.Debug("exec ok",
			"cmd", name,
			"duration_ms", time.Since(start).Milliseconds(),
			"stdout_bytes", out.Len())
	}

	return out.Bytes(), errb.Bytes(), err
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}

// renderPage rasterizes a single PDF page to PNG bytes using pdftoppm.
// pageNum is 1-based.
func renderPage(ctx context.Context, runner Runner, pdftoppm string, data []byte, pageNum, dpi int) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "certscan-page-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	pdfPath := filepath.Join(tmpDir, "doc.pdf")
	if err := os.WriteFile(pdfPath, data, 0o600); err != nil {
		return nil, fmt.Errorf("write temp pdf: %w", err)
	}

	// pdftoppm with -singlefile writes exactly <prefix>.png.
	prefix := filepath.Join(tmpDir, "page")
	pageStr := strconv.Itoa(pageNum)
	_, stderr, err := runner.Run(ctx, pdftoppm,
		"-png",
		"-f", pageStr,
		"-l", pageStr,
		"-r", strconv.Itoa(dpi),
		"-singlefile",
		pdfPath,
		prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %w (stderr: %s)", err, truncate(string(stderr), 1<<10))
	}

	img, err := os.ReadFile(prefix + ".png")
	if err != nil {
		return nil, fmt.Errorf("pdftoppm produced no output: %w", err)
	}
	return img, nil
}
