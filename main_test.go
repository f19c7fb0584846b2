package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-quiet", "assets/levels/arena.json", "40,40", "-1,0", "88,88"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", code, stderr.String())
	}

	out := stdout.String()
	for _, want := range []string{
		"arena.json: 20x15 tiles of 16x16 px",
		"(40,40) tile (2,4) colliding=false",
		"(-1,0) out of bounds colliding=true",
		"(88,88) tile (5,7) colliding=true",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "####") {
		t.Error("Expected -quiet to suppress the grid")
	}
}

func TestRun_GridAndPNG(t *testing.T) {
	pngPath := filepath.Join(t.TempDir(), "ruins.png")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-png", pngPath, "assets/levels/ruins.tmx"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "############\n") {
		t.Errorf("Expected grid in output, got:\n%s", stdout.String())
	}
	if info, err := os.Stat(pngPath); err != nil || info.Size() == 0 {
		t.Errorf("Expected PNG at %s, got err=%v", pngPath, err)
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	doc := `{"width": 2, "height": 2, "tilewidth": 16, "tileheight": 16,
		"layers": [{"type": "tilelayer", "data": [0, 0, 0]}]}`
	if err := os.WriteFile(bad, []byte(doc), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	tests := []struct {
		name   string
		args   []string
		code   int
		stderr string
	}{
		{"no args", nil, 2, "usage"},
		{"invalid level", []string{bad}, 1, "invalid level"},
		{"missing file", []string{filepath.Join(dir, "missing.json")}, 1, "error"},
		{"non-finite anchor", []string{"-anchor", "NaN", "assets/levels/arena.json"}, 2, "must be finite"},
		{"bad point", []string{"-quiet", "assets/levels/arena.json", "12"}, 2, "want x,y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(tt.args, &stdout, &stderr); code != tt.code {
				t.Errorf("Expected exit %d, got %d", tt.code, code)
			}
			if !strings.Contains(stderr.String(), tt.stderr) {
				t.Errorf("Expected stderr to contain %q, got %q", tt.stderr, stderr.String())
			}
		})
	}
}
