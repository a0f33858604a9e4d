// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codec

import (
	"errors"
	"strings"
	"testing"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool // binary -> whether LookPath succeeds
	versionOK     map[string]bool // binary -> whether "-version" succeeds
	captured      [][]string      // RunCapture invocations (name + args)
	captureStderr string
	captureErr    error
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunSilent(name string, args ...string) error {
	if m.versionOK[name] {
		return nil
	}
	return errors.New("command failed: " + name)
}

func (m *mockExecutor) RunCapture(name string, args ...string) (string, error) {
	call := append([]string{name}, args...)
	m.captured = append(m.captured, call)
	return m.captureStderr, m.captureErr
}

func TestDetectToolchain(t *testing.T) {
	tests := []struct {
		name      string
		available map[string]bool
		versionOK map[string]bool
		wantBin   string
		wantErr   bool
	}{
		{
			name:      "magick preferred",
			available: map[string]bool{"magick": true, "convert": true},
			versionOK: map[string]bool{"magick": true, "convert": true},
			wantBin:   "magick",
		},
		{
			name:      "falls back to convert",
			available: map[string]bool{"convert": true},
			versionOK: map[string]bool{"convert": true},
			wantBin:   "convert",
		},
		{
			name:      "binary on PATH but not operational",
			available: map[string]bool{"magick": true},
			versionOK: map[string]bool{},
			wantErr:   true,
		},
		{
			name:      "nothing installed",
			available: map[string]bool{},
			versionOK: map[string]bool{},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &mockExecutor{availableBins: tt.available, versionOK: tt.versionOK}
			tc, err := detectToolchain(exec)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected detection error")
				}
				return
			}
			if err != nil {
				t.Fatalf("detectToolchain: %v", err)
			}
			if tc.Name() != tt.wantBin {
				t.Errorf("toolchain = %s, want %s", tc.Name(), tt.wantBin)
			}
		})
	}
}

func TestForFormat_Arguments(t *testing.T) {
	tests := []struct {
		format   string
		wantArgs []string
	}{
		{"HEIC", []string{"magick", "in.heic", "-define", "png:compression-level=9", "out.png"}},
		{"CR2", []string{"magick", "in.cr2", "-quality", "90", "-alpha", "remove", "out.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			exec := &mockExecutor{}
			tc := &Toolchain{bin: "magick", exec: exec}

			adapter, err := ForFormat(tt.format, tc)
			if err != nil {
				t.Fatalf("ForFormat: %v", err)
			}

			in := "in.heic"
			if tt.format == "CR2" {
				in = "in.cr2"
			}
			if err := adapter.Convert(in, "out.png"); err != nil {
				t.Fatalf("Convert: %v", err)
			}

			if len(exec.captured) != 1 {
				t.Fatalf("got %d invocations, want 1", len(exec.captured))
			}
			got := exec.captured[0]
			if len(got) != len(tt.wantArgs) {
				t.Fatalf("invocation %v, want %v", got, tt.wantArgs)
			}
			for i := range got {
				if got[i] != tt.wantArgs[i] {
					t.Errorf("arg[%d] = %q, want %q", i, got[i], tt.wantArgs[i])
				}
			}
		})
	}
}

func TestForFormat_Unknown(t *testing.T) {
	if _, err := ForFormat("TIFF", &Toolchain{bin: "magick", exec: &mockExecutor{}}); err == nil {
		t.Error("expected error for unregistered format")
	}
}

func TestConvert_FailureNamesInputAndDiagnostic(t *testing.T) {
	exec := &mockExecutor{
		captureStderr: "magick: no decode delegate for this image format",
		captureErr:    errors.New("exit status 1"),
	}
	adapter, err := ForFormat("CR2", &Toolchain{bin: "magick", exec: exec})
	if err != nil {
		t.Fatal(err)
	}

	err = adapter.Convert("/photos/broken.cr2", "/out/broken.png")
	if err == nil {
		t.Fatal("expected conversion error")
	}
	if !strings.Contains(err.Error(), "/photos/broken.cr2") {
		t.Errorf("error %q should name the input path", err)
	}
	if !strings.Contains(err.Error(), "no decode delegate") {
		t.Errorf("error %q should carry the tool diagnostic", err)
	}
}
