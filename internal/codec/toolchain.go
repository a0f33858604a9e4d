// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codec

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

const (
	binMagick  = "magick"
	binConvert = "convert"
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunCapture(name string, args ...string) (stderr string, err error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunCapture(name string, args ...string) (string, error) {
	var stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stderr = &stderr
	err := cmd.Run()
	return strings.TrimSpace(stderr.String()), err
}

// Toolchain is a located ImageMagick installation. IM7 ships a single
// "magick" binary; IM6 installs the classic "convert". Both take the same
// argument shape for this tool's purposes.
type Toolchain struct {
	bin  string
	exec executor
}

// Name returns the toolchain binary name ("magick" or "convert").
func (t *Toolchain) Name() string { return t.bin }

func (t *Toolchain) available() bool {
	if _, err := t.exec.LookPath(t.bin); err != nil {
		return false
	}
	return t.exec.RunSilent(t.bin, "-version") == nil
}

// run invokes the binary with the given arguments, returning captured
// stderr alongside any execution error.
func (t *Toolchain) run(args ...string) (string, error) {
	return t.exec.RunCapture(t.bin, args...)
}

var defaultExec = &osExecutor{}

// DetectToolchain tries the IM7 "magick" binary first and falls back to the
// IM6 "convert". Returns an error when neither is on PATH and operational.
func DetectToolchain() (*Toolchain, error) {
	return detectToolchain(defaultExec)
}

func detectToolchain(exec executor) (*Toolchain, error) {
	magick := &Toolchain{bin: binMagick, exec: exec}
	if magick.available() {
		return magick, nil
	}

	convert := &Toolchain{bin: binConvert, exec: exec}
	if convert.available() {
		return convert, nil
	}

	return nil, fmt.Errorf(
		"no ImageMagick toolchain available: neither %s nor %s found or operational",
		binMagick, binConvert,
	)
}
