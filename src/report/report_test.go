package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsole_RunIDGoesToStdoutOnly(t *testing.T) {
	var out, errw bytes.Buffer
	rep := NewConsole(&out, &errw, false)

	rep.Stage("Triggering workflow")
	rep.Infof("run %d created", 42)
	rep.RunID(42)

	if got := out.String(); got != "run_id=42\n" {
		t.Errorf("stdout = %q, want exactly %q", got, "run_id=42\n")
	}
	if !strings.Contains(errw.String(), "Triggering workflow") {
		t.Errorf("stderr = %q, want the stage banner", errw.String())
	}
	if strings.Contains(out.String(), "Triggering") {
		t.Error("progress leaked onto stdout")
	}
}

func TestConsole_NonInteractiveSpinPrintsMessage(t *testing.T) {
	var out, errw bytes.Buffer
	rep := NewConsole(&out, &errw, false)

	stop := rep.Spin("waiting for the run to appear")
	stop()

	if !strings.Contains(errw.String(), "waiting for the run to appear") {
		t.Errorf("stderr = %q, want the spin message as a plain line", errw.String())
	}
}

func TestConsole_NonInteractiveHasNoEscapeCodes(t *testing.T) {
	var out, errw bytes.Buffer
	rep := NewConsole(&out, &errw, false)

	rep.Stage("Watching run")
	rep.Infof("run %d in progress", 42)

	if strings.Contains(errw.String(), "\x1b[") {
		t.Errorf("stderr = %q, want no ANSI escape codes without a TTY", errw.String())
	}
}

func TestQuiet_OnlyRunID(t *testing.T) {
	var out bytes.Buffer
	rep := NewQuiet(&out)

	rep.Stage("Triggering workflow")
	rep.Infof("noise %d", 1)
	stop := rep.Spin("noise")
	stop()
	rep.RunID(7)

	if got := out.String(); got != "run_id=7\n" {
		t.Errorf("output = %q, want only %q", got, "run_id=7\n")
	}
}
