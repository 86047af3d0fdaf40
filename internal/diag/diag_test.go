package diag

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestDebugf(t *testing.T) {
	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
		SetDebug(false)
	}()

	SetDebug(false)
	Debugf("hidden %d", 1)
	if buf.Len() != 0 {
		t.Errorf("expected no output with debug off, got %q", buf.String())
	}

	SetDebug(true)
	if !Enabled() {
		t.Fatal("Enabled() = false after SetDebug(true)")
	}
	Debugf("shown %d", 2)
	if !strings.Contains(buf.String(), "shown 2") {
		t.Errorf("expected debug line, got %q", buf.String())
	}
}
