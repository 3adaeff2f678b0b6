package diagnostics

import (
	"bytes"
	"strings"
	"testing"
)

func TestNopSinkDiscardsEverything(t *testing.T) {
	var s Sink = NopSink{}
	s.Emit(Event{Level: Error, Stage: StageLSB, Message: "should vanish"})
}

func TestWriterSinkFiltersByMask(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterSink(&buf, Error|Warning, false)

	s.Emit(Event{Level: Info, Stage: StageAnchor, Message: "ignored"})
	s.Emit(Event{Level: Error, Stage: StageAnchor, Message: "kept"})

	out := buf.String()
	if strings.Contains(out, "ignored") {
		t.Errorf("WriterSink emitted a level outside its mask: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("WriterSink dropped a level inside its mask: %q", out)
	}
}

func TestWriterSinkColorizesOnlyWhenAsked(t *testing.T) {
	var plain, colored bytes.Buffer
	NewWriterSink(&plain, Info, false).Emit(Event{Level: Info, Stage: StageChaos, Message: "x"})
	NewWriterSink(&colored, Info, true).Emit(Event{Level: Info, Stage: StageChaos, Message: "x"})

	if strings.Contains(plain.String(), "\033[") {
		t.Errorf("uncolored sink emitted an ANSI escape: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\033[") {
		t.Errorf("colored sink did not emit an ANSI escape: %q", colored.String())
	}
}
