// SPDX-License-Identifier: EPL-2.0

package audpool

import (
	"context"
	"fmt"
	"log/slog"
)

// DiagnosticKind classifies a condition the mixer absorbed instead of
// failing.
type DiagnosticKind int

const (
	// FormatUnsupported: no source of a sound is playable.
	FormatUnsupported DiagnosticKind = iota + 1
	// FetchFailure: the asset bytes could not be retrieved.
	FetchFailure
	// DecodeFailure: the bytes were not decodable audio.
	DecodeFailure
	// LookupMiss: a name or index matched no registered sound.
	LookupMiss
	// TypeMismatch: a spatial operation targeted a plain sound.
	TypeMismatch
	// NotReady: a sound was driven before it loaded, or after Close.
	NotReady
	// ResumeFailed: the shared context could not be resumed.
	ResumeFailed
)

var diagnosticNames = map[DiagnosticKind]string{
	FormatUnsupported: "format unsupported",
	FetchFailure:      "fetch failure",
	DecodeFailure:     "decode failure",
	LookupMiss:        "lookup miss",
	TypeMismatch:      "type mismatch",
	NotReady:          "not ready",
	ResumeFailed:      "resume failed",
}

func (k DiagnosticKind) String() string {
	if s, ok := diagnosticNames[k]; ok {
		return s
	}
	return fmt.Sprintf("DiagnosticKind(%d)", int(k))
}

// level at which a kind is logged: failures warn, misuse is debug noise.
func (k DiagnosticKind) level() slog.Level {
	switch k {
	case FormatUnsupported, FetchFailure, DecodeFailure, ResumeFailed:
		return slog.LevelWarn
	}
	return slog.LevelDebug
}

// Diagnostic describes one absorbed condition.
type Diagnostic struct {
	Kind DiagnosticKind
	// Sound is the sound's name, or the unmatched reference for LookupMiss.
	Sound string
	URL   string
	Err   error
}

func (d Diagnostic) String() string {
	s := d.Kind.String()
	if d.Sound != "" {
		s += " sound=" + d.Sound
	}
	if d.URL != "" {
		s += " url=" + d.URL
	}
	if d.Err != nil {
		s += " err=" + d.Err.Error()
	}
	return s
}

func (m *Mixer) diagnose(d Diagnostic) {
	attrs := []slog.Attr{slog.String("kind", d.Kind.String())}
	if d.Sound != "" {
		attrs = append(attrs, slog.String("sound", d.Sound))
	}
	if d.URL != "" {
		attrs = append(attrs, slog.String("url", d.URL))
	}
	if d.Err != nil {
		attrs = append(attrs, slog.Any("error", d.Err))
	}
	m.log.LogAttrs(context.Background(), d.Kind.level(), "diagnostic", attrs...)

	if m.onDiagnostic != nil {
		m.onDiagnostic(d)
	}
}
