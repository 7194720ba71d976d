// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"slices"
	"testing"

	"github.com/ik5/audpool/audio"
)

func TestNewRegistry_Formats(t *testing.T) {
	t.Parallel()

	got := NewRegistry().Formats()
	want := []string{audio.FormatAIFF, audio.FormatFLAC, audio.FormatMP3, audio.FormatVorbis, audio.FormatWAV}
	slices.Sort(want)

	if !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestNewRegistry_CanPlayType(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	tests := []struct {
		mediaType string
		want      audio.Support
	}{
		{"audio/wav", audio.SupportProbably},
		{"audio/x-wav", audio.SupportProbably},
		{"audio/mpeg", audio.SupportProbably},
		{"audio/mp3", audio.SupportProbably},
		{"audio/ogg", audio.SupportProbably},
		{"audio/ogg; codecs=vorbis", audio.SupportProbably},
		{"audio/ogg; codecs=opus", audio.SupportNone},
		{"audio/flac", audio.SupportProbably},
		{"audio/aiff", audio.SupportProbably},
		{"audio/mp4", audio.SupportNone},
		{"audio/webm", audio.SupportNone},
		{"not a media type;;", audio.SupportNone},
	}

	for _, tt := range tests {
		t.Run(tt.mediaType, func(t *testing.T) {
			t.Parallel()

			if got := r.CanPlayType(tt.mediaType); got != tt.want {
				t.Errorf("CanPlayType(%q) = %q, want %q", tt.mediaType, got, tt.want)
			}
		})
	}
}

func TestNewRegistry_SniffedFormatsHaveDecoders(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	fixtures := map[string][]byte{
		audio.FormatWAV:    []byte("RIFF\x24\x00\x00\x00WAVEfmt "),
		audio.FormatAIFF:   []byte("FORM\x00\x00\x00\x00AIFFCOMM"),
		audio.FormatFLAC:   []byte("fLaC\x00\x00\x00\x22"),
		audio.FormatMP3:    []byte("ID3\x03\x00\x00\x00\x00\x00\x00"),
		audio.FormatVorbis: append([]byte("OggS\x00\x02"), make([]byte, 22)...),
	}

	for want, data := range fixtures {
		got := audio.Sniff(data)
		if got != want {
			t.Errorf("Sniff(%s fixture) = %q, want %q", want, got, want)
			continue
		}
		if _, ok := r.Get(got); !ok {
			t.Errorf("no decoder registered for sniffed format %q", got)
		}
	}
}
