// SPDX-License-Identifier: EPL-2.0

package audio

import "testing"

func TestMediaTypeForExt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ext  string
		want string
	}{
		{"mp3", "audio/mpeg"},
		{".MP3", "audio/mpeg"},
		{"wav", "audio/wav"},
		{"ogg", "audio/ogg"},
		{"opus", "audio/ogg; codecs=opus"},
		{"flac", "audio/flac"},
		{"aif", "audio/aiff"},
		{"m4a", "audio/mp4"},
		{"xyz", "audio/xyz"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := MediaTypeForExt(tt.ext); got != tt.want {
			t.Errorf("MediaTypeForExt(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}

func TestCanonicalMediaType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"audio/mp3", "audio/mpeg"},
		{"Audio/X-WAV", "audio/wav"},
		{"audio/x-flac", "audio/flac"},
		{"audio/ogg;codecs=vorbis", "audio/ogg;codecs=vorbis"},
		{"audio/vorbis", "audio/ogg"},
		{"audio/webm", "audio/webm"},
	}

	for _, tt := range tests {
		if got := CanonicalMediaType(tt.in); got != tt.want {
			t.Errorf("CanonicalMediaType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSniff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"wav", []byte("RIFF\x24\x00\x00\x00WAVEfmt "), FormatWAV},
		{"riff but not wave", []byte("RIFF\x24\x00\x00\x00AVI LIST"), ""},
		{"aiff", []byte("FORM\x00\x00\x00\x00AIFFCOMM"), FormatAIFF},
		{"aifc", []byte("FORM\x00\x00\x00\x00AIFCFVER"), FormatAIFF},
		{"flac", []byte("fLaC\x00\x00\x00\x22"), FormatFLAC},
		{"vorbis", []byte("OggS\x00\x02\x00\x00\x01vorbis"), FormatVorbis},
		{"opus", []byte("OggS\x00\x02\x00\x00OpusHead"), FormatOpus},
		{"id3", []byte("ID3\x04\x00"), FormatMP3},
		{"frame sync", []byte{0xFF, 0xFB, 0x90, 0x64}, FormatMP3},
		{"reserved layer", []byte{0xFF, 0xE0, 0x00}, ""},
		{"garbage", []byte("hello world"), ""},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Sniff(tt.data); got != tt.want {
				t.Errorf("Sniff() = %q, want %q", got, tt.want)
			}
		})
	}
}
