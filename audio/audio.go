// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"mime"
	"sort"
	"strings"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Sized is implemented by sources that know their length up front.
// Frames returns the frame count, or a value <= 0 when unknown.
type Sized interface {
	Frames() int64
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps format keys (e.g., "wav", "mp3", "ogg vorbis") to decoders,
// and media types to format keys. It is the "can play this type" capability
// of the runtime: a media type is playable when a decoder answers for it.
type Registry struct {
	codecs map[string]Decoder
	types  map[string]string

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		types:  make(map[string]string),
		mtx:    &sync.Mutex{},
	}
}

// Register binds d to format and claims every given media type for it.
// Registering the same format again replaces the decoder.
func (r *Registry) Register(format string, d Decoder, mediaTypes ...string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
	for _, mt := range mediaTypes {
		r.types[CanonicalMediaType(mt)] = format
	}
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}

// Formats lists the registered format keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	out := make([]string, 0, len(r.codecs))
	for f := range r.codecs {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// FormatFor returns the format key claiming mediaType.
func (r *Registry) FormatFor(mediaType string) (string, bool) {
	base, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return "", false
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	f, ok := r.types[CanonicalMediaType(base)]
	if !ok {
		return "", false
	}
	if _, ok := r.codecs[f]; !ok {
		return "", false
	}
	return f, true
}

// CanPlayType answers like HTMLMediaElement.canPlayType: SupportProbably when
// a decoder is registered for the media type (and for the codec, if a codecs
// parameter names one), SupportNone otherwise. A codecs parameter that names
// nothing known yields SupportMaybe when the container itself is supported.
func (r *Registry) CanPlayType(mediaType string) Support {
	base, params, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return SupportNone
	}

	format, ok := r.FormatFor(base)
	if !ok {
		return SupportNone
	}

	codecs, ok := params["codecs"]
	if !ok {
		return SupportProbably
	}

	maybe := false
	for _, c := range strings.Split(codecs, ",") {
		c = strings.ToLower(strings.TrimSpace(c))
		want, known := codecFormats[c]
		if !known {
			maybe = true
			continue
		}
		if want != format {
			if _, ok := r.Get(want); !ok {
				return SupportNone
			}
		}
	}
	if maybe {
		return SupportMaybe
	}
	return SupportProbably
}
