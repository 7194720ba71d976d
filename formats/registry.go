// SPDX-License-Identifier: EPL-2.0

// Package formats bundles every decoder shipped with audpool into a single
// registry.
package formats

import (
	"github.com/ik5/audpool/audio"
	"github.com/ik5/audpool/formats/aiff"
	"github.com/ik5/audpool/formats/flac"
	"github.com/ik5/audpool/formats/mp3"
	"github.com/ik5/audpool/formats/vorbis"
	"github.com/ik5/audpool/formats/wav"
)

// NewRegistry returns a registry with the WAV, MP3, Ogg Vorbis, AIFF and
// FLAC decoders registered under their media types.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()
	Register(r)
	return r
}

// Register adds the bundled decoders to r.
func Register(r *audio.Registry) {
	r.Register(wav.Format, wav.Decoder{}, wav.MediaTypes...)
	r.Register(mp3.Format, mp3.Decoder{}, mp3.MediaTypes...)
	r.Register(vorbis.Format, vorbis.Decoder{}, vorbis.MediaTypes...)
	r.Register(aiff.Format, aiff.Decoder{}, aiff.MediaTypes...)
	r.Register(flac.Format, flac.Decoder{}, flac.MediaTypes...)
}
