// SPDX-License-Identifier: EPL-2.0

package audpool

import (
	"net/url"
	"path"
	"strings"

	"github.com/ik5/audpool/audio"
)

// Src lists one sound in one or more encodings, most preferred first.
type Src []string

// Prober answers whether a media type can be played. *engine.Context and
// *audio.Registry implement it.
type Prober interface {
	CanPlayType(mediaType string) audio.Support
}

// SelectSupported returns the first entry of src whose extension maps to a
// media type p reports as maybe or probably playable. List order decides,
// not any ranking of formats. A single entry is returned as is, without
// asking p.
func SelectSupported(src Src, p Prober) (string, error) {
	switch len(src) {
	case 0:
		return "", ErrNoSource
	case 1:
		return src[0], nil
	}

	for _, u := range src {
		mt := audio.MediaTypeForExt(extension(u))
		if mt == "" {
			continue
		}
		if p.CanPlayType(mt).Playable() {
			return u, nil
		}
	}
	return "", ErrFormatUnsupported
}

// extension of the path part of u, ignoring any query or fragment.
func extension(u string) string {
	p := u
	if parsed, err := url.Parse(u); err == nil && parsed.Path != "" {
		p = parsed.Path
	} else if i := strings.IndexAny(u, "?#"); i >= 0 {
		p = u[:i]
	}
	return path.Ext(p)
}
