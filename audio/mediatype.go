// SPDX-License-Identifier: EPL-2.0

package audio

import "strings"

// Support is the answer of a playability query.
type Support string

const (
	SupportNone     Support = ""
	SupportMaybe    Support = "maybe"
	SupportProbably Support = "probably"
)

// Playable reports whether s is a definite or probable yes.
func (s Support) Playable() bool {
	return s == SupportMaybe || s == SupportProbably
}

// Format keys used by the bundled decoders.
const (
	FormatWAV    = "wav"
	FormatMP3    = "mp3"
	FormatVorbis = "ogg vorbis"
	FormatAIFF   = "aiff"
	FormatFLAC   = "flac"
	FormatOpus   = "opus"
)

var extMediaTypes = map[string]string{
	"mp3":  "audio/mpeg",
	"mpga": "audio/mpeg",
	"wav":  "audio/wav",
	"wave": "audio/wav",
	"ogg":  "audio/ogg",
	"oga":  "audio/ogg",
	"opus": "audio/ogg; codecs=opus",
	"flac": "audio/flac",
	"aif":  "audio/aiff",
	"aiff": "audio/aiff",
	"aifc": "audio/aiff",
	"m4a":  "audio/mp4",
	"aac":  "audio/mp4",
	"mp4":  "audio/mp4",
	"webm": "audio/webm",
}

var mediaTypeAliases = map[string]string{
	"audio/mp3":       "audio/mpeg",
	"audio/x-mp3":     "audio/mpeg",
	"audio/mpeg3":     "audio/mpeg",
	"audio/x-wav":     "audio/wav",
	"audio/wave":      "audio/wav",
	"audio/vnd.wave":  "audio/wav",
	"audio/x-flac":    "audio/flac",
	"audio/x-aiff":    "audio/aiff",
	"audio/vorbis":    "audio/ogg",
	"application/ogg": "audio/ogg",
	"audio/x-m4a":     "audio/mp4",
	"audio/aac":       "audio/mp4",
}

// codecs parameter values mapped to format keys.
var codecFormats = map[string]string{
	"1":          FormatWAV,
	"mp3":        FormatMP3,
	"mp4a.40.34": FormatMP3,
	"mp4a.6b":    FormatMP3,
	"vorbis":     FormatVorbis,
	"flac":       FormatFLAC,
	"opus":       FormatOpus,
}

// MediaTypeForExt maps a file extension (with or without the leading dot)
// to its canonical media type. Unknown extensions map to "audio/<ext>".
func MediaTypeForExt(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		return ""
	}
	if mt, ok := extMediaTypes[ext]; ok {
		return mt
	}
	return "audio/" + ext
}

// CanonicalMediaType lowercases mt and folds well known aliases. Parameters
// are left untouched.
func CanonicalMediaType(mt string) string {
	base, params, found := strings.Cut(mt, ";")
	base = strings.ToLower(strings.TrimSpace(base))
	if alias, ok := mediaTypeAliases[base]; ok {
		base = alias
	}
	if !found {
		return base
	}
	return base + ";" + params
}
