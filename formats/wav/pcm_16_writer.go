// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/audpool/utils"
)

// WriteWAV16 writes interleaved 16-bit PCM as a canonical 44-byte-header WAV.
// len(samples) must be a multiple of channels.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if channels <= 0 || len(samples)%channels != 0 {
		return ErrInvalidChannels
	}

	const bitsPerSample = 16
	blockAlign := uint16(channels * bitsPerSample / 8)
	byteRate := uint32(sampleRate) * uint32(blockAlign)
	dataSize := uint32(len(samples) * 2)

	header := make([]byte, 44)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // fmt chunk size
	binary.LittleEndian.PutUint16(header[20:22], 1)  // integer PCM
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}

	const chunkSize = 8192
	buf := make([]byte, 2*min(len(samples), chunkSize))
	for i := 0; i < len(samples); i += chunkSize {
		chunk := samples[i:min(i+chunkSize, len(samples))]
		out := buf[:2*len(chunk)]
		for j, s := range chunk {
			binary.LittleEndian.PutUint16(out[2*j:], uint16(s))
		}
		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// WriteFloatWAV16 converts interleaved float32 samples in [-1, 1] to 16-bit
// PCM and writes them with WriteWAV16.
func WriteFloatWAV16(w io.Writer, sampleRate, channels int, samples []float32) error {
	pcm := make([]int16, len(samples))
	for i, v := range samples {
		pcm[i] = utils.Float32ToInt16(v)
	}
	return WriteWAV16(w, sampleRate, channels, pcm)
}
