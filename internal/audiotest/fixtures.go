// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"context"
	"encoding/binary"
	"errors"
	"sync"
)

// ErrNotFound is returned by MapFetcher for unknown URLs.
var ErrNotFound = errors.New("audiotest: not found")

// WAV encodes interleaved 16-bit samples as a minimal RIFF/WAVE file.
func WAV(sampleRate, channels int, samples []int16) []byte {
	dataSize := 2 * len(samples)
	out := make([]byte, 44+dataSize)

	copy(out[0:], "RIFF")
	binary.LittleEndian.PutUint32(out[4:], uint32(36+dataSize))
	copy(out[8:], "WAVEfmt ")
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], 1)
	binary.LittleEndian.PutUint16(out[22:], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(sampleRate*channels*2))
	binary.LittleEndian.PutUint16(out[32:], uint16(channels*2))
	binary.LittleEndian.PutUint16(out[34:], 16)
	copy(out[36:], "data")
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))

	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[44+2*i:], uint16(s))
	}
	return out
}

// ConstWAV is a mono WAV of frames samples all equal to v.
func ConstWAV(sampleRate, frames int, v int16) []byte {
	samples := make([]int16, frames)
	for i := range samples {
		samples[i] = v
	}
	return WAV(sampleRate, 1, samples)
}

// MapFetcher serves canned bytes by URL and counts requests.
type MapFetcher struct {
	mu    sync.Mutex
	files map[string][]byte
	errs  map[string]error
	calls map[string]int
}

func NewMapFetcher(files map[string][]byte) *MapFetcher {
	if files == nil {
		files = map[string][]byte{}
	}
	return &MapFetcher{files: files, errs: map[string]error{}, calls: map[string]int{}}
}

// Fail makes every fetch of url return err.
func (m *MapFetcher) Fail(url string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errs[url] = err
}

func (m *MapFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls[url]++
	if err, ok := m.errs[url]; ok {
		return nil, err
	}
	data, ok := m.files[url]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

// Calls is the number of fetches issued for url.
func (m *MapFetcher) Calls(url string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.calls[url]
}

type fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// GatedFetcher holds every fetch until Release is called, so tests can act
// while loads are still in flight.
type GatedFetcher struct {
	inner   fetcher
	gate    chan struct{}
	once    sync.Once
	pending chan string
}

func NewGatedFetcher(inner fetcher) *GatedFetcher {
	return &GatedFetcher{
		inner:   inner,
		gate:    make(chan struct{}),
		pending: make(chan string, 64),
	}
}

func (g *GatedFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	select {
	case g.pending <- url:
	default:
	}

	select {
	case <-g.gate:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return g.inner.Fetch(ctx, url)
}

// Pending yields the URL of each fetch as it starts blocking.
func (g *GatedFetcher) Pending() <-chan string { return g.pending }

// Release lets every held and future fetch through.
func (g *GatedFetcher) Release() {
	g.once.Do(func() { close(g.gate) })
}
