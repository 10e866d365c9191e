package intflash

import (
	"testing"

	"github.com/pebbleos/bootcore/hal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFlash struct {
	sectorSize uint32
	data       []byte
}

func newFakeFlash(size uint32) *fakeFlash {
	data := make([]byte, size)
	for i := range data {
		data[i] = 0xFF
	}
	return &fakeFlash{sectorSize: 4096, data: data}
}

func (f *fakeFlash) SectorSize() uint32 { return f.sectorSize }

func (f *fakeFlash) Read(addr uint32, dst []byte) error {
	copy(dst, f.data[addr:])
	return nil
}

func (f *fakeFlash) Erase(base, length uint32, progress hal.ProgressFunc) error {
	for i := uint32(0); i < length; i += f.sectorSize {
		n := f.sectorSize
		if i+n > length {
			n = length - i
		}
		for j := uint32(0); j < n; j++ {
			f.data[base+i+j] = 0xFF
		}
		if progress != nil {
			progress(i+n, length)
		}
	}
	return nil
}

func (f *fakeFlash) Write(base uint32, data []byte, progress hal.ProgressFunc) error {
	copy(f.data[base:], data)
	if progress != nil {
		progress(uint32(len(data)), uint32(len(data)))
	}
	return nil
}

type fakeWatchdog struct{ feeds int }

func (w *fakeWatchdog) Init()              {}
func (w *fakeWatchdog) Start()             {}
func (w *fakeWatchdog) Feed()              { w.feeds++ }
func (w *fakeWatchdog) CheckResetFlag() bool { return false }

func TestEraseFeedsWatchdogPerSector(t *testing.T) {
	flash := newFakeFlash(64 * 1024)
	wd := &fakeWatchdog{}
	w := New(flash, wd, uint32(len(flash.data)))

	err := w.Erase(0, 3*flash.sectorSize, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, wd.feeds)
}

func TestWriteThenReadRoundTrips(t *testing.T) {
	flash := newFakeFlash(64 * 1024)
	wd := &fakeWatchdog{}
	w := New(flash, wd, uint32(len(flash.data)))

	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	require.NoError(t, w.Write(0x1000, payload, nil))

	got := make([]byte, len(payload))
	require.NoError(t, w.Read(0x1000, got))
	assert.Equal(t, payload, got)
}

func TestOutOfRangeErasesAndWritesAreRejected(t *testing.T) {
	flash := newFakeFlash(4096)
	w := New(flash, &fakeWatchdog{}, uint32(len(flash.data)))

	err := w.Erase(4000, 1000, nil)
	require.Error(t, err)
	var rangeErr *ErrOutOfRange
	assert.ErrorAs(t, err, &rangeErr)

	err = w.Write(4000, make([]byte, 1000), nil)
	require.Error(t, err)
	assert.ErrorAs(t, err, &rangeErr)
}

func TestVectorTableErasedDetection(t *testing.T) {
	flash := newFakeFlash(64 * 1024)
	w := New(flash, &fakeWatchdog{}, uint32(len(flash.data)))

	erased, err := VectorTableErased(w, 0)
	require.NoError(t, err)
	assert.True(t, erased)

	require.NoError(t, w.Write(0, []byte{0x00, 0x00, 0x02, 0x20, 0x09, 0x01, 0x00, 0x00}, nil))
	erased, err = VectorTableErased(w, 0)
	require.NoError(t, err)
	assert.False(t, erased)
}
