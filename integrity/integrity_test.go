package integrity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCRC32KnownVectors(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected uint32
	}{
		{"empty", []byte{}, 0x00000000},
		{"ascii 123456789", []byte("123456789"), 0xCBF43926}, // standard IEEE 802.3 check value
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CRC32(tt.data))
		})
	}
}

func TestCRC32Deterministic(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	assert.Equal(t, CRC32(data), CRC32(data))
}

type fakeFlash struct {
	data []byte
}

func (f *fakeFlash) Read(addr uint32, dst []byte) error {
	if int(addr)+len(dst) > len(f.data) {
		return errors.New("out of range")
	}
	copy(dst, f.data[addr:int(addr)+len(dst)])
	return nil
}

func TestCRC32FlashMatchesRAM(t *testing.T) {
	data := make([]byte, 200*1024)
	for i := range data {
		data[i] = byte(i * 7)
	}
	flash := &fakeFlash{data: data}

	got, err := CRC32Flash(flash, 0, uint32(len(data)))
	require.NoError(t, err)
	assert.Equal(t, CRC32(data), got)
}

func TestCRC32FlashSubrange(t *testing.T) {
	data := make([]byte, 1024)
	for i := range data {
		data[i] = byte(i)
	}
	flash := &fakeFlash{data: data}

	got, err := CRC32Flash(flash, 100, 50)
	require.NoError(t, err)
	assert.Equal(t, CRC32(data[100:150]), got)
}

func TestCRC32FlashReadError(t *testing.T) {
	flash := &fakeFlash{data: make([]byte, 10)}
	_, err := CRC32Flash(flash, 0, 100)
	assert.Error(t, err)
}

func TestCRC8NotStandardSMBus(t *testing.T) {
	// The standard CRC-8/SMBUS polynomial (0x07, no reflection, init 0x00)
	// must NOT be what this engine computes for the same input; spec §4.3
	// requires a non-standard polynomial here.
	data := []byte{0x12, 0x34, 0x56, 0x78}
	const smbusPoly = 0x07
	var smbus uint8
	for _, b := range data {
		smbus ^= b
		for i := 0; i < 8; i++ {
			if smbus&0x80 != 0 {
				smbus = (smbus << 1) ^ smbusPoly
			} else {
				smbus <<= 1
			}
		}
	}
	assert.NotEqual(t, smbus, CRC8(data))
}

func TestCRC8Deterministic(t *testing.T) {
	data := []byte{0xAA, 0xBB, 0xCC}
	assert.Equal(t, CRC8(data), CRC8(data))
}
