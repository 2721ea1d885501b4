package object

import "github.com/dh1tw/audiohal/hal"

// ValueRange is an inclusive range of 64 bit float values, e.g. a
// supported sample rate band or a decibel range. The layout matches
// the HAL's range record.
type ValueRange struct {
	Minimum float64
	Maximum float64
}

// Contains reports whether v lies within the range.
func (r ValueRange) Contains(v float64) bool {
	return v >= r.Minimum && v <= r.Maximum
}

// StreamDescription describes the sample format of a stream. The field
// layout matches the HAL's stream description record exactly; the
// struct is read and written as raw property bytes.
type StreamDescription struct {
	SampleRate       float64
	FormatID         hal.FourCC
	FormatFlags      uint32
	BytesPerPacket   uint32
	FramesPerPacket  uint32
	BytesPerFrame    uint32
	ChannelsPerFrame uint32
	BitsPerChannel   uint32
	Reserved         uint32
}

// Format flags of linear PCM stream descriptions.
const (
	FormatLinearPCM hal.FourCC = 'l'<<24 | 'p'<<16 | 'c'<<8 | 'm'

	FormatFlagIsFloat          uint32 = 1 << 0
	FormatFlagIsBigEndian      uint32 = 1 << 1
	FormatFlagIsSignedInt      uint32 = 1 << 2
	FormatFlagIsPacked         uint32 = 1 << 3
	FormatFlagIsNonInterleaved uint32 = 1 << 5
	FormatFlagIsNonMixable     uint32 = 1 << 6
)

// StreamRangedDescription pairs a stream description with the sample
// rate range it is valid for, as reported by the available-formats
// properties.
type StreamRangedDescription struct {
	Format          StreamDescription
	SampleRateRange ValueRange
}
