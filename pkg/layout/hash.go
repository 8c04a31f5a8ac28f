package layout

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/matzehuels/foodstack/pkg/catalog"
)

// Channel selects an independent hash stream for one coordinate of a piece.
type Channel byte

const (
	ChannelAngle Channel = iota + 1
	ChannelRadius
	ChannelJitter
	ChannelYaw
)

// Unit returns a value in [0, 1) derived only from (id, index, ch).
//
// The hash is xxhash-64 over id, a zero byte, index as little-endian uint32,
// and the channel byte. The top 53 bits are scaled by 2^-53, which maps
// exactly onto the float64 mantissa.
func Unit(id catalog.ID, index int, ch Channel) float64 {
	buf := make([]byte, 0, len(id)+6)
	buf = append(buf, id...)
	buf = append(buf, 0)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(index))
	buf = append(buf, byte(ch))
	return float64(xxhash.Sum64(buf)>>11) / (1 << 53)
}
