package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEngines(t *testing.T) {
	require.Equal(t, binary.LittleEndian, GetLittleEndianEngine())
	require.Equal(t, binary.BigEndian, GetBigEndianEngine())

	require.Equal(t, GetBigEndianEngine(), ForFlag(true))
	require.Equal(t, GetLittleEndianEngine(), ForFlag(false))

	require.True(t, IsBigEndian(GetBigEndianEngine()))
	require.False(t, IsBigEndian(GetLittleEndianEngine()))
}

func TestEngine_AppendAndRead(t *testing.T) {
	tests := []struct {
		name   string
		engine EndianEngine
		want   []byte
	}{
		{name: "little", engine: GetLittleEndianEngine(), want: []byte{0xCD, 0xAB, 0x78, 0x56, 0x34, 0x12}},
		{name: "big", engine: GetBigEndianEngine(), want: []byte{0xAB, 0xCD, 0x12, 0x34, 0x56, 0x78}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf []byte
			buf = tt.engine.AppendUint16(buf, 0xABCD)
			buf = tt.engine.AppendUint32(buf, 0x12345678)
			require.Equal(t, tt.want, buf)

			require.Equal(t, uint16(0xABCD), tt.engine.Uint16(buf))
			require.Equal(t, uint32(0x12345678), tt.engine.Uint32(buf[2:]))
		})
	}
}
