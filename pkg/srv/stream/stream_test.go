/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package stream

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jinr.ru/greenlab/go-imu/pkg/config"
	"jinr.ru/greenlab/go-imu/pkg/layers"
)

func testServer(t *testing.T) *ImuServer {
	t.Setenv("HOME", t.TempDir())
	cfg := config.NewDefaultConfig()
	s, err := NewImuServer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(s.state.Close)
	return s
}

func testPacket(t *testing.T, data []byte) gopacket.Packet {
	udpAddr, err := net.ResolveUDPAddr("udp", "192.168.1.2:33310")
	require.NoError(t, err)
	packet := gopacket.NewPacket(data, layers.ImuLayerType, gopacket.Default)
	packet.Metadata().CaptureInfo = gopacket.CaptureInfo{
		Length:        len(data),
		CaptureLength: len(data),
		Timestamp:     time.Now(),
		AncillaryData: []interface{}{udpAddr, config.DefaultDeviceName},
	}
	return packet
}

func TestHandleValidPacket(t *testing.T) {
	s := testServer(t)

	imu := &layers.ImuLayer{
		Header:      layers.ImuHeader,
		Sequencer:   5,
		Mux:         0x1234,
		Temperature: layers.TempToKelvin(25),
	}
	s.handle(testPacket(t, imu.Pack()))

	stats, err := s.state.GetStats(config.DefaultDeviceName)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stats.Received)
	assert.Equal(t, uint64(1), stats.Ok)
	assert.Equal(t, uint8(5), stats.LastSequencer)

	sample, err := s.state.GetLastSample(config.DefaultDeviceName)
	require.NoError(t, err)
	assert.Equal(t, uint8(5), sample.Sequencer)
	assert.InDelta(t, 25.0, sample.Temperature, 0.01)

	// the mux word went into slot sequencer mod 13
	assert.Equal(t, uint32(0x1234), s.muxRecords[config.DefaultDeviceName].Word(5))
}

func TestHandleInvalidPacket(t *testing.T) {
	s := testServer(t)

	imu := &layers.ImuLayer{Header: layers.ImuHeader, Sequencer: 1}
	data := imu.Pack()
	data[20] ^= 0x01 // corrupt the payload, CRC untouched
	s.handle(testPacket(t, data))

	stats, err := s.state.GetStats(config.DefaultDeviceName)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stats.Received)
	assert.Equal(t, uint64(0), stats.Ok)
	assert.Equal(t, uint64(1), stats.BadCrc)

	// invalid packets never become samples
	_, err = s.state.GetLastSample(config.DefaultDeviceName)
	require.Error(t, err)
}

func TestHandleIdentityRecord(t *testing.T) {
	s := testServer(t)

	// one full cycle of the identity record plus decode of the version slot
	for seq := 0; seq < layers.ImuMuxWords; seq++ {
		imu := &layers.ImuLayer{
			Header:    layers.ImuHeader,
			Sequencer: uint8(seq),
			Mux:       uint32(seq + 1),
		}
		if seq == layers.MuxVersionRevision {
			imu.Mux = uint32(3<<13 | 5<<8 | 8)
		}
		s.handle(testPacket(t, imu.Pack()))
	}

	require.True(t, s.muxRecords[config.DefaultDeviceName].Complete())
	info, err := s.state.GetDeviceInfo(config.DefaultDeviceName)
	require.NoError(t, err)
	assert.Equal(t, "3.5.8", info.Version)
	assert.Equal(t, uint32(layers.MuxSerialID+1), info.SerialID)
}
