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

package layers

import (
	"encoding/binary"
	"math"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"jinr.ru/greenlab/go-imu/pkg/crc"
)

const (
	// ImuLayerNum identifies the layer
	ImuLayerNum = 2010
	// ImuHeader is a magic number that appears in the beginning of each IMU packet
	ImuHeader = 0x9574
	// ImuPacketSize is the total size of an IMU packet including header and CRC
	ImuPacketSize = 40
	// ImuCrcOffset is the offset of the CRC32 field, the CRC covers all
	// preceding bytes and excludes itself
	ImuCrcOffset = ImuPacketSize - 4
	// ImuScale converts gyro/accel values from FP1.15.16 fixed point
	// (1 sign bit, 15 integer bits, 16 fractional bits)
	ImuScale = 1.0 / 65536
	// ImuBaudRate is the baud rate of the serial link the device transmits on
	ImuBaudRate = 1000000
	// Kelvin is the offset between the kelvin and Celsius scales
	Kelvin = 273.15
)

// Field offsets within the packet, all fields are little-endian and packed
// with no padding.
const (
	headerOffset      = 0
	sequencerOffset   = 2
	ffSequencerOffset = 3
	muxOffset         = 4
	flagsOffset       = 8
	temperatureOffset = 10
	gyroOffset        = 12
	accelOffset       = 24
)

// ImuValidation classifies the outcome of checking one packet buffer.
// It is data, not an error: every malformed buffer maps to one of the
// values below and the codec never aborts.
type ImuValidation int

const (
	ImuOk ImuValidation = iota
	ImuBadHeader
	ImuBadSequencer
	ImuBadCrc
)

func (v ImuValidation) String() string {
	switch v {
	case ImuOk:
		return "OK"
	case ImuBadHeader:
		return "Invalid header"
	case ImuBadSequencer:
		return "Invalid sequencer"
	case ImuBadCrc:
		return "CRC validation failed"
	}
	return "Unknown validation result"
}

// Validate checks an IMU packet buffer. The checks run in a fixed order
// and stop at the first failure: header magic first, then the sequencer
// complement pair, then the CRC32 over bytes [0:ImuCrcOffset]. The order
// is part of the contract, the sequencer and CRC of a buffer that is not
// an IMU packet at all are meaningless and must not be inspected.
//
// The buffer must hold at least ImuPacketSize bytes. A shorter buffer is
// a caller error, it is reported as ImuBadHeader instead of panicking but
// the classification of short input is otherwise unspecified.
func Validate(data []byte) ImuValidation {
	if len(data) < ImuPacketSize {
		return ImuBadHeader
	}
	if binary.LittleEndian.Uint16(data[headerOffset:sequencerOffset]) != ImuHeader {
		return ImuBadHeader
	}
	if data[sequencerOffset] != ^data[ffSequencerOffset] {
		return ImuBadSequencer
	}
	if crc.Checksum(data[:ImuCrcOffset]) != binary.LittleEndian.Uint32(data[ImuCrcOffset:ImuPacketSize]) {
		return ImuBadCrc
	}
	return ImuOk
}

// ImuLayer is one inertial sample packet. Raw fields are kept as they
// appear on the wire, unit conversion happens in the accessors.
type ImuLayer struct {
	layers.BaseLayer
	Header      uint16
	Sequencer   uint8
	FFSequencer uint8
	Mux         uint32
	Flags       ImuFlags
	Temperature uint16
	Gyro        [3]int32
	Accel       [3]int32
	Crc         uint32
}

var ImuLayerType = gopacket.RegisterLayerType(ImuLayerNum,
	gopacket.LayerTypeMetadata{Name: "ImuLayerType", Decoder: gopacket.DecodeFunc(decodeImuLayer)})

func (imu *ImuLayer) LayerType() gopacket.LayerType {
	return ImuLayerType
}

// DecodeFromBytes attempts to decode the byte slice as an IMU packet.
// It only requires the buffer to be long enough, decoding succeeds for
// invalid packets too so that diagnostic tools can inspect them. Run
// Validate when integrity matters.
func (imu *ImuLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if len(data) < ImuPacketSize {
		df.SetTruncated()
		return ErrImuTooShort{Length: len(data)}
	}

	imu.BaseLayer = layers.BaseLayer{
		Contents: data[:ImuPacketSize],
	}

	imu.Header = binary.LittleEndian.Uint16(data[headerOffset:sequencerOffset])
	imu.Sequencer = data[sequencerOffset]
	imu.FFSequencer = data[ffSequencerOffset]
	imu.Mux = binary.LittleEndian.Uint32(data[muxOffset : muxOffset+4])
	imu.Flags = ImuFlags(binary.LittleEndian.Uint16(data[flagsOffset : flagsOffset+2]))
	imu.Temperature = binary.LittleEndian.Uint16(data[temperatureOffset : temperatureOffset+2])
	for i := 0; i < 3; i++ {
		imu.Gyro[i] = int32(binary.LittleEndian.Uint32(data[gyroOffset+4*i : gyroOffset+4*i+4]))
		imu.Accel[i] = int32(binary.LittleEndian.Uint32(data[accelOffset+4*i : accelOffset+4*i+4]))
	}
	imu.Crc = binary.LittleEndian.Uint32(data[ImuCrcOffset:ImuPacketSize])

	return nil
}

// SerializeTo serializes the layer into bytes and writes the bytes to the
// SerializeBuffer. With opts.ComputeChecksums the complement sequencer
// and the CRC32 are recomputed from the serialized bytes, otherwise the
// stored FFSequencer and Crc values are written as they are, which lets
// tests construct deliberately corrupt packets.
func (imu *ImuLayer) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	buf, err := b.PrependBytes(ImuPacketSize)
	if err != nil {
		return err
	}
	if opts.ComputeChecksums {
		imu.FFSequencer = ^imu.Sequencer
	}
	imu.serializeFields(buf)
	if opts.ComputeChecksums {
		imu.Crc = crc.Checksum(buf[:ImuCrcOffset])
	}
	binary.LittleEndian.PutUint32(buf[ImuCrcOffset:ImuPacketSize], imu.Crc)
	return nil
}

// Pack returns the finalized wire form of the packet. The complement
// sequencer is derived from Sequencer and the CRC32 is recomputed over
// the serialized bytes last, so the result always passes the sequencer
// and CRC checks of Validate.
func (imu *ImuLayer) Pack() []byte {
	buf := make([]byte, ImuPacketSize)
	imu.FFSequencer = ^imu.Sequencer
	imu.serializeFields(buf)
	imu.Crc = crc.Checksum(buf[:ImuCrcOffset])
	binary.LittleEndian.PutUint32(buf[ImuCrcOffset:ImuPacketSize], imu.Crc)
	return buf
}

func (imu *ImuLayer) serializeFields(buf []byte) {
	binary.LittleEndian.PutUint16(buf[headerOffset:sequencerOffset], imu.Header)
	buf[sequencerOffset] = imu.Sequencer
	buf[ffSequencerOffset] = imu.FFSequencer
	binary.LittleEndian.PutUint32(buf[muxOffset:muxOffset+4], imu.Mux)
	binary.LittleEndian.PutUint16(buf[flagsOffset:flagsOffset+2], uint16(imu.Flags))
	binary.LittleEndian.PutUint16(buf[temperatureOffset:temperatureOffset+2], imu.Temperature)
	for i := 0; i < 3; i++ {
		binary.LittleEndian.PutUint32(buf[gyroOffset+4*i:gyroOffset+4*i+4], uint32(imu.Gyro[i]))
		binary.LittleEndian.PutUint32(buf[accelOffset+4*i:accelOffset+4*i+4], uint32(imu.Accel[i]))
	}
}

// Celsius returns the sample temperature in degrees Celsius
func (imu *ImuLayer) Celsius() float64 {
	return TempFromKelvin(imu.Temperature)
}

// GyroFloat returns the angular rates of the three axes in physical units
func (imu *ImuLayer) GyroFloat() [3]float64 {
	return [3]float64{
		FixedToFloat(imu.Gyro[0]),
		FixedToFloat(imu.Gyro[1]),
		FixedToFloat(imu.Gyro[2]),
	}
}

// AccelFloat returns the accelerations of the three axes in physical units
func (imu *ImuLayer) AccelFloat() [3]float64 {
	return [3]float64{
		FixedToFloat(imu.Accel[0]),
		FixedToFloat(imu.Accel[1]),
		FixedToFloat(imu.Accel[2]),
	}
}

// Validate classifies the raw bytes this layer was decoded from
func (imu *ImuLayer) Validate() ImuValidation {
	return Validate(imu.Contents)
}

func (imu *ImuLayer) CanDecode() gopacket.LayerClass {
	return ImuLayerType
}

// NextLayerType returns LayerTypeZero, an IMU packet is always the whole frame
func (imu *ImuLayer) NextLayerType() gopacket.LayerType {
	return gopacket.LayerTypeZero
}

func (imu *ImuLayer) Payload() []byte {
	return nil
}

func decodeImuLayer(data []byte, p gopacket.PacketBuilder) error {
	imu := &ImuLayer{}
	err := imu.DecodeFromBytes(data, p)
	if err != nil {
		return err
	}
	p.AddLayer(imu)
	return nil
}

// TempFromKelvin converts a raw temperature in hundredths of kelvin to
// degrees Celsius.
func TempFromKelvin(raw uint16) float64 {
	return 0.01*float64(raw) - Kelvin
}

// TempToKelvin converts degrees Celsius to the raw representation in
// hundredths of kelvin. The result is rounded to the nearest hundredth,
// clamped to zero below absolute zero and saturated at the top of the
// 16 bit range.
func TempToKelvin(c float64) uint16 {
	k := math.Round((c + Kelvin) * 100)
	if k < 0 {
		return 0
	}
	if k > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(k)
}

// FixedToFloat converts a value from the fixed point format FP1.15.16 to
// a floating point number.
func FixedToFloat(raw int32) float64 {
	return ImuScale * float64(raw)
}

// FloatToFixed converts a physical value to the FP1.15.16 fixed point
// representation, rounded to the nearest step. Values whose scaled
// magnitude does not fit a signed 32 bit integer are not representable
// and the result for them is unspecified.
func FloatToFixed(v float64) int32 {
	return int32(math.Round(v / ImuScale))
}
