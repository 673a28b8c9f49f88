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

package device

import (
	"io"
	"time"

	"github.com/google/gopacket"
	"go.bug.st/serial"

	"jinr.ru/greenlab/go-imu/pkg/layers"
	"jinr.ru/greenlab/go-imu/pkg/log"
)

// SerialSource reads fixed-size IMU packets from a serial port. The
// device transmits back to back 40-byte packets, so one full read is one
// packet. The source does not resynchronize a broken stream, it only
// delivers already delimited frames.
type SerialSource struct {
	port       serial.Port
	portName   string
	deviceName string
}

// NewSerialSource opens the serial port at the baud rate the device
// transmits on
func NewSerialSource(portName, deviceName string) (*SerialSource, error) {
	mode := &serial.Mode{
		BaudRate: layers.ImuBaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, err
	}
	log.Info("Opened serial port %s for device %s", portName, deviceName)
	return &SerialSource{
		port:       port,
		portName:   portName,
		deviceName: deviceName,
	}, nil
}

// ReadPacketData reads exactly one packet worth of bytes. It implements
// gopacket.PacketDataSource so the same decode pipeline serves both UDP
// and serial input.
func (s *SerialSource) ReadPacketData() (data []byte, ci gopacket.CaptureInfo, err error) {
	data = make([]byte, layers.ImuPacketSize)
	if _, err = io.ReadFull(s.port, data); err != nil {
		return nil, ci, err
	}
	ci = gopacket.CaptureInfo{
		Length:        layers.ImuPacketSize,
		CaptureLength: layers.ImuPacketSize,
		Timestamp:     time.Now(),
		AncillaryData: []interface{}{s.portName, s.deviceName},
	}
	return data, ci, nil
}

func (s *SerialSource) Close() error {
	return s.port.Close()
}
