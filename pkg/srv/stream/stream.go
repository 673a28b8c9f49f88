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
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/gopacket"

	"jinr.ru/greenlab/go-imu/pkg/config"
	"jinr.ru/greenlab/go-imu/pkg/device"
	"jinr.ru/greenlab/go-imu/pkg/layers"
	"jinr.ru/greenlab/go-imu/pkg/log"
	"jinr.ru/greenlab/go-imu/pkg/srv"
)

const (
	ImuPort      = 33310
	InChSize     = 100
	WriterChSize = 100
)

// PacketSource adapts a per-device input channel to the
// gopacket.PacketDataSource interface
type PacketSource struct {
	ChIn chan srv.InPacket
}

func NewPacketSource() *PacketSource {
	return &PacketSource{
		ChIn: make(chan srv.InPacket, InChSize),
	}
}

func (ps *PacketSource) ReadPacketData() (data []byte, ci gopacket.CaptureInfo, err error) {
	captured := <-ps.ChIn
	data = captured.Data
	ci = captured.CaptureInfo
	return
}

// ImuServer receives IMU packets over UDP or a serial link, validates
// and decodes them, accounts statistics, assembles device identity
// records and optionally persists raw packets to files.
type ImuServer struct {
	srv.Server
	api           *ApiServer
	state         *State
	packetSources map[string]*PacketSource
	muxRecords    map[string]*layers.ImuMuxRecord

	// writerMu guards writers, Persist and Flush are called from the API
	// while packet handlers are writing
	writerMu  sync.Mutex
	writers   map[string]io.Writer
	writerChs map[string]chan []byte
}

func NewImuServer(ctx context.Context, cfg *config.Config) (*ImuServer, error) {
	log.Info("Initializing IMU stream server with address: %s port: %d", cfg.IP, ImuPort)

	uaddr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", cfg.IP, ImuPort))
	if err != nil {
		return nil, err
	}

	state, err := NewState(ctx, cfg)
	if err != nil {
		return nil, err
	}

	s := &ImuServer{
		Server: srv.Server{
			Context: ctx,
			Config:  cfg,
			UDPAddr: uaddr,
		},
		state:         state,
		packetSources: make(map[string]*PacketSource),
		muxRecords:    make(map[string]*layers.ImuMuxRecord),
		writers:       make(map[string]io.Writer),
		writerChs:     make(map[string]chan []byte),
	}

	for _, dev := range cfg.Devices {
		s.packetSources[dev.Name] = NewPacketSource()
		s.muxRecords[dev.Name] = &layers.ImuMuxRecord{}
		s.writers[dev.Name] = io.Discard
		s.writerChs[dev.Name] = make(chan []byte, WriterChSize)
	}

	apiServer, err := NewApiServer(ctx, cfg, s)
	if err != nil {
		return nil, err
	}
	s.api = apiServer

	return s, nil
}

// Run starts the UDP listener, the per-device handlers and the API
// server and blocks until one of them fails.
func (s *ImuServer) Run() error {
	conn, err := net.ListenUDP("udp", s.UDPAddr)
	if err != nil {
		return err
	}
	defer conn.Close()
	defer s.state.Close()
	defer s.Flush()

	errChan := make(chan error, 1)
	buffer := make([]byte, 65536)

	// Read packets from wire and dispatch them to per-device queues
	go func() {
		for {
			length, addr, readErr := conn.ReadFrom(buffer)
			if readErr != nil {
				errChan <- readErr
				return
			}
			udpAddr, readErr := net.ResolveUDPAddr("udp", addr.String())
			if readErr != nil {
				errChan <- readErr
				return
			}
			ipAddr := net.ParseIP(strings.Split(addr.String(), ":")[0])
			dev, devErr := s.GetDeviceByIP(ipAddr)
			if devErr != nil {
				log.Debug("Drop packet. Device not found for given IP: %s", ipAddr.String())
				continue
			}

			captureInfo := gopacket.CaptureInfo{
				Length:        length,
				CaptureLength: length,
				Timestamp:     time.Now(),
				AncillaryData: []interface{}{udpAddr, dev.Name},
			}
			packet := srv.InPacket{CaptureInfo: captureInfo, Data: make([]byte, length)}
			copy(packet.Data, buffer[:length])
			s.packetSources[dev.Name].ChIn <- packet
		}
	}()

	s.startHandlers()

	go func() {
		errChan <- s.api.Run()
	}()

	return <-errChan
}

// startHandlers runs the decode pipeline and the raw packet writer for
// every configured device
func (s *ImuServer) startHandlers() {
	for _, dev := range s.Config.Devices {
		deviceName := dev.Name

		go func() {
			for buf := range s.writerChs[deviceName] {
				s.writerMu.Lock()
				w := s.writers[deviceName]
				s.writerMu.Unlock()
				if _, err := w.Write(buf); err != nil {
					log.Error("Error while writing packet: device: %s: %s", deviceName, err)
				}
			}
		}()

		go func() {
			source := gopacket.NewPacketSource(s.packetSources[deviceName], layers.ImuLayerType)
			for packet := range source.Packets() {
				s.handle(packet)
			}
		}()
	}
}

func (s *ImuServer) handle(packet gopacket.Packet) {
	deviceName, err := srv.GetDeviceName(packet)
	if err != nil {
		log.Error("Error while handling packet: %s", err)
		return
	}
	if udpAddr, addrErr := srv.GetAddrPort(packet); addrErr == nil {
		log.Debug("Handling packet: device: %s addr: %s", deviceName, udpAddr)
	}

	raw := packet.Metadata().CaptureInfo
	data := packet.Data()

	stats, err := s.state.GetStats(deviceName)
	if err != nil {
		stats = &Stats{}
	}

	result := layers.Validate(data)
	stats.Account(result)

	if result != layers.ImuOk {
		log.Debug("Invalid packet: device: %s result: %s", deviceName, result)
		if err := s.state.SetStats(deviceName, stats); err != nil {
			log.Error("Error while storing stats: device: %s: %s", deviceName, err)
		}
		return
	}

	imuLayer := packet.Layer(layers.ImuLayerType)
	if imuLayer == nil {
		log.Error("Valid packet without IMU layer: device: %s", deviceName)
		return
	}
	imu := imuLayer.(*layers.ImuLayer)

	stats.AccountSequencer(imu.Sequencer)
	if err := s.state.SetStats(deviceName, stats); err != nil {
		log.Error("Error while storing stats: device: %s: %s", deviceName, err)
	}

	record := s.muxRecords[deviceName]
	if err := record.SetWord(layers.MuxSlot(imu.Sequencer), imu.Mux); err != nil {
		log.Error("Error while storing mux word: device: %s: %s", deviceName, err)
	}
	if record.Complete() {
		if err := s.state.SetDeviceInfo(deviceName, NewDeviceInfo(record)); err != nil {
			log.Error("Error while storing device info: device: %s: %s", deviceName, err)
		}
	}

	sample := NewSample(deviceName, imu, raw.Timestamp)
	if err := s.state.SetLastSample(sample); err != nil {
		log.Error("Error while storing sample: device: %s: %s", deviceName, err)
	}

	s.writerChs[deviceName] <- data
}

// ServeSerial reads fixed-size packets from a serial port and feeds them
// into the queue of the given device. Framing is the link's business:
// the source delivers already delimited 40-byte frames, the codec never
// scans the byte stream.
func (s *ImuServer) ServeSerial(portName, deviceName string) error {
	source, ok := s.packetSources[deviceName]
	if !ok {
		return ErrUnknownDevice{Device: deviceName}
	}

	serialSource, err := device.NewSerialSource(portName, deviceName)
	if err != nil {
		return err
	}

	go func() {
		defer serialSource.Close()
		for {
			data, ci, readErr := serialSource.ReadPacketData()
			if readErr != nil {
				log.Error("Error while reading from serial port %s: %s", portName, readErr)
				return
			}
			source.ChIn <- srv.InPacket{CaptureInfo: ci, Data: data}
		}
	}()

	return nil
}

// Persist directs raw packets of all devices into files under dir
func (s *ImuServer) Persist(dir, prefix string) error {
	s.writerMu.Lock()
	defer s.writerMu.Unlock()
	for _, dev := range s.Config.Devices {
		writer, err := NewWriter(dir, prefix, dev.Name)
		if err != nil {
			return err
		}
		if old, ok := s.writers[dev.Name].(*Writer); ok {
			old.Flush()
		}
		s.writers[dev.Name] = writer
	}
	return nil
}

// Flush closes all packet files and turns persisting off
func (s *ImuServer) Flush() {
	s.writerMu.Lock()
	defer s.writerMu.Unlock()
	for name, w := range s.writers {
		if writer, ok := w.(*Writer); ok {
			writer.Flush()
		}
		s.writers[name] = io.Discard
	}
}
