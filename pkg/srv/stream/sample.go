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
	"time"

	"jinr.ru/greenlab/go-imu/pkg/layers"
)

// Sample is one decoded measurement in physical units, the form the API
// and the state store work with.
type Sample struct {
	Device      string     `json:"device"`
	Sequencer   uint8      `json:"sequencer"`
	Temperature float64    `json:"temperature"`
	Gyro        [3]float64 `json:"gyro"`
	Accel       [3]float64 `json:"accel"`
	Flags       string     `json:"flags"`
	Mux         uint32     `json:"mux"`
	Time        time.Time  `json:"time"`
}

func NewSample(device string, imu *layers.ImuLayer, ts time.Time) *Sample {
	return &Sample{
		Device:      device,
		Sequencer:   imu.Sequencer,
		Temperature: imu.Celsius(),
		Gyro:        imu.GyroFloat(),
		Accel:       imu.AccelFloat(),
		Flags:       imu.Flags.String(),
		Mux:         imu.Mux,
		Time:        ts,
	}
}

// DeviceInfo is the identity record assembled from the mux words of
// consecutive packets, flattened for the API and the state store.
type DeviceInfo struct {
	SerialNoHi  uint32 `json:"serial_no_hi"`
	SerialID    uint32 `json:"serial_id"`
	HumanSerial uint32 `json:"human_serial"`
	GitShort    uint32 `json:"git_short"`
	Version     string `json:"version"`
	Revision    int16  `json:"revision"`
	BuildDate   string `json:"build_date"`
	HwType      uint16 `json:"hw_type"`
	PacketRate  uint16 `json:"packet_rate"`
}

func NewDeviceInfo(r *layers.ImuMuxRecord) *DeviceInfo {
	return &DeviceInfo{
		SerialNoHi:  r.SerialNoHi(),
		SerialID:    r.SerialID(),
		HumanSerial: r.HumanSerial(),
		GitShort:    r.GitShort(),
		Version:     r.Version().String(),
		Revision:    r.Revision(),
		BuildDate:   r.BuildDate().String(),
		HwType:      r.HwType(),
		PacketRate:  r.PacketRate(),
	}
}
