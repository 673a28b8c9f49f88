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

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-imu/pkg/config"
	"jinr.ru/greenlab/go-imu/pkg/srv/stream"
)

const (
	AddressOptionName = "address"
	SerialOptionName  = "serial"
	DeviceOptionName  = "device"
)

// NewCommand creates a cobra command object for running the stream
// server. By default packets arrive over UDP from the configured
// devices, with --serial they are read from a serial port instead and
// accounted to the device given with --device.
func NewCommand() *cobra.Command {
	var address, serialPort, deviceName string
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Start IMU stream server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if address != "" {
				cfg.IP = address
			}
			if deviceName == "" && len(cfg.Devices) > 0 {
				deviceName = cfg.Devices[0].Name
			}

			server, err := stream.NewImuServer(context.Background(), cfg)
			if err != nil {
				return err
			}
			if serialPort != "" {
				if err := server.ServeSerial(serialPort, deviceName); err != nil {
					return err
				}
			}
			return server.Run()
		},
	}
	cmd.Flags().StringVar(&address, AddressOptionName, "", "Address to bind. E.g. 192.168.1.100")
	cmd.Flags().StringVar(&serialPort, SerialOptionName, "", "Serial port to read packets from. E.g. /dev/ttyUSB0")
	cmd.Flags().StringVar(&deviceName, DeviceOptionName, "", "Device the serial port belongs to. Defaults to the first configured device")
	return cmd
}
