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

package parse

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/gopacket"
	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-imu/pkg/crc"
	"jinr.ru/greenlab/go-imu/pkg/layers"
)

const (
	FileOptionName = "file"
)

// referenceSamples are packets captured from a real device, the last
// three have a single flipped bit in the header, the sequencer pair and
// the payload respectively.
var referenceSamples = []string{
	"74951EE10000000000008179CAF6FFFF85FCFFFFC801000079ECFFFFDCE3FFFFF9C30900BA11DF0F",
	"74951FE00000000000007F79AFFEFFFFCFF4FFFFEAFBFFFF36F1FFFFC5E3FFFFA8C30900C14BE115",
	"749520DF3F03000000007F79F2F6FFFFD7EEFFFF13F6FFFF82EFFFFF5AE6FFFF01C90900022D0189",
	"749522DD0000000000007F7912EFFFFF99F4FFFFFEF9FFFFBFEAFFFFAADCFFFFB5CA0900C8E47F2F",
	"749422DD0000000000007F7912EFFFFF99F4FFFFFEF9FFFFBFEAFFFFAADCFFFFB5CA0900C8E47F2F",
	"749522CD0000000000007F7912EFFFFF99F4FFFFFEF9FFFFBFEAFFFFAADCFFFFB5CA0900C8E47F2F",
	"749522DD0000100000007F7912EFFFFF99F4FFFFFEF9FFFFBFEAFFFFAADCFFFFB5CA0900C8E47F2F",
}

// NewCommand creates a cobra command object for decoding packets from
// hex strings and printing them as a table. Packets are decoded and
// printed whether they are valid or not, the validation result is
// reported per row.
func NewCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "parse [packet-hex ...]",
		Short: "Decode IMU packets given as hex strings and print them as a table",
		Long: "Decode IMU packets given as hex strings and print them as a table.\n" +
			"Packets are taken from the arguments or from a file with one packet\n" +
			"per line. Without arguments a set of reference samples is decoded.",
		RunE: func(cmd *cobra.Command, args []string) error {
			samples := args
			if file != "" {
				fileSamples, err := readSamples(file)
				if err != nil {
					return err
				}
				samples = append(samples, fileSamples...)
			}
			if len(samples) == 0 {
				samples = referenceSamples
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-6s %-4s %-5s %11s %10s %10s %10s %10s %10s %10s %10s %10s %s\n",
				"Header", "Seq", "FFSeq", "Temperature",
				"GyroX", "GyroY", "GyroZ", "AcclX", "AcclY", "AcclZ",
				"CRC32", "Check", "Validation result")
			for _, s := range samples {
				if err := printPacket(out, s); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, FileOptionName, "", "File with one hex encoded packet per line")
	return cmd
}

func readSamples(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var samples []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		samples = append(samples, line)
	}
	return samples, scanner.Err()
}

func printPacket(out io.Writer, hexStr string) error {
	data, err := hex.DecodeString(strings.TrimSpace(hexStr))
	if err != nil {
		return err
	}
	if len(data) < layers.ImuPacketSize {
		return layers.ErrImuTooShort{Length: len(data)}
	}

	imu := &layers.ImuLayer{}
	if err := imu.DecodeFromBytes(data, gopacket.NilDecodeFeedback); err != nil {
		return err
	}
	result := layers.Validate(data)
	check := crc.Checksum(data[:layers.ImuCrcOffset])
	gyro := imu.GyroFloat()
	accel := imu.AccelFloat()

	fmt.Fprintf(out, "0x%04X 0x%02X 0x%02X  %11.2f %10.3f %10.3f %10.3f %10.3f %10.3f %10.3f 0x%08X 0x%08X %s\n",
		imu.Header, imu.Sequencer, imu.FFSequencer,
		imu.Celsius(),
		gyro[0], gyro[1], gyro[2],
		accel[0], accel[1], accel[2],
		imu.Crc, check, result)
	return nil
}
