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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jinr.ru/greenlab/go-imu/pkg/layers"
)

func TestWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	writer, err := NewWriter(dir, "run1", "imu0")
	require.NoError(t, err)

	packet := (&layers.ImuLayer{Header: layers.ImuHeader, Sequencer: 1}).Pack()
	n, err := writer.Write(packet)
	require.NoError(t, err)
	assert.Equal(t, layers.ImuPacketSize, n)
	_, err = writer.Write(packet)
	require.NoError(t, err)
	writer.Flush()

	data, err := os.ReadFile(filepath.Join(dir, "run1_imu0.imu"))
	require.NoError(t, err)
	// back to back fixed-size packets, no extra framing
	require.Len(t, data, 2*layers.ImuPacketSize)
	assert.Equal(t, packet, data[:layers.ImuPacketSize])
	assert.Equal(t, layers.ImuOk, layers.Validate(data[layers.ImuPacketSize:]))
}
