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

package crc

import (
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnownAnswer(t *testing.T) {
	// the standard CRC-32/ISO-HDLC check value
	assert.Equal(t, uint32(0xCBF43926), Table([]byte("123456789")))
	assert.Equal(t, uint32(0xCBF43926), Bitwise([]byte("123456789")))
	assert.Equal(t, uint32(0), Table(nil))
	assert.Equal(t, uint32(0), Bitwise(nil))
}

func TestBitwiseTableAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, length := range []int{0, 1, 2, 3, 7, 8, 36, 40, 255, 256, 1024, 4096} {
		zeros := make([]byte, length)
		ones := make([]byte, length)
		random := make([]byte, length)
		for i := 0; i < length; i++ {
			ones[i] = 0xFF
			random[i] = byte(rng.Intn(256))
		}
		for _, data := range [][]byte{zeros, ones, random} {
			assert.Equal(t, Bitwise(data), Table(data), "length %d", length)
		}
	}
}

// Appending the little-endian CRC of a buffer to the buffer and running
// the checksum again always leaves the Residue constant. This is how the
// constant is derived, it is never trusted on its own.
func TestResidue(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, length := range []int{0, 1, 36, 100, 1000} {
		data := make([]byte, length, length+4)
		_, err := rng.Read(data)
		require.NoError(t, err)
		checksum := Checksum(data)
		data = binary.LittleEndian.AppendUint32(data, checksum)
		assert.Equal(t, uint32(Residue), Checksum(data), "length %d", length)
	}
}
