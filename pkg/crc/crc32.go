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

const (
	// Initial is the initial value of the CRC32 shift register
	Initial = 0xFFFFFFFF
	// Polynom is the reflected IEEE 802.3 polynomial
	Polynom = 0xEDB88320
	// Residue is the value left in the register after checksumming a buffer
	// with its own little-endian CRC32 appended to it. The device firmware
	// uses it to verify a whole frame in one pass.
	Residue = 0x2144df1c
)

// table is indexed by the low byte of the shift register xored with the
// current input byte. It is immutable after init and safe for concurrent use.
var table [256]uint32

func init() {
	for i := range table {
		crc := uint32(i)
		for j := 0; j < 8; j++ {
			if crc&1 != 0 {
				crc = (crc >> 1) ^ Polynom
			} else {
				crc >>= 1
			}
		}
		table[i] = crc
	}
}

// Bitwise computes the CRC32 checksum of data shifting the register bit by
// bit. It is the reference implementation, kept for verifying the table.
func Bitwise(data []byte) uint32 {
	crc := uint32(Initial)
	for _, b := range data {
		crc ^= uint32(b)
		for j := 0; j < 8; j++ {
			if crc&1 != 0 {
				crc = (crc >> 1) ^ Polynom
			} else {
				crc >>= 1
			}
		}
	}
	return crc ^ Initial
}

// Table computes the CRC32 checksum of data using the precomputed lookup
// table. Produces exactly the same values as Bitwise.
func Table(data []byte) uint32 {
	crc := uint32(Initial)
	for _, b := range data {
		crc = table[(crc^uint32(b))&0xff] ^ (crc >> 8)
	}
	return crc ^ Initial
}

// Checksum is the implementation used by the packet codec
var Checksum = Table
