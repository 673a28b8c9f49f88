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
	"fmt"
)

// The Mux field of each packet carries one 32 bit word of a larger device
// identity record, multiplexed across consecutive packets. The same 4
// bytes therefore have two mutually exclusive interpretations: the raw
// word of the current sample, or one slot of the record below. They are
// modeled as separate pure conversion functions, never as aliased memory.

// ImuMuxWords is the number of 32 bit slots of the identity record
const ImuMuxWords = 13

// Identity record slots
const (
	MuxSerialNoHi = iota
	MuxRev
	MuxTempExt
	MuxTempInt
	MuxPresExt
	MuxPower
	MuxSerialID
	MuxHumanSerial
	MuxCurrent
	MuxGitShort
	MuxVersionRevision
	MuxBuildDateHwType
	MuxPacketRate
)

// MuxSlot maps a packet sequencer to the identity record slot its Mux
// word belongs to. The device walks the record in sequencer order.
func MuxSlot(sequencer uint8) int {
	return int(sequencer) % ImuMuxWords
}

// ImuVersion is the firmware version packed as major.minor.build into 16
// bits: 3 bits major, 5 bits minor, 8 bits build.
type ImuVersion uint16

func (v ImuVersion) Major() uint8 { return uint8(v >> 13) }
func (v ImuVersion) Minor() uint8 { return uint8(v>>8) & 0x1f }
func (v ImuVersion) Build() uint8 { return uint8(v) }

func (v ImuVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Build())
}

// ImuBuildDate is the firmware build date packed as year.month.day into
// 16 bits: 7 bits year since 2000, 4 bits month, 5 bits day.
type ImuBuildDate uint16

func (d ImuBuildDate) Year() int    { return 2000 + int(d>>9) }
func (d ImuBuildDate) Month() uint8 { return uint8(d>>5) & 0x0f }
func (d ImuBuildDate) Day() uint8   { return uint8(d) & 0x1f }

func (d ImuBuildDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year(), d.Month(), d.Day())
}

// ImuMuxRecord assembles the device identity record from per-packet Mux
// words. Collecting words across packets is the stream handler's job, the
// record itself only stores slots and decodes fields.
type ImuMuxRecord struct {
	words [ImuMuxWords]uint32
	seen  uint16
}

// SetWord stores the raw Mux word of one packet into its slot
func (r *ImuMuxRecord) SetWord(slot int, raw uint32) error {
	if slot < 0 || slot >= ImuMuxWords {
		return ErrImuBadMuxSlot{Slot: slot}
	}
	r.words[slot] = raw
	r.seen |= 1 << uint(slot)
	return nil
}

// Word returns the raw 32 bit interpretation of a slot
func (r *ImuMuxRecord) Word(slot int) uint32 {
	return r.words[slot]
}

// Complete reports whether every slot of the record has been seen at
// least once
func (r *ImuMuxRecord) Complete() bool {
	return r.seen == 1<<ImuMuxWords-1
}

func (r *ImuMuxRecord) lo16(slot int) uint16 { return uint16(r.words[slot]) }
func (r *ImuMuxRecord) hi16(slot int) uint16 { return uint16(r.words[slot] >> 16) }

func (r *ImuMuxRecord) SerialNoHi() uint32  { return r.words[MuxSerialNoHi] }
func (r *ImuMuxRecord) Rev() int32          { return int32(r.words[MuxRev]) }
func (r *ImuMuxRecord) TempExt() int32      { return int32(r.words[MuxTempExt]) }
func (r *ImuMuxRecord) TempInt() int32      { return int32(r.words[MuxTempInt]) }
func (r *ImuMuxRecord) PresExt() int32      { return int32(r.words[MuxPresExt]) }
func (r *ImuMuxRecord) Power() int32        { return int32(r.words[MuxPower]) }
func (r *ImuMuxRecord) SerialID() uint32    { return r.words[MuxSerialID] }
func (r *ImuMuxRecord) HumanSerial() uint32 { return r.words[MuxHumanSerial] }
func (r *ImuMuxRecord) Current() int32      { return int32(r.words[MuxCurrent]) }
func (r *ImuMuxRecord) GitShort() uint32    { return r.words[MuxGitShort] }

func (r *ImuMuxRecord) Version() ImuVersion {
	return ImuVersion(r.lo16(MuxVersionRevision))
}

func (r *ImuMuxRecord) Revision() int16 {
	return int16(r.hi16(MuxVersionRevision))
}

func (r *ImuMuxRecord) BuildDate() ImuBuildDate {
	return ImuBuildDate(r.lo16(MuxBuildDateHwType))
}

func (r *ImuMuxRecord) HwType() uint16 {
	return r.hi16(MuxBuildDateHwType)
}

func (r *ImuMuxRecord) PacketRate() uint16 {
	return r.lo16(MuxPacketRate)
}
