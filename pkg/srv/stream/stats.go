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
	"jinr.ru/greenlab/go-imu/pkg/layers"
)

// Stats are per-device packet counters. The codec classifies one buffer
// at a time and holds no state, so cross-packet accounting, including
// sequencer gap detection, lives here.
type Stats struct {
	Received      uint64 `json:"received"`
	Ok            uint64 `json:"ok"`
	BadHeader     uint64 `json:"bad_header"`
	BadSequencer  uint64 `json:"bad_sequencer"`
	BadCrc        uint64 `json:"bad_crc"`
	SequencerGaps uint64 `json:"sequencer_gaps"`
	LastSequencer uint8  `json:"last_sequencer"`
}

// Account records the validation result of one packet
func (s *Stats) Account(result layers.ImuValidation) {
	s.Received++
	switch result {
	case layers.ImuOk:
		s.Ok++
	case layers.ImuBadHeader:
		s.BadHeader++
	case layers.ImuBadSequencer:
		s.BadSequencer++
	case layers.ImuBadCrc:
		s.BadCrc++
	}
}

// AccountSequencer tracks the rolling packet counter of valid packets and
// counts the gaps. The counter wraps at 255, a step of exactly one is the
// only gapless transition.
func (s *Stats) AccountSequencer(sequencer uint8) {
	if s.Ok > 1 && sequencer != s.LastSequencer+1 {
		s.SequencerGaps++
	}
	s.LastSequencer = sequencer
}
