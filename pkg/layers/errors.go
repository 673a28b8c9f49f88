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

// ErrImuTooShort returned when a buffer does not hold a whole IMU packet
type ErrImuTooShort struct {
	Length int
}

func (e ErrImuTooShort) Error() string {
	return fmt.Sprintf("IMU packet too short: %d bytes, need %d", e.Length, ImuPacketSize)
}

// ErrImuBadMuxSlot returned when a mux word is stored outside the identity record
type ErrImuBadMuxSlot struct {
	Slot int
}

func (e ErrImuBadMuxSlot) Error() string {
	return fmt.Sprintf("Mux slot out of range: %d, record has %d words", e.Slot, ImuMuxWords)
}
