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
	"fmt"
)

// ErrBucketNotFound returned when the state database has no bucket for a device
type ErrBucketNotFound struct {
	Device string
}

func (e ErrBucketNotFound) Error() string {
	return fmt.Sprintf("Bucket not found for device: %s", e.Device)
}

// ErrStateNotFound returned when a device has no stored value for a key yet
type ErrStateNotFound struct {
	Device string
	Key    string
}

func (e ErrStateNotFound) Error() string {
	return fmt.Sprintf("No state for device %s: %s", e.Device, e.Key)
}

// ErrUnknownDevice returned when a packet or request refers to a device that is not configured
type ErrUnknownDevice struct {
	Device string
}

func (e ErrUnknownDevice) Error() string {
	return fmt.Sprintf("Unknown device: %s", e.Device)
}
