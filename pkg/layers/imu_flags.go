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
	"strings"
)

// ImuFlags is the 16 bit status word of a sample. Bit positions are fixed
// by the device firmware, the masks below must not be reordered. Bits 14
// and 15 are reserved.
type ImuFlags uint16

const (
	FlagGeneralError ImuFlags = 1 << iota
	FlagThermostatNotReady
	FlagGyroNotReady
	FlagOverVoltage
	FlagUnderVoltage
	FlagOverTemperature
	FlagUnderTemperature
	FlagPPSNotLocked
	FlagGyroXOutOfRange
	FlagGyroYOutOfRange
	FlagGyroZOutOfRange
	FlagAccelXOutOfRange
	FlagAccelYOutOfRange
	FlagAccelZOutOfRange
)

// FlagsMask covers the 14 defined status bits
const FlagsMask = FlagAccelZOutOfRange<<1 - 1

func (f ImuFlags) GeneralError() bool       { return f&FlagGeneralError != 0 }
func (f ImuFlags) ThermostatNotReady() bool { return f&FlagThermostatNotReady != 0 }
func (f ImuFlags) GyroNotReady() bool       { return f&FlagGyroNotReady != 0 }
func (f ImuFlags) OverVoltage() bool        { return f&FlagOverVoltage != 0 }
func (f ImuFlags) UnderVoltage() bool       { return f&FlagUnderVoltage != 0 }
func (f ImuFlags) OverTemperature() bool    { return f&FlagOverTemperature != 0 }
func (f ImuFlags) UnderTemperature() bool   { return f&FlagUnderTemperature != 0 }
func (f ImuFlags) PPSNotLocked() bool       { return f&FlagPPSNotLocked != 0 }
func (f ImuFlags) GyroXOutOfRange() bool    { return f&FlagGyroXOutOfRange != 0 }
func (f ImuFlags) GyroYOutOfRange() bool    { return f&FlagGyroYOutOfRange != 0 }
func (f ImuFlags) GyroZOutOfRange() bool    { return f&FlagGyroZOutOfRange != 0 }
func (f ImuFlags) AccelXOutOfRange() bool   { return f&FlagAccelXOutOfRange != 0 }
func (f ImuFlags) AccelYOutOfRange() bool   { return f&FlagAccelYOutOfRange != 0 }
func (f ImuFlags) AccelZOutOfRange() bool   { return f&FlagAccelZOutOfRange != 0 }

var flagNames = []struct {
	mask ImuFlags
	name string
}{
	{FlagGeneralError, "error"},
	{FlagThermostatNotReady, "thermostat-not-ready"},
	{FlagGyroNotReady, "gyro-not-ready"},
	{FlagOverVoltage, "over-voltage"},
	{FlagUnderVoltage, "under-voltage"},
	{FlagOverTemperature, "over-temperature"},
	{FlagUnderTemperature, "under-temperature"},
	{FlagPPSNotLocked, "pps-not-locked"},
	{FlagGyroXOutOfRange, "gyro-x-out-of-range"},
	{FlagGyroYOutOfRange, "gyro-y-out-of-range"},
	{FlagGyroZOutOfRange, "gyro-z-out-of-range"},
	{FlagAccelXOutOfRange, "accel-x-out-of-range"},
	{FlagAccelYOutOfRange, "accel-y-out-of-range"},
	{FlagAccelZOutOfRange, "accel-z-out-of-range"},
}

// String lists the names of the set status bits, "ok" when none are set
func (f ImuFlags) String() string {
	var names []string
	for _, fn := range flagNames {
		if f&fn.mask != 0 {
			names = append(names, fn.name)
		}
	}
	if len(names) == 0 {
		return "ok"
	}
	return strings.Join(names, ",")
}
