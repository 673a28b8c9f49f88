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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jinr.ru/greenlab/go-imu/pkg/config"
)

func testState(t *testing.T) *State {
	t.Setenv("HOME", t.TempDir())
	cfg := config.NewDefaultConfig()
	state, err := NewState(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(state.Close)
	return state
}

func TestStateSample(t *testing.T) {
	state := testState(t)

	_, err := state.GetLastSample(config.DefaultDeviceName)
	require.Error(t, err)
	assert.Equal(t, ErrStateNotFound{Device: config.DefaultDeviceName, Key: LastSampleKey}, err)

	sample := &Sample{
		Device:      config.DefaultDeviceName,
		Sequencer:   0x1E,
		Temperature: 37.9,
		Gyro:        [3]float64{-0.036, -0.014, 0.007},
		Accel:       [3]float64{-0.076, -0.110, 9.766},
		Flags:       "ok",
		Time:        time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, state.SetLastSample(sample))

	got, err := state.GetLastSample(config.DefaultDeviceName)
	require.NoError(t, err)
	assert.Equal(t, sample, got)
}

func TestStateStats(t *testing.T) {
	state := testState(t)

	stats := &Stats{Received: 10, Ok: 8, BadCrc: 2, LastSequencer: 0x42}
	require.NoError(t, state.SetStats(config.DefaultDeviceName, stats))

	got, err := state.GetStats(config.DefaultDeviceName)
	require.NoError(t, err)
	assert.Equal(t, stats, got)
}

func TestStateDeviceInfo(t *testing.T) {
	state := testState(t)

	info := &DeviceInfo{
		SerialID:   0xAABBCCDD,
		Version:    "3.5.8",
		BuildDate:  "2024-12-31",
		HwType:     0x0102,
		PacketRate: 200,
	}
	require.NoError(t, state.SetDeviceInfo(config.DefaultDeviceName, info))

	got, err := state.GetDeviceInfo(config.DefaultDeviceName)
	require.NoError(t, err)
	assert.Equal(t, info, got)
}

func TestStateUnknownDevice(t *testing.T) {
	state := testState(t)
	err := state.SetStats("nosuch", &Stats{})
	require.Error(t, err)
	assert.Equal(t, ErrBucketNotFound{Device: "nosuch"}, err)
}
