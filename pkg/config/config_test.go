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

package config

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := NewDefaultConfig()
	cfg.LogLevel = "debug"
	cfg.Devices = append(cfg.Devices, &Device{Name: "imu1", IP: "192.168.1.3"})
	require.NoError(t, cfg.Persist(false))

	// without overwrite a second persist must fail
	err := cfg.Persist(false)
	require.Error(t, err)
	assert.Equal(t, ErrConfigFileExists{Path: DefaultConfigPath()}, err)
	require.NoError(t, cfg.Persist(true))

	loaded := NewDefaultConfig()
	require.NoError(t, loaded.Load())
	assert.Equal(t, "debug", loaded.LogLevel)
	require.Len(t, loaded.Devices, 2)
	assert.Equal(t, "imu1", loaded.Devices[1].Name)
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := NewDefaultConfig()
	require.NoError(t, cfg.Load())
	assert.Equal(t, DefaultIP, cfg.IP)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestGetDevice(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.NotNil(t, cfg.GetDeviceByName(DefaultDeviceName))
	assert.Nil(t, cfg.GetDeviceByName("nosuch"))

	dev, err := cfg.GetDeviceByIP(net.ParseIP(DefaultDeviceIP))
	require.NoError(t, err)
	assert.Equal(t, DefaultDeviceName, dev.Name)

	_, err = cfg.GetDeviceByIP(net.ParseIP("10.0.0.1"))
	require.Error(t, err)
	assert.Equal(t, ErrDeviceNotFound{What: "10.0.0.1"}, err)
}
