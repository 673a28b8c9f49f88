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
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// Device is one IMU unit the tool talks to
type Device struct {
	Name string `json:"name"`
	IP   string `json:"ip"`
}

type Config struct {
	// IP is the address the stream and API servers bind to
	IP       string    `json:"ip,omitempty"`
	LogLevel string    `json:"log_level,omitempty"`
	// DataDir is where raw packet files are persisted
	DataDir  string    `json:"data_dir,omitempty"`
	Devices  []*Device `json:"devices"`
	filepath string
}

// Persist writes the config to its yaml file creating the directory if needed
func (c *Config) Persist(overwrite bool) error {
	if _, err := os.Stat(c.filepath); err == nil && !overwrite {
		return ErrConfigFileExists{Path: c.filepath}
	}

	data, err := yaml.Marshal(&c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.filepath)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	err = os.WriteFile(c.filepath, data, 0644)
	if err != nil {
		return err
	}

	return nil
}

// Load reads the config from its yaml file. A missing file is not an
// error, the defaults stay in place.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, c)
}

// DBPath returns the path of the bbolt database holding device state
func (c *Config) DBPath() string {
	return filepath.Join(filepath.Dir(c.filepath), DBFile)
}

// GetDeviceByName returns the configured device with the given name or nil
func (c *Config) GetDeviceByName(name string) *Device {
	for _, device := range c.Devices {
		if device.Name == name {
			return device
		}
	}
	return nil
}

// GetDeviceByIP returns the configured device with the given IP address
func (c *Config) GetDeviceByIP(ip net.IP) (*Device, error) {
	for _, device := range c.Devices {
		if ip.Equal(net.ParseIP(device.IP)) {
			return device, nil
		}
	}
	return nil, ErrDeviceNotFound{What: ip.String()}
}

func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir, ConfigFile)
}

func NewDefaultConfig() *Config {
	return &Config{
		IP:       DefaultIP,
		LogLevel: DefaultLogLevel,
		DataDir:  filepath.Join(filepath.Dir(DefaultConfigPath()), DefaultDataDir),
		Devices: []*Device{
			{
				Name: DefaultDeviceName,
				IP:   DefaultDeviceIP,
			},
		},
		filepath: DefaultConfigPath(),
	}
}
