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
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
	"sigs.k8s.io/yaml"

	"jinr.ru/greenlab/go-imu/pkg/config"
	"jinr.ru/greenlab/go-imu/pkg/log"
)

const (
	BucketPrefix  = "imu_"
	LastSampleKey = "last_sample"
	StatsKey      = "stats"
	DeviceInfoKey = "device_info"
)

type State struct {
	context.Context
	DB *bbolt.DB
}

func NewState(ctx context.Context, cfg *config.Config) (*State, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath()), 0755); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(cfg.DBPath(), 0600, nil)
	if err != nil {
		return nil, err
	}
	// create buckets for all configured devices
	if err = db.Update(func(tx *bbolt.Tx) error {
		for _, device := range cfg.Devices {
			_, err = tx.CreateBucketIfNotExists([]byte(bucketName(device.Name)))
			if err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return &State{
		Context: ctx,
		DB:      db,
	}, nil
}

func (s *State) Close() {
	s.DB.Close()
}

func bucketName(deviceName string) string {
	return fmt.Sprintf("%s%s", BucketPrefix, deviceName)
}

func (s *State) set(deviceName, key string, value interface{}) error {
	return s.DB.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName(deviceName)))
		if b == nil {
			return ErrBucketNotFound{Device: deviceName}
		}
		data, err := yaml.Marshal(value)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), data)
	})
}

func (s *State) get(deviceName, key string, value interface{}) error {
	return s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName(deviceName)))
		if b == nil {
			return ErrBucketNotFound{Device: deviceName}
		}
		data := b.Get([]byte(key))
		if data == nil {
			return ErrStateNotFound{Device: deviceName, Key: key}
		}
		return yaml.Unmarshal(data, value)
	})
}

func (s *State) SetLastSample(sample *Sample) error {
	log.Debug("Setting last sample: device: %s sequencer: 0x%02x", sample.Device, sample.Sequencer)
	return s.set(sample.Device, LastSampleKey, sample)
}

func (s *State) GetLastSample(deviceName string) (*Sample, error) {
	sample := &Sample{}
	if err := s.get(deviceName, LastSampleKey, sample); err != nil {
		return nil, err
	}
	return sample, nil
}

func (s *State) SetStats(deviceName string, stats *Stats) error {
	return s.set(deviceName, StatsKey, stats)
}

func (s *State) GetStats(deviceName string) (*Stats, error) {
	stats := &Stats{}
	if err := s.get(deviceName, StatsKey, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *State) SetDeviceInfo(deviceName string, info *DeviceInfo) error {
	log.Debug("Setting device info: device: %s serial: 0x%08x", deviceName, info.SerialID)
	return s.set(deviceName, DeviceInfoKey, info)
}

func (s *State) GetDeviceInfo(deviceName string) (*DeviceInfo, error) {
	info := &DeviceInfo{}
	if err := s.get(deviceName, DeviceInfoKey, info); err != nil {
		return nil, err
	}
	return info, nil
}
