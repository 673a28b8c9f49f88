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

package command

import (
	"errors"
	"fmt"

	"github.com/imroc/req"

	"jinr.ru/greenlab/go-imu/pkg/config"
	"jinr.ru/greenlab/go-imu/pkg/srv/stream"
)

// ApiClient talks to the API of a running stream server
type ApiClient struct {
	*config.Config
	ApiPrefix string
}

func NewApiClient(cfg *config.Config) *ApiClient {
	return &ApiClient{
		Config:    cfg,
		ApiPrefix: fmt.Sprintf("http://%s:%d/api", cfg.IP, stream.ApiPort),
	}
}

func (c *ApiClient) sampleUrl(device string) string {
	return fmt.Sprintf("%s/sample/%s", c.ApiPrefix, device)
}

func (c *ApiClient) statsUrl(device string) string {
	return fmt.Sprintf("%s/stats/%s", c.ApiPrefix, device)
}

func (c *ApiClient) infoUrl(device string) string {
	return fmt.Sprintf("%s/info/%s", c.ApiPrefix, device)
}

// GetSample fetches the most recent decoded sample of a device
func (c *ApiClient) GetSample(device string) (*stream.Sample, error) {
	r, err := req.Get(c.sampleUrl(device))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	sample := &stream.Sample{}
	if err = r.ToJSON(sample); err != nil {
		return nil, err
	}
	return sample, nil
}

// GetStats fetches the packet counters of a device
func (c *ApiClient) GetStats(device string) (*stream.Stats, error) {
	r, err := req.Get(c.statsUrl(device))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	stats := &stream.Stats{}
	if err = r.ToJSON(stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// GetInfo fetches the assembled identity record of a device
func (c *ApiClient) GetInfo(device string) (*stream.DeviceInfo, error) {
	r, err := req.Get(c.infoUrl(device))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	info := &stream.DeviceInfo{}
	if err = r.ToJSON(info); err != nil {
		return nil, err
	}
	return info, nil
}

// Persist asks the server to start writing raw packets to files
func (c *ApiClient) Persist(dir, filePrefix string) error {
	persist := &stream.Persist{
		Dir:        dir,
		FilePrefix: filePrefix,
	}
	r, err := req.Post(fmt.Sprintf("%s/persist", c.ApiPrefix), req.BodyJSON(persist))
	if err != nil {
		return err
	}
	if r.Response().StatusCode != 200 {
		return errors.New(r.Response().Status)
	}
	return nil
}

// Flush asks the server to close all packet files
func (c *ApiClient) Flush() error {
	r, err := req.Get(fmt.Sprintf("%s/flush", c.ApiPrefix))
	if err != nil {
		return err
	}
	if r.Response().StatusCode != 200 {
		return errors.New(r.Response().Status)
	}
	return nil
}
