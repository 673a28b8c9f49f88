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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jinr.ru/greenlab/go-imu/pkg/config"
)

func testApi(t *testing.T) (*ImuServer, *httptest.Server) {
	s := testServer(t)
	s.api.configureRouter()
	ts := httptest.NewServer(s.api.Router)
	t.Cleanup(ts.Close)
	return s, ts
}

func TestApiStats(t *testing.T) {
	s, ts := testApi(t)

	stats := &Stats{Received: 3, Ok: 2, BadCrc: 1}
	require.NoError(t, s.state.SetStats(config.DefaultDeviceName, stats))

	resp, err := http.Get(ts.URL + "/api/stats/" + config.DefaultDeviceName)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := &Stats{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(got))
	assert.Equal(t, stats, got)
}

func TestApiSampleNotFoundBeforeFirstPacket(t *testing.T) {
	_, ts := testApi(t)

	resp, err := http.Get(ts.URL + "/api/sample/" + config.DefaultDeviceName)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestApiUnknownDevice(t *testing.T) {
	_, ts := testApi(t)

	resp, err := http.Get(ts.URL + "/api/stats/nosuch")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
