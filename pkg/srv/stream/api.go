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
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"jinr.ru/greenlab/go-imu/pkg/config"
	"jinr.ru/greenlab/go-imu/pkg/log"
)

const (
	ApiPort = 8003
)

// Persist is the request body of the persist endpoint
type Persist struct {
	Dir        string
	FilePrefix string
}

type ApiServer struct {
	context.Context
	*config.Config
	*mux.Router
	imu *ImuServer
}

func NewApiServer(ctx context.Context, cfg *config.Config, imu *ImuServer) (*ApiServer, error) {
	log.Info("Initializing API server with address: %s port: %d", cfg.IP, ApiPort)

	s := &ApiServer{
		Context: ctx,
		Config:  cfg,
		imu:     imu,
	}
	return s, nil
}

func (s *ApiServer) Run() error {
	log.Debug("Starting API server: address: %s port: %d", s.Config.IP, ApiPort)
	s.configureRouter()
	httpServer := &http.Server{
		Handler: handlers.LoggingHandler(os.Stderr, s.Router),
		Addr:    fmt.Sprintf("%s:%d", s.Config.IP, ApiPort),
	}
	return httpServer.ListenAndServe()
}

func (s *ApiServer) configureRouter() {
	s.Router = mux.NewRouter()
	subRouter := s.Router.PathPrefix("/api").Subrouter()
	subRouter.HandleFunc("/sample/{device}", s.handleSample()).Methods("GET")
	subRouter.HandleFunc("/stats/{device}", s.handleStats()).Methods("GET")
	subRouter.HandleFunc("/info/{device}", s.handleInfo()).Methods("GET")
	subRouter.HandleFunc("/persist", s.handlePersist()).Methods("POST")
	subRouter.HandleFunc("/flush", s.handleFlush()).Methods("GET")
}

func (s *ApiServer) device(w http.ResponseWriter, r *http.Request) string {
	vars := mux.Vars(r)
	dev := s.Config.GetDeviceByName(vars["device"])
	if dev == nil {
		http.Error(w, fmt.Sprintf("Device %s not found", vars["device"]), http.StatusNotFound)
		return ""
	}
	return dev.Name
}

func writeJson(w http.ResponseWriter, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(value); err != nil {
		log.Error("Error while encoding API response: %s", err)
	}
}

func (s *ApiServer) handleSample() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deviceName := s.device(w, r)
		if deviceName == "" {
			return
		}
		sample, err := s.imu.state.GetLastSample(deviceName)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		writeJson(w, sample)
	}
}

func (s *ApiServer) handleStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deviceName := s.device(w, r)
		if deviceName == "" {
			return
		}
		stats, err := s.imu.state.GetStats(deviceName)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		writeJson(w, stats)
	}
}

func (s *ApiServer) handleInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deviceName := s.device(w, r)
		if deviceName == "" {
			return
		}
		info, err := s.imu.state.GetDeviceInfo(deviceName)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		writeJson(w, info)
	}
}

func (s *ApiServer) handlePersist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		persist := &Persist{}
		err := json.NewDecoder(r.Body).Decode(persist)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		log.Debug("Handling persist request: dir: %s filePrefix: %s", persist.Dir, persist.FilePrefix)

		if persist.Dir == "" {
			persist.Dir = s.Config.DataDir
		}
		err = s.imu.Persist(persist.Dir, persist.FilePrefix)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
	}
}

func (s *ApiServer) handleFlush() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Handling flush request")
		s.imu.Flush()
	}
}
