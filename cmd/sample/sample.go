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

package sample

import (
	"fmt"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"jinr.ru/greenlab/go-imu/pkg/command"
	"jinr.ru/greenlab/go-imu/pkg/config"
)

const (
	DirOptionName    = "dir"
	PrefixOptionName = "prefix"
)

// NewCommand creates a cobra command object for querying a running
// stream server
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Query a running stream server",
	}
	cmd.AddCommand(newGetCommand())
	cmd.AddCommand(newStatsCommand())
	cmd.AddCommand(newInfoCommand())
	cmd.AddCommand(newPersistCommand())
	cmd.AddCommand(newFlushCommand())
	return cmd
}

func printYaml(cmd *cobra.Command, value interface{}) error {
	data, err := yaml.Marshal(value)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func newGetCommand() *cobra.Command {
	cfg := config.NewDefaultConfig()
	cfg.Load()
	return &cobra.Command{
		Use:   "get device",
		Short: "Get the most recent decoded sample of a device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			sample, err := apiClient.GetSample(args[0])
			if err != nil {
				return err
			}
			return printYaml(cmd, sample)
		},
	}
}

func newStatsCommand() *cobra.Command {
	cfg := config.NewDefaultConfig()
	cfg.Load()
	return &cobra.Command{
		Use:   "stats device",
		Short: "Get the packet counters of a device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			stats, err := apiClient.GetStats(args[0])
			if err != nil {
				return err
			}
			return printYaml(cmd, stats)
		},
	}
}

func newInfoCommand() *cobra.Command {
	cfg := config.NewDefaultConfig()
	cfg.Load()
	return &cobra.Command{
		Use:   "info device",
		Short: "Get the identity record of a device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			info, err := apiClient.GetInfo(args[0])
			if err != nil {
				return err
			}
			return printYaml(cmd, info)
		},
	}
}

func newPersistCommand() *cobra.Command {
	var dir, prefix string
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "persist",
		Short: "Start writing raw packets to files",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			return apiClient.Persist(dir, prefix)
		},
	}
	cmd.Flags().StringVar(&dir, DirOptionName, "", "Directory to write packet files to. Defaults to the configured data dir")
	cmd.Flags().StringVar(&prefix, PrefixOptionName, "imu", "Packet file name prefix")
	return cmd
}

func newFlushCommand() *cobra.Command {
	cfg := config.NewDefaultConfig()
	cfg.Load()
	return &cobra.Command{
		Use:   "flush",
		Short: "Close all packet files",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			return apiClient.Flush()
		},
	}
}
