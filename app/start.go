package app

import (
	"github.com/spf13/cobra"

	"github.com/go-rbac-admin/go-rbac-admin/internal/config"
	"github.com/go-rbac-admin/go-rbac-admin/internal/daemon"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")
	startCmd.Flags().StringVar(&configPath, "config", "", "Path to the configuration directory")

	rootCmd.AddCommand(startCmd)
}

var (
	configPath string // Path to the configuration directory

	cfg     config.Config
	err     error
	devMode bool

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the Go-RBAC-Admin web service",
		PreRun: func(_ *cobra.Command, _ []string) {
			if cfg, err = config.ReadConfig(configPath); err != nil {
				panic(err)
			}

			if devMode {
				cfg.DevMode = true
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			d, err := daemon.New(&cfg)
			if err != nil {
				return err
			}

			return d.Start()
		},
	}
)
