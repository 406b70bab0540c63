package main

import (
	"log"

	"github.com/G-Node/sieve/sieve"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var configPath string
	var port uint16

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web service",
		Long: `Run the web service until interrupted.  Settings are read from the
JSON file given with --config; anything not set there uses the defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := sieve.DefaultConfig()
			if configPath != "" {
				var err error
				if config, err = sieve.LoadConfig(configPath); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("port") {
				config.Port = port
			}

			srv, err := sieve.NewService(config)
			if err != nil {
				return err
			}
			if err := srv.Start(); err != nil {
				return err
			}
			defer srv.Stop()
			srv.WaitForInterrupt()
			log.Print("Interrupted")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "JSON configuration file")
	cmd.Flags().Uint16VarP(&port, "port", "p", 3000, "Port to listen on (overrides config)")
	return cmd
}
