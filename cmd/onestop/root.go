package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/HarishP23/OneStop/internal/client"
)

var (
	cfgPath string
	baseURL string
)

var rootCmd = &cobra.Command{
	Use:           "onestop",
	Short:         "OneStop job board client",
	Long:          "Sign up, log in, browse jobs and track your job applications from the terminal.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: ONESTOP_CONFIG env var or ~/.onestop.yaml)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL including /api/v1 (overrides the config file)")
}

// session loads the client config and builds an API client from it
func session() (*client.Config, *client.Client, string, error) {
	path := cfgPath
	if path == "" {
		path = client.DefaultConfigPath()
	}
	cfg, err := client.LoadConfig(path)
	if err != nil {
		return nil, nil, "", err
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return cfg, client.New(cfg.BaseURL, cfg.Token), path, nil
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 20*time.Second)
}
