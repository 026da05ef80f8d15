package server

import (
	"github.com/spf13/cobra"
)

var (
	configPath string
	addr       string
	dataDir    string
	uploadsDir string
	backend    string
)

var CMD = &cobra.Command{
	Use:   "server",
	Short: "start the http server",
	Run: func(cmd *cobra.Command, args []string) {
		Main(configPath, addr, dataDir, uploadsDir, backend)
	},
}

func init() {
	CMD.Flags().StringVar(&configPath, "config", "", "Path to YAML config file")
	CMD.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	CMD.Flags().StringVar(&dataDir, "data-dir", "", "Collection data directory (overrides config)")
	CMD.Flags().StringVar(&uploadsDir, "uploads-dir", "", "Image uploads directory (overrides config)")
	CMD.Flags().StringVar(&backend, "backend", "", "Store backend: json, pebble or memory (overrides config)")
}
