// Package admin holds operator commands that poke at the data files
// directly, without going through the http server.
package admin

import (
	"encoding/json"
	"fmt"

	"motohub/config"
	"motohub/store"

	"github.com/spf13/cobra"
)

var (
	configPath string
	dataDir    string
	backend    string
)

var CMD = &cobra.Command{
	Use:   "dump [collection]",
	Short: "print a collection as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}
		if backend != "" {
			cfg.Backend = backend
		}

		db, err := store.New(cfg.Backend, cfg.DataDir, cfg.AtomicWrites)
		if err != nil {
			return err
		}
		defer db.Close()

		records, err := db.Load(args[0])
		if err != nil {
			return err
		}

		b, err := json.MarshalIndent(records, "", "    ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	},
}

func init() {
	CMD.Flags().StringVar(&configPath, "config", "", "Path to YAML config file")
	CMD.Flags().StringVar(&dataDir, "data-dir", "", "Collection data directory (overrides config)")
	CMD.Flags().StringVar(&backend, "backend", "", "Store backend (overrides config)")
}
