package main

import (
	ad "motohub/admin"
	sr "motohub/server"

	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "motohub",
	Short: "motorbike rental back-office service",
}

func init() {
	rootCmd.AddCommand(sr.CMD)
	rootCmd.AddCommand(ad.CMD)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
