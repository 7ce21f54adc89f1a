// Package commands provides the command-line interface for hmem.
package commands

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "hmem",
	Short: "hmem CLI tool can perform common tasks related to working " +
		"with heterogeneous memory buffers.",
	Long: `hmem CLI tool can perform common tasks related to working with ` +
		`heterogeneous memory buffers. Currently, it supports inspecting ` +
		`raw buffer dumps and benchmarking allocations and transfers.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Environment defaults (HMEM_DB, HMEM_MONITOR_PORT) may come from a
	// .env file next to the working directory.
	cobra.OnInitialize(func() {
		_ = godotenv.Load()
	})
}
