package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the calscribe application
var rootCmd = &cobra.Command{
	Use:   "calscribe",
	Short: "Extracts calendar events from conversation transcripts",
	Long: `calscribe turns conversation transcripts into Google Calendar events.

It runs an LLM extraction over the transcript, validates the proposed
events and reconciles them with the existing calendar: creating, updating
or deleting events as the conversation requires.

It can run as:
  - A standalone CLI tool (extract, benchmark, verify)
  - An MCP (Model Context Protocol) server for AI assistants (serve)`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "calscribe version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "calscribe version %s\n", version)
		},
	}
}

func init() {
	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newBenchmarkCmd())
	rootCmd.AddCommand(newVerifyCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
