package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

// stopCmd represents the stop command
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stops the treasury service",
	Long:  `Stops the service which was started previously by 'start' command, using its pid file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("stop called.")

		content, err := os.ReadFile(pidFile)
		if err != nil {
			return fmt.Errorf("reading pid file: %w", err)
		}
		pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
		if err != nil {
			return fmt.Errorf("invalid pid file %v: %w", pidFile, err)
		}

		// the running 'start' command stops its jobs on SIGTERM
		return syscall.Kill(pid, syscall.SIGTERM)
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)

	stopCmd.Flags().StringVar(&pidFile, "pid-file", "treasury.pid", "file the process id was written to")
}
