package keysweep

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/keysweep/keysweep/pkg/core"
)

func init() {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "List built-in detection patterns",
		Run: func(_ *cobra.Command, _ []string) {
			for _, name := range core.PatternNames() {
				fmt.Fprintln(os.Stdout, name)
			}
		},
	}
	rootCmd.AddCommand(cmd)
}
