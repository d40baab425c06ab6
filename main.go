// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "vkcsgo",
	Short: "Inspect Source engine (VBSP) maps",
	Long: `vkcsgo decodes Source engine map files, versions 19 to 21.

It prints element counts and the bsp trees of a map, finds the leaf
around a point and exports the map geometry as Wavefront OBJ.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every decoded lump")
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(leafCmd)
	rootCmd.AddCommand(objCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
