// Package main implements graphwirectl, a small command-line tool for
// exercising the graphwire engine outside of a test: round-tripping a
// sample JSON-shaped value, inspecting the header tree a value
// produces, and pushing/pulling a value through the Redis demo
// transport.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "graphwirectl",
	Short: "inspect and exercise the graphwire object graph serializer",
	Long: fmt.Sprintf(`graphwirectl (v%s)

A command-line tool for exercising graphwire's serialization engine:
round-trip a sample value, inspect the header tree it produces, or
push/pull a value through the Redis demo transport.`, version),
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the graphwirectl version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("graphwirectl v%s\n", version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("redis-addr", "localhost:6379", wrapString("address of the Redis server used by push/pull"))
	rootCmd.PersistentFlags().String("redis-key-prefix", "graphwire::", wrapString("key prefix applied to every Redis key this tool touches"))

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(roundtripCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(pullCmd)
}

func initConfig() {
	viper.SetEnvPrefix("graphwire")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func bindFlags(cmd *cobra.Command, args []string) error {
	return viper.BindPFlags(cmd.Flags())
}

// wrapString is a minimal help-text wrapper at a fixed column width,
// matching the line-wrapped flag descriptions the pack's CLI convention
// uses for anything printed in a narrow terminal.
func wrapString(text string) string {
	const width = 60
	var lines []string
	var line strings.Builder
	lineLen := 0
	for _, word := range strings.Fields(text) {
		if lineLen > 0 && lineLen+1+len(word) > width {
			lines = append(lines, line.String())
			line.Reset()
			lineLen = 0
		}
		if lineLen > 0 {
			line.WriteString(" ")
			lineLen++
		}
		line.WriteString(word)
		lineLen += len(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
