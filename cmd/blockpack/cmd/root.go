package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/oyakata/blockpack"
	"github.com/oyakata/blockpack/conf"
)

var (
	log      zerolog.Logger
	verbose  bool
	confDir  string
	settings *conf.Settings
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "blockpack",
	Short: "Chunked LZ4 frame compression tool",
	Long: `blockpack compresses files into a stream of independently
compressed, length-prefixed 1 MiB records and reconstructs them.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()

		if confDir != "" {
			settings = conf.New(confDir)
		}
	},
}

// Execute adds all child commands to the root command and runs it. Called
// once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&confDir, "conf", "c", "", "settings directory (optional)")
}

// defaultLevel resolves the compression level: an explicit flag wins, then
// the settings file, then LevelFast.
func defaultLevel(cmd *cobra.Command, flag string, value int) blockpack.Level {
	if cmd.Flags().Changed(flag) {
		return blockpack.Level(value)
	}
	if settings != nil {
		return blockpack.Level(settings.Int("blockpack", "level", int(blockpack.LevelFast)))
	}
	return blockpack.Level(value)
}
