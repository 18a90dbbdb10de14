package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/oyakata/blockpack"
)

var packLevel int

// packCmd represents the pack command.
var packCmd = &cobra.Command{
	Use:   "pack <input> <output>",
	Short: "Compress a file into a blockpack frame",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		level := defaultLevel(cmd, "level", packLevel)

		in, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer in.Close()

		out, err := os.Create(args[1])
		if err != nil {
			return err
		}
		defer out.Close()

		fw, err := blockpack.NewFrameWriter(out, level)
		if err != nil {
			return err
		}
		n, err := io.Copy(fw, in)
		if err != nil {
			return fmt.Errorf("pack %s: %w", args[0], err)
		}
		if err := fw.Close(); err != nil {
			return fmt.Errorf("pack %s: %w", args[0], err)
		}

		log.Info().
			Str("output", args[1]).
			Int64("raw", n).
			Int64("frame", fw.Count()).
			Int("level", int(level)).
			Msg("packed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(packCmd)
	packCmd.Flags().IntVarP(&packLevel, "level", "l", int(blockpack.LevelFast),
		"compression level (1 fast, 2-9 high compression)")
}
