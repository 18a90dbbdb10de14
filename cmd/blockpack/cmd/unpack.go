package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/oyakata/blockpack"
)

// unpackCmd represents the unpack command.
var unpackCmd = &cobra.Command{
	Use:   "unpack <input> <output>",
	Short: "Reconstruct the original file from a blockpack frame",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		fr, err := blockpack.NewFrameReader(in)
		if err != nil {
			return err
		}
		defer fr.Close()

		n, err := io.Copy(out, fr)
		if err != nil {
			return fmt.Errorf("unpack %s: %w", args[0], err)
		}

		log.Info().
			Str("output", args[1]).
			Int64("raw", n).
			Msg("unpacked")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(unpackCmd)
}
