package main

import (
	"fmt"
	"strconv"

	"github.com/gingerrexayers/htree-go/internal/htree/commands"
	"github.com/spf13/cobra"
)

// NewHashCommand creates the 'hash' command, which fingerprints one file.
func NewHashCommand(load loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash <filename> <num_threads>",
		Short: "Compute the hash tree fingerprint of a file.",
		Long: `Splits the file into one chunk per thread, hashes the chunks in
parallel and folds the results along a binary tree into a single 32-bit
fingerprint. The same file and thread count always give the same value;
different thread counts give different values.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			numThread, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid thread count %q: %w", args[1], err)
			}

			s, err := load(cmd)
			if err != nil {
				return err
			}

			// Errors past this point are not usage errors.
			cmd.SilenceUsage = true
			if err := commands.Hash(cmd.Context(), args[0], numThread, s.hashOptions()); err != nil {
				return err
			}
			return s.finish(cmd)
		},
	}
	return cmd
}
