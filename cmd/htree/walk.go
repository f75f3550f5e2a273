package main

import (
	"github.com/gingerrexayers/htree-go/internal/htree/commands"
	"github.com/spf13/cobra"
)

func NewWalkCommand(load loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "walk [directory]",
		Short: "Fingerprint every file below a directory.",
		Long: `Fingerprints every regular file below the directory, skipping paths
matched by .htreeignore (gitignore syntax) and .git. Each file uses
--threads tree tasks; --workers files are processed at once.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			s, err := load(cmd)
			if err != nil {
				return err
			}

			cmd.SilenceUsage = true
			if _, err := commands.Walk(cmd.Context(), dir, commands.WalkOptions{
				HashOptions: s.hashOptions(),
				Threads:     s.cfg.Threads,
				Workers:     s.cfg.Workers,
			}); err != nil {
				return err
			}
			return s.finish(cmd)
		},
	}
	return cmd
}
