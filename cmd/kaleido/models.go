package main

import (
	"github.com/spf13/cobra"

	"github.com/kaleido-ai/kaleido/internal/render"
)

func modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the model catalog and provider credential status",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}

			out := render.Stdout()
			out.Credentials(a.credentials())
			out.Catalog(a.compare.Entries())
			return nil
		},
	}
}
