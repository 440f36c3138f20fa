package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cirocosta/offmychest/internal/api"
)

func newOpenAPICommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "openapi-gen",
		Short: "Generate OpenAPI documentation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := api.NewRouter(api.NoopTodoService{}, api.NoopThoughtService{}, api.Options{})
			if err != nil {
				return err
			}

			data, err := r.OpenAPIJSON()
			if err != nil {
				return err
			}

			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write openapi spec to file '%s': %w", output, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "OpenAPI spec generated at %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "openapi.json", "output file path")

	return cmd
}
