package main

import (
	"log/slog"

	"github.com/neutralobj/go-neutralobj/fixture"
	"github.com/neutralobj/go-neutralobj/object"
	"github.com/spf13/cobra"
)

func newFixtureCmd(cfg *cliConfig) *cobra.Command {
	var (
		param1     string
		schemaPath string
	)

	cmd := &cobra.Command{
		Use:   "fixture",
		Short: "Run the built-in fixture object directly",
		Long: `Fixture calls the reference object without a script engine. With --schema it runs the
variant that also reports data.__test-nts from the schema as test_nts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var params fixture.Params
			if cmd.Flags().Changed("param1") {
				params = fixture.Params{fixture.KeyParam1: param1}
			}

			if schemaPath == "" {
				return writeJSON(cmd.OutOrStdout(), fixture.Main(params))
			}

			schema, err := object.LoadSchema(schemaPath)
			if err != nil {
				return err
			}
			slog.New(cfg.handler).DebugContext(cmd.Context(), "fixture schema loaded", "path", schemaPath)
			return writeJSON(cmd.OutOrStdout(), fixture.MainWithSchema(params, schema))
		},
	}

	cmd.Flags().StringVar(&param1, "param1", "", "Value echoed back as param1")
	cmd.Flags().StringVar(&schemaPath, "schema", "", "Schema file (JSON or YAML)")
	return cmd
}
