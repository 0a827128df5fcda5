package main

import (
	"errors"
	"fmt"
	"path/filepath"

	neutralobj "github.com/neutralobj/go-neutralobj"
	"github.com/neutralobj/go-neutralobj/object"
	"github.com/spf13/cobra"
)

type runFlags struct {
	inline     string
	params     map[string]string
	schemaPath string
	dir        string
	dataOnly   bool
}

func newRunCmd(cfg *cliConfig) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run [descriptor]",
		Short: "Invoke the object described by a descriptor file or --inline JSON",
		Long: `Run reads an object descriptor (JSON, or YAML for .yaml/.yml files), calls the object
and prints the result.

Example:
  neutralobj run obj.json
  neutralobj run obj.yaml --param param1=hello --schema schema.json
  neutralobj run --inline '{"file": "#/script.star"}' --dir ./objects
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runObject(cmd, cfg, flags, args)
		},
	}

	cmd.Flags().StringVar(&flags.inline, "inline", "", "Inline JSON descriptor")
	cmd.Flags().StringToStringVar(&flags.params, "param", nil, "Per-call param as key=value (repeatable)")
	cmd.Flags().StringVar(&flags.schemaPath, "schema", "", "Schema file (JSON or YAML) for objects that ask for it")
	cmd.Flags().StringVar(&flags.dir, "dir", "", "Current dir for '#' and relative paths (default: the descriptor's dir)")
	cmd.Flags().BoolVar(&flags.dataOnly, "data-only", false, "Print only the returned data")
	return cmd
}

func runObject(cmd *cobra.Command, cfg *cliConfig, flags *runFlags, args []string) error {
	ctx := cmd.Context()

	obj, descriptorDir, err := readDescriptor(flags, args)
	if err != nil {
		return err
	}

	opts := []neutralobj.Option{neutralobj.WithLogHandler(cfg.handler)}
	dir := flags.dir
	if dir == "" {
		dir = descriptorDir
	}
	if dir != "" {
		opts = append(opts, neutralobj.WithCurrentDir(dir))
	}
	if flags.schemaPath != "" {
		schema, err := object.LoadSchema(flags.schemaPath)
		if err != nil {
			return err
		}
		opts = append(opts, neutralobj.WithSchema(schema))
	}

	host, err := neutralobj.NewHost(opts...)
	if err != nil {
		return err
	}

	ev, err := host.Load(ctx, obj)
	if err != nil {
		return err
	}
	defer func() {
		if err := ev.Close(ctx); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err)
		}
	}()

	if len(flags.params) > 0 {
		params := make(map[string]any, len(flags.params))
		for k, v := range flags.params {
			params[k] = v
		}
		if ctx, err = ev.PrepareContext(ctx, params); err != nil {
			return err
		}
	}

	res, err := ev.Eval(ctx)
	if err != nil {
		return err
	}
	if flags.dataOnly {
		return writeJSON(cmd.OutOrStdout(), res.Data)
	}
	return writeJSON(cmd.OutOrStdout(), res)
}

// readDescriptor returns the descriptor and the directory it was read from ("" for inline).
func readDescriptor(flags *runFlags, args []string) (*object.Object, string, error) {
	switch {
	case flags.inline != "" && len(args) > 0:
		return nil, "", errors.New("give either a descriptor file or --inline, not both")
	case flags.inline != "":
		obj, err := object.Parse([]byte(flags.inline))
		return obj, "", err
	case len(args) == 1:
		path, err := filepath.Abs(args[0])
		if err != nil {
			return nil, "", err
		}
		obj, err := object.Load(path)
		return obj, filepath.Dir(path), err
	default:
		return nil, "", errors.New("a descriptor file or --inline is required")
	}
}
