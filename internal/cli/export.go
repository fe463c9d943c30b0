package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/c4render/pkg/errors"
	c4io "github.com/matzehuels/c4render/pkg/io"
)

// exportCommand creates the export command, which re-encodes a document in
// normalized form: defaults filled, empty collections present.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		level    string
		output   string
		encoding string
	)

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Normalize a diagram document or convert it between JSON and YAML",
		Example: `  c4render export banking.json -o banking.yaml
  c4render export api.yaml --encoding json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), args[0], level, output, encoding)
		},
	}

	cmd.Flags().StringVarP(&level, "level", "l", levelAuto, "diagram level: context, container, component, code, c1-c4 or auto")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file; the extension selects the encoding (default stdout)")
	cmd.Flags().StringVarP(&encoding, "encoding", "e", "", "encoding for stdout: json or yaml (default: same as input)")

	return cmd
}

func runExport(ctx context.Context, path, levelFlag, output, encoding string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	level, err := parseLevelFlag(levelFlag)
	if err != nil {
		return err
	}
	d, err := c4io.Import(path, level)
	if err != nil {
		return err
	}

	if output != "" {
		if err := errors.ValidatePath("output", output); err != nil {
			return err
		}
		if err := c4io.Export(d, output); err != nil {
			return err
		}
		prog.done("exported", "level", d.Level(), "path", output)
		printSuccess("Exported %s", d.Level().Heading())
		printFile(output)
		return nil
	}

	enc, err := stdoutEncoding(encoding, path)
	if err != nil {
		return err
	}
	return c4io.Write(d, os.Stdout, enc)
}

// stdoutEncoding resolves the --encoding flag, defaulting to the input's.
func stdoutEncoding(flag, inputPath string) (c4io.Encoding, error) {
	switch flag {
	case "":
		return c4io.EncodingFromPath(inputPath), nil
	case string(c4io.EncodingJSON):
		return c4io.EncodingJSON, nil
	case string(c4io.EncodingYAML), "yml":
		return c4io.EncodingYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported encoding %q (want json or yaml)", flag)
}
