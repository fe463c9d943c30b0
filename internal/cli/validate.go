package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/c4render/pkg/c4"
	"github.com/matzehuels/c4render/pkg/errors"
	c4io "github.com/matzehuels/c4render/pkg/io"
	"github.com/matzehuels/c4render/pkg/render"
)

// validateCommand creates the validate command. Documents that decode and
// can be rendered pass; dangling relationships are reported as warnings, or
// as a failure with --strict.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		level  string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check diagram documents without rendering them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := parseLevelFlag(level)
			if err != nil {
				return err
			}
			failed := 0
			for _, path := range args {
				if err := validateFile(cmd.Context(), path, lvl, strict); err != nil {
					printError("%s", errors.UserMessage(err))
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents failed validation", failed, len(args))
			}
			if len(args) == 1 {
				fmt.Println()
				printNextStep("Render it with", appName+" render "+args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&level, "level", "l", levelAuto, "diagram level: context, container, component, code, c1-c4 or auto")
	cmd.Flags().BoolVar(&strict, "strict", false, "treat dangling relationships as errors")

	return cmd
}

// validateFile reports on one document. The returned error is nil for a
// valid document.
func validateFile(ctx context.Context, path string, level c4.Level, strict bool) error {
	logger := loggerFromContext(ctx)

	d, err := c4io.Import(path, level)
	if err != nil {
		return err
	}
	if _, err := render.Validate(d, string(render.FormatDOT), d.Level().DefaultFilename()); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	scene, err := render.BuildScene(d)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("validated", "path", path, "level", d.Level(), "connectors", len(scene.Connectors))

	printSuccess("%s %s", path, StyleDim.Render("("+scene.Heading()+")"))
	fmt.Println("  " + statsLine(d.EntityCount(), d.EdgeCount(), len(scene.Skipped), ""))
	printSkipped(scene.Skipped)

	if strict && len(scene.Skipped) > 0 {
		return fmt.Errorf("%s: %w", path, errors.New(errors.ErrCodeInvalidInput, "%d dangling relationships", len(scene.Skipped)))
	}
	return nil
}
