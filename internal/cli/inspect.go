package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	c4io "github.com/matzehuels/c4render/pkg/io"
	"github.com/matzehuels/c4render/pkg/render"
)

// inspectCommand creates the inspect command. On a terminal it opens an
// interactive browser; otherwise, or with --plain, it prints every table.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		level string
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Browse a diagram's entities and relationships",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := parseLevelFlag(level)
			if err != nil {
				return err
			}
			d, err := c4io.Import(args[0], lvl)
			if err != nil {
				return err
			}
			scene, err := render.BuildScene(d)
			if err != nil {
				return err
			}
			model := NewInspectModel(scene)

			if plain || !term.IsTerminal(os.Stdout.Fd()) {
				fmt.Fprint(cmd.OutOrStdout(), model.PlainView())
				return nil
			}
			_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&level, "level", "l", levelAuto, "diagram level: context, container, component, code, c1-c4 or auto")
	cmd.Flags().BoolVar(&plain, "plain", false, "print tables instead of opening the interactive view")

	return cmd
}
