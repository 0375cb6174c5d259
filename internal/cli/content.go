package cli

import (
	"fmt"

	"github.com/bassista/go_folio/internal/content"
	"github.com/spf13/cobra"
)

func newContentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Work with resume content files",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check [path]",
		Short: "Load and validate a content file",
		Long:  `Checks a JSON or YAML resume file. Without a path the configured content.file_path is used, and with neither the built-in resume is checked.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				path = cfg.Content.FilePath
			}

			resume, err := content.NewRepository(path).Load()
			if err != nil {
				return err
			}
			source := path
			if source == "" {
				source = "built-in resume"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s (%s, %d experiences, %d skill categories, %d education entries)\n",
				source, resume.Name, len(resume.Experience), len(resume.Skills), len(resume.Education))
			return nil
		},
	})
	return cmd
}
