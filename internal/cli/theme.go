package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bassista/go_folio/internal/theme"
	"github.com/spf13/cobra"
)

func newThemeCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Read or change the stored theme preference",
	}
	cmd.PersistentFlags().StringVar(&file, "file", "", "preference file (default: theme.file_path, then the user config dir)")

	open := func() (*theme.Store, error) {
		path, err := themeFile(file)
		if err != nil {
			return nil, err
		}
		backend, err := theme.NewFileBackend(path)
		if err != nil {
			return nil, err
		}
		return theme.NewStore(backend), nil
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print the current theme",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := open()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), store.Read())
				return nil
			},
		},
		&cobra.Command{
			Use:       "set <light|dark>",
			Short:     "Store a theme",
			Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
			ValidArgs: []string{theme.Light.String(), theme.Dark.String()},
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := open()
				if err != nil {
					return err
				}
				if err := store.Write(theme.Parse(args[0])); err != nil {
					return fmt.Errorf("save theme: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), store.Read())
				return nil
			},
		},
		&cobra.Command{
			Use:   "toggle",
			Short: "Switch between light and dark",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := open()
				if err != nil {
					return err
				}
				next, err := store.Toggle()
				if err != nil {
					return fmt.Errorf("save theme: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), next)
				return nil
			},
		},
	)
	return cmd
}

func themeFile(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	if cfg.Theme.FilePath != "" {
		return cfg.Theme.FilePath, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "go_folio", "theme.json"), nil
}
