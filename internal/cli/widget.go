package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bassista/go_folio/internal/app"
	"github.com/bassista/go_folio/internal/locale"
	"github.com/spf13/cobra"
)

func newWidgetCmd() *cobra.Command {
	var (
		once  bool
		limit int
	)

	cmd := &cobra.Command{
		Use:   "widget",
		Short: "Print the location, local time and weather line",
		Long: `Resolves the location pill the way the site does: host timezone first, then
IP geolocation, then the current temperature. Without --once the line is
reprinted on every change until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if once {
				snap := app.NewResolver(cfg.Locale).ResolveOnce(ctx)
				fmt.Fprintln(cmd.OutOrStdout(), locale.NewClock(cfg.Locale.DisplayLanguage, nil).Render(snap))
				return nil
			}
			return streamWidget(ctx, cmd, app.NewWidget(cfg.Locale), limit)
		},
	}
	cmd.Flags().BoolVar(&once, "once", false, "resolve all tiers, print one line and exit")
	cmd.Flags().IntVar(&limit, "limit", 0, "exit after this many lines (0 means run until interrupted)")
	return cmd
}

func streamWidget(ctx context.Context, cmd *cobra.Command, widget *locale.Widget, limit int) error {
	defer widget.Close()
	if err := widget.Mount(ctx); err != nil {
		return err
	}

	_, updates, unsubscribe := widget.Subscribe()
	defer unsubscribe()

	printed := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case display, ok := <-updates:
			if !ok {
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), display)
			printed++
			if limit > 0 && printed >= limit {
				return nil
			}
		}
	}
}
