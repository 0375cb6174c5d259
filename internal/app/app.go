package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/bassista/go_folio/internal/config"
	"github.com/bassista/go_folio/internal/content"
	"github.com/bassista/go_folio/internal/dashboard"
	"github.com/bassista/go_folio/internal/locale"
	"github.com/bassista/go_folio/internal/logger"
	"github.com/bassista/go_folio/internal/render"
)

// ContentWatcher reloads content into a holder when its source changes.
type ContentWatcher interface {
	StartWatcher(ctx context.Context, holder *content.Holder) error
}

// App is the application container (immutable dependencies + lifecycle context).
// It is not a request context; handlers should still use gin's request context.
type App struct {
	Config   *config.Config
	Repo     ContentWatcher
	Content  *content.Holder
	Widget   *locale.Widget
	Bars     *dashboard.ActivityBars
	Renderer *render.Renderer

	BaseCtx context.Context
	Cancel  context.CancelFunc
}

func New(cfg *config.Config, repo ContentWatcher, holder *content.Holder, widget *locale.Widget, bars *dashboard.ActivityBars, renderer *render.Renderer) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if repo == nil {
		return nil, errors.New("content repository is nil")
	}
	if holder == nil {
		return nil, errors.New("content holder is nil")
	}
	if widget == nil {
		return nil, errors.New("location widget is nil")
	}
	if bars == nil {
		return nil, errors.New("activity bars are nil")
	}
	if renderer == nil {
		return nil, errors.New("renderer is nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		Config:   cfg,
		Repo:     repo,
		Content:  holder,
		Widget:   widget,
		Bars:     bars,
		Renderer: renderer,
		BaseCtx:  ctx,
		Cancel:   cancel,
	}, nil
}

// StartWatchers mounts the widget, starts the activity randomiser and, when
// enabled, the content file watcher. All of them stop on Shutdown.
func (a *App) StartWatchers() error {
	if err := a.Widget.Mount(a.BaseCtx); err != nil {
		return fmt.Errorf("mount location widget: %w", err)
	}
	a.Bars.Start(a.BaseCtx)

	if a.Config.Content.Watch {
		if err := a.Repo.StartWatcher(a.BaseCtx, a.Content); err != nil {
			return fmt.Errorf("start content watcher: %w", err)
		}
	}
	return nil
}

// Shutdown cancels the base context and waits for the owned tasks.
func (a *App) Shutdown() {
	if a == nil || a.Cancel == nil {
		return
	}
	a.Cancel()
	a.Widget.Close()
	a.Bars.Stop()
	logger.WithComponent("app").Debug("background tasks stopped")
}
