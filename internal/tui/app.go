// Package tui implements the interactive filter page: a search box with
// category filters, the refinement stage and one expandable section per
// view, all re-evaluated on every keypress.
package tui

import (
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/fruitfilter/internal/logging"
	"github.com/Iron-Ham/fruitfilter/internal/tui/styles"
)

// App runs the filter page as a full-screen Bubbletea program.
type App struct {
	program *tea.Program
	model   Model
	logger  *logging.Logger
}

// New builds the page model from opts.
func New(opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger()
	}
	return &App{
		model:  NewModel(opts),
		logger: opts.Logger,
	}
}

// Run blocks until the user quits or the process is signalled.
func (a *App) Run() error {
	a.program = tea.NewProgram(a.model, tea.WithAltScreen())

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signals)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case sig := <-signals:
			a.logger.Info("quitting on signal", "signal", sig.String())
			a.program.Quit()
		case <-done:
		}
	}()

	a.watchTheme()

	_, err := a.program.Run()
	return err
}

// watchTheme re-applies tui.theme whenever the config file changes. The
// change is delivered as a message so the theme is swapped on the program's
// goroutine.
func (a *App) watchTheme() {
	if viper.ConfigFileUsed() == "" {
		return
	}

	current := viper.GetString("tui.theme")
	viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		theme := viper.GetString("tui.theme")
		if theme == current {
			return
		}
		if !styles.IsValidTheme(theme) {
			a.logger.Warn("ignoring unknown theme from config", "theme", theme)
			return
		}
		current = theme
		a.program.Send(themeChangedMsg{theme: theme})
	})
	viper.WatchConfig()
}
