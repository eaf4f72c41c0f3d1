// Package main provides the entry point for the Shape Transformer application.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"shape-transformer/internal/app"
	"shape-transformer/internal/builder"
	"shape-transformer/internal/version"
	"shape-transformer/ui/mainwindow"
	"shape-transformer/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
)

const (
	appTitle = "Shape Transformer"
	appID    = "io.github.shape-transformer"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.String())

	if os.Getenv("SHAPE_TRANSFORMER_DEBUG") != "" {
		builder.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(&app.EditorTheme{})

	appState := app.NewState()
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, appState, appPrefs)
	win.SetTitle(appTitle)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupHotReload(ctx, win)

	win.ShowAndRun()
	win.SavePreferences()
}

// setupHotReload offers a restart when the binary is rebuilt.
func setupHotReload(ctx context.Context, win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	log.Printf("Hot reload: watching %s (modified %s)",
		reloader.ExecPath(), reloader.Baseline().Format("15:04:05"))

	reloader.OnTick(win.SavePreferences)

	// Runs on the watcher goroutine. Fyne 2.5 accepts dialog calls from any
	// goroutine and marshals them onto the UI thread itself.
	reloader.OnNewBinary(func() {
		log.Println("Hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if !restart {
					reloader.ResetBaseline()
					go reloader.Run(ctx)
					return
				}
				log.Println("Hot reload: saving preferences before restart...")
				win.SavePreferences()
				if err := reloader.Restart(); err != nil {
					log.Printf("Hot reload: restart failed: %v", err)
				}
			}, win.Window)
	})

	go reloader.Run(ctx)
}
