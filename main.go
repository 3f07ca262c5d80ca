package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/calmkids/calmkids/internal/api"
	"github.com/calmkids/calmkids/internal/auth"
	"github.com/calmkids/calmkids/internal/config"
	"github.com/calmkids/calmkids/internal/download"
	"github.com/calmkids/calmkids/internal/logging"
	"github.com/calmkids/calmkids/internal/platform"
	"github.com/calmkids/calmkids/internal/render"
	"github.com/calmkids/calmkids/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "app.calmkids.client"
	AppName = "Calm Kids"
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(env.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting", zap.String("version", version))

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCalmTheme())

	settings := config.NewSettings(myApp)
	settings.ApplyEnv(env)

	docsDir := settings.GetDocumentsDirectory()
	if err := platform.CreateDirectoryIfNotExists(docsDir); err != nil {
		logger.Warn("failed to ensure documents dir", zap.String("dir", docsDir), zap.Error(err))
	}

	tokens := auth.NewPreferencesTokenStore(myApp.Preferences())
	if _, ok := tokens.Token(); !ok && env.Token != "" {
		tokens.SetToken(env.Token)
	}
	client := api.NewClient(settings.GetAPIURL(), tokens, logger.Named("api"))
	client.SetUserAgent(fmt.Sprintf("%s/%s", AppID, version))

	sharer := platform.NewSystemSharer(logger)
	downloads := download.NewService(docsDir, sharer, myApp, logger)

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	root := ui.NewRootUI(myWindow, ui.Services{
		API:       client,
		Tokens:    tokens,
		Downloads: downloads,
		Sharer:    sharer,
		Opener:    myApp,
		Series:    platform.NewSeriesExpander(),
		Settings:  settings,
		Platform:  render.CurrentPlatform(),
		Logger:    logger,
	})
	myWindow.SetOnClosed(root.Close)
	root.Start()

	myWindow.ShowAndRun()
}
