package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"github.com/goliatone/go-users/pkg/types"

	catalog "github.com/goliatone/go-catalog/components/catalog"
	"github.com/goliatone/go-catalog/components/catalog/commands"
	"github.com/goliatone/go-catalog/components/catalog/gorouter"
	"github.com/goliatone/go-catalog/components/catalog/httpapi"
	"github.com/goliatone/go-catalog/components/catalog/queries"
	"github.com/goliatone/go-catalog/pkg/activity"
	"github.com/goliatone/go-catalog/pkg/activity/usersink"
	"github.com/goliatone/go-catalog/pkg/apicatalog"
	catalogpkg "github.com/goliatone/go-catalog/pkg/catalog"
	"github.com/goliatone/go-catalog/pkg/goadmin"
)

type serveCmd struct {
	Config       string        `type:"existingfile" help:"Deployment config YAML; flags fill whatever it leaves unset."`
	Listen       string        `env:"CATALOG_LISTEN" help:"Listen address (default :8080)."`
	APIListen    string        `name:"api-listen" env:"CATALOG_API_LISTEN" help:"Optional net/http listener for the JSON API, SSE and WebSocket streams."`
	Portal       bool          `env:"API_PORTAL" help:"Render the developer portal layout."`
	Title        string        `env:"API_PORTAL_DASHBOARD_TITLE" help:"Dashboard title in portal mode."`
	CatalogURL   string        `name:"catalog-url" env:"APICATALOG_URL" help:"Base URL of the API catalog service."`
	LogoURL      string        `name:"logo-url" env:"APICATALOG_LOGO_URL" help:"Base URL serving /custom-logo (defaults to the catalog URL)."`
	Token        string        `env:"APICATALOG_TOKEN" help:"Bearer token for the catalog service."`
	PollInterval time.Duration `name:"poll-interval" help:"Tile refresh interval (default 30s)."`
	Contents     string        `type:"existingfile" help:"Educational contents JSON overriding the embedded catalog."`
	BasePath     string        `name:"base-path" default:"/apicatalog" help:"Route prefix."`
	Audit        bool          `help:"Log user intents as go-users activity records."`
}

func (cmd *serveCmd) Run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := cmd.resolveConfig()
	if err != nil {
		return err
	}

	client, err := apicatalog.NewHTTPClient(apicatalog.HTTPConfig{BaseURL: cfg.CatalogURL, Token: cmd.Token})
	if err != nil {
		return err
	}
	logos, err := catalog.NewHTTPLogoFetcher(catalog.LogoConfig{
		BaseURL:    cfg.LogoBaseURL,
		Cache:      catalog.NewAssetCache(5 * time.Minute),
		FailureTTL: logoFailureTTL,
	})
	if err != nil {
		return err
	}
	contents, err := loadContents(cfg.ContentsPath)
	if err != nil {
		return err
	}

	broadcast := catalog.NewBroadcastHook()
	store := catalogpkg.NewStore(catalogpkg.StoreOptions{
		Source:       client,
		Refresher:    client,
		Hooks:        []catalog.StateHook{broadcast},
		Logger:       logger,
		PollInterval: cfg.PollInterval,
	})

	var hooks activity.Hooks
	if cmd.Audit {
		hooks = append(hooks, usersink.Hook{Sink: logSink{logger: logger}})
	}

	var chart *catalog.ContentChart
	if cfg.PortalMode {
		opts := []catalog.ContentChartOption{}
		if cfg.ChartTheme != "" {
			opts = append(opts, catalog.WithChartTheme(cfg.ChartTheme))
		}
		chart = catalog.NewContentChart(opts...)
	}

	renderer, err := catalog.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("catalogctl: templates: %w", err)
	}

	admin, err := goadmin.New(goadmin.Config{ActivityHooks: hooks})
	if err != nil {
		return err
	}
	view := catalogpkg.NewDashboardView(store, catalogpkg.ViewConfig{
		PortalMode:  cfg.PortalMode,
		PortalTitle: cfg.PortalTitle,
		Sorter:      cfg.Sorter(),
		Contents:    contents,
		Theme:       catalog.NewThemeApplier(logos),
		Chart:       chart,
		Activity:    admin.Activity(),
		Logger:      logger,
	})
	controller := catalogpkg.NewController(catalogpkg.ControllerOptions{
		View:     view,
		Renderer: renderer,
		Logger:   logger,
	})

	intents := gorouter.Intents{
		Search:     commands.NewSearchCommand(view, nil),
		Refresh:    commands.NewRefreshStaticAPIsCommand(view, nil),
		Wizard:     commands.NewToggleWizardCommand(view, nil),
		CloseAlert: commands.NewCloseAlertCommand(view, nil),
		ClearError: commands.NewClearErrorCommand(view, nil),
		Scroll:     commands.NewScrollCommand(view),
		MobileMenu: commands.NewToggleMobileMenuCommand(view, nil),
		CloseMenu:  commands.NewCloseMobileMenuCommand(view, nil),
		Select:     commands.NewSelectServiceCommand(view, nil),
	}

	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:     server.Router(),
		Controller: controller,
		Intents:    intents,
		Broadcast:  broadcast,
		BasePath:   cmd.BasePath,
	}); err != nil {
		return fmt.Errorf("catalogctl: register routes: %w", err)
	}

	lifecycle := commands.NewLifecycleCommand(view, nil)
	if err := lifecycle.Execute(ctx, commands.LifecycleInput{Mounted: true}); err != nil {
		return err
	}
	defer lifecycle.Execute(context.WithoutCancel(ctx), commands.LifecycleInput{})

	if cmd.APIListen != "" {
		api := &httpapi.Handlers{
			Page:       controller,
			View:       queries.NewViewQuery(controller),
			Search:     intents.Search,
			Refresh:    intents.Refresh,
			Wizard:     intents.Wizard,
			CloseAlert: intents.CloseAlert,
			ClearError: intents.ClearError,
			Scroll:     intents.Scroll,
			Lifecycle:  lifecycle,
			Select:     intents.Select,
			MobileMenu: intents.MobileMenu,
			CloseMenu:  intents.CloseMenu,
			Contents:   queries.NewContentCountsQuery(contents),
			Events:     broadcast,
		}
		stop := serveAPI(ctx, logger, cmd.APIListen, cmd.BasePath, api)
		defer stop()
	}

	logger.Info("catalog dashboard ready",
		"listen", cfg.Listen,
		"dashboard", cmd.BasePath+"/dashboard",
		"portal", cfg.PortalMode,
		"catalog", cfg.CatalogURL,
	)
	return server.Serve(cfg.Listen)
}

const logoFailureTTL = 30 * time.Second

// serveAPI runs the net/http surface next to the fiber server. The returned
// func shuts it down.
func serveAPI(ctx context.Context, logger *slog.Logger, addr, base string, api *httpapi.Handlers) func() {
	mux := http.NewServeMux()
	api.Mount(mux, base)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("catalog api listening", "listen", addr, "events", base+"/dashboard/events")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("catalog api server stopped", "error", err)
		}
	}()
	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("catalog api shutdown", "error", err)
		}
	}
}

// resolveConfig layers flags over the optional config file.
func (cmd *serveCmd) resolveConfig() (*catalog.Config, error) {
	cfg := &catalog.Config{}
	if cmd.Config != "" {
		loaded, err := catalog.ReadConfig(cmd.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if cmd.Listen != "" {
		cfg.Listen = cmd.Listen
	}
	if cmd.Portal {
		cfg.PortalMode = true
	}
	if cmd.Title != "" {
		cfg.PortalTitle = cmd.Title
	}
	if cmd.CatalogURL != "" {
		cfg.CatalogURL = cmd.CatalogURL
	}
	if cmd.LogoURL != "" {
		cfg.LogoBaseURL = cmd.LogoURL
	}
	if cmd.PollInterval != 0 {
		cfg.PollInterval = cmd.PollInterval
	}
	if cmd.Contents != "" {
		cfg.ContentsPath = cmd.Contents
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadContents(path string) (*catalog.ContentCatalog, error) {
	if path == "" {
		return catalog.DefaultContentCatalog()
	}
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("catalogctl: open contents %s: %w", path, err)
	}
	defer f.Close()
	return catalog.LoadContentCatalog(f)
}

// logSink writes go-users activity records to the structured log.
type logSink struct {
	logger *slog.Logger
}

func (s logSink) Log(ctx context.Context, record types.ActivityRecord) error {
	s.logger.InfoContext(ctx, "catalog activity",
		"verb", record.Verb,
		"object_type", record.ObjectType,
		"actor_id", record.ActorID.String(),
		"channel", record.Channel,
		"data", record.Data,
	)
	return nil
}
