package main

import (
	"context"
	"fmt"
	"github.com/QuantumGhost/folio/internal"
	"github.com/QuantumGhost/folio/internal/content"
	"github.com/QuantumGhost/folio/internal/metrics"
	"github.com/QuantumGhost/folio/internal/render"
	"github.com/QuantumGhost/folio/internal/search"
	"github.com/QuantumGhost/folio/internal/web"
	"github.com/morikuni/failure"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	defaultLogLevel  = "info"
	defaultLogFormat = "auto"
	defaultWidth     = 80
	shutdownTimeout  = 10 * time.Second
)

func envName(name string) string {
	return "FOLIO_" + name
}

func contentOriginFlag(config *internal.Config) cli.Flag {
	return &cli.StringFlag{
		Name:        "content-origin",
		Usage:       "where posts are read from: http(s) base URL, s3://bucket/prefix or a local directory",
		EnvVars:     []string{envName("CONTENT_ORIGIN")},
		Destination: &config.ContentOrigin,
		Value:       internal.DefaultContentOrigin,
	}
}

func serveCmd() *cli.Command {
	config := internal.DefaultConfig()
	cmd := cli.Command{
		Name:  "serve",
		Usage: "serve the site over HTTP",
	}
	cmd.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "listen",
			Usage:       "address to listen on",
			EnvVars:     []string{envName("LISTEN")},
			Destination: &config.ListenAddr,
			Value:       internal.DefaultListenAddr,
		},
		contentOriginFlag(&config),
		&cli.StringFlag{
			Name:        "site-config",
			Usage:       "YAML file with site settings (title, author, description, code_style)",
			EnvVars:     []string{envName("SITE_CONFIG")},
			Destination: &config.SiteConfigPath,
		},
		&cli.StringFlag{
			Name:        "database-url",
			Usage:       "PostgreSQL database URL of the search index, search is disabled when empty",
			EnvVars:     []string{"DATABASE_URL"},
			Destination: &config.DatabaseURL,
		},
		&cli.BoolFlag{
			Name:        "secure-cookies",
			Usage:       "mark the language preference cookie as secure",
			EnvVars:     []string{envName("SECURE_COOKIES")},
			Destination: &config.SecureCookies,
		},
	}

	cmd.Action = func(c *cli.Context) error {
		router, cleanup, err := web.Setup(c.Context, config)
		if err != nil {
			return err
		}
		defer cleanup()
		server := &http.Server{
			Addr:              config.ListenAddr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			<-c.Context.Done()
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				log.Error().Err(err).Msg("error while shutting down server")
			}
		}()
		log.Info().Str("addr", config.ListenAddr).Msg("listening")
		err = server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			return failure.MarkUnexpected(err)
		}
		return nil
	}
	return &cmd
}

func indexCmd() *cli.Command {
	config := internal.DefaultConfig()
	cmd := cli.Command{
		Name:  "index",
		Usage: "build the full-text search index from the content origin",
	}
	cmd.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "database-url",
			Usage:       "PostgreSQL database URL of the search index",
			EnvVars:     []string{"DATABASE_URL"},
			Destination: &config.DatabaseURL,
			Required:    true,
		},
		contentOriginFlag(&config),
		&cli.StringSliceFlag{
			Name:    "language",
			Usage:   "language to index, may be repeated; every language by default",
			EnvVars: []string{envName("LANGUAGES")},
		},
		&cli.BoolFlag{
			Name:        "once",
			Usage:       "index every post once and exit",
			EnvVars:     []string{envName("INDEX_ONCE")},
			Destination: &config.Once,
		},
		&cli.DurationFlag{
			Name:        "scan-interval",
			Usage:       "interval between two scans of the content origin",
			EnvVars:     []string{envName("SCAN_INTERVAL")},
			Destination: &config.ScanInterval,
			Value:       internal.DefaultScanInterval,
		},
		&cli.DurationFlag{
			Name:        "job-timeout",
			Usage:       "timeout of indexing a single post",
			EnvVars:     []string{envName("JOB_TIMEOUT")},
			Destination: &config.JobTimeout,
			Value:       internal.DefaultJobTimeout,
		},
	}

	cmd.Action = func(c *cli.Context) error {
		config.Languages = c.StringSlice("language")
		origin, err := content.NewOrigin(c.Context, config.ContentOrigin)
		if err != nil {
			return err
		}
		collector := metrics.NewCollector("folio")
		fetcher := content.NewFetcher(origin, collector)
		indexer := search.NewIndexer(c.Context, config, fetcher, render.New(), collector)
		return indexer.Start()
	}
	return &cmd
}

func renderCmd() *cli.Command {
	config := internal.DefaultConfig()
	var lang string
	var width int
	cmd := cli.Command{
		Name:      "render",
		Usage:     "preview a post in the terminal",
		ArgsUsage: "[slug]",
	}
	cmd.Flags = []cli.Flag{
		contentOriginFlag(&config),
		&cli.StringFlag{
			Name:        "lang",
			Usage:       "language of the post",
			Value:       "en",
			Destination: &lang,
		},
		&cli.IntFlag{
			Name:        "width",
			Usage:       "word wrap width",
			Value:       defaultWidth,
			Destination: &width,
		},
	}

	cmd.Action = func(c *cli.Context) error {
		origin, err := content.NewOrigin(c.Context, config.ContentOrigin)
		if err != nil {
			return err
		}
		article, err := content.NewFetcher(origin, nil).GetArticle(c.Context, c.Args().First(), lang)
		if err != nil {
			return err
		}
		out, err := render.Terminal(render.Preview(article), width)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(c.App.Writer, out)
		return err
	}
	return &cmd
}

func main() {
	logLevel := defaultLogLevel
	logFormat := defaultLogFormat

	ctx, cancel := context.WithCancel(context.Background())
	app := cli.NewApp()
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Fprintf(c.App.Writer, "%v\n%s", c.App.Name, internal.GetBuildInfo())
	}
	app.Name = "folio"
	app.Usage = "personal site server"
	app.Version = internal.GetVersion()

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level of folio ([trace, debug, info, warn, error])",
			EnvVars:     []string{"LOG_LEVEL"},
			Value:       defaultLogLevel,
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format of folio ([auto, human, json])",
			EnvVars:     []string{"LOG_FORMAT"},
			Value:       defaultLogFormat,
			Destination: &logFormat,
		},
	}

	app.Before = func(c *cli.Context) error {
		return internal.SetUpLogger(logLevel, logFormat)
	}
	app.Commands = []*cli.Command{
		serveCmd(),
		indexCmd(),
		renderCmd(),
	}
	app.HideVersion = false

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()
	err := app.RunContext(ctx, os.Args)
	if err != nil && err != context.Canceled {
		log.Error().Stack().Err(err).Msg("error while running folio")
		os.Exit(1)
	}
	os.Exit(0)
}
