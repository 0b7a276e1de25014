package main

import (
	"context"
	"fmt"
	"github.com/QuantumGhost/folio/internal"
	"github.com/QuantumGhost/folio/internal/web"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"os"
)

func envName(name string) string {
	return "FOLIO_" + name
}

func main() {
	config := internal.DefaultConfig()
	logLevel := "info"

	app := cli.NewApp()
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Fprintf(c.App.Writer, "%v\n%s", c.App.Name, internal.GetBuildInfo())
	}
	app.Name = "folio-lambda"
	app.Usage = "serve folio behind API Gateway"
	app.Version = internal.GetVersion()
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			EnvVars:     []string{"LOG_LEVEL"},
			Value:       logLevel,
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "content-origin",
			EnvVars:     []string{envName("CONTENT_ORIGIN")},
			Value:       internal.DefaultContentOrigin,
			Destination: &config.ContentOrigin,
		},
		&cli.StringFlag{
			Name:        "site-config",
			EnvVars:     []string{envName("SITE_CONFIG")},
			Destination: &config.SiteConfigPath,
		},
		&cli.StringFlag{
			Name:        "database-url",
			EnvVars:     []string{"DATABASE_URL"},
			Destination: &config.DatabaseURL,
		},
	}
	app.Action = func(c *cli.Context) error {
		// CloudWatch stores one JSON document per line.
		if err := internal.SetUpLogger(logLevel, internal.LogFormatJSON); err != nil {
			return err
		}
		config.SecureCookies = true
		router, cleanup, err := web.Setup(c.Context, config)
		if err != nil {
			return err
		}
		defer cleanup()
		adapter := chiadapter.NewV2(router)
		lambda.Start(func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
			return adapter.ProxyWithContextV2(ctx, req)
		})
		return nil
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		log.Error().Stack().Err(err).Msg("error while starting folio-lambda")
		os.Exit(1)
	}
}
