// Command calmkids is a headless client for checking a Calm Kids backend:
// it fetches the profile or a content list with the configured token and can
// run the native download flow for a file URL.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/calmkids/calmkids/internal/api"
	"github.com/calmkids/calmkids/internal/auth"
	"github.com/calmkids/calmkids/internal/config"
	"github.com/calmkids/calmkids/internal/download"
	"github.com/calmkids/calmkids/internal/logging"
	"github.com/calmkids/calmkids/internal/model"
	"github.com/calmkids/calmkids/internal/platform"
	"github.com/calmkids/calmkids/internal/render"
)

const usage = `usage: calmkids [flags] <command> [args]

commands:
  profile              print the signed-in profile
  content <endpoint>   print a content list, e.g. /child/content/pdfs
  download <url>       download a file and share it

flags:
`

// Exit codes
const (
	exitOK              = 0
	exitFailure         = 1
	exitUsage           = 2
	exitUnauthenticated = 3
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitFailure
	}

	fs := flag.NewFlagSet("calmkids", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	apiURL := fs.String("api", env.APIURL, "API base URL")
	token := fs.String("token", env.Token, "bearer token")
	dir := fs.String("dir", env.DocumentsDir, "download directory")
	debug := fs.Bool("debug", env.Debug, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	logger, err := logging.New(*debug)
	if err != nil {
		fmt.Fprintf(stderr, "logger: %v\n", err)
		return exitFailure
	}
	defer func() { _ = logger.Sync() }()

	client := api.NewClient(*apiURL, auth.NewMemoryTokenStore(*token), logger.Named("api"))

	switch cmd := fs.Arg(0); cmd {
	case "profile":
		profile, err := client.GetProfile(ctx)
		if err != nil {
			return fail(stderr, err)
		}
		return printJSON(stdout, stderr, profile)

	case "content":
		if fs.NArg() != 2 {
			fs.Usage()
			return exitUsage
		}
		items, err := client.ListContent(ctx, fs.Arg(1))
		if err != nil {
			return fail(stderr, err)
		}
		return printJSON(stdout, stderr, items)

	case "download":
		if fs.NArg() != 2 {
			fs.Usage()
			return exitUsage
		}
		svc := download.NewService(*dir, platform.NewSystemSharer(logger), nil, logger)
		svc.SetPlatform(render.PlatformNative)
		task := svc.Dispatch(ctx, fs.Arg(1))
		fmt.Fprintf(stdout, "%s\t%s\t%s\n", task.Status, task.GetSizeString(), task.OutputPath)
		if task.Status != model.TaskStatusCompleted {
			fmt.Fprintln(stderr, task.LastError)
			return exitFailure
		}
		return exitOK

	default:
		logger.Debug("unknown command", zap.String("command", cmd))
		fs.Usage()
		return exitUsage
	}
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintln(stderr, api.UserMessage(err))
	if errors.Is(err, api.ErrUnauthenticated) {
		return exitUnauthenticated
	}
	return exitFailure
}

func printJSON(stdout, stderr io.Writer, v any) int {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(stderr, "encode: %v\n", err)
		return exitFailure
	}
	return exitOK
}
