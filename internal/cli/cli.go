// Package cli parses the command line and runs the download command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ytget/yt-playlist/internal/config"
	"github.com/ytget/yt-playlist/internal/download"
	"github.com/ytget/yt-playlist/internal/logging"
	"github.com/ytget/yt-playlist/internal/model"
	"github.com/ytget/yt-playlist/internal/platform"
	"github.com/ytget/yt-playlist/internal/ui"
)

// Exit codes
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitInterrupted = 130
)

// Command names
const (
	ProgramName     = "yt-playlist"
	CommandDownload = "download"
)

// Deps are the process-level collaborators of Run
type Deps struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Version string
	// Logger replaces the configured file logger when set
	Logger *zap.Logger
	// NewExtractor replaces the configured extraction engine when set
	NewExtractor func(settings *config.Settings, logger *zap.Logger) platform.Extractor
}

// errUsage marks command-line mistakes
var errUsage = errors.New("usage error")

// Run executes the command line args (without the program name) and returns
// the process exit code.
func Run(ctx context.Context, args []string, deps Deps) int {
	root := pflag.NewFlagSet(ProgramName, pflag.ContinueOnError)
	root.SetOutput(deps.Stderr)
	root.SetInterspersed(false)
	showVersion := root.BoolP("version", "v", false, "print version")
	root.Usage = func() { printUsage(deps.Stderr) }

	if err := root.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}

	if *showVersion {
		fmt.Fprintf(deps.Stdout, "%s %s\n", ProgramName, deps.Version)
		return ExitOK
	}

	rest := root.Args()
	if len(rest) == 0 {
		printUsage(deps.Stderr)
		return ExitUsage
	}

	switch rest[0] {
	case CommandDownload:
		return runDownload(ctx, rest[1:], deps)
	default:
		fmt.Fprintf(deps.Stderr, "unknown command %q\n\n", rest[0])
		printUsage(deps.Stderr)
		return ExitUsage
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `Usage:
  %[1]s download <url> [-o|--output <path>] [--format <selector>]
                       [--engine ytdlp|native] [--ui auto|live|plain]
                       [--config <file>]
  %[1]s --version

Download all videos from a YouTube playlist with detailed progress.
`, ProgramName)
}

// downloadOptions holds the parsed download command line
type downloadOptions struct {
	url        string
	configFile string
	flags      *pflag.FlagSet
}

func parseDownload(args []string, stderr io.Writer) (*downloadOptions, error) {
	fs := pflag.NewFlagSet(CommandDownload, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringP("output", "o", config.DefaultOutput, "destination folder for downloads")
	fs.String("format", config.DefaultFormat, "format selector passed to the extractor")
	fs.String("engine", string(config.DefaultEngine), "extraction engine: ytdlp or native")
	fs.String("ui", string(config.DefaultUIMode), "progress display: auto, live or plain")
	configFile := fs.String("config", "", "path to a config file")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s download <url> [flags]\n\nFlags:\n", ProgramName)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch fs.NArg() {
	case 0:
		fmt.Fprintln(stderr, "missing playlist URL")
		fs.Usage()
		return nil, errUsage
	case 1:
	default:
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args()[1:], " "))
		fs.Usage()
		return nil, errUsage
	}

	return &downloadOptions{
		url:        fs.Arg(0),
		configFile: *configFile,
		flags:      fs,
	}, nil
}

func runDownload(ctx context.Context, args []string, deps Deps) int {
	opts, err := parseDownload(args, deps.Stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}

	settings, err := config.Load(config.LoadOptions{
		ConfigFile: opts.configFile,
		Flags:      opts.flags,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Error: failed to load config: %v\n", err)
		return ExitFailure
	}

	logger := deps.Logger
	if logger == nil {
		logger = logging.NewOrNop(logging.Config{
			File:  settings.GetLogFile(),
			Level: settings.GetLogLevel(),
		})
	}
	logger, _ = logging.WithRun(logger)
	defer func() { _ = logger.Sync() }()

	logger.Info("starting run",
		zap.String("version", deps.Version),
		zap.String("url", opts.url),
		zap.String("output", settings.GetOutputDirectory()),
		zap.String("engine", string(settings.GetEngine())),
	)

	newExtractor := deps.NewExtractor
	if newExtractor == nil {
		newExtractor = NewExtractor
	}

	app := &downloadCommand{
		settings:  settings,
		logger:    logger,
		console:   ui.NewConsole(deps.Stdout, deps.Stderr, settings.GetUIMode(), settings.GetRefreshRate()),
		extractor: newExtractor(settings, logger),
	}
	return app.run(ctx, opts.url)
}

// NewExtractor builds the extraction engine selected in settings
func NewExtractor(settings *config.Settings, logger *zap.Logger) platform.Extractor {
	switch settings.GetEngine() {
	case config.EngineNative:
		return platform.NewNativeEngine(platform.NativeConfig{
			Timeout:   settings.GetNativeTimeout(),
			Retries:   settings.GetNativeRetries(),
			UserAgent: settings.GetNativeUserAgent(),
		}, logger)
	default:
		return platform.NewYTDLPEngine(platform.YTDLPConfig{
			Executable:  settings.GetYTDLPExecutable(),
			AutoInstall: settings.GetYTDLPAutoInstall(),
		}, logger)
	}
}

// downloadCommand is one invocation of the download command
type downloadCommand struct {
	settings  *config.Settings
	logger    *zap.Logger
	console   *ui.Console
	extractor platform.Extractor
}

func (c *downloadCommand) run(ctx context.Context, url string) int {
	c.console.Banner()

	outputDir, err := platform.PrepareOutputDirectory(c.settings.GetOutputDirectory())
	if err != nil {
		c.logger.Error("output directory unavailable", zap.Error(err))
		c.console.Error(err)
		return ExitFailure
	}

	resolver := platform.NewResolver(c.extractor, c.logger)
	resolver.SetTimeout(c.settings.GetResolveTimeout())

	var playlist *model.Playlist
	err = c.console.Status(ui.FetchingText, func() error {
		var resolveErr error
		playlist, resolveErr = resolver.Resolve(ctx, url)
		return resolveErr
	})
	if err != nil {
		if ctx.Err() != nil {
			c.console.Interrupted()
			return ExitInterrupted
		}
		c.console.Error(errors.New(ui.ResolveFailedText))
		c.console.Error(err)
		return ExitFailure
	}

	c.console.PlaylistInfo(playlist, outputDir)
	c.console.VideoTable(playlist.Videos)

	service := download.NewService(c.extractor, c.logger)
	service.SetFormat(c.settings.GetFormat())
	service.SetFilenameTemplate(c.settings.GetFilenameTemplate())
	service.SetUpdateCallback(c.logVideoStatus)

	playlist.UpdateStatus(model.PlaylistStatusDownloading)
	var summary model.Summary
	err = c.console.Progress(len(playlist.Videos), func(display download.ProgressDisplay) {
		summary = service.Run(ctx, playlist.Videos, outputDir, display)
	})
	if err != nil {
		c.logger.Warn("progress view failed", zap.Error(err))
	}

	c.logger.Info("run summary",
		zap.Int("processed", summary.Processed()),
		zap.Int("total", summary.Total),
		zap.Bool("has_errors", summary.HasErrors()),
	)

	if ctx.Err() != nil {
		playlist.UpdateStatus(model.PlaylistStatusError)
		c.console.Interrupted()
		c.console.Summary(summary)
		return ExitInterrupted
	}

	playlist.UpdateStatus(model.PlaylistStatusCompleted)
	c.console.Success()
	c.console.Summary(summary)
	return ExitOK
}

// logVideoStatus records every video status change in the run log
func (c *downloadCommand) logVideoStatus(video *model.PlaylistVideo) {
	fields := []zap.Field{
		zap.String("id", video.ID),
		zap.Stringer("status", video.Status),
	}
	if !video.Status.IsFinished() {
		c.logger.Debug("video status changed", fields...)
		return
	}
	if video.Error != "" {
		fields = append(fields, zap.String("error", video.Error))
	}
	c.logger.Info("video finished", fields...)
}
