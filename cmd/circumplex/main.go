package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configFile string
	remoteURL  string
	// logCloser releases the log file of the running command.
	logCloser io.Closer = nopCloser{}
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// closeLog closes the current log file, if any, and falls back to stderr.
func closeLog() error {
	err := logCloser.Close()
	logCloser = nopCloser{}
	return err
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		// post-run hooks are skipped when a command fails
		_ = closeLog()
		if _, fprintfErr := fmt.Fprintf(os.Stderr, "failed to execute a command: %+v\n", err); fprintfErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
		}
		os.Exit(1)
	}
	os.Exit(0)
}

func newRootCommand() *cobra.Command {
	var (
		debugMode bool
		logFile   string
	)
	rootCommand := &cobra.Command{
		Use:           "circumplex",
		Short:         "Track emotions on the valence and arousal plane",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			w, closer := logWriter(logFile)
			logCloser = closer
			setupLogger(w, debugMode)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return closeLog()
		},
	}
	rootCommand.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCommand.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode")
	rootCommand.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to a rotated file instead of stderr")
	rootCommand.PersistentFlags().StringVar(&remoteURL, "remote", "", "base URL of a circumplex server to use instead of local storage")

	rootCommand.AddCommand(
		newClassifyCommand(),
		newLogCommand(),
		newListCommand(),
		newEditCommand(),
		newDeleteCommand(),
		newUndoCommand(),
		newRecordCommand(),
		newReplayCommand(),
		newStatsCommand(),
		newTrendCommand(),
		newExportCommand(),
		newImportCommand(),
		newChartCommand(),
		newReportCommand(),
		newCollectionsCommand(),
		newTagsCommand(),
		newSyncCommand(),
	)
	return rootCommand
}

// logWriter returns where logs go and how to release it. Log files are rotated.
func logWriter(logFile string) (io.Writer, io.Closer) {
	if logFile == "" {
		return os.Stderr, nopCloser{}
	}
	l := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
	return l, l
}

// setupLogger configures the default logger based on debug mode
func setupLogger(w io.Writer, debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})),
	)
}
