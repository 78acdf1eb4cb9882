package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/offsetcalc/internal/logging"
)

// setupLogging builds the invocation logger from config and the --debug
// flag, attaches it with a fresh run ID to the command context, and
// returns the log destination so it can be closed after the command runs.
func setupLogging(cmd *cobra.Command, st *rootState) logging.LogPathResult {
	loggingCfg := st.cfg.Logging.ToLoggingConfig()
	if st.debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = logging.FormatConsole
		loggingCfg.Output = logging.OutputStderr
		loggingCfg.File = ""
	}

	result := logging.NewLoggerWithPath(loggingCfg)
	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	runID := logging.GetOrGenerateRunID(ctx)
	ctx = logging.ContextWithRunID(ctx, runID)
	ctx = logging.WithLogger(ctx, logging.ComponentLogger(result.Logger, "cli"))
	cmd.SetContext(ctx)

	st.logger = logging.FromContext(ctx)
	st.logger.Debug().Str("command", cmd.Name()).Msg("command started")

	return result
}
