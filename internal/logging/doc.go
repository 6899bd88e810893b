// Package logging provides structured logging for fruitfilter.
//
// It wraps Go's log/slog with a JSON handler writing to a size-rotated file
// in the user's config directory. The terminal UI owns stdout and stderr
// while it runs, so logs never go to the terminal unless no directory is
// configured.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger(dir, "INFO", logging.DefaultRotationConfig())
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Info("dataset loaded", "source", "static", "rows", 6)
//
// # Context Propagation
//
// Child loggers carry persistent attributes:
//
//	viewLogger := logger.WithView("logistics")
//	viewLogger.Debug("view refined", "rows", 3)
//
// Output:
//
//	{"time":"...","level":"DEBUG","msg":"view refined","view":"logistics","rows":3}
//
// # Rotation
//
// [RotatingWriter] rolls the file over to fruitfilter.log.1 once it would
// exceed MaxSizeMB, keeping at most MaxBackups old files.
package logging
