package main

import (
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	flagLogEncoding = "log-encoding"
	flagLogLevel    = "log-level"
)

// levelStrings maps --log-level values to zap levels. logr V(1) is debug.
var levelStrings = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"error": zapcore.ErrorLevel,
}

// logOptions configures the build logger.
type logOptions struct {
	encoding string
	level    string
}

func (o *logOptions) bindFlags(fs *flag.FlagSet) {
	fs.StringVar(&o.encoding, flagLogEncoding, "console",
		"log encoding format, 'console' or 'json'")
	fs.StringVar(&o.level, flagLogLevel, "info",
		"log verbosity, one of 'debug', 'info', 'error'")
}

// newLogger returns a logr.Logger writing to w with ISO8601 timestamps.
// quiet raises the level to error regardless of --log-level.
func newLogger(opts logOptions, quiet bool, w io.Writer) (logr.Logger, error) {
	level, ok := levelStrings[opts.level]
	if !ok {
		return logr.Discard(), fmt.Errorf("%w: --%s %q (use debug, info or error)", ErrUsage, flagLogLevel, opts.level)
	}
	if quiet {
		level = zapcore.ErrorLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	switch opts.encoding {
	case "console":
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	case "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		return logr.Discard(), fmt.Errorf("%w: --%s %q (use console or json)", ErrUsage, flagLogEncoding, opts.encoding)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	return zapr.NewLogger(zap.New(core)), nil
}
