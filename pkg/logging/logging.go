package logging

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"moul.io/zapfilter"
)

// SetupLogger builds the process logger writing to stderr and installs it as the zap global.
func SetupLogger(p Parameters) (*zap.Logger, error) {
	logger, err := newLogger(p, zapcore.Lock(os.Stderr))
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

func newLogger(p Parameters, w zapcore.WriteSyncer) (*zap.Logger, error) {
	var (
		ec  zapcore.EncoderConfig
		enc zapcore.Encoder
	)
	if p.Dev {
		ec = zap.NewDevelopmentEncoderConfig()
		enc = zapcore.NewConsoleEncoder(ec)
	} else {
		ec = zap.NewProductionEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(ec)
	}
	core := zapcore.NewCore(enc, w, zap.NewAtomicLevelAt(p.Level))
	if p.Filter != "" {
		rules, err := zapfilter.ParseRules(p.Filter)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid log filter '%s'", p.Filter)
		}
		core = zapfilter.NewFilteringCore(core, rules)
	}
	opts := []zap.Option{zap.AddCaller()}
	if p.Dev {
		opts = append(opts, zap.Development(), zap.AddStacktrace(zap.ErrorLevel))
	}
	return zap.New(core, opts...), nil
}
