package logger

import (
	"go.uber.org/zap"

	"github.com/nikmy/sift/pkg/environment"
	"github.com/nikmy/sift/pkg/errors"
)

type Logger interface {
	With(label string) Logger

	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)

	Warn(err error)
	Error(err error)
	Panic(err error)
}

func New(env environment.Env) (Logger, error) {
	var (
		base *zap.Logger
		err  error
	)

	switch env {
	case environment.Production:
		base, err = zap.NewProduction()
	default:
		base, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, errors.WrapFail(err, "init zap logger")
	}

	return &wrapper{base: base.Sugar()}, nil
}

type wrapper struct {
	base *zap.SugaredLogger
}

func (w *wrapper) With(label string) Logger {
	return &wrapper{w.base.Named(label)}
}

func (w *wrapper) Debugf(format string, args ...any) {
	w.base.Debugf(format, args...)
}

func (w *wrapper) Infof(format string, args ...any) {
	w.base.Infof(format, args...)
}

func (w *wrapper) Warnf(format string, args ...any) {
	w.base.Warnf(format, args...)
}

func (w *wrapper) Errorf(format string, args ...any) {
	w.base.Errorf(format, args...)
}

func (w *wrapper) Warn(err error) {
	w.base.Warnf("%s", err)
}

func (w *wrapper) Error(err error) {
	w.base.Errorf("%s", err)
	_ = w.base.Sync()
}

func (w *wrapper) Panic(err error) {
	_ = w.base.Sync()
	w.base.Panicf("%s", err)
}
