// Package state defines shared program state.
package state

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"obc/common"
	"obc/config"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	Build BuildOptions

	start   time.Time
	undoLog func()
}

// BuildOptions carries command line choices of build command which are
// not part of configuration.
type BuildOptions struct {
	Scope     common.Scope
	Overwrite bool
	// CodePage is used for non UTF-8 names in source archives, nil
	// means names are taken as is.
	CodePage encoding.Encoding
}

// SetCodePage resolves IANA character set name.
func (o *BuildOptions) SetCodePage(name string) error {
	enc, err := ianaindex.IANA.Encoding(name)
	if err == nil && enc == nil {
		err = fmt.Errorf("%s has no usable encoder", name)
	}
	if err != nil {
		o.CodePage = nil
		return err
	}
	o.CodePage = enc
	return nil
}

// CodePageName returns canonical name of forced code page or empty string.
func (o *BuildOptions) CodePageName() string {
	if o.CodePage == nil {
		return ""
	}
	name, _ := ianaindex.IANA.Name(o.CodePage)
	return name
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	env, ok := ctx.Value(envKey{}).(*LocalEnv)
	if !ok {
		panic("localenv not found in context")
	}
	return env
}

// ContextWithEnv attaches fresh environment to ctx.
func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, &LocalEnv{
		Build: BuildOptions{Scope: common.ScopeEntireSeries},
		start: time.Now(),
	})
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// RedirectStdLog sends output of standard library logger to e.Log.
func (e *LocalEnv) RedirectStdLog() {
	if e.Log != nil {
		e.undoLog = zap.RedirectStdLog(e.Log)
	}
}

// RestoreStdLog flushes e.Log and undoes RedirectStdLog.
func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.undoLog != nil {
		e.undoLog()
		e.undoLog = nil
	}
}
