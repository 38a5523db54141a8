// Package build drives a single omnibus build: it loads the catalog, runs
// assembly over source documents and packages the result.
package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/gofrs/flock"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"obc/assemble"
	"obc/catalog"
	"obc/common"
	"obc/diag"
	"obc/packaging/epub"
	"obc/source"
	"obc/state"
)

const lockName = ".obc.lock"

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("build")

	cat := cmd.Args().Get(0)
	if len(cat) == 0 {
		return errors.New("no catalog has been specified")
	}
	src := cmd.Args().Get(1)
	if len(src) == 0 {
		return errors.New("no source directory has been specified")
	}
	if cat, err = filepath.Abs(cat); err != nil {
		return err
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(2)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 3 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[3:]))
	}

	if s := cmd.String("scope"); len(s) > 0 {
		if env.Build.Scope, err = common.ParseScope(s); err != nil {
			return fmt.Errorf("unable to use requested scope: %w", err)
		}
	}
	if l := cmd.String("layout"); len(l) > 0 {
		if env.Cfg.Assembly.Layout, err = common.ParseOutputLayout(l); err != nil {
			return fmt.Errorf("unable to use requested layout: %w", err)
		}
	}
	if o := cmd.String("overrides"); len(o) > 0 {
		env.Cfg.Assembly.OverridesDir = o
	}
	env.Build.Overwrite = cmd.Bool("overwrite")

	// zip does not define file name encoding, old source archives may need
	// archaic code page
	if cp := cmd.String("force-zip-cp"); len(cp) > 0 {
		if err := env.Build.SetCodePage(cp); err != nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
		} else {
			log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", env.Build.CodePageName()))
		}
	}

	log.Info("Processing starting",
		zap.String("catalog", cat), zap.String("source", src), zap.String("destination", dst), zap.Stringer("scope", env.Build.Scope))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	out, err := process(ctx, cat, src, dst, log)
	if err != nil {
		return err
	}
	if !cmd.Bool("quiet") {
		fmt.Fprintln(cmd.Root().Writer, renderSummary(out))
	}
	return nil
}

// Outcome describes finished build.
type Outcome struct {
	Output string
	Title  string
	Result *assemble.Result
}

// process handles the build independently of CLI framework. Destination
// directory is locked for the duration so concurrent builds into the same
// place do not step on each other.
func process(ctx context.Context, catPath, src, dst string, log *zap.Logger) (out *Outcome, rerr error) {
	env := state.EnvFromContext(ctx)

	cat, err := catalog.Load(catPath)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dst, 0755); err != nil {
		return nil, fmt.Errorf("unable to create output directory: %w", err)
	}
	lock := flock.New(filepath.Join(dst, lockName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("unable to lock destination: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another build is writing to %s", dst)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	var outputName string
	defer func(start time.Time) {
		if r := recover(); r != nil {
			log.Error("Build ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("build panic: %v", r)
		}
	}(time.Now())

	lib := source.NewLibrary(src, log, source.WithCodePage(env.Build.CodePage))
	engine := assemble.New(env.Cfg.Assembly, lib, log, assemble.WithUnusedReport(env.Cfg.Output.ReportUnused))

	res, err := engine.Run(ctx, cat, env.Build.Scope)
	if err != nil {
		return nil, fmt.Errorf("unable to assemble %s: %w", env.Build.Scope, err)
	}

	list := &diag.List{}
	list.Add(res.Diagnostics...)
	list.Log(log)

	title := bookTitle(res, env)
	outputName = buildOutputPath(res, dst, env)

	if _, err := os.Stat(outputName); err == nil {
		if !env.Build.Overwrite {
			return nil, fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
		if err = os.Remove(outputName); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return nil, fmt.Errorf("unable to create output directory: %w", err)
	}

	if err := epub.New(&env.Cfg.Output, log).Write(ctx, res, title, outputName); err != nil {
		return nil, fmt.Errorf("unable to generate output: %w", err)
	}
	log.Info("Omnibus written", zap.String("to", outputName), zap.Int("units", len(res.Units)), zap.Int("diagnostics", list.Len()))

	out = &Outcome{Output: outputName, Title: title, Result: res}

	// Store build result for debugging
	if env.Rpt != nil {
		env.Rpt.Store(fmt.Sprintf("result-%s%s", env.Build.Scope, filepath.Ext(outputName)), outputName)
		env.Rpt.StoreData(fmt.Sprintf("summary-%s.txt", env.Build.Scope), []byte(renderSummary(out)))
		env.Rpt.StoreData(fmt.Sprintf("assembled-%s.txt", env.Build.Scope), []byte(res.String()))
	}
	return out, nil
}
