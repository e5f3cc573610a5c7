package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/urso/logdispatch"
	"github.com/urso/logdispatch/backend"
	"github.com/urso/logdispatch/backend/enclog"
	"github.com/urso/logdispatch/backend/hclogger"
	"github.com/urso/logdispatch/backend/jsonlog"
	"github.com/urso/logdispatch/backend/objlog"
	"github.com/urso/logdispatch/backend/structlog"
	"github.com/urso/logdispatch/backend/txtlog"
	"github.com/urso/logdispatch/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var mode, contextName, level, cfgFile string

	cmd := &cobra.Command{
		Use:          "tstlog",
		Short:        "Print sample messages through the log dispatcher",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			diag := logdispatch.WithDiagnostics(hclog.New(&hclog.LoggerOptions{
				Name:   "tstlog",
				Output: errOut,
			}))

			var log *logdispatch.Logger
			if cfgFile != "" {
				cfg, err := config.Load(cfgFile)
				if err != nil {
					return err
				}
				if log, err = config.Build(cfg, diag); err != nil {
					return err
				}
			} else {
				b, err := newBackend(mode, out, errOut)
				if err != nil {
					return err
				}
				log = logdispatch.New(diag)
				log.SetLogger(logdispatch.DefaultContext, b)
				log.SetLogger("worker1", b)
			}

			if contextName != "" {
				if err := log.SetContext(contextName); err != nil {
					return err
				}
			}
			if level != "" && !log.SetLogLevel(level) {
				return errors.Errorf("unknown level: %v", level)
			}

			testWith(out, mode, log)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&mode, "mode", "text", "select print mode (text, json, obj, hclog)")
	flags.StringVar(&contextName, "context", "", "context to activate before logging")
	flags.StringVar(&level, "level", "", "log level of the active context")
	flags.StringVar(&cfgFile, "config", "", "YAML configuration file, replaces --mode")
	return cmd
}

func newBackend(mode string, out, errOut io.Writer) (backend.Backend, error) {
	switch mode {
	case "text":
		return txtlog.New(txtlog.Writer(out, errOut)), nil
	case "json":
		return jsonlog.New(enclog.Writer(out, "\n"), []structlog.Field{
			structlog.DynTimestamp(time.RFC3339Nano),
		})
	case "obj":
		return objlog.New(
			objlog.Call(func(obj map[string]interface{}) {
				spew.Fdump(out, obj)
			}),
			[]structlog.Field{
				structlog.DynTimestamp(time.RFC3339Nano),
			},
		)
	case "hclog":
		return hclogger.New(hclog.New(&hclog.LoggerOptions{
			Name:   "tstlog",
			Level:  hclog.Trace,
			Output: out,
		})), nil
	default:
		return nil, errors.Errorf("unknown mode: %v", mode)
	}
}

func testWith(out io.Writer, title string, log *logdispatch.Logger) {
	if title != "" {
		printTitle(out, title)
	}
	defer fmt.Fprintln(out)

	log.Trace("trace message")
	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message")
	log.Fatal("fatal message")

	log.Info("with extra values", 42, true, map[string]string{"key": "value"})
	log.Error("log error value", errors.New("oops"))

	log.Post("warn", "posted warning", "disk at 90%")
	log.Post("bogus", "never printed")

	active := log.CurrentContext()
	if active == "worker1" || log.SetContext("worker1") != nil {
		return
	}
	defer log.SetContext(active)

	log.SetLogLevel("error")
	log.Info("worker1 info is filtered")
	log.Error("worker1 error")
}

func printTitle(out io.Writer, title string) {
	fmt.Fprintln(out, title)
	for range title {
		fmt.Fprint(out, "-")
	}
	fmt.Fprintln(out)
}
