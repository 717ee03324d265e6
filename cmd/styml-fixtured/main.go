// Command styml-fixtured is a small fixture HTTP server: it parses
// styml documents posted to it, or loaded by name from a configured
// document directory, and serves back their debug and YAML forms. It
// exists to exercise the engine the way a consuming service would,
// not as a production deployment target.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/dfeneyrou/styml-go/stymlfs"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := pflag.NewFlagSet("styml-fixtured", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "path to a YAML config file (listen_addr, document_dir)")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "loading config:", err)
		return 1
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	docFs := afero.NewBasePathFs(afero.NewOsFs(), cfg.DocumentDir)
	s := &server{loader: stymlfs.New(docFs), logger: logger}

	logger.Info("listening", zap.String("addr", cfg.ListenAddr), zap.String("document_dir", cfg.DocumentDir))
	if err := http.ListenAndServe(cfg.ListenAddr, newRouter(s)); err != nil {
		logger.Error("server exited", zap.Error(err))
		return 1
	}
	return 0
}
