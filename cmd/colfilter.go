package cmd

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/leftmike/colfilter/config"
	"github.com/leftmike/colfilter/flags"
)

var (
	colfilterCmd = &cobra.Command{
		Use:               "colfilter",
		Short:             "Filter the rows of a table",
		Long:              "Colfilter shows the rows of a table which match a filter expression.",
		PersistentPreRunE: colfilterPreRun,
		PersistentPostRun: colfilterPostRun,
		SilenceUsage:      true,
	}

	logFile   = "colfilter.log"
	logLevel  = "info"
	logStderr = false
	logWriter io.WriteCloser

	configFile = "colfilter.hcl"
	noConfig   = false

	cfg = config.NewConfig()
)

func init() {
	log.SetFormatter(&log.TextFormatter{
		DisableLevelTruncation: true,
	})

	fs := colfilterCmd.PersistentFlags()

	fs.StringVar(&logFile, "log-file", logFile, "`file` to use for logging")
	cfg.Var(fs, "log-file")

	fs.StringVar(&logLevel, "log-level", logLevel,
		"log level: trace, debug, info, warn, error, fatal, or panic")
	cfg.Var(fs, "log-level")

	fs.BoolVarP(&logStderr, "log-stderr", "s", logStderr, "log to standard error")

	fs.StringVar(&configFile, "config-file", configFile, "`file` to load config from")
	fs.BoolVar(&noConfig, "no-config", noConfig, "don't load config file")
}

func Execute() error {
	return colfilterCmd.Execute()
}

func colfilterPreRun(cmd *cobra.Command, args []string) error {
	cfg.Visit(cmd.Flags())

	if configFile != "" && !noConfig {
		err := cfg.LoadFile(configFile)
		if err != nil && !(os.IsNotExist(err) && !cmd.Flags().Changed("config-file")) {
			return fmt.Errorf("colfilter: %s", err)
		}
	}

	if !logStderr && logFile != "" {
		var err error
		logWriter, err = os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
		if err != nil {
			logWriter = nil
			return fmt.Errorf("colfilter: %s", err)
		}
		log.SetOutput(logWriter)
	}

	ll, err := log.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("colfilter: %s", err)
	}
	log.SetLevel(ll)

	entry := log.WithField("pid", os.Getpid())
	flags.ListFlags(func(nam string, f flags.Flag) {
		entry = entry.WithField(nam, cfg.Flags.GetFlag(f))
	})
	entry.Info("colfilter starting")
	return nil
}

func colfilterPostRun(cmd *cobra.Command, args []string) {
	log.WithField("pid", os.Getpid()).Info("colfilter done")

	if logWriter != nil {
		logWriter.Close()
	}
}
