package config

import (
	"errors"

	"github.com/spf13/pflag"
)

var CliArgs *CliConfig

type CliConfig struct {
	ConfigFile string
	Debug      bool
	Help       bool
	Version    bool
}

// ParseArgs parses the command line into CliArgs.
func ParseArgs(args []string) error {
	if CliArgs != nil {
		panic("already defined")
	}
	cli, err := parseArgs(args)
	if err != nil {
		return err
	}
	CliArgs = cli
	return nil
}

func parseArgs(args []string) (*CliConfig, error) {
	cli := &CliConfig{}
	fs := pflag.NewFlagSet("restqueue", pflag.ContinueOnError)
	fs.StringVar(&cli.ConfigFile, "config", "", "Path to the config file")
	fs.BoolVarP(&cli.Debug, "debug", "d", false, "Enable debug mode")
	fs.BoolVarP(&cli.Version, "version", "v", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			cli.Help = true
			return cli, nil
		}
		return nil, err
	}
	return cli, nil
}
