package config_test

import (
	"testing"

	"github.com/spf13/pflag"

	"github.com/leftmike/colfilter/config"
	"github.com/leftmike/colfilter/flags"
)

func newConfig(args []string) (*config.Config, *string, *bool, error) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	s := fs.String("log-level", "info", "")
	b := fs.Bool("log-stderr", false, "")

	c := config.NewConfig()
	c.Var(fs, "log-level")
	c.Var(fs, "log-stderr")
	err := fs.Parse(args)
	c.Visit(fs)
	return c, s, b, err
}

func TestLoad(t *testing.T) {
	cases := []struct {
		args  []string
		cfg   string
		level string
		std   bool
		human bool
		fail  bool
	}{
		{cfg: ``, level: "info", human: true},
		{cfg: `log-level = "debug"`, level: "debug", human: true},
		{args: []string{"--log-level", "warn"}, cfg: `log-level = "debug"`, level: "warn",
			human: true},
		{cfg: `log-stderr = true
human_numbers = false`, level: "info", std: true},
		{cfg: `/* comment */ log-level // comment
= "trace"`, level: "trace", human: true},
		{cfg: `human_numbers = "no"`, fail: true},
		{cfg: `log-stderr = "maybe"`, fail: true},
		{cfg: `unknown = 1`, fail: true},
		{cfg: `log-level`, fail: true},
	}

	for _, c := range cases {
		cfg, level, std, err := newConfig(c.args)
		if err != nil {
			t.Fatalf("Parse(%v) failed with %s", c.args, err)
		}
		err = cfg.Load([]byte(c.cfg))
		if c.fail {
			if err == nil {
				t.Errorf("Load(%q) did not fail", c.cfg)
			}
			continue
		}
		if err != nil {
			t.Errorf("Load(%q) failed with %s", c.cfg, err)
			continue
		}
		if *level != c.level || *std != c.std ||
			cfg.Flags.GetFlag(flags.HumanNumbers) != c.human {

			t.Errorf("Load(%q) got %s, %v, %v want %s, %v, %v", c.cfg, *level, *std,
				cfg.Flags.GetFlag(flags.HumanNumbers), c.level, c.std, c.human)
		}
	}
}
