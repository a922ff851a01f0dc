package config

import (
	"fmt"
	"io/ioutil"

	"github.com/hashicorp/hcl"
	"github.com/spf13/pflag"

	"github.com/leftmike/colfilter/flags"
)

// Config connects a config file to command line flags: a value in the file is used only if
// the flag was not set on the command line.
type Config struct {
	vars  map[string]*pflag.Flag
	used  map[string]struct{}
	Flags flags.Flags
}

func NewConfig() *Config {
	return &Config{
		vars:  map[string]*pflag.Flag{},
		used:  map[string]struct{}{},
		Flags: flags.Default(),
	}
}

// Var makes the flag named nam in fs settable from a config file.
func (c *Config) Var(fs *pflag.FlagSet, nam string) {
	flg := fs.Lookup(nam)
	if flg == nil {
		panic(fmt.Sprintf("config: no such flag: %s", nam))
	}
	c.vars[nam] = flg
}

// Visit records the flags set on the command line.
func (c *Config) Visit(fs *pflag.FlagSet) {
	fs.Visit(
		func(flg *pflag.Flag) {
			c.used[flg.Name] = struct{}{}
		})
}

func (c *Config) LoadFile(configFile string) error {
	b, err := ioutil.ReadFile(configFile)
	if err != nil {
		return err
	}
	return c.Load(b)
}

func (c *Config) Load(b []byte) error {
	var cfg map[string]interface{}

	err := hcl.Decode(&cfg, string(b))
	if err != nil {
		return err
	}

	for name, val := range cfg {
		if flg, ok := c.vars[name]; ok {
			if _, ok := c.used[flg.Name]; ok {
				continue
			}
			err := flg.Value.Set(fmt.Sprintf("%v", val))
			if err != nil {
				return fmt.Errorf("%s: %s", name, err)
			}
		} else if f, ok := flags.LookupFlag(name); ok {
			b, ok := val.(bool)
			if !ok {
				return fmt.Errorf("%s: expected boolean value; got %v", name, val)
			}
			c.Flags.SetFlag(f, b)
		} else {
			return fmt.Errorf("%s is not a config variable", name)
		}
	}

	return nil
}
