package commands

import (
	"fmt"
	"os"

	"github.com/gerunddev/scrapfolio/internal/config"
	"github.com/gerunddev/scrapfolio/internal/logger"
	"github.com/gerunddev/scrapfolio/internal/markup"
	"github.com/gerunddev/scrapfolio/internal/styles"
	"github.com/gerunddev/scrapfolio/internal/wiki"
)

// fail prints a styled error and exits
func fail(msg string) {
	fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("✗ "+msg))
	os.Exit(1)
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fail("Error loading config: " + err.Error())
	}
	return cfg
}

func newConverter(cfg *config.Config) *markup.Converter {
	return markup.New(cfg.ProxyBase, cfg.Project, markup.WithFileHost(cfg.FileHost))
}

func newClient(cfg *config.Config, log *logger.Logger) *wiki.Client {
	return wiki.NewClient(cfg.ProxyBase, cfg.Project,
		wiki.WithTimeout(cfg.RequestTimeout),
		wiki.WithLogger(log))
}

// flagValue returns the value following name in args
func flagValue(args []string, name string) string {
	for i, arg := range args {
		if arg == name && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func hasFlag(args []string, name string) bool {
	for _, arg := range args {
		if arg == name {
			return true
		}
	}
	return false
}

// positional drops flags and their values from args
func positional(args []string, valued ...string) []string {
	var out []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if len(arg) > 1 && arg[0] == '-' {
			for _, v := range valued {
				if arg == v {
					i++
					break
				}
			}
			continue
		}
		out = append(out, arg)
	}
	return out
}
