package commands

import (
	"fmt"
	"os"

	"github.com/gerunddev/scrapfolio/internal/config"
	"github.com/gerunddev/scrapfolio/internal/styles"
)

// Init writes the default configuration unless a config file already exists
func Init() {
	path := config.ConfigPath()
	if _, err := os.Stat(path); err == nil {
		fmt.Println(styles.WarningStyle.Render("⚠ Config already exists: " + path))
		return
	}

	if err := config.DefaultConfig().Save(); err != nil {
		fail("Failed to write config: " + err.Error())
	}

	fmt.Println(styles.SuccessStyle.Render("✓ Config written: " + path))
	fmt.Println(styles.DimStyle.Render("  Edit proxy_base and project to point at your wiki"))
}
