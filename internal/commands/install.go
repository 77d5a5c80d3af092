package commands

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/gerunddev/scrapfolio/internal/styles"
)

const serviceName = "scrapfolio"

// service describes the auto-start unit for one platform
type service struct {
	Path    string
	Content string
	Enable  []string
	Disable [][]string
}

// serviceFor builds the launchd or systemd unit that runs the preview server
func serviceFor(goos, home, execPath, addr string) (*service, error) {
	switch goos {
	case "darwin":
		path := filepath.Join(home, "Library", "LaunchAgents", "com."+serviceName+".plist")
		content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>com.%s</string>
	<key>ProgramArguments</key>
	<array>
		<string>%s</string>
		<string>serve</string>
		<string>--addr</string>
		<string>%s</string>
	</array>
	<key>RunAtLoad</key>
	<true/>
	<key>KeepAlive</key>
	<true/>
	<key>StandardOutPath</key>
	<string>/tmp/%s.out.log</string>
	<key>StandardErrorPath</key>
	<string>/tmp/%s.err.log</string>
</dict>
</plist>`, serviceName, execPath, addr, serviceName, serviceName)
		return &service{
			Path:    path,
			Content: content,
			Enable:  []string{"launchctl load " + path},
			Disable: [][]string{{"launchctl", "unload", path}},
		}, nil

	case "linux":
		unit := serviceName + ".service"
		path := filepath.Join(home, ".config", "systemd", "user", unit)
		content := fmt.Sprintf(`[Unit]
Description=Scrapfolio - gallery preview server
After=network-online.target

[Service]
Type=simple
ExecStart=%s serve --addr %s
Restart=always
RestartSec=10

[Install]
WantedBy=default.target`, execPath, addr)
		return &service{
			Path:    path,
			Content: content,
			Enable: []string{
				"systemctl --user daemon-reload",
				"systemctl --user enable " + unit,
				"systemctl --user start " + unit,
			},
			Disable: [][]string{
				{"systemctl", "--user", "stop", unit},
				{"systemctl", "--user", "disable", unit},
			},
		}, nil

	default:
		return nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}

func currentService() *service {
	home, err := os.UserHomeDir()
	if err != nil {
		fail("Failed to get home directory: " + err.Error())
	}

	execPath, err := os.Executable()
	if err != nil {
		fail("Failed to get executable path: " + err.Error())
	}

	svc, err := serviceFor(runtime.GOOS, home, execPath, loadConfig().Addr)
	if err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ " + err.Error()))
		fmt.Println("Supported platforms: macOS (darwin), Linux")
		os.Exit(1)
	}
	return svc
}

// Install writes the service file that starts the server at login
func Install() {
	fmt.Println(styles.TitleStyle.Render("Scrapfolio Install"))
	fmt.Println()

	svc := currentService()

	if err := os.MkdirAll(filepath.Dir(svc.Path), 0755); err != nil {
		fail("Failed to create service directory: " + err.Error())
	}
	if err := os.WriteFile(svc.Path, []byte(svc.Content), 0644); err != nil {
		fail("Failed to write service file: " + err.Error())
	}

	fmt.Println(styles.SuccessStyle.Render("✓ Service file created: " + svc.Path))
	fmt.Println()
	fmt.Println("To enable the service:")
	for _, cmd := range svc.Enable {
		fmt.Println(styles.DimStyle.Render("  " + cmd))
	}
}

// Uninstall stops the service and removes its file
func Uninstall() {
	fmt.Println(styles.TitleStyle.Render("Scrapfolio Uninstall"))
	fmt.Println()

	svc := currentService()

	if _, err := os.Stat(svc.Path); os.IsNotExist(err) {
		fmt.Println(styles.WarningStyle.Render("⚠ Service file not found: " + svc.Path))
		fmt.Println("Nothing to uninstall.")
		return
	}

	fmt.Println("Attempting to stop service...")
	for _, args := range svc.Disable {
		if err := exec.Command(args[0], args[1:]...).Run(); err != nil {
			fmt.Println(styles.WarningStyle.Render("⚠ " + args[len(args)-2] + " failed (service may not be loaded): " + err.Error()))
		}
	}

	if err := os.Remove(svc.Path); err != nil {
		fail("Failed to remove service file: " + err.Error())
	}

	fmt.Println(styles.SuccessStyle.Render("✓ Service file removed: " + svc.Path))
	fmt.Println(styles.SuccessStyle.Render("✓ Scrapfolio has been uninstalled"))
}
