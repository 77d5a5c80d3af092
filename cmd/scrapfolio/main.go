package main

import (
	"fmt"
	"os"

	"github.com/gerunddev/scrapfolio/internal/commands"
	"github.com/gerunddev/scrapfolio/internal/config"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "init":
		commands.Init()
	case "serve":
		commands.Serve(os.Args[2:])
	case "start":
		commands.Start(os.Args[2:])
	case "stop":
		commands.Stop()
	case "dashboard", "watch":
		commands.Dashboard()
	case "render":
		commands.Render(os.Args[2:])
	case "page":
		commands.Page(os.Args[2:])
	case "works", "browse":
		commands.Works()
	case "diff":
		commands.Diff(os.Args[2:])
	case "install":
		commands.Install()
	case "uninstall":
		commands.Uninstall()
	case "version", "-v", "--version":
		fmt.Printf("scrapfolio v%s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	usage := fmt.Sprintf(`scrapfolio - Gallery site rendered from a Scrapbox project

Usage:
  scrapfolio <command> [options]

Commands:
  init        Write the default config file
  serve       Run the preview server in the foreground
  start       Start the preview server in the background
  stop        Stop the background server
  dashboard   Live server status dashboard
  render      Convert a local page file (or - for stdin) to HTML
  page        Fetch a page through the proxy and print its HTML
  works       Browse works in the terminal
  diff        Diff a local draft against the live page
  install     Generate a service file that starts the server at login
  uninstall   Remove the service file
  version     Show version information
  help        Show this help message

Examples:
  scrapfolio serve --addr 127.0.0.1:9000
  scrapfolio start
  scrapfolio stop
  scrapfolio render page.txt
  cat page.txt | scrapfolio render - --refs
  scrapfolio page "Spring Show"
  scrapfolio works
  scrapfolio diff draft.txt "Spring Show" --plain
  scrapfolio install

Configuration:
  Config file: %s
  PID file:    %s
`, config.ConfigPath(), config.PIDFilePath())
	fmt.Print(usage)
}
