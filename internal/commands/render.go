package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gerunddev/scrapfolio/internal/diff"
	"github.com/gerunddev/scrapfolio/internal/logger"
	"github.com/gerunddev/scrapfolio/internal/styles"
	"github.com/gerunddev/scrapfolio/internal/wiki"
)

// Render converts a local wiki text file, or stdin for "-", to HTML
func Render(args []string) {
	files := positional(args)
	if len(files) != 1 {
		fail("Usage: scrapfolio render <file|->")
	}

	text, err := readSource(files[0], os.Stdin)
	if err != nil {
		fail(err.Error())
	}

	cfg := loadConfig()
	doc := newConverter(cfg).Render(text)
	fmt.Println(doc.HTML)

	if hasFlag(args, "--refs") {
		for _, ref := range doc.References {
			fmt.Fprintln(os.Stderr, styles.DimStyle.Render("ref: "+ref))
		}
	}
}

// Page fetches a page through the proxy and prints its HTML
func Page(args []string) {
	titles := positional(args)
	if len(titles) != 1 {
		fail("Usage: scrapfolio page <title>")
	}

	cfg := loadConfig()
	log := logger.NewWithLevel(os.Stderr, logger.ParseLevel(cfg.LogLevel))

	text, err := newClient(cfg, log).Text(context.Background(), titles[0])
	if errors.Is(err, wiki.ErrNotFound) {
		fail(fmt.Sprintf("Page %q not found", titles[0]))
	}
	if err != nil {
		fail("Failed to fetch page: " + err.Error())
	}

	doc := newConverter(cfg).Render(text)
	log.PageRendered(doc.Title, len(doc.References))
	fmt.Println(doc.HTML)
}

// Diff compares a local draft's HTML with the live page's HTML
func Diff(args []string) {
	rest := positional(args)
	if len(rest) != 2 {
		fail("Usage: scrapfolio diff <file> <title> [--plain]")
	}
	draftPath, title := rest[0], rest[1]

	format := diff.FormatTerminal
	if hasFlag(args, "--plain") {
		format = diff.FormatPlain
	}

	cfg := loadConfig()
	log := logger.NewWithLevel(os.Stderr, logger.ParseLevel(cfg.LogLevel))

	live, err := newClient(cfg, log).Text(context.Background(), title)
	if err != nil && !errors.Is(err, wiki.ErrNotFound) {
		fail("Failed to fetch page: " + err.Error())
	}
	if errors.Is(err, wiki.ErrNotFound) {
		fmt.Fprintln(os.Stderr, styles.WarningStyle.Render(fmt.Sprintf("⚠ Page %q not found, diffing against an empty page", title)))
		live = title
	}

	out, err := diff.Generate(newConverter(cfg), draftPath, live, title, format)
	if err != nil {
		fail(err.Error())
	}
	if out == "" {
		fmt.Println(styles.SuccessStyle.Render("✓ No differences"))
		return
	}
	fmt.Print(out)
}

// readSource reads path, or stdin when path is "-"
func readSource(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
