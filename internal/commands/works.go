package commands

import (
	"context"
	"regexp"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/scrapfolio/internal/diff"
	"github.com/gerunddev/scrapfolio/internal/gallery"
	"github.com/gerunddev/scrapfolio/internal/logger"
	"github.com/gerunddev/scrapfolio/internal/tui"
)

var tagRe = regexp.MustCompile(`\[[^\]]+\]`)

// Works opens the terminal browser of works
func Works() {
	cfg := loadConfig()
	client := newClient(cfg, logger.Discard())
	conv := newConverter(cfg)

	load := func() ([]tui.WorkRow, error) {
		pages, err := client.Pages(context.Background(), cfg.ListingLimit)
		if err != nil {
			return nil, err
		}
		works := gallery.Works(pages, cfg.ArtworkTag, cfg.ExcludedTitles)

		rows := make([]tui.WorkRow, 0, len(works))
		for _, p := range works {
			var tags []string
			for _, d := range p.Descriptions {
				tags = append(tags, tagRe.FindAllString(d, -1)...)
			}
			rows = append(rows, tui.WorkRow{
				Title: p.Title,
				Tags:  tags,
				Image: conv.ProxyURL(p.Image),
			})
		}
		return rows, nil
	}

	preview := func(title string) (string, error) {
		text, err := client.Text(context.Background(), title)
		if err != nil {
			return "", err
		}
		return diff.SplitBlocks(conv.Convert(text)), nil
	}

	p := tea.NewProgram(tui.InitWorksModel(load, preview), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fail("Error: " + err.Error())
	}
}
