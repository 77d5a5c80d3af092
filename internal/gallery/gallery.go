package gallery

import (
	"html/template"
	"io"
	"strings"

	"github.com/gerunddev/scrapfolio/internal/wiki"
)

// Card is one tile of the works grid
type Card struct {
	Title    string
	ImageURL string
	Href     string
}

// Linker builds the URLs a card needs
type Linker interface {
	ProxyURL(url string) string
	ViewerURL(title string) string
}

// Works keeps the pages tagged with tag, skipping excluded titles
func Works(pages []wiki.Page, tag string, excluded []string) []wiki.Page {
	marker := tagMarker(tag)

	var works []wiki.Page
	for _, p := range pages {
		if isExcluded(p.Title, excluded) {
			continue
		}
		if strings.Contains(joinedDescriptions(p), marker) {
			works = append(works, p)
		}
	}
	return works
}

// Related returns the pages other than current that carry at least one of
// tags. Tags naming an excluded title (the artwork tag itself, About) are
// ignored since every work shares them.
func Related(pages []wiki.Page, current string, tags []string, excluded []string) []wiki.Page {
	var markers []string
	for _, tag := range tags {
		if tag == current || isExcluded(tag, excluded) {
			continue
		}
		markers = append(markers, tagMarker(tag))
	}
	if len(markers) == 0 {
		return nil
	}

	var related []wiki.Page
	for _, p := range pages {
		if p.Title == current || isExcluded(p.Title, excluded) {
			continue
		}
		desc := joinedDescriptions(p)
		for _, m := range markers {
			if strings.Contains(desc, m) {
				related = append(related, p)
				break
			}
		}
	}
	return related
}

// Cards turns pages into grid cards. Wiki-hosted images are routed through
// the proxy.
func Cards(pages []wiki.Page, links Linker) []Card {
	cards := make([]Card, 0, len(pages))
	for _, p := range pages {
		cards = append(cards, Card{
			Title:    p.Title,
			ImageURL: links.ProxyURL(p.Image),
			Href:     links.ViewerURL(p.Title),
		})
	}
	return cards
}

var gridTemplate = template.Must(template.New("grid").Parse(`{{range .}}<div class="work-card">
  <a href="{{.Href}}" class="card-link">
    {{if .ImageURL}}<div class="card-image" style="background-image: url('{{.ImageURL}}');"></div>{{else}}<div class="card-image" style="background-color: #f0f0f0;"></div>{{end}}
    <div class="card-info">
      <h3>{{.Title}}</h3>
    </div>
  </a>
</div>
{{else}}<p class="loading">No works found.</p>
{{end}}`))

// RenderGrid writes the card grid as HTML
func RenderGrid(w io.Writer, cards []Card) error {
	return gridTemplate.Execute(w, cards)
}

func tagMarker(tag string) string {
	return "[" + strings.ToLower(tag) + "]"
}

func joinedDescriptions(p wiki.Page) string {
	return strings.ToLower(strings.Join(p.Descriptions, " "))
}

func isExcluded(title string, excluded []string) bool {
	for _, e := range excluded {
		if strings.EqualFold(title, e) {
			return true
		}
	}
	return false
}
