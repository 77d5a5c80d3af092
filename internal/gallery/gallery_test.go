package gallery

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gerunddev/scrapfolio/internal/markup"
	"github.com/gerunddev/scrapfolio/internal/wiki"
)

var excluded = []string{"artwork", "About"}

func samplePages() []wiki.Page {
	return []wiki.Page{
		{Title: "artwork", Descriptions: []string{"[artwork] index"}},
		{Title: "About", Descriptions: []string{"[artwork] about me"}},
		{Title: "Spring", Descriptions: []string{"[Artwork] [oil]"}, Image: "https://scrapbox.io/files/a.png"},
		{Title: "Summer", Descriptions: []string{"sketch", "[artwork] [watercolor]"}, Image: "https://cdn.example.com/b.jpg"},
		{Title: "Autumn", Descriptions: []string{"[oil] study"}},
		{Title: "Winter", Descriptions: []string{"[artwork] [oil]"}},
	}
}

func titles(pages []wiki.Page) []string {
	var out []string
	for _, p := range pages {
		out = append(out, p.Title)
	}
	return out
}

func TestWorks(t *testing.T) {
	works := Works(samplePages(), "artwork", excluded)

	got := strings.Join(titles(works), ",")
	if got != "Spring,Summer,Winter" {
		t.Errorf("Works() = %s, want Spring,Summer,Winter", got)
	}
}

func TestWorksEmpty(t *testing.T) {
	if works := Works(nil, "artwork", excluded); len(works) != 0 {
		t.Errorf("Expected no works, got %v", titles(works))
	}
}

func TestRelated(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		tags     []string
		expected string
	}{
		{
			name:     "shared tag",
			current:  "Spring",
			tags:     []string{"oil"},
			expected: "Autumn,Winter",
		},
		{
			name:     "artwork tag ignored",
			current:  "Spring",
			tags:     []string{"artwork"},
			expected: "",
		},
		{
			name:     "case insensitive",
			current:  "Winter",
			tags:     []string{"Watercolor"},
			expected: "Summer",
		},
		{
			name:     "no tags",
			current:  "Spring",
			tags:     nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.Join(titles(Related(samplePages(), tt.current, tt.tags, excluded)), ",")
			if got != tt.expected {
				t.Errorf("Related(%q, %v) = %q, want %q", tt.current, tt.tags, got, tt.expected)
			}
		})
	}
}

func TestCards(t *testing.T) {
	links := markup.New("https://proxy.example", "gallery")
	cards := Cards(Works(samplePages(), "artwork", excluded), links)

	if len(cards) != 3 {
		t.Fatalf("Expected 3 cards, got %d", len(cards))
	}

	expected := []Card{
		{Title: "Spring", ImageURL: "https://proxy.example/files/a.png", Href: "viewer.html?page=Spring"},
		{Title: "Summer", ImageURL: "https://cdn.example.com/b.jpg", Href: "viewer.html?page=Summer"},
		{Title: "Winter", ImageURL: "", Href: "viewer.html?page=Winter"},
	}
	for i, want := range expected {
		if cards[i] != want {
			t.Errorf("Card %d = %+v, want %+v", i, cards[i], want)
		}
	}
}

func TestRenderGrid(t *testing.T) {
	cards := []Card{
		{Title: "Spring <b>", ImageURL: "https://proxy.example/files/a.png", Href: "viewer.html?page=Spring%20%3Cb%3E"},
		{Title: "Winter", Href: "viewer.html?page=Winter"},
	}

	var buf bytes.Buffer
	if err := RenderGrid(&buf, cards); err != nil {
		t.Fatalf("RenderGrid() failed: %v", err)
	}
	out := buf.String()

	if strings.Count(out, `class="work-card"`) != 2 {
		t.Errorf("Expected 2 cards, got %q", out)
	}
	if !strings.Contains(out, "<h3>Spring &lt;b&gt;</h3>") {
		t.Errorf("Expected escaped title, got %q", out)
	}
	if !strings.Contains(out, "a.png") {
		t.Errorf("Expected background image, got %q", out)
	}
	if !strings.Contains(out, "background-color: #f0f0f0;") {
		t.Errorf("Expected placeholder background, got %q", out)
	}
	if !strings.Contains(out, `href="viewer.html?page=Winter"`) {
		t.Errorf("Expected viewer link, got %q", out)
	}
}

func TestRenderGridEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderGrid(&buf, nil); err != nil {
		t.Fatalf("RenderGrid() failed: %v", err)
	}

	if strings.TrimSpace(buf.String()) != `<p class="loading">No works found.</p>` {
		t.Errorf("Unexpected empty grid: %q", buf.String())
	}
}
