package markup

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gerunddev/scrapfolio/internal/util"
)

// rule is one inline substitution. Rules run in order over the whole line,
// so later rules see the output of earlier ones.
type rule struct {
	name    string
	re      *regexp.Regexp
	replace func(groups []string, refs *refSet) string
}

func (r rule) apply(line string, refs *refSet) string {
	return r.re.ReplaceAllStringFunc(line, func(match string) string {
		groups := r.re.FindStringSubmatch(match)
		if groups == nil {
			return match
		}
		return r.replace(groups, refs)
	})
}

var (
	headingRe  = regexp.MustCompile(`^\[\* (.+?)\]`)
	imageRe    = regexp.MustCompile(`\[(https?://[^\]]+\.(?:png|jpg|jpeg|gif|svg|webp))\]`)
	youtubeRe  = regexp.MustCompile(`\[https?://(?:www\.youtube\.com/watch\?v=|youtu\.be/)([a-zA-Z0-9_-]+)\]`)
	vimeoRe    = regexp.MustCompile(`\[https?://vimeo\.com/([0-9]+)\]`)
	bracketRe  = regexp.MustCompile(`\[([^\]]+)\]`)
	embedURLRe = regexp.MustCompile(`https?://[^\s\v\p{Z}\x{feff}]+`)
)

const iconSuffix = ".icon"

// inlineRules builds the substitution pipeline in precedence order:
// heading, wiki file image, image URL, YouTube, Vimeo, then the catch-all.
func (c *Converter) inlineRules() []rule {
	fileImageRe := regexp.MustCompile(`\[(https?://` + regexp.QuoteMeta(c.fileHost) + `/files/[^\]]+)\]`)

	return []rule{
		{
			name: "heading",
			re:   headingRe,
			replace: func(g []string, _ *refSet) string {
				return "<h2>" + g[1] + "</h2>"
			},
		},
		{
			name: "file-image",
			re:   fileImageRe,
			replace: func(g []string, _ *refSet) string {
				proxied := strings.Replace(g[1], "https://"+c.fileHost, c.proxyBase, 1)
				return fmt.Sprintf(`<img src="%s" alt="image">`, proxied)
			},
		},
		{
			name: "image",
			re:   imageRe,
			replace: func(g []string, _ *refSet) string {
				return fmt.Sprintf(`<img src="%s">`, g[1])
			},
		},
		{
			name: "youtube",
			re:   youtubeRe,
			replace: func(g []string, _ *refSet) string {
				return fmt.Sprintf(`<div class="video-container"><iframe src="https://www.youtube.com/embed/%s" frameborder="0" allowfullscreen></iframe></div>`, g[1])
			},
		},
		{
			name: "vimeo",
			re:   vimeoRe,
			replace: func(g []string, _ *refSet) string {
				return fmt.Sprintf(`<div class="video-container"><iframe src="https://player.vimeo.com/video/%s" frameborder="0" allow="autoplay; fullscreen; picture-in-picture" allowfullscreen></iframe></div>`, g[1])
			},
		},
		{
			name: "bracket",
			re:   bracketRe,
			replace: func(g []string, refs *refSet) string {
				return c.bracket(g[1], refs)
			},
		},
	}
}

// bracket renders a span no earlier rule claimed: an external link when it
// carries a URL, an icon when it ends in .icon, otherwise an internal reference.
func (c *Converter) bracket(content string, refs *refSet) string {
	if url := embedURLRe.FindString(content); url != "" {
		label := strings.TrimFunc(strings.Replace(content, url, "", 1), isSpace)
		if label == "" {
			label = url
		}
		return fmt.Sprintf(`<a href="%s" target="_blank" class="external-link">%s</a>`, url, label)
	}

	if strings.HasSuffix(content, iconSuffix) {
		name := strings.Replace(content, iconSuffix, "", 1)
		return fmt.Sprintf(`<img src="%s" class="scrapbox-icon">`, c.IconURL(name))
	}

	refs.add(content)
	return fmt.Sprintf(`<a href="%s" class="scrapbox-tag">%s</a>`, c.ViewerURL(content), content)
}

// ProxyURL routes a URL on the wiki host through the proxy. URLs on other
// hosts are returned unchanged.
func (c *Converter) ProxyURL(url string) string {
	if rest, ok := strings.CutPrefix(url, "https://"+c.fileHost); ok {
		return c.proxyBase + rest
	}
	return url
}

// IconURL returns the proxy endpoint serving the icon of the named page
func (c *Converter) IconURL(name string) string {
	return c.proxyBase + "/api/pages/" + c.project + "/" + util.EncodeURIComponent(name) + "/icon"
}

// ViewerURL returns the internal viewer link for a page title
func (c *Converter) ViewerURL(title string) string {
	return c.viewerPath + "?page=" + util.EncodeURIComponent(title)
}
