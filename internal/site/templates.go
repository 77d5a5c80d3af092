package site

import "html/template"

// layoutData is what every page template receives
type layoutData struct {
	Title   string
	Project string
	Active  string
	Content template.HTML
}

var layoutTemplate = template.Must(template.New("layout").Parse(`<!DOCTYPE html>
<html lang="ja">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{if .Title}}{{.Title}} | {{end}}{{.Project}}</title>
  <link rel="stylesheet" href="style.css">
</head>
<body>
  <header class="site-header">
    <a href="index.html" class="site-title">{{.Project}}</a>
    <nav>
      <a href="index.html"{{if eq .Active "works"}} class="active"{{end}}>Works</a>
      <a href="about.html"{{if eq .Active "about"}} class="active"{{end}}>About</a>
    </nav>
  </header>
  <main>
{{.Content}}
  </main>
</body>
</html>
`))

var relatedTemplate = template.Must(template.New("related").Parse(`<section class="related-links">
  <h2>Related works</h2>
  <div class="works-grid">
{{.}}
  </div>
</section>`))

const stylesheet = `body { margin: 0; font-family: sans-serif; color: #222; }
.site-header { display: flex; justify-content: space-between; padding: 1rem 2rem; }
.site-header nav a { margin-left: 1rem; color: inherit; text-decoration: none; }
.site-header nav a.active { border-bottom: 2px solid #222; }
main { max-width: 960px; margin: 0 auto; padding: 1rem 2rem; }
.works-grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(220px, 1fr)); gap: 1rem; }
.work-card .card-image { aspect-ratio: 1; background-size: cover; background-position: center; }
.work-card .card-link { color: inherit; text-decoration: none; }
.loading { color: #888; }
.indent { margin-top: 0.25rem; }
.code-title { font-family: monospace; background: #eee; padding: 0.2rem 0.5rem; display: inline-block; }
.code-block { background: #f6f6f6; padding: 0.75rem; overflow-x: auto; }
.video-container { position: relative; padding-bottom: 56.25%; height: 0; }
.video-container iframe { position: absolute; top: 0; left: 0; width: 100%; height: 100%; }
.scrapbox-icon { height: 1.2em; vertical-align: middle; }
img { max-width: 100%; }
`
