package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gerunddev/scrapfolio/internal/gallery"
	"github.com/gerunddev/scrapfolio/internal/logger"
	"github.com/gerunddev/scrapfolio/internal/markup"
	"github.com/gerunddev/scrapfolio/internal/wiki"
	"github.com/google/uuid"
)

// Placeholders shown when the wiki cannot be reached
const (
	NoWorksMessage      = "No works found."
	PageNotFoundMessage = "Page not found."
	AboutMissingMessage = "About content not found."
)

// AboutTitle is the page holding the about text
const AboutTitle = "About"

// Options controls what the server lists
type Options struct {
	Project        string
	ListingLimit   int
	ArtworkTag     string
	ExcludedTitles []string
}

// Server renders the gallery from the wiki
type Server struct {
	fetcher   wiki.Fetcher
	converter *markup.Converter
	opts      Options
	log       *logger.Logger
}

// NewServer creates a server reading pages through fetcher
func NewServer(fetcher wiki.Fetcher, converter *markup.Converter, opts Options, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}
	return &Server{
		fetcher:   fetcher,
		converter: converter,
		opts:      opts,
		log:       log,
	}
}

// Handler returns the HTTP handler serving every route
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleWorks)
	mux.HandleFunc("GET /index.html", s.handleWorks)
	mux.HandleFunc("GET /viewer.html", s.handleViewer)
	mux.HandleFunc("GET /about.html", s.handleAbout)
	mux.HandleFunc("GET /style.css", s.handleStylesheet)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})
	return s.withRequestLog(mux)
}

// Run serves on addr until ctx is canceled
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

func (s *Server) handleWorks(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	var cards []gallery.Card

	pages, err := s.fetcher.Pages(r.Context(), s.opts.ListingLimit)
	if err != nil {
		s.log.Error("failed to load works", "error", err)
		status = http.StatusBadGateway
	} else {
		works := gallery.Works(pages, s.opts.ArtworkTag, s.opts.ExcludedTitles)
		s.log.WorksListed(len(pages), len(works))
		cards = gallery.Cards(works, s.converter)
	}

	var grid bytes.Buffer
	grid.WriteString(`<div id="works-grid" class="works-grid">` + "\n")
	if err := gallery.RenderGrid(&grid, cards); err != nil {
		s.log.Error("failed to render works grid", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	grid.WriteString("</div>")

	s.writePage(w, status, layoutData{
		Active:  "works",
		Content: template.HTML(grid.String()),
	})
}

func (s *Server) handleViewer(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("page")
	if strings.TrimSpace(title) == "" {
		http.Error(w, "missing page parameter", http.StatusBadRequest)
		return
	}

	text, err := s.fetcher.Text(r.Context(), title)
	if err != nil {
		s.log.Error("failed to load page", "title", title, "error", err)
		s.writeMessage(w, fetchStatus(err), title, PageNotFoundMessage)
		return
	}

	doc := s.converter.Render(text)
	s.log.PageRendered(doc.Title, len(doc.References))

	content := doc.HTML
	if related := s.relatedGrid(r.Context(), title, doc.References); related != "" {
		content += "\n" + related
	}

	s.writePage(w, http.StatusOK, layoutData{
		Title:   doc.Title,
		Content: template.HTML(content),
	})
}

// relatedGrid lists works sharing a tag with the page. Failures only drop
// the section.
func (s *Server) relatedGrid(ctx context.Context, title string, tags []string) string {
	if len(tags) == 0 {
		return ""
	}

	pages, err := s.fetcher.Pages(ctx, s.opts.ListingLimit)
	if err != nil {
		s.log.Warn("failed to load related works", "title", title, "error", err)
		return ""
	}

	related := gallery.Related(pages, title, tags, s.opts.ExcludedTitles)
	if len(related) == 0 {
		return ""
	}

	var grid, section bytes.Buffer
	if err := gallery.RenderGrid(&grid, gallery.Cards(related, s.converter)); err != nil {
		s.log.Warn("failed to render related works", "title", title, "error", err)
		return ""
	}
	if err := relatedTemplate.Execute(&section, template.HTML(grid.String())); err != nil {
		s.log.Warn("failed to render related works", "title", title, "error", err)
		return ""
	}
	return section.String()
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	text, err := s.fetcher.Text(r.Context(), AboutTitle)
	if err != nil {
		s.log.Error("failed to load about page", "error", err)
		s.writeMessage(w, fetchStatus(err), AboutTitle, AboutMissingMessage)
		return
	}

	s.writePage(w, http.StatusOK, layoutData{
		Title:   AboutTitle,
		Active:  "about",
		Content: template.HTML(s.converter.Convert(AboutBody(text))),
	})
}

func (s *Server) handleStylesheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Write([]byte(stylesheet))
}

// AboutBody drops the page title so the first body line becomes the heading
func AboutBody(text string) string {
	_, body, _ := strings.Cut(text, "\n")
	return body
}

func (s *Server) writeMessage(w http.ResponseWriter, status int, title, message string) {
	s.writePage(w, status, layoutData{
		Title:   title,
		Content: template.HTML(`<p class="loading">` + template.HTMLEscapeString(message) + `</p>`),
	})
}

func (s *Server) writePage(w http.ResponseWriter, status int, data layoutData) {
	data.Project = s.opts.Project

	var buf bytes.Buffer
	if err := layoutTemplate.Execute(&buf, data); err != nil {
		s.log.Error("failed to render layout", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func fetchStatus(err error) int {
	if errors.Is(err, wiki.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

// statusRecorder remembers the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withRequestLog tags each request with an ID and logs it once served
func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.log.RequestServed(requestID, r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
