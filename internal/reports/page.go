package reports

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghtml "github.com/yuin/goldmark/renderer/html"

	"taxdash/internal/fetchers"
)

// PageView carries everything the dashboard page renders besides the chart
// documents themselves, which are served per surface and embedded by name.
type PageView struct {
	// ChartNames lists the charts the page embeds, in display order
	ChartNames []string

	// SampleCharts are charts still showing placeholder data; the page
	// marks them so sample data is never mistaken for real numbers
	SampleCharts []string

	// Commentary is optional markdown produced by the insights client
	Commentary string

	Announcements []fetchers.Announcement
	GeneratedAt   time.Time

	// ChartPathPrefix is prepended to each chart name to form the iframe
	// source: "/charts/" on the live page, "charts/" inside a snapshot
	// folder (with a ".html" suffix added there)
	ChartPathPrefix string
	ChartPathSuffix string
}

// PageBuilder assembles the dashboard HTML page
type PageBuilder struct {
	markdown goldmark.Markdown
}

// NewPageBuilder creates a page builder with GFM markdown support
func NewPageBuilder() *PageBuilder {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			ghtml.WithHardWraps(),
		),
	)

	return &PageBuilder{markdown: md}
}

// MarkdownToHTML converts markdown commentary to HTML
func (b *PageBuilder) MarkdownToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := b.markdown.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), nil
}

// BuildPage renders the complete dashboard page
func (b *PageBuilder) BuildPage(view PageView) (string, error) {
	var page strings.Builder

	page.WriteString(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Filing Operations Dashboard</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0; background: #f4f6f9; color: #333; }
header { background: #2c3e50; color: #fff; padding: 16px 24px; }
header h1 { margin: 0; font-size: 20px; }
header .updated { font-size: 12px; color: #bdc3c7; }
.grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(460px, 1fr)); gap: 16px; padding: 16px 24px; }
.card { background: #fff; border-radius: 6px; box-shadow: 0 1px 3px rgba(0,0,0,0.12); padding: 8px; }
.card .sample-tag { font-size: 11px; color: #e67e22; padding: 2px 8px; }
.card iframe { width: 100%; height: 430px; border: 0; }
.panel { background: #fff; border-radius: 6px; box-shadow: 0 1px 3px rgba(0,0,0,0.12); margin: 0 24px 16px; padding: 12px 20px; }
.panel h2 { font-size: 15px; margin: 4px 0 8px; }
.panel ul { margin: 4px 0; padding-left: 20px; }
.panel .date { color: #7f8c8d; font-size: 12px; margin-left: 6px; }
</style>
</head>
<body>
`)

	page.WriteString(fmt.Sprintf(`<header><h1>Filing Operations Dashboard</h1>
<div class="updated">Updated %s</div></header>
`, view.GeneratedAt.UTC().Format("2006-01-02 15:04 MST")))

	page.WriteString(`<div class="grid">
`)
	sample := make(map[string]bool, len(view.SampleCharts))
	for _, name := range view.SampleCharts {
		sample[name] = true
	}
	for _, name := range view.ChartNames {
		tag := ""
		if sample[name] {
			tag = `<div class="sample-tag">sample data</div>`
		}
		src := view.ChartPathPrefix + name + view.ChartPathSuffix
		page.WriteString(fmt.Sprintf(`<div class="card">%s<iframe src="%s" title="%s"></iframe></div>
`, tag, html.EscapeString(src), html.EscapeString(name)))
	}
	page.WriteString(`</div>
`)

	if view.Commentary != "" {
		commentaryHTML, err := b.MarkdownToHTML(view.Commentary)
		if err != nil {
			return "", err
		}
		page.WriteString(fmt.Sprintf(`<div class="panel"><h2>Operations Commentary</h2>
%s</div>
`, commentaryHTML))
	}

	if len(view.Announcements) > 0 {
		page.WriteString(`<div class="panel"><h2>Filing Authority Notices</h2>
<ul>
`)
		for _, item := range view.Announcements {
			date := ""
			if !item.Published.IsZero() {
				date = fmt.Sprintf(`<span class="date">%s</span>`, item.Published.Format("Jan 2, 2006"))
			}
			page.WriteString(fmt.Sprintf(`<li><a href="%s" target="_blank">%s</a>%s</li>
`, html.EscapeString(item.Link), html.EscapeString(item.Title), date))
		}
		page.WriteString(`</ul>
</div>
`)
	}

	page.WriteString(`</body>
</html>
`)

	return page.String(), nil
}

// SnapshotFile is one file of a published dashboard snapshot
type SnapshotFile struct {
	Path string
	Data []byte
}

// BuildSnapshotFiles lays out a self-contained snapshot folder: the page,
// one chart document per surface, the raw payload and the mini trend PNG.
func (b *PageBuilder) BuildSnapshotFiles(view PageView, chartDocs map[string]string, payloadJSON, miniTrendPNG []byte) ([]SnapshotFile, error) {
	view.ChartPathPrefix = "charts/"
	view.ChartPathSuffix = ".html"

	page, err := b.BuildPage(view)
	if err != nil {
		return nil, err
	}

	files := []SnapshotFile{
		{Path: "index.html", Data: []byte(page)},
	}
	for _, name := range view.ChartNames {
		files = append(files, SnapshotFile{
			Path: "charts/" + name + ".html",
			Data: []byte(chartDocs[name]),
		})
	}
	if len(payloadJSON) > 0 {
		files = append(files, SnapshotFile{Path: "payload.json", Data: payloadJSON})
	}
	if len(miniTrendPNG) > 0 {
		files = append(files, SnapshotFile{Path: "activity_mini.png", Data: miniTrendPNG})
	}

	return files, nil
}
