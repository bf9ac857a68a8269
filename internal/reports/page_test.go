package reports

import (
	"strings"
	"testing"
	"time"

	"taxdash/internal/fetchers"
)

func testView() PageView {
	return PageView{
		ChartNames:      []string{"activity-trend", "status-breakdown"},
		SampleCharts:    []string{"status-breakdown"},
		GeneratedAt:     time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC),
		ChartPathPrefix: "/charts/",
	}
}

func TestBuildPage(t *testing.T) {
	builder := NewPageBuilder()

	page, err := builder.BuildPage(testView())
	if err != nil {
		t.Fatalf("BuildPage failed: %v", err)
	}

	if !strings.Contains(page, `src="/charts/activity-trend"`) {
		t.Error("Page missing activity-trend iframe")
	}
	if !strings.Contains(page, `src="/charts/status-breakdown"`) {
		t.Error("Page missing status-breakdown iframe")
	}
	if !strings.Contains(page, "sample data") {
		t.Error("Page should tag charts still on sample data")
	}
	if !strings.Contains(page, "2026-08-29 10:00 UTC") {
		t.Error("Page missing generated-at stamp")
	}
}

func TestBuildPageWithCommentaryAndNotices(t *testing.T) {
	builder := NewPageBuilder()

	view := testView()
	view.Commentary = "- Failure rate **doubled** since yesterday"
	view.Announcements = []fetchers.Announcement{
		{
			Title:     "E-file maintenance <tonight>",
			Link:      "https://example.gov/notices/1",
			Published: time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
		},
	}

	page, err := builder.BuildPage(view)
	if err != nil {
		t.Fatalf("BuildPage failed: %v", err)
	}

	if !strings.Contains(page, "<strong>doubled</strong>") {
		t.Error("Markdown commentary not converted to HTML")
	}
	if !strings.Contains(page, "E-file maintenance &lt;tonight&gt;") {
		t.Error("Announcement title should be HTML escaped")
	}
	if !strings.Contains(page, "Aug 28, 2026") {
		t.Error("Announcement date missing")
	}
}

func TestMarkdownToHTML(t *testing.T) {
	builder := NewPageBuilder()

	out, err := builder.MarkdownToHTML("# Heading\n\n| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatalf("MarkdownToHTML failed: %v", err)
	}
	if !strings.Contains(out, "<h1") {
		t.Error("Heading not rendered")
	}
	if !strings.Contains(out, "<table>") {
		t.Error("GFM table not rendered")
	}
}

func TestBuildSnapshotFiles(t *testing.T) {
	builder := NewPageBuilder()

	chartDocs := map[string]string{
		"activity-trend":   "<html>chart A</html>",
		"status-breakdown": "<html>chart B</html>",
	}
	files, err := builder.BuildSnapshotFiles(testView(), chartDocs, []byte(`{"sessions":{}}`), []byte{0x89, 'P', 'N', 'G'})
	if err != nil {
		t.Fatalf("BuildSnapshotFiles failed: %v", err)
	}

	paths := make(map[string][]byte, len(files))
	for _, f := range files {
		paths[f.Path] = f.Data
	}

	for _, want := range []string{"index.html", "charts/activity-trend.html", "charts/status-breakdown.html", "payload.json", "activity_mini.png"} {
		if _, ok := paths[want]; !ok {
			t.Errorf("Snapshot missing %s", want)
		}
	}

	// Snapshot page must reference the relative chart paths
	if !strings.Contains(string(paths["index.html"]), `src="charts/activity-trend.html"`) {
		t.Error("Snapshot page should embed relative chart documents")
	}
	if string(paths["charts/activity-trend.html"]) != "<html>chart A</html>" {
		t.Error("Chart document content mismatch")
	}
}
