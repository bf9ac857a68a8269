package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"taxdash/internal/config"
	"taxdash/internal/dashboard"
	"taxdash/internal/fetchers"
	"taxdash/internal/insights"
	"taxdash/internal/logger"
	"taxdash/internal/models"
	"taxdash/internal/render"
	"taxdash/internal/reports"
	"taxdash/internal/storage"
)

// surfaceWidth/Height are the default chart surface dimensions; the page
// iframes are sized to match.
const (
	surfaceWidth  = 820
	surfaceHeight = 410
)

// Server hosts the dashboard: it owns the render surfaces, the chart
// lifecycle and the delivery of summary payloads. Updates are serialized
// through a single mutex; the chart binder itself does no locking.
type Server struct {
	Config    *config.Config
	Dashboard *dashboard.Dashboard
	Surfaces  *render.SurfaceSet
	Storage   storage.StorageClient
	Insights  *insights.Client
	Announcer *fetchers.AnnouncementsFetcher

	pageBuilder *reports.PageBuilder
	log         *logger.Logger

	mu            sync.Mutex
	lastPayload   *models.SummaryPayload
	commentary    string
	announcements []fetchers.Announcement
	lastUpdated   time.Time
}

// NewServer creates a server instance for the given deployment mode
func NewServer(ctx context.Context, cfg *config.Config, deploymentMode storage.DeploymentMode) (*Server, error) {
	storageClient, err := storage.NewStorageClient(ctx, deploymentMode, cfg)
	if err != nil {
		return nil, err
	}

	surfaces := render.NewSurfaceSet()
	for _, name := range []string{
		dashboard.ChartActivityTrend,
		dashboard.ChartStatusBreakdown,
		dashboard.ChartTaskProgress,
		dashboard.ChartProcessingTime,
	} {
		surfaces.Add(name, surfaceWidth, surfaceHeight)
	}

	engine := render.NewEChartsEngine()
	dash := dashboard.New(engine, surfaces, dashboard.DefaultChartDefs(cfg.SampleDays))

	return &Server{
		Config:      cfg,
		Dashboard:   dash,
		Surfaces:    surfaces,
		Storage:     storageClient,
		Insights:    insights.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel),
		Announcer:   fetchers.NewAnnouncementsFetcher(cfg.RequestTimeout),
		pageBuilder: reports.NewPageBuilder(),
		log:         logger.GetGlobalLogger().WithComponent("server"),
	}, nil
}

// Mount creates and seeds every chart. The hosting application calls this
// once, after the surfaces exist; there is no load-delay workaround.
func (s *Server) Mount() error {
	if err := s.Dashboard.InitAll(); err != nil {
		return fmt.Errorf("failed to mount dashboard: %w", err)
	}
	return nil
}

// ApplySummary delivers one payload to the charts and publishes a snapshot.
// Safe to call from both the poll loop and the push handler: deliveries are
// serialized here.
func (s *Server) ApplySummary(ctx context.Context, payload *models.SummaryPayload) {
	if payload == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.Dashboard.UpdateAll(payload)
	s.lastPayload = payload
	s.lastUpdated = time.Now()

	if s.Insights != nil {
		commentary, err := s.Insights.GenerateCommentary(ctx, payload)
		if err != nil {
			s.log.Error("commentary generation failed", err)
		} else {
			s.commentary = commentary
		}
	}

	if err := s.publishSnapshot(ctx, payload); err != nil {
		s.log.Error("snapshot publish failed", err)
	}
}

// RefreshAnnouncements pulls the filing-authority feed, if configured
func (s *Server) RefreshAnnouncements(ctx context.Context) {
	if s.Config.AnnouncementsURL == "" {
		return
	}

	announcements, err := s.Announcer.Fetch(ctx, s.Config.AnnouncementsURL, 8)
	if err != nil {
		s.log.Error("announcements fetch failed", err)
		return
	}

	s.mu.Lock()
	s.announcements = announcements
	s.mu.Unlock()
}

// publishSnapshot writes a self-contained copy of the current dashboard to
// storage. Caller holds the mutex.
func (s *Server) publishSnapshot(ctx context.Context, payload *models.SummaryPayload) error {
	view := s.pageViewLocked()

	chartDocs := make(map[string]string, len(view.ChartNames))
	for _, name := range view.ChartNames {
		if surface, ok := s.Surfaces.Lookup(name); ok {
			chartDocs[name] = surface.HTML()
		}
	}

	payloadJSON := marshalPayload(payload)
	miniPNG := s.miniTrendLocked()

	files, err := s.pageBuilder.BuildSnapshotFiles(view, chartDocs, payloadJSON, miniPNG)
	if err != nil {
		return err
	}

	folder := storage.SnapshotFolderPath(s.lastUpdated)
	for _, file := range files {
		if err := s.Storage.StoreFile(ctx, folder+"/"+file.Path, file.Data); err != nil {
			return err
		}
	}

	s.log.Infof("published snapshot %s with %d files", folder, len(files))
	return nil
}

// miniTrendLocked renders the compact activity PNG for snapshots. Charts
// still on sample data are skipped; the PNG would suggest real history.
func (s *Server) miniTrendLocked() []byte {
	instance, ok := s.Dashboard.Registry().Get(dashboard.ChartActivityTrend)
	if !ok || !instance.HasRealData() {
		return nil
	}

	ds := instance.Dataset()
	if len(ds.Series) == 0 || len(ds.Series[0].Values) < 2 {
		return nil
	}

	png, err := render.MiniTrendPNG("Sessions", ds.Series[0].Values)
	if err != nil {
		s.log.Error("mini trend render failed", err)
		return nil
	}
	return png
}

// pageViewLocked assembles the view model for page rendering. Caller holds
// the mutex.
func (s *Server) pageViewLocked() reports.PageView {
	generatedAt := s.lastUpdated
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	return reports.PageView{
		ChartNames:      s.Dashboard.Registry().Names(),
		SampleCharts:    s.Dashboard.SampleCharts(),
		Commentary:      s.commentary,
		Announcements:   s.announcements,
		GeneratedAt:     generatedAt,
		ChartPathPrefix: "/charts/",
	}
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/api/summary", s.HandleSummary)
	mux.HandleFunc("/api/resize", s.HandleResize)
	mux.HandleFunc("/charts/", s.HandleChart)
	mux.HandleFunc("/snapshots", s.HandleListSnapshots)
	mux.HandleFunc("/files/", s.HandleFileProxy)
	mux.HandleFunc("/", s.HandleRoot)

	return mux
}

// Close tears the dashboard down and releases storage
func (s *Server) Close() error {
	s.Dashboard.DestroyAll()
	if s.Storage != nil {
		return s.Storage.Close()
	}
	return nil
}
