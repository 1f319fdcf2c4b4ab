package scheduler

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"ChartPulse/internal/chart"
	"ChartPulse/internal/model"
	"ChartPulse/internal/notifier"
	"ChartPulse/internal/recorder"

	"github.com/robfig/cron/v3"
)

// Scheduler refreshes tracked asset charts on a cron schedule, records
// snapshots, and raises alerts on large moves.
type Scheduler struct {
	Cron        *cron.Cron
	Registry    *chart.Registry
	Assets      []model.AssetQuery
	Notifier    notifier.Notifier
	Recorder    recorder.Recorder
	MovePercent float64
	FetcherName string
	Ctx         context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, reg *chart.Registry, assets []model.AssetQuery, n notifier.Notifier, rec recorder.Recorder, movePercent float64, fetcherName string) *Scheduler {
	return &Scheduler{
		Cron:        cron.New(cron.WithSeconds()),
		Registry:    reg,
		Assets:      assets,
		Notifier:    n,
		Recorder:    rec,
		MovePercent: movePercent,
		FetcherName: fetcherName,
		Ctx:         ctx,
	}
}

// Register registers the refresh task.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunRefreshNow executes the refresh task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	log.Println("[INFO] running chart refresh")
	for _, a := range s.Assets {
		s.refreshAsset(a)
	}
}

func (s *Scheduler) refreshAsset(a model.AssetQuery) {
	p := s.Registry.Get(a.Asset, a.Class)

	start := time.Now()
	data, err := p.Refresh(s.Ctx, a.Asset, a.Class)
	evt := &recorder.FetchEvent{
		Asset:      a.Asset,
		Class:      a.Class,
		Source:     s.FetcherName,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		evt.Err = err.Error()
		log.Printf("[WARN] refresh %s: %v", a.Asset, err)
	} else if data != nil {
		evt.Points = len(data.Series)
	}
	if recErr := s.Recorder.RecordFetch(evt); recErr != nil {
		log.Printf("[ERROR] record fetch event: %v", recErr)
	}
	if err != nil || data == nil {
		return
	}

	if recErr := s.Recorder.RecordSnapshot(&recorder.Snapshot{Data: data}); recErr != nil {
		log.Printf("[ERROR] record snapshot: %v", recErr)
	}

	if s.MovePercent > 0 && math.Abs(data.Stats.ChangePercent) >= s.MovePercent {
		s.trySend(notifier.FormatMoveAlert(data, s.MovePercent))
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(strings.ToLower(command))
	if len(fields) == 0 {
		return helpText
	}
	switch fields[0] {
	case "/chart":
		if len(fields) < 2 {
			return "Usage: /chart &lt;asset&gt; [crypto|forex]"
		}
		asset := fields[1]
		class := model.ClassCrypto
		if len(fields) > 2 {
			class = model.ParseAssetClass(fields[2])
		}
		return s.chartReply(asset, class)
	case "/assets":
		return notifier.FormatAssetList(s.Assets)
	case "/refresh":
		go s.refreshTask()
		return "Refresh started."
	default:
		return helpText
	}
}

func (s *Scheduler) chartReply(asset string, class model.AssetClass) string {
	p := s.Registry.Get(asset, class)

	// Serve from the cached series when a scheduled refresh already
	// populated it; otherwise fetch now.
	if data, ok := p.Chart(s.Ctx, chart.Request{Asset: asset, Class: class}); ok {
		return notifier.FormatChartSummary(data)
	}
	data, err := p.Refresh(s.Ctx, asset, class)
	if err != nil || data == nil {
		return fmt.Sprintf("No data for %s", asset)
	}
	return notifier.FormatChartSummary(data)
}

const helpText = "Available commands:\n• /chart &lt;asset&gt; [crypto|forex]\n• /assets\n• /refresh"

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
