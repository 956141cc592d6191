package engine

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/nightpulse/nightpulse-backend-go/internal/config"
	"github.com/nightpulse/nightpulse-backend-go/internal/models"
	"github.com/nightpulse/nightpulse-backend-go/internal/service"
)

// Refresher owns the two background refresh loops: a data-refresh loop that
// re-pulls check-ins and re-aggregates activity snapshots, and a
// heatmap-refresh loop that recomputes the default heatmap view. On a store
// error the previous good result is kept; views degrade to stale data, not
// to an empty overwrite.
type Refresher struct {
	activity *service.ActivityService
	heatmap  *service.HeatmapService
	tunables config.Tunables

	mu        sync.RWMutex
	snapshots []models.VenueActivitySnapshot
	view      *models.HeatmapResponse
	cancel    context.CancelFunc
}

// NewRefresher creates the refresh loops (not yet started)
func NewRefresher(activity *service.ActivityService, heatmap *service.HeatmapService, tunables config.Tunables) *Refresher {
	return &Refresher{
		activity: activity,
		heatmap:  heatmap,
		tunables: tunables,
	}
}

// Start launches both loops. Each loop owns its own ticker; the two are
// independent and may interleave.
func (r *Refresher) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	r.refreshData()
	r.refreshHeatmap()

	go r.loop(ctx, r.tunables.DataRefresh, r.refreshData)
	go r.loop(ctx, r.tunables.HeatmapRefresh, r.refreshHeatmap)

	log.Printf("[Refresher] Started (data=%s, heatmap=%s)", r.tunables.DataRefresh, r.tunables.HeatmapRefresh)
}

// Stop cancels both loops
func (r *Refresher) Stop() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

func (r *Refresher) loop(ctx context.Context, interval time.Duration, tick func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tick()
		}
	}
}

func (r *Refresher) refreshData() {
	snapshots, err := r.activity.SnapshotsInWindow(r.tunables.LiveWindow)
	if err != nil {
		log.Printf("[Refresher] Data refresh failed, keeping previous snapshots: %v", err)
		return
	}

	r.mu.Lock()
	r.snapshots = snapshots
	r.mu.Unlock()
}

func (r *Refresher) refreshHeatmap() {
	view, err := r.heatmap.BuildHeatmap(models.DisplayActivity, r.tunables.LiveWindow)
	if err != nil {
		log.Printf("[Refresher] Heatmap refresh failed, keeping previous view: %v", err)
		return
	}

	r.mu.Lock()
	r.view = view
	r.mu.Unlock()
}

// Snapshots returns the last successfully aggregated snapshot set
func (r *Refresher) Snapshots() []models.VenueActivitySnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshots
}

// View returns the last successfully computed default heatmap view, or nil
// before the first successful refresh
func (r *Refresher) View() *models.HeatmapResponse {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.view
}
