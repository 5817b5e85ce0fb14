package cli

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/springboard/pkg/observability"
)

// installDebugHooks routes engine and cache events to the logger. It is
// called when debug logging is switched on.
func (c *CLI) installDebugHooks() {
	if c.stats == nil {
		c.stats = &engineStats{}
	}
	observability.SetEngineHooks(c.stats)
	observability.SetCacheHooks(logCacheHooks{logger: c.Logger})
}

// reportEngineStats logs the engine activity of the finished command.
func (c *CLI) reportEngineStats() {
	if c.stats == nil {
		return
	}
	c.stats.log(c.Logger)
}

// =============================================================================
// Engine
// =============================================================================

// engineStats counts layout passes and snaps.
type engineStats struct {
	mu      sync.Mutex
	passes  int
	relaid  int
	snaps   map[string]int
	elapsed time.Duration
	slowest time.Duration
}

func (s *engineStats) OnLayoutPass(_ int, relaid bool, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passes++
	if relaid {
		s.relaid++
	}
	s.elapsed += d
	s.slowest = max(s.slowest, d)
}

func (s *engineStats) OnSnap(_ int, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snaps == nil {
		s.snaps = make(map[string]int)
	}
	s.snaps[reason]++
}

func (s *engineStats) log(logger *log.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.passes == 0 {
		return
	}
	total := 0
	for _, n := range s.snaps {
		total += n
	}
	logger.Debug("engine",
		"passes", s.passes,
		"relayouts", s.relaid,
		"snaps", total,
		"layout_time", s.elapsed.Round(time.Microsecond),
		"slowest", s.slowest.Round(time.Microsecond))
}

// =============================================================================
// Cache
// =============================================================================

// logCacheHooks logs cache traffic at debug level.
type logCacheHooks struct {
	logger *log.Logger
}

func (h logCacheHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logCacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logCacheHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

// =============================================================================
// HTTP
// =============================================================================

// logHTTPHooks logs served requests.
type logHTTPHooks struct {
	observability.NoopHTTPHooks
}

func (logHTTPHooks) OnResponse(ctx context.Context, method, path string, status int, d time.Duration) {
	loggerFromContext(ctx).Info(fmt.Sprintf("%s %s", method, path), "status", status, "took", d.Round(time.Microsecond))
}
