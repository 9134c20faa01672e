// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index builds and caches per-month DOI indices over the archive
// bucket. An index maps every DOI deposited in one month folder to its
// archive key, built by probing only the tail of each archive. Indices are
// cached in process memory for the process lifetime and on disk for seven
// days; a stale or unreadable cache triggers a wholesale rebuild.
// Implements: prd008-fulltext-archive R2.
package index

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/meca-fetch/internal/meca"
	"github.com/pdiddy/meca-fetch/internal/objstore"
	"github.com/pdiddy/meca-fetch/pkg/types"
)

// archiveExt is the only object extension considered for indexing.
const archiveExt = ".meca"

// Builder resolves month folders to DOI indices through a two-tier cache.
// Safe for concurrent use.
type Builder struct {
	store  objstore.Store
	cfg    types.IndexConfig
	prefix string
	log    *zap.Logger

	mu     sync.RWMutex
	months map[string]*types.MonthIndex
}

// NewBuilder creates a Builder. prefix is the bucket folder containing the
// month folders (e.g. "Current_Content/"). A nil logger disables logging.
func NewBuilder(store objstore.Store, cfg types.IndexConfig, prefix string, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{
		store:  store,
		cfg:    cfg,
		prefix: prefix,
		log:    log,
		months: make(map[string]*types.MonthIndex),
	}
}

// Month returns the DOI index for a month folder, from memory, from a
// fresh disk cache, or by rebuilding.
func (b *Builder) Month(ctx context.Context, month string) *types.MonthIndex {
	b.mu.RLock()
	idx, ok := b.months[month]
	b.mu.RUnlock()
	if ok {
		return idx
	}

	if idx := b.loadDiskCache(month); idx != nil {
		b.log.Info("loaded month index from cache",
			zap.String("month", month), zap.Int("dois", len(idx.DOIs)))
		b.install(month, idx)
		return idx
	}

	return b.Rebuild(ctx, month)
}

// Rebuild builds a month's index from the bucket, bypassing both cache
// tiers, and installs the result on success. Per-archive failures are
// logged and skipped; a failed listing yields an empty, uncached index.
func (b *Builder) Rebuild(ctx context.Context, month string) *types.MonthIndex {
	prefix := b.prefix + month + "/"
	b.log.Info("building month index", zap.String("month", month))

	keys, err := b.store.List(ctx, prefix)
	if err != nil {
		b.log.Error("listing month folder failed",
			zap.String("month", month), zap.Error(err))
		return &types.MonthIndex{DOIs: map[string]string{}, BuiltAt: time.Now()}
	}

	var archives []string
	for _, key := range keys {
		if strings.HasSuffix(key, archiveExt) {
			archives = append(archives, key)
		}
	}
	if len(archives) > b.cfg.MaxFiles {
		b.log.Info("limiting month index",
			zap.String("month", month),
			zap.Int("indexed", b.cfg.MaxFiles), zap.Int("total", len(archives)))
		archives = archives[:b.cfg.MaxFiles]
	}

	// Fan the tail probes out over a bounded pool. The map is complete
	// before it is published to either cache tier.
	var (
		resultMu sync.Mutex
		dois     = make(map[string]string)
		wg       sync.WaitGroup
		jobs     = make(chan string)
	)
	for i := 0; i < b.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for key := range jobs {
				doi, ok := b.extract(ctx, key)
				if !ok {
					continue
				}
				resultMu.Lock()
				dois[doi] = key
				resultMu.Unlock()
			}
		}()
	}
	for _, key := range archives {
		jobs <- key
	}
	close(jobs)
	wg.Wait()

	idx := &types.MonthIndex{DOIs: dois, BuiltAt: time.Now()}
	b.log.Info("built month index",
		zap.String("month", month),
		zap.Int("archives", len(archives)), zap.Int("dois", len(dois)))

	b.install(month, idx)
	b.saveDiskCache(month, idx)
	return idx
}

// extract probes one archive's tail for its DOI. Every failure mode is a
// debug-level skip: the archive is simply left out of the index.
func (b *Builder) extract(ctx context.Context, key string) (string, bool) {
	size, err := b.store.Size(ctx, key)
	if err != nil {
		b.log.Debug("size query failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	if size == 0 {
		return "", false
	}

	tailSize := meca.TailSize(size)
	tail, err := b.store.GetRange(ctx, key, size-tailSize, tailSize)
	if err != nil {
		b.log.Debug("tail read failed", zap.String("key", key), zap.Error(err))
		return "", false
	}

	doi, ok := meca.ExtractDOI(tail, size)
	if !ok {
		b.log.Debug("no DOI extracted", zap.String("key", key))
		return "", false
	}
	return doi, true
}

func (b *Builder) install(month string, idx *types.MonthIndex) {
	b.mu.Lock()
	b.months[month] = idx
	b.mu.Unlock()
}

// CachePath returns the on-disk cache file for a month's index.
func (b *Builder) CachePath(month string) string {
	return filepath.Join(b.cfg.CacheDir, "biorxiv_doi_index_"+month+".json")
}

// loadDiskCache reads a month's index file. It returns nil on any miss:
// absent file, older than the TTL, or unreadable content. File
// modification time anchors the TTL; the content is just the DOI map.
func (b *Builder) loadDiskCache(month string) *types.MonthIndex {
	path := b.CachePath(month)
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	if time.Since(info.ModTime()) > b.cfg.TTL {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		b.log.Debug("reading month index cache failed",
			zap.String("month", month), zap.Error(err))
		return nil
	}
	var dois map[string]string
	if err := json.Unmarshal(data, &dois); err != nil {
		b.log.Debug("month index cache is malformed",
			zap.String("month", month), zap.Error(err))
		return nil
	}
	return &types.MonthIndex{DOIs: dois, BuiltAt: info.ModTime()}
}

func (b *Builder) saveDiskCache(month string, idx *types.MonthIndex) {
	if err := os.MkdirAll(b.cfg.CacheDir, 0o755); err != nil {
		b.log.Warn("creating cache directory failed", zap.Error(err))
		return
	}
	data, err := json.Marshal(idx.DOIs)
	if err != nil {
		b.log.Warn("marshaling month index failed", zap.Error(err))
		return
	}
	if err := os.WriteFile(b.CachePath(month), data, 0o644); err != nil {
		b.log.Warn("saving month index cache failed",
			zap.String("month", month), zap.Error(err))
	}
}

// CachedMonths reports how many month index files are present in cacheDir,
// fresh or stale.
func CachedMonths(cacheDir string) (int, error) {
	matches, err := filepath.Glob(filepath.Join(cacheDir, "biorxiv_doi_index_*.json"))
	if err != nil {
		return 0, fmt.Errorf("globbing index cache: %w", err)
	}
	return len(matches), nil
}
