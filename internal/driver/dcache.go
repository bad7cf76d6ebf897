package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"sollint/internal/diag"
	"sollint/internal/lint"
	"sollint/internal/source"
)

// Increment when the cached payload format changes.
const diskCacheSchemaVersion uint16 = 1

// DiskCache replays the filtered diagnostics of unchanged files. The
// key covers the file content hash and the effective configuration, so
// edits and config changes both invalidate naturally. Thread-safe.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload stores the finished diagnostics of one source unit.
// Spans are stored as raw offsets and rebound to the current FileID on
// replay.
type DiskPayload struct {
	Schema      uint16
	Path        string
	ParseFailed bool
	Diags       []cachedDiag
}

type cachedDiag struct {
	Severity uint8
	Code     string
	Message  string
	Start    uint32
	End      uint32
	Notes    []cachedNote
	Fixes    []cachedFix
}

type cachedNote struct {
	Start uint32
	End   uint32
	Msg   string
}

type cachedFix struct {
	Title         string
	Applicability uint8
	Snippet       string
	Edits         []cachedEdit
}

type cachedEdit struct {
	Start   uint32
	End     uint32
	NewText string
	OldText string
}

// OpenDiskCache initializes the cache at the standard XDG location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key [32]byte) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "units", hexKey+".mp")
}

// Put atomically writes a payload.
func (c *DiskCache) Put(key [32]byte, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload; ok=false on a clean miss.
func (c *DiskCache) Get(key [32]byte, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll invalidates the whole cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// configHash digests the effective configuration so cached results are
// never replayed across rule-set changes.
func configHash(cfg lint.Config) [32]byte {
	h := sha256.New()
	fmt.Fprintf(h, "schema=%d;", diskCacheSchemaVersion)
	if cfg.HasMinSeverity {
		fmt.Fprintf(h, "min=%d;", cfg.MinSeverity)
	}
	include := append([]diag.Code(nil), cfg.Include...)
	exclude := append([]diag.Code(nil), cfg.Exclude...)
	sort.Slice(include, func(i, j int) bool { return include[i] < include[j] })
	sort.Slice(exclude, func(i, j int) bool { return exclude[i] < exclude[j] })
	for _, id := range include {
		fmt.Fprintf(h, "inc=%s;", id)
	}
	for _, id := range exclude {
		fmt.Fprintf(h, "exc=%s;", id)
	}
	var out [32]byte
	h.Sum(out[:0])
	return out
}

func (e *Engine) cacheKey(file *source.File) [32]byte {
	h := sha256.New()
	h.Write(file.Hash[:])
	h.Write(e.cfgHash[:])
	var out [32]byte
	h.Sum(out[:0])
	return out
}

func (e *Engine) lookupCache(file *source.File) (*DiskPayload, bool) {
	if e.cache == nil || e.opts.EnableTimings {
		return nil, false
	}
	var payload DiskPayload
	ok, err := e.cache.Get(e.cacheKey(file), &payload)
	if err != nil || !ok || payload.Schema != diskCacheSchemaVersion {
		return nil, false
	}
	return &payload, true
}

func (e *Engine) storeCache(file *source.File, res *FileResult) {
	if e.cache == nil || e.opts.EnableTimings {
		return
	}
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        file.Path,
		ParseFailed: res.ParseFailed,
	}
	for _, d := range res.Bag.Items() {
		payload.Diags = append(payload.Diags, toCachedDiag(d))
	}
	// Failing to write the cache never fails the run.
	_ = e.cache.Put(e.cacheKey(file), payload)
}

func replayCached(res *FileResult, payload *DiskPayload, fileID source.FileID) {
	res.ParseFailed = payload.ParseFailed
	for _, cd := range payload.Diags {
		res.Bag.Add(fromCachedDiag(cd, fileID))
	}
}

func toCachedDiag(d diag.Diagnostic) cachedDiag {
	out := cachedDiag{
		Severity: uint8(d.Severity),
		Code:     string(d.Code),
		Message:  d.Message,
		Start:    d.Primary.Start,
		End:      d.Primary.End,
	}
	for _, n := range d.Notes {
		out.Notes = append(out.Notes, cachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
	}
	for _, f := range d.Fixes {
		cf := cachedFix{
			Title:         f.Title,
			Applicability: uint8(f.Applicability),
			Snippet:       f.Snippet,
		}
		for _, ed := range f.Edits {
			cf.Edits = append(cf.Edits, cachedEdit{
				Start:   ed.Span.Start,
				End:     ed.Span.End,
				NewText: ed.NewText,
				OldText: ed.OldText,
			})
		}
		out.Fixes = append(out.Fixes, cf)
	}
	return out
}

func fromCachedDiag(cd cachedDiag, fileID source.FileID) diag.Diagnostic {
	d := diag.Diagnostic{
		Severity: diag.Severity(cd.Severity),
		Code:     diag.Code(cd.Code),
		Message:  cd.Message,
		Primary:  source.Span{File: fileID, Start: cd.Start, End: cd.End},
	}
	for _, n := range cd.Notes {
		d.Notes = append(d.Notes, diag.Note{
			Span: source.Span{File: fileID, Start: n.Start, End: n.End},
			Msg:  n.Msg,
		})
	}
	for _, f := range cd.Fixes {
		fix := diag.Fix{
			Title:         f.Title,
			Applicability: diag.Applicability(f.Applicability),
			Snippet:       f.Snippet,
		}
		for _, ed := range f.Edits {
			fix.Edits = append(fix.Edits, diag.TextEdit{
				Span:    source.Span{File: fileID, Start: ed.Start, End: ed.End},
				NewText: ed.NewText,
				OldText: ed.OldText,
			})
		}
		d.Fixes = append(d.Fixes, fix)
	}
	return d
}
