package contests

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/contestreplay/replay-api/internal/services/timeline"
	"github.com/contestreplay/replay-api/pkg/cabrillo"
	"github.com/spf13/viper"
)

// metadataTimeLayout is the timestamp layout in contest.yaml; values are UTC
const metadataTimeLayout = "2006-01-02 15:04:05"

// Contest is one fully loaded contest folder: lexically ordered audio paths,
// the parsed Cabrillo log and timing metadata. Immutable once loaded.
type Contest struct {
	Name       string
	Dir        string
	AudioPaths []string // sorted by base name; lexical order == chronological order
	LogPath    string
	Timing     timeline.Timing

	log *cabrillo.Log
}

// Log returns the parsed Cabrillo log
func (c *Contest) Log() *cabrillo.Log {
	return c.log
}

// AudioPath resolves a segment file ID (base name) to its on-disk path.
// Only files that are part of the contest can be resolved, which also keeps
// path traversal out of the playback handler.
func (c *Contest) AudioPath(fileID string) (string, error) {
	for _, p := range c.AudioPaths {
		if filepath.Base(p) == fileID {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownAudioFile, fileID)
}

// ServiceImpl implements Service over a directory tree of contest folders
type ServiceImpl struct {
	root              string
	metadataFile      string
	defaultPreSeconds float64

	mu    sync.Mutex
	cache map[string]*Contest
}

// NewService creates a contest discovery service rooted at the given
// directory. defaultPreSeconds is the process-wide pre-roll fallback used
// when a contest's metadata omits pre_seconds.
func NewService(root, metadataFile string, defaultPreSeconds float64) *ServiceImpl {
	return &ServiceImpl{
		root:              root,
		metadataFile:      metadataFile,
		defaultPreSeconds: defaultPreSeconds,
		cache:             make(map[string]*Contest),
	}
}

// List returns a summary for every contest folder, valid or not
func (s *ServiceImpl) List(ctx context.Context) ([]Summary, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read contests root %s: %w", s.root, err)
	}

	var out []Summary
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		contest, err := s.Get(ctx, entry.Name())
		if err != nil {
			out = append(out, Summary{
				Name:   entry.Name(),
				Valid:  false,
				Reason: err.Error(),
			})
			continue
		}

		out = append(out, Summary{
			Name:         contest.Name,
			Valid:        true,
			AudioFiles:   len(contest.AudioPaths),
			ContactCount: contest.Log().Len(),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Get returns the loaded contest, from cache when available
func (s *ServiceImpl) Get(ctx context.Context, name string) (*Contest, error) {
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, fmt.Errorf("%w: %s", ErrContestNotFound, name)
	}

	s.mu.Lock()
	if contest, ok := s.cache[name]; ok {
		s.mu.Unlock()
		return contest, nil
	}
	s.mu.Unlock()

	contest, err := s.load(name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[name] = contest
	s.mu.Unlock()

	return contest, nil
}

// Invalidate drops a cached contest
func (s *ServiceImpl) Invalidate(name string) {
	s.mu.Lock()
	delete(s.cache, name)
	s.mu.Unlock()
}

// load validates and reads one contest folder from disk
func (s *ServiceImpl) load(name string) (*Contest, error) {
	dir := filepath.Join(s.root, name)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrContestNotFound, name)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidContest, name, err)
	}

	var audioPaths []string
	var logPath string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".mp3":
			audioPaths = append(audioPaths, filepath.Join(dir, entry.Name()))
		case ".log":
			if logPath != "" {
				return nil, fmt.Errorf("%w: %s: multiple .log files", ErrInvalidContest, name)
			}
			logPath = filepath.Join(dir, entry.Name())
		}
	}

	if len(audioPaths) == 0 {
		return nil, fmt.Errorf("%w: %s: no .mp3 files", ErrInvalidContest, name)
	}
	if logPath == "" {
		return nil, fmt.Errorf("%w: %s: no .log file", ErrInvalidContest, name)
	}

	sort.Slice(audioPaths, func(i, j int) bool {
		return filepath.Base(audioPaths[i]) < filepath.Base(audioPaths[j])
	})

	timing, err := s.loadTiming(dir, name)
	if err != nil {
		return nil, err
	}

	logFile, err := os.Open(logPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidContest, name, err)
	}
	defer logFile.Close()

	parsed, err := cabrillo.Parse(logFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidContest, name, err)
	}

	log.Printf("[DEBUG] Loaded contest %s: %d audio files, %d contacts", name, len(audioPaths), parsed.Len())

	return &Contest{
		Name:       name,
		Dir:        dir,
		AudioPaths: audioPaths,
		LogPath:    logPath,
		Timing:     timing,
		log:        parsed,
	}, nil
}

// loadTiming reads recording/contest start instants and the pre-roll from
// the contest's metadata file. Timestamps are trusted as UTC; the engine
// performs no timezone inference.
func (s *ServiceImpl) loadTiming(dir, name string) (timeline.Timing, error) {
	v := viper.New()
	v.SetConfigFile(filepath.Join(dir, s.metadataFile))
	v.SetDefault("pre_seconds", s.defaultPreSeconds)

	if err := v.ReadInConfig(); err != nil {
		return timeline.Timing{}, fmt.Errorf("%w: %s: reading %s: %v", ErrInvalidContest, name, s.metadataFile, err)
	}

	recordingStart, err := time.ParseInLocation(metadataTimeLayout, v.GetString("recording_start_utc"), time.UTC)
	if err != nil {
		return timeline.Timing{}, fmt.Errorf("%w: %s: invalid recording_start_utc: %v", ErrInvalidContest, name, err)
	}

	contestStart, err := time.ParseInLocation(metadataTimeLayout, v.GetString("contest_start_utc"), time.UTC)
	if err != nil {
		return timeline.Timing{}, fmt.Errorf("%w: %s: invalid contest_start_utc: %v", ErrInvalidContest, name, err)
	}

	preSeconds := v.GetFloat64("pre_seconds")
	if preSeconds < 0 {
		return timeline.Timing{}, fmt.Errorf("%w: %s: pre_seconds must not be negative", ErrInvalidContest, name)
	}

	return timeline.Timing{
		RecordingStart: recordingStart,
		ContestStart:   contestStart,
		PreSeconds:     preSeconds,
	}, nil
}
