package geo

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"medex/internal/core/domain/model/kernel"
	"medex/internal/core/ports"
)

var _ ports.PositionSource = (*NDJSONSource)(nil)

// watcherBuffer is how many unread positions a slow watcher may fall behind
// before updates to it are dropped.
const watcherBuffer = 16

type positionLine struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// NDJSONSource reads one {"latitude":..,"longitude":..} object per line. A single
// reader runs for the life of the source, started by the first Current or Watch,
// and keeps the latest position whether or not anyone is watching. Every Watch
// gets the positions read while it is subscribed. Invalid lines are logged and
// skipped.
type NDJSONSource struct {
	reader io.Reader
	logger *slog.Logger
	start  sync.Once

	mu       sync.Mutex
	last     *kernel.GeoPoint
	watchers map[int]chan kernel.GeoPoint
	nextID   int
	ended    bool
	endErr   error
	ready    chan struct{}
}

func NewNDJSONSource(r io.Reader, logger *slog.Logger) *NDJSONSource {
	return &NDJSONSource{
		reader:   r,
		logger:   logger.With("component", "ndjson_positions"),
		watchers: make(map[int]chan kernel.GeoPoint),
		ready:    make(chan struct{}),
	}
}

// Current returns the latest position, waiting for the first line when nothing
// has been read yet. After the input ends without any position it returns the
// end error, io.EOF for a clean end.
func (s *NDJSONSource) Current(ctx context.Context) (kernel.GeoPoint, error) {
	s.start.Do(func() { go s.read() })

	select {
	case <-s.ready:
	case <-ctx.Done():
		return kernel.GeoPoint{}, ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last != nil {
		return *s.last, nil
	}
	return kernel.GeoPoint{}, s.endErr
}

// Watch subscribes to positions read from now on. The channel is closed when ctx
// ends or the input runs out.
func (s *NDJSONSource) Watch(ctx context.Context) (<-chan kernel.GeoPoint, error) {
	s.start.Do(func() { go s.read() })

	out := make(chan kernel.GeoPoint, watcherBuffer)

	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		close(out)
		return out, nil
	}
	id := s.nextID
	s.nextID++
	s.watchers[id] = out
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.unsubscribe(id)
	}()
	return out, nil
}

func (s *NDJSONSource) unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ch, ok := s.watchers[id]; ok {
		delete(s.watchers, id)
		close(ch)
	}
}

func (s *NDJSONSource) read() {
	scanner := bufio.NewScanner(s.reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		p, err := parseLine(line)
		if err != nil {
			s.logger.Warn("Skipping invalid position", "line", line, "error", err)
			continue
		}
		s.publish(p)
	}

	endErr := io.EOF
	if err := scanner.Err(); err != nil {
		endErr = fmt.Errorf("read positions: %w", err)
		s.logger.Warn("Position stream ended", "error", err)
	}
	s.finish(endErr)
}

func (s *NDJSONSource) publish(p kernel.GeoPoint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last == nil {
		close(s.ready)
	}
	s.last = &p

	for _, ch := range s.watchers {
		select {
		case ch <- p:
		default:
			s.logger.Warn("Watcher is behind, dropping position", "position", p.String())
		}
	}
}

func (s *NDJSONSource) finish(endErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last == nil {
		close(s.ready)
	}
	s.ended = true
	s.endErr = endErr
	for id, ch := range s.watchers {
		delete(s.watchers, id)
		close(ch)
	}
}

func parseLine(line string) (kernel.GeoPoint, error) {
	var pl positionLine
	if err := json.Unmarshal([]byte(line), &pl); err != nil {
		return kernel.GeoPoint{}, err
	}
	if pl.Latitude == nil || pl.Longitude == nil {
		return kernel.GeoPoint{}, errors.New("latitude and longitude are required")
	}
	return kernel.NewGeoPoint(*pl.Latitude, *pl.Longitude)
}
