package geo_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medex/internal/adapters/out/geo"
	"medex/internal/core/domain/model/kernel"
	"medex/internal/pkg/errs"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func collect(t *testing.T, ch <-chan kernel.GeoPoint, n int) []kernel.GeoPoint {
	t.Helper()
	got := make([]kernel.GeoPoint, 0, n)
	timeout := time.After(2 * time.Second)
	for len(got) < n {
		select {
		case p, ok := <-ch:
			if !ok {
				return got
			}
			got = append(got, p)
		case <-timeout:
			t.Fatalf("received %d of %d positions", len(got), n)
		}
	}
	return got
}

func TestWalker(t *testing.T) {
	t.Run("should reject a non-positive step", func(t *testing.T) {
		// When
		_, err := geo.NewWalker(kernel.MustNewGeoPoint(0, 0), 0, time.Millisecond)

		// Then
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should start at the given point", func(t *testing.T) {
		// Given
		start := kernel.MustNewGeoPoint(40.7, -74.0)
		w, err := geo.NewWalker(start, 0.001, time.Millisecond)
		require.NoError(t, err)

		// When
		got, err := w.Current(t.Context())

		// Then
		require.NoError(t, err)
		assert.True(t, start.IsEqual(got))
	})

	t.Run("should walk to the destination and stop there", func(t *testing.T) {
		// Given
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		w, err := geo.NewWalker(kernel.MustNewGeoPoint(0, 0), 0.5, time.Millisecond)
		require.NoError(t, err)
		dest := kernel.MustNewGeoPoint(1, -0.5)
		require.NoError(t, w.HeadTo(dest))

		// When
		ch, err := w.Watch(ctx)
		require.NoError(t, err)
		got := collect(t, ch, 2)

		// Then
		require.Len(t, got, 2)
		assert.InDelta(t, 0.5, got[0].Latitude(), 1e-9)
		assert.InDelta(t, -0.5, got[0].Longitude(), 1e-9)
		assert.True(t, dest.IsEqual(got[1]))
		current, _ := w.Current(ctx)
		assert.True(t, dest.IsEqual(current))
	})

	t.Run("should close the stream when the context ends", func(t *testing.T) {
		// Given
		ctx, cancel := context.WithCancel(t.Context())
		w, err := geo.NewWalker(kernel.MustNewGeoPoint(0, 0), 0.1, time.Millisecond)
		require.NoError(t, err)
		ch, err := w.Watch(ctx)
		require.NoError(t, err)

		// When
		cancel()

		// Then
		assert.Eventually(t, func() bool {
			select {
			case _, ok := <-ch:
				return !ok
			default:
				return false
			}
		}, time.Second, time.Millisecond)
	})
}

// writeLines feeds lines to the source; io.Pipe returns once the reader took them.
func writeLines(t *testing.T, w io.Writer, lines ...string) {
	t.Helper()
	for _, line := range lines {
		_, err := io.WriteString(w, line+"\n")
		require.NoError(t, err)
	}
}

func TestNDJSONSource(t *testing.T) {
	t.Run("should use the first line as the current position and stream the rest", func(t *testing.T) {
		// Given
		pr, pw := io.Pipe()
		defer pw.Close()
		src := geo.NewNDJSONSource(pr, discardLogger())
		go writeLines(t, pw, `{"latitude": 40.7, "longitude": -74.0}`)

		// When
		current, err := src.Current(t.Context())
		require.NoError(t, err)
		ch, err := src.Watch(t.Context())
		require.NoError(t, err)
		writeLines(t, pw,
			``,
			`not json`,
			`{"latitude": 95, "longitude": 0}`,
			`{"latitude": 40.8, "longitude": -74.1}`,
			`{"latitude": 40.9}`,
			`{"latitude": 41.0, "longitude": -74.2}`,
		)
		streamed := collect(t, ch, 2)

		// Then
		assert.InDelta(t, 40.7, current.Latitude(), 1e-9)
		require.Len(t, streamed, 2)
		assert.InDelta(t, 40.8, streamed[0].Latitude(), 1e-9)
		assert.InDelta(t, 41.0, streamed[1].Latitude(), 1e-9)
		last, err := src.Current(t.Context())
		require.NoError(t, err)
		assert.True(t, streamed[1].IsEqual(last))
	})

	t.Run("should serve a new watcher after the previous one left", func(t *testing.T) {
		// Given
		pr, pw := io.Pipe()
		defer pw.Close()
		src := geo.NewNDJSONSource(pr, discardLogger())
		firstCtx, leave := context.WithCancel(t.Context())
		first, err := src.Watch(firstCtx)
		require.NoError(t, err)
		writeLines(t, pw, `{"latitude": 1, "longitude": 1}`)
		require.Len(t, collect(t, first, 1), 1)

		// When
		leave()
		assert.Eventually(t, func() bool {
			select {
			case _, ok := <-first:
				return !ok
			default:
				return false
			}
		}, time.Second, time.Millisecond)
		writeLines(t, pw, `{"latitude": 2, "longitude": 2}`)
		require.Eventually(t, func() bool {
			p, err := src.Current(t.Context())
			return err == nil && p.IsEqual(kernel.MustNewGeoPoint(2, 2))
		}, time.Second, time.Millisecond)
		second, err := src.Watch(t.Context())
		require.NoError(t, err)
		writeLines(t, pw, `{"latitude": 3, "longitude": 3}`)
		got := collect(t, second, 1)

		// Then
		require.Len(t, got, 1)
		assert.InDelta(t, 3.0, got[0].Latitude(), 1e-9)
	})

	t.Run("should keep the latest position while nobody watches", func(t *testing.T) {
		// Given
		pr, pw := io.Pipe()
		defer pw.Close()
		src := geo.NewNDJSONSource(pr, discardLogger())
		go writeLines(t, pw, `{"latitude": 1, "longitude": 1}`)
		_, err := src.Current(t.Context())
		require.NoError(t, err)

		// When
		writeLines(t, pw, `{"latitude": 5, "longitude": 6}`)

		// Then
		assert.Eventually(t, func() bool {
			p, err := src.Current(t.Context())
			return err == nil && p.IsEqual(kernel.MustNewGeoPoint(5, 6))
		}, time.Second, time.Millisecond)
	})

	t.Run("should serve several watchers at once", func(t *testing.T) {
		// Given
		pr, pw := io.Pipe()
		defer pw.Close()
		src := geo.NewNDJSONSource(pr, discardLogger())
		a, err := src.Watch(t.Context())
		require.NoError(t, err)
		b, err := src.Watch(t.Context())
		require.NoError(t, err)

		// When
		writeLines(t, pw, `{"latitude": 7, "longitude": 8}`)

		// Then
		assert.Len(t, collect(t, a, 1), 1)
		assert.Len(t, collect(t, b, 1), 1)
	})

	t.Run("should close watchers when the input ends", func(t *testing.T) {
		// Given
		src := geo.NewNDJSONSource(strings.NewReader(`{"latitude": 1, "longitude": 2}`), discardLogger())
		_, err := src.Current(t.Context())
		require.NoError(t, err)

		// When
		assert.Eventually(t, func() bool {
			ch, err := src.Watch(t.Context())
			if err != nil {
				return false
			}
			_, ok := <-ch
			return !ok
		}, time.Second, time.Millisecond)

		// Then
		p, err := src.Current(t.Context())
		require.NoError(t, err)
		assert.True(t, p.IsEqual(kernel.MustNewGeoPoint(1, 2)))
	})

	t.Run("should report end of input when empty", func(t *testing.T) {
		// Given
		src := geo.NewNDJSONSource(strings.NewReader("\n"), discardLogger())

		// When
		_, err := src.Current(t.Context())

		// Then
		require.ErrorIs(t, err, io.EOF)
	})
}
