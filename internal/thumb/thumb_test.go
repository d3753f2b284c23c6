package thumb

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func checker(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.RGBA{R: 255, A: 255})
			} else {
				img.Set(x, y, color.RGBA{B: 255, A: 255})
			}
		}
	}
	return img
}

func TestRenderDimensions(t *testing.T) {
	out := Render(checker(40, 40), 10, 5)
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 10 {
			t.Errorf("line %d width = %d, want 10", i, w)
		}
	}
}

func TestRenderKeepsAspect(t *testing.T) {
	// A wide image is limited by width: 80x20 px fits 10 cells wide, 3 px rows -> 2 lines.
	out := Render(checker(80, 20), 10, 8)
	if n := len(strings.Split(out, "\n")); n >= 8 {
		t.Errorf("wide image used %d lines; aspect ratio not kept", n)
	}
}

func TestRenderZeroSize(t *testing.T) {
	if Render(checker(4, 4), 0, 5) != "" {
		t.Error("zero width should render nothing")
	}
}

func TestRendererFetch(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, checker(16, 16)); err != nil {
		t.Fatalf("encode: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			w.Header().Set("Content-Type", "image/png")
			w.Write(buf.Bytes())
		case "/bad.png":
			w.Write([]byte("not an image"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	r := NewRenderer(8, 4, 2, 5*time.Second, WithRequestInterval(0))

	out, err := r.Fetch(context.Background(), server.URL+"/ok.png")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(strings.Split(out, "\n")) != 4 {
		t.Errorf("expected 4 lines, got:\n%s", out)
	}

	if _, err := r.Fetch(context.Background(), server.URL+"/missing.png"); err == nil {
		t.Error("expected error for 404")
	}
	if _, err := r.Fetch(context.Background(), server.URL+"/bad.png"); err == nil {
		t.Error("expected error for undecodable body")
	}
}

func TestRendererFetchCancelled(t *testing.T) {
	r := NewRenderer(8, 4, 1, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Fetch(ctx, "http://127.0.0.1:1/x.png"); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestRendererSpacesRequests(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, checker(4, 4)); err != nil {
		t.Fatalf("encode: %v", err)
	}

	var mu sync.Mutex
	var hits []time.Time
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits = append(hits, time.Now())
		mu.Unlock()
		w.Write(buf.Bytes())
	}))
	defer server.Close()

	const n = 4
	const interval = 40 * time.Millisecond
	r := NewRenderer(4, 2, n, 5*time.Second, WithRequestInterval(interval))

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Fetch(context.Background(), server.URL+"/img.png"); err != nil {
				t.Errorf("Fetch: %v", err)
			}
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(hits) != n {
		t.Fatalf("server saw %d requests, want %d", len(hits), n)
	}
	slices.SortFunc(hits, func(a, b time.Time) int { return a.Compare(b) })
	// n requests with burst 1 need n-1 full intervals; allow scheduler slack.
	if spread := hits[n-1].Sub(hits[0]); spread < (n-1)*interval*3/4 {
		t.Errorf("%d concurrent fetches spread over %v, want at least ~%v", n, spread, (n-1)*interval)
	}
}

func TestRendererRateLimitHonoursCancel(t *testing.T) {
	r := NewRenderer(4, 2, 1, time.Second, WithRequestInterval(time.Hour))
	// First request consumes the burst token; it fails fast on a closed port.
	_, _ = r.Fetch(context.Background(), "http://127.0.0.1:1/x.png")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	start := time.Now()
	if _, err := r.Fetch(ctx, "http://127.0.0.1:1/x.png"); err == nil {
		t.Fatal("expected error while waiting on the limiter")
	}
	if time.Since(start) > time.Second {
		t.Error("limiter wait ignored context cancellation")
	}
}
