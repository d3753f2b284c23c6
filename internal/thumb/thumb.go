// Package thumb downloads item images and draws them as terminal
// thumbnails using upper-half-block cells (two pixels per cell).
package thumb

import (
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// maxImageBytes caps a single image download.
const maxImageBytes = 8 << 20

// DefaultRequestInterval spaces image requests so a grid of thumbnails does
// not hit the image host all at once.
const DefaultRequestInterval = 100 * time.Millisecond

// Renderer fetches and renders thumbnails. Safe for concurrent use; at most
// `parallel` downloads run at once and requests start at most one per
// interval.
type Renderer struct {
	client  *http.Client
	sem     *semaphore.Weighted
	limiter *rate.Limiter
	width   int // cells
	height  int // cells (each is two pixel rows)
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithRequestInterval spaces request starts at least every apart.
// Zero or negative disables the limit.
func WithRequestInterval(every time.Duration) Option {
	return func(r *Renderer) {
		if every <= 0 {
			r.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		r.limiter = rate.NewLimiter(rate.Every(every), 1)
	}
}

// NewRenderer creates a Renderer drawing width x height cell thumbnails.
func NewRenderer(width, height, parallel int, timeout time.Duration, opts ...Option) *Renderer {
	if parallel < 1 {
		parallel = 1
	}
	r := &Renderer{
		client:  &http.Client{Timeout: timeout},
		sem:     semaphore.NewWeighted(int64(parallel)),
		limiter: rate.NewLimiter(rate.Every(DefaultRequestInterval), 1),
		width:   width,
		height:  height,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fetch downloads url and renders it. It waits for the rate limiter before
// taking a download slot, so queued requests do not hold slots.
func (r *Renderer) Fetch(ctx context.Context, url string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait: %w", err)
	}
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer r.sem.Release(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %s", resp.Status)
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	return Render(img, r.width, r.height), nil
}

// Render scales img to fit width x height cells, keeping its aspect ratio,
// and draws it with "▀": foreground is the top pixel, background the bottom.
func Render(img image.Image, width, height int) string {
	if width < 1 || height < 1 {
		return ""
	}
	fitted := imaging.Fit(img, width, height*2, imaging.Lanczos)
	b := fitted.Bounds()

	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(hexColor(fitted.At(x, y)))
			if y+1 < b.Max.Y {
				style = style.Background(hexColor(fitted.At(x, y+1)))
			}
			sb.WriteString(style.Render("▀"))
		}
	}
	return sb.String()
}

func hexColor(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}
