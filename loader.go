package liquid

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"

	_ "golang.org/x/image/webp"
)

// loadResult is delivered once per load.
type loadResult struct {
	img image.Image
	err error
}

// startLoad decodes source on its own goroutine. The returned channel receives
// exactly one result; cancel ctx to abandon the load.
func startLoad(ctx context.Context, source string) <-chan loadResult {
	ch := make(chan loadResult, 1)
	go func() {
		img, err := LoadImage(ctx, source)
		ch <- loadResult{img: img, err: err}
	}()
	return ch
}

// LoadImage reads and decodes a PNG, JPEG, GIF, or WebP image from a file
// path or an http(s) URL.
func LoadImage(ctx context.Context, source string) (image.Image, error) {
	rc, err := openSource(ctx, source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return img, nil
}

func openSource(ctx context.Context, source string) (io.ReadCloser, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", source, err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", source, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", source, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: %s", source, resp.Status)
	}
	return resp.Body, nil
}
