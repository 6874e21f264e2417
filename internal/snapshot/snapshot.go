// Package snapshot rasterizes rendered SVG frames with headless Chrome.
package snapshot

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/chromedp/chromedp"
)

var ErrNotSVG = errors.New("input is not an svg document")

// PNG loads svg as a data URI in a headless browser and screenshots the
// <svg> element.
func PNG(ctx context.Context, svg string) ([]byte, error) {
	if !strings.HasPrefix(strings.TrimSpace(svg), "<svg") {
		return nil, ErrNotSVG
	}
	dataURI := "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))

	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.Headless)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var buf []byte
	tasks := chromedp.Tasks{
		chromedp.Navigate(dataURI),
		chromedp.WaitVisible(`svg`, chromedp.ByQuery),
		chromedp.Screenshot(`svg`, &buf, chromedp.ByQuery),
	}
	if err := chromedp.Run(browserCtx, tasks); err != nil {
		return nil, fmt.Errorf("chromedp: %w", err)
	}
	if len(buf) == 0 {
		return nil, errors.New("screenshot buffer is empty")
	}
	log.Printf("snapshot: rendered %d byte png", len(buf))
	return buf, nil
}
