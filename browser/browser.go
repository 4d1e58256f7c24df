// Package browser retrieves patent pages through a headless Chrome session.
//
// Patent pages assemble much of their markup client-side, so a plain HTTP
// GET is not enough. The page is loaded in Chrome and the raw body of the
// main document response is read back over the DevTools protocol.
package browser

import (
	"context"
	"sync"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"
)

// Result is one fetched document.
type Result struct {
	URL      string
	Status   int64
	MimeType string
	Body     string
}

// Fetch loads url in a headless browser and returns the main document's raw
// response body. The context bounds the whole browser session.
func Fetch(ctx context.Context, url string) (Result, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var (
		mu     sync.Mutex
		result Result
		reqID  network.RequestID
	)
	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		resp, ok := ev.(*network.EventResponseReceived)
		if !ok || resp.Type != network.ResourceTypeDocument {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if reqID != "" {
			return
		}
		reqID = resp.RequestID
		result.URL = resp.Response.URL
		result.Status = resp.Response.Status
		result.MimeType = resp.Response.MimeType
	})

	err := chromedp.Run(browserCtx,
		network.Enable(),
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			mu.Lock()
			id := reqID
			mu.Unlock()
			if id == "" {
				return errors.New("no document response observed in browser session")
			}
			body, err := network.GetResponseBody(id).Do(ctx)
			if err != nil {
				return errors.Wrap(err, "could not read response body")
			}
			mu.Lock()
			result.Body = string(body)
			mu.Unlock()
			return nil
		}),
	)
	if err != nil {
		return Result{}, err
	}
	return result, nil
}
