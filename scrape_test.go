// Copyright (C) 2025 by Ubaldo Porcheddu <ubaldo@eja.it>

package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScraper(baseURL string) *Scraper {
	return NewScraper(baseURL, "", 5*time.Second)
}

func servePage(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func contentPage(inner string) string {
	return `<html><body><div class="col-sm-10">` + inner + `</div></body></html>`
}

func TestLookup(t *testing.T) {
	var gotPath, gotWord, gotAgent string

	page := contentPage(`
		<h1>ਵਿਰਾਸਤ <small>ਸਰੋਤ : ਮਹਾਨ ਕੋਸ਼</small></h1>
		<p>ਵਿਰਾਸਤ. ਪਿਓ ਦਾਦੇ ਦੀ ਜਾਇਦਾਦ</p>
		<hr>
		<h1>ਵਿਰਾਸਤ <small>ਸਰੋਤ : ਪੰਜਾਬੀ ਕੋਸ਼</small></h1>
		<p>ਅਲੌਕਿਕ [ਵਿਸ਼ੇਸ਼ਣ] ਅਸਾਧਾਰਨ</p>
		<p>ਦੂਜਾ ਪੈਰਾ</p>
	`)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotWord = r.URL.Query().Get("txt")
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(page))
	}))
	defer srv.Close()

	scraper := newTestScraper(srv.URL)
	definitions, err := scraper.Lookup(context.Background(), "ਵਿਰਾਸਤ")
	require.NoError(t, err)

	assert.Equal(t, "/topic.aspx", gotPath)
	assert.Equal(t, "ਵਿਰਾਸਤ", gotWord)
	assert.Equal(t, DefaultUserAgent, gotAgent)

	require.Len(t, definitions, 2)
	assert.Equal(t, "ਮਹਾਨ ਕੋਸ਼", definitions[0].Source)
	assert.Equal(t, []string{"ਪਿਓ ਦਾਦੇ ਦੀ ਜਾਇਦਾਦ"}, definitions[0].Paragraphs)
	assert.Equal(t, "ਪੰਜਾਬੀ ਕੋਸ਼", definitions[1].Source)
	assert.Equal(t, []string{"ਅਲੌਕਿਕ ਅਸਾਧਾਰਨ", "ਦੂਜਾ ਪੈਰਾ"}, definitions[1].Paragraphs)

	// Same word against the same page yields the same entries.
	again, err := scraper.Lookup(context.Background(), "ਵਿਰਾਸਤ")
	require.NoError(t, err)
	assert.Equal(t, definitions, again)
}

func TestLookupNestedParagraphs(t *testing.T) {
	srv := servePage(t, contentPage(`
		<h1>ਸ਼ਬਦ <small>ਸਰੋਤ : ਮਹਾਨ ਕੋਸ਼</small></h1>
		<p><p>ਪਹਿਲਾ ਪੈਰਾ</p><p>ਦੂਜਾ ਪੈਰਾ</p></p>
	`))

	definitions, err := newTestScraper(srv.URL).Lookup(context.Background(), "ਸ਼ਬਦ")
	require.NoError(t, err)

	require.Len(t, definitions, 1)
	assert.Equal(t, []string{"ਪਹਿਲਾ ਪੈਰਾ", "ਦੂਜਾ ਪੈਰਾ"}, definitions[0].Paragraphs)
}

func TestLookupBlockRejection(t *testing.T) {
	srv := servePage(t, contentPage(`
		<h1>ਸ਼ਬਦ</h1>
		<p>ਬਿਨਾ ਸਰੋਤ ਪੈਰਾ</p>
		<hr>
		<h1>ਸ਼ਬਦ <small>ਸਰੋਤ : ਮਹਾਨ ਕੋਸ਼</small></h1>
		<hr>
		<h1>ਸ਼ਬਦ <small>ਸਰੋਤ : ਪੰਜਾਬੀ ਕੋਸ਼</small></h1>
		<p>ਸ਼ਬਦ</p>
		<p>ਅ</p>
		<hr>
		<h1>ਸ਼ਬਦ <small>ਸਰੋਤ :</small></h1>
		<p>ਚੰਗਾ ਪੈਰਾ</p>
	`))

	// First block has no attribution, second no paragraphs, third only
	// paragraphs that clean down to nothing or one character, fourth an
	// attribution that is just the label.
	definitions, err := newTestScraper(srv.URL).Lookup(context.Background(), "ਸ਼ਬਦ")
	require.NoError(t, err)
	assert.Empty(t, definitions)
}

func TestLookupContainerFallback(t *testing.T) {
	block := `
		<h1>ਸ਼ਬਦ <small>ਸਰੋਤ : ਮਹਾਨ ਕੋਸ਼</small></h1>
		<p>ਪਰਿਭਾਸ਼ਾ ਇੱਥੇ</p>
	`

	pages := map[string]string{
		"secondary container": `<html><body><div class="col-sm-12 main-box">` + block + `</div></body></html>`,
		"body fallback":       `<html><body>` + block + `</body></html>`,
	}

	for name, page := range pages {
		t.Run(name, func(t *testing.T) {
			srv := servePage(t, page)
			definitions, err := newTestScraper(srv.URL).Lookup(context.Background(), "ਸ਼ਬਦ")
			require.NoError(t, err)
			require.Len(t, definitions, 1)
			assert.Equal(t, "ਮਹਾਨ ਕੋਸ਼", definitions[0].Source)
			assert.Equal(t, []string{"ਪਰਿਭਾਸ਼ਾ ਇੱਥੇ"}, definitions[0].Paragraphs)
		})
	}
}

func TestLookupHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestScraper(srv.URL).Lookup(context.Background(), "ਸ਼ਬਦ")

	var lookupErr *LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, ErrFetch, lookupErr.Kind)
}

func TestLookupTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Refuse connections.

	_, err := newTestScraper(srv.URL).Lookup(context.Background(), "ਸ਼ਬਦ")

	var lookupErr *LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, ErrFetch, lookupErr.Kind)
}

func TestLookupEmptyPage(t *testing.T) {
	srv := servePage(t, contentPage(`<p>ਕੋਈ ਸਿਰਲੇਖ ਨਹੀਂ</p>`))

	definitions, err := newTestScraper(srv.URL).Lookup(context.Background(), "ਸ਼ਬਦ")
	require.NoError(t, err)
	assert.Empty(t, definitions)
}

func TestLookupEmptyWord(t *testing.T) {
	requested := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = true
	}))
	defer srv.Close()

	scraper := newTestScraper(srv.URL)
	for _, word := range []string{"", "   ", "\n\t"} {
		definitions, err := scraper.Lookup(context.Background(), word)
		assert.NoError(t, err)
		assert.Empty(t, definitions)
	}
	assert.False(t, requested)
}

func TestLookupCancelledContext(t *testing.T) {
	srv := servePage(t, contentPage(""))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestScraper(srv.URL).Lookup(ctx, "ਸ਼ਬਦ")

	var lookupErr *LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, ErrFetch, lookupErr.Kind)
}

func TestLookupSelfReferenceMidSentence(t *testing.T) {
	srv := servePage(t, contentPage(`
		<h1>ਵਿਰਾਸਤ <small>ਸਰੋਤ : ਮਹਾਨ ਕੋਸ਼</small></h1>
		<p>ਪਿਓ ਦਾਦੇ ਦੀ ਵਿਰਾਸਤ ਜਾਇਦਾਦ</p>
	`))

	definitions, err := newTestScraper(srv.URL).Lookup(context.Background(), "ਵਿਰਾਸਤ")
	require.NoError(t, err)
	require.Len(t, definitions, 1)
	assert.Equal(t, []string{"ਪਿਓ ਦਾਦੇ ਦੀ ਵਿਰਾਸਤ ਜਾਇਦਾਦ"}, definitions[0].Paragraphs)
}
