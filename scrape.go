// Copyright (C) 2025 by Ubaldo Porcheddu <ubaldo@eja.it>

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	DefaultLookupURL = "https://punjabipedia.org"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

type Scraper struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

func NewScraper(baseURL string, userAgent string, timeout time.Duration) *Scraper {
	if baseURL == "" {
		baseURL = DefaultLookupURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Scraper{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// Lookup fetches the results page for a word and extracts one Definition
// per heading block. An empty slice with a nil error means the page was
// reachable but held no parseable definitions; that is not a failure.
func (s *Scraper) Lookup(ctx context.Context, word string) (definitions []Definition, err error) {
	defer func() {
		if r := recover(); r != nil {
			definitions = nil
			err = &LookupError{Kind: ErrUnexpected, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	word = strings.TrimSpace(word)
	if word == "" {
		return nil, nil
	}

	lookupURL := s.baseURL + "/topic.aspx?txt=" + url.QueryEscape(word)
	log.Printf("Lookup %s: %s", word, lookupURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, &LookupError{Kind: ErrFetch, Err: err}
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &LookupError{Kind: ErrFetch, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &LookupError{Kind: ErrFetch, Err: fmt.Errorf("HTTP error: %s", resp.Status)}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &LookupError{Kind: ErrUnexpected, Err: err}
	}

	content, err := findContent(doc)
	if err != nil {
		return nil, err
	}

	definitions = extractDefinitions(content, word)
	log.Printf("Lookup %s: %d definitions", word, len(definitions))
	return definitions, nil
}

// findContent locates the main content region. The page normally wraps it
// in div.col-sm-10; older layouts used div.col-sm-12.main-box; failing
// both, the whole body is scanned.
func findContent(doc *goquery.Document) (*goquery.Selection, error) {
	for _, selector := range []string{"div.col-sm-10", "div.col-sm-12.main-box", "body"} {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel, nil
		}
	}
	return nil, &LookupError{Kind: ErrStructure, Err: fmt.Errorf("could not find the main content container")}
}

// Block-walk states: a block opens on a heading and closes on the next
// heading or an hr separator.
type walkState int

const (
	stateCollecting walkState = iota
	stateClosed
)

type defBlock struct {
	source     *html.Node
	paragraphs []*html.Node
}

// extractDefinitions treats every h1 in the content region as the anchor of
// one candidate definition block and assembles the blocks that carry both
// an attribution and at least one non-trivial paragraph.
func extractDefinitions(content *goquery.Selection, word string) []Definition {
	definitions := []Definition{}

	content.Find("h1").Each(func(_ int, heading *goquery.Selection) {
		sourceSel := heading.Find("small").First()
		if sourceSel.Length() == 0 {
			return
		}

		block := collectBlock(heading.Get(0), sourceSel.Get(0))
		if len(block.paragraphs) == 0 {
			return
		}

		source := stripSourceLabel(collectText(block.source))
		if source == "" {
			return
		}

		var paragraphs []string
		for _, node := range block.paragraphs {
			text := cleanParagraph(collectText(node), word)
			if utf8.RuneCountInString(text) > 1 {
				paragraphs = append(paragraphs, text)
			}
		}
		if len(paragraphs) == 0 {
			return
		}

		definitions = append(definitions, Definition{
			Source:     source,
			Paragraphs: paragraphs,
		})
	})

	return definitions
}

// collectBlock walks the siblings following a heading, gathering paragraph
// elements until the block closes on the next heading or an hr. A p that
// wraps nested p elements is flattened into the nested ones.
func collectBlock(heading *html.Node, source *html.Node) defBlock {
	block := defBlock{source: source}
	state := stateCollecting

	for sibling := heading.NextSibling; sibling != nil && state == stateCollecting; sibling = sibling.NextSibling {
		if sibling.Type != html.ElementNode {
			continue
		}
		switch sibling.Data {
		case "h1", "hr":
			state = stateClosed
		case "p":
			if nested := nestedParagraphs(sibling); len(nested) > 0 {
				block.paragraphs = append(block.paragraphs, nested...)
			} else {
				block.paragraphs = append(block.paragraphs, sibling)
			}
		}
	}

	return block
}

func nestedParagraphs(node *html.Node) []*html.Node {
	var nested []*html.Node

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "p" {
				nested = append(nested, c)
			}
			walk(c)
		}
	}
	walk(node)

	return nested
}

// cleanParagraph strips bracketed annotation spans and a leading
// self-reference to the queried word, in that order.
func cleanParagraph(text string, word string) string {
	text = stripBrackets(text)
	return stripLeadingWord(text, word)
}
