// Copyright (C) 2025 by Ubaldo Porcheddu <ubaldo@eja.it>

package main

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

const sourceLabel = "ਸਰੋਤ"

var (
	bracketRegexp = regexp.MustCompile(`\[.*?\]`)
	spaceRegexp   = regexp.MustCompile(`\s+`)
)

func collapseSpace(text string) string {
	return strings.TrimSpace(spaceRegexp.ReplaceAllString(text, " "))
}

// collectText extracts the visible text of a node, inserting a space at
// every tag boundary so that text split across inline tags does not get
// concatenated without separation. Runs of whitespace are collapsed later.
func collectText(node *html.Node) string {
	var sb strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
			return
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "style", "script", "math", "table":
				return // Skip these elements
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)

	return collapseSpace(sb.String())
}

// stripBrackets removes square-bracketed annotation spans like [ਵਿਸ਼ੇਸ਼ਣ]
// and collapses the whitespace left behind.
func stripBrackets(text string) string {
	return collapseSpace(bracketRegexp.ReplaceAllString(text, " "))
}

// stripLeadingWord removes the queried word from the start of a definition,
// together with at most one trailing separator. The match is case
// insensitive and only applies to the leading token; occurrences further
// into the text are left alone.
func stripLeadingWord(text string, word string) string {
	if word == "" {
		return strings.TrimSpace(text)
	}
	re, err := regexp.Compile(`(?i)^` + regexp.QuoteMeta(word) + `\s*[.,—:]?`)
	if err != nil {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(re.ReplaceAllString(text, ""))
}

func stripSourceLabel(text string) string {
	text = strings.ReplaceAll(text, sourceLabel+" :", "")
	text = strings.ReplaceAll(text, sourceLabel+":", "")
	return strings.TrimSpace(text)
}

func isGurmukhi(word string) bool {
	for _, r := range word {
		if r >= 0x0A00 && r <= 0x0A7F {
			return true
		}
	}
	return false
}
