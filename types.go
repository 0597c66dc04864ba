// Copyright (C) 2025 by Ubaldo Porcheddu <ubaldo@eja.it>

package main

import "fmt"

type Definition struct {
	Source     string   `json:"source"`
	Paragraphs []string `json:"paragraphs"`
}

type ErrorKind int

const (
	ErrFetch ErrorKind = iota
	ErrStructure
	ErrUnexpected
)

func (k ErrorKind) String() string {
	switch k {
	case ErrFetch:
		return "fetch"
	case ErrStructure:
		return "structure"
	default:
		return "unexpected"
	}
}

// LookupError tags every failure coming out of the scraper so callers can
// tell a fetch problem from a page-layout problem without string matching.
type LookupError struct {
	Kind ErrorKind
	Err  error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}
