// Copyright (C) 2025 by Ubaldo Porcheddu <ubaldo@eja.it>

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func LookupCli(scraper *Scraper) error {
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("> ")
		line, _ := reader.ReadString('\n')
		word := strings.TrimSpace(line)
		if word == "" {
			return nil
		}

		LookupPrint(scraper, word)
	}
}

// LookupPrint performs one lookup and renders it to stdout, with distinct
// messages for the empty and failure outcomes.
func LookupPrint(scraper *Scraper, word string) {
	definitions, err := scraper.Lookup(context.Background(), word)
	if err != nil {
		fmt.Printf("Error fetching definitions: %v\n", err)
		fmt.Println("Check your internet connection and the word spelling, then try again.")
		return
	}

	if len(definitions) == 0 {
		fmt.Printf("No definitions found for %s, please try a different word or check the spelling.\n", word)
		return
	}

	for i, definition := range definitions {
		fmt.Printf("%d.\n", i+1)
		for _, paragraph := range definition.Paragraphs {
			fmt.Println(paragraph)
		}
		fmt.Printf("[%s]\n\n", definition.Source)
	}
}
