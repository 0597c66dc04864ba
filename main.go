// Copyright (C) 2025 by Ubaldo Porcheddu <ubaldo@eja.it>

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

const Version = "0.1.0"

type Config struct {
	cli           bool
	log           bool
	logFile       string
	timeout       int
	url           string
	userAgent     string
	web           bool
	webHost       string
	webPort       int
	webTlsPrivate string
	webTlsPublic  string
	word          string
}

var (
	options *Config
	scraper *Scraper
)

func parseConfig() (*Config, error) {
	options = &Config{}
	flag.BoolVar(&options.cli, "cli", false, "Interactive lookup")

	flag.BoolVar(&options.log, "log", false, "Enable logging")
	flag.StringVar(&options.logFile, "log-file", "", "Log file path")

	flag.IntVar(&options.timeout, "timeout", 10, "HTTP timeout in seconds")
	flag.StringVar(&options.url, "url", DefaultLookupURL, "Dictionary base url")
	flag.StringVar(&options.userAgent, "user-agent", DefaultUserAgent, "HTTP User-Agent header")

	flag.BoolVar(&options.web, "web", false, "Enable web interface")
	flag.StringVar(&options.webHost, "web-host", "localhost", "Web server host")
	flag.IntVar(&options.webPort, "web-port", 35249, "Web server port")
	flag.StringVar(&options.webTlsPrivate, "web-tls-private", "", "TLS private certificate")
	flag.StringVar(&options.webTlsPublic, "web-tls-public", "", "TLS public certificate")

	flag.StringVar(&options.word, "word", "", "Look up a single word and exit")

	flag.Usage = func() {
		fmt.Println("Copyright:", "2025 by Ubaldo Porcheddu <ubaldo@eja.it>")
		fmt.Println("Version:", Version)
		fmt.Printf("Usage: %s [options]\n", os.Args[0])
		fmt.Print("Options:\n\n")
		flag.PrintDefaults()
		fmt.Println()
	}

	flag.Parse()

	return options, nil
}

func main() {
	options, err := parseConfig()
	if err != nil {
		log.Fatalf("Error parsing command line: %v\n", err)
	}

	if flag.NFlag() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	if options.log || options.logFile != "" {
		if options.logFile != "" {
			logFile, err := os.OpenFile(options.logFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			}
			log.SetOutput(logFile)
		}
	} else {
		log.SetOutput(io.Discard)
	}

	scraper = NewScraper(options.url, options.userAgent, time.Duration(options.timeout)*time.Second)

	if options.word != "" {
		LookupPrint(scraper, options.word)
	}

	if options.cli {
		LookupCli(scraper)
	}

	if options.web {
		server, err := NewWebServer(scraper.Lookup)
		if err != nil {
			log.Fatalf("Error creating web server: %v\n", err)
		}

		if err := server.Start(options.webHost, options.webPort); err != nil {
			log.Fatalf("Error starting web server: %v\n", err)
		}
	}
}
