// Copyright (C) 2025 by Ubaldo Porcheddu <ubaldo@eja.it>

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"strings"
)

type APIRequest struct {
	Word string `json:"word,omitempty"`
}

type APIResponse struct {
	Status      string       `json:"status"`
	Message     string       `json:"message,omitempty"`
	Word        string       `json:"word,omitempty"`
	Definitions []Definition `json:"definitions,omitempty"`
}

type lookupFunc func(ctx context.Context, word string) ([]Definition, error)

type WebServer struct {
	template *template.Template
	lookup   lookupFunc
}

// Example words offered as one-click shortcuts on the search page.
var exampleWords = []string{"ਵਿਰਾਸਤ", "ਪੰਜਾਬ", "ਸ਼ਬਦ", "ਅਲੌਕਿਕ"}

type searchPage struct {
	Word        string
	Input       string
	HasQuery    bool
	Definitions []Definition
	Error       string
	Script      string
	Length      int
	Examples    []string
}

func NewWebServer(lookup lookupFunc) (*WebServer, error) {
	tmpl, err := template.ParseFS(assets, "assets/templates/*")
	if err != nil {
		return nil, fmt.Errorf("error parsing templates: %v", err)
	}

	return &WebServer{
		template: tmpl,
		lookup:   lookup,
	}, nil
}

func (s *WebServer) executeTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	err := s.template.ExecuteTemplate(w, templateName, data)
	if err != nil {
		http.Error(w, fmt.Sprintf("error executing template: %v", err), http.StatusInternalServerError)
		return
	}
}

func (s *WebServer) handleHTMLSearch(w http.ResponseWriter, r *http.Request) {
	input := r.FormValue("word")
	word := strings.TrimSpace(input)

	page := searchPage{
		Word:     word,
		Input:    input,
		HasQuery: word != "",
		Examples: exampleWords,
	}

	if word != "" {
		page.Length = len([]rune(word))
		if isGurmukhi(word) {
			page.Script = "Gurmukhi (ਗੁਰਮੁਖੀ)"
		} else {
			page.Script = "English/Roman"
		}

		definitions, err := s.lookup(r.Context(), word)
		if err != nil {
			page.Error = err.Error()
		} else {
			page.Definitions = definitions
		}
	}

	s.executeTemplate(w, "search.html", page)
}

func (s *WebServer) sendAPIError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(APIResponse{
		Status:  "error",
		Message: message,
	})
}

func (s *WebServer) handleAPILookup(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var word string

	if r.Method == "POST" {
		var request APIRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			s.sendAPIError(w, "Invalid JSON request", http.StatusBadRequest)
			return
		}
		word = request.Word
	} else {
		word = r.URL.Query().Get("word")
	}

	word = strings.TrimSpace(word)
	if word == "" {
		s.sendAPIError(w, "Word parameter is required", http.StatusBadRequest)
		return
	}
	log.Printf("API %s lookup: %s", r.Method, word)

	definitions, err := s.lookup(r.Context(), word)
	if err != nil {
		s.sendAPIError(w, fmt.Sprintf("Lookup error: %v", err), http.StatusInternalServerError)
		return
	}

	response := APIResponse{
		Status:      "success",
		Word:        word,
		Definitions: definitions,
	}
	if len(definitions) == 0 {
		response.Message = "No definitions found"
	}
	json.NewEncoder(w).Encode(response)
}

func (s *WebServer) Start(host string, port int) error {
	http.HandleFunc("/", s.handleHTMLSearch)
	http.HandleFunc("/api/lookup", s.handleAPILookup)

	address := fmt.Sprintf("%s:%d", host, port)
	if options.webTlsPrivate != "" && options.webTlsPublic != "" {
		if _, err := os.Stat(options.webTlsPrivate); err != nil {
			return fmt.Errorf("failed to open private certificate")
		} else if _, err := os.Stat(options.webTlsPublic); err != nil {
			return fmt.Errorf("failed to open public certificate")
		} else {
			log.Println("Starting server on https://" + address)
			if err := http.ListenAndServeTLS(address, options.webTlsPublic, options.webTlsPrivate, nil); err != nil {
				return err
			}
		}
	} else {
		log.Println("Starting server on http://" + address)
		if err := http.ListenAndServe(address, nil); err != nil {
			return err
		}
	}

	return nil
}
