package main

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dj-ayush/Pdf-Navigation/internal/app"
	"github.com/dj-ayush/Pdf-Navigation/internal/client"
	"github.com/dj-ayush/Pdf-Navigation/internal/config"
)

func main() {
	wsURL := flag.String("url", "", "WebSocket URL of the page rendering server (overrides config)")
	cfgPath := flag.String("config", "", "Path to a pdfnav.yaml config file")
	debug := flag.Bool("debug", false, "Log to pdfnav.log")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *wsURL != "" {
		cfg.Server.URL = *wsURL
	}

	if *debug {
		f, err := tea.LogToFile("pdfnav.log", "pdfnav")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	// Derive the HTTP base URL from the WebSocket URL.
	httpBase := deriveHTTPBase(cfg.Server.URL)

	ws := client.NewWSClient(cfg.Server.URL)
	httpClient := client.NewHTTPClient(httpBase)

	m := app.New(ws, httpClient, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// deriveHTTPBase converts ws://host:port/ws → http://host:port
func deriveHTTPBase(wsURL string) string {
	u, err := url.Parse(wsURL)
	if err != nil {
		return "http://127.0.0.1:5000"
	}
	scheme := "http"
	if strings.HasPrefix(u.Scheme, "wss") {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, u.Host)
}
