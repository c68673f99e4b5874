package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"infosetu/config"
	"infosetu/model"
	"infosetu/ocr"
	"infosetu/resolver"
	"infosetu/speech"
	"infosetu/storage"
	"infosetu/ui"
)

const (
	Version = "v0.01.00"
	License = "Apache-2.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize debug logging after config is loaded
	config.InitDebugLog(cfg.DataDir())

	// Clean up old tmp dir in cache directory (crash recovery)
	if err := config.CleanupTempDir(); err != nil && config.DebugLog != nil {
		config.DebugLog.Printf("Warning: failed to cleanup old temp directory: %v", err)
	}

	// Capture and extraction scratch files live here (never synced to cloud)
	if err := config.CreateTempDir(); err != nil {
		fmt.Printf("Failed to create secure temp directory: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := config.CleanupTempDir(); err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("Warning: failed to cleanup temp directory on exit: %v", err)
		}
	}()

	sessionStorage, err := storage.NewSessionStorage(cfg.DataDir())
	if err != nil {
		fmt.Printf("Failed to initialize session storage: %v\n", err)
		os.Exit(1)
	}

	knowledge, err := storage.NewKnowledgeStore(cfg.DataDir())
	if err != nil {
		fmt.Printf("Failed to initialize knowledge base: %v\n", err)
		os.Exit(1)
	}
	defer knowledge.Close()

	entries, err := knowledge.LoadAll()
	if err != nil {
		fmt.Printf("Failed to load knowledge base: %v\n", err)
		os.Exit(1)
	}

	// The rule set is immutable from here on; the resolver owns the only
	// reference
	rules := resolver.NewRuleSet(entries)
	queryResolver := resolver.New(rules, resolver.InitializeGenerator(cfg))

	// Optional platform capabilities: a nil adapter disables the matching
	// affordance in the UI
	caps := model.Capabilities{Resolver: queryResolver}
	if synth := speech.NewSynthesizer(cfg.Speech); synth != nil {
		caps.Synth = synth
	}
	if recognizer := speech.NewRecognizer(cfg.Speech); recognizer != nil {
		caps.Voice = recognizer
	}
	if extractor := ocr.NewExtractor(cfg.OCR); extractor != nil {
		caps.Extractor = extractor
	}

	// Resume the previous conversation if one was saved
	var lastSession *storage.Session
	if lastSessionID, err := sessionStorage.LoadCurrentSessionID(); err == nil {
		lastSession, _ = sessionStorage.Load(lastSessionID)
	}

	p := tea.NewProgram(
		ui.NewAppView(cfg, caps, sessionStorage, lastSession, Version, License),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running infosetu: %v\n", err)
		os.Exit(1)
	}
}
