package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/srivarthinivelu/tender-poc/pkg/analysis"
	"github.com/srivarthinivelu/tender-poc/pkg/config"
	"github.com/srivarthinivelu/tender-poc/pkg/debug"
	"github.com/srivarthinivelu/tender-poc/pkg/export"
	"github.com/srivarthinivelu/tender-poc/pkg/session"
	"github.com/srivarthinivelu/tender-poc/pkg/store"
	"github.com/srivarthinivelu/tender-poc/pkg/ui"
	"github.com/srivarthinivelu/tender-poc/pkg/version"
	"github.com/srivarthinivelu/tender-poc/pkg/watcher"
)

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	dataPath := flag.String("data", "", "Path to the tenders JSON file (overrides config)")
	attachDir := flag.String("attachments", "", "Attachments directory (overrides config)")
	link := flag.String("link", "", "Deep link to open, e.g. \"page=Opportunity Detail&id=OPP-0002\"")
	stageFlag := flag.String("stage", "", "Initial stage filter (overrides config)")
	newFlag := flag.Bool("new", false, "Create an opportunity from the command line and exit")
	exportSVG := flag.String("export-svg", "", "Write a pipeline stage chart to the given path and exit")
	flag.Parse()

	if *help {
		fmt.Println("Usage: tm [options]")
		fmt.Println("\nA terminal manager for tender opportunities.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("tm %s\n", version.Version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}
	if *dataPath != "" {
		cfg.Storage.DataPath = *dataPath
	}
	if *attachDir != "" {
		cfg.Storage.AttachDir = *attachDir
	}
	if *stageFlag != "" {
		cfg.UI.DefaultStageFilter = *stageFlag
	}

	st := store.New(cfg.Storage.DataPath, cfg.Storage.AttachDir)
	doc := st.Load()
	debug.Log("loaded %d opportunities from %s", len(doc.Opportunities), st.DataPath)

	if *newFlag {
		opp, err := ui.RunCreateWizard(st, cfg, doc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created %s: %s\n", opp.ID, opp.Name)
		os.Exit(0)
	}

	if *exportSVG != "" {
		summary := analysis.Summarize(doc.Opportunities)
		if err := export.StageChartFile(*exportSVG, summary, ""); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s (%d opportunities)\n", *exportSVG, summary.Count)
		os.Exit(0)
	}

	startLink := session.ParseDeepLink(*link)

	// Live reload is best effort; the UI runs fine without it.
	var w *watcher.Watcher
	if fw, err := watcher.New(st.DataPath, watcher.WithDebounce(200*time.Millisecond)); err == nil {
		if err := fw.Start(); err == nil {
			w = fw
		} else {
			debug.Log("watcher start: %v (live reload disabled)", err)
		}
	} else {
		debug.Log("watcher init: %v (live reload disabled)", err)
	}

	m := ui.New(st, cfg, doc, startLink, w)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
