package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/splitview/internal/app"
	"github.com/treykane/splitview/internal/config"
)

func main() {
	layoutPath := flag.String("layout", "", "layout document to open (default: layout_file from config.json)")
	initLayout := flag.Bool("init", false, "write the demo layout to the layout path and exit")
	force := flag.Bool("force", false, "with -init, overwrite an existing layout")
	flag.Parse()

	cfg, err := config.LoadOrDefault()
	if err != nil {
		fail(err)
	}
	if *layoutPath != "" {
		path, err := config.NormalizePath(*layoutPath)
		if err != nil {
			fail(fmt.Errorf("invalid -layout: %w", err))
		}
		cfg.LayoutFile = path
	}

	if *initLayout {
		if err := writeDemoLayout(cfg.LayoutFile, *force); err != nil {
			fail(err)
		}
		fmt.Println("wrote", cfg.LayoutFile)
		return
	}

	m, err := app.New(cfg)
	if err != nil {
		fail(err)
	}
	if err := run(m, tea.WithAltScreen(), tea.WithMouseAllMotion()); err != nil {
		fail(err)
	}
}

// closer is a program model holding resources such as file watches.
type closer interface {
	tea.Model
	Close() error
}

// run drives the program and closes the model before returning, whether or
// not the program failed. fail exits the process, so nothing may be deferred
// past it.
func run(m closer, opts ...tea.ProgramOption) error {
	_, runErr := tea.NewProgram(m, opts...).Run()
	closeErr := m.Close()
	if runErr != nil {
		return runErr
	}
	return closeErr
}

func writeDemoLayout(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use -force to overwrite)", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return config.SaveLayout(path, config.DefaultLayout())
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
