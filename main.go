package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/convolve/config"
	"github.com/milk9111/convolve/session"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults are built in)")
	headless := flag.Bool("headless", false, "write the charts and pause snapshots as PNG and exit")
	outDir := flag.String("out", "", "snapshot directory (overrides snapshot_dir)")
	frames := flag.Bool("frames", false, "also write every animation frame as PNG")
	watch := flag.Bool("watch", true, "reload when the config or function scripts change")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *outDir != "" {
		cfg.SnapshotDir = *outDir
	}

	run, err := session.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if *headless {
		dir, err := run.WriteSnapshots(cfg.SnapshotDir, *frames)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("snapshots: wrote %s", dir)
		return
	}

	var watcher *config.Watcher
	if *watch {
		watcher = newWatcher(*configPath, cfg.FunctionsDir)
		if watcher != nil {
			defer watcher.Close()
		}
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("convolve")

	game := NewGame(*configPath, cfg.SnapshotDir, *frames, run, watcher, NewClipboard())
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

// newWatcher watches the config file's directory and the functions
// directory, skipping whichever does not exist.
func newWatcher(configPath, functionsDir string) *config.Watcher {
	var dirs []string
	if configPath != "" {
		dirs = append(dirs, filepath.Dir(configPath))
	}
	if info, err := os.Stat(functionsDir); err == nil && info.IsDir() {
		dirs = append(dirs, functionsDir)
	}
	if len(dirs) == 0 {
		return nil
	}

	w, err := config.NewWatcher(dirs...)
	if err != nil {
		log.Printf("watch: disabled: %v", err)
		return nil
	}
	return w
}
