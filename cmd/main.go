package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/smasonuk/pointview"
	"github.com/spf13/pflag"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "TOML or YAML config file, reloaded on change")
	source := pflag.String("source", "", "point source: sphere, helix or terrain")
	points := pflag.IntP("points", "n", 0, "number of points to generate")
	seed := pflag.Int64("seed", 0, "random seed for the point source")
	width := pflag.Int("width", 0, "window width")
	height := pflag.Int("height", 0, "window height")
	pflag.Parse()

	cfg := pointview.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = pointview.LoadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	// flags override the file
	if pflag.CommandLine.Changed("source") {
		cfg.Cloud.Source = *source
	}
	if pflag.CommandLine.Changed("points") {
		cfg.Cloud.Points = *points
	}
	if pflag.CommandLine.Changed("seed") {
		cfg.Cloud.Seed = *seed
	}
	if pflag.CommandLine.Changed("width") {
		cfg.Window.Width = *width
	}
	if pflag.CommandLine.Changed("height") {
		cfg.Window.Height = *height
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	log.Printf("Generating %d %s points...", cfg.Cloud.Points, cfg.Cloud.Source)
	cloud, err := cfg.Cloud.NewCloud()
	if err != nil {
		log.Fatal(err)
	}

	var updates <-chan pointview.Config
	if *configPath != "" {
		w, err := pointview.WatchConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		defer w.Close()
		updates = w.Updates()
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(pointview.NewViewer(cfg, cloud, updates)); err != nil {
		log.Fatal(err)
	}
}
