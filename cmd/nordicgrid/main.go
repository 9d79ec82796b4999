// Nordic Grid is a tile-grid card puzzle: play cards to reach and open every
// chest on the board.
// Usage: nordicgrid [--version] [--plain] [--script <file>] [--trace] [--config <file>] [--log <file>] <level file or directory>
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/nathoo/nordicgrid/cli"
	"github.com/nathoo/nordicgrid/config"
	"github.com/nathoo/nordicgrid/engine"
	"github.com/nathoo/nordicgrid/loader"
	"github.com/nathoo/nordicgrid/tui"
	"github.com/nathoo/nordicgrid/types"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: nordicgrid [--version] [--plain] [--script <file>] [--trace] [--config <file>] [--log <file>] <level file or directory>\n"

func main() {
	plain := false
	trace := false
	configFile := "nordicgrid.yaml"
	var levelPath, scriptFile, logFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("nordicgrid %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--script", "--config", "--log":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "%s requires a file path\n", args[i])
				os.Exit(1)
			}
			switch args[i] {
			case "--script":
				scriptFile = args[i+1]
			case "--config":
				configFile = args[i+1]
			case "--log":
				logFile = args[i+1]
			}
			i++
		default:
			if levelPath == "" {
				levelPath = args[i]
			}
		}
	}

	if levelPath == "" {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
	log, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	levels, err := loadLevels(levelPath, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	opts := []engine.Option{
		engine.WithLogger(log),
		engine.WithBaseline(types.Stats{
			types.Attack: *cfg.Baseline.Attack,
			types.Armor:  *cfg.Baseline.Armor,
			types.Health: *cfg.Baseline.Health,
		}),
		engine.WithBonuses(engine.Bonuses{
			Armor:  cfg.Cards.ArmorBonus,
			Health: cfg.Cards.HealthBonus,
		}),
	}
	if cfg.Cards.ShuffleSeed != 0 {
		opts = append(opts, engine.WithShuffle(cfg.Cards.ShuffleSeed))
	}
	campaign := engine.NewCampaign(levels, opts...)

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(campaign, cfg.SaveDir)
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		c.Run()
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		c := cli.New(campaign, cfg.SaveDir)
		c.Trace = trace
		c.Run()
		return
	}

	if err := tui.Run(campaign, cfg.SaveDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadLevels loads a single level file, or every level in a directory.
func loadLevels(path string, log *zap.Logger) ([]*types.LevelDef, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return loader.LoadCampaign(path, log)
	}
	def, err := loader.Load(path, log)
	if err != nil {
		return nil, err
	}
	return []*types.LevelDef{def}, nil
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
