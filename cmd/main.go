package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/brettbedarf/yshell/config"
	"github.com/brettbedarf/yshell/filesystem"
	"github.com/brettbedarf/yshell/internal/util"
	"github.com/brettbedarf/yshell/requests"
	"github.com/brettbedarf/yshell/shell"
)

func main() {
	// Parse command line arguments
	var (
		configPath string
		verbose    int
		nodesDef   string
		echo       bool
	)
	flag.StringVar(&configPath, "config", "", "Path to a .yaml/.yml/.json config file")
	flag.StringVar(&configPath, "c", "", "--config (shorthand)")
	flag.StringVar(&nodesDef, "nodes", "", "Path to a nodes def file used to seed the namespace")
	flag.StringVar(&nodesDef, "n", "", "--nodes (shorthand)")
	flag.BoolVar(&echo, "echo", false, "Echo each input line after the prompt. Useful when input is piped.")
	flag.BoolVar(&echo, "e", false, "--echo (shorthand)")
	flag.IntVar(&verbose, "verbose", config.WarnVerbose, "Log verbosity level between 1 (error) and 5 (trace). Default is 2 (warn).")
	flag.IntVar(&verbose, "v", config.WarnVerbose, "--verbose (shorthand)")
	flag.Parse()

	util.InitializeLogger(config.VerboseToLogLvl(verbose))
	logger := util.GetLogger("main")

	if flag.NArg() > 0 {
		fmt.Fprintln(os.Stderr, "yshell: operands not permitted")
	}

	cfg := config.NewDefaultConfig()
	if configPath != "" {
		override, err := config.LoadConfigOverrideFile(configPath)
		if err != nil {
			logger.Fatal().Err(err).Str("config", configPath).Msg("Failed to load config file")
		}
		cfg.Merge(override)
	}
	// flags win over the config file when given explicitly
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "verbose", "v":
			cfg.Merge(&config.ConfigOverride{LogLvl: &verbose})
		case "echo", "e":
			cfg.Echo = echo
		}
	})
	util.InitializeLogger(cfg.LogLvl)
	logger = util.GetLogger("main")

	ns := filesystem.NewNamespace(cfg)
	logger.Info().Str("namespace", ns.ID().String()).Msg("yshell initializing")

	if nodesDef != "" {
		reqs, err := requests.LoadNodesFile(nodesDef)
		if err != nil {
			logger.Fatal().Err(err).Str("nodes", nodesDef).Msg("Failed to load nodes file")
		}

		dirAddCnt := 0
		for _, req := range reqs.Dirs {
			if _, err := ns.AddDirNode(req); err != nil {
				logger.Warn().Err(err).Str("path", req.Path).Msg("Failed to add directory request")
				continue
			}
			dirAddCnt++
		}
		fileAddCnt := 0
		for _, req := range reqs.Files {
			if _, err := ns.AddFileNode(req); err != nil {
				logger.Warn().Err(err).Str("path", req.Path).Msg("Failed to add file request")
				continue
			}
			fileAddCnt++
		}
		logger.Info().Int("directories", dirAddCnt).Int("files", fileAddCnt).Msg("Added new nodes to namespace")
	}

	sh := shell.New(cfg, ns, os.Stdout, os.Stderr)
	status := sh.Run(os.Stdin)
	fmt.Fprintf(os.Stderr, "yshell: exit(%d)\n", status)
	os.Exit(status)
}
