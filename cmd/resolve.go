package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MyCarrier-DevOps/go-gitrange/internal/config"
	"github.com/MyCarrier-DevOps/go-gitrange/internal/engine"
	"github.com/MyCarrier-DevOps/go-gitrange/internal/event"
	"github.com/MyCarrier-DevOps/go-gitrange/internal/git"
	"github.com/MyCarrier-DevOps/go-gitrange/internal/logger"
	"github.com/MyCarrier-DevOps/go-gitrange/internal/output"
	"github.com/MyCarrier-DevOps/go-gitrange/internal/resolve"

	"github.com/spf13/cobra"
)

// configFileNames lists the files searched for configuration in order.
// Checks .github/ first, then the repo root directory.
var configFileNames = []string{
	".github/gitrange.yml",
	"gitrange.yml",
}

func resolveRunE(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	// 1. Build logger.
	log, err := logger.New(flagVerbosity)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// 2. Open repository.
	repo, err := git.Open(flagPath)
	if err != nil {
		return fmt.Errorf("opening repository: %w", err)
	}

	// 3. Load configuration.
	cfg, err := loadConfig(repo.WorkingDirectory())
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	remote := cfg.Remote
	if flagRemote != "" {
		remote = flagRemote
	}

	// 4. Build the event context from the CI environment.
	evCtx, err := event.LoadFromEnvironment(flagBase, flagHead)
	if err != nil {
		return fmt.Errorf("loading event context: %w", err)
	}
	if cfg.DefaultBranch != "" {
		evCtx.DefaultBranch = cfg.DefaultBranch
	}

	// 5. Derive the initial base/head pair for this event kind.
	pair, err := event.BaseAndHeadNames(evCtx, repo, log)
	if err != nil {
		return fmt.Errorf("deriving base and head: %w", err)
	}

	// 6. Fetch and resolve names to commit ids when needed.
	base, head := pair.Base, pair.Head
	if pair.NeedsResolution {
		if err := repo.FetchBounded(ctx, remote, cfg.FetchDepth, []string{base, head}); err != nil {
			return err
		}

		resolver := resolve.NewResolver(repo)
		baseRef, err := resolver.Resolve(base)
		if err != nil {
			return err
		}
		headRef, err := resolver.Resolve(head)
		if err != nil {
			return err
		}
		base, head = baseRef.Sha, headRef.Sha
	}

	// 7. Ensure the merge base is available and compute depths.
	eng := engine.New(repo, log, remote, cfg.FetchDepth)
	result, err := eng.Determine(ctx, base, head)
	if err != nil {
		return err
	}

	// 8. Write output.
	return writeOutput(result)
}

// loadConfig loads configuration from a file or defaults.
func loadConfig(workDir string) (config.Effective, error) {
	builder := config.NewBuilder()

	configPath := flagConfig
	if configPath == "" {
		configPath = findConfigFile(workDir)
	}

	if configPath != "" {
		userCfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return config.Effective{}, err
		}
		builder.Add(userCfg)
	}

	return builder.Build(), nil
}

// findConfigFile searches for a config file in the working directory.
func findConfigFile(dir string) string {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// writeOutput writes the result in the requested format.
func writeOutput(result engine.Result) error {
	w := os.Stdout
	vars := output.GetVariables(result)

	if flagShowVariable != "" {
		return output.WriteVariable(w, vars, flagShowVariable)
	}

	switch flagOutput {
	case "json":
		return output.WriteJSON(w, vars)
	case "github":
		return writeGitHubOutput(result)
	case "":
		return output.WriteAll(w, vars)
	default:
		return fmt.Errorf("unknown output format %q", flagOutput)
	}
}

// writeGitHubOutput appends the result to the step output file that
// GitHub Actions exposes via $GITHUB_OUTPUT.
func writeGitHubOutput(result engine.Result) error {
	path := os.Getenv("GITHUB_OUTPUT")
	if path == "" {
		return fmt.Errorf("github output format requires the GITHUB_OUTPUT environment variable")
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return output.WriteGitHubOutput(f, result)
}
