package cmd

import (
	"context"
	"fmt"
	"strings"

	ghprovider "github.com/MyCarrier-DevOps/go-gitrange/internal/github"

	"github.com/spf13/cobra"
)

var (
	flagToken      string
	flagAppID      int64
	flagAppKeyPath string
	flagGitHubURL  string
)

var remoteCmd = &cobra.Command{
	Use:   "remote owner/repo",
	Short: "Resolve a commit range via the GitHub API",
	Long: `Resolve the base/head commit range by querying the GitHub compare API.
No local clone is required, and no history deepening is involved because
the API always sees the full history.

The base defaults to the repository's default branch; the head must be
supplied with --head (branch, tag, or SHA).

Authentication (checked in order):
  1. --token flag or GITHUB_TOKEN env var
  2. --github-app-id + --github-app-key-path (PEM file) or GH_APP_ID + GH_APP_PRIVATE_KEY env vars

Examples:
  GITHUB_TOKEN=ghp_xxx gitrange remote myorg/myrepo --head feature-1
  gitrange remote myorg/myrepo --head v1.2.3 --base main --token ghp_xxx`,
	Args: cobra.ExactArgs(1),
	RunE: remoteRunE,
}

func init() {
	remoteCmd.Flags().StringVar(&flagToken, "token", "", "GitHub token (or set GITHUB_TOKEN env var)")
	remoteCmd.Flags().Int64Var(&flagAppID, "github-app-id", 0, "GitHub App ID (or set GH_APP_ID env var)")
	remoteCmd.Flags().StringVar(&flagAppKeyPath, "github-app-key-path", "", "path to GitHub App private key PEM file (or set GH_APP_PRIVATE_KEY env var)")
	remoteCmd.Flags().StringVar(&flagGitHubURL, "github-url", "", "GitHub API base URL for GitHub Enterprise (or set GITHUB_API_URL env var)")

	rootCmd.AddCommand(remoteCmd)
}

func remoteRunE(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	// 1. Parse owner/repo.
	owner, repo, err := parseOwnerRepo(args[0])
	if err != nil {
		return err
	}

	if flagHead == "" {
		return fmt.Errorf("remote resolution requires --head")
	}

	// 2. Resolve base URL from flag or env var.
	baseURL := ghprovider.ResolveBaseURL(flagGitHubURL)

	// 3. Create GitHub client.
	client, err := ghprovider.NewClient(ghprovider.ClientConfig{
		Token:      flagToken,
		AppID:      flagAppID,
		AppKeyPath: flagAppKeyPath,
		BaseURL:    baseURL,
		Owner:      owner,
	})
	if err != nil {
		return fmt.Errorf("creating GitHub client: %w", err)
	}

	// 4. Default the base to the repository's default branch.
	base := flagBase
	if base == "" {
		repoInfo, _, err := client.Repositories.Get(ctx, owner, repo)
		if err != nil {
			return fmt.Errorf("reading repository metadata: %w", err)
		}
		base = repoInfo.GetDefaultBranch()
		if base == "" {
			return fmt.Errorf("repository %s/%s has no default branch", owner, repo)
		}
	}

	// 5. Resolve the range through the compare API.
	resolver := ghprovider.NewRangeResolver(client, owner, repo)
	result, err := resolver.Resolve(ctx, base, flagHead)
	if err != nil {
		return err
	}

	// 6. Write output.
	return writeOutput(result)
}

func parseOwnerRepo(s string) (string, string, error) {
	parts := strings.SplitN(s, "/", 3)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository format %q, expected owner/repo", s)
	}
	return parts[0], parts[1], nil
}
