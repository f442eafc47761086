package git

import (
	"os"

	"github.com/flanksource/commons/logger"
	gogit "github.com/go-git/go-git/v5"

	"github.com/flanksource/arch-map/models"
)

// CollectEnvironment builds the environment fingerprint attached to every
// run: current branch, short commit hash and message from the repository at
// root, plus invoking user, hostname and tool version. Lookup failures are
// never fatal; missing fields stay empty or "unknown".
func CollectEnvironment(root, toolVersion string) models.Environment {
	env := models.Environment{
		ToolVersion: toolVersion,
		User:        currentUser(),
	}

	if hostname, err := os.Hostname(); err == nil {
		env.Hostname = hostname
	}

	repo, err := gogit.PlainOpenWithOptions(root, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		logger.Debugf("no git repository at %s: %v", root, err)
		env.GitBranch = "unknown"
		return env
	}

	head, err := repo.Head()
	if err != nil {
		logger.Debugf("failed to resolve HEAD: %v", err)
		env.GitBranch = "unknown"
		return env
	}

	if head.Name().IsBranch() {
		env.GitBranch = head.Name().Short()
	} else {
		env.GitBranch = "detached"
	}

	hash := head.Hash()
	env.GitCommitHash = hash.String()[:8]

	if commit, err := repo.CommitObject(hash); err == nil {
		env.GitCommitMessage = commit.Message
	}

	return env
}

func currentUser() string {
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "unknown"
}
