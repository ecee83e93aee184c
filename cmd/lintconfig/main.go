package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/speakeasy-api/lintconfig/cmd/lintconfig/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// getVersionInfo returns version information, prioritizing ldflags values over build info
func getVersionInfo() (string, string, string) {
	// If version/commit/date were set via ldflags (GoReleaser), use those
	if version != "dev" || commit != "none" || date != "unknown" {
		return version, commit, date
	}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return version, commit, date
	}

	moduleVersion := version
	if buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		moduleVersion = buildInfo.Main.Version
	}

	vcsCommit := commit
	vcsTime := date

	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			vcsCommit = setting.Value[:min(len(setting.Value), 7)]
		case "vcs.time":
			vcsTime = setting.Value
		}
	}

	return moduleVersion, vcsCommit, vcsTime
}

func versionTemplate(commit, date string) string {
	var sb strings.Builder
	sb.WriteString(`{{printf "%s" .Version}}`)

	if commit != "none" && commit != "" {
		sb.WriteString("\nBuild: " + commit)
	}
	if date != "unknown" && date != "" {
		sb.WriteString("\nBuilt: " + date)
	}
	sb.WriteString("\n")

	return sb.String()
}

func main() {
	currentVersion, currentCommit, currentDate := getVersionInfo()

	rootCmd := commands.NewRootCommand(&commands.App{}, currentVersion)
	rootCmd.SetVersionTemplate(versionTemplate(currentCommit, currentDate))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
