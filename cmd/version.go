package cmd

import (
	"fmt"
	"runtime"
)

// Set via -ldflags "-X github.com/kamusis/mtlist/cmd.version=...".
var (
	version   = "dev"
	commit    = ""
	buildDate = ""
)

// versionTemplate renders the --version output with build information.
func versionTemplate() string {
	return fmt.Sprintf("Version:    %s\nCommit:     %s\nBuild Date: %s\nGo Version: %s\nOS/Arch:    %s/%s\n",
		version, emptyAsNA(commit), emptyAsNA(buildDate), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

func emptyAsNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
