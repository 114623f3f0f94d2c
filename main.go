package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"fcat/cmd"
	"fcat/pkg/logging"

	"github.com/fatih/color"
	"golang.org/x/term"
)

func main() {
	err := cmd.Execute()
	syncLogger()

	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
}

// syncLogger flushes the global logger. Sync on a pipe or /dev/null fails
// with EINVAL, so it only runs when stderr is a terminal or a regular file.
func syncLogger() {
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return
	}
	if syncErr := logging.Logger.Sync(); syncErr != nil {
		lowerErr := strings.ToLower(syncErr.Error())
		if !strings.Contains(lowerErr, "invalid argument") && !strings.Contains(lowerErr, "inappropriate ioctl") {
			log.Printf("Logger sync failed: %v", syncErr)
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
