package version

import (
	"fmt"

	"github.com/fatih/color"
)

// Version is the csv2sqlite release, overridden at build time with
// -ldflags "-X github.com/ATechAdventurer/csv2sqlite/internal/version.Version=...".
var Version = "v0.1.0"

// banner is the ASCII art shown when the CLI starts.
const banner = `
                ___            _ _ _       
  ___ _____   _|__ \ ___  __ _| (_) |_ ___ 
 / __/ __\ \ / / / // __|/ _' | | | __/ _ \
| (__\__ \\ V / / /_\__ \ (_| | | | ||  __/
 \___|___/ \_/ |____|___/\__, |_|_|\__\___|
                            |_|            `

// Banner returns the colored ASCII art followed by the version line.
func Banner() string {
	art := color.New(color.FgCyan, color.Bold).Sprint(banner[1:])
	return fmt.Sprintf("%s\n%s", art, CLIVersion())
}

// CLIVersion returns the one line version of csv2sqlite.
func CLIVersion() string {
	return "csv2sqlite " + Version
}
