package version

import "fmt"

const (
	Version = "v0.1.0"

	colorReset    = "\033[0m"
	colorCyanBold = "\033[36;1m"
)

// asciiArtTpl returns the ASCII art banner shared by the rdb binaries.
func asciiArtTpl() string {
	asciiArt := `
    ____  ____  ____
   / __ \/ __ \/ __ )
  / /_/ / / / / __  |
 / _, _/ /_/ / /_/ /
/_/ |_/_____/_____/
%s ` + Version + `
A thin wrapper around the embedded SQLite engine`

	asciiArt = asciiArt[1:]                          // This just removes the first newline character
	asciiArt = colorCyanBold + asciiArt + colorReset // Add color to the ASCII art

	return asciiArt
}

// CLIVersion returns the banner for the interactive shell.
func CLIVersion() string {
	return fmt.Sprintf(asciiArtTpl(), "Shell")
}

// BenchVersion returns the banner for the benchmark tool.
func BenchVersion() string {
	return fmt.Sprintf(asciiArtTpl(), "Bench")
}

// DemoVersion returns the banner for the demo walkthrough.
func DemoVersion() string {
	return fmt.Sprintf(asciiArtTpl(), "Demo")
}
