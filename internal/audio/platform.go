package audio

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/google/shlex"
	"github.com/kballard/go-shellquote"
)

// Family is an operating-system family with its own player candidates.
type Family int

const (
	// FamilyOther is any OS without a candidate list.
	FamilyOther Family = iota
	// FamilyLinux covers Linux and the BSDs.
	FamilyLinux
	// FamilyMac covers macOS.
	FamilyMac
	// FamilyWindows covers Windows.
	FamilyWindows
)

// String returns the family name.
func (f Family) String() string {
	switch f {
	case FamilyLinux:
		return "linux-like"
	case FamilyMac:
		return "mac-like"
	case FamilyWindows:
		return "windows-like"
	default:
		return "other"
	}
}

// FamilyFor maps a runtime.GOOS value to its family.
func FamilyFor(goos string) Family {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return FamilyLinux
	case "darwin":
		return FamilyMac
	case "windows":
		return FamilyWindows
	default:
		return FamilyOther
	}
}

// Template maps a sound file path to a full player invocation.
type Template func(path string) string

// Candidate is a player binary and the invocation it needs.
type Candidate struct {
	Name     string
	Template Template
}

// Candidates lists the players for each family in priority order.
var Candidates = map[Family][]Candidate{
	FamilyLinux: {
		{Name: "ffplay", Template: func(path string) string {
			return "ffplay -v 0 -nodisp -autoexit " + shellquote.Join(path)
		}},
		{Name: "cvlc", Template: func(path string) string {
			return "cvlc " + shellquote.Join(path) + " vlc://quit"
		}},
	},
	FamilyMac: {
		{Name: "afplay", Template: func(path string) string {
			return "afplay " + shellquote.Join(path)
		}},
	},
	FamilyWindows: {
		{Name: "powershell", Template: mediaPlayerScript("powershell")},
		{Name: "pwsh", Template: mediaPlayerScript("pwsh")},
	},
}

// mediaPlayerScript plays the file through a WPF MediaPlayer and keeps the
// shell alive for the clip's duration plus one second.
func mediaPlayerScript(host string) Template {
	return func(path string) string {
		// Forward slashes keep the script intact through argv splitting;
		// MediaPlayer.Open accepts them.
		p := strings.ReplaceAll(path, `\`, "/")
		p = strings.ReplaceAll(p, "'", "''")
		return host + ` -c "Add-Type -AssemblyName presentationCore; ` +
			`$player = New-Object System.Windows.Media.MediaPlayer; ` +
			`$player.Open('` + p + `'); ` +
			`$player.Play(); ` +
			`Start-Sleep 1; ` +
			`Start-Sleep -s $player.NaturalDuration.TimeSpan.TotalSeconds; ` +
			`Exit;"`
	}
}

// LookPathFunc resolves a binary name on the executable search path.
type LookPathFunc func(file string) (string, error)

// Player is the chosen player for this process.
type Player struct {
	Family   Family
	Name     string // candidate name as used in the invocation
	Path     string // resolved executable
	template Template
}

// Invocation returns the shell invocation that plays path.
func (p *Player) Invocation(path string) string {
	return p.template(path)
}

// Command returns the invocation for path split into argv.
func (p *Player) Command(path string) ([]string, error) {
	argv, err := shlex.Split(p.Invocation(path))
	if err != nil {
		return nil, fmt.Errorf("malformed invocation: %w", err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty invocation")
	}
	return argv, nil
}

// ChoosePlayer returns the first candidate for family that lookPath
// resolves. A nil lookPath uses exec.LookPath.
func ChoosePlayer(family Family, lookPath LookPathFunc) (*Player, error) {
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	candidates, ok := Candidates[family]
	if !ok {
		return nil, &UnsupportedPlatformError{GOOS: family.String()}
	}

	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.Name)
		resolved, err := lookPath(c.Name)
		if err != nil {
			continue
		}
		return &Player{
			Family:   family,
			Name:     c.Name,
			Path:     resolved,
			template: c.Template,
		}, nil
	}

	return nil, &NoPlayerFoundError{Family: family, Candidates: names}
}

// ChoosePlayerFor is ChoosePlayer for a runtime.GOOS value.
func ChoosePlayerFor(goos string, lookPath LookPathFunc) (*Player, error) {
	family := FamilyFor(goos)
	if family == FamilyOther {
		return nil, &UnsupportedPlatformError{GOOS: goos}
	}
	return ChoosePlayer(family, lookPath)
}
