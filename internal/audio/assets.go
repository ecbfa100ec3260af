package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gopxl/beep/v2/mp3"

	"github.com/jmylchreest/pipecue/internal/tracker"
)

// Bundled sound files.
const (
	MetalPipe = "metal-pipe.mp3"
	GlassPipe = "glass-pipe.mp3"
)

// AssetName returns the bundled file for a cue.
func AssetName(cue tracker.Cue) (string, error) {
	switch cue {
	case tracker.CueMetal:
		return MetalPipe, nil
	case tracker.CueGlass:
		return GlassPipe, nil
	default:
		return "", fmt.Errorf("no sound for cue %q", cue)
	}
}

// Assets resolves the bundled sound files.
type Assets struct {
	dir string
}

// NewAssets returns assets rooted at dir. An empty dir locates the
// directory installed next to the running binary.
func NewAssets(dir string) *Assets {
	if dir == "" {
		dir = LocateAssetDir()
	}
	return &Assets{dir: expandPath(dir)}
}

// Dir returns the asset directory.
func (a *Assets) Dir() string {
	return a.dir
}

// Path returns the absolute path of the sound for cue.
func (a *Assets) Path(cue tracker.Cue) (string, error) {
	name, err := AssetName(cue)
	if err != nil {
		return "", err
	}

	path, err := filepath.Abs(filepath.Join(a.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to resolve sound path: %w", err)
	}

	if _, err := os.Stat(path); err != nil {
		return path, fmt.Errorf("sound file unavailable: %w", err)
	}
	return path, nil
}

// LocateAssetDir finds the asset directory relative to the executable:
// <exe dir>/assets first, then <exe dir>/../share/pipecue/assets.
// It returns the first candidate when neither exists.
func LocateAssetDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "assets"
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return assetDirFrom(filepath.Dir(exe))
}

func assetDirFrom(exeDir string) string {
	candidates := []string{
		filepath.Join(exeDir, "assets"),
		filepath.Join(exeDir, "..", "share", "pipecue", "assets"),
	}
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return candidates[0]
}

// SoundInfo describes a decoded sound file.
type SoundInfo struct {
	Path     string
	Size     int64
	Duration time.Duration
}

// Probe decodes an MP3 file and reports its size and playing time.
func Probe(path string) (*SoundInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sound file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to stat sound file: %w", err)
	}

	// The decoder takes ownership of f.
	streamer, format, err := mp3.Decode(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to decode sound: %w", err)
	}
	defer func() { _ = streamer.Close() }()

	if streamer.Len() <= 0 {
		return nil, errors.New("sound file has no samples")
	}

	return &SoundInfo{
		Path:     path,
		Size:     info.Size(),
		Duration: format.SampleRate.D(streamer.Len()),
	}, nil
}

// expandPath expands ~ to home directory.
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
