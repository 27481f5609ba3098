package system

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

var audioExtensions = []string{".mp3", ".wav", ".m4a", ".ogg", ".aac", ".flac"}

// ErrNoAudio is returned when an audio directory holds no audio files.
var ErrNoAudio = errors.New("no audio files found")

// FindLatestAudio returns the most recently modified audio file in dir.
func FindLatestAudio(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !isAudio(f.Name()) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("%w in %s", ErrNoAudio, dir)
	}
	return latestFile, nil
}

func isAudio(name string) bool {
	name = strings.ToLower(name)
	for _, ext := range audioExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// ResolveAudio turns the configured audio path into a file to mix in.
// A directory selects its newest audio file and fails with ErrNoAudio when
// it has none. A missing path yields "" so the video gets a silent track.
func ResolveAudio(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", nil
	}
	fi, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if !fi.IsDir() {
		return path, nil
	}
	return FindLatestAudio(path)
}

// GetAudioDuration asks ffprobe for the length of an audio file in seconds.
func GetAudioDuration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe", "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: unexpected output %q", path, bytes.TrimSpace(out))
	}
	return duration, nil
}

// GetBestH264Encoder picks a hardware H.264 encoder when ffmpeg offers one,
// in order VideoToolbox, NVENC, then falls back to libx264.
func GetBestH264Encoder(ctx context.Context, logger *slog.Logger) string {
	out, err := exec.CommandContext(ctx, "ffmpeg", "-hide_banner", "-encoders").CombinedOutput()
	if err != nil {
		if logger != nil {
			logger.Warn("encoder probe failed, using libx264", slog.Any("error", err))
		}
		return "libx264"
	}
	return pickEncoder(string(out))
}

func pickEncoder(listing string) string {
	for _, name := range []string{"h264_videotoolbox", "h264_nvenc"} {
		if strings.Contains(listing, name) {
			return name
		}
	}
	return "libx264"
}
