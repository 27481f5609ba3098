package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/ivlev/card2video/internal/logging"
)

// Job describes one encode of numbered frames into an MP4.
type Job struct {
	FramePattern string  // printf-style path, e.g. dir/frame_%05d.png
	FPS          int
	Duration     float64 // seconds
	AudioPath    string  // empty selects a silent track
	Encoder      string  // ffmpeg video codec name
	Quality      int
	Output       string
}

// Encoder turns rendered frames into a video file.
type Encoder interface {
	Encode(ctx context.Context, job Job) error
}

// EncodeError reports a failed encoder run together with its diagnostics.
type EncodeError struct {
	Output string
	Err    error
	Log    string // tail of the encoder's combined output
}

func (e *EncodeError) Error() string {
	msg := fmt.Sprintf("encode %s: %v", e.Output, e.Err)
	if e.Log != "" {
		msg += "\n" + e.Log
	}
	return msg
}

func (e *EncodeError) Unwrap() error { return e.Err }

// FFmpegEncoder runs the ffmpeg binary.
type FFmpegEncoder struct {
	Binary string // defaults to "ffmpeg"
	Logger *slog.Logger
}

func NewFFmpegEncoder(logger *slog.Logger) *FFmpegEncoder {
	return &FFmpegEncoder{Binary: "ffmpeg", Logger: logging.NewComponentLogger(logger, "ffmpeg")}
}

// Encode runs ffmpeg for job. A partial output file is removed on failure.
func (e *FFmpegEncoder) Encode(ctx context.Context, job Job) error {
	bin := e.Binary
	if bin == "" {
		bin = "ffmpeg"
	}
	logger := e.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	args := BuildArgs(job)
	logger.Debug("starting encoder", slog.String("binary", bin), slog.String("args", strings.Join(args, " ")))

	start := time.Now()
	cmd := exec.CommandContext(ctx, bin, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		if rmErr := os.Remove(job.Output); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			logger.Warn("failed to remove partial output", slog.String("path", job.Output), slog.Any("error", rmErr))
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("encode %s: %w", job.Output, ctxErr)
		}
		return &EncodeError{Output: job.Output, Err: err, Log: tail(out.String(), 20)}
	}

	logger.Info("video encoded",
		slog.String("output", job.Output),
		slog.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// BuildArgs returns the ffmpeg arguments for job: frames at the job rate,
// background audio looped and cut to the video length or exact-length
// silence, H.264 yuv420p with the index moved to the front.
func BuildArgs(job Job) []string {
	duration := strconv.FormatFloat(job.Duration, 'f', -1, 64)

	args := []string{
		"-y",
		"-framerate", strconv.Itoa(job.FPS),
		"-i", job.FramePattern,
	}

	if job.AudioPath != "" {
		args = append(args, "-stream_loop", "-1", "-i", job.AudioPath)
	} else {
		args = append(args, "-f", "lavfi", "-i", "anullsrc=r=44100:cl=stereo:d="+duration)
	}

	args = append(args,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-t", duration,
		"-c:v", job.Encoder,
		"-pix_fmt", "yuv420p",
	)
	args = append(args, QualityArgs(job.Encoder, job.Quality)...)
	args = append(args,
		"-c:a", "aac",
		"-b:a", "128k",
		"-movflags", "+faststart",
		job.Output,
	)
	return args
}

// QualityArgs maps the quality setting onto the rate control of each encoder.
func QualityArgs(encoder string, quality int) []string {
	switch encoder {
	case "h264_videotoolbox":
		// VideoToolbox has no constant-quality mode on every version; use bitrate
		return []string{"-b:v", fmt.Sprintf("%dk", quality*100)}
	case "h264_nvenc":
		return []string{"-cq", strconv.Itoa(quality)}
	default: // libx264
		return []string{"-crf", strconv.Itoa(quality), "-preset", "medium"}
	}
}

func tail(s string, lines int) string {
	s = strings.TrimRight(s, "\n")
	parts := strings.Split(s, "\n")
	if len(parts) > lines {
		parts = parts[len(parts)-lines:]
	}
	return strings.Join(parts, "\n")
}
