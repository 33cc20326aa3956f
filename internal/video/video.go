package video

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// embedded subtitle track inside a video container
type Track struct {
	Index    int
	Codec    string
	Language string
	Title    string
}

// defines interface for container subtitle operations
type Processor interface {
	// lists the embedded subtitle tracks of a video file
	ProbeSubtitleTracks(ctx context.Context, videoPath string) ([]Track, error)

	// extracts one embedded subtitle track to a sidecar file
	ExtractSubtitle(
		ctx context.Context,
		videoPath string,
		trackIndex int,
		outputPath string,
	) error
}

// default implementation using ffmpeg
type DefaultProcessor struct{}

func NewProcessor() *DefaultProcessor {
	return &DefaultProcessor{}
}

type probeOutput struct {
	Streams []struct {
		Index     int    `json:"index"`
		CodecName string `json:"codec_name"`
		CodecType string `json:"codec_type"`
		Tags      struct {
			Language string `json:"language"`
			Title    string `json:"title"`
		} `json:"tags"`
	} `json:"streams"`
}

func (p *DefaultProcessor) ProbeSubtitleTracks(
	ctx context.Context,
	videoPath string,
) ([]Track, error) {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("video file not found: %s", videoPath)
	}

	raw, err := ffmpeg.Probe(videoPath)
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed for %s: %w", videoPath, err)
	}

	var out probeOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to decode ffprobe output: %w", err)
	}

	var tracks []Track
	subtitleIndex := 0
	for _, stream := range out.Streams {
		if stream.CodecType != "subtitle" {
			continue
		}
		tracks = append(tracks, Track{
			Index:    subtitleIndex,
			Codec:    stream.CodecName,
			Language: stream.Tags.Language,
			Title:    stream.Tags.Title,
		})
		subtitleIndex++
	}
	return tracks, nil
}

func (p *DefaultProcessor) ExtractSubtitle(
	ctx context.Context,
	videoPath string,
	trackIndex int,
	outputPath string,
) error {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", videoPath)
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	kwargs := ffmpeg.KwArgs{
		"map": fmt.Sprintf("0:s:%d", trackIndex),
		"c:s": subtitleCodecForExtension(outputPath),
	}

	err := ffmpeg.Input(videoPath).
		Output(outputPath, kwargs).
		OverWriteOutput().
		Run()
	if err != nil {
		return fmt.Errorf("ffmpeg subtitle extraction failed: %w", err)
	}

	return nil
}

func subtitleCodecForExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vtt":
		return "webvtt"
	case ".ass", ".ssa":
		return "ass"
	case ".ttml":
		return "ttml"
	default:
		return "srt"
	}
}
