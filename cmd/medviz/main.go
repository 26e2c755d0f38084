package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/edsrzf/mmap-go"

	"medviz/pkg/config"
	"medviz/pkg/metadata"
	"medviz/pkg/stats"
	"medviz/pkg/visualization"
	"medviz/pkg/volume"
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "", "Optional YAML configuration file")
	metadataPath := flag.String("metadata", "", "Input: metadata text file with volume dimensions")
	dataPath := flag.String("data", "", "Input: flat binary voxel data file")
	outputDir := flag.String("out", "", "Directory to write extracted frames to")
	format := flag.String("format", "", "Frame output format: bmp, jpeg, png or raw")
	axes := flag.String("axes", "", "Comma-free axis list to extract, e.g. \"yz\" or \"xyz\"")
	frameIndex := flag.Int("frame", config.MiddleFrame, "Frame index along each axis (-1 selects the middle frame)")
	frameStats := flag.Bool("stats", false, "Log per-frame intensity statistics")
	verbosity := flag.Int("v", 0, "Verbosity: 0 warnings, 1 info, 2 debug")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	applyFlags(cfg, *metadataPath, *dataPath, *outputDir, *format, *axes, *frameIndex, *frameStats, *verbosity)

	setupLogging(cfg.Verbosity)

	// Validate inputs
	if cfg.Input.Metadata == "" || cfg.Input.Data == "" {
		flag.Usage()
		os.Exit(1)
	}

	outputFormat, err := visualization.ParseFormat(cfg.Output.Format)
	if err != nil {
		log.Fatalf("Invalid output format: %v", err)
	}

	// Load the volume dimensions from the metadata file
	metadataText, err := os.ReadFile(cfg.Input.Metadata)
	if err != nil {
		log.Fatalf("Failed to read metadata file: %v", err)
	}

	md, err := metadata.Parse(string(metadataText))
	if err != nil {
		log.Fatalf("Failed to parse metadata: %v", err)
	}

	slog.Info("loaded metadata",
		"file", cfg.Input.Metadata,
		"xdim", md.XDim(),
		"ydim", md.YDim(),
		"zdim", md.ZDim())

	// Map the voxel data instead of reading it: volumes can be large and
	// the Volume only ever borrows the buffer.
	dataFile, err := os.Open(cfg.Input.Data)
	if err != nil {
		log.Fatalf("Failed to open data file: %v", err)
	}
	defer dataFile.Close()

	data, err := mmap.Map(dataFile, mmap.RDONLY, 0)
	if err != nil {
		log.Fatalf("Failed to map data file: %v", err)
	}
	defer data.Unmap()

	slog.Info("mapped voxel data", "file", cfg.Input.Data, "bytes", len(data))

	vol, err := volume.New(md, data)
	if err != nil {
		log.Fatalf("Failed to open volume: %v", err)
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	for _, axis := range cfg.Frames.Axes {
		index := cfg.Frames.Index
		if index == config.MiddleFrame {
			index = middleFrame(md, axis)
		}

		if err := extractFrame(vol, axis, index, cfg.Output.Dir, outputFormat); err != nil {
			log.Fatalf("Failed to extract %s-axis frame %d: %v", axis, index, err)
		}

		if cfg.Frames.Stats {
			logFrameStats(vol, axis, index)
		}
	}
}

// applyFlags overrides configuration values with any flag that was set
// on the command line.
func applyFlags(cfg *config.Config, metadataPath, dataPath, outputDir, format, axes string, frameIndex int, frameStats bool, verbosity int) {
	if metadataPath != "" {
		cfg.Input.Metadata = metadataPath
	}
	if dataPath != "" {
		cfg.Input.Data = dataPath
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if format != "" {
		cfg.Output.Format = format
	}
	if axes != "" {
		cfg.Frames.Axes = nil
		for _, r := range axes {
			cfg.Frames.Axes = append(cfg.Frames.Axes, string(r))
		}
	}
	if frameIndex != config.MiddleFrame {
		cfg.Frames.Index = frameIndex
	}
	if frameStats {
		cfg.Frames.Stats = true
	}
	if verbosity > cfg.Verbosity {
		cfg.Verbosity = verbosity
	}
}

// setupLogging routes slog output to stderr at a level derived from the
// configured verbosity.
func setupLogging(verbosity int) {
	level := slog.LevelWarn
	switch {
	case verbosity >= 2:
		level = slog.LevelDebug
	case verbosity == 1:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// middleFrame returns the middle frame index for the named axis.
func middleFrame(md metadata.Metadata, axis string) int {
	switch axis {
	case "x", "X":
		return md.XDim() / 2
	case "y", "Y":
		return md.YDim() / 2
	default:
		return md.ZDim() / 2
	}
}

// extractFrame writes a single frame to the output directory in the
// requested format.
func extractFrame(vol *volume.Volume, axis string, index int, outputDir string, format visualization.Format) error {
	it, err := visualization.AxisFrame(vol, axis, index)
	if err != nil {
		return err
	}

	filename := filepath.Join(outputDir, fmt.Sprintf("frame_%s_%03d.%s", axis, index, format.Ext()))

	if format == visualization.FormatRaw {
		file, err := os.Create(filename)
		if err != nil {
			return err
		}
		defer file.Close()

		if err := visualization.WriteRaw(file, it); err != nil {
			return err
		}
	} else {
		img, err := visualization.FrameImage(it)
		if err != nil {
			return err
		}
		if err := visualization.SaveFrame(img, filename, format); err != nil {
			return err
		}
	}

	slog.Info("saved frame", "axis", axis, "index", index, "file", filename)
	return nil
}

// logFrameStats computes and logs intensity statistics for one frame.
func logFrameStats(vol *volume.Volume, axis string, index int) {
	it, err := visualization.AxisFrame(vol, axis, index)
	if err != nil {
		slog.Warn("cannot compute frame statistics", "axis", axis, "index", index, "err", err)
		return
	}

	st, err := stats.FrameStats(it)
	if err != nil {
		slog.Warn("cannot compute frame statistics", "axis", axis, "index", index, "err", err)
		return
	}

	slog.Info("frame statistics",
		"axis", axis,
		"index", index,
		"samples", st.Count,
		"min", st.Min,
		"max", st.Max,
		"mean", st.Mean,
		"stddev", st.StdDev,
		"entropy", st.Entropy)
}
