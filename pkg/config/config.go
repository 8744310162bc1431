package config

import (
	// stdlib
	"fmt"
	"os"

	// external
	"github.com/pelletier/go-toml/v2"
)

// Enum types

type ModelFormat string

const (
	ModelFormatONNX     = "onnx"
	ModelFormatOpenVINO = "openvino"
	ModelFormatCaffe    = "caffe"
)

type LoggingLevel string

const (
	LoggingLevelDebug = "debug"
	LoggingLevelInfo  = "info"
	LoggingLevelWarn  = "warn"
	LoggingLevelError = "error"
)

type DeviceType string

const (
	DeviceTypeCPU = "cpu"
	DeviceTypeVPU = "vpu"
	DeviceTypeGPU = "gpu"
)

type InputType string

const (
	InputTypeFile   = "file"
	InputTypeWebcam = "webcam"
	InputTypeIPC    = "ipc"
	InputTypeFolder = "folder"
)

type AnnotatorMode string

const (
	AnnotatorModeTracking = "tracking"
	AnnotatorModePredict  = "predict"
	AnnotatorModeHeatmap  = "heatmap"
)

// Config file structure

type ConfigFile struct {
	Model     ModelConfig
	Backend   BackendConfig
	Annotator AnnotatorConfig
	Tracking  TrackingConfig
	Heatmap   HeatmapConfig
	Input     InputConfig
	Output    OutputConfig
	Webserver WebserverConfig
	Logging   LoggingConfig
	Mqtt      MqttConfig
}

type ModelConfig struct {
	Format              string
	Path                string
	ConfigPath          string `toml:"config_path"`
	Transpose           bool
	X                   uint
	Y                   uint
	ConfidenceThreshold float32 `toml:"confidence_threshold"`
	NMSThreshold        float32 `toml:"nms_threshold"`
}

type BackendConfig struct {
	Device string
}

type AnnotatorConfig struct {
	Mode       string
	HideLabels bool `toml:"hide_labels"`
}

type TrackingConfig struct {
	DrawLines       bool    `toml:"draw_lines"`
	HistoryLen      int     `toml:"history_len"`
	LineThickness   int     `toml:"line_thickness"`
	Smooth          bool
	SmoothRadius    int     `toml:"smooth_radius"`
	SigmaPx         float64 `toml:"sigma_px"`
	MinScore        float64 `toml:"min_score"`
	MaxMisses       int     `toml:"max_misses"`
	ProcessNoiseCov float64 `toml:"process_noise_cov"`
	MeasNoiseCov    float64 `toml:"meas_noise_cov"`
}

type HeatmapConfig struct {
	Alpha  float64
	Radius int
	Blur   bool
}

type InputConfig struct {
	Type       string
	Path       string
	StartFrame uint `toml:"start_frame"`
	SkipFrames uint `toml:"skip_frames"`
}

type OutputConfig struct {
	Path      string
	Framerate uint
}

type WebserverConfig struct {
	Port               uint
	ReadTimeoutSec     uint `toml:"read_timeout_sec"`
	WriteTimeoutSec    uint `toml:"write_timeout_sec"`
	ShutdownTimeoutSec uint `toml:"shutdown_timeout_sec"`
}

type LoggingConfig struct {
	Level         string
	StatPeriodSec uint `toml:"stat_period_sec"`
}

type MqttConfig struct {
	Enabled  bool
	Broker   string
	Topic    string
	ClientID string `toml:"client_id"`
}

// Default returns the baseline configuration. Unmarshal
// overlays the file on top of it so a partial config file
// keeps sane values for everything it omits.
func Default() *ConfigFile {
	return &ConfigFile{
		Model: ModelConfig{
			Format:              ModelFormatONNX,
			Path:                "../models/best.onnx",
			Transpose:           true,
			X:                   640,
			Y:                   640,
			ConfidenceThreshold: 0.2,
			NMSThreshold:        0.45,
		},
		Backend: BackendConfig{
			Device: DeviceTypeCPU,
		},
		Annotator: AnnotatorConfig{
			Mode: AnnotatorModeTracking,
		},
		Tracking: TrackingConfig{
			DrawLines:       true,
			HistoryLen:      150,
			LineThickness:   2,
			Smooth:          false,
			SmoothRadius:    5,
			SigmaPx:         100,
			MinScore:        0.1,
			MaxMisses:       15,
			ProcessNoiseCov: 0.01,
			MeasNoiseCov:    0.1,
		},
		Heatmap: HeatmapConfig{
			Alpha:  0.4,
			Radius: 15,
			Blur:   true,
		},
		Input: InputConfig{
			Type: InputTypeFile,
			Path: "../data/videos/cows1.mp4",
		},
		Output: OutputConfig{
			Framerate: 30,
		},
		Webserver: WebserverConfig{
			Port:               8080,
			ReadTimeoutSec:     5,
			WriteTimeoutSec:    5,
			ShutdownTimeoutSec: 5,
		},
		Logging: LoggingConfig{
			Level:         LoggingLevelInfo,
			StatPeriodSec: 5,
		},
		Mqtt: MqttConfig{
			Enabled:  false,
			Broker:   "127.0.0.1:1883",
			Topic:    "airvision/stats",
			ClientID: "airvision",
		},
	}
}

func Unmarshal(file_path string) (*ConfigFile, error) {
	config_file := Default()
	data, err := os.ReadFile(file_path)
	if err != nil {
		return nil,
			fmt.Errorf("Unable to read %s error: %w", file_path, err)
	}
	err = toml.Unmarshal(data, config_file)
	if err != nil {
		return nil,
			fmt.Errorf("Unable to unmarshal %s error: %w", file_path, err)
	}
	return config_file, nil
}

func CreateDefault(file_path string) error {
	data, err := toml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("Unable to marshal default config error: %w", err)
	}
	err = os.WriteFile(file_path, data, 0644)
	if err != nil {
		return fmt.Errorf("Unable to write %s error: %w", file_path, err)
	}
	return nil
}
