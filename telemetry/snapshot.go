package telemetry

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/staticfield/field"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot describes one rendered frame: everything needed to re-render it
// plus the path of the captured image.
type Snapshot struct {
	Version int   `json:"version"`
	Seed    int64 `json:"seed"`

	Variant string `json:"variant"`
	Backend string `json:"backend,omitempty"`

	Frame    uint64  `json:"frame"`
	AnimTime float64 `json:"anim_time"`

	Width            int     `json:"width"`
	Height           int     `json:"height"`
	DevicePixelRatio float64 `json:"dpr"`

	Field FieldState `json:"field"`

	// Image is the PNG file name, relative to the snapshot file.
	Image string `json:"image,omitempty"`
}

// FieldState is the JSON-serializable form of field.Config.
type FieldState struct {
	Foreground string  `json:"foreground"`
	Background string  `json:"background"`
	PeakMax    float64 `json:"peak_max"`
	PeakMin    float64 `json:"peak_min"`
	TroughMax  float64 `json:"trough_max"`
	FieldSpeed float64 `json:"field_speed"`
	NoiseScale float64 `json:"noise_scale"`
	CalmMode   string  `json:"calm_mode"`
	Threshold  float64 `json:"threshold"`
	Speed      float64 `json:"speed"`
	Density    float64 `json:"density"`
	Radius     float64 `json:"radius"`
	Step       int     `json:"step"`
}

// NewFieldState converts a field configuration to its JSON form.
func NewFieldState(cfg field.Config) FieldState {
	return FieldState{
		Foreground: cfg.Foreground.Hex(),
		Background: cfg.Background.Hex(),
		PeakMax:    cfg.PeakMax,
		PeakMin:    cfg.PeakMin,
		TroughMax:  cfg.TroughMax,
		FieldSpeed: cfg.FieldSpeed,
		NoiseScale: cfg.NoiseScale,
		CalmMode:   string(cfg.CalmMode),
		Threshold:  cfg.Threshold,
		Speed:      cfg.Speed,
		Density:    cfg.Density,
		Radius:     cfg.Radius,
		Step:       cfg.Step,
	}
}

// Config converts the JSON form back to a field configuration.
func (fs FieldState) Config() (field.Config, error) {
	fg, err := field.ParseHex(fs.Foreground)
	if err != nil {
		return field.Config{}, fmt.Errorf("snapshot foreground: %w", err)
	}
	bg, err := field.ParseHex(fs.Background)
	if err != nil {
		return field.Config{}, fmt.Errorf("snapshot background: %w", err)
	}
	return field.Config{
		Foreground: fg,
		Background: bg,
		PeakMax:    fs.PeakMax,
		PeakMin:    fs.PeakMin,
		TroughMax:  fs.TroughMax,
		FieldSpeed: fs.FieldSpeed,
		NoiseScale: fs.NoiseScale,
		CalmMode:   field.CalmMode(fs.CalmMode),
		Threshold:  fs.Threshold,
		Speed:      fs.Speed,
		Density:    fs.Density,
		Radius:     fs.Radius,
		Step:       fs.Step,
	}, nil
}

// SaveSnapshot writes a snapshot to dir, with img as a sibling PNG when
// non-nil. Returns the filepath of the JSON file.
func SaveSnapshot(snapshot *Snapshot, img image.Image, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Frame)
	if snapshot.Variant != "" {
		sanitized := strings.ReplaceAll(snapshot.Variant, " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Frame, sanitized)
	}

	snapshot.Version = SnapshotVersion
	if img != nil {
		snapshot.Image = name + ".png"
		if err := WritePNG(filepath.Join(dir, snapshot.Image), img); err != nil {
			return "", err
		}
	}

	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// WritePNG encodes img as a PNG file at path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot image: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode snapshot image: %w", err)
	}
	return f.Close()
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snapshot.Version)
	}

	return &snapshot, nil
}

// LoadSnapshotImage decodes the PNG referenced by the snapshot at path.
func LoadSnapshotImage(path string, snapshot *Snapshot) (image.Image, error) {
	if snapshot.Image == "" {
		return nil, fmt.Errorf("snapshot has no image")
	}
	f, err := os.Open(filepath.Join(filepath.Dir(path), snapshot.Image))
	if err != nil {
		return nil, fmt.Errorf("open snapshot image: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot image: %w", err)
	}
	return img, nil
}
