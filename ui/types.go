// Package ui provides a descriptor-driven UI for the field viewer.
// Panels are declared as lists of field descriptors so the data they show
// can change without touching the drawing code.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText        WidgetType = iota // Plain text with format string
	WidgetBar                           // Progress bar [0, 1]
	WidgetColorSwatch                   // Color preview square
	WidgetSection                       // Section header
	WidgetSpacer                        // Vertical spacing
)

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	ID          string             // Unique identifier for the field
	Label       string             // Display label
	Widget      WidgetType         // How to render
	Format      string             // Printf format for text (e.g., "%.2f")
	Color       rl.Color           // Optional color override
	Visible     func(any) bool     // Optional visibility check (nil = always visible)
	Getter      func(any) float64  // Value extractor (for numeric fields)
	TextGetter  func(any) string   // Value extractor (for text fields)
	ColorGetter func(any) rl.Color // Color extractor (for color swatches)
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	ID      string            // Unique identifier
	Title   string            // Section header text
	Fields  []FieldDescriptor // Fields in this section
	Visible func(any) bool    // Optional visibility check for entire section
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	BarFillDone    rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 10, G: 14, B: 20, A: 220},
		PanelBorder:    rl.Color{R: 40, G: 70, B: 110, A: 255},
		SectionHeader:  rl.Color{R: 30, G: 144, B: 255, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:        rl.Color{R: 30, G: 144, B: 255, A: 255},
		BarFillDone:    rl.Color{R: 100, G: 200, B: 100, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
