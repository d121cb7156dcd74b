package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Widget colors
var (
	ColorBarBg    = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarFill  = rl.Color{R: 30, G: 144, B: 255, A: 255}
	ColorBarLow   = rl.Color{R: 60, G: 60, B: 90, A: 255}
	ColorText     = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim  = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorLabelDim = rl.Color{R: 110, G: 110, B: 120, A: 255}
	ColorBoolOn   = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBoolOff  = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

// DrawLabel renders a text value.
func DrawLabel(x, y int32, name string, value any, options map[string]string) int32 {
	text := FormatValue(value, options["fmt"])
	rl.DrawText(fmt.Sprintf("%s: %s", name, text), x, y, 16, ColorText)
	return 20
}

// DrawBar renders a horizontal progress bar.
func DrawBar(x, y int32, name string, value float64, options map[string]string) int32 {
	ratio := barRatio(value, GetMax(options))

	barWidth := int32(120)
	barHeight := int32(14)

	// Label
	rl.DrawText(name, x, y, 14, ColorTextDim)

	barX := x + 80
	rl.DrawRectangle(barX, y, barWidth, barHeight, ColorBarBg)

	fillWidth := int32(float64(barWidth) * ratio)
	rl.DrawRectangle(barX, y, fillWidth, barHeight, lerpColor(ColorBarLow, ColorBarFill, ratio))

	rl.DrawText(fmt.Sprintf("%.2f", value), barX+barWidth+5, y, 14, ColorTextDim)

	return 18
}

// DrawBool renders an on/off indicator.
func DrawBool(x, y int32, name string, value bool) int32 {
	// Label
	rl.DrawText(name, x, y, 14, ColorTextDim)

	indicatorX := x + 80
	indicatorSize := int32(14)

	color := ColorBoolOff
	text := "OFF"
	if value {
		color = ColorBoolOn
		text = "ON"
	}

	rl.DrawRectangle(indicatorX, y, indicatorSize, indicatorSize, color)
	rl.DrawText(text, indicatorX+indicatorSize+5, y, 14, color)

	return 18
}

// DrawField renders a field using its widget type.
func DrawField(x, y int32, field Field) int32 {
	switch field.Widget {
	case WidgetBar:
		if v, ok := GetFloatValue(field.Value); ok {
			return DrawBar(x, y, field.Name, v, field.Options)
		}
		return DrawLabel(x, y, field.Name, field.Value, field.Options)

	case WidgetBool:
		if v, ok := field.Value.(bool); ok {
			return DrawBool(x, y, field.Name, v)
		}
		return DrawLabel(x, y, field.Name, field.Value, field.Options)

	default:
		return DrawLabel(x, y, field.Name, field.Value, field.Options)
	}
}

// FieldHeight returns the height DrawField uses for a field.
func FieldHeight(field Field) int32 {
	switch field.Widget {
	case WidgetBar:
		if _, ok := GetFloatValue(field.Value); ok {
			return 18
		}
	case WidgetBool:
		if _, ok := field.Value.(bool); ok {
			return 18
		}
	}
	return 20
}

func barRatio(value, maxVal float64) float64 {
	return min(max(value/maxVal, 0), 1)
}

// lerpColor interpolates between two colors.
func lerpColor(a, b rl.Color, t float64) rl.Color {
	return rl.Color{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
		A: 255,
	}
}
