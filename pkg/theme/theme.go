// Package theme defines the named color and spacing bundles a canvas is
// drawn with. Themes never affect geometry state; swapping one only triggers
// a visual refresh.
package theme

import (
	"fmt"
	"strings"

	"github.com/chazu/nodeview/pkg/geom"
)

// Theme is an immutable configuration bundle. Pass it by value.
type Theme struct {
	Name                       string  `yaml:"name" toml:"name" json:"name" validate:"required"`
	BackgroundColor            string  `yaml:"background_color" toml:"background_color" json:"backgroundColor" validate:"required"`
	GridColor                  string  `yaml:"grid_color" toml:"grid_color" json:"gridColor" validate:"required"`
	GridSize                   float64 `yaml:"grid_size" toml:"grid_size" json:"gridSize" validate:"gt=0"`
	GridPointPercent           float64 `yaml:"grid_point_percent" toml:"grid_point_percent" json:"gridPointPercent" validate:"gt=0,lte=100"`
	NodeTextColor              string  `yaml:"node_text_color" toml:"node_text_color" json:"nodeTextColor" validate:"required"`
	NodeContentBackgroundColor string  `yaml:"node_content_background_color" toml:"node_content_background_color" json:"nodeContentBackgroundColor" validate:"required"`
	NodeSocketBackgroundColor  string  `yaml:"node_socket_background_color" toml:"node_socket_background_color" json:"nodeSocketBackgroundColor" validate:"required"`
	NodeDefaultSocketColor     string  `yaml:"node_default_socket_color" toml:"node_default_socket_color" json:"nodeDefaultSocketColor" validate:"required"`
	NodeBorderRadius           float64 `yaml:"node_border_radius" toml:"node_border_radius" json:"nodeBorderRadius" validate:"gte=0"`
	NodeSpacing                float64 `yaml:"node_spacing" toml:"node_spacing" json:"nodeSpacing" validate:"gte=0"`
}

// Built-in themes.
var (
	Test = Theme{
		Name:                       "TEST",
		BackgroundColor:            "#ffffff",
		GridColor:                  "#d2d2d2",
		GridSize:                   50,
		GridPointPercent:           8,
		NodeTextColor:              "red",
		NodeContentBackgroundColor: "green",
		NodeSocketBackgroundColor:  "blue",
		NodeDefaultSocketColor:     "#151515",
		NodeBorderRadius:           8,
		NodeSpacing:                8,
	}

	Light = Theme{
		Name:                       "LIGHT",
		BackgroundColor:            "#ffffff",
		GridColor:                  "#d2d2d2",
		GridSize:                   50,
		GridPointPercent:           8,
		NodeTextColor:              "#151515",
		NodeContentBackgroundColor: "#ffffff",
		NodeSocketBackgroundColor:  "#f3f3f3",
		NodeDefaultSocketColor:     "#151515",
		NodeBorderRadius:           8,
		NodeSpacing:                8,
	}

	Dark = Theme{
		Name:                       "DARK",
		BackgroundColor:            "#151515",
		GridColor:                  "#080808",
		GridSize:                   50,
		GridPointPercent:           8,
		NodeTextColor:              "#eeeeee",
		NodeContentBackgroundColor: "#353535",
		NodeSocketBackgroundColor:  "#252525",
		NodeDefaultSocketColor:     "#151515",
		NodeBorderRadius:           8,
		NodeSpacing:                8,
	}
)

// Builtin returns the built-in themes in their canonical order.
func Builtin() []Theme {
	return []Theme{Test, Light, Dark}
}

// GridPattern returns the SVG tile drawn as the canvas background: one
// square dot of GridPointPercent in a 100x100 viewBox.
func (t Theme) GridPattern() string {
	p := geom.FormatFloat(t.GridPointPercent)
	return fmt.Sprintf(
		`<svg viewBox="0 0 100 100" xmlns="http://www.w3.org/2000/svg"><rect x="0" y="0" width="%s" height="%s" fill="%s"/></svg>`,
		p, p, t.GridColor)
}

// GridDataURL returns GridPattern as a CSS url() value.
func (t Theme) GridDataURL() string {
	return "url('data:image/svg+xml," + escapeSVG(t.GridPattern()) + "')"
}

func escapeSVG(s string) string {
	return strings.NewReplacer("#", "%23", "<", "%3C", ">", "%3E", `"`, "%22", "'", "%27").Replace(s)
}

// BackgroundStyle is the CSS for the canvas element at the given grid tile
// size and offset (see view.Transform.Grid).
func (t Theme) BackgroundStyle(tile float64, offset geom.Vec) map[string]string {
	size := geom.FormatFloat(tile) + "px"
	return map[string]string{
		"backgroundSize":     size + " " + size,
		"backgroundPosition": geom.FormatFloat(offset.X) + "px " + geom.FormatFloat(offset.Y) + "px",
		"backgroundColor":    t.BackgroundColor,
		"backgroundImage":    t.GridDataURL(),
	}
}
