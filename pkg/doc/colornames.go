package doc

import "strings"

// colorNames maps recognized color names to their hex values. The set covers
// the common named colors accepted by the downstream rendering engine; names
// are matched case-insensitively. Colors outside this table and outside the
// "#RRGGBB" form are passed through the alpha transform unmodified.
var colorNames = map[string]string{
	"aliceblue":      "#F0F8FF",
	"aquamarine":     "#7FFFD4",
	"beige":          "#F5F5DC",
	"black":          "#000000",
	"blue":           "#0000FF",
	"brown":          "#A52A2A",
	"chocolate":      "#D2691E",
	"coral":          "#FF7F50",
	"cornflowerblue": "#6495ED",
	"crimson":        "#DC143C",
	"cyan":           "#00FFFF",
	"darkblue":       "#00008B",
	"darkgray":       "#A9A9A9",
	"darkgreen":      "#006400",
	"darkorange":     "#FF8C00",
	"darkred":        "#8B0000",
	"darkviolet":     "#9400D3",
	"firebrick":      "#B22222",
	"forestgreen":    "#228B22",
	"gold":           "#FFD700",
	"gray":           "#BEBEBE",
	"green":          "#00FF00",
	"hotpink":        "#FF69B4",
	"indigo":         "#4B0082",
	"khaki":          "#F0E68C",
	"lavender":       "#E6E6FA",
	"lightblue":      "#ADD8E6",
	"lightgray":      "#D3D3D3",
	"lightgreen":     "#90EE90",
	"lightpink":      "#FFB6C1",
	"lightyellow":    "#FFFFE0",
	"magenta":        "#FF00FF",
	"maroon":         "#B03060",
	"navy":           "#000080",
	"olive":          "#808000",
	"orange":         "#FFA500",
	"orchid":         "#DA70D6",
	"pink":           "#FFC0CB",
	"plum":           "#DDA0DD",
	"purple":         "#A020F0",
	"red":            "#FF0000",
	"royalblue":      "#4169E1",
	"salmon":         "#FA8072",
	"seagreen":       "#2E8B57",
	"sienna":         "#A0522D",
	"silver":         "#C0C0C0",
	"skyblue":        "#87CEEB",
	"slategray":      "#708090",
	"steelblue":      "#4682B4",
	"tan":            "#D2B48C",
	"teal":           "#008080",
	"thistle":        "#D8BFD8",
	"tomato":         "#FF6347",
	"turquoise":      "#40E0D0",
	"violet":         "#EE82EE",
	"wheat":          "#F5DEB3",
	"white":          "#FFFFFF",
	"yellow":         "#FFFF00",
	"yellowgreen":    "#9ACD32",
}

// ColorHex looks up a color name and returns its hex value.
// The boolean reports whether the name was recognized.
func ColorHex(name string) (string, bool) {
	hex, ok := colorNames[strings.ToLower(name)]
	return hex, ok
}
