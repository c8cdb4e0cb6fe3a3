package utils

// ColorPalette is the default highlight palette offered to properties that
// carry no explicit color.
var ColorPalette = []string{
	"#ffc7c7",
	"#fff1c7",
	"#e3ffc7",
	"#c7ffd5",
	"#c7ffff",
	"#c7d5ff",
	"#e3c7ff",
	"#ffc7f1",
	"#ffa8a8",
	"#ffe699",
	"#cfff9e",
	"#99ffb3",
	"#a3ffff",
	"#99b3ff",
	"#cc99ff",
	"#ff99e5",
}

func PaletteColor(i int) string {
	if i < 0 {
		i = -i
	}
	return ColorPalette[i%len(ColorPalette)]
}
