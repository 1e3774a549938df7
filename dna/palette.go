package dna

// Palette is a named set of colors assigned to particles by index
type Palette struct {
	Name   string
	Colors []HSL
}

func hsl(h, s, l float64) HSL { return HSL{H: h, S: s, L: l} }

var palettes = []Palette{
	{"CYBERPUNK", []HSL{hsl(320, 100, 60), hsl(190, 100, 50), hsl(280, 100, 60)}},
	{"GOLDEN HOUR", []HSL{hsl(40, 100, 60), hsl(20, 100, 60), hsl(0, 0, 100)}},
	{"MATRIX", []HSL{hsl(120, 100, 60), hsl(140, 100, 50), hsl(0, 0, 100)}},
	{"ICE AGE", []HSL{hsl(200, 100, 70), hsl(180, 100, 80), hsl(220, 100, 90)}},
	{"VAMPIRE", []HSL{hsl(0, 100, 60), hsl(350, 100, 50), hsl(0, 0, 30)}},
	{"DEEP SPACE", []HSL{hsl(260, 100, 70), hsl(290, 100, 60), hsl(200, 50, 60)}},
	{"RADIOACTIVE", []HSL{hsl(60, 100, 60), hsl(120, 100, 60), hsl(0, 0, 100)}},
	{"MONOCHROME", []HSL{hsl(0, 0, 100), hsl(0, 0, 50), hsl(0, 0, 80)}},
	{"ROYAL", []HSL{hsl(280, 100, 60), hsl(50, 100, 50), hsl(0, 0, 100)}},
}

// Palettes returns a copy of the palette table
func Palettes() []Palette {
	out := make([]Palette, len(palettes))
	copy(out, palettes)
	return out
}
