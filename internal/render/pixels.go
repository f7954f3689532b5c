package render

import (
	"image/color"
	"math"
)

// AgePalette builds the colors for ages 1..maxAge. All entries share one hue
// and saturation; brightness is interpolated from newBrightness at age 1 down
// to oldBrightness at maxAge, so long-lived cells fade. Hue is in degrees.
func AgePalette(maxAge int, hue, saturation, newBrightness, oldBrightness float64) []color.RGBA {
	if maxAge < 1 {
		maxAge = 1
	}
	palette := make([]color.RGBA, maxAge)
	for age := 1; age <= maxAge; age++ {
		t := 0.0
		if maxAge > 1 {
			t = float64(age-1) / float64(maxAge-1)
		}
		brightness := newBrightness + (oldBrightness-newBrightness)*t
		palette[age-1] = hsbToRGBA(hue, saturation, brightness)
	}
	return palette
}

// fillAgeRGBA converts age cells into RGBA pixels in buf. Active cells index
// the palette by age-1 (clipped to the last entry); inactive cells get the
// background color.
func fillAgeRGBA(buf []byte, cells []int8, palette []color.RGBA, background color.RGBA) {
	last := len(palette) - 1
	for i, age := range cells {
		col := background
		if age > 0 && last >= 0 {
			idx := int(age) - 1
			if idx > last {
				idx = last
			}
			col = palette[idx]
		}
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

func hsbToRGBA(hue, saturation, brightness float64) color.RGBA {
	hue = math.Mod(math.Mod(hue, 360)+360, 360)
	saturation = clamp01(saturation)
	brightness = clamp01(brightness)

	c := brightness * saturation
	x := c * (1 - math.Abs(math.Mod(hue/60, 2)-1))
	m := brightness - c

	var r, g, b float64
	switch {
	case hue < 60:
		r, g, b = c, x, 0
	case hue < 120:
		r, g, b = x, c, 0
	case hue < 180:
		r, g, b = 0, c, x
	case hue < 240:
		r, g, b = 0, x, c
	case hue < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return color.RGBA{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
		A: 255,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
