package render

import "image/color"

// HSL converts a hue/saturation/lightness triple to an opaque RGBA color.
// All three channels are in [0,1]; hue 0 is red. Density maps hold hue and
// saturation fixed and encode intensity in the lightness channel alone.
func HSL(h, s, l float64) color.RGBA {
	if s == 0 {
		v := channel(l)
		return color.RGBA{R: v, G: v, B: v, A: 255}
	}

	q := l + s - l*s
	if l < 0.5 {
		q = l * (1 + s)
	}
	p := 2*l - q

	return color.RGBA{
		R: channel(hueComponent(p, q, h+1.0/3.0)),
		G: channel(hueComponent(p, q, h)),
		B: channel(hueComponent(p, q, h-1.0/3.0)),
		A: 255,
	}
}

func hueComponent(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}
