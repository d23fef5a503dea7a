package extract

import (
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// binarizeThreshold is the fixed cut between ink and paper after the
// contrast stretch has pushed the histogram to its extremes.
const binarizeThreshold = 160

// Preprocess prepares one rasterized page for OCR: grayscale, deskew,
// contrast stretch, fixed-threshold binarization.
func Preprocess(src image.Image) *image.Gray {
	gray := toGray(src)

	if angle := estimateSkew(gray); math.Abs(angle) > 0.05 {
		gray = rotate(gray, -angle*math.Pi/180)
	}

	contrastStretch(gray, 0.005)
	binarize(gray, binarizeThreshold)
	return gray
}

func toGray(src image.Image) *image.Gray {
	if g, ok := src.(*image.Gray); ok {
		return g
	}
	b := src.Bounds()
	gray := image.NewGray(b)
	draw.Draw(gray, b, src, b.Min, draw.Src)
	return gray
}

// estimateSkew returns the page's skew angle in degrees. It projects a
// sample of dark pixels onto row bins for candidate angles and picks the
// angle with the sharpest profile: text lines aligned with the axis
// concentrate ink into few rows, maximizing the sum of squared bin counts.
func estimateSkew(gray *image.Gray) float64 {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return 0
	}

	// Sample on a coarse grid; full resolution adds nothing to the estimate.
	const stride = 4
	type pt struct{ x, y float64 }
	var dark []pt
	for y := 0; y < h; y += stride {
		for x := 0; x < w; x += stride {
			if gray.GrayAt(b.Min.X+x, b.Min.Y+y).Y < 128 {
				dark = append(dark, pt{float64(x), float64(y)})
			}
		}
	}
	if len(dark) < 64 {
		return 0
	}

	bins := make([]int, h/stride+2)
	bestAngle, bestScore := 0.0, -1.0
	for deg := -3.0; deg <= 3.0; deg += 0.25 {
		sin, cos := math.Sincos(deg * math.Pi / 180)
		for i := range bins {
			bins[i] = 0
		}
		for _, p := range dark {
			row := int((p.y*cos - p.x*sin) / stride)
			if row >= 0 && row < len(bins) {
				bins[row]++
			}
		}
		score := 0.0
		for _, n := range bins {
			score += float64(n) * float64(n)
		}
		if score > bestScore {
			bestScore, bestAngle = score, deg
		}
	}
	return bestAngle
}

// rotate resamples the page around its center, filling the uncovered
// corners with paper white.
func rotate(src *image.Gray, radians float64) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(b)
	for i := range dst.Pix {
		dst.Pix[i] = 0xff
	}

	cx := float64(b.Min.X) + float64(b.Dx())/2
	cy := float64(b.Min.Y) + float64(b.Dy())/2
	sin, cos := math.Sincos(radians)
	m := f64.Aff3{
		cos, -sin, cx - cos*cx + sin*cy,
		sin, cos, cy - sin*cx - cos*cy,
	}
	xdraw.BiLinear.Transform(dst, m, src, b, xdraw.Src, nil)
	return dst
}

// contrastStretch linearly remaps the histogram so that the given fraction
// of pixels clips at each end, in place.
func contrastStretch(gray *image.Gray, clip float64) {
	var hist [256]int
	for _, v := range gray.Pix {
		hist[v]++
	}
	total := len(gray.Pix)
	if total == 0 {
		return
	}
	cut := int(float64(total) * clip)

	lo, acc := 0, 0
	for i := 0; i < 256; i++ {
		acc += hist[i]
		if acc > cut {
			lo = i
			break
		}
	}
	hi, acc := 255, 0
	for i := 255; i >= 0; i-- {
		acc += hist[i]
		if acc > cut {
			hi = i
			break
		}
	}
	if hi <= lo {
		return
	}

	scale := 255.0 / float64(hi-lo)
	for i, v := range gray.Pix {
		switch {
		case int(v) <= lo:
			gray.Pix[i] = 0
		case int(v) >= hi:
			gray.Pix[i] = 255
		default:
			gray.Pix[i] = uint8(float64(int(v)-lo) * scale)
		}
	}
}

func binarize(gray *image.Gray, threshold uint8) {
	for i, v := range gray.Pix {
		if v < threshold {
			gray.Pix[i] = 0
		} else {
			gray.Pix[i] = 255
		}
	}
}
