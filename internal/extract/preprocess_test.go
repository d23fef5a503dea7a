package extract

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocessProducesBinaryImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if y%10 < 3 {
				src.Set(x, y, color.RGBA{30, 30, 30, 255})
			} else {
				src.Set(x, y, color.RGBA{220, 220, 220, 255})
			}
		}
	}

	out := Preprocess(src)
	require.Equal(t, src.Bounds(), out.Bounds())

	for _, v := range out.Pix {
		assert.True(t, v == 0 || v == 255, "pixel %d not binary", v)
	}
}

func TestPreprocessKeepsBlankPageWhite(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 32, 32))
	for i := range src.Pix {
		src.Pix[i] = 250
	}

	out := Preprocess(src)
	for _, v := range out.Pix {
		assert.EqualValues(t, 255, v)
	}
}

func TestEstimateSkewAxisAlignedLines(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 200, 200))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	// Horizontal text-line stand-ins.
	for y := 0; y < 200; y++ {
		if y%20 < 6 {
			for x := 0; x < 200; x++ {
				img.SetGray(x, y, color.Gray{0})
			}
		}
	}

	angle := estimateSkew(img)
	assert.Less(t, math.Abs(angle), 0.3)
}

func TestEstimateSkewTooFewDarkPixels(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 100, 100))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	assert.Zero(t, estimateSkew(img))
}

func TestContrastStretchExpandsRange(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		img.Pix[i] = uint8(100 + i%50)
	}

	contrastStretch(img, 0.005)

	var lo, hi uint8 = 255, 0
	for _, v := range img.Pix {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	assert.EqualValues(t, 0, lo)
	assert.EqualValues(t, 255, hi)
}

func TestBinarizeThreshold(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 1))
	img.Pix[0] = 159
	img.Pix[1] = 160

	binarize(img, 160)
	assert.EqualValues(t, 0, img.Pix[0])
	assert.EqualValues(t, 255, img.Pix[1])
}
