package acesrender

// Default render target size.
const (
	DefaultWidth  = 1024
	DefaultHeight = 1024
)

// SceneImage stores a scene-linear ACEScg image as flat RGBA float32,
// row-major. Channel values are unbounded above 1.0; the buffer is the
// intermediate artifact of a render pass.
type SceneImage struct {
	W, H int
	Pix  []float32 // RGBA interleaved, len = W*H*4
}

// NewSceneImage allocates a zeroed scene-linear buffer.
func NewSceneImage(w, h int) *SceneImage {
	return &SceneImage{
		W:   w,
		H:   h,
		Pix: make([]float32, w*h*4),
	}
}

// At returns the color channels of pixel (x, y), clamped to bounds.
func (s *SceneImage) At(x, y int) rgb {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x >= s.W {
		x = s.W - 1
	}
	if y >= s.H {
		y = s.H - 1
	}
	i := (y*s.W + x) * 4
	return rgb{r: s.Pix[i], g: s.Pix[i+1], b: s.Pix[i+2]}
}

// AlphaAt returns the alpha channel of pixel (x, y), clamped to bounds.
func (s *SceneImage) AlphaAt(x, y int) float32 {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x >= s.W {
		x = s.W - 1
	}
	if y >= s.H {
		y = s.H - 1
	}
	return s.Pix[(y*s.W+x)*4+3]
}

// DisplayImage stores a display-referred sRGB image as flat 8-bit RGBA,
// row-major. It is the final artifact of a render pass.
type DisplayImage struct {
	W, H int
	Pix  []uint8 // RGBA interleaved, len = W*H*4
}

// NewDisplayImage allocates a zeroed display buffer.
func NewDisplayImage(w, h int) *DisplayImage {
	return &DisplayImage{
		W:   w,
		H:   h,
		Pix: make([]uint8, w*h*4),
	}
}
