package render

import (
	"image"
)

// TextureStore owns the single panorama texture. The handle is created on
// the first upload and reused by later uploads.
type TextureStore struct {
	gl      GL
	maxSize int

	tex           Texture
	width, height int
}

// NewTextureStore creates a store. Images larger than maxSize on either
// side are shrunk before upload. maxSize <= 0 disables shrinking.
func NewTextureStore(gl GL, maxSize int) *TextureStore {
	return &TextureStore{gl: gl, maxSize: maxSize}
}

// Upload replaces the texture content with img.
func (s *TextureStore) Upload(img image.Image) error {
	if r := img.Bounds(); r.Dx() == 0 || r.Dy() == 0 {
		return ErrEmptyImage
	}
	rgba := fitRGBA(img, s.maxSize)

	if s.tex == 0 {
		s.tex = s.gl.CreateTexture()
		s.gl.BindTexture(s.tex)
		s.gl.TexParameter(TextureMinFilter, Linear)
		s.gl.TexParameter(TextureMagFilter, Linear)
		s.gl.TexParameter(TextureWrapS, ClampToEdge)
		s.gl.TexParameter(TextureWrapT, ClampToEdge)
	} else {
		s.gl.BindTexture(s.tex)
	}

	r := rgba.Bounds()
	s.gl.TexImage2D(r.Dx(), r.Dy(), rgba.Pix)
	s.width, s.height = r.Dx(), r.Dy()
	return nil
}

// Bind binds the texture to the given unit. With nothing loaded the unit
// is left unbound and samples black.
func (s *TextureStore) Bind(unit int) {
	s.gl.ActiveTexture(unit)
	s.gl.BindTexture(s.tex)
}

func (s *TextureStore) Loaded() bool {
	return s.tex != 0
}

// Size returns the uploaded size, which may be smaller than the decoded image.
func (s *TextureStore) Size() (int, int) {
	return s.width, s.height
}

// Release deletes the texture. It is safe to call repeatedly.
func (s *TextureStore) Release() {
	if s.tex == 0 {
		return
	}
	s.gl.DeleteTexture(s.tex)
	s.tex = 0
	s.width, s.height = 0, 0
}
