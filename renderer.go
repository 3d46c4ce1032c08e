package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Renderer paints the current frame and the status label. It owns the GPU copy of
// the frame on display and releases it once the player moves on.
type Renderer struct {
	renderState RenderState
	background  color.RGBA
	labelFont   *text.GoTextFace

	texture      *ebiten.Image
	textureFrame *Frame
	// superseded textures, deallocated at the start of the next Update so that
	// nothing queued for this frame still refers to them
	pendingRelease []*ebiten.Image
}

// NewRenderer creates a Renderer. InitGraphics must have been called.
func NewRenderer(renderState RenderState, background color.RGBA, fontSize float64) *Renderer {
	r := &Renderer{
		renderState: renderState,
		background:  background,
	}
	if globalFontSource != nil {
		r.labelFont = &text.GoTextFace{
			Source: globalFontSource,
			Size:   fontSize,
		}
	}
	return r
}

// Draw renders the entire screen
func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(r.background)

	frame := r.renderState.Frame()
	if frame == nil {
		// No content: background only
		return
	}

	viewport := screen.Bounds().Size()
	if tex := r.textureFor(frame); tex != nil {
		r.drawFitted(screen, tex, viewport)
	}

	label := StatusText(frame.Index, frame.Count, r.renderState.State().Paused)
	r.drawStatusLabel(screen, label, viewport)
}

func (r *Renderer) drawFitted(screen, img *ebiten.Image, viewport image.Point) {
	size := img.Bounds().Size()
	rect := ComputeFitRect(size, viewport)
	if rect.Empty() {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	op.GeoM.Scale(float64(rect.Dx())/float64(size.X), float64(rect.Dy())/float64(size.Y))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	screen.DrawImage(img, op)
}

func (r *Renderer) drawStatusLabel(screen *ebiten.Image, label string, viewport image.Point) {
	if r.labelFont == nil {
		return
	}
	x, y := StatusLabelPosition(viewport)

	w, h := text.Measure(label, r.labelFont, 0)
	DrawFilledRect(screen, float64(x)-4, float64(y)-2, w+8, h+4, colorShadow)
	DrawText(screen, label, r.labelFont, float64(x), float64(y), colorWhite)
}

// textureFor returns the GPU image for frame, uploading it on first use
func (r *Renderer) textureFor(frame *Frame) *ebiten.Image {
	if frame == r.textureFrame {
		return r.texture
	}

	if r.texture != nil {
		r.pendingRelease = append(r.pendingRelease, r.texture)
	}
	r.textureFrame = frame

	switch {
	case frame.Err != nil:
		r.texture = CreateErrorImage(errorImageWidth, errorImageHeight, frame.Path, frame.Err.Error())
	case frame.Image != nil:
		r.texture = ebiten.NewImageFromImage(frame.Image)
	default:
		r.texture = nil
	}
	return r.texture
}

// ReleasePending deallocates textures superseded during the previous Draw
func (r *Renderer) ReleasePending() {
	for _, img := range r.pendingRelease {
		img.Deallocate()
	}
	r.pendingRelease = r.pendingRelease[:0]
}

// Release deallocates every texture the renderer holds
func (r *Renderer) Release() {
	r.ReleasePending()
	if r.texture != nil {
		r.texture.Deallocate()
		r.texture = nil
	}
	r.textureFrame = nil
}
