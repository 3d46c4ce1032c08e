package main

import (
	"bytes"
	"image/color"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	errorImageWidth  = 400
	errorImageHeight = 300
)

var (
	colorWhite   = color.RGBA{255, 255, 255, 255}
	colorErrorBg = color.RGBA{120, 30, 30, 255}
	colorShadow  = color.RGBA{0, 0, 0, 160}
)

// globalFontSource is shared by the status label and error placeholders
var globalFontSource *text.GoTextFaceSource

// InitGraphics initializes the global font source for text rendering
func InitGraphics() error {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return err
	}
	globalFontSource = s
	return nil
}

// DrawText draws text with its top-left corner at x, y
func DrawText(screen *ebiten.Image, textString string, font *text.GoTextFace, x, y float64, textColor color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, textString, font, op)
}

// DrawFilledRect draws filled rectangles with float64 coordinates
func DrawFilledRect(screen *ebiten.Image, x, y, w, h float64, bgColor color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), bgColor, false)
}

func drawBorder(img *ebiten.Image, width, height int, c color.RGBA) {
	w, h := float64(width), float64(height)
	DrawFilledRect(img, 0, 0, w, 3, c)
	DrawFilledRect(img, 0, h-3, w, 3, c)
	DrawFilledRect(img, 0, 0, 3, h, c)
	DrawFilledRect(img, w-3, 0, 3, h, c)
}

// CreateErrorImage creates a placeholder for an entry that failed to load
func CreateErrorImage(width, height int, filename, errorMsg string) *ebiten.Image {
	if width <= 0 || height <= 0 {
		width, height = errorImageWidth, errorImageHeight
	}

	errorImg := ebiten.NewImage(width, height)
	errorImg.Fill(colorErrorBg)
	drawBorder(errorImg, width, height, colorWhite)

	if globalFontSource == nil {
		return errorImg
	}

	errorFont := &text.GoTextFace{
		Source: globalFontSource,
		Size:   20.0,
	}

	fileText := truncateText("File: "+filepath.Base(filename), width)
	reasonText := truncateText("Reason: "+errorMsg, width)

	DrawText(errorImg, "ERROR", errorFont, 10, 30, colorWhite)
	DrawText(errorImg, fileText, errorFont, 10, 60, colorWhite)
	DrawText(errorImg, reasonText, errorFont, 10, 90, colorWhite)

	return errorImg
}

// truncateText shortens s to roughly fit width pixels at 10px per character
func truncateText(s string, width int) string {
	maxChars := (width - 20) / 10
	r := []rune(s)
	if maxChars <= 3 || len(r) <= maxChars {
		return s
	}
	return string(r[:maxChars-3]) + "..."
}
