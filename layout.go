package main

import (
	"fmt"
	"image"
)

// Status label placement, measured from the bottom-left corner of the viewport
const (
	statusLabelX      = 10
	statusLabelBottom = 80
)

// ComputeFitRect returns the largest rectangle with the image's aspect ratio that fits
// the viewport, centred in it. Sizes with a non-positive dimension give an empty rectangle.
func ComputeFitRect(imageSize, viewportSize image.Point) image.Rectangle {
	if imageSize.X <= 0 || imageSize.Y <= 0 || viewportSize.X <= 0 || viewportSize.Y <= 0 {
		return image.Rectangle{}
	}

	imageAspect := float64(imageSize.Y) / float64(imageSize.X)
	viewportAspect := float64(viewportSize.Y) / float64(viewportSize.X)

	var w, h int
	if imageAspect < viewportAspect {
		// image extends across the width
		w = viewportSize.X
		h = int(float64(w) * imageAspect)
	} else {
		// image extends across the height
		h = viewportSize.Y
		w = int(float64(h) / imageAspect)
	}

	offsetX := int(float64(viewportSize.X-w) / 2)
	offsetY := int(float64(viewportSize.Y-h) / 2)
	return image.Rect(0, 0, w, h).Add(image.Pt(offsetX, offsetY))
}

// StatusText formats the position label, e.g. "3 / 12 Paused"
func StatusText(index, count int, paused bool) string {
	s := fmt.Sprintf("%d / %d", index+1, count)
	if paused {
		s += " Paused"
	}
	return s
}

// StatusLabelPosition returns where the status label is drawn
func StatusLabelPosition(viewportSize image.Point) (int, int) {
	return statusLabelX, viewportSize.Y - statusLabelBottom
}
