package geometry

// ToAbsolute projects a relative rect onto the given canvas. Each axis is
// scaled by canvas width/height over 100.
func ToAbsolute(rect RelativeRect, canvas CanvasSize) (AbsoluteRect, error) {
	if !canvas.Valid() {
		return AbsoluteRect{}, invalidCanvas(canvas)
	}
	return AbsoluteRect{
		X:      rect.X / 100 * canvas.Width,
		Y:      rect.Y / 100 * canvas.Height,
		Width:  rect.Width / 100 * canvas.Width,
		Height: rect.Height / 100 * canvas.Height,
	}, nil
}

// ToRelative converts an absolute rect back into percentages of the given
// canvas. Inverse of ToAbsolute for the same canvas size.
func ToRelative(rect AbsoluteRect, canvas CanvasSize) (RelativeRect, error) {
	if !canvas.Valid() {
		return RelativeRect{}, invalidCanvas(canvas)
	}
	return RelativeRect{
		X:      rect.X / canvas.Width * 100,
		Y:      rect.Y / canvas.Height * 100,
		Width:  rect.Width / canvas.Width * 100,
		Height: rect.Height / canvas.Height * 100,
	}, nil
}

// LegacyToRelative normalizes a rect authored in absolute pixels against a
// recorded reference resolution. Legacy rects always pass through relative
// form before being projected onto a current canvas, which keeps them
// anchored to the same fraction of the design surface when the canvas is
// resized.
func LegacyToRelative(rect AbsoluteRect, reference CanvasSize) (RelativeRect, error) {
	if !reference.Valid() {
		return RelativeRect{}, invalidReference(reference)
	}
	return RelativeRect{
		X:      rect.X / reference.Width * 100,
		Y:      rect.Y / reference.Height * 100,
		Width:  rect.Width / reference.Width * 100,
		Height: rect.Height / reference.Height * 100,
	}, nil
}

// ImageTransform describes how an image was fitted onto the canvas:
// its scaled size, its centered offset, and the scale factors applied.
type ImageTransform struct {
	Width  float64
	Height float64
	Left   float64
	Top    float64
	ScaleX float64
	ScaleY float64
}

// ScaleImageToCanvas fits an image into the canvas preserving aspect
// ratio. The image is centered; the unused axis gets symmetric margins.
func ScaleImageToCanvas(image CanvasSize, canvas CanvasSize) (ImageTransform, error) {
	if !canvas.Valid() {
		return ImageTransform{}, invalidCanvas(canvas)
	}
	if !image.Valid() {
		return ImageTransform{}, invalidReference(image)
	}

	imageRatio := image.Width / image.Height
	canvasRatio := canvas.Width / canvas.Height

	var width, height float64
	if imageRatio > canvasRatio {
		width = canvas.Width
		height = canvas.Width / imageRatio
	} else {
		height = canvas.Height
		width = canvas.Height * imageRatio
	}

	return ImageTransform{
		Width:  width,
		Height: height,
		Left:   (canvas.Width - width) / 2,
		Top:    (canvas.Height - height) / 2,
		ScaleX: width / image.Width,
		ScaleY: height / image.Height,
	}, nil
}

// PrintAreaOnScaledImage projects a relative print area onto an image that
// was fitted to the canvas, offset by the image's position.
func PrintAreaOnScaledImage(area RelativeRect, transform ImageTransform) AbsoluteRect {
	return AbsoluteRect{
		X:      area.X/100*transform.Width + transform.Left,
		Y:      area.Y/100*transform.Height + transform.Top,
		Width:  area.Width / 100 * transform.Width,
		Height: area.Height / 100 * transform.Height,
	}
}
