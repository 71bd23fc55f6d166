package ui

import (
	"bytes"
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Shared widget construction for the menu and weapon-select screens.

// Faces bundles the text faces the UI screens share.
type Faces struct {
	Title  text.Face
	Normal text.Face
	Small  text.Face
}

// LoadFaces builds the UI faces from the bundled Go Regular font.
func LoadFaces() *Faces {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic(err)
	}
	return &Faces{
		Title:  &text.GoTextFace{Source: src, Size: 22},
		Normal: &text.GoTextFace{Source: src, Size: 13},
		Small:  &text.GoTextFace{Source: src, Size: 10},
	}
}

// ButtonImage is the flat three-state button used everywhere.
func ButtonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:    image.NewNineSliceColor(color.RGBA{55, 55, 70, 255}),
		Hover:   image.NewNineSliceColor(color.RGBA{75, 75, 95, 255}),
		Pressed: image.NewNineSliceColor(color.RGBA{40, 40, 55, 255}),
	}
}

// TextButton builds a fixed-size button with the standard palette.
func TextButton(label string, face text.Face, minW, minH int, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(minW, minH),
		),
		widget.ButtonOpts.Image(ButtonImage()),
		widget.ButtonOpts.Text(label, &face, &widget.ButtonTextColor{
			Idle:    color.RGBA{255, 255, 255, 255},
			Hover:   color.RGBA{255, 255, 200, 255},
			Pressed: color.RGBA{200, 200, 200, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

// Label builds a plain single-color label.
func Label(textValue string, face text.Face, col color.RGBA) *widget.Label {
	return widget.NewLabel(
		widget.LabelOpts.Text(textValue, &face, &widget.LabelColor{Idle: col}),
	)
}

// Root builds the full-screen anchor container with a centered vertical
// content column, and returns both.
func Root(bg color.RGBA) (*widget.Container, *widget.Container) {
	root := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(bg)),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	content := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(8)),
			widget.RowLayoutOpts.Spacing(6),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
	root.AddChild(content)
	return root, content
}
