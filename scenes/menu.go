package scenes

import (
	"image/color"

	cfg "github.com/automoto/duelrang/config"
	"github.com/automoto/duelrang/systems"
	"github.com/automoto/duelrang/ui"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
)

// MenuScene is the entry screen: local versus, host, join (with address),
// and the diagnostics toggle.
type MenuScene struct {
	sceneChanger SceneChanger
	faces        *ui.Faces

	menuUI    *ebitenui.UI
	addrInput *widget.TextInput
	diagBtn   *widget.Button
}

func NewMenuScene(sc SceneChanger) *MenuScene {
	ms := &MenuScene{
		sceneChanger: sc,
		faces:        ui.LoadFaces(),
	}
	ms.build()
	return ms
}

func (ms *MenuScene) build() {
	root, content := ui.Root(color.RGBA{15, 15, 25, 255})

	content.AddChild(ui.Label("DUELRANG", ms.faces.Title, color.RGBA{255, 255, 255, 255}))
	content.AddChild(ui.Label("", ms.faces.Small, color.RGBA{0, 0, 0, 0}))

	content.AddChild(ui.TextButton("LOCAL VERSUS", ms.faces.Normal, 200, 26, func() {
		ms.sceneChanger.ChangeScene(NewSelectScene(ms.sceneChanger, ms.faces, nil, 0))
	}))

	content.AddChild(ui.TextButton("HOST ONLINE", ms.faces.Normal, 200, 26, func() {
		ms.saveAddr()
		ms.sceneChanger.ChangeScene(NewConnectScene(ms.sceneChanger, ms.faces, true, ms.addr()))
	}))

	addrRow := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(6),
		)),
	)
	addrRow.AddChild(ui.Label("Address:", ms.faces.Normal, color.RGBA{200, 200, 200, 255}))
	ms.addrInput = widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(160, 22)),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     image.NewNineSliceColor(color.RGBA{50, 50, 70, 255}),
			Disabled: image.NewNineSliceColor(color.RGBA{40, 40, 50, 255}),
		}),
		widget.TextInputOpts.Face(&ms.faces.Normal),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:          color.RGBA{255, 255, 255, 255},
			Disabled:      color.RGBA{128, 128, 128, 255},
			Caret:         color.RGBA{255, 255, 255, 255},
			DisabledCaret: color.RGBA{128, 128, 128, 255},
		}),
		widget.TextInputOpts.Placeholder(cfg.Net.DefaultAddr),
		widget.TextInputOpts.Padding(widget.NewInsetsSimple(4)),
	)
	addrRow.AddChild(ms.addrInput)
	content.AddChild(addrRow)

	content.AddChild(ui.TextButton("JOIN ONLINE", ms.faces.Normal, 200, 26, func() {
		ms.saveAddr()
		ms.sceneChanger.ChangeScene(NewConnectScene(ms.sceneChanger, ms.faces, false, ms.addr()))
	}))

	ms.diagBtn = ui.TextButton(ms.diagLabel(), ms.faces.Small, 200, 20, func() {
		cfg.Net.ShowDiagnostics = !cfg.Net.ShowDiagnostics
		ms.diagBtn.Text().Label = ms.diagLabel()
		systems.SaveCurrentSettings()
	})
	content.AddChild(ms.diagBtn)

	ms.menuUI = &ebitenui.UI{Container: root}
}

func (ms *MenuScene) diagLabel() string {
	if cfg.Net.ShowDiagnostics {
		return "net diagnostics: on"
	}
	return "net diagnostics: off"
}

func (ms *MenuScene) addr() string {
	if a := ms.addrInput.GetText(); a != "" {
		return a
	}
	return cfg.Net.DefaultAddr
}

func (ms *MenuScene) saveAddr() {
	if a := ms.addrInput.GetText(); a != "" {
		cfg.Net.DefaultAddr = a
		systems.SaveCurrentSettings()
	}
}

func (ms *MenuScene) Update() {
	ms.menuUI.Update()
}

func (ms *MenuScene) Draw(screen *ebiten.Image) {
	ms.menuUI.Draw(screen)
}
