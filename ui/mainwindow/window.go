// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"shape-transformer/internal/app"
	"shape-transformer/internal/builder"
	"shape-transformer/internal/pairs"
	"shape-transformer/internal/render"
	"shape-transformer/internal/version"
	"shape-transformer/pkg/geometry"
	"shape-transformer/ui/canvas"
	"shape-transformer/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

const (
	defaultHandleRadius = 10.0
	defaultWidth        = 800.0
	defaultHeight       = 800.0
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app    fyne.App
	prefs  *prefs.Prefs
	editor *app.Editor
	state  *app.State

	canvas    *canvas.ShapeCanvas
	kinds     *widget.RadioGroup
	statusBar *widget.Label
	pointer   *widget.Label
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Shape Transformer")

	radius := p.FloatWithFallback(prefs.KeyHandleRadius, defaultHandleRadius)
	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		prefs:  p,
		state:  state,
		editor: app.NewEditor(state, radius),
	}

	mw.restoreKind()
	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	mw.Resize(fyne.NewSize(
		float32(p.FloatWithFallback(prefs.KeyWindowWidth, defaultWidth)),
		float32(p.FloatWithFallback(prefs.KeyWindowHeight, defaultHeight)),
	))
	mw.SetCloseIntercept(func() {
		mw.SavePreferences()
		mw.Close()
	})

	return mw
}

// restoreKind selects the transformation kind stored in preferences.
func (mw *MainWindow) restoreKind() {
	name := mw.prefs.StringWithFallback(prefs.KeyTransformationKind, builder.KindTranslation.String())
	kind, err := builder.ParseKind(name)
	if err != nil {
		log.Printf("Ignoring stored transformation kind: %v", err)
		kind = builder.KindTranslation
	}
	mw.state.SetKind(kind)
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	style := render.DefaultStyle()
	style.HandleRadius = mw.prefs.FloatWithFallback(prefs.KeyHandleRadius, defaultHandleRadius)
	mw.canvas = canvas.NewShapeCanvas(mw.editor, style)
	mw.canvas.OnPointer(func(pos geometry.Point2D) {
		mw.pointer.SetText(pairs.FormatPoint(pos))
	})
	mw.canvas.OnZoomChange(func(zoom float64) {
		mw.updateStatus(fmt.Sprintf("Zoom: %.0f%%", zoom*100))
	})

	titles := make([]string, 0, len(builder.Kinds()))
	for _, k := range builder.Kinds() {
		titles = append(titles, k.Title())
	}
	mw.kinds = widget.NewRadioGroup(titles, func(selected string) {
		for _, k := range builder.Kinds() {
			if k.Title() == selected {
				mw.onSelectKind(k)
				return
			}
		}
	})
	mw.kinds.Required = true
	mw.kinds.SetSelected(mw.state.Kind().Title())

	resetBtn := widget.NewButton("Reset", mw.onReset)

	sidePanel := container.NewVBox(
		widget.NewLabelWithStyle("Transformation", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		mw.kinds,
		widget.NewSeparator(),
		resetBtn,
		widget.NewLabel("Shift+drag draws a rectangle.\nDrag corners to transform."),
	)

	mw.statusBar = widget.NewLabel("Ready")
	mw.pointer = widget.NewLabel("")

	split := container.NewHSplit(
		container.NewPadded(sidePanel),
		mw.canvas,
	)
	split.SetOffset(0.2)

	content := container.NewBorder(
		nil, // top
		container.NewBorder(nil, nil, nil, mw.pointer, mw.statusBar), // bottom
		nil,   // left
		nil,   // right
		split, // center
	)

	mw.SetContent(content)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Export PNG...", mw.onExportPNG),
		fyne.NewMenuItem("Copy Corners", mw.onCopyCorners),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Reset Gesture", mw.onReset),
		fyne.NewMenuItem("Clear Shapes", mw.onClear),
	)

	kindItems := make([]*fyne.MenuItem, 0, len(builder.Kinds()))
	for _, k := range builder.Kinds() {
		k := k
		kindItems = append(kindItems, fyne.NewMenuItem(k.Title(), func() {
			mw.kinds.SetSelected(k.Title())
		}))
	}
	transformMenu := fyne.NewMenu("Transformation", kindItems...)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.canvas.ZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.canvas.ZoomOut),
		fyne.NewMenuItem("Actual Size", func() { mw.canvas.SetZoom(1) }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, transformMenu, viewMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventShapeAdded, func(data interface{}) {
		if ev, ok := data.(app.ShapeEvent); ok {
			mw.updateStatus(fmt.Sprintf("Added rectangle %d", ev.Index+1))
		}
		mw.canvas.Refresh()
	})

	mw.state.On(app.EventShapeTransformed, func(data interface{}) {
		mw.canvas.Refresh()
	})

	mw.state.On(app.EventShapesCleared, func(data interface{}) {
		mw.canvas.Refresh()
		mw.updateStatus("Cleared")
	})

	mw.state.On(app.EventDragChanged, func(data interface{}) {
		mw.canvas.Refresh()
	})

	mw.state.On(app.EventKindChanged, func(data interface{}) {
		if k, ok := data.(builder.Kind); ok {
			mw.updateStatus(fmt.Sprintf("%s: drag %d corner(s)", k.Title(), k.Pairs()))
		}
	})

	mw.state.On(app.EventStatus, func(data interface{}) {
		if msg, ok := data.(string); ok {
			mw.updateStatus(msg)
		}
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// SavePreferences stores the window size and selected kind.
func (mw *MainWindow) SavePreferences() {
	size := mw.Canvas().Size()
	mw.prefs.SetFloat(prefs.KeyWindowWidth, float64(size.Width))
	mw.prefs.SetFloat(prefs.KeyWindowHeight, float64(size.Height))
	mw.prefs.SetString(prefs.KeyTransformationKind, mw.state.Kind().String())
	if err := mw.prefs.SaveIfChanged(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
}

func (mw *MainWindow) onSelectKind(k builder.Kind) {
	if k == mw.state.Kind() {
		return
	}
	// A gesture cannot change kind halfway through.
	mw.editor.Reset()
	mw.state.SetKind(k)
}

func (mw *MainWindow) onReset() {
	mw.editor.Reset()
	mw.updateStatus("Gesture reset")
}

func (mw *MainWindow) onClear() {
	mw.editor.Reset()
	mw.state.Clear()
}

func (mw *MainWindow) onCopyCorners() {
	var b strings.Builder
	for i, s := range mw.state.Shapes() {
		pts := make([]string, 0, s.Len())
		for _, p := range s.Points() {
			pts = append(pts, pairs.FormatPoint(p))
		}
		fmt.Fprintf(&b, "# shape %d\n%s\n", i+1, strings.Join(pts, " "))
	}
	mw.Clipboard().SetContent(b.String())
	mw.updateStatus("Corners copied to clipboard")
}

func (mw *MainWindow) onExportPNG() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()

		size := mw.canvas.Size()
		style := render.DefaultStyle()
		c := render.NewCanvas(int(size.Width), int(size.Height), mw.canvas.GetZoom(), style.Background)
		render.Draw(c, mw.editor.Frame(), style)
		if err := render.WritePNG(writer, c.Image()); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Exported " + filepath.Base(writer.URI().Path()))
	}, mw.Window)
	fd.SetFileName("shapes.png")
	fd.Show()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Shape Transformer",
		fmt.Sprintf("Shape Transformer v%s\n\n"+
			"Drag polygon corners to fit translations, rotations,\n"+
			"rigid, similarity, affine and projective transformations.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
