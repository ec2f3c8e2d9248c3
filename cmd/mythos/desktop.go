//go:build desktop

package cli

import (
	"embed"
	"io/fs"

	"github.com/wailsapp/wails/v3/pkg/application"
	"github.com/wailsapp/wails/v3/pkg/events"

	"github.com/mythoslabs/mythos/internal/bridge"
	"github.com/mythoslabs/mythos/internal/deeplink"
	"github.com/mythoslabs/mythos/internal/host"
	"github.com/mythoslabs/mythos/internal/logging"
)

//go:embed all:frontend/dist
var frontendFS embed.FS

// RunDesktop starts Mythos with a native window hosting the editor.
func RunDesktop(args []string) error {
	c := AppConfig

	listener, err := deeplink.NewListener(c.DeepLink.Scheme, c.DeepLinkPolicy())
	if err != nil {
		return err
	}

	assets, err := fs.Sub(frontendFS, "frontend/dist")
	if err != nil {
		return err
	}

	rt := host.NewWails(newRegistrar(c))

	// Assigned before Run; the callbacks below only fire after.
	var (
		app    *application.App
		window *application.WebviewWindow
	)

	app = application.New(application.Options{
		Name: c.App.Name,
		Services: []application.Service{
			application.NewService(bridge.NewEditorService(rt)),
			application.NewService(bridge.NewShellService(func(u string) error {
				return app.Browser.OpenURL(u)
			})),
		},
		Assets: application.AssetOptions{
			Handler: application.AssetFileServerFS(assets),
		},
		// Windows and Linux start a new process for every activated deep
		// link; hand its arguments to the running instance instead.
		SingleInstance: &application.SingleInstanceOptions{
			UniqueID: "app.mythos.desktop",
			OnSecondInstanceLaunch: func(data application.SecondInstanceData) {
				listener.OnURLReceived(rt, deeplink.URLsFromArgs(listener.Scheme(), data.Args))
				if window != nil {
					window.Show()
					window.Focus()
				}
			},
		},
		OnShutdown: rt.Close,
	})
	rt.Attach(app.Event)

	url := c.App.URL
	if url == "" {
		url = "/"
	}
	window = app.Window.NewWithOptions(application.WebviewWindowOptions{
		Name:      "main",
		Title:     c.App.Title,
		Width:     c.App.Width,
		Height:    c.App.Height,
		MinWidth:  800,
		MinHeight: 600,
		URL:       url,
	})

	// Strict policy stops here, before the event loop starts.
	if err := listener.Register(rt); err != nil {
		return err
	}

	// macOS delivers scheme activations as an application event.
	app.Event.OnApplicationEvent(events.Common.ApplicationLaunchedWithUrl, func(e *application.ApplicationEvent) {
		listener.OnURLReceived(rt, []string{e.Context().URL()})
	})

	// URLs passed to the very first launch.
	initial := deeplink.URLsFromArgs(listener.Scheme(), args)
	app.Event.OnApplicationEvent(events.Common.ApplicationStarted, func(*application.ApplicationEvent) {
		listener.OnURLReceived(rt, initial)
	})

	logging.Info("starting desktop shell", "scheme", listener.Scheme(), "registered", listener.Registered())
	return app.Run()
}

