package server

import (
	api2 "github.com/hilite/hilite-go/lib/api"
	"github.com/hilite/hilite-go/lib/doctree"
	"github.com/hilite/hilite-go/lib/hooks"
	"github.com/hilite/hilite-go/lib/lifecycle"
	"github.com/hilite/hilite-go/lib/notify"
	"github.com/hilite/hilite-go/lib/overlay"
	"github.com/hilite/hilite-go/lib/property"
	"github.com/hilite/hilite-go/lib/registry"
	settings2 "github.com/hilite/hilite-go/lib/settings"
	"github.com/hilite/hilite-go/lib/utils"
	"github.com/hilite/hilite-go/lib/ws"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Version is overridden at build time via -ldflags.
var Version = "dev"

// demoDocument builds the host tree the engine serves when no embedding host
// is present.
func demoDocument() *doctree.Node {
	root := doctree.NewElement("body")
	intro := doctree.NewElement("p")
	intro.Id = "intro"
	intro.AppendChild(doctree.NewText("The cat sat on the mat"))
	root.AppendChild(intro)
	return root
}

func InitServer(setupLogger *zap.SugaredLogger) {
	retrievedSettings, err := settings2.ReadConfig("")
	if err != nil {
		setupLogger.Fatal("Error reading settings: ", err)
	}
	if err := utils.SetLogLevel(retrievedSettings.LogLevel); err != nil {
		setupLogger.Warnw("invalid log level, keeping default", "level", retrievedSettings.LogLevel)
	}
	validatorEvaluator := validator.New(validator.WithRequiredStructEnabled())

	setupLogger.Info("Starting Hilite...")

	dataStore, err := utils.GetDB(retrievedSettings, setupLogger)
	if err != nil {
		setupLogger.Fatal("Error opening datastore: ", err)
	}
	defer dataStore.Close()

	hub := ws.NewHub()
	go hub.Run()

	retrievedHooks := hooks.NewHook()

	root := demoDocument()
	annotationRegistry := registry.NewRegistry()
	binder := overlay.NewBinder()
	controller := lifecycle.NewController(root, annotationRegistry, binder, setupLogger)
	controller.Store = dataStore
	controller.DefaultColor = retrievedSettings.DefaultColor
	controller.Notifier = notify.MultiNotifier{
		notify.NewHookNotifier(retrievedHooks),
		notify.NewWSNotifier(hub),
	}

	if err := controller.RestoreFromStore(); err != nil {
		setupLogger.Warn("Error restoring annotations from store: ", err)
	}

	properties := property.NewSeededSource("Method", "Result", "Claim", "Definition")

	StartUpdateRoutine(setupLogger, Version)

	app := fiber.New(fiber.Config{
		AppName: retrievedSettings.Title,
	})

	api2.InitAPI(app, controller, properties, validatorEvaluator)
	app.Get("/ws", adaptor.HTTPHandlerFunc(ws.ServeWS(hub, setupLogger)))

	addr := retrievedSettings.IP + ":" + retrievedSettings.Port
	setupLogger.Info("Listening on ", addr)
	if err := app.Listen(addr); err != nil {
		setupLogger.Fatal(err)
	}
}
