package server

import (
	"log/slog"

	"motohub/blob"
	"motohub/collection"
	"motohub/config"
	"motohub/inquiry"
	"motohub/store"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type server struct {
	db      store.Store
	bikes   *collection.BikeView
	notices *collection.Collection
	centers *collection.Collection
	cases   *collection.Collection
	popups  *collection.Collection
	blobs   *blob.Store
	relay   *inquiry.Relay
}

// buildServer wires the store, collections, blob store and relay into an
// echo instance with all routes registered. Shared by Main and the tests.
func buildServer(cfg config.Config) (*echo.Echo, *server, error) {
	db, err := store.New(cfg.Backend, cfg.DataDir, cfg.AtomicWrites)
	if err != nil {
		return nil, nil, err
	}

	blobs, err := blob.New(cfg.UploadsDir)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	s := &server{
		db:      db,
		bikes:   collection.NewBikeView(db),
		notices: collection.New(db, "notices"),
		centers: collection.New(db, "centers"),
		cases:   collection.New(db, "cases"),
		popups:  collection.New(db, "popups"),
		blobs:   blobs,
		relay:   inquiry.NewRelay(cfg.CRM),
	}

	e := echo.New()
	e.HideBanner = true
	e.Binder = &Binder{defaultBinder: &echo.DefaultBinder{}}

	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(TracingMiddleware)
	e.Use(PrometheusMiddleware)

	// GET looks up by slug, DELETE by id. One param name because echo
	// shares it across methods on the same path.
	e.GET("/bikes", s.handleListBikes)
	e.GET("/bikes/:key", s.handleGetBikeBySlug)
	e.POST("/bikes", s.handleUpsertBike)
	e.DELETE("/bikes/:key", s.handleDeleteBike)

	s.registerCollection(e, s.notices)
	s.registerCollection(e, s.centers)
	s.registerCollection(e, s.cases)
	s.registerCollection(e, s.popups)
	e.GET("/notices/:id", s.handleGetNotice)

	e.POST("/upload", s.handleUpload)
	e.POST("/inquiry", s.handleInquiry)

	e.Static("/uploads", blobs.Dir())

	return e, s, nil
}

func Main(configPath, addr, dataDir, uploadsDir, backend string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("config error", "err", err)
		return
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if uploadsDir != "" {
		cfg.UploadsDir = uploadsDir
	}
	if backend != "" {
		cfg.Backend = backend
	}

	e, s, err := buildServer(cfg)
	if err != nil {
		slog.Error("startup error", "err", err)
		return
	}
	defer s.db.Close()

	go s.statsd(cfg.MetricsAddr)

	e.Logger.Fatal(e.Start(cfg.Addr))
}
