// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"mapnote/internal/delivery/api/middleware"
	"mapnote/internal/delivery/api/router/handler"
	"mapnote/internal/domain/constants"
)

type RouterParams struct {
	fx.In

	MapHandler        *handler.MapHandler
	DirectionHandler  *handler.DirectionHandler
	AnnotationHandler *handler.AnnotationHandler
	SearchHandler     *handler.SearchHandler
	ShareHandler      *handler.ShareHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	mapHandler        *handler.MapHandler
	directionHandler  *handler.DirectionHandler
	annotationHandler *handler.AnnotationHandler
	searchHandler     *handler.SearchHandler
	shareHandler      *handler.ShareHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		mapHandler:        params.MapHandler,
		directionHandler:  params.DirectionHandler,
		annotationHandler: params.AnnotationHandler,
		searchHandler:     params.SearchHandler,
		shareHandler:      params.ShareHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	apiV1 := e.Group("/api/v1")

	mapsGroup := apiV1.Group("/maps")
	{
		mapsGroup.POST("", r.mapHandler.CreateMap)
		mapsGroup.GET("", r.mapHandler.ListMaps)
	}

	// Everything below addresses one map instance
	mapGroup := mapsGroup.Group("/:"+constants.ParamMapID, middleware.MapScope)
	{
		mapGroup.GET("", r.mapHandler.GetMap)
		mapGroup.DELETE("", r.mapHandler.DeleteMap)
		mapGroup.PUT("/viewport", r.mapHandler.SetViewport)
		mapGroup.GET("/sidebar", r.mapHandler.GetSidebar)
	}

	directionGroup := mapGroup.Group("/direction")
	{
		directionGroup.GET("", r.directionHandler.GetDirection)
		directionGroup.POST("/reference", r.directionHandler.ToggleReference)
		directionGroup.PUT("/reference", r.directionHandler.DragReference)
		directionGroup.POST("/mode", r.directionHandler.ToggleMeasuring)
		directionGroup.POST("/points", r.directionHandler.RecordPoint)
		directionGroup.DELETE("/points/:seq", r.directionHandler.DeleteMeasurement)
	}

	draftsGroup := mapGroup.Group("/drafts")
	{
		draftsGroup.POST("", r.annotationHandler.BeginDraft)
		draftsGroup.POST("/:draftId/commit", r.annotationHandler.CommitDraft)
		draftsGroup.DELETE("/:draftId", r.annotationHandler.CancelDraft)
	}

	featuresGroup := mapGroup.Group("/features")
	{
		featuresGroup.GET("", r.annotationHandler.ListFeatures)
		featuresGroup.DELETE("", r.annotationHandler.ClearFeatures)
		featuresGroup.POST("/my-location", r.annotationHandler.AddCurrentLocation)
		featuresGroup.PUT("/:id/geometry", r.annotationHandler.UpdateGeometry)
		featuresGroup.DELETE("/:id", r.annotationHandler.DeleteFeature)
		featuresGroup.POST("/:id/focus", r.annotationHandler.FocusFeature)
		featuresGroup.GET("/:id/qrcode", r.shareHandler.FeatureQRCode)
	}

	mapGroup.GET("/geojson", r.shareHandler.RenderGeoJSON)
	exportGroup := mapGroup.Group("/export")
	{
		exportGroup.GET("", r.shareHandler.GetExport)
		exportGroup.POST("", r.shareHandler.ExportMap)
	}

	searchGroup := mapGroup.Group("/search")
	{
		searchGroup.POST("", r.searchHandler.Search)
		searchGroup.POST("/input", r.searchHandler.SubmitInput)
		searchGroup.GET("/suggestions", r.searchHandler.Suggestions)
		searchGroup.POST("/select", r.searchHandler.SelectPlace)
	}
}
