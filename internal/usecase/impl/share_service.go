package impl

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"mapnote/internal/domain/annotation"
	"mapnote/internal/domain/entity"
	domainerrors "mapnote/internal/domain/errors"
	"mapnote/internal/domain/repository"
	"mapnote/internal/domain/service"
	"mapnote/internal/domain/workspace"
	"mapnote/internal/usecase"
)

type shareService struct {
	mapBase

	qrcode  service.QRCodeService
	encoder service.FeatureEncoder
	store   service.SnapshotStore
}

// ShareServiceParams holds dependencies for the share service, injected by Fx
type ShareServiceParams struct {
	fx.In

	Repo      repository.MapRepository
	Publisher service.EventPublisher
	QRCode    service.QRCodeService
	Encoder   service.FeatureEncoder
	Store     service.SnapshotStore
	Logger    *slog.Logger
}

// NewShareService creates a new share service instance
func NewShareService(params ShareServiceParams) usecase.ShareUsecase {
	return &shareService{
		mapBase: newMapBase(params.Repo, params.Publisher, params.Logger),
		qrcode:  params.QRCode,
		encoder: params.Encoder,
		store:   params.Store,
	}
}

func (s *shareService) FeatureQRCode(ctx context.Context, mapID, featureID uuid.UUID) ([]byte, error) {
	var anchor entity.Point
	err := s.execute(ctx, mapID, func(ws *workspace.Workspace) error {
		feature, err := ws.Registry.Get(featureID)
		if err != nil {
			return err
		}
		anchor = annotation.Anchor(feature.Geometry)

		return nil
	})
	if err != nil {
		return nil, err
	}

	png, err := s.qrcode.GenerateLocationQR(anchor)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate feature QR code")
	}

	return png, nil
}

func (s *shareService) features(ctx context.Context, mapID uuid.UUID) ([]entity.AnnotationFeature, error) {
	var features []entity.AnnotationFeature
	err := s.execute(ctx, mapID, func(ws *workspace.Workspace) error {
		features = ws.Registry.List()

		return nil
	})

	return features, err
}

func (s *shareService) RenderGeoJSON(ctx context.Context, mapID uuid.UUID) ([]byte, error) {
	features, err := s.features(ctx, mapID)
	if err != nil {
		return nil, err
	}

	document, err := s.encoder.Encode(features)
	if err != nil {
		return nil, domainerrors.NewExportError(err, "encode features")
	}

	return document, nil
}

func (s *shareService) ExportMap(ctx context.Context, mapID uuid.UUID) (*usecase.ExportResult, error) {
	features, err := s.features(ctx, mapID)
	if err != nil {
		return nil, err
	}

	document, err := s.encoder.Encode(features)
	if err != nil {
		return nil, domainerrors.NewExportError(err, "encode features")
	}

	key, err := s.store.Save(ctx, mapID.String(), document)
	if err != nil {
		s.log(ctx).Error("Failed to save export", slog.String("map_id", mapID.String()), slog.Any("error", err))

		return nil, domainerrors.NewExportError(err, "save snapshot")
	}

	s.publish(ctx, mapID, service.EventMapSnapshotExported, key, map[string]any{"features": len(features)})

	return &usecase.ExportResult{Key: key, FeatureCount: len(features)}, nil
}

func (s *shareService) LoadExport(ctx context.Context, mapID uuid.UUID) ([]byte, error) {
	document, err := s.store.Load(ctx, mapID.String())
	if err != nil {
		if errors.Is(err, service.ErrSnapshotNotFound) {
			return nil, domainerrors.ErrNotFound.WithDetails("no export for this map")
		}

		return nil, domainerrors.NewExportError(err, "load snapshot")
	}

	return document, nil
}
