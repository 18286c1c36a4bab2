package export

import (
	"context"
	"log/slog"
	"path"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
	"gocloud.dev/gcerrors"

	"mapnote/config"
	"mapnote/internal/domain/service"
	"mapnote/internal/util"
)

const defaultPrefix = "maps"

type blobSnapshotStore struct {
	bucket *blob.Bucket
	prefix string
	logger *slog.Logger
}

// SnapshotStoreParams holds dependencies for the snapshot store, injected by Fx
type SnapshotStoreParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewSnapshotStore opens the configured bucket and closes it on shutdown
func NewSnapshotStore(params SnapshotStoreParams) (service.SnapshotStore, error) {
	cfg := params.Config.Export

	store, err := OpenSnapshotStore(params.Ctx, cfg.BucketURL, cfg.Prefix, params.Logger)
	if err != nil {
		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Closing SnapshotStore")

			return store.Close()
		},
	})

	return store, nil
}

// OpenSnapshotStore opens a gocloud bucket URL such as mem:// or file:///var/lib/mapnote
func OpenSnapshotStore(ctx context.Context, bucketURL, prefix string, logger *slog.Logger) (service.SnapshotStore, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open bucket %s", bucketURL)
	}
	if prefix == "" {
		prefix = defaultPrefix
	}

	logger.Info("Snapshot store opened",
		slog.String("bucket_url", bucketURL),
		slog.String("prefix", prefix),
	)

	return &blobSnapshotStore{bucket: bucket, prefix: prefix, logger: logger}, nil
}

func (s *blobSnapshotStore) key(mapID string) string {
	return path.Join(s.prefix, mapID+".geojson")
}

func (s *blobSnapshotStore) Save(ctx context.Context, mapID string, document []byte) (string, error) {
	key := s.key(mapID)
	if err := s.bucket.WriteAll(ctx, key, document, &blob.WriterOptions{ContentType: GeoJSONContentType}); err != nil {
		return "", errors.Wrapf(err, "write %s", key)
	}

	s.logger.DebugContext(ctx, "snapshot saved",
		slog.String("key", key),
		slog.String("size", util.FormatBytes(int64(len(document)))),
	)

	return key, nil
}

func (s *blobSnapshotStore) Load(ctx context.Context, mapID string) ([]byte, error) {
	key := s.key(mapID)
	data, err := s.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, errors.Wrapf(service.ErrSnapshotNotFound, "key %s", key)
		}

		return nil, errors.Wrapf(err, "read %s", key)
	}

	return data, nil
}

func (s *blobSnapshotStore) Close() error {
	return errors.WithStack(s.bucket.Close())
}

// Module provides the export FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewSnapshotStore),
	fx.Provide(NewGeoJSONEncoder),
)
