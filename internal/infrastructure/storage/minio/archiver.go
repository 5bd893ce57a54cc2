// Package minio archives the final ranked results of completed runs to
// S3-compatible object storage. The archive is a convenience artifact for
// downstream consumers; PostgreSQL remains the source of truth.
package minio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/turtacn/LeadScout/internal/config"
	"github.com/turtacn/LeadScout/internal/domain/candidate"
	"github.com/turtacn/LeadScout/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LeadScout/pkg/errors"
	"github.com/turtacn/LeadScout/pkg/types/common"
)

// ObjectStore is the slice of the minio client API the archiver needs.
// Satisfied by *minio.Client; mocked in tests.
type ObjectStore interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Archiver uploads run result archives. A nil *Archiver is a valid no-op, so
// object storage stays optional.
type Archiver struct {
	store  ObjectStore
	bucket string
	logger logging.Logger
}

// NewArchiver connects to the endpoint and ensures the bucket exists.
func NewArchiver(ctx context.Context, cfg config.MinIOConfig, log logging.Logger) (*Archiver, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to create minio client")
	}

	a := &Archiver{store: client, bucket: cfg.Bucket, logger: log.Named("minio")}
	if err := a.ensureBucket(ctx); err != nil {
		return nil, err
	}

	log.Info("minio connected",
		logging.String("endpoint", cfg.Endpoint),
		logging.String("bucket", cfg.Bucket))
	return a, nil
}

// NewArchiverWithStore wraps an injected store. Used by tests.
func NewArchiverWithStore(store ObjectStore, bucket string, log logging.Logger) *Archiver {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Archiver{store: store, bucket: bucket, logger: log.Named("minio")}
}

func (a *Archiver) ensureBucket(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := a.store.BucketExists(ctx, a.bucket)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to check bucket")
	}
	if exists {
		return nil
	}
	if err := a.store.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to create bucket")
	}
	return nil
}

// resultsArchive is the JSON document uploaded per completed run.
type resultsArchive struct {
	RunID      common.ID             `json:"run_id"`
	ArchivedAt time.Time             `json:"archived_at"`
	Total      int                   `json:"total"`
	Candidates []candidate.Evaluated `json:"candidates"`
}

// ArchiveResults uploads the ranked candidate list as
// runs/<id>/results.json. Nil archivers drop the upload silently.
func (a *Archiver) ArchiveResults(ctx context.Context, runID common.ID, cands []candidate.Evaluated) error {
	if a == nil {
		return nil
	}

	doc := resultsArchive{
		RunID:      runID,
		ArchivedAt: time.Now().UTC(),
		Total:      len(cands),
		Candidates: cands,
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to marshal results archive")
	}

	objectName := fmt.Sprintf("runs/%s/results.json", runID)
	_, err = a.store.PutObject(ctx, a.bucket, objectName,
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		a.logger.Error("archive upload failed",
			logging.String("object", objectName),
			logging.Err(err))
		return errors.Wrap(err, errors.CodeInternal, "failed to upload results archive")
	}

	a.logger.Info("results archived",
		logging.String("object", objectName),
		logging.Int("candidates", len(cands)))
	return nil
}

//Personal.AI order the ending
