package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	domainLine "github.com/nextplot/nextplot-gw/domains/line"
	domainMedia "github.com/nextplot/nextplot-gw/domains/media"
	domainStorage "github.com/nextplot/nextplot-gw/domains/storage"
)

// Signed URLs are valid for one hour.
const signedURLExpirySeconds = 3600

type mediaService struct {
	fetcher domainLine.IContentFetcher
	store   domainStorage.IObjectStore
	bucket  string
	now     func() time.Time
}

func NewMediaService(fetcher domainLine.IContentFetcher, store domainStorage.IObjectStore, bucket string) domainMedia.IMediaUsecase {
	return &mediaService{
		fetcher: fetcher,
		store:   store,
		bucket:  bucket,
		now:     time.Now,
	}
}

// Ingest runs download -> upload -> sign. Each stage fails independently and
// is reported once; there are no retries. A signing failure is not fatal:
// the bare path is returned so the record can still be persisted.
func (s *mediaService) Ingest(ctx context.Context, messageID, messageType string) (domainMedia.IngestResult, error) {
	content, err := s.fetcher.FetchContent(ctx, messageID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"message_id": messageID,
			"type":       messageType,
		}).WithError(err).Error("[MEDIA] Failed to download LINE content")
		return domainMedia.IngestResult{}, fmt.Errorf("%w: %v", domainMedia.ErrDownload, err)
	}

	path := s.objectPath(messageID, messageType)
	contentType := contentTypeForMessageType(messageType)

	if err := s.store.Upload(ctx, s.bucket, path, content, contentType); err != nil {
		logrus.WithFields(logrus.Fields{
			"bucket": s.bucket,
			"path":   path,
		}).WithError(err).Error("[MEDIA] Failed to upload to storage")
		return domainMedia.IngestResult{}, fmt.Errorf("%w: %v", domainMedia.ErrUpload, err)
	}

	logrus.WithFields(logrus.Fields{
		"bucket": s.bucket,
		"path":   path,
		"size":   humanize.Bytes(uint64(len(content))),
	}).Info("[MEDIA] Uploaded file")

	result := domainMedia.IngestResult{Path: path}

	signedURL, err := s.store.SignPath(ctx, s.bucket, path, signedURLExpirySeconds)
	if err != nil {
		// Degrade to the bare path; the upload already succeeded.
		logrus.WithField("path", path).WithError(err).Warn("[MEDIA] Failed to sign path, falling back to raw path")
		return result, nil
	}
	result.SignedURL = signedURL
	return result, nil
}

// objectPath computes the dated destination, e.g. line/2025/01/19/<id>.jpg.
func (s *mediaService) objectPath(messageID, messageType string) string {
	now := s.now().UTC()
	return fmt.Sprintf("line/%s/%s.%s", now.Format("2006/01/02"), messageID, extensionForMessageType(messageType))
}

func extensionForMessageType(messageType string) string {
	switch messageType {
	case domainLine.MessageTypeImage:
		return "jpg"
	case domainLine.MessageTypeVideo:
		return "mp4"
	case domainLine.MessageTypeAudio:
		return "m4a"
	case domainLine.MessageTypeFile:
		return "bin"
	default:
		return "dat"
	}
}

func contentTypeForMessageType(messageType string) string {
	switch messageType {
	case domainLine.MessageTypeImage:
		return "image/jpeg"
	case domainLine.MessageTypeVideo:
		return "video/mp4"
	case domainLine.MessageTypeAudio:
		return "audio/mp4"
	default:
		return "application/octet-stream"
	}
}
