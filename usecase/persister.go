package usecase

import (
	"context"

	"github.com/sirupsen/logrus"

	domainRecord "github.com/nextplot/nextplot-gw/domains/record"
	domainStorage "github.com/nextplot/nextplot-gw/domains/storage"
)

const messagesTable = "messages"

type recordService struct {
	store   domainStorage.ITableStore
	convlog domainRecord.IConversationLogger
}

func NewRecordService(store domainStorage.ITableStore, convlog domainRecord.IConversationLogger) domainRecord.IRecordPersister {
	return &recordService{store: store, convlog: convlog}
}

// Persist writes the record to the remote table and appends it to the local
// conversation log. The two writes fail independently and both failures are
// swallowed: webhook success is not contingent on storage success, and there
// is no rollback of one write when the other fails.
func (s *recordService) Persist(ctx context.Context, rec domainRecord.StoredRecord, report *domainRecord.StatusReport) {
	if _, err := s.store.InsertRow(ctx, messagesTable, rec); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":    rec.UserID,
			"event_type": rec.EventType,
		}).WithError(err).Error("[RECORD] Remote insert failed")
	}
	s.convlog.Append(rec, report)
}
