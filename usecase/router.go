package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	domainLine "github.com/nextplot/nextplot-gw/domains/line"
	domainMedia "github.com/nextplot/nextplot-gw/domains/media"
	domainRecord "github.com/nextplot/nextplot-gw/domains/record"
)

// Canned reply texts. User-visible failures are always rendered in the
// user's language, never as protocol-level errors.
const (
	usageText = "วิธีใช้\n- พิมพ์ CODE และเลขโฉนดในข้อความเดียวกัน เช่น: WC-007 โฉนด 8899\n- ส่งรูป/ไฟล์แนบได้ ระบบจะอัปโหลดและส่งลิงก์กลับ\n- คำสั่ง: help, วิธีใช้"

	downloadFailedText = "❌ ไม่สามารถดาวน์โหลดไฟล์ได้"
	uploadFailedText   = "❌ ไม่สามารถอัปโหลดไฟล์ได้"

	addCodeText = "โปรดพิมพ์ CODE ในรูปแบบ: XX-999 (เช่น WC-007)"
	addDeedText = "โปรดพิมพ์เลขโฉนด (เช่น โฉนด 8899)"
	skipText    = "⏩ ข้ามการบันทึกข้อมูล"
)

type webhookService struct {
	media     domainMedia.IMediaUsecase
	persister domainRecord.IRecordPersister
	sender    domainLine.IReplySender
	allowlist []string
	logFile   string
}

// NewWebhookService wires the event pipeline. allowlist empty means every
// user is accepted; logFile only feeds the confirmation texts.
func NewWebhookService(
	media domainMedia.IMediaUsecase,
	persister domainRecord.IRecordPersister,
	sender domainLine.IReplySender,
	allowlist []string,
	logFile string,
) domainLine.IWebhookUsecase {
	return &webhookService{
		media:     media,
		persister: persister,
		sender:    sender,
		allowlist: allowlist,
		logFile:   logFile,
	}
}

// ProcessEvents handles a webhook batch sequentially in array order, so the
// order of side effects matches the order events were received.
func (s *webhookService) ProcessEvents(ctx context.Context, events []json.RawMessage) {
	logrus.WithField("count", len(events)).Info("[WEBHOOK] Events received")
	for _, raw := range events {
		s.processEvent(ctx, raw)
	}
}

// processEvent is the per-event failure boundary: one bad event must never
// abort processing of its siblings.
func (s *webhookService) processEvent(ctx context.Context, raw json.RawMessage) {
	traceID := uuid.NewString()
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("trace_id", traceID).Errorf("[WEBHOOK] Recovered from panic while processing event: %v", r)
		}
	}()

	var evt domainLine.Event
	if err := json.Unmarshal(raw, &evt); err != nil {
		logrus.WithField("trace_id", traceID).WithError(err).Warn("[WEBHOOK] Skipping undecodable event")
		return
	}

	userID := evt.Source.UserID
	if userID == "" {
		userID = "unknown"
	}

	logrus.WithFields(logrus.Fields{
		"trace_id": traceID,
		"type":     evt.Type,
		"user_id":  userID,
	}).Info("[WEBHOOK] Processing event")

	if len(s.allowlist) > 0 && !contains(s.allowlist, userID) {
		logrus.WithFields(logrus.Fields{
			"trace_id": traceID,
			"user_id":  userID,
		}).Warn("[WEBHOOK] User not in allowlist")
		return
	}

	reply := s.routeEvent(ctx, evt, userID, raw)
	if reply == nil || evt.ReplyToken == "" {
		return
	}
	if err := s.sender.Reply(ctx, evt.ReplyToken, *reply); err != nil {
		logrus.WithField("trace_id", traceID).WithError(err).Error("[WEBHOOK] Reply failed")
	}
}

// routeEvent dispatches over the closed event union. Unknown variants are
// ignored safely.
func (s *webhookService) routeEvent(ctx context.Context, evt domainLine.Event, userID string, raw json.RawMessage) *domainLine.ReplyMessage {
	switch evt.Type {
	case domainLine.EventTypeMessage:
		return s.handleMessage(ctx, evt, userID, raw)
	case domainLine.EventTypePostback:
		return s.handlePostback(evt, userID)
	default:
		logrus.WithField("type", evt.Type).Info("[WEBHOOK] Unhandled event type")
		return nil
	}
}

func (s *webhookService) handleMessage(ctx context.Context, evt domainLine.Event, userID string, raw json.RawMessage) *domainLine.ReplyMessage {
	if evt.Message == nil {
		return nil
	}
	switch evt.Message.Type {
	case domainLine.MessageTypeText:
		return s.handleTextMessage(ctx, evt, userID, raw)
	case domainLine.MessageTypeImage, domainLine.MessageTypeVideo, domainLine.MessageTypeAudio, domainLine.MessageTypeFile:
		return s.handleMediaMessage(ctx, evt, userID, raw)
	default:
		logrus.WithField("type", evt.Message.Type).Info("[WEBHOOK] Unhandled message type")
		return nil
	}
}

func (s *webhookService) handleTextMessage(ctx context.Context, evt domainLine.Event, userID string, raw json.RawMessage) *domainLine.ReplyMessage {
	text := evt.Message.Text

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"text":    text,
	}).Info("[WEBHOOK] Text message")

	if IsHelpCommand(text) {
		return domainLine.NewTextReply(usageText)
	}

	res := ExtractFields(text)
	if !res.Complete() {
		return BuildQuickReply(res.Code, res.Deed)
	}

	report := CheckFinalize(FinalizePayload{Code: res.Code, DeedNo: res.Deed, Text: text})
	s.persister.Persist(ctx, domainRecord.StoredRecord{
		UserID:      userID,
		EventType:   domainLine.MessageTypeText,
		TextContent: text,
		Raw:         raw,
	}, &report)

	return domainLine.NewTextReply(fmt.Sprintf(
		"✅ บันทึกข้อมูลเรียบร้อย\n\nCODE: %s\nเลขโฉนด: %s\nไฟล์: %s",
		res.Code, res.Deed, s.logFile,
	))
}

func (s *webhookService) handleMediaMessage(ctx context.Context, evt domainLine.Event, userID string, raw json.RawMessage) *domainLine.ReplyMessage {
	messageID := evt.Message.ID
	messageType := evt.Message.Type

	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"type":       messageType,
		"message_id": messageID,
	}).Info("[WEBHOOK] Media message")

	result, err := s.media.Ingest(ctx, messageID, messageType)
	switch {
	case errors.Is(err, domainMedia.ErrDownload):
		return domainLine.NewTextReply(downloadFailedText)
	case errors.Is(err, domainMedia.ErrUpload):
		return domainLine.NewTextReply(uploadFailedText)
	case err != nil:
		logrus.WithError(err).Error("[WEBHOOK] Media ingest failed")
		return domainLine.NewTextReply(uploadFailedText)
	}

	textContent := result.SignedURL
	if textContent == "" {
		textContent = result.Path
	}

	s.persister.Persist(ctx, domainRecord.StoredRecord{
		UserID:      userID,
		EventType:   messageType,
		TextContent: textContent,
		Raw:         raw,
	}, nil)

	return domainLine.NewTextReply(fmt.Sprintf(
		"✅ อัปโหลดไฟล์เรียบร้อย\n\nประเภท: %s\nลิงก์ (ใช้ได้ 1 ชม.): %s\nไฟล์: %s",
		messageType, result.SignedURL, s.logFile,
	))
}

// handlePostback answers the quick-reply buttons. Unknown actions produce no
// reply at all.
func (s *webhookService) handlePostback(evt domainLine.Event, userID string) *domainLine.ReplyMessage {
	if evt.Postback == nil {
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"data":    evt.Postback.Data,
	}).Info("[WEBHOOK] Postback")

	params, err := url.ParseQuery(evt.Postback.Data)
	if err != nil {
		logrus.WithError(err).Warn("[WEBHOOK] Undecodable postback data")
		return nil
	}

	switch params.Get("action") {
	case "add_code":
		return domainLine.NewTextReply(addCodeText)
	case "add_deed":
		return domainLine.NewTextReply(addDeedText)
	case "skip":
		return domainLine.NewTextReply(skipText)
	default:
		return nil
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
