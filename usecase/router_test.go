package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainLine "github.com/nextplot/nextplot-gw/domains/line"
	domainMedia "github.com/nextplot/nextplot-gw/domains/media"
	domainRecord "github.com/nextplot/nextplot-gw/domains/record"
)

type fakeMedia struct {
	result domainMedia.IngestResult
	err    error
	calls  int
}

func (f *fakeMedia) Ingest(_ context.Context, _, _ string) (domainMedia.IngestResult, error) {
	f.calls++
	return f.result, f.err
}

type fakePersister struct {
	records []domainRecord.StoredRecord
	reports []*domainRecord.StatusReport
}

func (f *fakePersister) Persist(_ context.Context, rec domainRecord.StoredRecord, report *domainRecord.StatusReport) {
	f.records = append(f.records, rec)
	f.reports = append(f.reports, report)
}

type fakeSender struct {
	err     error
	tokens  []string
	replies []domainLine.ReplyMessage
}

func (f *fakeSender) Reply(_ context.Context, replyToken string, message domainLine.ReplyMessage) error {
	f.tokens = append(f.tokens, replyToken)
	f.replies = append(f.replies, message)
	return f.err
}

type routerFixture struct {
	media     *fakeMedia
	persister *fakePersister
	sender    *fakeSender
	service   domainLine.IWebhookUsecase
}

func newRouterFixture(allowlist []string) *routerFixture {
	f := &routerFixture{
		media:     &fakeMedia{},
		persister: &fakePersister{},
		sender:    &fakeSender{},
	}
	f.service = NewWebhookService(f.media, f.persister, f.sender, allowlist, "storages/conversations.ndjson")
	return f
}

func textEvent(userID, text string) json.RawMessage {
	raw, _ := json.Marshal(map[string]any{
		"type":       "message",
		"replyToken": "rt-1",
		"source":     map[string]string{"type": "user", "userId": userID},
		"message":    map[string]string{"id": "m1", "type": "text", "text": text},
	})
	return raw
}

func mediaEvent(userID, messageType string) json.RawMessage {
	raw, _ := json.Marshal(map[string]any{
		"type":       "message",
		"replyToken": "rt-2",
		"source":     map[string]string{"type": "user", "userId": userID},
		"message":    map[string]string{"id": "m2", "type": messageType},
	})
	return raw
}

func postbackEvent(data string) json.RawMessage {
	raw, _ := json.Marshal(map[string]any{
		"type":       "postback",
		"replyToken": "rt-3",
		"source":     map[string]string{"type": "user", "userId": "U1"},
		"postback":   map[string]string{"data": data},
	})
	return raw
}

func TestProcessEvents_CompleteText(t *testing.T) {
	f := newRouterFixture(nil)

	f.service.ProcessEvents(context.Background(), []json.RawMessage{textEvent("U1", "WC-007 โฉนด 8899")})

	require.Len(t, f.persister.records, 1)
	rec := f.persister.records[0]
	assert.Equal(t, "U1", rec.UserID)
	assert.Equal(t, "text", rec.EventType)
	assert.Equal(t, "WC-007 โฉนด 8899", rec.TextContent)
	assert.JSONEq(t, string(textEvent("U1", "WC-007 โฉนด 8899")), string(rec.Raw))

	require.NotNil(t, f.persister.reports[0])
	assert.Equal(t, StatusFinalized, f.persister.reports[0].Status)

	require.Len(t, f.sender.replies, 1)
	assert.Equal(t, "rt-1", f.sender.tokens[0])
	assert.Contains(t, f.sender.replies[0].Text, "✅ บันทึกข้อมูลเรียบร้อย")
	assert.Contains(t, f.sender.replies[0].Text, "WC-007")
	assert.Contains(t, f.sender.replies[0].Text, "โฉนด 8899")
	assert.Contains(t, f.sender.replies[0].Text, "storages/conversations.ndjson")
}

func TestProcessEvents_IncompleteTextPromptsWithoutPersisting(t *testing.T) {
	f := newRouterFixture(nil)

	f.service.ProcessEvents(context.Background(), []json.RawMessage{textEvent("U1", "WC-007 เท่านั้น")})

	assert.Empty(t, f.persister.records)
	require.Len(t, f.sender.replies, 1)
	reply := f.sender.replies[0]
	assert.Contains(t, reply.Text, "⚠️ ข้อมูลยังไม่ครบ")
	require.NotNil(t, reply.QuickReply)
	assert.Len(t, reply.QuickReply.Items, 3)
}

func TestProcessEvents_HelpCommand(t *testing.T) {
	f := newRouterFixture(nil)

	f.service.ProcessEvents(context.Background(), []json.RawMessage{textEvent("U1", "help")})

	assert.Empty(t, f.persister.records, "help never persists")
	require.Len(t, f.sender.replies, 1)
	assert.Equal(t, usageText, f.sender.replies[0].Text)
}

func TestProcessEvents_AllowlistDropsSilently(t *testing.T) {
	f := newRouterFixture([]string{"Uallowed"})

	f.service.ProcessEvents(context.Background(), []json.RawMessage{textEvent("Uother", "WC-007 โฉนด 8899")})

	assert.Empty(t, f.persister.records)
	assert.Empty(t, f.sender.replies)
	assert.Zero(t, f.media.calls)
}

func TestProcessEvents_EmptyAllowlistAcceptsEveryone(t *testing.T) {
	f := newRouterFixture(nil)

	f.service.ProcessEvents(context.Background(), []json.RawMessage{textEvent("Uanybody", "help")})

	assert.Len(t, f.sender.replies, 1)
}

func TestProcessEvents_MediaSuccess(t *testing.T) {
	f := newRouterFixture(nil)
	f.media.result = domainMedia.IngestResult{
		SignedURL: "https://example.supabase.co/storage/v1/signed",
		Path:      "line/2025/01/19/m2.jpg",
	}

	f.service.ProcessEvents(context.Background(), []json.RawMessage{mediaEvent("U1", "image")})

	require.Len(t, f.persister.records, 1)
	rec := f.persister.records[0]
	assert.Equal(t, "image", rec.EventType)
	assert.Equal(t, f.media.result.SignedURL, rec.TextContent)
	assert.Nil(t, f.persister.reports[0])

	require.Len(t, f.sender.replies, 1)
	assert.Contains(t, f.sender.replies[0].Text, "✅ อัปโหลดไฟล์เรียบร้อย")
	assert.Contains(t, f.sender.replies[0].Text, f.media.result.SignedURL)
}

func TestProcessEvents_MediaSignFallbackPersistsPath(t *testing.T) {
	f := newRouterFixture(nil)
	f.media.result = domainMedia.IngestResult{Path: "line/2025/01/19/m2.jpg"}

	f.service.ProcessEvents(context.Background(), []json.RawMessage{mediaEvent("U1", "image")})

	require.Len(t, f.persister.records, 1)
	assert.Equal(t, "line/2025/01/19/m2.jpg", f.persister.records[0].TextContent)
}

func TestProcessEvents_MediaDownloadFailed(t *testing.T) {
	f := newRouterFixture(nil)
	f.media.err = domainMedia.ErrDownload

	f.service.ProcessEvents(context.Background(), []json.RawMessage{mediaEvent("U1", "video")})

	assert.Empty(t, f.persister.records, "failed ingest never persists")
	require.Len(t, f.sender.replies, 1)
	assert.Equal(t, downloadFailedText, f.sender.replies[0].Text)
}

func TestProcessEvents_MediaUploadFailed(t *testing.T) {
	f := newRouterFixture(nil)
	f.media.err = domainMedia.ErrUpload

	f.service.ProcessEvents(context.Background(), []json.RawMessage{mediaEvent("U1", "file")})

	assert.Empty(t, f.persister.records)
	require.Len(t, f.sender.replies, 1)
	assert.Equal(t, uploadFailedText, f.sender.replies[0].Text)
}

func TestProcessEvents_PostbackActions(t *testing.T) {
	cases := []struct {
		data string
		want string
	}{
		{"action=add_code", addCodeText},
		{"action=add_deed", addDeedText},
		{"action=skip", skipText},
	}

	for _, tc := range cases {
		f := newRouterFixture(nil)

		f.service.ProcessEvents(context.Background(), []json.RawMessage{postbackEvent(tc.data)})

		require.Len(t, f.sender.replies, 1, "data=%s", tc.data)
		assert.Equal(t, tc.want, f.sender.replies[0].Text, "data=%s", tc.data)
		assert.Empty(t, f.persister.records, "postbacks never persist")
	}
}

func TestProcessEvents_UnknownPostbackActionIgnored(t *testing.T) {
	f := newRouterFixture(nil)

	f.service.ProcessEvents(context.Background(), []json.RawMessage{postbackEvent("action=explode")})

	assert.Empty(t, f.sender.replies)
}

func TestProcessEvents_UnknownEventTypeIgnored(t *testing.T) {
	f := newRouterFixture(nil)
	raw := json.RawMessage(`{"type":"follow","replyToken":"rt-9","source":{"userId":"U1"}}`)

	f.service.ProcessEvents(context.Background(), []json.RawMessage{raw})

	assert.Empty(t, f.sender.replies)
	assert.Empty(t, f.persister.records)
}

func TestProcessEvents_MissingUserDefaultsToUnknown(t *testing.T) {
	f := newRouterFixture(nil)
	raw := json.RawMessage(`{"type":"message","replyToken":"rt-1","message":{"id":"m1","type":"text","text":"WC-007 โฉนด 8899"}}`)

	f.service.ProcessEvents(context.Background(), []json.RawMessage{raw})

	require.Len(t, f.persister.records, 1)
	assert.Equal(t, "unknown", f.persister.records[0].UserID)
}

func TestProcessEvents_UndecodableEventSkipsSiblingsUnharmed(t *testing.T) {
	f := newRouterFixture(nil)

	f.service.ProcessEvents(context.Background(), []json.RawMessage{
		json.RawMessage(`not-json`),
		textEvent("U1", "help"),
	})

	require.Len(t, f.sender.replies, 1)
	assert.Equal(t, usageText, f.sender.replies[0].Text)
}

func TestProcessEvents_NoReplyTokenSendsNothing(t *testing.T) {
	f := newRouterFixture(nil)
	raw := json.RawMessage(`{"type":"message","source":{"userId":"U1"},"message":{"id":"m1","type":"text","text":"WC-007 โฉนด 8899"}}`)

	f.service.ProcessEvents(context.Background(), []json.RawMessage{raw})

	// Persisted, but no outbound reply without a token.
	assert.Len(t, f.persister.records, 1)
	assert.Empty(t, f.sender.replies)
}
