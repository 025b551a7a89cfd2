package usecase

import (
	"strings"

	domainLine "github.com/nextplot/nextplot-gw/domains/line"
)

// BuildQuickReply produces the incomplete-data prompt: a warning listing
// exactly the missing field names (CODE before เลขโฉนด) plus the same three
// postback actions regardless of which field is missing. Callers only reach
// this when at least one field is absent; a complete extraction goes to
// persistence instead.
func BuildQuickReply(code, deed string) *domainLine.ReplyMessage {
	var missing []string
	if code == "" {
		missing = append(missing, "CODE")
	}
	if deed == "" {
		missing = append(missing, "เลขโฉนด")
	}

	msg := domainLine.NewTextReply("⚠️ ข้อมูลยังไม่ครบ: " + strings.Join(missing, ", "))
	msg.QuickReply = &domainLine.QuickReply{
		Items: []domainLine.QuickReplyItem{
			{
				Type: "action",
				Action: domainLine.PostbackAction{
					Type:        "postback",
					Label:       "➕ เพิ่ม CODE",
					Data:        "action=add_code",
					DisplayText: "เพิ่ม CODE",
				},
			},
			{
				Type: "action",
				Action: domainLine.PostbackAction{
					Type:        "postback",
					Label:       "➕ เพิ่มเลขโฉนด",
					Data:        "action=add_deed",
					DisplayText: "เพิ่มเลขโฉนด",
				},
			},
			{
				Type: "action",
				Action: domainLine.PostbackAction{
					Type:        "postback",
					Label:       "⏩ ข้าม",
					Data:        "action=skip",
					DisplayText: "ข้าม",
				},
			},
		},
	}
	return msg
}
