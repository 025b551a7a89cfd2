package rest

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/nextplot/nextplot-gw/core/config"
	domainLine "github.com/nextplot/nextplot-gw/domains/line"
	pkgCrypto "github.com/nextplot/nextplot-gw/pkg/crypto"
)

const signatureHeader = "x-line-signature"

type Webhook struct {
	Service   domainLine.IWebhookUsecase
	Forwarder domainLine.IForwarder
	Config    *config.Config
}

func InitRestWebhook(app fiber.Router, service domainLine.IWebhookUsecase, forwarder domainLine.IForwarder, cfg *config.Config) Webhook {
	handler := Webhook{Service: service, Forwarder: forwarder, Config: cfg}

	app.Post("/webhook", handler.Handle)
	// Legacy route kept for deployments still pointing LINE at the old path.
	app.Post("/api/line/webhook", handler.Handle)

	return handler
}

// Handle is the webhook entry point. Once the signature gate passes, the
// response is 200 {ok:true} no matter what happens to individual events:
// failures inside the loop are logged and swallowed so the platform never
// enters a retry storm over a single bad event.
func (h *Webhook) Handle(c *fiber.Ctx) error {
	signature := c.Get(signatureHeader)

	logrus.WithFields(logrus.Fields{
		"has_signature": signature != "",
	}).Info("[WEBHOOK] Request received")

	// Debug escape hatch: acknowledge everything, process nothing.
	if h.Config.Line.RelaxVerify {
		logrus.Info("[WEBHOOK] RELAX MODE: returning 200 OK")
		return c.JSON(fiber.Map{"ok": true, "mode": "relax"})
	}

	// Verification runs over the exact raw request bytes, before parsing.
	body := c.Body()
	if !h.Config.Line.SignatureRelaxed {
		if h.Config.Line.ChannelSecret == "" {
			logrus.Error("[WEBHOOK] Channel secret not configured")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Configuration error"})
		}
		if signature == "" {
			logrus.Warn("[WEBHOOK] Missing signature")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing signature"})
		}
		if !pkgCrypto.VerifySignature(body, signature, h.Config.Line.ChannelSecret) {
			logrus.Warn("[WEBHOOK] Invalid signature")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid signature"})
		}
	}

	if h.Config.Line.AccessToken == "" || h.Config.Supabase.URL == "" {
		logrus.Error("[WEBHOOK] Services not initialized")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Services not initialized"})
	}

	// Prefer the upstream processor when one is configured; fall back to
	// local processing on timeout or non-2xx instead of failing the request.
	if h.Forwarder != nil && h.Forwarder.Enabled() {
		err := h.Forwarder.Forward(c.UserContext(), body, signature)
		if err == nil {
			return c.JSON(fiber.Map{"ok": true, "forwarded": true})
		}
		logrus.WithError(err).Warn("[WEBHOOK] Upstream forward failed, processing locally")
	}

	var webhookBody domainLine.WebhookBody
	if err := json.Unmarshal(body, &webhookBody); err != nil {
		// The signature already proved the sender; an unparsable body is
		// acknowledged rather than retried forever.
		logrus.WithError(err).Warn("[WEBHOOK] Undecodable body")
		return c.JSON(fiber.Map{"ok": true})
	}

	h.Service.ProcessEvents(c.UserContext(), webhookBody.Events)

	return c.JSON(fiber.Map{"ok": true})
}
