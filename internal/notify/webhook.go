package notify

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/pay-managing/api-payments/internal/logger"
)

// SendImportSummary posts the bulk-import outcome to an operator webhook.
// Fire and forget: delivery failure is logged, never fatal.
func SendImportSummary(url string, inserted, rejected int) {
	log := logger.WithComponent("notify")

	payload := map[string]any{
		"message":  "payment bulk import finished",
		"inserted": inserted,
		"rejected": rejected,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		log.Error().Err(err).Str("url", url).Msg("sending import summary webhook")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Warn().Int("status", resp.StatusCode).Str("url", url).Msg("import summary webhook rejected")
	}
}
