package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/xavierca1/callflex-webhooks/internal/infra/http/middleware"
	"github.com/xavierca1/callflex-webhooks/internal/usecase"
)

const typeformBodyLimit = 1 << 20

type RegisterClientUseCase interface {
	Execute(ctx context.Context, input usecase.RegisterClientInput) (*usecase.RegisterClientOutput, error)
}

type typeformPayload struct {
	FormResponse struct {
		Answers []json.RawMessage `json:"answers"`
	} `json:"form_response"`
}

type TypeformHandler struct {
	RegisterClientUC RegisterClientUseCase
	// Secret enables Typeform-Signature checks when non-empty.
	Secret string
	logger *zap.Logger
}

func NewTypeformHandler(uc RegisterClientUseCase, secret string, logger *zap.Logger) *TypeformHandler {
	return &TypeformHandler{
		RegisterClientUC: uc,
		Secret:           secret,
		logger:           logger,
	}
}

func (h *TypeformHandler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := readBody(w, r, typeformBodyLimit)
	if err != nil {
		code, msg := bodyErrorStatus(err, typeformBodyLimit)
		h.reject(w, code, "validation", msg)
		return
	}

	if h.Secret != "" && !validTypeformSignature(payload, r.Header.Get("Typeform-Signature"), h.Secret) {
		h.reject(w, http.StatusUnauthorized, "signature", "invalid typeform signature")
		return
	}

	var body typeformPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		if isStructureError(err) {
			h.reject(w, http.StatusInternalServerError, "integration", err.Error())
			return
		}
		h.reject(w, http.StatusBadRequest, "validation", "Invalid JSON body: "+err.Error())
		return
	}

	output, err := h.RegisterClientUC.Execute(r.Context(), usecase.RegisterClientInput{
		Answers: body.FormResponse.Answers,
	})
	if err != nil {
		if usecase.IsDomainError(err) {
			h.reject(w, http.StatusBadRequest, "validation", err.Error())
			return
		}
		h.reject(w, http.StatusInternalServerError, "integration", err.Error())
		return
	}

	middleware.RecordClientRegistered()
	respondWithJSON(w, http.StatusOK, output)
}

func (h *TypeformHandler) reject(w http.ResponseWriter, code int, kind, message string) {
	middleware.RecordWebhookError("typeform", kind)
	h.logger.Warn("typeform webhook rejected", zap.Int("status", code), zap.String("error", message))
	respondWithError(w, code, message)
}

// validTypeformSignature checks the "sha256=<base64 HMAC-SHA256>" header
// Typeform sends when a secret is set on the webhook.
func validTypeformSignature(payload []byte, header, secret string) bool {
	sig, ok := strings.CutPrefix(header, "sha256=")
	if !ok {
		return false
	}
	got, err := base64.StdEncoding.DecodeString(sig)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hmac.Equal(got, mac.Sum(nil))
}
