package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	pkgerrors "github.com/trailheadsupply/storefront/pkg/errors"
	"github.com/trailheadsupply/storefront/pkg/logger"
	"github.com/trailheadsupply/storefront/pkg/types"
)

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, types.SuccessEnvelope{Data: data})
}

// WriteRaw passes a remote service body through unchanged. Used when the
// caller wants the upstream response verbatim rather than our envelope.
func WriteRaw(w http.ResponseWriter, status int, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if len(body) == 0 {
		return
	}
	if _, err := w.Write(body); err != nil {
		log.Printf(`{"level":"error","msg":"failed to write raw response","err":"%v"}`, err)
	}
}

func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	if svcErr := pkgerrors.AsService(err); svcErr != nil {
		writeServiceError(ctx, logg, w, svcErr)
		return
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	switch typed.Code() {
	case pkgerrors.CodeValidation,
		pkgerrors.CodeNotFound,
		pkgerrors.CodeConflict:
		if m := typed.Message(); m != "" {
			msg = m
		}
	}

	payload := types.ErrorEnvelope{
		Error: types.APIError{
			Code:    string(typed.Code()),
			Message: msg,
		},
	}

	if meta.DetailsAllowed {
		if details := typed.Details(); details != nil {
			payload.Error.Details = details
		}
	}

	logError(ctx, logg, err)
	writeJSON(w, meta.HTTPStatus, payload)
}

// writeServiceError relays a remote rejection: the upstream status is kept
// and the decoded payload becomes the message, so API consumers see the
// same text a shopper would.
func writeServiceError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, svcErr *pkgerrors.ServiceError) {
	msg := svcErr.Payload().Display()
	if msg == "" {
		msg = "order service rejected the request"
	}

	status := svcErr.Status
	if status < 400 || status > 599 {
		status = http.StatusBadGateway
	}

	logError(ctx, logg, svcErr)
	writeJSON(w, status, types.ErrorEnvelope{
		Error: types.APIError{
			Code:    "SERVICE_ERROR",
			Message: msg,
		},
	})
}

func logError(ctx context.Context, logg *logger.Logger, err error) {
	if logg == nil {
		return
	}
	dump := pkgerrors.Dump(err)

	fields := map[string]any{
		"error":       dump.TopMessage,
		"error_code":  dump.Code,
		"error_chain": dump.Chain,
	}
	if dump.ServiceStatus != 0 {
		fields["service_status"] = dump.ServiceStatus
		fields["service_body"] = dump.ServiceBody
	}

	ctx = logg.WithFields(ctx, fields)
	logg.Error(ctx, "request.error", err)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
