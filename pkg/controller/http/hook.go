package http

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shipnote/pkg/controller/hook"
	"github.com/m-mizutani/shipnote/pkg/domain/model"
	"github.com/m-mizutani/shipnote/pkg/domain/types"
	"github.com/m-mizutani/shipnote/pkg/utils/async"
)

// SignatureHeader carries "sha256=<hex HMAC-SHA256 of the body>"
const SignatureHeader = "X-Shipnote-Signature-256"

// HookHandler accepts release contexts and runs the success hook
// asynchronously
type HookHandler struct {
	secret       string
	decoder      *hook.Decoder
	processor    *hook.Processor
	maxBodyBytes int64
	runs         sync.WaitGroup
}

// NewHookHandler creates a new HookHandler
func NewHookHandler(secret string, decoder *hook.Decoder, processor *hook.Processor, maxBodyBytes int64) *HookHandler {
	return &HookHandler{
		secret:       secret,
		decoder:      decoder,
		processor:    processor,
		maxBodyBytes: maxBodyBytes,
	}
}

// Handle verifies and decodes the request, then responds 202 with the run ID
// while the hook runs in background
func (h *HookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(ctx, w, goerr.New("request body too large"), http.StatusRequestEntityTooLarge)
			return
		}
		logger.Error("Failed to read request body", "error", err)
		writeError(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if !h.verifySignature(body, r.Header.Get(SignatureHeader)) {
		logger.Warn("Invalid hook signature")
		writeError(ctx, w, goerr.New("invalid signature"), http.StatusUnauthorized)
		return
	}

	input, err := h.decoder.Decode(body)
	if err != nil {
		logger.Warn("Invalid release context", "error", err)
		writeError(ctx, w, err, http.StatusBadRequest)
		return
	}

	req := &model.HookRequest{
		ID:         types.NewRunID(),
		Source:     model.HookSourceHTTP,
		ReceivedAt: time.Now(),
		Input:      input,
	}

	logger.Info("Accepted success hook",
		"run_id", req.ID,
		"repository_url", input.RepositoryURL,
		"git_tag", input.NextRelease.GitTag,
		"commits", len(input.Commits),
	)

	h.runs.Add(1)
	async.Dispatch(ctx, func(ctx context.Context) error {
		defer h.runs.Done()
		result, err := h.processor.Process(ctx, req)
		if err != nil {
			return err
		}
		return result.Err()
	})

	writeJSON(ctx, w, http.StatusAccepted, map[string]string{
		"status": "accepted",
		"run_id": req.ID.String(),
	})
}

// Wait blocks until all accepted runs have finished or ctx is done
func (h *HookHandler) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.runs.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return goerr.Wrap(ctx.Err(), "gave up waiting for running success hooks")
	}
}

// verifySignature checks the HMAC-SHA256 signature of payload. Requests are
// always rejected when no secret is configured.
func (h *HookHandler) verifySignature(payload []byte, signature string) bool {
	if h.secret == "" || signature == "" {
		return false
	}

	signature = strings.TrimPrefix(signature, "sha256=")

	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(payload)
	expectedMAC := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signature), []byte(expectedMAC))
}
