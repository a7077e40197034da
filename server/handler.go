package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	yamlcodec "github.com/subaru-pfs/instdata/codec/yaml"
	"github.com/subaru-pfs/instdata/document"
	"github.com/subaru-pfs/instdata/server/middleware"
	"github.com/subaru-pfs/instdata/store"
)

const jsonMediaType = "application/json"

var errBadSegment = errors.New("path segments must not be empty, '.' or '..'")

type documentHandler struct {
	store    *store.Store
	codec    *yamlcodec.Codec
	readOnly bool
}

// NewHandler builds the document service handler with its middleware chain.
func NewHandler(s *store.Store, cfg Config) (http.Handler, error) {
	if s == nil {
		return nil, ErrNilStore
	}

	cfg.SetDefaults()

	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	h := &documentHandler{store: s, codec: yamlcodec.NewCodec(), readOnly: cfg.ReadOnly}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.health)
	mux.HandleFunc("GET /{kind}/{path...}", h.get)
	mux.HandleFunc("PUT /{kind}/{path...}", h.put)

	return middleware.Chain(mux,
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.Deadline(cfg.RequestTimeout),
		middleware.MaxBodySize(cfg.MaxBodyBytes),
	), nil
}

func (h *documentHandler) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

// refFromRequest maps /{kind}/{subdir...}/{name}[.yaml] to a store reference.
func refFromRequest(r *http.Request) (store.Ref, error) {
	kind, err := store.ParseKind(r.PathValue("kind"))
	if err != nil {
		return store.Ref{}, err
	}

	segments := strings.Split(r.PathValue("path"), "/")
	for _, seg := range segments {
		if seg == "" || seg == "." || seg == ".." || strings.Contains(seg, "\\") {
			return store.Ref{}, fmt.Errorf("%w: %w", store.ErrInvalidRef, errBadSegment)
		}
	}

	name := strings.TrimSuffix(segments[len(segments)-1], store.Extension)
	if name == "" {
		return store.Ref{}, fmt.Errorf("%w: empty file name", store.ErrInvalidRef)
	}

	return store.Ref{Kind: kind, SubDir: segments[:len(segments)-1], Name: name}, nil
}

func (h *documentHandler) get(w http.ResponseWriter, r *http.Request) {
	ref, err := refFromRequest(r)
	if err != nil {
		h.fail(w, r, err)

		return
	}

	doc, err := h.store.Load(ref)
	if err != nil {
		h.fail(w, r, err)

		return
	}

	if section := r.URL.Query().Get("section"); section != "" {
		sub, ok := doc.Lookup(section)
		if !ok {
			h.fail(w, r, fmt.Errorf("%w: section %q of %s", store.ErrNotFound, section, ref))

			return
		}

		doc = sub
	}

	h.write(w, r, doc)
}

func (h *documentHandler) write(w http.ResponseWriter, r *http.Request, doc document.Value) {
	if wantsJSON(r) {
		body, err := doc.MarshalJSON()
		if err != nil {
			h.fail(w, r, err)

			return
		}

		w.Header().Set("Content-Type", jsonMediaType)
		_, _ = w.Write(append(body, '\n'))

		return
	}

	body, err := h.codec.Encode(doc)
	if err != nil {
		h.fail(w, r, err)

		return
	}

	w.Header().Set("Content-Type", yamlcodec.MediaType)
	_, _ = w.Write(body)
}

func wantsJSON(r *http.Request) bool {
	switch strings.ToLower(r.URL.Query().Get("format")) {
	case "json":
		return true
	case "yaml":
		return false
	default:
	}

	for part := range strings.SplitSeq(r.Header.Get("Accept"), ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && mediaType == jsonMediaType {
			return true
		}
	}

	return false
}

func (h *documentHandler) put(w http.ResponseWriter, r *http.Request) {
	ref, err := refFromRequest(r)
	if err != nil {
		h.fail(w, r, err)

		return
	}

	if ref.Kind != store.KindData {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "config documents are read-only", http.StatusMethodNotAllowed)

		return
	}

	if h.readOnly {
		http.Error(w, "document service is read-only", http.StatusForbidden)

		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, fmt.Sprintf("document exceeds %d bytes", maxErr.Limit), http.StatusRequestEntityTooLarge)

			return
		}

		http.Error(w, "reading request body failed", http.StatusBadRequest)

		return
	}

	doc, err := h.codec.Decode(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	err = h.store.Dump(ref, doc)
	if err != nil {
		h.fail(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// statusFor maps store errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrInvalidRef):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *documentHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	if status >= http.StatusInternalServerError {
		slog.Error("document request failed",
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.String("error", err.Error()))

		http.Error(w, http.StatusText(status), status)

		return
	}

	if status == http.StatusNotFound {
		http.Error(w, store.ErrNotFound.Error(), status)

		return
	}

	http.Error(w, err.Error(), status)
}
