package certificates

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"academia/admin-portal/admin-portal-backend/internal/document"
)

// AssetKind names a logical visual asset of the document.
type AssetKind string

const (
	AssetLogo                AssetKind = "logo"
	AssetSignatureLeft       AssetKind = "signature-left"
	AssetSignatureRight      AssetKind = "signature-right"
	AssetCompositeBackground AssetKind = "composite-background"
)

// AssetReference is a logical asset plus its ordered candidate locations.
// Candidates are tried strictly in order, most-likely-first.
type AssetReference struct {
	Kind       AssetKind
	Candidates []string
}

// CandidateLocations derives the ordered fallback URLs for a logical asset
// path: the origin-qualified primary, the public-root rewrite, and a
// lowercased path-segment substitution. Duplicates are dropped while keeping
// order.
func CandidateLocations(origin, publicRoot, logicalPath string) []string {
	p := "/" + strings.TrimPrefix(logicalPath, "/")
	raw := []string{
		strings.TrimSuffix(origin, "/") + p,
		strings.TrimSuffix(origin, "/") + "/" + strings.Trim(publicRoot, "/") + p,
		strings.TrimSuffix(origin, "/") + strings.ToLower(p),
	}
	seen := make(map[string]bool, len(raw))
	out := raw[:0]
	for _, u := range raw {
		if !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}
	return out
}

// ResolutionState tracks the per-asset fallback chain.
type ResolutionState string

const (
	ResolutionPending     ResolutionState = "pending"
	ResolutionTrying      ResolutionState = "trying"
	ResolutionResolved    ResolutionState = "resolved"
	ResolutionUnavailable ResolutionState = "unavailable"
)

// Resolution is the terminal outcome for one asset. Asset is nil when every
// candidate failed; that is a valid outcome, not an error.
type Resolution struct {
	Kind     AssetKind
	State    ResolutionState
	Asset    *document.EmbeddedImage
	Attempts int
}

// Available reports whether the asset resolved to embeddable image data.
func (r Resolution) Available() bool {
	return r.State == ResolutionResolved && r.Asset != nil
}

// ResolvedAssets maps asset kinds to their terminal resolutions. A missing
// key behaves the same as an unavailable asset.
type ResolvedAssets map[AssetKind]Resolution

// Image returns the embeddable image for a kind, or nil when unavailable.
func (ra ResolvedAssets) Image(kind AssetKind) *document.EmbeddedImage {
	if res, ok := ra[kind]; ok && res.Available() {
		return res.Asset
	}
	return nil
}

// Resolver fetches binary image assets over HTTP with a per-attempt timeout.
// No caching: every generation request resolves its assets fresh.
type Resolver struct {
	client         *http.Client
	attemptTimeout time.Duration
	logger         *zap.Logger
}

// NewResolver creates an asset resolver. attemptTimeout bounds each candidate
// attempt so a broken asset host cannot stall certificate production.
func NewResolver(client *http.Client, attemptTimeout time.Duration, logger *zap.Logger) *Resolver {
	if client == nil {
		client = http.DefaultClient
	}
	if attemptTimeout <= 0 {
		attemptTimeout = 5 * time.Second
	}
	return &Resolver{
		client:         client,
		attemptTimeout: attemptTimeout,
		logger:         logger,
	}
}

// Resolve walks the candidate chain sequentially and returns the first
// successful fetch-and-decode, or the Unavailable terminal state once the
// chain is exhausted. Failures never propagate as errors.
func (r *Resolver) Resolve(ctx context.Context, ref AssetReference) Resolution {
	res := Resolution{Kind: ref.Kind, State: ResolutionPending}

	for _, candidate := range ref.Candidates {
		if ctx.Err() != nil {
			break
		}
		res.State = ResolutionTrying
		res.Attempts++

		img, err := r.fetchImage(ctx, candidate)
		if err != nil {
			r.logger.Debug("asset candidate failed",
				zap.String("kind", string(ref.Kind)),
				zap.String("url", candidate),
				zap.Error(err))
			continue
		}

		res.State = ResolutionResolved
		res.Asset = img
		return res
	}

	res.State = ResolutionUnavailable
	r.logger.Info("asset unavailable, document degrades to text-only",
		zap.String("kind", string(ref.Kind)),
		zap.Int("attempts", res.Attempts))
	return res
}

// ResolveAll resolves independent assets concurrently and waits for every
// chain to finish. This is the single synchronization point before the
// builder runs.
func (r *Resolver) ResolveAll(ctx context.Context, refs []AssetReference) ResolvedAssets {
	results := make([]Resolution, len(refs))

	var wg sync.WaitGroup
	for i, ref := range refs {
		wg.Add(1)
		go func(i int, ref AssetReference) {
			defer wg.Done()
			results[i] = r.Resolve(ctx, ref)
		}(i, ref)
	}
	wg.Wait()

	resolved := make(ResolvedAssets, len(results))
	for _, res := range results {
		resolved[res.Kind] = res
	}
	return resolved
}

func (r *Resolver) fetchImage(ctx context.Context, url string) (*document.EmbeddedImage, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, r.attemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	return &document.EmbeddedImage{
		Format:  format,
		Bytes:   data,
		DataURI: "data:image/" + format + ";base64," + base64.StdEncoding.EncodeToString(data),
	}, nil
}
