package analytics

import (
	"context"
	"net/http"

	"github.com/angelmondragon/sales-analytics/api/responses"
	"github.com/angelmondragon/sales-analytics/internal/analytics/types"
	pkgerrors "github.com/angelmondragon/sales-analytics/pkg/errors"
)

const cacheHeader = "X-Cache"

type computeFunc func(ctx context.Context) (any, error)

// serveReport answers from the report cache when possible, otherwise computes,
// encodes and stores the envelope. Cache failures never fail the request.
func serveReport(w http.ResponseWriter, r *http.Request, deps Deps, view string, filter types.SalesFilter, top int, compute computeFunc) {
	ctx := r.Context()
	logg := deps.logger()
	ctx = logg.WithView(ctx, view)

	var key string
	if deps.cacheEnabled() {
		key = deps.Cache.ReportKey(view, filterFingerprint(filter, top, timeNowUTC()))
		payload, hit, err := deps.Cache.GetReport(ctx, key)
		switch {
		case err != nil:
			logg.Warn(logg.WithFields(ctx, map[string]any{"cache_key": key, "error": err.Error()}), "analytics.cache.read_failed")
		case hit:
			w.Header().Set(cacheHeader, "HIT")
			responses.WriteRawSuccess(w, payload)
			return
		}
	}

	data, err := compute(ctx)
	if err != nil {
		responses.WriteError(ctx, logg, w, err)
		return
	}

	body, err := responses.EncodeSuccess(data)
	if err != nil {
		responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode report"))
		return
	}

	if key != "" {
		if err := deps.Cache.SetReport(ctx, key, body, deps.Config.CacheTTL); err != nil {
			logg.Warn(logg.WithFields(ctx, map[string]any{"cache_key": key, "error": err.Error()}), "analytics.cache.write_failed")
		}
		w.Header().Set(cacheHeader, "MISS")
	}
	responses.WriteRawSuccess(w, body)
}
