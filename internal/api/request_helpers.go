package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/ads-api/internal/api/shared"
	"github.com/phrazzld/ads-api/internal/domain"
	"github.com/phrazzld/ads-api/internal/platform/logger"
)

// getPathID extracts a positive integer ID from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id < 1 {
		return 0, domain.NewValidationError(paramName, "must be a positive integer", domain.ErrInvalidID)
	}

	return id, nil
}

// getPagination reads page and per_page from the query string. Absent
// parameters take their defaults; range checks happen in the service.
func getPagination(r *http.Request, defaultPerPage int) (page, perPage int, err error) {
	var errs domain.ValidationErrors

	page, perr := queryInt(r, "page", domain.DefaultPage)
	if perr != nil {
		errs = append(errs, perr)
	}
	perPage, perr = queryInt(r, "per_page", defaultPerPage)
	if perr != nil {
		errs = append(errs, perr)
	}

	return page, perPage, errs.OrNil()
}

func queryInt(r *http.Request, name string, def int) (int, *domain.ValidationError) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer", nil)
	}
	return v, nil
}

// requireUser returns the authenticated user placed in the context by the
// auth middleware. It writes a 401 and returns false if there is none.
func requireUser(w http.ResponseWriter, r *http.Request, log *slog.Logger) (*domain.User, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		log.Warn("authenticated user not found in request context")
		HandleAPIError(w, r, domain.ErrUnauthenticated, "")
		return nil, false
	}
	return user, true
}

// requireUserAndPathID is a composite helper that extracts the authenticated
// user and an ID from the path. It writes an error response if either fails.
func requireUserAndPathID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (*domain.User, int64, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	user, ok := requireUser(w, r, log)
	if !ok {
		return nil, 0, false
	}

	id, err := getPathID(r, paramName)
	if err != nil {
		log.Debug("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return nil, 0, false
	}

	return user, id, true
}
