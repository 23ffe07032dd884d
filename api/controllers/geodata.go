package controllers

import (
	"net/http"

	"github.com/rmartelo/freightops-backend/api/responses"
	"github.com/rmartelo/freightops-backend/internal/geodata"
	pkgerrors "github.com/rmartelo/freightops-backend/pkg/errors"
	"github.com/rmartelo/freightops-backend/pkg/logger"
)

// CountryList returns the full country catalog ordered by name.
func CountryList(svc geodata.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "geodata service unavailable"))
			return
		}

		countries, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, countries)
	}
}

func CountryDetail(svc geodata.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "geodata service unavailable"))
			return
		}

		countryID, err := parseIntParam(r, "countryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Get(r.Context(), int(countryID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}
