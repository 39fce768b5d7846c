package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/JDR69/DeporteDubss/services"
	"github.com/go-chi/chi/v5"
)

type jsonResponse map[string]interface{}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case err.Error() == "http: request body too large":
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func urlParamInt(r *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}
	return value, nil
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	env := jsonResponse{"error": message}
	if err := writeJSON(w, status, env, nil); err != nil {
		slog.Error("failed to write error response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("internal server error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	errorResponse(w, r, http.StatusInternalServerError,
		"the server encountered a problem and could not process your request")
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func notFoundResponse(w http.ResponseWriter, r *http.Request) {
	errorResponse(w, r, http.StatusNotFound, "the requested resource could not be found")
}

func conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusConflict, message)
}

func unauthorizedResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusUnauthorized, message)
}

func forbiddenResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusForbidden, message)
}

// mapServiceErrorToHTTP translates service layer sentinels into HTTP statuses.
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrPlayerNotFound),
		errors.Is(err, services.ErrSportNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrVenueNotFound),
		errors.Is(err, services.ErrChampionshipNotFound),
		errors.Is(err, services.ErrMatchDayNotFound),
		errors.Is(err, services.ErrMatchNotFound),
		errors.Is(err, services.ErrStandingNotFound),
		errors.Is(err, services.ErrIncidentNotFound):
		notFoundResponse(w, r)

	case errors.Is(err, services.ErrUserEmailConflict),
		errors.Is(err, services.ErrTeamNameConflict),
		errors.Is(err, services.ErrChampionshipNameConflict),
		errors.Is(err, services.ErrEnrollmentConflict),
		errors.Is(err, services.ErrVenueNameConflict),
		errors.Is(err, services.ErrSportNameConflict),
		errors.Is(err, services.ErrCategoryNameConflict),
		errors.Is(err, services.ErrPlayerAlreadyOnTeam),
		errors.Is(err, services.ErrMatchAlreadyHasResult),
		errors.Is(err, services.ErrFixtureExists):
		conflictResponse(w, r, err.Error())

	case errors.Is(err, services.ErrValidationFailed),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrTeamNameRequired),
		errors.Is(err, services.ErrSportNameRequired),
		errors.Is(err, services.ErrChampionshipNameRequired),
		errors.Is(err, services.ErrChampionshipDatesRequired),
		errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrInvalidStatusTransition),
		errors.Is(err, services.ErrChampionshipNotPending),
		errors.Is(err, services.ErrRosterTooSmall),
		errors.Is(err, services.ErrRosterLocked),
		errors.Is(err, services.ErrMatchHasNoResult),
		errors.Is(err, services.ErrNegativeGoals):
		badRequestResponse(w, r, err)

	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrUserInactive):
		unauthorizedResponse(w, r, err.Error())

	case errors.Is(err, services.ErrForbiddenOperation):
		forbiddenResponse(w, r, err.Error())

	default:
		serverErrorResponse(w, r, err)
	}
}
