package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/services/auth"
	"reviewhub/proj/internal/services/reviews"
	"reviewhub/proj/internal/services/titles"
	"reviewhub/proj/internal/services/users"
	"reviewhub/proj/internal/storage"

	"github.com/go-chi/chi/v5"
)

func (app *Application) extractIDParam(w http.ResponseWriter, r *http.Request, name string) (id int64, extracted bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		app.Http.NotFound(w, r, fmt.Sprintf("invalid %s", name))
		return 0, false
	}
	return id, true
}

func (app *Application) contextGetUser(r *http.Request) *models.User {
	user, ok := r.Context().Value(CtxKeyUser).(*models.User)
	if !ok || user == nil {
		return models.AnonymousUser
	}
	return user
}

func (app *Application) readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	src := http.MaxBytesReader(w, r.Body, int64(maxBytes))
	defer io.Copy(io.Discard, src)
	dec := json.NewDecoder(src)
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if err != nil {
		return handleJsonErr(err)
	}
	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}

func (app *Application) decodeQuery(w http.ResponseWriter, r *http.Request, dst any) (ok bool) {
	if err := app.queryDecoder.Decode(dst, r.URL.Query()); err != nil {
		app.Http.BadRequest(w, r, "invalid query parameters")
		return false
	}
	return true
}

func handleJsonErr(err error) error {
	var syntaxError *json.SyntaxError
	var unmarshalTypeError *json.UnmarshalTypeError
	var invalidUnmarshalError *json.InvalidUnmarshalError
	var maxBytesError *http.MaxBytesError
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

	case errors.As(err, &maxBytesError):
		return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)

	case errors.As(err, &invalidUnmarshalError):
		panic(err)
	default:
		return err
	}
}

// handleServiceError maps service sentinels onto HTTP responses; anything
// unrecognized is a server error.
func (app *Application) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldConflict *auth.FieldConflictError
	var storageConflict *storage.ConflictError
	switch {
	case errors.As(err, &fieldConflict):
		app.Http.ConflictFields(w, r, map[string]string{fieldConflict.Field: fieldConflict.Message})
	case errors.As(err, &storageConflict):
		app.Http.ConflictFields(w, r, map[string]string{
			storageConflict.Field: fmt.Sprintf("this %s is already taken", storageConflict.Field),
		})
	case errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, users.ErrUserNotFound),
		errors.Is(err, titles.ErrTitleNotFound),
		errors.Is(err, reviews.ErrTitleNotFound),
		errors.Is(err, reviews.ErrReviewNotFound),
		errors.Is(err, reviews.ErrCommentNotFound):
		app.Http.NotFound(w, r, err.Error())
	case errors.Is(err, reviews.ErrReviewAlreadyExists),
		errors.Is(err, titles.ErrSlugAlreadyTaken):
		app.Http.Conflict(w, r, err.Error())
	case errors.Is(err, auth.ErrInvalidConfirmationCode),
		errors.Is(err, titles.ErrYearInFuture),
		errors.Is(err, titles.ErrCategoryNotFound),
		errors.Is(err, titles.ErrGenreNotFound):
		app.Http.BadRequest(w, r, err.Error())
	default:
		app.Http.ServerError(w, r, err, "")
	}
}
