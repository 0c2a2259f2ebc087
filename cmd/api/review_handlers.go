package main

import (
	"net/http"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/domain/permissions"
	"reviewhub/proj/internal/lib/validator"
)

func (app *Application) getReviews(w http.ResponseWriter, r *http.Request) {
	titleID, ok := app.extractIDParam(w, r, "titleID")
	if !ok {
		return
	}
	var f filters.Filters
	if !app.decodeQuery(w, r, &f) {
		return
	}
	f.SetDefaults()
	if errs := validator.ValidateStruct(app.validator, f); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	reviewList, metadata, err := app.services.Reviews.ListReviews(r.Context(), titleID, f)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"reviews": reviewList, "metadata": metadata}, "")
}

func (app *Application) getReview(w http.ResponseWriter, r *http.Request) {
	titleID, ok := app.extractIDParam(w, r, "titleID")
	if !ok {
		return
	}
	id, ok := app.extractIDParam(w, r, "reviewID")
	if !ok {
		return
	}
	review, err := app.services.Reviews.GetReview(r.Context(), titleID, id)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"review": review}, "")
}

type createReviewRequest struct {
	Text  string `json:"text" validate:"required"`
	Score int    `json:"score" validate:"required,gte=1,lte=10"`
}

func (app *Application) createReview(w http.ResponseWriter, r *http.Request) {
	titleID, ok := app.extractIDParam(w, r, "titleID")
	if !ok {
		return
	}
	var input createReviewRequest
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	author := app.contextGetUser(r)
	review, err := app.services.Reviews.CreateReview(r.Context(), titleID, author, input.Text, input.Score)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"review": review}, "")
}

type updateReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score" validate:"omitempty,gte=1,lte=10"`
}

func (app *Application) updateReview(w http.ResponseWriter, r *http.Request) {
	titleID, ok := app.extractIDParam(w, r, "titleID")
	if !ok {
		return
	}
	id, ok := app.extractIDParam(w, r, "reviewID")
	if !ok {
		return
	}
	var input updateReviewRequest
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	review, err := app.services.Reviews.GetReview(r.Context(), titleID, id)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	actor := app.contextGetUser(r)
	if !permissions.CanModifyMessage(actor, review.AuthorID) {
		app.Http.Forbidden(w, r, "You can only edit your own reviews")
		return
	}
	updated, err := app.services.Reviews.UpdateReview(r.Context(), titleID, id, input.Text, input.Score)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"review": updated}, "")
}

func (app *Application) deleteReview(w http.ResponseWriter, r *http.Request) {
	titleID, ok := app.extractIDParam(w, r, "titleID")
	if !ok {
		return
	}
	id, ok := app.extractIDParam(w, r, "reviewID")
	if !ok {
		return
	}
	review, err := app.services.Reviews.GetReview(r.Context(), titleID, id)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	actor := app.contextGetUser(r)
	if !permissions.CanModifyMessage(actor, review.AuthorID) {
		app.Http.Forbidden(w, r, "You can only delete your own reviews")
		return
	}
	if err := app.services.Reviews.DeleteReview(r.Context(), titleID, id); err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.NoContent(w, r, "")
}
