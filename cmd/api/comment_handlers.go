package main

import (
	"net/http"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/domain/permissions"
	"reviewhub/proj/internal/lib/validator"
)

func (app *Application) extractCommentPath(w http.ResponseWriter, r *http.Request) (titleID, reviewID int64, ok bool) {
	titleID, ok = app.extractIDParam(w, r, "titleID")
	if !ok {
		return 0, 0, false
	}
	reviewID, ok = app.extractIDParam(w, r, "reviewID")
	if !ok {
		return 0, 0, false
	}
	return titleID, reviewID, true
}

func (app *Application) getComments(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := app.extractCommentPath(w, r)
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
	commentList, metadata, err := app.services.Reviews.ListComments(r.Context(), titleID, reviewID, f)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"comments": commentList, "metadata": metadata}, "")
}

func (app *Application) getComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := app.extractCommentPath(w, r)
	if !ok {
		return
	}
	id, ok := app.extractIDParam(w, r, "commentID")
	if !ok {
		return
	}
	comment, err := app.services.Reviews.GetComment(r.Context(), titleID, reviewID, id)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"comment": comment}, "")
}

type commentRequest struct {
	Text string `json:"text" validate:"required"`
}

func (app *Application) createComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := app.extractCommentPath(w, r)
	if !ok {
		return
	}
	var input commentRequest
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	author := app.contextGetUser(r)
	comment, err := app.services.Reviews.CreateComment(r.Context(), titleID, reviewID, author, input.Text)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"comment": comment}, "")
}

func (app *Application) updateComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := app.extractCommentPath(w, r)
	if !ok {
		return
	}
	id, ok := app.extractIDParam(w, r, "commentID")
	if !ok {
		return
	}
	var input commentRequest
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	comment, err := app.services.Reviews.GetComment(r.Context(), titleID, reviewID, id)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	actor := app.contextGetUser(r)
	if !permissions.CanModifyMessage(actor, comment.AuthorID) {
		app.Http.Forbidden(w, r, "You can only edit your own comments")
		return
	}
	updated, err := app.services.Reviews.UpdateComment(r.Context(), titleID, reviewID, id, input.Text)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"comment": updated}, "")
}

func (app *Application) deleteComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := app.extractCommentPath(w, r)
	if !ok {
		return
	}
	id, ok := app.extractIDParam(w, r, "commentID")
	if !ok {
		return
	}
	comment, err := app.services.Reviews.GetComment(r.Context(), titleID, reviewID, id)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	actor := app.contextGetUser(r)
	if !permissions.CanModifyMessage(actor, comment.AuthorID) {
		app.Http.Forbidden(w, r, "You can only delete your own comments")
		return
	}
	if err := app.services.Reviews.DeleteComment(r.Context(), titleID, reviewID, id); err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.NoContent(w, r, "")
}
