package main

import (
	"net/http"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/lib/validator"
	"reviewhub/proj/internal/services/users"

	"github.com/go-chi/chi/v5"
)

func (app *Application) getUsers(w http.ResponseWriter, r *http.Request) {
	var f filters.Filters
	if !app.decodeQuery(w, r, &f) {
		return
	}
	f.SetDefaults()
	if errs := validator.ValidateStruct(app.validator, f); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	userList, metadata, err := app.services.Users.List(r.Context(), f)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"users": userList, "metadata": metadata}, "")
}

func (app *Application) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := app.services.Users.Get(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"user": user}, "")
}

type updateUserRequest struct {
	Username  *string `json:"username" validate:"omitempty,max=150,username"`
	Email     *string `json:"email" validate:"omitempty,email,max=254"`
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role" validate:"omitempty,oneof=user moderator admin"`
}

func (r updateUserRequest) toParams() users.UpdateParams {
	return users.UpdateParams{
		Username:  r.Username,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Bio:       r.Bio,
		Role:      r.Role,
	}
}

// updateUser is the admin path: role changes are applied.
func (app *Application) updateUser(w http.ResponseWriter, r *http.Request) {
	var input updateUserRequest
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	user, err := app.services.Users.Update(r.Context(), chi.URLParam(r, "username"), input.toParams(), true)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"user": user}, "")
}

func (app *Application) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := app.services.Users.Delete(r.Context(), chi.URLParam(r, "username")); err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.NoContent(w, r, "")
}

func (app *Application) getOwnProfile(w http.ResponseWriter, r *http.Request) {
	app.Http.Ok(w, r, envelop{"user": app.contextGetUser(r)}, "")
}

// updateOwnProfile never applies a role change, whatever the payload
// says and whoever the actor is.
func (app *Application) updateOwnProfile(w http.ResponseWriter, r *http.Request) {
	var input updateUserRequest
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	actor := app.contextGetUser(r)
	user, err := app.services.Users.Update(r.Context(), actor.Username, input.toParams(), false)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"user": user}, "")
}
