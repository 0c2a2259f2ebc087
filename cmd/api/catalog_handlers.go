package main

import (
	"errors"
	"net/http"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/lib/validator"
	"reviewhub/proj/internal/services/titles"

	"github.com/go-chi/chi/v5"
)

type catalogListQuery struct {
	Search string `schema:"search"`
	filters.Filters
}

type createCatalogItemRequest struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}

func (app *Application) getCategories(w http.ResponseWriter, r *http.Request) {
	var q catalogListQuery
	if !app.decodeQuery(w, r, &q) {
		return
	}
	q.SetDefaults()
	if errs := validator.ValidateStruct(app.validator, q); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	categories, metadata, err := app.services.Titles.ListCategories(r.Context(), q.Search, q.Filters)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"categories": categories, "metadata": metadata}, "")
}

func (app *Application) createCategory(w http.ResponseWriter, r *http.Request) {
	var input createCatalogItemRequest
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	category, err := app.services.Titles.CreateCategory(r.Context(), input.Name, input.Slug)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"category": category}, "")
}

func (app *Application) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := app.services.Titles.DeleteCategory(r.Context(), chi.URLParam(r, "slug")); err != nil {
		// here the slug is the resource itself, not a reference in a payload
		if errors.Is(err, titles.ErrCategoryNotFound) {
			app.Http.NotFound(w, r, err.Error())
			return
		}
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.NoContent(w, r, "")
}

func (app *Application) getGenres(w http.ResponseWriter, r *http.Request) {
	var q catalogListQuery
	if !app.decodeQuery(w, r, &q) {
		return
	}
	q.SetDefaults()
	if errs := validator.ValidateStruct(app.validator, q); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	genres, metadata, err := app.services.Titles.ListGenres(r.Context(), q.Search, q.Filters)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"genres": genres, "metadata": metadata}, "")
}

func (app *Application) createGenre(w http.ResponseWriter, r *http.Request) {
	var input createCatalogItemRequest
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	genre, err := app.services.Titles.CreateGenre(r.Context(), input.Name, input.Slug)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"genre": genre}, "")
}

func (app *Application) deleteGenre(w http.ResponseWriter, r *http.Request) {
	if err := app.services.Titles.DeleteGenre(r.Context(), chi.URLParam(r, "slug")); err != nil {
		if errors.Is(err, titles.ErrGenreNotFound) {
			app.Http.NotFound(w, r, err.Error())
			return
		}
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.NoContent(w, r, "")
}
