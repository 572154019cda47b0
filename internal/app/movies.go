package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/cinetick/cinetick/api"
	"github.com/cinetick/cinetick/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	DefaultSort     = "id"
)

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request) {
	var params api.GetMoviesParams
	if err := errors.Join(
		queryInt(r, "page", &params.Page),
		queryInt(r, "pageSize", &params.PageSize),
	); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	queryString(r, "term", &params.Term)
	queryString(r, "sort", &params.Sort)

	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	pagination := toPagination(params.Page, params.PageSize)
	if params.Sort != nil {
		pagination.Sort = *params.Sort
	}
	if params.Term != nil {
		pagination.Term = *params.Term
	}

	movies, metadata, err := app.movieRepo.GetAll(r.Context(), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{
		Movies:   toMovieSummaries(movies),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovieShowtimes(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathInt(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if _, err := app.movieRepo.GetById(r.Context(), movieID); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	showtimes, err := app.showtimeRepo.GetByMovie(r.Context(), movieID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	summaries := make([]api.ShowtimeSummary, len(showtimes))
	for i, showtime := range showtimes {
		summaries[i] = api.ShowtimeSummary{
			Id:          showtime.ID,
			TheaterName: showtime.TheaterName,
			HallName:    showtime.HallName,
			StartTime:   showtime.StartTime,
			BasePrice:   showtime.BasePrice,
		}
	}

	resp := api.MovieShowtimesResponse{
		MovieId:   movieID,
		Showtimes: summaries,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toPagination(page, pageSize *int) domain.Pagination {
	pagination := domain.Pagination{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
		Sort:     DefaultSort,
	}

	if page != nil {
		pagination.Page = *page
	}
	if pageSize != nil {
		pagination.PageSize = *pageSize
	}

	return pagination
}

func toMovieSummaries(movies []*domain.Movie) []api.MovieSummary {
	summaries := make([]api.MovieSummary, len(movies))
	today := time.Now().Truncate(24 * time.Hour)

	for i, movie := range movies {
		summary := api.MovieSummary{
			Id:          movie.ID,
			Name:        movie.Title,
			Description: movie.Description,
			PosterUrl:   movie.PosterUrl,
			ReleaseDate: movie.ReleaseDate,
		}

		if movie.ReleaseDate.After(today) {
			summary.Status = api.COMINGSOON
		} else {
			summary.Status = api.NOWSHOWING
		}

		summaries[i] = summary
	}

	return summaries
}

func toApiMetadata(metadata *domain.Metadata) api.Metadata {
	if metadata == nil {
		return api.Metadata{}
	}

	return api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}
