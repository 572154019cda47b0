package mocks

import (
	"context"

	"github.com/cinetick/cinetick/internal/domain"
	"github.com/stretchr/testify/mock"
)

var _ domain.MovieRepository = (*MockMovieRepository)(nil)

type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) GetAll(ctx context.Context, pagination domain.Pagination) ([]*domain.Movie, *domain.Metadata, error) {
	args := m.Called(ctx, pagination)

	var movies []*domain.Movie
	if args.Get(0) != nil {
		movies = args.Get(0).([]*domain.Movie)
	}

	var metadata *domain.Metadata
	if args.Get(1) != nil {
		metadata = args.Get(1).(*domain.Metadata)
	}

	return movies, metadata, args.Error(2)
}

func (m *MockMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Movie), args.Error(1)
}
