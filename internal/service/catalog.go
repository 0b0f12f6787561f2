package service

import (
	"context"
	"time"

	"github.com/Ramez23/Movies-System/internal/model"
	"github.com/Ramez23/Movies-System/internal/repository"
)

// CatalogService manages movies, halls and showtimes.
type CatalogService struct {
	movies    MovieStore
	halls     HallStore
	seats     SeatStore
	showtimes ShowtimeStore
	now       func() time.Time
}

func NewCatalogService(movies MovieStore, halls HallStore, seats SeatStore, showtimes ShowtimeStore) *CatalogService {
	return &CatalogService{
		movies:    movies,
		halls:     halls,
		seats:     seats,
		showtimes: showtimes,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// AddMovie validates the genre and rating strings and stores the movie.
func (s *CatalogService) AddMovie(ctx context.Context, title, genre string, durationMin int, releaseDate time.Time, rating string) (*model.Movie, error) {
	g, err := model.ParseGenre(genre)
	if err != nil {
		return nil, err
	}
	r, err := model.ParseRating(rating)
	if err != nil {
		return nil, err
	}
	m := &model.Movie{Title: title, Genre: g, DurationMin: durationMin, ReleaseDate: releaseDate, Rating: r}
	if err := s.movies.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *CatalogService) GetMovie(ctx context.Context, id uint64) (*model.Movie, error) {
	return s.movies.GetByID(ctx, id)
}

func (s *CatalogService) ListMovies(ctx context.Context) ([]model.Movie, error) {
	return s.movies.List(ctx)
}

// UpdateMovie replaces a movie's fields. A duration change shifts the
// derived end of every showtime screening it.
func (s *CatalogService) UpdateMovie(ctx context.Context, id uint64, title, genre string, durationMin int, releaseDate time.Time, rating string) (*model.Movie, error) {
	g, err := model.ParseGenre(genre)
	if err != nil {
		return nil, err
	}
	r, err := model.ParseRating(rating)
	if err != nil {
		return nil, err
	}
	m, err := s.movies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Title = title
	m.Genre = g
	m.DurationMin = durationMin
	m.ReleaseDate = releaseDate
	m.Rating = r
	if err := s.movies.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *CatalogService) DeleteMovie(ctx context.Context, id uint64) error {
	return s.movies.Delete(ctx, id)
}

// AddHall stores a hall and provisions its seats, numbered 1 through
// capacity, all born free.
func (s *CatalogService) AddHall(ctx context.Context, name string, capacity int) (*model.Hall, error) {
	h := &model.Hall{Name: name, Capacity: capacity}
	seats := make([]model.Seat, capacity)
	for i := range seats {
		seats[i] = model.Seat{SeatNumber: i + 1, Status: model.SeatStatusFree}
	}
	if err := s.halls.CreateWithSeats(ctx, h, seats); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *CatalogService) GetHall(ctx context.Context, id uint64) (*model.Hall, error) {
	return s.halls.GetByID(ctx, id)
}

func (s *CatalogService) ListHalls(ctx context.Context) ([]model.Hall, error) {
	return s.halls.List(ctx)
}

func (s *CatalogService) ListHallSeats(ctx context.Context, hallID uint64) ([]model.Seat, error) {
	if _, err := s.halls.GetByID(ctx, hallID); err != nil {
		return nil, err
	}
	return s.seats.ListByHall(ctx, hallID)
}

// UpdateHall changes name and capacity. The stored seat block is not
// rebuilt; a grown capacity does not mint new seats and a shrunk one
// does not remove any.
func (s *CatalogService) UpdateHall(ctx context.Context, id uint64, name string, capacity int) (*model.Hall, error) {
	h, err := s.halls.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	h.Name = name
	h.Capacity = capacity
	if err := s.halls.Update(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *CatalogService) DeleteHall(ctx context.Context, id uint64) error {
	return s.halls.Delete(ctx, id)
}

// AddShowtime schedules a movie in a hall. The screening window is
// [startsAt, startsAt+duration); if any existing showtime in the hall
// overlaps that window the call fails with a HallConflictError naming
// the occupant.
func (s *CatalogService) AddShowtime(ctx context.Context, movieID, hallID uint64, startsAt time.Time) (*repository.ShowtimeDetail, error) {
	movie, err := s.movies.GetByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if _, err := s.halls.GetByID(ctx, hallID); err != nil {
		return nil, err
	}
	startsAt = startsAt.UTC()
	end := startsAt.Add(movie.Duration())
	existing, err := s.showtimes.FindConflict(ctx, hallID, startsAt, end, 0)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &HallConflictError{Existing: *existing}
	}
	st := &model.ShowTime{MovieID: movieID, HallID: hallID, StartsAt: startsAt}
	if err := s.showtimes.Create(ctx, st); err != nil {
		return nil, err
	}
	return s.showtimes.GetDetail(ctx, st.ID)
}

func (s *CatalogService) GetShowtime(ctx context.Context, id uint64) (*repository.ShowtimeDetail, error) {
	return s.showtimes.GetDetail(ctx, id)
}

// ListShowtimes returns upcoming showtimes, optionally narrowed to a
// genre. An empty genre string means no filter.
func (s *CatalogService) ListShowtimes(ctx context.Context, genre string) ([]repository.ShowtimeDetail, error) {
	if genre == "" {
		return s.showtimes.ListUpcoming(ctx, s.now())
	}
	g, err := model.ParseGenre(genre)
	if err != nil {
		return nil, err
	}
	return s.showtimes.ListUpcomingByGenre(ctx, s.now(), g)
}

// UpdateShowtime moves a showtime to a new movie, hall or start. The
// overlap check runs against the new window with the moved showtime
// excluded, so its own current slot cannot mask another overlap.
func (s *CatalogService) UpdateShowtime(ctx context.Context, id, movieID, hallID uint64, startsAt time.Time) (*repository.ShowtimeDetail, error) {
	st, err := s.showtimes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	movie, err := s.movies.GetByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if _, err := s.halls.GetByID(ctx, hallID); err != nil {
		return nil, err
	}
	startsAt = startsAt.UTC()
	end := startsAt.Add(movie.Duration())
	existing, err := s.showtimes.FindConflict(ctx, hallID, startsAt, end, id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &HallConflictError{Existing: *existing}
	}
	st.MovieID = movieID
	st.HallID = hallID
	st.StartsAt = startsAt
	if err := s.showtimes.Update(ctx, st); err != nil {
		return nil, err
	}
	return s.showtimes.GetDetail(ctx, id)
}

func (s *CatalogService) DeleteShowtime(ctx context.Context, id uint64) error {
	return s.showtimes.Delete(ctx, id)
}
