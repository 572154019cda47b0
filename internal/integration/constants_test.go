package integration_test

const (
	dbName         = "cinetick"
	dbUser         = "test_user"
	dbPassword     = "test_password"
	cacheImageName = "redis:7"

	// Seed fixture identifiers. The testdata SQL files pin these IDs so
	// scenarios can reference showtimes and seats directly.
	TestMovieID    = 1
	TestShowtimeID = 1

	// Hall 1A holds seats 1..8 in two rows; seat 8 is the VIP one and
	// seat 4 the accessible one.
	TestVIPSeatID = 8
)
