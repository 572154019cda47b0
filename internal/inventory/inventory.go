// Package inventory owns the authoritative seat status per showtime.
//
// BOOKED seats live in Postgres booking rows; HELD seats are Redis lock
// keys with a TTL, plus a per-showtime set used to overlay seat maps.
// Redis executes Lua scripts atomically, which is the per-showtime
// serialization point: two overlapping hold attempts cannot both win.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/cinetick/cinetick/internal/domain"
	"github.com/redis/go-redis/v9"
)

// lockSeats transitions the requested seats to HELD, all or nothing.
// KEYS[1] is the per-showtime lock set, KEYS[2..] the seat lock keys;
// ARGV[1] is the session id, ARGV[2] the TTL in seconds, ARGV[2+i] the
// seat id matching KEYS[1+i]. Returns the conflicting seat ids, empty on
// success.
var lockSeatsScript = redis.NewScript(`
	local conflicts = {}

	for i = 2, #KEYS do
		if redis.call("EXISTS", KEYS[i]) == 1 then
			table.insert(conflicts, ARGV[i + 1])
		end
	end

	if #conflicts > 0 then
		return conflicts
	end

	for i = 2, #KEYS do
		redis.call("SET", KEYS[i], ARGV[1], "EX", tonumber(ARGV[2]))
		redis.call("SADD", KEYS[1], ARGV[i + 1])
	end

	return {}
`)

// releaseSeats deletes the given locks if this session owns them, and
// prunes lock-set members whose key is gone. Safe to run twice.
var releaseSeatsScript = redis.NewScript(`
	for i = 2, #KEYS do
		if redis.call("GET", KEYS[i]) == ARGV[1] then
			redis.call("DEL", KEYS[i])
		end

		if redis.call("EXISTS", KEYS[i]) == 0 then
			redis.call("SREM", KEYS[1], ARGV[i])
		end
	end

	return redis.status_reply("OK")
`)

// verifyHold checks that every lock still belongs to the session.
// Returns the smallest remaining TTL in seconds, or -1 when any lock has
// lapsed or is owned by someone else.
var verifyHoldScript = redis.NewScript(`
	local minTtl = -1

	for i = 1, #KEYS do
		if redis.call("GET", KEYS[i]) ~= ARGV[1] then
			return -1
		end

		local ttl = redis.call("TTL", KEYS[i])
		if minTtl == -1 or ttl < minTtl then
			minTtl = ttl
		end
	end

	return minTtl
`)

// pruneExpiredLocks removes lock-set members whose lock key expired and
// returns the seat ids that are still validly held.
var pruneExpiredLocksScript = redis.NewScript(`
	local setKey = KEYS[1]
	local showtimeId = ARGV[1]
	local cursor = "0"
	local batchSize = 100
	local expiredSeats = {}
	local validSeats = {}

	repeat
		local result = redis.call("SSCAN", setKey, cursor, "COUNT", batchSize)
		cursor = result[1]
		local seatIds = result[2]

		for _, seatId in ipairs(seatIds) do
			local lockKey = "seat_lock:" .. showtimeId .. ":" .. seatId
			if redis.call("EXISTS", lockKey) == 0 then
				table.insert(expiredSeats, seatId)
			else
				table.insert(validSeats, seatId)
			end
		end
	until cursor == "0"

	if #expiredSeats > 0 then
		redis.call("SREM", setKey, unpack(expiredSeats))
	end

	return validSeats
`)

// BookedSeatSource yields the durably booked seats of a showtime.
type BookedSeatSource interface {
	GetSeatsByShowtime(ctx context.Context, showtimeID int) ([]domain.BookedSeatRef, error)
}

type Inventory struct {
	redis    redis.UniversalClient
	seatRepo domain.SeatRepository
	booked   BookedSeatSource
}

func New(rdb redis.UniversalClient, seatRepo domain.SeatRepository, booked BookedSeatSource) *Inventory {
	return &Inventory{
		redis:    rdb,
		seatRepo: seatRepo,
		booked:   booked,
	}
}

// SeatMap returns the current status snapshot for a showtime. It never
// blocks on other buyers' operations.
func (inv *Inventory) SeatMap(ctx context.Context, showtimeID int) (*domain.SeatMap, error) {
	seatMap, err := inv.seatRepo.GetByShowtime(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	heldIDs, err := inv.validHeldSeats(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	bookedRefs, err := inv.booked.GetSeatsByShowtime(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get booked seats: %w", err)
	}

	held := make(map[int]bool, len(heldIDs))
	for _, id := range heldIDs {
		held[id] = true
	}

	booked := make(map[int]bool, len(bookedRefs))
	for _, ref := range bookedRefs {
		booked[ref.SeatID] = true
	}

	for i := range seatMap.Seats {
		switch id := seatMap.Seats[i].ID; {
		case booked[id]:
			seatMap.Seats[i].Status = domain.SeatStatusBooked
		case held[id]:
			seatMap.Seats[i].Status = domain.SeatStatusHeld
		default:
			seatMap.Seats[i].Status = domain.SeatStatusAvailable
		}
	}

	return seatMap, nil
}

// TryHold transitions the requested seats from AVAILABLE to HELD for the
// session, with no partial effect. On conflict the returned
// SeatsUnavailableError names exactly the losing seats.
func (inv *Inventory) TryHold(ctx context.Context, showtimeID int, seatIDs []int, sessionID string, ttl time.Duration) error {
	bookedRefs, err := inv.booked.GetSeatsByShowtime(ctx, showtimeID)
	if err != nil {
		return fmt.Errorf("failed to get booked seats: %w", err)
	}

	booked := make(map[int]bool, len(bookedRefs))
	for _, ref := range bookedRefs {
		booked[ref.SeatID] = true
	}

	var taken []int
	for _, id := range seatIDs {
		if booked[id] {
			taken = append(taken, id)
		}
	}
	if len(taken) > 0 {
		return domain.SeatsUnavailableError{SeatIDs: taken}
	}

	keys := make([]string, 0, len(seatIDs)+1)
	keys = append(keys, LockSetKey(showtimeID))
	args := make([]any, 0, len(seatIDs)+2)
	args = append(args, sessionID, int(ttl.Seconds()))

	for _, id := range seatIDs {
		keys = append(keys, LockKey(showtimeID, id))
		args = append(args, id)
	}

	conflicts, err := lockSeatsScript.Run(ctx, inv.redis, keys, args...).Int64Slice()
	if err != nil {
		return fmt.Errorf("failed to run lockSeats script: %w", err)
	}

	if len(conflicts) > 0 {
		ids := make([]int, len(conflicts))
		for i, id := range conflicts {
			ids[i] = int(id)
		}

		return domain.SeatsUnavailableError{SeatIDs: ids}
	}

	return nil
}

// Release transitions the given seats back to AVAILABLE if the session
// holds them. Idempotent: lapsed or already-released locks are no-ops.
func (inv *Inventory) Release(ctx context.Context, showtimeID int, sessionID string, seatIDs []int) error {
	if len(seatIDs) == 0 {
		return nil
	}

	keys := make([]string, 0, len(seatIDs)+1)
	keys = append(keys, LockSetKey(showtimeID))
	args := make([]any, 0, len(seatIDs)+1)
	args = append(args, sessionID)

	for _, id := range seatIDs {
		keys = append(keys, LockKey(showtimeID, id))
		args = append(args, id)
	}

	err := releaseSeatsScript.Run(ctx, inv.redis, keys, args...).Err()
	if err != nil {
		return fmt.Errorf("failed to run releaseSeats script: %w", err)
	}

	return nil
}

// VerifyHold confirms the session still owns every given seat lock.
// A lapsed or foreign lock yields ErrSelectionExpired.
func (inv *Inventory) VerifyHold(ctx context.Context, showtimeID int, sessionID string, seatIDs []int) error {
	if len(seatIDs) == 0 {
		return domain.ErrSelectionExpired
	}

	keys := make([]string, len(seatIDs))
	for i, id := range seatIDs {
		keys[i] = LockKey(showtimeID, id)
	}

	minTTL, err := verifyHoldScript.Run(ctx, inv.redis, keys, sessionID).Int()
	if err != nil {
		return fmt.Errorf("failed to run verifyHold script: %w", err)
	}

	if minTTL < 0 {
		return domain.ErrSelectionExpired
	}

	return nil
}

// PruneExpired cleans lapsed members out of a showtime's lock set and
// reports the seats still validly held. The sweeper calls this
// periodically; SeatMap calls it on every read.
func (inv *Inventory) PruneExpired(ctx context.Context, showtimeID int) ([]int, error) {
	return inv.validHeldSeats(ctx, showtimeID)
}

func (inv *Inventory) validHeldSeats(ctx context.Context, showtimeID int) ([]int, error) {
	cmd := pruneExpiredLocksScript.Run(ctx, inv.redis, []string{LockSetKey(showtimeID)}, showtimeID)

	ids, err := cmd.Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("failed to run pruneExpiredLocks script: %w", err)
	}

	seatIDs := make([]int, len(ids))
	for i, id := range ids {
		seatIDs[i] = int(id)
	}

	return seatIDs, nil
}

func LockKey(showtimeID, seatID int) string {
	return fmt.Sprintf("seat_lock:%d:%d", showtimeID, seatID)
}

func LockSetKey(showtimeID int) string {
	return fmt.Sprintf("seat_locks:%d", showtimeID)
}
