package seats

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// HoldStore takes short-lived atomic holds on (showtime, seat) pairs while a
// checkout session is open. Holds are TTL-bound so abandoned sessions release
// their seats without a cleanup process.
type HoldStore struct {
	redis *redis.Client
}

// NewHoldStore creates a new hold store backed by Redis
func NewHoldStore(redisClient *redis.Client) *HoldStore {
	return &HoldStore{redis: redisClient}
}

// Lua script for atomic seat holding - all-or-nothing across the seat set
const luaHoldSeats = `
-- KEYS[1] = showtime_id
-- ARGV[1] = hold_ref
-- ARGV[2] = ttl_seconds
-- ARGV[3..N] = seat_ids

local showtime_id = KEYS[1]
local hold_ref = ARGV[1]
local ttl = tonumber(ARGV[2])

-- Check every requested seat is free of holds before touching anything
for i = 3, #ARGV do
    local key = "seat_hold:" .. showtime_id .. ":" .. ARGV[i]
    local owner = redis.call("GET", key)
    if owner and owner ~= hold_ref then
        return {0, ARGV[i]}
    end
end

for i = 3, #ARGV do
    local key = "seat_hold:" .. showtime_id .. ":" .. ARGV[i]
    redis.call("SETEX", key, ttl, hold_ref)
end

return {1, "success"}
`

// Lua script for releasing the seats of one hold
const luaReleaseSeats = `
-- KEYS[1] = showtime_id
-- ARGV[1..N] = seat_ids

local showtime_id = KEYS[1]
local released = 0

for i = 1, #ARGV do
    local key = "seat_hold:" .. showtime_id .. ":" .. ARGV[i]
    released = released + redis.call("DEL", key)
end

return released
`

// HoldConflictError reports the seat that blocked an atomic hold.
type HoldConflictError struct {
	SeatID uuid.UUID
}

func (e *HoldConflictError) Error() string {
	return fmt.Sprintf("seat already held: %s", e.SeatID)
}

// HoldSeats atomically holds the seat set for a showtime. Either every seat is
// held for ttl or none are; a conflicting hold yields *HoldConflictError.
func (h *HoldStore) HoldSeats(ctx context.Context, showtimeID uuid.UUID, seatIDs []uuid.UUID, holdRef string, ttl time.Duration) error {
	if h.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	keys := []string{showtimeID.String()}
	args := []interface{}{holdRef, strconv.Itoa(int(ttl.Seconds()))}
	for _, seatID := range seatIDs {
		args = append(args, seatID.String())
	}

	result, err := h.redis.EvalSha(ctx, luaHoldSeats, keys, args...).Result()
	if err != nil {
		// Script not cached yet: load-and-run fallback
		result, err = h.redis.Eval(ctx, luaHoldSeats, keys, args...).Result()
		if err != nil {
			return fmt.Errorf("failed to execute atomic seat hold: %w", err)
		}
	}

	resultArray, ok := result.([]interface{})
	if !ok || len(resultArray) != 2 {
		return fmt.Errorf("unexpected result format from hold script")
	}

	success, ok := resultArray[0].(int64)
	if !ok {
		return fmt.Errorf("invalid success flag in hold script result")
	}

	if success == 0 {
		raw, _ := resultArray[1].(string)
		seatID, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			return fmt.Errorf("failed to hold seats")
		}
		return &HoldConflictError{SeatID: seatID}
	}

	return nil
}

// ReleaseSeats drops the holds for the given seats. Missing keys are fine:
// TTL expiry may already have released them.
func (h *HoldStore) ReleaseSeats(ctx context.Context, showtimeID uuid.UUID, seatIDs []uuid.UUID) error {
	if h.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	args := make([]interface{}, 0, len(seatIDs))
	for _, seatID := range seatIDs {
		args = append(args, seatID.String())
	}

	_, err := h.redis.EvalSha(ctx, luaReleaseSeats, []string{showtimeID.String()}, args...).Result()
	if err != nil {
		_, err = h.redis.Eval(ctx, luaReleaseSeats, []string{showtimeID.String()}, args...).Result()
		if err != nil {
			return fmt.Errorf("failed to release seat holds: %w", err)
		}
	}
	return nil
}

// PreloadScripts loads the Lua scripts into Redis for better performance
func (h *HoldStore) PreloadScripts(ctx context.Context) error {
	if h.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	if _, err := h.redis.ScriptLoad(ctx, luaHoldSeats).Result(); err != nil {
		return fmt.Errorf("failed to load seat hold script: %w", err)
	}
	if _, err := h.redis.ScriptLoad(ctx, luaReleaseSeats).Result(); err != nil {
		return fmt.Errorf("failed to load seat release script: %w", err)
	}
	return nil
}
