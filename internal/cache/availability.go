package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	usecase "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
)

// Availability caches computed slot lists briefly. It is purely an
// optimization: availability is advisory anyway, and every booking or
// status change invalidates the affected date. A nil receiver disables
// caching entirely.
type Availability struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailability(rdb *redis.Client) *Availability {
	if rdb == nil {
		return nil
	}
	return &Availability{rdb: rdb, ttl: 20 * time.Second}
}

func key(dateISO string, serviceIDs []uint) string {
	ids := make([]string, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		ids = append(ids, fmt.Sprint(id))
	}
	sort.Strings(ids)
	return fmt.Sprintf("availability:%s:%s", dateISO, strings.Join(ids, ","))
}

func (a *Availability) Get(
	ctx context.Context,
	dateISO string,
	serviceIDs []uint,
) (*usecase.AvailabilityResult, bool) {

	if a == nil {
		return nil, false
	}

	raw, err := a.rdb.Get(ctx, key(dateISO, serviceIDs)).Bytes()
	if err != nil {
		return nil, false
	}

	var res usecase.AvailabilityResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, false
	}
	return &res, true
}

func (a *Availability) Set(
	ctx context.Context,
	dateISO string,
	serviceIDs []uint,
	res *usecase.AvailabilityResult,
) {
	if a == nil {
		return
	}

	raw, err := json.Marshal(res)
	if err != nil {
		return
	}
	a.rdb.Set(ctx, key(dateISO, serviceIDs), raw, a.ttl)
}

// InvalidateDate drops every cached service-set for the date.
func (a *Availability) InvalidateDate(ctx context.Context, dateISO string) {
	if a == nil {
		return
	}

	pattern := fmt.Sprintf("availability:%s:*", dateISO)
	iter := a.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		a.rdb.Del(ctx, iter.Val())
	}
}
