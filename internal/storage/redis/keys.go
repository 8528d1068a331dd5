package redis

import (
	"fmt"

	"github.com/mcoot/raidroster/internal/model"
)

// Key prefix for all roster-related data
const keyPrefix = "raidroster"

// eventKey returns the Redis key for an Event
func eventKey(id model.EventID) string {
	return fmt.Sprintf("%s:event:%s", keyPrefix, id)
}

// participantsKey returns the Redis key for the HASH of user -> participant row
func participantsKey(id model.EventID) string {
	return fmt.Sprintf("%s:participants:%s", keyPrefix, id)
}

// arrivalKey returns the Redis key for the ZSET ordering users by arrival
func arrivalKey(id model.EventID) string {
	return fmt.Sprintf("%s:idx:arrival:%s", keyPrefix, id)
}

// sequenceKey returns the Redis key for the arrival counter of an event
func sequenceKey(id model.EventID) string {
	return fmt.Sprintf("%s:seq:%s", keyPrefix, id)
}

// lockKey returns the Redis key guarding a lock name
func lockKey(name string) string {
	return fmt.Sprintf("%s:lock:%s", keyPrefix, name)
}
