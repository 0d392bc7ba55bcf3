// Package redisstore keeps function scripts in a single Redis hash and
// exposes them as an artifact.Store.
//
// Each hash field is an artifact file name ("sum.hcl") and its value is the
// script content. HKEYS gives the enumeration order, HEXISTS answers existence
// checks and HGET serves content, so a qualified lookup costs one round trip.
//
// Several processes can share one hash; scripts can be updated with plain
// HSET/HDEL from any client. Cached handlers are not invalidated when that
// happens.
package redisstore
