package redis

// Redis key layout. History is one sorted set scored by last-use time;
// favorites are one JSON value per product plus a membership set.
const (
	// KeyHistory is the sorted set of past search queries.
	KeyHistory = "melisearch:history"
	// KeyPrefixFavorite is the prefix for favorite snapshot keys.
	KeyPrefixFavorite = "melisearch:favorite:"
	// KeyAllFavorites is the set of all favorited product IDs.
	KeyAllFavorites = "melisearch:favorites:all"
)

// FavoriteKey returns the Redis key for a favorite snapshot by product ID.
func FavoriteKey(id string) string {
	return KeyPrefixFavorite + id
}
