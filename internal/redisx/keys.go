package redisx

// Shopper cart, JSON array of cart lines: cart:{session_id}.
// The TTL doubles as the session lifetime; every save refreshes it.
const KeyCart = "cart:%s"
