package contextkeys

// Custom key type to avoid collisions with other context values.
type contextKey string

// DBContextKey is the key under which the *gorm.DB handle (pool or
// per-request transaction) is stored for the current request.
const DBContextKey = contextKey("db")
