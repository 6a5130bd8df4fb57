package constants

type ContextKey string

const (
	PoolKey      ContextKey = "pool"
	TxKey        ContextKey = "tx"
	LoggerKey    ContextKey = "logger"
	UserKey      ContextKey = "user"
	ParamsKey    ContextKey = "params"
	RequestIDKey ContextKey = "requestID"
)
