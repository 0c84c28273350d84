package database

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2
)

// Goose dialects, also the migration directory names
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"

	migrationDirSQLite = "sqlite"
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString  = "failed to parse connection string"
	ErrMsgFailedToCreatePool       = "failed to create connection pool"
	ErrMsgFailedToPingDatabase     = "failed to ping database"
	ErrMsgFailedToOpenMigrationDB  = "failed to open sql connection for migrations"
	ErrMsgFailedToSetGooseDialect  = "failed to set goose dialect"
	ErrMsgFailedToRunMigrations    = "failed to run migrations"
	ErrMsgUnsupportedMigrationDial = "unsupported migration dialect"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationsApplied               = "Database migrations applied"
)
