package postgres

// Snapshot queries
const (
	queryLoadSnapshot = `SELECT revision, document FROM hunter_snapshots WHERE user_id = $1`

	queryInsertSnapshot = `
		INSERT INTO hunter_snapshots (user_id, revision, document, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO NOTHING`

	queryUpdateSnapshot = `
		UPDATE hunter_snapshots
		SET revision = $2, document = $3, updated_at = $4
		WHERE user_id = $1 AND revision = $2 - 1`

	queryListSnapshotUsers = `SELECT user_id FROM hunter_snapshots ORDER BY user_id`
)

// Error Messages - Snapshot Operations
const (
	ErrMsgFailedToLoadSnapshot   = "failed to load snapshot"
	ErrMsgFailedToEncodeSnapshot = "failed to encode snapshot"
	ErrMsgFailedToSaveSnapshot   = "failed to save snapshot"
	ErrMsgFailedToListSnapshots  = "failed to list snapshot users"
)
