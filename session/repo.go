package session

// Repo stores active sessions keyed by session ID.
type Repo interface {
	Upsert(sessionID string, session *Session) error
	Get(sessionID string) (*Session, error)
	Delete(sessionID string) error
}
