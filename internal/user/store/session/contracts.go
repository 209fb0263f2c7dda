package session

// Error Contract:
// - FindByID and Revoke return sentinel.ErrNotFound for unknown sessions.
// - Create returns sentinel.ErrAlreadyExists for a reused session ID.
