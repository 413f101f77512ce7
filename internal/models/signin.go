package models

// SignInEntry is one row of the kiosk sign-in roster, kept in the
// key-value store under "signin:<unix-ms>:<email>".
type SignInEntry struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Timestamp int64  `json:"timestamp"`
}
