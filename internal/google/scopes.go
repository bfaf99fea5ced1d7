package google

// DefaultOAuthScopes are the Google OAuth scopes calscribe requests.
// Calendar access is the only Google surface the sync layer touches.
var DefaultOAuthScopes = []string{
	// OpenID Connect scopes (required for user info)
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",

	// Google Calendar scope
	"https://www.googleapis.com/auth/calendar",
}
