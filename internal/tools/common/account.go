package common

// GetAccountFromArgs extracts the account name from request arguments,
// defaulting to "default". Account names select which stored Google
// Calendar token a tool operates on.
func GetAccountFromArgs(args map[string]interface{}) string {
	if accountVal, ok := args["account"].(string); ok && accountVal != "" {
		return accountVal
	}
	return "default"
}
