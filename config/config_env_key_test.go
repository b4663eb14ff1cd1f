package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"googleOAuth": map[string]any{
			"clientId": "",
		},
		"auth": map[string]any{
			"tokenSecret": "",
			"bcryptCost":  12,
		},
		"avatar": map[string]any{
			"bucketUrl": "",
		},
		"rateLimit": map[string]any{
			"authPerMinute": 10,
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "GOOGLEOAUTH_CLIENTID", want: "googleOAuth.clientId"},
		{envKey: "AUTH_TOKENSECRET", want: "auth.tokenSecret"},
		{envKey: "AUTH_BCRYPTCOST", want: "auth.bcryptCost"},
		{envKey: "AVATAR_BUCKETURL", want: "avatar.bucketUrl"},
		{envKey: "RATELIMIT_AUTHPERMINUTE", want: "rateLimit.authPerMinute"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
