package services

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestSecurityService() *SecurityService {
	svc := &SecurityService{
		maxContentLength: DefaultMaxContentLength,
		blockedIPs:       map[string]struct{}{"203.0.113.7": {}},
	}
	svc.initRules()
	return svc
}

func cleanRequest() RequestInfo {
	return RequestInfo{
		Method:    http.MethodGet,
		Path:      "/api/v1/articles",
		ClientIP:  "198.51.100.1",
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64)",
		Referer:   "https://almaqal.net/",
	}
}

func TestEvaluateCleanRequestPasses(t *testing.T) {
	svc := newTestSecurityService()

	verdict := svc.Evaluate(cleanRequest(), "")
	assert.True(t, verdict.Passed)
	assert.Empty(t, verdict.Rule)
}

func TestEvaluateBlockedIP(t *testing.T) {
	svc := newTestSecurityService()

	req := cleanRequest()
	req.ClientIP = "203.0.113.7"

	verdict := svc.Evaluate(req, "")
	assert.False(t, verdict.Passed)
	assert.Equal(t, "blocked_ip", verdict.Rule)
}

func TestEvaluateSuspiciousUserAgents(t *testing.T) {
	svc := newTestSecurityService()

	agents := []string{
		"curl/8.4.0",
		"python-requests/2.31",
		"Googlebot/2.1",
		"PostmanRuntime/7.36",
		"my-web-scraper 1.0",
	}

	for _, agent := range agents {
		req := cleanRequest()
		req.UserAgent = agent

		verdict := svc.Evaluate(req, "")
		assert.False(t, verdict.Passed, "agent %q should be blocked", agent)
		assert.Equal(t, "suspicious_agent", verdict.Rule)
	}
}

func TestEvaluatePostWithoutReferer(t *testing.T) {
	svc := newTestSecurityService()

	req := cleanRequest()
	req.Method = http.MethodPost
	req.Referer = ""

	verdict := svc.Evaluate(req, "")
	assert.False(t, verdict.Passed)
	assert.Equal(t, "missing_referer", verdict.Rule)

	// Same request as a GET is fine.
	req.Method = http.MethodGet
	assert.True(t, svc.Evaluate(req, "").Passed)
}

func TestEvaluateContentTooLong(t *testing.T) {
	svc := newTestSecurityService()
	svc.maxContentLength = 100
	svc.initRules()

	verdict := svc.Evaluate(cleanRequest(), strings.Repeat("ab", 51))
	assert.False(t, verdict.Passed)
	assert.Equal(t, "content_too_long", verdict.Rule)

	// The limit is characters, not bytes: 90 Arabic letters are 180 bytes
	// but well under a 100-character cap.
	arabic := strings.Repeat("مقال تقني ", 9) // 90 chars incl. spaces
	assert.True(t, svc.Evaluate(cleanRequest(), arabic).Passed)

	verdict = svc.Evaluate(cleanRequest(), strings.Repeat("م", 101))
	assert.False(t, verdict.Passed)
	assert.Equal(t, "content_too_long", verdict.Rule)
}

func TestEvaluateInjectionPatterns(t *testing.T) {
	svc := newTestSecurityService()

	payloads := []string{
		`hello <script>alert(1)</script>`,
		`click javascript:alert(1)`,
		`<img src=x onerror=alert(1)>`,
		`<iframe src="https://evil.example"></iframe>`,
		`eval (document.cookie)`,
		`data:text/html;base64,PHNjcmlwdD4=`,
	}

	for _, payload := range payloads {
		verdict := svc.Evaluate(cleanRequest(), payload)
		assert.False(t, verdict.Passed, "payload %q should be blocked", payload)
		assert.Equal(t, "injection_pattern", verdict.Rule)
	}
}

func TestEvaluateSpamRepetition(t *testing.T) {
	svc := newTestSecurityService()

	verdict := svc.Evaluate(cleanRequest(), strings.Repeat("a", 1000))
	assert.False(t, verdict.Passed)
	assert.Equal(t, "spam_repetition", verdict.Rule)

	// Normal prose never trips the repetition check.
	assert.True(t, svc.Evaluate(cleanRequest(), "just a normal newsletter signup").Passed)
}

func TestEvaluateEmptyContentSkipsContentRules(t *testing.T) {
	svc := newTestSecurityService()

	verdict := svc.Evaluate(cleanRequest(), "")
	assert.True(t, verdict.Passed)
}

func TestIsSpamRepetition(t *testing.T) {
	assert.False(t, isSpamRepetition(""))
	assert.False(t, isSpamRepetition("a"))
	assert.True(t, isSpamRepetition("aaab"))
	assert.False(t, isSpamRepetition("abcd"))
	assert.True(t, isSpamRepetition(strings.Repeat("x", 51)+strings.Repeat("yz", 24)))
}
