package services

import (
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/almaqal-media/almaqal_api/shared"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// RequestInfo is the slice of an HTTP request the security filter inspects.
type RequestInfo struct {
	Method    string
	Path      string
	ClientIP  string
	UserAgent string
	Referer   string
}

// Verdict is the outcome of a security evaluation. It is advisory: every
// signal here can be spoofed by setting headers, so the filter raises the bar
// for lazy abuse, it is not a security boundary.
type Verdict struct {
	Passed bool   `json:"passed"`
	Rule   string `json:"rule,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// RequestRule is a named predicate over the request. Returns a reason when
// the rule trips, empty string otherwise.
type RequestRule struct {
	Name  string
	Check func(req RequestInfo) string
}

// ContentRule is a named predicate over a content payload.
type ContentRule struct {
	Name  string
	Check func(content string) string
}

const DefaultMaxContentLength = 50000

var suspiciousAgents = []string{
	"bot", "crawler", "spider", "scraper",
	"curl", "wget", "python", "postman", "insomnia", "httpie",
}

var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<script[^>]*>`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)vbscript:`),
	regexp.MustCompile(`(?i)on\w+\s*=`),
	regexp.MustCompile(`(?i)eval\s*\(`),
	regexp.MustCompile(`(?i)expression\s*\(`),
	regexp.MustCompile(`(?i)<iframe[^>]*>`),
	regexp.MustCompile(`(?i)<object[^>]*>`),
	regexp.MustCompile(`(?i)<embed[^>]*>`),
	regexp.MustCompile(`(?i)data:text/html`),
}

// SecurityService is a stateless heuristic gate applied in front of public
// POST surfaces. Configuration is read once at startup; evaluation itself has
// no side effects beyond logging blocked attempts.
type SecurityService struct {
	appContext.DefaultService

	maxContentLength int
	blockedIPs       map[string]struct{}

	requestRules []RequestRule
	contentRules []ContentRule
}

const SECURITY_SVC = "security_svc"

func (svc SecurityService) Id() string {
	return SECURITY_SVC
}

func (svc *SecurityService) Configure(ctx *appContext.Context) error {
	svc.maxContentLength = DefaultMaxContentLength
	if raw := os.Getenv("SECURITY_MAX_CONTENT_LENGTH"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			svc.maxContentLength = n
		}
	}

	svc.blockedIPs = make(map[string]struct{})
	if raw := os.Getenv("SECURITY_BLOCKED_IPS"); raw != "" {
		for _, ip := range strings.Split(raw, ",") {
			ip = strings.TrimSpace(ip)
			if ip != "" {
				svc.blockedIPs[ip] = struct{}{}
			}
		}
	}

	svc.initRules()

	return svc.DefaultService.Configure(ctx)
}

func (svc *SecurityService) Start() error {
	return nil
}

// initRules builds the rule tables. Order matters: the blocked-IP check runs
// first, then request heuristics, then content heuristics.
func (svc *SecurityService) initRules() {
	svc.requestRules = []RequestRule{
		{
			Name: "blocked_ip",
			Check: func(req RequestInfo) string {
				if _, blocked := svc.blockedIPs[req.ClientIP]; blocked {
					return "IP address is blocked"
				}
				return ""
			},
		},
		{
			Name: "suspicious_agent",
			Check: func(req RequestInfo) string {
				ua := strings.ToLower(req.UserAgent)
				for _, needle := range suspiciousAgents {
					if strings.Contains(ua, needle) {
						return "suspicious request"
					}
				}
				return ""
			},
		},
		{
			Name: "missing_referer",
			Check: func(req RequestInfo) string {
				if req.Method == http.MethodPost && req.Referer == "" {
					return "suspicious request"
				}
				return ""
			},
		},
	}

	svc.contentRules = []ContentRule{
		{
			Name: "content_too_long",
			Check: func(content string) string {
				// Character count, not bytes: Arabic text runs about two
				// bytes per character and must get the full allowance.
				if utf8.RuneCountInString(content) > svc.maxContentLength {
					return fmt.Sprintf("content exceeds maximum length of %d characters", svc.maxContentLength)
				}
				return ""
			},
		},
		{
			Name: "injection_pattern",
			Check: func(content string) string {
				for _, pattern := range injectionPatterns {
					if pattern.MatchString(content) {
						return "content contains a potentially malicious pattern"
					}
				}
				return ""
			},
		},
		{
			Name: "spam_repetition",
			Check: func(content string) string {
				if isSpamRepetition(content) {
					return "content looks like spam"
				}
				return ""
			},
		},
	}
}

// isSpamRepetition flags content where a single character makes up more than
// half the payload.
func isSpamRepetition(content string) bool {
	if len(content) < 2 {
		return false
	}

	counts := make(map[rune]int)
	total := 0
	for _, r := range content {
		counts[r]++
		total++
	}

	for _, count := range counts {
		if count*2 > total {
			return true
		}
	}
	return false
}

// Evaluate runs the rule tables over the request and optional content. The
// first tripped rule decides the verdict.
func (svc *SecurityService) Evaluate(req RequestInfo, content string) Verdict {
	for _, rule := range svc.requestRules {
		if reason := rule.Check(req); reason != "" {
			return Verdict{Passed: false, Rule: rule.Name, Reason: reason}
		}
	}

	if content != "" {
		for _, rule := range svc.contentRules {
			if reason := rule.Check(content); reason != "" {
				return Verdict{Passed: false, Rule: rule.Name, Reason: reason}
			}
		}
	}

	return Verdict{Passed: true}
}

// ==================== MIDDLEWARE FUNCTIONS ====================

// Filter gates a route on the request heuristics. When inspectBody is true
// the raw body is run through the content rules as well.
func (svc *SecurityService) Filter(inspectBody bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := RequestInfo{
			Method:    c.Method(),
			Path:      c.Path(),
			ClientIP:  shared.GetClientIP(c),
			UserAgent: c.Get(fiber.HeaderUserAgent),
			Referer:   c.Get(fiber.HeaderReferer),
		}

		content := ""
		if inspectBody {
			content = string(c.Body())
		}

		verdict := svc.Evaluate(req, content)
		if !verdict.Passed {
			svc.logBlockedAttempt(req, verdict)
			securityBlocksTotal.WithLabelValues(verdict.Rule).Inc()
			return shared.NewForbiddenError(nil, verdict.Reason)
		}

		return c.Next()
	}
}

func (svc *SecurityService) logBlockedAttempt(req RequestInfo, verdict Verdict) {
	log.WithFields(log.Fields{
		"ip":         req.ClientIP,
		"user_agent": req.UserAgent,
		"path":       req.Path,
		"rule":       verdict.Rule,
		"reason":     verdict.Reason,
	}).Warn("Blocked suspicious request")
}
