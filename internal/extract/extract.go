// Package extract pulls structured metadata out of free-form log lines.
// Extraction never fails: absent fields stay empty, and any string at all
// produces a usable ParsedMetadata.
package extract

import (
	"regexp"
	"strings"
)

// ParsedMetadata holds the structured fields recognized in one raw line.
// Every field except MessageBody is optional; an empty string means the
// field was not present. Values are raw extracted substrings, not
// reformatted.
type ParsedMetadata struct {
	Timestamp   string
	LogLevel    string
	Source      string
	PID         string
	ErrorCode   string
	IPAddress   string
	Port        string
	Username    string
	FilePath    string
	HTTPStatus  string
	HTTPMethod  string
	URL         string
	MessageBody string
}

// Timestamp patterns, tried in fixed priority order. The first match wins.
var timestampPatterns = []*regexp.Regexp{
	// ISO-8601 with optional fractional seconds and offset.
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}[Tt]\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:?\d{2})?`),
	// Syslog: "Mon DD HH:MM:SS".
	regexp.MustCompile(`(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{1,2}\s+\d{2}:\d{2}:\d{2}`),
	// Common log: "DD/Mon/YYYY:HH:MM:SS +ZZZZ".
	regexp.MustCompile(`\d{2}/(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)/\d{4}:\d{2}:\d{2}:\d{2}\s+[+-]\d{4}`),
	// "YYYY-MM-DD HH:MM:SS" with optional fraction.
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2}:\d{2}(?:\.\d+)?`),
	// Bare unix epoch, millisecond then second precision.
	regexp.MustCompile(`\b\d{13}\b`),
	regexp.MustCompile(`\b\d{10}\b`),
}

var levelPattern = regexp.MustCompile(`(?i)\b(EMERGENCY|EMERG|ALERT|CRITICAL|CRIT|ERROR|ERR|WARNING|WARN|NOTICE|INFO|DEBUG|TRACE|FATAL|VERBOSE)\b`)

var pidPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bpid[=:\s]+(\d+)`),
	regexp.MustCompile(`(?i)\bprocess\s+(\d+)\b`),
	regexp.MustCompile(`[A-Za-z][\w./-]*\[(\d+)\]`),
}

var ipPattern = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)

var portKVPattern = regexp.MustCompile(`(?i)\bport[=:\s]+(\d{1,5})\b`)
var portTokenPattern = regexp.MustCompile(`:(\d{2,5})(?:\D|$)`)

// Common POSIX/network error codes recognized verbatim before falling back
// to the generic E-token form.
var knownErrorCodes = []string{
	"ECONNREFUSED", "ECONNRESET", "ETIMEDOUT", "ENOTFOUND", "EHOSTUNREACH",
	"ENETUNREACH", "EADDRINUSE", "EACCES", "EPERM", "ENOENT", "ENOSPC",
	"ENOMEM", "EMFILE", "EPIPE", "EAGAIN", "EEXIST", "EISDIR", "EINVAL",
	"EIO", "EAI_AGAIN",
}

var genericErrorCodePattern = regexp.MustCompile(`\bE[A-Z0-9_]{3,}\b`)
var codeKVPattern = regexp.MustCompile(`(?i)\bcode[=:\s]+([A-Za-z0-9_-]+)`)

// Log-level words that must never be mistaken for error codes.
var levelWords = map[string]struct{}{
	"EMERG": {}, "EMERGENCY": {}, "ALERT": {}, "CRIT": {}, "CRITICAL": {},
	"ERR": {}, "ERROR": {}, "WARN": {}, "WARNING": {}, "NOTICE": {},
	"INFO": {}, "DEBUG": {}, "TRACE": {}, "FATAL": {}, "VERBOSE": {},
}

var httpStatusPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bstatus(?:[ _-]?code)?[=:\s]+([1-5]\d{2})\b`),
	regexp.MustCompile(`"\s([1-5]\d{2})\s`),
	regexp.MustCompile(`\b([1-5]\d{2})\s+(?:OK|Created|Accepted|No Content|Moved Permanently|Found|Not Modified|Bad Request|Unauthorized|Forbidden|Not Found|Method Not Allowed|Conflict|Gone|Unprocessable Entity|Too Many Requests|Internal Server Error|Not Implemented|Bad Gateway|Service Unavailable|Gateway Timeout)\b`),
}

var httpMethodPattern = regexp.MustCompile(`\b(GET|POST|PUT|DELETE|PATCH|HEAD|OPTIONS|CONNECT|TRACE)\b`)

var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`https?://[^\s"']+`),
	regexp.MustCompile(`\b(?:GET|POST|PUT|DELETE|PATCH|HEAD|OPTIONS)\s+(/[^\s"']*)`),
	regexp.MustCompile(`(?i)\b(?:url|path|endpoint|route)[=:\s]+(/[^\s"']*)`),
	regexp.MustCompile(`(?:^|\s)((?:/api|/v\d+)/[^\s"']+)`),
}

var usernamePattern = regexp.MustCompile(`(?i)\buser(?:name)?[=:\s]+['"]?([A-Za-z0-9_\-.@]+)['"]?`)

var filePathPatterns = []*regexp.Regexp{
	// Windows drive path.
	regexp.MustCompile(`\b[A-Za-z]:\\[^\s"':]+`),
	// POSIX absolute path rooted at a well-known directory.
	regexp.MustCompile(`(?:^|[\s"'(])(/(?:var|etc|usr|home|opt|tmp|srv|proc|sys|dev|bin|sbin|lib|data|app|run|mnt)/[^\s"':)]+)`),
	// POSIX absolute path whose final segment carries an extension.
	regexp.MustCompile(`(?:^|[\s"'(])(/(?:[\w.-]+/)*[\w-]+\.[A-Za-z0-9]{1,8})\b`),
}

var sourcePatterns = []*regexp.Regexp{
	// Container log pipe prefix: "web_1  | message".
	regexp.MustCompile(`^\s*([A-Za-z][\w.-]*)\s*\|`),
	// Syslog service with pid suffix: "sshd[4721]:".
	regexp.MustCompile(`\b([A-Za-z][\w./-]*)\[\d+\]:`),
	// Systemd unit reference.
	regexp.MustCompile(`\b([\w-]+\.service)\b`),
	// Bracketed component tag.
	regexp.MustCompile(`\[([A-Za-z][\w ./-]*)\]`),
	// Parenthesized component tag.
	regexp.MustCompile(`\(([A-Za-z][\w.-]+)\)`),
}

// Extractor pulls structured fields from raw log lines. It is stateless and
// safe for concurrent use.
type Extractor struct{}

// NewExtractor constructs an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses a single raw line. Fields are extracted independently from
// a scan buffer that has had the timestamp token removed, so timestamp
// digits never masquerade as pids or ports.
func (e *Extractor) Extract(raw string) ParsedMetadata {
	trimmed := strings.TrimSpace(raw)
	md := ParsedMetadata{MessageBody: trimmed}
	if trimmed == "" {
		return md
	}

	scan := trimmed
	for _, pattern := range timestampPatterns {
		if ts := pattern.FindString(scan); ts != "" {
			md.Timestamp = ts
			scan = strings.Replace(scan, ts, "", 1)
			break
		}
	}
	md.MessageBody = stripTimestamp(trimmed, md.Timestamp)

	if m := levelPattern.FindString(scan); m != "" {
		md.LogLevel = strings.ToUpper(m)
	}

	for _, pattern := range pidPatterns {
		if m := pattern.FindStringSubmatch(scan); m != nil {
			md.PID = m[1]
			break
		}
	}

	md.IPAddress = ipPattern.FindString(scan)
	md.Port = extractPort(scan, md.IPAddress)
	md.ErrorCode = extractErrorCode(scan)

	for _, pattern := range httpStatusPatterns {
		if m := pattern.FindStringSubmatch(scan); m != nil {
			md.HTTPStatus = m[1]
			break
		}
	}
	md.HTTPMethod = httpMethodPattern.FindString(scan)
	md.URL = extractURL(scan)

	if m := usernamePattern.FindStringSubmatch(scan); m != nil {
		md.Username = m[1]
	}

	for _, pattern := range filePathPatterns {
		if m := pattern.FindStringSubmatch(scan); m != nil {
			md.FilePath = m[len(m)-1]
			break
		}
	}

	md.Source = extractSource(scan)

	return md
}

// stripTimestamp removes the timestamp token from the original trimmed line
// and trims one leading separator, preserving everything else.
func stripTimestamp(trimmed, timestamp string) string {
	if timestamp == "" {
		return trimmed
	}
	body := strings.Replace(trimmed, timestamp, "", 1)
	body = strings.TrimSpace(body)
	body = strings.TrimPrefix(body, "-")
	body = strings.TrimPrefix(body, ":")
	return strings.TrimSpace(body)
}

func extractPort(scan, ip string) string {
	if ip != "" {
		adjacent := regexp.MustCompile(regexp.QuoteMeta(ip) + `:(\d{1,5})\b`)
		if m := adjacent.FindStringSubmatch(scan); m != nil {
			return m[1]
		}
	}
	if m := portKVPattern.FindStringSubmatch(scan); m != nil {
		return m[1]
	}
	// Fall back to the first ":NNN" token that is not part of a time of
	// day. Time fragments always have a digit before the colon.
	for _, m := range portTokenPattern.FindAllStringSubmatchIndex(scan, -1) {
		start := m[0]
		if start > 0 {
			prev := scan[start-1]
			if prev >= '0' && prev <= '9' || prev == ':' {
				continue
			}
		}
		return scan[m[2]:m[3]]
	}
	return ""
}

func extractErrorCode(scan string) string {
	for _, code := range knownErrorCodes {
		if strings.Contains(scan, code) {
			return code
		}
	}
	for _, m := range genericErrorCodePattern.FindAllString(scan, -1) {
		if _, isLevel := levelWords[m]; isLevel {
			continue
		}
		return m
	}
	if m := codeKVPattern.FindStringSubmatch(scan); m != nil {
		candidate := m[1]
		if _, isLevel := levelWords[strings.ToUpper(candidate)]; !isLevel {
			return candidate
		}
	}
	return ""
}

func extractURL(scan string) string {
	for _, pattern := range urlPatterns {
		m := pattern.FindStringSubmatch(scan)
		if m == nil {
			continue
		}
		url := m[len(m)-1]
		return strings.TrimRight(url, ".,;")
	}
	return ""
}

func extractSource(scan string) string {
	for _, pattern := range sourcePatterns {
		m := pattern.FindStringSubmatch(scan)
		if m == nil {
			continue
		}
		candidate := strings.TrimSpace(m[1])
		if candidate == "" {
			continue
		}
		if _, isLevel := levelWords[strings.ToUpper(candidate)]; isLevel {
			continue
		}
		if isAllDigits(candidate) {
			continue
		}
		return candidate
	}
	return ""
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
