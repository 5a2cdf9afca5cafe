package rules

import (
	"regexp"

	"github.com/loglens/loglens/internal/models"
)

// Builtin returns the hand-authored rule library shipped in the binary.
// Entries are data, not logic: the matcher treats every rule identically.
// Registration order is the tie-break order for equal-confidence matches.
func Builtin() []PatternRule {
	return []PatternRule{
		{
			ID:       "DB_CONN_REFUSED",
			Name:     "Database connection refused",
			Category: models.CategoryDatabase,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(connection refused|econnrefused)[^\n]*(postgres|postgresql|mysql|mariadb|mongodb?|redis|database|db server|:5432|:3306|:27017|:6379)`),
				regexp.MustCompile(`(?i)(postgres|postgresql|mysql|mariadb|mongodb?|redis|database)[^\n]*connection refused`),
				regexp.MustCompile(`(?i)could not connect to (server|database|postgres|mysql)`),
			},
			Keywords:     []string{"connection", "refused", "database", "connect"},
			ErrorCodes:   []string{"ECONNREFUSED"},
			BaseSeverity: models.SeverityHigh,
			SeverityModifiers: []SeverityModifier{
				{
					Trigger:  regexp.MustCompile(`(?i)\b(all|every)\b[^\n]*\b(replica|node|instance)s?\b`),
					Severity: models.SeverityCritical,
					Reason:   "every database replica is unreachable",
				},
			},
			Template: ExplanationTemplate{
				Summary:   "A connection to the database server was refused.",
				RootCause: "The database server is not accepting connections on the expected host and port.",
				PossibleCauses: []string{
					"The database process is down or still starting up",
					"The database is listening on a different host or port than configured",
					"A firewall or security group is blocking the connection",
				},
				RecommendedFixes: []string{
					"Check that the database process is running and healthy",
					"Verify the connection string host and port against the database configuration",
					"Confirm network rules permit traffic from the application to the database",
				},
				ExtraContext: "Connection refusals are returned immediately by the operating system, so the server host itself is reachable.",
			},
		},
		{
			ID:       "DB_AUTH_FAILED",
			Name:     "Database authentication failed",
			Category: models.CategoryDatabase,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)password authentication failed`),
				regexp.MustCompile(`(?i)access denied for user`),
				regexp.MustCompile(`(?i)(authentication|auth)[^\n]*(failed|failure)[^\n]*(postgres|mysql|database|db)`),
			},
			Keywords:     []string{"authentication", "password", "failed", "user"},
			BaseSeverity: models.SeverityHigh,
			Template: ExplanationTemplate{
				Summary:   "The database rejected the supplied credentials.",
				RootCause: "The username or password presented to the database is not valid for the target database.",
				PossibleCauses: []string{
					"The credentials were rotated but the application configuration was not updated",
					"The user account does not exist or lacks access to the target database",
					"Credentials for a different environment are being used",
				},
				RecommendedFixes: []string{
					"Verify the credentials in the application configuration or secret store",
					"Confirm the database user exists and has access to the target database",
					"Check for recent credential rotations that did not reach this service",
				},
			},
		},
		{
			ID:       "DB_DEADLOCK",
			Name:     "Database deadlock detected",
			Category: models.CategoryDatabase,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)deadlock (detected|found|victim)`),
				regexp.MustCompile(`(?i)lock wait timeout exceeded`),
			},
			Keywords:     []string{"deadlock", "lock", "transaction"},
			BaseSeverity: models.SeverityMedium,
			SeverityModifiers: []SeverityModifier{
				{
					Trigger:  regexp.MustCompile(`(?i)\b(repeated(?:ly)?|recurring|again)\b`),
					Severity: models.SeverityHigh,
					Reason:   "deadlocks are recurring rather than isolated",
				},
			},
			Template: ExplanationTemplate{
				Summary:   "Two or more transactions deadlocked and one was rolled back.",
				RootCause: "Concurrent transactions acquired locks in conflicting order and blocked each other.",
				PossibleCauses: []string{
					"Transactions touch the same rows or tables in different orders",
					"Long-running transactions hold locks while waiting on other work",
					"Missing indexes cause broader lock ranges than intended",
				},
				RecommendedFixes: []string{
					"Retry the rolled-back transaction; deadlock victims are safe to retry",
					"Order writes consistently across transactions that touch the same tables",
					"Shorten transactions and review indexes on the affected tables",
				},
			},
		},
		{
			ID:       "DB_POOL_EXHAUSTED",
			Name:     "Database connection pool exhausted",
			Category: models.CategoryDatabase,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(connection )?pool (is )?(exhausted|full|empty|depleted)`),
				regexp.MustCompile(`(?i)too many (connections|clients)`),
				regexp.MustCompile(`(?i)timeout (acquiring|waiting for)[^\n]*connection`),
			},
			Keywords:     []string{"pool", "connections", "exhausted", "clients"},
			BaseSeverity: models.SeverityHigh,
			Template: ExplanationTemplate{
				Summary:   "No free database connections were available to serve a request.",
				RootCause: "Demand for database connections exceeded the configured pool or server limit.",
				PossibleCauses: []string{
					"Connections are leaked and never returned to the pool",
					"A traffic spike pushed concurrent usage past the pool size",
					"Slow queries hold connections far longer than normal",
				},
				RecommendedFixes: []string{
					"Check for code paths that acquire a connection without releasing it",
					"Review pool sizing against current traffic and database max_connections",
					"Identify and optimize slow queries that hold connections open",
				},
			},
		},
		{
			ID:       "DB_SLOW_QUERY",
			Name:     "Slow database query",
			Category: models.CategoryDatabase,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)slow query`),
				regexp.MustCompile(`(?i)query (took|exceeded|ran for)[^\n]*(ms|milliseconds|seconds|s\b)`),
			},
			Keywords:     []string{"slow", "query", "duration"},
			BaseSeverity: models.SeverityLow,
			SeverityModifiers: []SeverityModifier{
				{
					Trigger:  regexp.MustCompile(`(?i)\b(\d{2,})(\.\d+)?\s?s(ec(onds)?)?\b`),
					Severity: models.SeverityMedium,
					Reason:   "query runtime measured in tens of seconds",
				},
			},
			Template: ExplanationTemplate{
				Summary:   "A database query ran noticeably slower than expected.",
				RootCause: "The query plan or data volume makes this statement expensive to execute.",
				PossibleCauses: []string{
					"A missing or unused index forces a sequential scan",
					"Table growth changed the optimizer's plan",
					"Lock contention delayed the statement",
				},
				RecommendedFixes: []string{
					"Inspect the query plan with EXPLAIN and add missing indexes",
					"Check table statistics and re-analyze if stale",
					"Look for concurrent transactions holding conflicting locks",
				},
			},
		},
		{
			ID:       "NET_CONN_RESET",
			Name:     "Connection reset by peer",
			Category: models.CategoryNetwork,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)connection reset( by peer)?`),
				regexp.MustCompile(`\bECONNRESET\b`),
				regexp.MustCompile(`(?i)broken pipe`),
			},
			Keywords:     []string{"connection", "reset", "peer", "pipe"},
			ErrorCodes:   []string{"ECONNRESET", "EPIPE"},
			BaseSeverity: models.SeverityMedium,
			Template: ExplanationTemplate{
				Summary:   "An established connection was closed abruptly by the remote side.",
				RootCause: "The peer terminated the TCP connection without a clean shutdown.",
				PossibleCauses: []string{
					"The remote process crashed or was restarted mid-connection",
					"An intermediate proxy or load balancer dropped an idle connection",
					"Network equipment reset the flow",
				},
				RecommendedFixes: []string{
					"Check the remote service's logs for crashes or restarts around this time",
					"Align keep-alive and idle timeout settings with intermediate proxies",
					"Add retry handling for reset connections where safe",
				},
			},
		},
		{
			ID:       "NET_CONN_REFUSED",
			Name:     "Connection refused",
			Category: models.CategoryNetwork,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)connection refused`),
				regexp.MustCompile(`\bECONNREFUSED\b`),
			},
			Keywords:     []string{"connection", "refused"},
			ErrorCodes:   []string{"ECONNREFUSED"},
			BaseSeverity: models.SeverityMedium,
			Template: ExplanationTemplate{
				Summary:   "A connection attempt was actively refused by the target host.",
				RootCause: "Nothing is listening on the target port, or a firewall rejected the attempt.",
				PossibleCauses: []string{
					"The target service is down or listening on a different port",
					"The address or port in configuration is wrong",
					"A host firewall rejects connections on that port",
				},
				RecommendedFixes: []string{
					"Verify the target service is running and listening on the expected port",
					"Double-check the destination host and port in configuration",
					"Review firewall rules on the target host",
				},
			},
		},
		{
			ID:       "NET_UNREACHABLE",
			Name:     "Host or network unreachable",
			Category: models.CategoryNetwork,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(host|network) (is )?unreachable`),
				regexp.MustCompile(`\bEHOSTUNREACH\b|\bENETUNREACH\b`),
				regexp.MustCompile(`(?i)no route to host`),
			},
			Keywords:     []string{"unreachable", "network", "route", "host"},
			ErrorCodes:   []string{"EHOSTUNREACH", "ENETUNREACH"},
			BaseSeverity: models.SeverityHigh,
			Template: ExplanationTemplate{
				Summary:   "Packets could not be routed to the target host or network.",
				RootCause: "No usable network route exists between this host and the destination.",
				PossibleCauses: []string{
					"A routing table or VPN change removed the path to the destination",
					"The destination subnet or host is offline",
					"Network ACLs or security groups were tightened",
				},
				RecommendedFixes: []string{
					"Test reachability with ping or traceroute from the affected host",
					"Review recent routing, VPN, or security group changes",
					"Confirm the destination host and its gateway are up",
				},
			},
		},
		{
			ID:       "DNS_RESOLUTION_FAILED",
			Name:     "DNS resolution failure",
			Category: models.CategoryDNS,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(could not|can(no|')t|failed to|unable to) resolve`),
				regexp.MustCompile(`(?i)(name resolution|dns (lookup|resolution|query)) fail`),
				regexp.MustCompile(`\bENOTFOUND\b|\bEAI_AGAIN\b`),
				regexp.MustCompile(`(?i)getaddrinfo`),
			},
			Keywords:     []string{"resolve", "dns", "lookup", "getaddrinfo"},
			ErrorCodes:   []string{"ENOTFOUND", "EAI_AGAIN"},
			BaseSeverity: models.SeverityHigh,
			Template: ExplanationTemplate{
				Summary:   "A hostname could not be resolved to an address.",
				RootCause: "DNS resolution for the target hostname failed.",
				PossibleCauses: []string{
					"The hostname is misspelled or the DNS record does not exist",
					"The configured DNS resolver is down or unreachable",
					"A recent DNS change has not propagated yet",
				},
				RecommendedFixes: []string{
					"Resolve the name manually with dig or nslookup to isolate the failure",
					"Check resolver configuration (/etc/resolv.conf or cluster DNS)",
					"Verify the DNS record exists in the authoritative zone",
				},
			},
		},
		{
			ID:       "SYS_OOM",
			Name:     "Out of memory",
			Category: models.CategoryMemory,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)out of memory`),
				regexp.MustCompile(`(?i)(javascript )?heap out of memory`),
				regexp.MustCompile(`(?i)oom[- ]?kill`),
				regexp.MustCompile(`(?i)cannot allocate memory`),
			},
			Keywords:     []string{"memory", "heap", "oom", "allocate"},
			ErrorCodes:   []string{"ENOMEM"},
			BaseSeverity: models.SeverityCritical,
			Template: ExplanationTemplate{
				Summary:   "The process ran out of memory.",
				RootCause: "Memory demand exceeded what the process or host could provide.",
				PossibleCauses: []string{
					"A memory leak slowly consumed the available heap",
					"A single oversized workload (large payload, unbounded cache) spiked usage",
					"The memory limit for the process or container is set too low",
				},
				RecommendedFixes: []string{
					"Restart the affected process to restore service, then investigate",
					"Capture a heap profile or dump to find the dominant allocations",
					"Review memory limits against observed steady-state usage",
				},
				ExtraContext: "Out-of-memory terminations are abrupt; in-flight work at the time of the kill is lost.",
			},
		},
		{
			ID:       "MEM_PRESSURE",
			Name:     "Memory pressure warning",
			Category: models.CategoryMemory,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(high|excessive) memory (usage|consumption|pressure)`),
				regexp.MustCompile(`(?i)memory usage[^\n]*\b(9\d|8[5-9])(\.\d+)?%`),
				regexp.MustCompile(`(?i)approaching memory limit`),
			},
			Keywords:     []string{"memory", "usage", "pressure", "limit"},
			BaseSeverity: models.SeverityMedium,
			Template: ExplanationTemplate{
				Summary:   "Memory usage is approaching the configured limit.",
				RootCause: "The process is consuming most of its available memory budget.",
				PossibleCauses: []string{
					"Gradual growth from a slow leak or unbounded cache",
					"Increased traffic raised the working set",
					"The limit was sized for lower load",
				},
				RecommendedFixes: []string{
					"Trend memory usage to distinguish a leak from load growth",
					"Profile heap usage before the process reaches its limit",
					"Raise the limit or add capacity if the working set is legitimate",
				},
			},
		},
		{
			ID:       "DISK_FULL",
			Name:     "Disk full",
			Category: models.CategoryDisk,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)no space left on device`),
				regexp.MustCompile(`(?i)disk (is )?full`),
				regexp.MustCompile(`\bENOSPC\b`),
				regexp.MustCompile(`(?i)file ?system (is )?(full|out of space)`),
			},
			Keywords:     []string{"space", "disk", "device", "full"},
			ErrorCodes:   []string{"ENOSPC"},
			BaseSeverity: models.SeverityCritical,
			Template: ExplanationTemplate{
				Summary:   "A filesystem has no space left.",
				RootCause: "The volume backing a write path is completely full.",
				PossibleCauses: []string{
					"Log files or temporary data grew without rotation",
					"A runaway job wrote large amounts of data",
					"The volume was sized too small for normal growth",
				},
				RecommendedFixes: []string{
					"Free space immediately by removing or compressing old logs and temp files",
					"Identify the largest recent growth with du or ncdu",
					"Add disk capacity and configure rotation for growing paths",
				},
			},
		},
		{
			ID:       "DISK_IO_ERROR",
			Name:     "Disk I/O error",
			Category: models.CategoryDisk,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(i/o|input/output) error`),
				regexp.MustCompile(`(?i)(read|write) error[^\n]*(device|disk|sector)`),
				regexp.MustCompile(`\bEIO\b`),
			},
			Keywords:     []string{"i/o", "disk", "device", "error"},
			ErrorCodes:   []string{"EIO"},
			BaseSeverity: models.SeverityHigh,
			SeverityModifiers: []SeverityModifier{
				{
					Trigger:  regexp.MustCompile(`(?i)\b(corrupt(ed|ion)?|unrecoverable)\b`),
					Severity: models.SeverityCritical,
					Reason:   "the error mentions corruption or unrecoverable data",
				},
			},
			Template: ExplanationTemplate{
				Summary:   "A low-level read or write against a storage device failed.",
				RootCause: "The storage layer returned an I/O error to the application.",
				PossibleCauses: []string{
					"A failing physical disk or degraded storage volume",
					"A detached or faulty network-attached volume",
					"Filesystem corruption on the device",
				},
				RecommendedFixes: []string{
					"Check kernel logs (dmesg) and SMART data for the device",
					"Verify network-attached volumes are healthy and attached",
					"Plan a filesystem check or device replacement before data loss spreads",
				},
			},
		},
		{
			ID:       "PROC_CRASH",
			Name:     "Process crash",
			Category: models.CategoryProcess,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)segmentation fault|segfault`),
				regexp.MustCompile(`(?i)panic:`),
				regexp.MustCompile(`(?i)process (crashed|aborted|terminated unexpectedly)`),
				regexp.MustCompile(`(?i)core dumped`),
			},
			Keywords:     []string{"crash", "panic", "segfault", "terminated"},
			BaseSeverity: models.SeverityHigh,
			SeverityModifiers: []SeverityModifier{
				{
					Trigger:  regexp.MustCompile(`(?i)crash ?loop|restart loop|back-?off`),
					Severity: models.SeverityCritical,
					Reason:   "the process is crash-looping rather than failing once",
				},
			},
			Template: ExplanationTemplate{
				Summary:   "A process terminated abnormally.",
				RootCause: "The process hit an unrecoverable fault and crashed.",
				PossibleCauses: []string{
					"A bug dereferenced invalid memory or hit an unhandled panic",
					"A native dependency is incompatible with the runtime",
					"Resource exhaustion pushed the process into an unrecoverable state",
				},
				RecommendedFixes: []string{
					"Collect the stack trace or core dump and identify the faulting code",
					"Check whether a recent deploy introduced the crash",
					"Ensure the supervisor restarts the process and alerts on repeats",
				},
			},
		},
		{
			ID:       "PROC_KILLED",
			Name:     "Process killed",
			Category: models.CategoryProcess,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)killed process`),
				regexp.MustCompile(`(?i)process[^\n]*\b(killed|sigkill|signal 9)\b`),
				regexp.MustCompile(`(?i)received SIG(KILL|TERM|ABRT)`),
			},
			Keywords:     []string{"killed", "signal", "process"},
			BaseSeverity: models.SeverityHigh,
			Template: ExplanationTemplate{
				Summary:   "A process was terminated by a signal.",
				RootCause: "An external actor (kernel, orchestrator, or operator) killed the process.",
				PossibleCauses: []string{
					"The kernel OOM killer selected this process",
					"An orchestrator evicted or rescheduled the workload",
					"An operator or script sent a kill signal",
				},
				RecommendedFixes: []string{
					"Check kernel logs for OOM killer activity naming this process",
					"Review orchestrator events for evictions or failed health checks",
					"Audit automation that may send kill signals",
				},
			},
		},
		{
			ID:       "AUTH_FAILED",
			Name:     "Authentication failure",
			Category: models.CategoryAuthentication,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(authentication|login|sign[- ]?in) (failed|failure|error)`),
				regexp.MustCompile(`(?i)invalid (credentials|password|username)`),
				regexp.MustCompile(`(?i)failed password for`),
			},
			Keywords:     []string{"authentication", "login", "invalid", "password"},
			BaseSeverity: models.SeverityMedium,
			Template: ExplanationTemplate{
				Summary:   "An authentication attempt was rejected.",
				RootCause: "The presented credentials did not validate against the identity store.",
				PossibleCauses: []string{
					"A user mistyped their password",
					"A stored credential or token expired",
					"An automated client is using stale credentials",
				},
				RecommendedFixes: []string{
					"Confirm whether the failures map to a real user or an automated client",
					"Rotate or refresh expired credentials and tokens",
					"Watch for repeated failures from a single origin",
				},
			},
		},
		{
			ID:       "AUTH_BRUTE_FORCE",
			Name:     "Possible brute-force attempt",
			Category: models.CategoryAuthentication,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(repeated|multiple|too many) (failed )?(login|authentication|sign[- ]?in) (attempts|failures)`),
				regexp.MustCompile(`(?i)(brute[- ]?force|password spray)`),
				regexp.MustCompile(`(?i)account locked (out )?after`),
			},
			Keywords:     []string{"failed", "attempts", "login", "brute"},
			BaseSeverity: models.SeverityHigh,
			SeverityModifiers: []SeverityModifier{
				{
					Trigger:  regexp.MustCompile(`(?i)\b(root|admin(istrator)?|superuser)\b`),
					Severity: models.SeverityCritical,
					Reason:   "a privileged account is being targeted",
				},
			},
			Template: ExplanationTemplate{
				Summary:   "Repeated failed logins suggest a brute-force attempt.",
				RootCause: "Many authentication failures in a short window point at credential guessing.",
				PossibleCauses: []string{
					"An attacker is guessing passwords against exposed accounts",
					"A misconfigured client retries with bad credentials in a loop",
					"Credential-stuffing using leaked password lists",
				},
				RecommendedFixes: []string{
					"Identify and block or rate-limit the source addresses",
					"Enforce lockout and multi-factor authentication on targeted accounts",
					"Check whether any of the attempts succeeded",
				},
			},
		},
		{
			ID:       "SEC_UNAUTHORIZED",
			Name:     "Unauthorized access attempt",
			Category: models.CategorySecurity,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)unauthorized (access|request|attempt)`),
				regexp.MustCompile(`(?i)(access|permission) denied[^\n]*\b(token|credential|role|policy|scope)\b`),
				regexp.MustCompile(`(?i)\b403\b[^\n]*forbidden`),
			},
			Keywords:     []string{"unauthorized", "denied", "forbidden"},
			BaseSeverity: models.SeverityHigh,
			Template: ExplanationTemplate{
				Summary:   "A request was denied for lacking the required authorization.",
				RootCause: "The caller's identity does not carry the permissions the operation requires.",
				PossibleCauses: []string{
					"A client is using a token with insufficient scope",
					"Access policies changed and legitimate callers lost permissions",
					"Someone is probing endpoints they should not reach",
				},
				RecommendedFixes: []string{
					"Identify the caller and verify whether the access should be allowed",
					"Review recent policy or role changes",
					"Alert on sustained unauthorized attempts from a single origin",
				},
			},
		},
		{
			ID:       "SEC_CERT_EXPIRED",
			Name:     "TLS certificate problem",
			Category: models.CategorySecurity,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)certificate (has )?expired`),
				regexp.MustCompile(`(?i)(tls|ssl)[^\n]*(handshake|certificate)[^\n]*(fail|error|expired|invalid)`),
				regexp.MustCompile(`(?i)x509:[^\n]*(expired|unknown authority|not valid)`),
			},
			Keywords:     []string{"certificate", "tls", "ssl", "x509"},
			BaseSeverity: models.SeverityHigh,
			Template: ExplanationTemplate{
				Summary:   "A TLS handshake failed because of a certificate problem.",
				RootCause: "The presented certificate is expired, untrusted, or does not match the host.",
				PossibleCauses: []string{
					"The certificate passed its expiry date without renewal",
					"The trust store is missing the issuing CA",
					"The certificate does not cover the hostname being contacted",
				},
				RecommendedFixes: []string{
					"Inspect the certificate chain and expiry with openssl s_client",
					"Renew the certificate and automate future renewals",
					"Ensure clients trust the issuing authority",
				},
			},
		},
		{
			ID:       "API_TIMEOUT",
			Name:     "Request timeout",
			Category: models.CategoryTimeout,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(request|response|api|upstream|gateway|call)[^\n]*\btime[d]?[ -]?out\b`),
				regexp.MustCompile(`(?i)\btimeout\b[^\n]*\b(after|on|while|waiting|exceeded)\b`),
				regexp.MustCompile(`(?i)deadline exceeded`),
				regexp.MustCompile(`\bETIMEDOUT\b`),
			},
			Keywords:     []string{"timeout", "request", "exceeded", "deadline"},
			ErrorCodes:   []string{"ETIMEDOUT"},
			BaseSeverity: models.SeverityHigh,
			SeverityModifiers: []SeverityModifier{
				{
					Trigger:  regexp.MustCompile(`(?i)\b(all|every)\b[^\n]*\brequests?\b`),
					Severity: models.SeverityCritical,
					Reason:   "every request is timing out, not a subset",
				},
			},
			Template: ExplanationTemplate{
				Summary:   "A request did not complete within its allotted time.",
				RootCause: "The downstream operation took longer than the configured timeout.",
				PossibleCauses: []string{
					"The downstream service is overloaded or degraded",
					"A slow database query or lock sits behind the request path",
					"The timeout is set lower than the operation's realistic cost",
				},
				RecommendedFixes: []string{
					"Check the health and latency of the downstream dependency",
					"Trace the slow path to find where the time is spent",
					"Align timeout values with observed latency percentiles",
				},
			},
		},
		{
			ID:       "CONN_TIMEOUT",
			Name:     "Connection timeout",
			Category: models.CategoryTimeout,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)connect(ion)?[^\n]*\btime[d]?[ -]?out\b`),
				regexp.MustCompile(`(?i)\btime[d]?[ -]?out\b[^\n]*connect(ing|ion)?`),
			},
			Keywords:     []string{"connection", "timeout", "connect"},
			ErrorCodes:   []string{"ETIMEDOUT"},
			BaseSeverity: models.SeverityMedium,
			Template: ExplanationTemplate{
				Summary:   "A connection attempt timed out before being established.",
				RootCause: "The target host did not answer the connection attempt in time.",
				PossibleCauses: []string{
					"Packets to the target are silently dropped by a firewall",
					"The target host is overloaded or unreachable",
					"A DNS answer points at a stale address",
				},
				RecommendedFixes: []string{
					"Test connectivity to the host and port directly",
					"Check firewall rules for silent drops rather than rejections",
					"Verify DNS resolves the target to the expected address",
				},
			},
		},
		{
			ID:       "HTTP_5XX",
			Name:     "Upstream server error",
			Category: models.CategoryAPI,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\b(500|502|503|504)\b[^\n]*\b(internal server error|bad gateway|service unavailable|gateway time[ -]?out)`),
				regexp.MustCompile(`(?i)service unavailable`),
				regexp.MustCompile(`(?i)internal server error`),
				regexp.MustCompile(`(?i)bad gateway`),
			},
			Keywords:     []string{"unavailable", "gateway", "server", "error"},
			BaseSeverity: models.SeverityHigh,
			Template: ExplanationTemplate{
				Summary:   "An HTTP request failed with a server-side error status.",
				RootCause: "The upstream service failed to produce a successful response.",
				PossibleCauses: []string{
					"The upstream application is crashing or overloaded",
					"A proxy cannot reach any healthy backend",
					"A deploy left the upstream in a broken state",
				},
				RecommendedFixes: []string{
					"Check upstream service health and recent deploys",
					"Inspect load balancer backend status",
					"Correlate with upstream logs at the same timestamps",
				},
			},
		},
		{
			ID:       "RATE_LIMITED",
			Name:     "Rate limit exceeded",
			Category: models.CategoryAPI,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)rate limit(ed)?( exceeded)?`),
				regexp.MustCompile(`(?i)\b429\b[^\n]*too many requests`),
				regexp.MustCompile(`(?i)too many requests`),
				regexp.MustCompile(`(?i)quota exceeded`),
			},
			Keywords:     []string{"rate", "limit", "requests", "quota"},
			BaseSeverity: models.SeverityMedium,
			Template: ExplanationTemplate{
				Summary:   "Requests are being rejected by a rate limiter.",
				RootCause: "The caller exceeded the allowed request rate or quota.",
				PossibleCauses: []string{
					"A retry loop is amplifying traffic",
					"A new feature increased call volume past the quota",
					"A shared quota is being consumed by another client",
				},
				RecommendedFixes: []string{
					"Add client-side backoff and respect Retry-After headers",
					"Review the call pattern that exceeded the limit",
					"Request a quota increase if the traffic is legitimate",
				},
			},
		},
		{
			ID:       "APP_EXCEPTION",
			Name:     "Unhandled application exception",
			Category: models.CategoryApplication,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)unhandled (exception|error|rejection)`),
				regexp.MustCompile(`(?i)uncaught (exception|error|typeerror|referenceerror)`),
				regexp.MustCompile(`(?i)\b(stack ?trace|traceback)\b`),
			},
			Keywords:     []string{"exception", "unhandled", "uncaught", "stack"},
			BaseSeverity: models.SeverityHigh,
			Template: ExplanationTemplate{
				Summary:   "The application raised an exception no handler caught.",
				RootCause: "A code path failed in a way the application did not anticipate.",
				PossibleCauses: []string{
					"Unexpected input reached a code path without validation",
					"A dependency returned a shape the code does not handle",
					"A regression in a recent change",
				},
				RecommendedFixes: []string{
					"Read the stack trace to find the failing frame",
					"Reproduce with the triggering input if it is logged",
					"Add handling or validation at the failure point",
				},
			},
		},
		{
			ID:       "APP_NULL_REF",
			Name:     "Null reference error",
			Category: models.CategoryApplication,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(cannot read propert(y|ies) of (undefined|null)|nullpointerexception|nil pointer dereference|undefined is not a function)`),
				regexp.MustCompile(`(?i)null (reference|pointer)`),
			},
			Keywords:     []string{"null", "undefined", "nil", "pointer"},
			BaseSeverity: models.SeverityMedium,
			Template: ExplanationTemplate{
				Summary:   "Code dereferenced a missing value.",
				RootCause: "A value expected to be present was null, nil, or undefined.",
				PossibleCauses: []string{
					"An optional field was absent from input data",
					"An earlier failure left state partially initialized",
					"A lookup returned no result and the code did not check",
				},
				RecommendedFixes: []string{
					"Guard the dereference and handle the missing-value case",
					"Trace where the value should have been set",
					"Validate inputs at the boundary",
				},
			},
		},
		{
			ID:       "CFG_MISSING",
			Name:     "Missing configuration",
			Category: models.CategoryConfiguration,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(missing|unset|undefined) (required )?(environment variable|env var|configuration|config (key|value|option))`),
				regexp.MustCompile(`(?i)environment variable \S+ (is )?(not set|missing|required)`),
				regexp.MustCompile(`(?i)config(uration)? (file )?not found`),
			},
			Keywords:     []string{"configuration", "environment", "missing", "config"},
			BaseSeverity: models.SeverityHigh,
			Template: ExplanationTemplate{
				Summary:   "A required configuration value is absent.",
				RootCause: "The application started without a configuration value it needs.",
				PossibleCauses: []string{
					"A required environment variable was not set in this environment",
					"A config file is missing from the deployment",
					"A new setting was introduced without updating all environments",
				},
				RecommendedFixes: []string{
					"Set the missing variable or key named in the message",
					"Compare this environment's configuration against a working one",
					"Fail fast at startup with a clear list of required settings",
				},
			},
		},
		{
			ID:       "CFG_INVALID",
			Name:     "Invalid configuration",
			Category: models.CategoryConfiguration,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(invalid|malformed|unparseable|bad) (configuration|config|yaml|json|toml|ini)`),
				regexp.MustCompile(`(?i)(failed|unable) to (parse|load) config`),
			},
			Keywords:     []string{"invalid", "configuration", "parse", "config"},
			BaseSeverity: models.SeverityHigh,
			Template: ExplanationTemplate{
				Summary:   "Configuration was present but could not be used.",
				RootCause: "A configuration file or value failed parsing or validation.",
				PossibleCauses: []string{
					"A syntax error was introduced in the last config edit",
					"A value has the wrong type or is out of range",
					"Template rendering produced broken output",
				},
				RecommendedFixes: []string{
					"Validate the file with a linter for its format",
					"Diff the configuration against the last known-good version",
					"Add config validation to the deployment pipeline",
				},
			},
		},
		{
			ID:       "FS_PERMISSION_DENIED",
			Name:     "Permission denied",
			Category: models.CategoryFilesystem,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)permission denied`),
				regexp.MustCompile(`\bEACCES\b|\bEPERM\b`),
				regexp.MustCompile(`(?i)operation not permitted`),
			},
			Keywords:     []string{"permission", "denied", "permitted"},
			ErrorCodes:   []string{"EACCES", "EPERM"},
			BaseSeverity: models.SeverityMedium,
			Template: ExplanationTemplate{
				Summary:   "An operation was blocked by filesystem permissions.",
				RootCause: "The process user lacks the permission the operation requires.",
				PossibleCauses: []string{
					"The file or directory is owned by a different user",
					"The process dropped privileges and lost access",
					"A mount is read-only or has restrictive options",
				},
				RecommendedFixes: []string{
					"Check ownership and mode of the path involved",
					"Verify the user the process runs as",
					"Review mount options if the path is a mounted volume",
				},
			},
		},
		{
			ID:       "FS_NOT_FOUND",
			Name:     "File not found",
			Category: models.CategoryFilesystem,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)no such file or directory`),
				regexp.MustCompile(`\bENOENT\b`),
				regexp.MustCompile(`(?i)file (or directory )?not found`),
			},
			Keywords:     []string{"file", "directory", "found"},
			ErrorCodes:   []string{"ENOENT"},
			BaseSeverity: models.SeverityMedium,
			Template: ExplanationTemplate{
				Summary:   "A file or directory the application expected does not exist.",
				RootCause: "The referenced path is absent on this host.",
				PossibleCauses: []string{
					"A deployment left out a required file",
					"The path is built from configuration that differs per environment",
					"Cleanup or rotation removed the file while in use",
				},
				RecommendedFixes: []string{
					"Confirm the exact path in the message exists on the host",
					"Check deployment artifacts for the missing file",
					"Review any cleanup jobs touching that directory",
				},
			},
		},
		{
			ID:       "SYS_SERVICE_FAILED",
			Name:     "Service unit failure",
			Category: models.CategorySystem,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(unit |service )\S+ (entered failed state|failed to start|failed with result)`),
				regexp.MustCompile(`(?i)failed to start \S+( service| unit)?`),
				regexp.MustCompile(`(?i)systemd\[\d+\]:[^\n]*failed`),
			},
			Keywords:     []string{"service", "unit", "failed", "systemd"},
			BaseSeverity: models.SeverityHigh,
			Template: ExplanationTemplate{
				Summary:   "A managed service unit failed.",
				RootCause: "The service supervisor reported the unit in a failed state.",
				PossibleCauses: []string{
					"The service binary exits immediately due to bad configuration",
					"A dependency unit is not available",
					"Resource limits prevent the unit from starting",
				},
				RecommendedFixes: []string{
					"Read the unit's own logs with journalctl -u <unit>",
					"Check the unit's dependencies and ordering",
					"Try starting the binary manually to surface the underlying error",
				},
			},
		},
		{
			ID:       "SYS_CPU_HIGH",
			Name:     "High CPU usage",
			Category: models.CategorySystem,
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(high|excessive) cpu (usage|load|utilization)`),
				regexp.MustCompile(`(?i)cpu (usage|utilization)[^\n]*\b(9\d|100)(\.\d+)?%`),
				regexp.MustCompile(`(?i)load average[^\n]*\b([1-9]\d)(\.\d+)?`),
			},
			Keywords:     []string{"cpu", "load", "usage", "utilization"},
			BaseSeverity: models.SeverityMedium,
			Template: ExplanationTemplate{
				Summary:   "CPU consumption is unusually high.",
				RootCause: "One or more processes are saturating the available CPU.",
				PossibleCauses: []string{
					"A busy loop or runaway computation",
					"Traffic growth beyond provisioned capacity",
					"A background job competing with serving workloads",
				},
				RecommendedFixes: []string{
					"Identify the hot process and profile it",
					"Check whether load correlates with traffic or a specific job",
					"Scale out or reschedule background work if load is legitimate",
				},
			},
		},
	}
}
