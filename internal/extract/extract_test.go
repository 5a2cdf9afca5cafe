package extract

import "testing"

func TestExtractDatabaseError(t *testing.T) {
	e := NewExtractor()
	md := e.Extract("2024-01-15T10:30:00Z ERROR: connection to database failed: ECONNREFUSED 127.0.0.1:5432")

	if md.Timestamp != "2024-01-15T10:30:00Z" {
		t.Errorf("Timestamp = %q", md.Timestamp)
	}
	if md.LogLevel != "ERROR" {
		t.Errorf("LogLevel = %q", md.LogLevel)
	}
	if md.ErrorCode != "ECONNREFUSED" {
		t.Errorf("ErrorCode = %q", md.ErrorCode)
	}
	if md.IPAddress != "127.0.0.1" {
		t.Errorf("IPAddress = %q", md.IPAddress)
	}
	if md.Port != "5432" {
		t.Errorf("Port = %q", md.Port)
	}
	if md.MessageBody != "ERROR: connection to database failed: ECONNREFUSED 127.0.0.1:5432" {
		t.Errorf("MessageBody = %q", md.MessageBody)
	}
}

func TestExtractSyslogLine(t *testing.T) {
	e := NewExtractor()
	md := e.Extract("Jan 15 10:30:00 host sshd[4721]: Failed password for invalid user root from 203.0.113.7 port 51122 ssh2")

	if md.Timestamp != "Jan 15 10:30:00" {
		t.Errorf("Timestamp = %q", md.Timestamp)
	}
	if md.PID != "4721" {
		t.Errorf("PID = %q", md.PID)
	}
	if md.Source != "sshd" {
		t.Errorf("Source = %q", md.Source)
	}
	if md.IPAddress != "203.0.113.7" {
		t.Errorf("IPAddress = %q", md.IPAddress)
	}
	if md.Port != "51122" {
		t.Errorf("Port = %q", md.Port)
	}
	if md.Username != "root" {
		t.Errorf("Username = %q", md.Username)
	}
	if md.LogLevel != "" {
		t.Errorf("LogLevel = %q, want empty", md.LogLevel)
	}
}

func TestExtractCommonLogFormat(t *testing.T) {
	e := NewExtractor()
	md := e.Extract(`192.168.1.10 - - [15/Jan/2024:10:30:00 +0000] "GET /api/v1/users HTTP/1.1" 502 123`)

	if md.Timestamp != "15/Jan/2024:10:30:00 +0000" {
		t.Errorf("Timestamp = %q", md.Timestamp)
	}
	if md.HTTPMethod != "GET" {
		t.Errorf("HTTPMethod = %q", md.HTTPMethod)
	}
	if md.HTTPStatus != "502" {
		t.Errorf("HTTPStatus = %q", md.HTTPStatus)
	}
	if md.URL != "/api/v1/users" {
		t.Errorf("URL = %q", md.URL)
	}
	if md.IPAddress != "192.168.1.10" {
		t.Errorf("IPAddress = %q", md.IPAddress)
	}
	if md.Port != "" {
		t.Errorf("Port = %q, want empty", md.Port)
	}
}

func TestExtractTable(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name  string
		line  string
		check func(t *testing.T, md ParsedMetadata)
	}{
		{
			name: "epoch millisecond timestamp",
			line: "1705312200000 ERROR service crashed",
			check: func(t *testing.T, md ParsedMetadata) {
				if md.Timestamp != "1705312200000" {
					t.Errorf("Timestamp = %q", md.Timestamp)
				}
				if md.MessageBody != "ERROR service crashed" {
					t.Errorf("MessageBody = %q", md.MessageBody)
				}
			},
		},
		{
			name: "longest level form wins",
			line: "WARNING: disk usage at 91%",
			check: func(t *testing.T, md ParsedMetadata) {
				if md.LogLevel != "WARNING" {
					t.Errorf("LogLevel = %q", md.LogLevel)
				}
			},
		},
		{
			name: "pid key value",
			line: "ERROR pid=1234 worker died",
			check: func(t *testing.T, md ParsedMetadata) {
				if md.PID != "1234" {
					t.Errorf("PID = %q", md.PID)
				}
			},
		},
		{
			name: "time of day is not a port",
			line: "ERROR at 10:30:00 something happened",
			check: func(t *testing.T, md ParsedMetadata) {
				if md.Port != "" {
					t.Errorf("Port = %q, want empty", md.Port)
				}
			},
		},
		{
			name: "status and path key values",
			line: "ERROR status=503 path=/checkout upstream timeout",
			check: func(t *testing.T, md ParsedMetadata) {
				if md.HTTPStatus != "503" {
					t.Errorf("HTTPStatus = %q", md.HTTPStatus)
				}
				if md.URL != "/checkout" {
					t.Errorf("URL = %q", md.URL)
				}
			},
		},
		{
			name: "quoted username",
			line: `FATAL: password authentication failed for user "admin"`,
			check: func(t *testing.T, md ParsedMetadata) {
				if md.Username != "admin" {
					t.Errorf("Username = %q", md.Username)
				}
				if md.LogLevel != "FATAL" {
					t.Errorf("LogLevel = %q", md.LogLevel)
				}
			},
		},
		{
			name: "posix file path",
			line: "ERROR: No space left on device: '/var/log/app.log'",
			check: func(t *testing.T, md ParsedMetadata) {
				if md.FilePath != "/var/log/app.log" {
					t.Errorf("FilePath = %q", md.FilePath)
				}
			},
		},
		{
			name: "windows file path",
			line: `ERROR: cannot open C:\Users\app\config.yaml`,
			check: func(t *testing.T, md ParsedMetadata) {
				if md.FilePath != `C:\Users\app\config.yaml` {
					t.Errorf("FilePath = %q", md.FilePath)
				}
			},
		},
		{
			name: "known error code beats generic",
			line: "ERROR: getaddrinfo ENOTFOUND db.internal.example.com",
			check: func(t *testing.T, md ParsedMetadata) {
				if md.ErrorCode != "ENOTFOUND" {
					t.Errorf("ErrorCode = %q", md.ErrorCode)
				}
			},
		},
		{
			name: "code key value fallback",
			line: "request failed code=DB500 after 3 retries",
			check: func(t *testing.T, md ParsedMetadata) {
				if md.ErrorCode != "DB500" {
					t.Errorf("ErrorCode = %q", md.ErrorCode)
				}
			},
		},
		{
			name: "level word is not an error code",
			line: "ERROR: something broke",
			check: func(t *testing.T, md ParsedMetadata) {
				if md.ErrorCode != "" {
					t.Errorf("ErrorCode = %q, want empty", md.ErrorCode)
				}
			},
		},
		{
			name: "container pipe source",
			line: "web_1  | ERROR: handler panicked",
			check: func(t *testing.T, md ParsedMetadata) {
				if md.Source != "web_1" {
					t.Errorf("Source = %q", md.Source)
				}
			},
		},
		{
			name: "systemd unit source",
			line: "ERROR: nginx.service entered failed state",
			check: func(t *testing.T, md ParsedMetadata) {
				if md.Source != "nginx.service" {
					t.Errorf("Source = %q", md.Source)
				}
			},
		},
		{
			name: "absolute url",
			line: "ERROR: request to https://api.example.com/v2/orders failed",
			check: func(t *testing.T, md ParsedMetadata) {
				if md.URL != "https://api.example.com/v2/orders" {
					t.Errorf("URL = %q", md.URL)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, e.Extract(tt.line))
		})
	}
}

func TestExtractEmptyLine(t *testing.T) {
	e := NewExtractor()
	md := e.Extract("   ")
	if md.MessageBody != "" {
		t.Errorf("MessageBody = %q", md.MessageBody)
	}
	if md.Timestamp != "" || md.LogLevel != "" {
		t.Errorf("expected zero metadata, got %+v", md)
	}
}

func TestExtractNeverPanicsOnGarbage(t *testing.T) {
	e := NewExtractor()
	lines := []string{
		"\x00\x01\x02",
		"::::::::::",
		"[[[[]]]]",
		"日本語のログメッセージ テスト",
		"a",
	}
	for _, line := range lines {
		_ = e.Extract(line)
	}
}
