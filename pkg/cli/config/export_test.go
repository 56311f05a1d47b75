package config

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(token string) *Slack {
	return &Slack{token: token}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, dsn string) *Repository {
	return &Repository{backend: backend, dsn: dsn}
}

var LoadArchiveFile = loadArchiveFile
