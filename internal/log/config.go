package log

const (
	FormatJSON    = "json"
	FormatConsole = "console"

	OutputStdout = "stdout"
	OutputStderr = "stderr"
	OutputFile   = "file"
)

type Config struct {
	// Level is one of debug, info, warn, error.
	Level  string `conf:"level"  yaml:"level"  json:"level"`
	Format string `conf:"format" yaml:"format" json:"format"`
	Output string `conf:"output" yaml:"output" json:"output"`
	File   File   `conf:"file"   yaml:"file"   json:"file"`
}

// File configures rotation for the file output.
type File struct {
	Path       string `conf:"path"        yaml:"path"        json:"path"`
	MaxSize    int    `conf:"max_size"    yaml:"max_size"    json:"max_size"`
	MaxBackups int    `conf:"max_backups" yaml:"max_backups" json:"max_backups"`
	MaxAge     int    `conf:"max_age"     yaml:"max_age"     json:"max_age"`
	Compress   bool   `conf:"compress"    yaml:"compress"    json:"compress"`
}
